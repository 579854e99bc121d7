package model

import (
	"time"
)

type UserRole string

const (
	Trainee          UserRole = "trainee"
	Assessor         UserRole = "assessor"
	InternalVerifier UserRole = "internal_verifier"
	ExternalVerifier UserRole = "external_verifier"
	Admin            UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Username string   `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Password string   `gorm:"size:100;not null" json:"-"`
	Name     string   `gorm:"size:100;not null" json:"name"`
	Email    string   `gorm:"size:100;not null" json:"email"`
	Role     UserRole `gorm:"size:20;not null;default:'trainee'" json:"role"`

	// Org placement, meaningful for trainees and assessors only.
	DepartmentID  *uint `gorm:"index" json:"departmentId,omitempty"`
	CourseID      *uint `gorm:"index" json:"courseId,omitempty"`
	ClassIntakeID *uint `gorm:"index" json:"classIntakeId,omitempty"`

	Active    bool      `gorm:"default:true" json:"active"`
	LastLogin time.Time `json:"lastLogin"`
	LastSeen  time.Time `json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}

// IsVerifier reports whether the user holds either verification role.
func (u *User) IsVerifier() bool {
	return u.Role == InternalVerifier || u.Role == ExternalVerifier
}
