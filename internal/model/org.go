package model

// The org hierarchy is purely descriptive: a Course belongs to exactly
// one Department and one StudyLevel; ClassIntakes and Modules belong to
// exactly one Course.

// swagger:model Department
type Department struct {
	BaseModel
	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

func (Department) TableName() string {
	return "departments"
}

// swagger:model StudyLevel
type StudyLevel struct {
	BaseModel
	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

func (StudyLevel) TableName() string {
	return "study_levels"
}

// swagger:model Course
type Course struct {
	BaseModel
	Name         string `gorm:"size:255;not null" json:"name"`
	Description  string `gorm:"type:text" json:"description"`
	DepartmentID uint   `gorm:"index;not null" json:"departmentId"`
	StudyLevelID uint   `gorm:"index;not null" json:"studyLevelId"`
}

func (Course) TableName() string {
	return "courses"
}

// swagger:model ClassIntake
type ClassIntake struct {
	BaseModel
	Name     string `gorm:"size:255;not null" json:"name"`
	CourseID uint   `gorm:"index;not null" json:"courseId"`
	Year     int    `json:"year"`
}

func (ClassIntake) TableName() string {
	return "class_intakes"
}

// swagger:model Module
type Module struct {
	BaseModel
	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	CourseID    uint   `gorm:"index;not null" json:"courseId"`
}

func (Module) TableName() string {
	return "modules"
}
