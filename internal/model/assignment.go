package model

// Assignment links an assessor to one trainee's work in one unit via a
// class intake. Its existence is what authorizes the assessor to act on
// that trainee's submissions for the unit.
//
// swagger:model Assignment
type Assignment struct {
	BaseModel
	TraineeID     uint `gorm:"uniqueIndex:idx_assignment_lookup;not null" json:"traineeId"`
	UnitID        uint `gorm:"uniqueIndex:idx_assignment_lookup;not null" json:"unitId"`
	AssessorID    uint `gorm:"uniqueIndex:idx_assignment_lookup;index;not null" json:"assessorId"`
	ClassIntakeID uint `gorm:"index;not null" json:"classIntakeId"`
}

func (Assignment) TableName() string {
	return "assignments"
}
