package model

// swagger:model Unit
type Unit struct {
	BaseModel
	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

func (Unit) TableName() string {
	return "units"
}

// swagger:model Task
type Task struct {
	BaseModel
	UnitID      uint         `gorm:"index;not null" json:"unitId"`
	Title       string       `gorm:"size:255;not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	Criteria    CriteriaList `gorm:"type:json" json:"criteria"`
}

func (Task) TableName() string {
	return "tasks"
}
