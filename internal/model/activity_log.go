package model

// ActivityLog is append-only; rows are never updated or deleted.
//
// swagger:model ActivityLog
type ActivityLog struct {
	BaseModel
	UserID   uint   `gorm:"index;not null" json:"userId"`
	Action   string `gorm:"size:100;not null" json:"action"`
	Detail   string `gorm:"type:text" json:"detail"`
	IPOrigin string `gorm:"size:45" json:"ipOrigin"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}
