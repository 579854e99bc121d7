package model

type NotificationType string

const (
	NotificationSubmission   NotificationType = "submission"
	NotificationAssessment   NotificationType = "assessment"
	NotificationVerification NotificationType = "verification"
	NotificationSystem       NotificationType = "system"
)

// Notification is addressed to exactly one user; only the read flag is
// ever mutated after creation.
//
// swagger:model Notification
type Notification struct {
	BaseModel
	UserID   uint             `gorm:"index;not null" json:"userId"`
	Type     NotificationType `gorm:"size:20;not null;index" json:"type"`
	Title    string           `gorm:"size:255;not null" json:"title"`
	Message  string           `gorm:"type:text" json:"message"`
	Read     bool             `gorm:"default:false" json:"read"`
	EntityID *uint            `gorm:"index" json:"entityId,omitempty"`
}

func (Notification) TableName() string {
	return "notifications"
}
