package model

type SubmissionStatus string

const (
	SubmissionPending  SubmissionStatus = "pending"
	SubmissionReviewed SubmissionStatus = "reviewed"
	SubmissionResubmit SubmissionStatus = "resubmit"
	SubmissionApproved SubmissionStatus = "approved"
	SubmissionRejected SubmissionStatus = "rejected"
)

// swagger:model Submission
type Submission struct {
	BaseModel
	TraineeID   uint             `gorm:"index;not null" json:"traineeId"`
	TaskID      uint             `gorm:"index;not null" json:"taskId"`
	UnitID      uint             `gorm:"index;not null" json:"unitId"`
	Title       string           `gorm:"size:255;not null" json:"title"`
	Description string           `gorm:"type:text" json:"description"`
	Status      SubmissionStatus `gorm:"size:20;not null;default:'pending'" json:"status"`

	Files       []SubmissionFile `gorm:"foreignKey:SubmissionID" json:"files,omitempty"`
	Assessments []Assessment     `gorm:"foreignKey:SubmissionID" json:"assessments,omitempty"`
}

func (Submission) TableName() string {
	return "submissions"
}

// SubmissionFile is immutable once created.
//
// swagger:model SubmissionFile
type SubmissionFile struct {
	BaseModel
	SubmissionID uint   `gorm:"index;not null" json:"submissionId"`
	FileName     string `gorm:"size:255;not null" json:"fileName"`
	ContentType  string `gorm:"size:100;not null" json:"contentType"`
	StoragePath  string `gorm:"size:512;not null" json:"storagePath"`
	SizeBytes    int64  `gorm:"not null" json:"sizeBytes"`
}

func (SubmissionFile) TableName() string {
	return "submission_files"
}
