package model

type AssessmentStatus string

const (
	AssessmentApproved AssessmentStatus = "approved"
	AssessmentResubmit AssessmentStatus = "resubmit"
	AssessmentRejected AssessmentStatus = "rejected"
)

// Assessment records one assessor decision on a submission. A
// submission accumulates one record per resubmission cycle; its own
// status always mirrors the latest record.
//
// swagger:model Assessment
type Assessment struct {
	BaseModel
	SubmissionID uint             `gorm:"index;not null" json:"submissionId"`
	AssessorID   uint             `gorm:"index;not null" json:"assessorId"`
	Status       AssessmentStatus `gorm:"size:20;not null" json:"status"`
	Feedback     string           `gorm:"type:text" json:"feedback"`
	Criteria     CriteriaResults  `gorm:"type:json" json:"criteria"`

	Verifications []Verification `gorm:"foreignKey:AssessmentID" json:"verifications,omitempty"`
}

func (Assessment) TableName() string {
	return "assessments"
}

// SubmissionStatusFor maps an assessment decision onto the owning
// submission: approved and rejected pass through, anything else means
// the trainee must resubmit.
func (a *Assessment) SubmissionStatusFor() SubmissionStatus {
	switch a.Status {
	case AssessmentApproved:
		return SubmissionApproved
	case AssessmentRejected:
		return SubmissionRejected
	default:
		return SubmissionResubmit
	}
}
