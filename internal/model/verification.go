package model

type VerifierType string

const (
	VerifierInternal VerifierType = "internal"
	VerifierExternal VerifierType = "external"
)

type VerificationStatus string

const (
	VerificationConfirmed VerificationStatus = "confirmed"
	VerificationRejected  VerificationStatus = "rejected"
	VerificationFlagged   VerificationStatus = "flagged"
)

// swagger:model Verification
type Verification struct {
	BaseModel
	AssessmentID uint               `gorm:"uniqueIndex:idx_verification_actor;not null" json:"assessmentId"`
	VerifierID   uint               `gorm:"uniqueIndex:idx_verification_actor;not null" json:"verifierId"`
	VerifierType VerifierType       `gorm:"size:20;not null" json:"verifierType"`
	Status       VerificationStatus `gorm:"size:20;not null" json:"status"`
	Comments     string             `gorm:"type:text" json:"comments"`
}

func (Verification) TableName() string {
	return "verifications"
}

// VerifierTypeForRole derives the verification record type from the
// acting user's role.
func VerifierTypeForRole(role UserRole) (VerifierType, bool) {
	switch role {
	case InternalVerifier:
		return VerifierInternal, true
	case ExternalVerifier:
		return VerifierExternal, true
	default:
		return "", false
	}
}
