package repository

import (
	"poe_tracker_backend/internal/model"

	"gorm.io/gorm"
)

type VerificationRepository struct {
	DB *gorm.DB
}

func NewVerificationRepository(db *gorm.DB) *VerificationRepository {
	return &VerificationRepository{DB: db}
}

func (r *VerificationRepository) Create(v *model.Verification) error {
	return r.DB.Create(v).Error
}

func (r *VerificationRepository) ListByAssessment(assessmentID uint) ([]model.Verification, error) {
	var out []model.Verification
	err := r.DB.Where("assessment_id = ?", assessmentID).Order("id ASC").Find(&out).Error
	return out, err
}

// ExistsByVerifier reports whether the verifier has already acted on
// the assessment.
func (r *VerificationRepository) ExistsByVerifier(assessmentID, verifierID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Verification{}).
		Where("assessment_id = ? AND verifier_id = ?", assessmentID, verifierID).
		Count(&count).Error
	return count > 0, err
}
