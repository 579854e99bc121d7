package repository

import (
	"poe_tracker_backend/internal/model"

	"gorm.io/gorm"
)

type AssessmentRepository struct {
	DB *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: db}
}

func (r *AssessmentRepository) Create(a *model.Assessment) error {
	return r.DB.Create(a).Error
}

func (r *AssessmentRepository) FindByID(id uint) (*model.Assessment, error) {
	var a model.Assessment
	err := r.DB.First(&a, id).Error
	return &a, err
}

func (r *AssessmentRepository) ListBySubmission(submissionID uint) ([]model.Assessment, error) {
	var out []model.Assessment
	err := r.DB.Where("submission_id = ?", submissionID).Order("id ASC").Find(&out).Error
	return out, err
}

// FirstForSubmission returns the earliest assessment of a submission;
// turnaround reporting measures against this one, not the latest.
func (r *AssessmentRepository) FirstForSubmission(submissionID uint) (*model.Assessment, error) {
	var a model.Assessment
	err := r.DB.Where("submission_id = ?", submissionID).Order("id ASC").First(&a).Error
	return &a, err
}

// ListApproved returns approved assessments with their verifications,
// the verifier work queue.
func (r *AssessmentRepository) ListApproved() ([]model.Assessment, error) {
	var out []model.Assessment
	err := r.DB.Preload("Verifications").
		Where("status = ?", model.AssessmentApproved).
		Order("id ASC").
		Find(&out).Error
	return out, err
}

func (r *AssessmentRepository) ListByAssessor(assessorID uint) ([]model.Assessment, error) {
	var out []model.Assessment
	err := r.DB.Where("assessor_id = ?", assessorID).Order("id ASC").Find(&out).Error
	return out, err
}

func (r *AssessmentRepository) ListAll() ([]model.Assessment, error) {
	var out []model.Assessment
	err := r.DB.Order("id ASC").Find(&out).Error
	return out, err
}
