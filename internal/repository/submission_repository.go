package repository

import (
	"poe_tracker_backend/internal/model"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

// CreateWithFiles writes the submission and its files in one
// transaction; a failure leaves no partial submission behind.
func (r *SubmissionRepository) CreateWithFiles(sub *model.Submission, files []model.SubmissionFile) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(sub).Error; err != nil {
			return err
		}
		for i := range files {
			files[i].SubmissionID = sub.ID
			if err := tx.Create(&files[i]).Error; err != nil {
				return err
			}
		}
		sub.Files = files
		return nil
	})
}

func (r *SubmissionRepository) FindByID(id uint) (*model.Submission, error) {
	var sub model.Submission
	err := r.DB.Preload("Files").First(&sub, id).Error
	return &sub, err
}

// FindDetail loads the submission with files, assessments and each
// assessment's verifications, assessments oldest-first.
func (r *SubmissionRepository) FindDetail(id uint) (*model.Submission, error) {
	var sub model.Submission
	err := r.DB.
		Preload("Files").
		Preload("Assessments", func(db *gorm.DB) *gorm.DB {
			return db.Order("assessments.id ASC")
		}).
		Preload("Assessments.Verifications").
		First(&sub, id).Error
	return &sub, err
}

func (r *SubmissionRepository) ListByTrainee(traineeID uint) ([]model.Submission, error) {
	var out []model.Submission
	err := r.DB.Preload("Files").
		Where("trainee_id = ?", traineeID).
		Order("id ASC").
		Find(&out).Error
	return out, err
}

// ListForAssessor returns submissions covered by the assessor's
// assignments, optionally filtered by status.
func (r *SubmissionRepository) ListForAssessor(assessorID uint, status model.SubmissionStatus) ([]model.Submission, error) {
	query := r.DB.Preload("Files").
		Joins("JOIN assignments ON assignments.trainee_id = submissions.trainee_id AND assignments.unit_id = submissions.unit_id").
		Where("assignments.assessor_id = ?", assessorID)

	if status != "" {
		query = query.Where("submissions.status = ?", status)
	}

	var out []model.Submission
	err := query.Order("submissions.id ASC").Find(&out).Error
	return out, err
}

func (r *SubmissionRepository) UpdateStatus(id uint, status model.SubmissionStatus) error {
	return r.DB.Model(&model.Submission{}).
		Where("id = ?", id).
		Update("status", status).
		Error
}

func (r *SubmissionRepository) ListAll() ([]model.Submission, error) {
	var out []model.Submission
	err := r.DB.Order("id ASC").Find(&out).Error
	return out, err
}
