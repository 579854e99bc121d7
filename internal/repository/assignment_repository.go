package repository

import (
	"errors"
	"poe_tracker_backend/internal/model"

	"gorm.io/gorm"
)

type AssignmentRepository struct {
	DB *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{DB: db}
}

func (r *AssignmentRepository) Create(a *model.Assignment) error {
	return r.DB.Create(a).Error
}

func (r *AssignmentRepository) List() ([]model.Assignment, error) {
	var out []model.Assignment
	err := r.DB.Order("id ASC").Find(&out).Error
	return out, err
}

// FindForTraineeUnit returns the assignment covering a trainee/unit
// pair, or nil when none exists (absence is not an error here: the
// workflow uses it to decide whether an assessor gets notified).
func (r *AssignmentRepository) FindForTraineeUnit(traineeID, unitID uint) (*model.Assignment, error) {
	var a model.Assignment
	err := r.DB.Where("trainee_id = ? AND unit_id = ?", traineeID, unitID).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ExistsForAssessor reports whether the assessor is assigned to the
// trainee for the unit.
func (r *AssignmentRepository) ExistsForAssessor(assessorID, traineeID, unitID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Assignment{}).
		Where("assessor_id = ? AND trainee_id = ? AND unit_id = ?", assessorID, traineeID, unitID).
		Count(&count).Error
	return count > 0, err
}

// ExistsForTrainee reports whether the assessor holds any assignment
// for the trainee (portfolio export check).
func (r *AssignmentRepository) ExistsForTrainee(assessorID, traineeID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Assignment{}).
		Where("assessor_id = ? AND trainee_id = ?", assessorID, traineeID).
		Count(&count).Error
	return count > 0, err
}

func (r *AssignmentRepository) ListByAssessor(assessorID uint) ([]model.Assignment, error) {
	var out []model.Assignment
	err := r.DB.Where("assessor_id = ?", assessorID).Order("id ASC").Find(&out).Error
	return out, err
}
