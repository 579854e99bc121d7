package repository

import (
	"poe_tracker_backend/internal/model"

	"gorm.io/gorm"
)

type ActivityRepository struct {
	DB *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{DB: db}
}

func (r *ActivityRepository) Create(entry *model.ActivityLog) error {
	return r.DB.Create(entry).Error
}

// ListByUser returns one user's trail newest-first.
func (r *ActivityRepository) ListByUser(userID uint, page, limit int) ([]model.ActivityLog, int64, error) {
	query := r.DB.Model(&model.ActivityLog{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []model.ActivityLog
	err := query.Order("id DESC").Offset((page - 1) * limit).Limit(limit).Find(&out).Error
	return out, total, err
}

// ListAll returns the full log newest-first (admin view).
func (r *ActivityRepository) ListAll(page, limit int) ([]model.ActivityLog, int64, error) {
	query := r.DB.Model(&model.ActivityLog{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []model.ActivityLog
	err := query.Order("id DESC").Offset((page - 1) * limit).Limit(limit).Find(&out).Error
	return out, total, err
}
