package repository

import (
	"poe_tracker_backend/internal/model"

	"gorm.io/gorm"
)

type UnitRepository struct {
	DB *gorm.DB
}

func NewUnitRepository(db *gorm.DB) *UnitRepository {
	return &UnitRepository{DB: db}
}

func (r *UnitRepository) CreateUnit(u *model.Unit) error {
	return r.DB.Create(u).Error
}

func (r *UnitRepository) FindUnit(id uint) (*model.Unit, error) {
	var u model.Unit
	err := r.DB.First(&u, id).Error
	return &u, err
}

func (r *UnitRepository) ListUnits() ([]model.Unit, error) {
	var out []model.Unit
	err := r.DB.Order("id ASC").Find(&out).Error
	return out, err
}

func (r *UnitRepository) CreateTask(t *model.Task) error {
	return r.DB.Create(t).Error
}

func (r *UnitRepository) FindTask(id uint) (*model.Task, error) {
	var t model.Task
	err := r.DB.First(&t, id).Error
	return &t, err
}

func (r *UnitRepository) ListTasksByUnit(unitID uint) ([]model.Task, error) {
	var out []model.Task
	err := r.DB.Where("unit_id = ?", unitID).Order("id ASC").Find(&out).Error
	return out, err
}
