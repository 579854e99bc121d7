package service

import (
	"errors"
	"poe_tracker_backend/internal/model"
	"poe_tracker_backend/internal/repository"
	"poe_tracker_backend/internal/util"
	"strconv"

	"gorm.io/gorm"
)

type UnitService struct {
	UnitRepo *repository.UnitRepository
}

func NewUnitService(unitRepo *repository.UnitRepository) *UnitService {
	return &UnitService{UnitRepo: unitRepo}
}

type UnitRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (s *UnitService) CreateUnit(req UnitRequest) (*model.Unit, error) {
	u := &model.Unit{Name: req.Name, Description: req.Description}
	if err := s.UnitRepo.CreateUnit(u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UnitService) ListUnits() ([]model.Unit, error) {
	return s.UnitRepo.ListUnits()
}

func (s *UnitService) TasksByUnit(unitID uint) ([]model.Task, error) {
	if _, err := s.UnitRepo.FindUnit(unitID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, err
	}
	return s.UnitRepo.ListTasksByUnit(unitID)
}

type TaskRequest struct {
	UnitID      uint               `json:"unitId" binding:"required"`
	Title       string             `json:"title" binding:"required"`
	Description string             `json:"description"`
	Criteria    model.CriteriaList `json:"criteria"`
}

// CreateTask stores the grading checklist template alongside the task.
func (s *UnitService) CreateTask(req TaskRequest) (*model.Task, error) {
	if _, err := s.UnitRepo.FindUnit(req.UnitID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NewValidationError("unitId", "unit does not exist")
		}
		return nil, err
	}

	for i, c := range req.Criteria {
		if c.Label == "" {
			return nil, util.NewValidationError("criteria", "criterion label must not be empty (index "+strconv.Itoa(i)+")")
		}
	}

	t := &model.Task{
		UnitID:      req.UnitID,
		Title:       req.Title,
		Description: req.Description,
		Criteria:    req.Criteria,
	}
	if err := s.UnitRepo.CreateTask(t); err != nil {
		return nil, err
	}
	return t, nil
}
