package service

import (
	"errors"
	"poe_tracker_backend/internal/model"
	"poe_tracker_backend/internal/repository"
	"poe_tracker_backend/internal/util"

	"gorm.io/gorm"
)

// AssignmentService manages the ternary relation that authorizes an
// assessor over a trainee's work in one unit.
type AssignmentService struct {
	AssignmentRepo *repository.AssignmentRepository
	UserRepo       *repository.UserRepository
	UnitRepo       *repository.UnitRepository
	OrgRepo        *repository.OrgRepository
}

func NewAssignmentService(
	assignmentRepo *repository.AssignmentRepository,
	userRepo *repository.UserRepository,
	unitRepo *repository.UnitRepository,
	orgRepo *repository.OrgRepository,
) *AssignmentService {
	return &AssignmentService{
		AssignmentRepo: assignmentRepo,
		UserRepo:       userRepo,
		UnitRepo:       unitRepo,
		OrgRepo:        orgRepo,
	}
}

type AssignmentRequest struct {
	TraineeID     uint `json:"traineeId" binding:"required"`
	UnitID        uint `json:"unitId" binding:"required"`
	AssessorID    uint `json:"assessorId" binding:"required"`
	ClassIntakeID uint `json:"classIntakeId" binding:"required"`
}

func (s *AssignmentService) Create(req AssignmentRequest) (*model.Assignment, error) {
	trainee, err := s.UserRepo.FindByID(req.TraineeID)
	if err != nil {
		return nil, s.refError(err, "traineeId", "trainee does not exist")
	}
	if trainee.Role != model.Trainee {
		return nil, util.NewValidationError("traineeId", "user is not a trainee")
	}

	assessor, err := s.UserRepo.FindByID(req.AssessorID)
	if err != nil {
		return nil, s.refError(err, "assessorId", "assessor does not exist")
	}
	if assessor.Role != model.Assessor {
		return nil, util.NewValidationError("assessorId", "user is not an assessor")
	}

	if _, err := s.UnitRepo.FindUnit(req.UnitID); err != nil {
		return nil, s.refError(err, "unitId", "unit does not exist")
	}
	if _, err := s.OrgRepo.FindClassIntake(req.ClassIntakeID); err != nil {
		return nil, s.refError(err, "classIntakeId", "class intake does not exist")
	}

	exists, err := s.AssignmentRepo.ExistsForAssessor(req.AssessorID, req.TraineeID, req.UnitID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ErrDuplicateAssignment
	}

	a := &model.Assignment{
		TraineeID:     req.TraineeID,
		UnitID:        req.UnitID,
		AssessorID:    req.AssessorID,
		ClassIntakeID: req.ClassIntakeID,
	}
	if err := s.AssignmentRepo.Create(a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AssignmentService) List() ([]model.Assignment, error) {
	return s.AssignmentRepo.List()
}

func (s *AssignmentService) refError(err error, field, reason string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.NewValidationError(field, reason)
	}
	return err
}
