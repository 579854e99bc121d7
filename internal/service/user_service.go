package service

import (
	"errors"
	"poe_tracker_backend/internal/model"
	"poe_tracker_backend/internal/policy"
	"poe_tracker_backend/internal/repository"
	"poe_tracker_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	UserRepo *repository.UserRepository
	OrgRepo  *repository.OrgRepository
}

func NewUserService(userRepo *repository.UserRepository, orgRepo *repository.OrgRepository) *UserService {
	return &UserService{UserRepo: userRepo, OrgRepo: orgRepo}
}

type CreateUserRequest struct {
	Username      string         `json:"username" binding:"required"`
	Password      string         `json:"password" binding:"required,min=8"`
	Name          string         `json:"name" binding:"required"`
	Email         string         `json:"email" binding:"required,email"`
	Role          model.UserRole `json:"role" binding:"required,oneof=trainee assessor internal_verifier external_verifier admin"`
	DepartmentID  *uint          `json:"departmentId"`
	CourseID      *uint          `json:"courseId"`
	ClassIntakeID *uint          `json:"classIntakeId"`
}

// CreateUser is admin-only. Role is fixed at creation; there is no
// role-change operation anywhere in the service.
func (s *UserService) CreateUser(req CreateUserRequest) (*model.User, error) {
	if _, err := s.UserRepo.FindByUsername(req.Username); err == nil {
		return nil, util.ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if req.CourseID != nil {
		if _, err := s.OrgRepo.FindCourse(*req.CourseID); err != nil {
			return nil, util.NewValidationError("courseId", "course does not exist")
		}
	}
	if req.ClassIntakeID != nil {
		if _, err := s.OrgRepo.FindClassIntake(*req.ClassIntakeID); err != nil {
			return nil, util.NewValidationError("classIntakeId", "class intake does not exist")
		}
	}
	if req.DepartmentID != nil {
		if _, err := s.OrgRepo.FindDepartment(*req.DepartmentID); err != nil {
			return nil, util.NewValidationError("departmentId", "department does not exist")
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:      req.Username,
		Password:      string(hashed),
		Name:          req.Name,
		Email:         req.Email,
		Role:          req.Role,
		DepartmentID:  req.DepartmentID,
		CourseID:      req.CourseID,
		ClassIntakeID: req.ClassIntakeID,
		Active:        true,
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetUser(actorID uint, actorRole model.UserRole, targetID uint) (*model.User, error) {
	if err := policy.SelfOrAdmin(actorID, actorRole, targetID).Err(); err != nil {
		return nil, err
	}
	user, err := s.UserRepo.FindByID(targetID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNotFound
	}
	return user, err
}

type UpdateProfileRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

// UpdateProfile touches display fields only; role, username and org
// links stay as created.
func (s *UserService) UpdateProfile(actorID uint, actorRole model.UserRole, targetID uint, req UpdateProfileRequest) (*model.User, error) {
	if err := policy.SelfOrAdmin(actorID, actorRole, targetID).Err(); err != nil {
		return nil, err
	}

	user, err := s.UserRepo.FindByID(targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, err
	}

	user.Name = req.Name
	user.Email = req.Email
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) ListUsers(filter repository.UserFilter, page, limit int) ([]model.User, int64, error) {
	return s.UserRepo.List(filter, page, limit)
}

// SetActive flips the active flag; deactivation blocks authentication
// but never deletes the record.
func (s *UserService) SetActive(targetID uint, active bool) error {
	if _, err := s.UserRepo.FindByID(targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrNotFound
		}
		return err
	}
	return s.UserRepo.SetActive(targetID, active)
}
