package service

import (
	"errors"
	"poe_tracker_backend/internal/model"
	"poe_tracker_backend/internal/repository"
	"poe_tracker_backend/internal/util"

	"gorm.io/gorm"
)

// OrgService manages the descriptive hierarchy. Admin-gated at the
// router; nothing here carries workflow behavior.
type OrgService struct {
	OrgRepo *repository.OrgRepository
}

func NewOrgService(orgRepo *repository.OrgRepository) *OrgService {
	return &OrgService{OrgRepo: orgRepo}
}

type DepartmentRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (s *OrgService) CreateDepartment(req DepartmentRequest) (*model.Department, error) {
	d := &model.Department{Name: req.Name, Description: req.Description}
	if err := s.OrgRepo.CreateDepartment(d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *OrgService) ListDepartments() ([]model.Department, error) {
	return s.OrgRepo.ListDepartments()
}

type StudyLevelRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (s *OrgService) CreateStudyLevel(req StudyLevelRequest) (*model.StudyLevel, error) {
	l := &model.StudyLevel{Name: req.Name, Description: req.Description}
	if err := s.OrgRepo.CreateStudyLevel(l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *OrgService) ListStudyLevels() ([]model.StudyLevel, error) {
	return s.OrgRepo.ListStudyLevels()
}

type CourseRequest struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	DepartmentID uint   `json:"departmentId" binding:"required"`
	StudyLevelID uint   `json:"studyLevelId" binding:"required"`
}

func (s *OrgService) CreateCourse(req CourseRequest) (*model.Course, error) {
	if _, err := s.OrgRepo.FindDepartment(req.DepartmentID); err != nil {
		return nil, s.notFoundOr(err, "departmentId", "department does not exist")
	}
	if _, err := s.OrgRepo.FindStudyLevel(req.StudyLevelID); err != nil {
		return nil, s.notFoundOr(err, "studyLevelId", "study level does not exist")
	}

	c := &model.Course{
		Name:         req.Name,
		Description:  req.Description,
		DepartmentID: req.DepartmentID,
		StudyLevelID: req.StudyLevelID,
	}
	if err := s.OrgRepo.CreateCourse(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *OrgService) ListCourses() ([]model.Course, error) {
	return s.OrgRepo.ListCourses()
}

func (s *OrgService) CoursesByDepartment(departmentID uint) ([]model.Course, error) {
	if _, err := s.OrgRepo.FindDepartment(departmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, err
	}
	return s.OrgRepo.FindCoursesByDepartment(departmentID)
}

type ClassIntakeRequest struct {
	Name     string `json:"name" binding:"required"`
	CourseID uint   `json:"courseId" binding:"required"`
	Year     int    `json:"year"`
}

func (s *OrgService) CreateClassIntake(req ClassIntakeRequest) (*model.ClassIntake, error) {
	if _, err := s.OrgRepo.FindCourse(req.CourseID); err != nil {
		return nil, s.notFoundOr(err, "courseId", "course does not exist")
	}

	ci := &model.ClassIntake{Name: req.Name, CourseID: req.CourseID, Year: req.Year}
	if err := s.OrgRepo.CreateClassIntake(ci); err != nil {
		return nil, err
	}
	return ci, nil
}

func (s *OrgService) ListClassIntakes() ([]model.ClassIntake, error) {
	return s.OrgRepo.ListClassIntakes()
}

func (s *OrgService) IntakesByCourse(courseID uint) ([]model.ClassIntake, error) {
	if _, err := s.OrgRepo.FindCourse(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, err
	}
	return s.OrgRepo.FindIntakesByCourse(courseID)
}

type ModuleRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	CourseID    uint   `json:"courseId" binding:"required"`
}

func (s *OrgService) CreateModule(req ModuleRequest) (*model.Module, error) {
	if _, err := s.OrgRepo.FindCourse(req.CourseID); err != nil {
		return nil, s.notFoundOr(err, "courseId", "course does not exist")
	}

	m := &model.Module{Name: req.Name, Description: req.Description, CourseID: req.CourseID}
	if err := s.OrgRepo.CreateModule(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *OrgService) ListModules() ([]model.Module, error) {
	return s.OrgRepo.ListModules()
}

func (s *OrgService) ModulesByCourse(courseID uint) ([]model.Module, error) {
	if _, err := s.OrgRepo.FindCourse(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, err
	}
	return s.OrgRepo.FindModulesByCourse(courseID)
}

func (s *OrgService) notFoundOr(err error, field, reason string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.NewValidationError(field, reason)
	}
	return err
}
