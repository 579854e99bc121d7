package repository

import (
	"poe_tracker_backend/internal/model"

	"gorm.io/gorm"
)

// OrgRepository covers the descriptive hierarchy: departments, study
// levels, courses, class intakes and modules. Lists come back in
// insertion order.
type OrgRepository struct {
	DB *gorm.DB
}

func NewOrgRepository(db *gorm.DB) *OrgRepository {
	return &OrgRepository{DB: db}
}

func (r *OrgRepository) CreateDepartment(d *model.Department) error {
	return r.DB.Create(d).Error
}

func (r *OrgRepository) ListDepartments() ([]model.Department, error) {
	var out []model.Department
	err := r.DB.Order("id ASC").Find(&out).Error
	return out, err
}

func (r *OrgRepository) FindDepartment(id uint) (*model.Department, error) {
	var d model.Department
	err := r.DB.First(&d, id).Error
	return &d, err
}

func (r *OrgRepository) CreateStudyLevel(l *model.StudyLevel) error {
	return r.DB.Create(l).Error
}

func (r *OrgRepository) ListStudyLevels() ([]model.StudyLevel, error) {
	var out []model.StudyLevel
	err := r.DB.Order("id ASC").Find(&out).Error
	return out, err
}

func (r *OrgRepository) FindStudyLevel(id uint) (*model.StudyLevel, error) {
	var l model.StudyLevel
	err := r.DB.First(&l, id).Error
	return &l, err
}

func (r *OrgRepository) CreateCourse(c *model.Course) error {
	return r.DB.Create(c).Error
}

func (r *OrgRepository) ListCourses() ([]model.Course, error) {
	var out []model.Course
	err := r.DB.Order("id ASC").Find(&out).Error
	return out, err
}

func (r *OrgRepository) FindCourse(id uint) (*model.Course, error) {
	var c model.Course
	err := r.DB.First(&c, id).Error
	return &c, err
}

func (r *OrgRepository) FindCoursesByDepartment(departmentID uint) ([]model.Course, error) {
	var out []model.Course
	err := r.DB.Where("department_id = ?", departmentID).Order("id ASC").Find(&out).Error
	return out, err
}

func (r *OrgRepository) CreateClassIntake(ci *model.ClassIntake) error {
	return r.DB.Create(ci).Error
}

func (r *OrgRepository) ListClassIntakes() ([]model.ClassIntake, error) {
	var out []model.ClassIntake
	err := r.DB.Order("id ASC").Find(&out).Error
	return out, err
}

func (r *OrgRepository) FindClassIntake(id uint) (*model.ClassIntake, error) {
	var ci model.ClassIntake
	err := r.DB.First(&ci, id).Error
	return &ci, err
}

func (r *OrgRepository) FindIntakesByCourse(courseID uint) ([]model.ClassIntake, error) {
	var out []model.ClassIntake
	err := r.DB.Where("course_id = ?", courseID).Order("id ASC").Find(&out).Error
	return out, err
}

func (r *OrgRepository) CreateModule(m *model.Module) error {
	return r.DB.Create(m).Error
}

func (r *OrgRepository) ListModules() ([]model.Module, error) {
	var out []model.Module
	err := r.DB.Order("id ASC").Find(&out).Error
	return out, err
}

func (r *OrgRepository) FindModulesByCourse(courseID uint) ([]model.Module, error) {
	var out []model.Module
	err := r.DB.Where("course_id = ?", courseID).Order("id ASC").Find(&out).Error
	return out, err
}
