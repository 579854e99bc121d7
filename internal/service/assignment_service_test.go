package service

import (
	"testing"

	"poe_tracker_backend/internal/model"
	"poe_tracker_backend/internal/repository"
	"poe_tracker_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAssignmentFixture(t *testing.T) (*AssignmentService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewAssignmentService(
		repository.NewAssignmentRepository(db),
		repository.NewUserRepository(db),
		repository.NewUnitRepository(db),
		repository.NewOrgRepository(db),
	)
	return svc, db
}

func TestCreateAssignmentValidatesRoles(t *testing.T) {
	svc, db := newAssignmentFixture(t)
	trainee := seedUser(t, db, "trainee1", model.Trainee)
	assessor := seedUser(t, db, "assessor1", model.Assessor)
	unit, _ := seedUnitWithTask(t, db)
	intake := &model.ClassIntake{Name: "Jan 2026", CourseID: 1, Year: 2026}
	require.NoError(t, db.Create(intake).Error)

	a, err := svc.Create(AssignmentRequest{
		TraineeID: trainee.ID, UnitID: unit.ID, AssessorID: assessor.ID, ClassIntakeID: intake.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, trainee.ID, a.TraineeID)

	// swapping the two users must fail both role checks
	_, err = svc.Create(AssignmentRequest{
		TraineeID: assessor.ID, UnitID: unit.ID, AssessorID: trainee.ID, ClassIntakeID: intake.ID,
	})
	assert.True(t, util.IsValidation(err))

	_, err = svc.Create(AssignmentRequest{
		TraineeID: trainee.ID, UnitID: 999, AssessorID: assessor.ID, ClassIntakeID: intake.ID,
	})
	assert.True(t, util.IsValidation(err))

	_, err = svc.Create(AssignmentRequest{
		TraineeID: trainee.ID, UnitID: unit.ID, AssessorID: assessor.ID, ClassIntakeID: 999,
	})
	assert.True(t, util.IsValidation(err))
}

func TestCreateAssignmentRejectsDuplicate(t *testing.T) {
	svc, db := newAssignmentFixture(t)
	trainee := seedUser(t, db, "trainee1", model.Trainee)
	assessor := seedUser(t, db, "assessor1", model.Assessor)
	unit, _ := seedUnitWithTask(t, db)
	intake := &model.ClassIntake{Name: "Jan 2026", CourseID: 1, Year: 2026}
	require.NoError(t, db.Create(intake).Error)

	req := AssignmentRequest{
		TraineeID: trainee.ID, UnitID: unit.ID, AssessorID: assessor.ID, ClassIntakeID: intake.ID,
	}
	_, err := svc.Create(req)
	require.NoError(t, err)

	_, err = svc.Create(req)
	assert.ErrorIs(t, err, util.ErrDuplicateAssignment)

	var total int64
	require.NoError(t, db.Model(&model.Assignment{}).Count(&total).Error)
	assert.EqualValues(t, 1, total)

	// The schema backstops the check for writers that bypass the
	// service.
	err = db.Create(&model.Assignment{
		TraineeID: trainee.ID, UnitID: unit.ID, AssessorID: assessor.ID, ClassIntakeID: intake.ID,
	}).Error
	assert.Error(t, err)
}
