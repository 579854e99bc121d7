package service

import (
	"context"
	"errors"
	"testing"

	"poe_tracker_backend/internal/config"
	"poe_tracker_backend/internal/model"
	"poe_tracker_backend/internal/repository"
	"poe_tracker_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newPortfolioFixture(t *testing.T) (*PortfolioService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	storage := &StorageService{Provider: &LocalStorageProvider{
		Config: &config.StorageConfig{LocalPath: t.TempDir()},
	}}
	svc := NewPortfolioService(
		repository.NewSubmissionRepository(db),
		repository.NewAssignmentRepository(db),
		repository.NewUserRepository(db),
		repository.NewUnitRepository(db),
		storage,
	)
	return svc, db
}

func TestExportRendersFullChain(t *testing.T) {
	svc, db := newPortfolioFixture(t)
	trainee := seedUser(t, db, "trainee1", model.Trainee)

	sub := &model.Submission{
		TraineeID: trainee.ID, TaskID: 1, UnitID: 1,
		Title: "Distribution board", Description: "with photos", Status: model.SubmissionApproved,
	}
	require.NoError(t, db.Create(sub).Error)
	require.NoError(t, db.Create(&model.SubmissionFile{
		SubmissionID: sub.ID, FileName: "board.png", ContentType: util.MimePNG,
		StoragePath: "/uploads/board.png", SizeBytes: 1024,
	}).Error)
	assessment := &model.Assessment{
		SubmissionID: sub.ID, AssessorID: 2, Status: model.AssessmentApproved,
		Feedback: "neat work",
		Criteria: model.CriteriaResults{{Label: "Board labelled", Met: true}},
	}
	require.NoError(t, db.Create(assessment).Error)
	require.NoError(t, db.Create(&model.Verification{
		AssessmentID: assessment.ID, VerifierID: 3,
		VerifierType: model.VerifierInternal, Status: model.VerificationConfirmed,
	}).Error)

	doc, location, err := svc.Export(context.Background(), claimsFor(trainee), trainee.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, location)
	require.NotEmpty(t, doc)
	assert.Equal(t, "%PDF", string(doc[:4]))
}

func TestExportEmptyPortfolioStillRenders(t *testing.T) {
	svc, db := newPortfolioFixture(t)
	trainee := seedUser(t, db, "trainee1", model.Trainee)

	doc, _, err := svc.Export(context.Background(), claimsFor(trainee), trainee.ID)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(doc[:4]))
}

func TestExportAccessControl(t *testing.T) {
	svc, db := newPortfolioFixture(t)
	trainee := seedUser(t, db, "trainee1", model.Trainee)
	other := seedUser(t, db, "trainee2", model.Trainee)
	assigned := seedUser(t, db, "assessor1", model.Assessor)
	unassigned := seedUser(t, db, "assessor2", model.Assessor)
	admin := seedUser(t, db, "admin1", model.Admin)

	require.NoError(t, db.Create(&model.Assignment{
		TraineeID: trainee.ID, UnitID: 1, AssessorID: assigned.ID, ClassIntakeID: 1,
	}).Error)

	for _, u := range []*model.User{trainee, assigned, admin} {
		_, _, err := svc.Export(context.Background(), claimsFor(u), trainee.ID)
		assert.NoError(t, err, "user %s", u.Username)
	}

	for _, u := range []*model.User{other, unassigned} {
		_, _, err := svc.Export(context.Background(), claimsFor(u), trainee.ID)
		assert.True(t, errors.Is(err, util.ErrForbidden), "user %s", u.Username)
	}
}

func TestExportRejectsNonTraineeTarget(t *testing.T) {
	svc, db := newPortfolioFixture(t)
	admin := seedUser(t, db, "admin1", model.Admin)
	assessor := seedUser(t, db, "assessor1", model.Assessor)

	_, _, err := svc.Export(context.Background(), claimsFor(admin), assessor.ID)
	assert.True(t, errors.Is(err, util.ErrNotFound))

	_, _, err = svc.Export(context.Background(), claimsFor(admin), 9999)
	assert.True(t, errors.Is(err, util.ErrNotFound))
}
