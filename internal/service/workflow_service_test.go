package service

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"poe_tracker_backend/internal/model"
	"poe_tracker_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSubmissionNotifiesAssignedAssessor(t *testing.T) {
	f := newWorkflowFixture(t)
	trainee := seedUser(t, f.db, "trainee1", model.Trainee)
	assessor := seedUser(t, f.db, "assessor1", model.Assessor)
	unit, task := seedUnitWithTask(t, f.db)

	require.NoError(t, f.db.Create(&model.Assignment{
		TraineeID: trainee.ID, UnitID: unit.ID, AssessorID: assessor.ID, ClassIntakeID: 1,
	}).Error)

	sub, err := f.workflow.CreateSubmission(context.Background(), claimsFor(trainee),
		CreateSubmissionRequest{TaskID: task.ID, Title: "Board photos", Description: "first attempt"},
		[]*multipart.FileHeader{evidenceFile(t, "board.png", util.MimePNG, 1024)},
		"127.0.0.1")
	require.NoError(t, err)

	assert.Equal(t, model.SubmissionPending, sub.Status)
	assert.Equal(t, unit.ID, sub.UnitID)
	require.Len(t, sub.Files, 1)
	assert.Equal(t, "board.png", sub.Files[0].FileName)

	count, err := f.notifications.CountByUser(assessor.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	logs, total, err := f.activity.ListByUser(trainee.ID, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "submission.create", logs[0].Action)
}

func TestCreateSubmissionWithoutAssignmentStillSucceeds(t *testing.T) {
	f := newWorkflowFixture(t)
	trainee := seedUser(t, f.db, "trainee1", model.Trainee)
	seedUser(t, f.db, "assessor1", model.Assessor)
	_, task := seedUnitWithTask(t, f.db)

	sub, err := f.workflow.CreateSubmission(context.Background(), claimsFor(trainee),
		CreateSubmissionRequest{TaskID: task.ID, Title: "Unassigned work"},
		[]*multipart.FileHeader{evidenceFile(t, "notes.pdf", util.MimePDF, 512)},
		"127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, model.SubmissionPending, sub.Status)

	var total int64
	require.NoError(t, f.db.Model(&model.Notification{}).Count(&total).Error)
	assert.Zero(t, total)
}

func TestCreateSubmissionFileLimits(t *testing.T) {
	f := newWorkflowFixture(t)
	trainee := seedUser(t, f.db, "trainee1", model.Trainee)
	_, task := seedUnitWithTask(t, f.db)

	t.Run("exactly at the cap", func(t *testing.T) {
		_, err := f.workflow.CreateSubmission(context.Background(), claimsFor(trainee),
			CreateSubmissionRequest{TaskID: task.ID, Title: "Full video"},
			[]*multipart.FileHeader{evidenceFile(t, "demo.mp4", util.MimeMP4, util.MaxUploadBytes)},
			"127.0.0.1")
		require.NoError(t, err)
	})

	t.Run("one byte over", func(t *testing.T) {
		_, err := f.workflow.CreateSubmission(context.Background(), claimsFor(trainee),
			CreateSubmissionRequest{TaskID: task.ID, Title: "Too big"},
			[]*multipart.FileHeader{evidenceFile(t, "big.mp4", util.MimeMP4, util.MaxUploadBytes+1)},
			"127.0.0.1")
		require.Error(t, err)
		assert.True(t, util.IsValidation(err))
	})

	t.Run("disallowed type", func(t *testing.T) {
		_, err := f.workflow.CreateSubmission(context.Background(), claimsFor(trainee),
			CreateSubmissionRequest{TaskID: task.ID, Title: "Script"},
			[]*multipart.FileHeader{evidenceFile(t, "run.sh", "application/x-sh", 64)},
			"127.0.0.1")
		require.Error(t, err)
		assert.True(t, util.IsValidation(err))
	})

	// The two rejected attempts must have left nothing behind.
	var total int64
	require.NoError(t, f.db.Model(&model.Submission{}).Count(&total).Error)
	assert.EqualValues(t, 1, total)
}

func TestCreateSubmissionRequiresTraineeRole(t *testing.T) {
	f := newWorkflowFixture(t)
	assessor := seedUser(t, f.db, "assessor1", model.Assessor)
	_, task := seedUnitWithTask(t, f.db)

	_, err := f.workflow.CreateSubmission(context.Background(), claimsFor(assessor),
		CreateSubmissionRequest{TaskID: task.ID, Title: "Not mine to submit"},
		[]*multipart.FileHeader{evidenceFile(t, "a.pdf", util.MimePDF, 64)},
		"127.0.0.1")
	assert.True(t, errors.Is(err, util.ErrForbidden))
}

func seedSubmission(t *testing.T, f *workflowFixture, trainee *model.User, unitID, taskID uint) *model.Submission {
	t.Helper()
	sub := &model.Submission{
		TraineeID: trainee.ID,
		TaskID:    taskID,
		UnitID:    unitID,
		Title:     "Evidence pack",
		Status:    model.SubmissionPending,
	}
	require.NoError(t, f.db.Create(sub).Error)
	return sub
}

func TestCreateAssessmentMirrorsSubmissionStatus(t *testing.T) {
	cases := []struct {
		name       string
		decision   model.AssessmentStatus
		wantStatus model.SubmissionStatus
	}{
		{"approved passes through", model.AssessmentApproved, model.SubmissionApproved},
		{"rejected passes through", model.AssessmentRejected, model.SubmissionRejected},
		{"resubmit maps to resubmit", model.AssessmentResubmit, model.SubmissionResubmit},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newWorkflowFixture(t)
			trainee := seedUser(t, f.db, "trainee1", model.Trainee)
			assessor := seedUser(t, f.db, "assessor1", model.Assessor)
			unit, task := seedUnitWithTask(t, f.db)
			require.NoError(t, f.db.Create(&model.Assignment{
				TraineeID: trainee.ID, UnitID: unit.ID, AssessorID: assessor.ID, ClassIntakeID: 1,
			}).Error)
			sub := seedSubmission(t, f, trainee, unit.ID, task.ID)

			assessment, err := f.workflow.CreateAssessment(claimsFor(assessor), CreateAssessmentRequest{
				SubmissionID: sub.ID,
				Status:       tc.decision,
				Feedback:     "checked on site",
				Criteria: model.CriteriaResults{
					{Label: "Uses correct cable gauge", Met: true},
				},
			}, "127.0.0.1")
			require.NoError(t, err)
			assert.Equal(t, tc.decision, assessment.Status)

			got, err := f.submissions.FindByID(sub.ID)
			require.NoError(t, err)
			assert.Equal(t, tc.wantStatus, got.Status)

			// trainee is told either way
			count, err := f.notifications.CountByUser(trainee.ID)
			require.NoError(t, err)
			assert.EqualValues(t, 1, count)
		})
	}
}

func TestCreateAssessmentUnassignedAssessorForbidden(t *testing.T) {
	f := newWorkflowFixture(t)
	trainee := seedUser(t, f.db, "trainee1", model.Trainee)
	assessor := seedUser(t, f.db, "assessor1", model.Assessor)
	unit, task := seedUnitWithTask(t, f.db)
	sub := seedSubmission(t, f, trainee, unit.ID, task.ID)

	_, err := f.workflow.CreateAssessment(claimsFor(assessor), CreateAssessmentRequest{
		SubmissionID: sub.ID,
		Status:       model.AssessmentApproved,
	}, "127.0.0.1")
	assert.True(t, errors.Is(err, util.ErrForbidden))

	var total int64
	require.NoError(t, f.db.Model(&model.Assessment{}).Count(&total).Error)
	assert.Zero(t, total)

	got, err := f.submissions.FindByID(sub.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SubmissionPending, got.Status)
}

func TestApprovedAssessmentNotifiesInternalVerifiers(t *testing.T) {
	f := newWorkflowFixture(t)
	trainee := seedUser(t, f.db, "trainee1", model.Trainee)
	assessor := seedUser(t, f.db, "assessor1", model.Assessor)
	iv1 := seedUser(t, f.db, "iv1", model.InternalVerifier)
	iv2 := seedUser(t, f.db, "iv2", model.InternalVerifier)
	ev := seedUser(t, f.db, "ev1", model.ExternalVerifier)
	unit, task := seedUnitWithTask(t, f.db)
	require.NoError(t, f.db.Create(&model.Assignment{
		TraineeID: trainee.ID, UnitID: unit.ID, AssessorID: assessor.ID, ClassIntakeID: 1,
	}).Error)
	sub := seedSubmission(t, f, trainee, unit.ID, task.ID)

	_, err := f.workflow.CreateAssessment(claimsFor(assessor), CreateAssessmentRequest{
		SubmissionID: sub.ID,
		Status:       model.AssessmentApproved,
	}, "127.0.0.1")
	require.NoError(t, err)

	for _, verifier := range []*model.User{iv1, iv2} {
		count, err := f.notifications.CountByUser(verifier.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, count, "internal verifier %s", verifier.Username)
	}

	count, err := f.notifications.CountByUser(ev.ID)
	require.NoError(t, err)
	assert.Zero(t, count, "external verifiers wait for internal confirmation")
}

func seedAssessment(t *testing.T, f *workflowFixture, sub *model.Submission, assessorID uint, status model.AssessmentStatus) *model.Assessment {
	t.Helper()
	a := &model.Assessment{SubmissionID: sub.ID, AssessorID: assessorID, Status: status}
	require.NoError(t, f.db.Create(a).Error)
	return a
}

func TestCreateVerificationSecondAttemptConflicts(t *testing.T) {
	f := newWorkflowFixture(t)
	trainee := seedUser(t, f.db, "trainee1", model.Trainee)
	assessor := seedUser(t, f.db, "assessor1", model.Assessor)
	verifier := seedUser(t, f.db, "iv1", model.InternalVerifier)
	unit, task := seedUnitWithTask(t, f.db)
	sub := seedSubmission(t, f, trainee, unit.ID, task.ID)
	assessment := seedAssessment(t, f, sub, assessor.ID, model.AssessmentApproved)

	first, err := f.workflow.CreateVerification(claimsFor(verifier), CreateVerificationRequest{
		AssessmentID: assessment.ID,
		Status:       model.VerificationConfirmed,
		Comments:     "sampled, consistent",
	}, "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, model.VerifierInternal, first.VerifierType)

	_, err = f.workflow.CreateVerification(claimsFor(verifier), CreateVerificationRequest{
		AssessmentID: assessment.ID,
		Status:       model.VerificationFlagged,
	}, "127.0.0.1")
	assert.True(t, errors.Is(err, util.ErrAlreadyVerified))

	rows, err := f.verifications.ListByAssessment(assessment.ID)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestInternalConfirmationNotifiesExternalVerifiers(t *testing.T) {
	f := newWorkflowFixture(t)
	trainee := seedUser(t, f.db, "trainee1", model.Trainee)
	assessor := seedUser(t, f.db, "assessor1", model.Assessor)
	internal := seedUser(t, f.db, "iv1", model.InternalVerifier)
	ev1 := seedUser(t, f.db, "ev1", model.ExternalVerifier)
	ev2 := seedUser(t, f.db, "ev2", model.ExternalVerifier)
	unit, task := seedUnitWithTask(t, f.db)
	sub := seedSubmission(t, f, trainee, unit.ID, task.ID)
	assessment := seedAssessment(t, f, sub, assessor.ID, model.AssessmentApproved)

	_, err := f.workflow.CreateVerification(claimsFor(internal), CreateVerificationRequest{
		AssessmentID: assessment.ID,
		Status:       model.VerificationConfirmed,
	}, "127.0.0.1")
	require.NoError(t, err)

	for _, verifier := range []*model.User{ev1, ev2} {
		count, err := f.notifications.CountByUser(verifier.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)
	}

	// the assessor hears about the verification too
	count, err := f.notifications.CountByUser(assessor.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestRejectedVerificationNotifiesTrainee(t *testing.T) {
	f := newWorkflowFixture(t)
	trainee := seedUser(t, f.db, "trainee1", model.Trainee)
	assessor := seedUser(t, f.db, "assessor1", model.Assessor)
	external := seedUser(t, f.db, "ev1", model.ExternalVerifier)
	unit, task := seedUnitWithTask(t, f.db)
	sub := seedSubmission(t, f, trainee, unit.ID, task.ID)
	assessment := seedAssessment(t, f, sub, assessor.ID, model.AssessmentApproved)

	verification, err := f.workflow.CreateVerification(claimsFor(external), CreateVerificationRequest{
		AssessmentID: assessment.ID,
		Status:       model.VerificationRejected,
		Comments:     "criteria not evidenced",
	}, "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, model.VerifierExternal, verification.VerifierType)

	count, err := f.notifications.CountByUser(trainee.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestCreateVerificationRequiresVerifierRole(t *testing.T) {
	f := newWorkflowFixture(t)
	trainee := seedUser(t, f.db, "trainee1", model.Trainee)
	assessor := seedUser(t, f.db, "assessor1", model.Assessor)
	unit, task := seedUnitWithTask(t, f.db)
	sub := seedSubmission(t, f, trainee, unit.ID, task.ID)
	assessment := seedAssessment(t, f, sub, assessor.ID, model.AssessmentApproved)

	for _, actor := range []*model.User{trainee, assessor} {
		_, err := f.workflow.CreateVerification(claimsFor(actor), CreateVerificationRequest{
			AssessmentID: assessment.ID,
			Status:       model.VerificationConfirmed,
		}, "127.0.0.1")
		assert.True(t, errors.Is(err, util.ErrForbidden), "role %s", actor.Role)
	}
}

func TestGetSubmissionAccess(t *testing.T) {
	f := newWorkflowFixture(t)
	owner := seedUser(t, f.db, "trainee1", model.Trainee)
	other := seedUser(t, f.db, "trainee2", model.Trainee)
	assigned := seedUser(t, f.db, "assessor1", model.Assessor)
	unassigned := seedUser(t, f.db, "assessor2", model.Assessor)
	verifier := seedUser(t, f.db, "iv1", model.InternalVerifier)
	admin := seedUser(t, f.db, "admin1", model.Admin)
	unit, task := seedUnitWithTask(t, f.db)
	require.NoError(t, f.db.Create(&model.Assignment{
		TraineeID: owner.ID, UnitID: unit.ID, AssessorID: assigned.ID, ClassIntakeID: 1,
	}).Error)
	sub := seedSubmission(t, f, owner, unit.ID, task.ID)

	allowed := []*model.User{owner, assigned, verifier, admin}
	for _, u := range allowed {
		_, err := f.workflow.GetSubmission(claimsFor(u), sub.ID)
		assert.NoError(t, err, "user %s", u.Username)
	}

	denied := []*model.User{other, unassigned}
	for _, u := range denied {
		_, err := f.workflow.GetSubmission(claimsFor(u), sub.ID)
		assert.True(t, errors.Is(err, util.ErrForbidden), "user %s", u.Username)
	}

	_, err := f.workflow.GetSubmission(claimsFor(admin), sub.ID+99)
	assert.True(t, errors.Is(err, util.ErrNotFound))
}

func TestListForAssessorFiltersByAssignmentAndStatus(t *testing.T) {
	f := newWorkflowFixture(t)
	t1 := seedUser(t, f.db, "trainee1", model.Trainee)
	t2 := seedUser(t, f.db, "trainee2", model.Trainee)
	assessor := seedUser(t, f.db, "assessor1", model.Assessor)
	unit, task := seedUnitWithTask(t, f.db)
	require.NoError(t, f.db.Create(&model.Assignment{
		TraineeID: t1.ID, UnitID: unit.ID, AssessorID: assessor.ID, ClassIntakeID: 1,
	}).Error)

	mine := seedSubmission(t, f, t1, unit.ID, task.ID)
	seedSubmission(t, f, t2, unit.ID, task.ID) // not assigned to this assessor

	out, err := f.workflow.ListForAssessor(claimsFor(assessor), "")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, mine.ID, out[0].ID)

	out, err = f.workflow.ListForAssessor(claimsFor(assessor), model.SubmissionApproved)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestCreateAssessmentCommitsWhenNotificationWriteFails(t *testing.T) {
	f := newWorkflowFixture(t)
	trainee := seedUser(t, f.db, "trainee1", model.Trainee)
	assessor := seedUser(t, f.db, "assessor1", model.Assessor)
	unit, task := seedUnitWithTask(t, f.db)
	require.NoError(t, f.db.Create(&model.Assignment{
		TraineeID: trainee.ID, UnitID: unit.ID, AssessorID: assessor.ID, ClassIntakeID: 1,
	}).Error)
	sub := seedSubmission(t, f, trainee, unit.ID, task.ID)

	// Break the fan-out and trail targets; the grading write must not
	// notice.
	require.NoError(t, f.db.Migrator().DropTable(&model.Notification{}))
	require.NoError(t, f.db.Migrator().DropTable(&model.ActivityLog{}))

	assessment, err := f.workflow.CreateAssessment(claimsFor(assessor), CreateAssessmentRequest{
		SubmissionID: sub.ID,
		Status:       model.AssessmentApproved,
		Feedback:     "checked on site",
	}, "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, model.AssessmentApproved, assessment.Status)

	got, err := f.submissions.FindByID(sub.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SubmissionApproved, got.Status)
}

func TestCreateSubmissionCommitsWhenNotificationWriteFails(t *testing.T) {
	f := newWorkflowFixture(t)
	trainee := seedUser(t, f.db, "trainee1", model.Trainee)
	assessor := seedUser(t, f.db, "assessor1", model.Assessor)
	unit, task := seedUnitWithTask(t, f.db)
	require.NoError(t, f.db.Create(&model.Assignment{
		TraineeID: trainee.ID, UnitID: unit.ID, AssessorID: assessor.ID, ClassIntakeID: 1,
	}).Error)

	require.NoError(t, f.db.Migrator().DropTable(&model.Notification{}))

	sub, err := f.workflow.CreateSubmission(context.Background(), claimsFor(trainee),
		CreateSubmissionRequest{TaskID: task.ID, Title: "Board photos", Description: "first attempt"},
		[]*multipart.FileHeader{evidenceFile(t, "board.png", util.MimePNG, 1024)},
		"127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, model.SubmissionPending, sub.Status)

	got, err := f.submissions.FindByID(sub.ID)
	require.NoError(t, err)
	assert.Equal(t, sub.Title, got.Title)
}

func TestVerificationDuplicateRejectedBySchema(t *testing.T) {
	f := newWorkflowFixture(t)
	verifier := seedUser(t, f.db, "iv1", model.InternalVerifier)

	v := model.Verification{
		AssessmentID: 1,
		VerifierID:   verifier.ID,
		VerifierType: model.VerifierInternal,
		Status:       model.VerificationConfirmed,
	}
	require.NoError(t, f.db.Create(&v).Error)

	// Writers that skip the service still cannot record the same
	// verifier twice for one assessment.
	dup := model.Verification{
		AssessmentID: 1,
		VerifierID:   verifier.ID,
		VerifierType: model.VerifierInternal,
		Status:       model.VerificationRejected,
	}
	assert.Error(t, f.db.Create(&dup).Error)

	other := model.Verification{
		AssessmentID: 1,
		VerifierID:   verifier.ID + 1,
		VerifierType: model.VerifierExternal,
		Status:       model.VerificationConfirmed,
	}
	assert.NoError(t, f.db.Create(&other).Error)
}
