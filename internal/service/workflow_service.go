package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"poe_tracker_backend/internal/model"
	"poe_tracker_backend/internal/policy"
	"poe_tracker_backend/internal/repository"
	"poe_tracker_backend/internal/util"
	"poe_tracker_backend/pkg/logger"
	"poe_tracker_backend/pkg/monitoring"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// WorkflowService is the submission → assessment → verification state
// machine. Every precondition, authorization or validation failure
// aborts with no partial write; notification and activity-log writes
// are best-effort and never abort the primary transition.
type WorkflowService struct {
	SubmissionRepo   *repository.SubmissionRepository
	AssessmentRepo   *repository.AssessmentRepository
	VerificationRepo *repository.VerificationRepository
	AssignmentRepo   *repository.AssignmentRepository
	UnitRepo         *repository.UnitRepository
	UserRepo         *repository.UserRepository
	ActivityRepo     *repository.ActivityRepository
	Notifications    *NotificationService
	Storage          *StorageService
}

func NewWorkflowService(
	submissionRepo *repository.SubmissionRepository,
	assessmentRepo *repository.AssessmentRepository,
	verificationRepo *repository.VerificationRepository,
	assignmentRepo *repository.AssignmentRepository,
	unitRepo *repository.UnitRepository,
	userRepo *repository.UserRepository,
	activityRepo *repository.ActivityRepository,
	notifications *NotificationService,
	storage *StorageService,
) *WorkflowService {
	return &WorkflowService{
		SubmissionRepo:   submissionRepo,
		AssessmentRepo:   assessmentRepo,
		VerificationRepo: verificationRepo,
		AssignmentRepo:   assignmentRepo,
		UnitRepo:         unitRepo,
		UserRepo:         userRepo,
		ActivityRepo:     activityRepo,
		Notifications:    notifications,
		Storage:          storage,
	}
}

type CreateSubmissionRequest struct {
	TaskID      uint
	Title       string
	Description string
}

// CreateSubmission is the workflow entry point. Files are validated
// against the allow-list and size cap before anything is written, so a
// bad file means no submission at all. An assessor notification goes
// out only when an assignment covers the trainee/unit pair; absence of
// one does not fail the operation.
func (s *WorkflowService) CreateSubmission(ctx context.Context, actor *util.Claims, req CreateSubmissionRequest, files []*multipart.FileHeader, origin string) (*model.Submission, error) {
	if err := policy.RequireRole(actor.Role, model.Trainee).Err(); err != nil {
		return nil, err
	}

	if req.Title == "" {
		return nil, util.NewValidationError("title", "must not be empty")
	}
	if len(files) == 0 {
		return nil, util.NewValidationError("files", "at least one evidence file is required")
	}

	task, err := s.UnitRepo.FindTask(req.TaskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, err
	}
	unit, err := s.UnitRepo.FindUnit(task.UnitID)
	if err != nil {
		return nil, err
	}

	// Validate everything up front.
	for _, header := range files {
		if err := util.ValidateUpload(header); err != nil {
			return nil, err
		}
	}

	var records []model.SubmissionFile
	for _, header := range files {
		src, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: opening upload %s: %v", util.ErrUpstream, header.Filename, err)
		}

		objectName := fmt.Sprintf("evidence/%d/%d_%s", actor.UserID, time.Now().UnixNano(), filepath.Base(header.Filename))
		contentType := header.Header.Get("Content-Type")
		location, err := s.Storage.Upload(ctx, objectName, src, header.Size, contentType)
		src.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: storing upload %s: %v", util.ErrUpstream, header.Filename, err)
		}

		records = append(records, model.SubmissionFile{
			FileName:    header.Filename,
			ContentType: contentType,
			StoragePath: location,
			SizeBytes:   header.Size,
		})
	}

	sub := &model.Submission{
		TraineeID:   actor.UserID,
		TaskID:      task.ID,
		UnitID:      unit.ID,
		Title:       req.Title,
		Description: req.Description,
		Status:      model.SubmissionPending,
	}
	if err := s.SubmissionRepo.CreateWithFiles(sub, records); err != nil {
		return nil, err
	}

	monitoring.WorkflowTransitions.WithLabelValues("submission", string(sub.Status)).Inc()

	// Fan-out: the assigned assessor, when one exists.
	assignment, err := s.AssignmentRepo.FindForTraineeUnit(actor.UserID, unit.ID)
	if err != nil {
		logger.Log.Error("assignment lookup for notification failed", zap.Error(err), zap.Uint("submission", sub.ID))
	} else if assignment != nil {
		s.notify(assignment.AssessorID, model.NotificationSubmission,
			"New submission awaiting assessment",
			fmt.Sprintf("%q was submitted for unit %s", sub.Title, unit.Name),
			sub.ID)
	}

	s.logActivity(actor.UserID, "submission.create",
		fmt.Sprintf("submission %d for task %d", sub.ID, task.ID), origin)

	return sub, nil
}

type CreateAssessmentRequest struct {
	SubmissionID uint                   `json:"submissionId" binding:"required"`
	Status       model.AssessmentStatus `json:"status" binding:"required,oneof=approved resubmit rejected"`
	Feedback     string                 `json:"feedback"`
	Criteria     model.CriteriaResults  `json:"criteria"`
}

// CreateAssessment records an assessor decision and mirrors it onto the
// submission. Only the assessor holding a matching assignment may act;
// anyone else gets Forbidden with nothing written.
func (s *WorkflowService) CreateAssessment(actor *util.Claims, req CreateAssessmentRequest, origin string) (*model.Assessment, error) {
	sub, err := s.SubmissionRepo.FindByID(req.SubmissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, err
	}

	assigned, err := s.AssignmentRepo.ExistsForAssessor(actor.UserID, sub.TraineeID, sub.UnitID)
	if err != nil {
		return nil, err
	}
	if err := policy.CanAssess(actor.Role, assigned).Err(); err != nil {
		return nil, err
	}

	assessment := &model.Assessment{
		SubmissionID: sub.ID,
		AssessorID:   actor.UserID,
		Status:       req.Status,
		Feedback:     req.Feedback,
		Criteria:     req.Criteria,
	}

	newStatus := assessment.SubmissionStatusFor()
	err = s.AssessmentRepo.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(assessment).Error; err != nil {
			return err
		}
		return tx.Model(&model.Submission{}).
			Where("id = ?", sub.ID).
			Update("status", newStatus).
			Error
	})
	if err != nil {
		return nil, err
	}

	monitoring.WorkflowTransitions.WithLabelValues("assessment", string(req.Status)).Inc()

	s.notify(sub.TraineeID, model.NotificationAssessment,
		"Your submission was assessed",
		fmt.Sprintf("%q was marked %s", sub.Title, req.Status),
		assessment.ID)

	if req.Status == model.AssessmentApproved {
		s.notifyRole(model.InternalVerifier, model.NotificationVerification,
			"Assessment ready for internal verification",
			fmt.Sprintf("Submission %q was approved and awaits verification", sub.Title),
			assessment.ID)
	}

	s.logActivity(actor.UserID, "assessment.create",
		fmt.Sprintf("assessment %d on submission %d: %s", assessment.ID, sub.ID, req.Status), origin)

	return assessment, nil
}

type CreateVerificationRequest struct {
	AssessmentID uint                     `json:"assessmentId" binding:"required"`
	Status       model.VerificationStatus `json:"status" binding:"required,oneof=confirmed rejected flagged"`
	Comments     string                   `json:"comments"`
}

// CreateVerification records an audit decision on an assessment. A
// verifier acts at most once per assessment; a second attempt is a
// conflict with nothing written.
func (s *WorkflowService) CreateVerification(actor *util.Claims, req CreateVerificationRequest, origin string) (*model.Verification, error) {
	if err := policy.CanVerify(actor.Role).Err(); err != nil {
		return nil, err
	}
	verifierType, _ := model.VerifierTypeForRole(actor.Role)

	assessment, err := s.AssessmentRepo.FindByID(req.AssessmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, err
	}

	already, err := s.VerificationRepo.ExistsByVerifier(assessment.ID, actor.UserID)
	if err != nil {
		return nil, err
	}
	if already {
		return nil, util.ErrAlreadyVerified
	}

	verification := &model.Verification{
		AssessmentID: assessment.ID,
		VerifierID:   actor.UserID,
		VerifierType: verifierType,
		Status:       req.Status,
		Comments:     req.Comments,
	}
	if err := s.VerificationRepo.Create(verification); err != nil {
		return nil, err
	}

	monitoring.WorkflowTransitions.WithLabelValues("verification", string(req.Status)).Inc()

	s.notify(assessment.AssessorID, model.NotificationVerification,
		"Your assessment was verified",
		fmt.Sprintf("Assessment %d was marked %s by a %s verifier", assessment.ID, req.Status, verifierType),
		verification.ID)

	if req.Status == model.VerificationRejected {
		if sub, err := s.SubmissionRepo.FindByID(assessment.SubmissionID); err != nil {
			logger.Log.Error("submission lookup for rejection notice failed", zap.Error(err))
		} else {
			s.notify(sub.TraineeID, model.NotificationVerification,
				"Verification rejected an assessment of your work",
				fmt.Sprintf("The assessment of %q was rejected during verification", sub.Title),
				verification.ID)
		}
	}

	if req.Status == model.VerificationConfirmed && verifierType == model.VerifierInternal {
		s.notifyRole(model.ExternalVerifier, model.NotificationVerification,
			"Assessment ready for external verification",
			fmt.Sprintf("Assessment %d passed internal verification", assessment.ID),
			verification.ID)
	}

	s.logActivity(actor.UserID, "verification.create",
		fmt.Sprintf("verification %d on assessment %d: %s", verification.ID, assessment.ID, req.Status), origin)

	return verification, nil
}

// GetSubmission returns the full detail view. Access: owning trainee,
// assigned assessor, verifiers, admin.
func (s *WorkflowService) GetSubmission(actor *util.Claims, id uint) (*model.Submission, error) {
	sub, err := s.SubmissionRepo.FindDetail(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, err
	}

	assigned := false
	if actor.Role == model.Assessor {
		assigned, err = s.AssignmentRepo.ExistsForAssessor(actor.UserID, sub.TraineeID, sub.UnitID)
		if err != nil {
			return nil, err
		}
	}

	if err := policy.CanViewSubmission(actor.UserID, actor.Role, sub, assigned).Err(); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *WorkflowService) ListOwnSubmissions(actor *util.Claims) ([]model.Submission, error) {
	if err := policy.RequireRole(actor.Role, model.Trainee).Err(); err != nil {
		return nil, err
	}
	return s.SubmissionRepo.ListByTrainee(actor.UserID)
}

func (s *WorkflowService) ListForAssessor(actor *util.Claims, status model.SubmissionStatus) ([]model.Submission, error) {
	if err := policy.RequireRole(actor.Role, model.Assessor).Err(); err != nil {
		return nil, err
	}
	return s.SubmissionRepo.ListForAssessor(actor.UserID, status)
}

// ListVerifiable returns approved assessments with their existing
// verifications, the verifier work queue.
func (s *WorkflowService) ListVerifiable(actor *util.Claims) ([]model.Assessment, error) {
	if err := policy.CanVerify(actor.Role).Err(); err != nil {
		return nil, err
	}
	return s.AssessmentRepo.ListApproved()
}

// notify is best-effort: a failed write is logged, never propagated.
func (s *WorkflowService) notify(userID uint, typ model.NotificationType, title, message string, entityID uint) {
	id := entityID
	n := &model.Notification{
		UserID:   userID,
		Type:     typ,
		Title:    title,
		Message:  message,
		EntityID: &id,
	}
	if err := s.Notifications.Push(n); err != nil {
		logger.Log.Error("notification write failed",
			zap.Uint("user", userID), zap.String("type", string(typ)), zap.Error(err))
	}
}

// notifyRole fans out to every active user holding the role.
func (s *WorkflowService) notifyRole(role model.UserRole, typ model.NotificationType, title, message string, entityID uint) {
	users, err := s.UserRepo.FindByRole(role)
	if err != nil {
		logger.Log.Error("role fan-out lookup failed", zap.String("role", string(role)), zap.Error(err))
		return
	}
	for _, u := range users {
		s.notify(u.ID, typ, title, message, entityID)
	}
}

// logActivity is best-effort, same policy as notify.
func (s *WorkflowService) logActivity(userID uint, action, detail, origin string) {
	entry := &model.ActivityLog{
		UserID:   userID,
		Action:   action,
		Detail:   detail,
		IPOrigin: origin,
	}
	if err := s.ActivityRepo.Create(entry); err != nil {
		logger.Log.Error("activity log write failed", zap.String("action", action), zap.Error(err))
	}
}
