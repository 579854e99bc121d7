package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"poe_tracker_backend/internal/model"
	"poe_tracker_backend/internal/policy"
	"poe_tracker_backend/internal/repository"
	"poe_tracker_backend/internal/util"
	"time"

	"github.com/jung-kurt/gofpdf"
	"gorm.io/gorm"
)

// PortfolioService walks a trainee's submissions with their assessments
// and verifications and renders the Portfolio of Evidence document.
// Rendering or storing failures are fatal for the export; there is no
// partial document.
type PortfolioService struct {
	SubmissionRepo *repository.SubmissionRepository
	AssignmentRepo *repository.AssignmentRepository
	UserRepo       *repository.UserRepository
	UnitRepo       *repository.UnitRepository
	Storage        *StorageService
}

func NewPortfolioService(
	submissionRepo *repository.SubmissionRepository,
	assignmentRepo *repository.AssignmentRepository,
	userRepo *repository.UserRepository,
	unitRepo *repository.UnitRepository,
	storage *StorageService,
) *PortfolioService {
	return &PortfolioService{
		SubmissionRepo: submissionRepo,
		AssignmentRepo: assignmentRepo,
		UserRepo:       userRepo,
		UnitRepo:       unitRepo,
		Storage:        storage,
	}
}

// Export renders the portfolio PDF, uploads it to storage and returns
// the document bytes plus their stored location.
func (s *PortfolioService) Export(ctx context.Context, actor *util.Claims, traineeID uint) ([]byte, string, error) {
	assignedToTrainee := false
	if actor.Role == model.Assessor {
		var err error
		assignedToTrainee, err = s.AssignmentRepo.ExistsForTrainee(actor.UserID, traineeID)
		if err != nil {
			return nil, "", err
		}
	}
	if err := policy.CanExportPortfolio(actor.UserID, actor.Role, traineeID, assignedToTrainee).Err(); err != nil {
		return nil, "", err
	}

	trainee, err := s.UserRepo.FindByID(traineeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", util.ErrNotFound
		}
		return nil, "", err
	}
	if trainee.Role != model.Trainee {
		return nil, "", util.ErrNotFound
	}

	submissions, err := s.SubmissionRepo.ListByTrainee(traineeID)
	if err != nil {
		return nil, "", err
	}
	// Reload each with its assessment/verification chain.
	details := make([]*model.Submission, 0, len(submissions))
	for _, sub := range submissions {
		d, err := s.SubmissionRepo.FindDetail(sub.ID)
		if err != nil {
			return nil, "", err
		}
		details = append(details, d)
	}

	doc, err := s.render(trainee, details)
	if err != nil {
		return nil, "", fmt.Errorf("%w: rendering portfolio: %v", util.ErrUpstream, err)
	}

	objectName := fmt.Sprintf("portfolios/trainee_%d_%d.pdf", traineeID, time.Now().Unix())
	location, err := s.Storage.Upload(ctx, objectName, bytes.NewReader(doc), int64(len(doc)), "application/pdf")
	if err != nil {
		return nil, "", fmt.Errorf("%w: storing portfolio: %v", util.ErrUpstream, err)
	}

	return doc, location, nil
}

// render lays out: title page, table of contents in creation order,
// then one section per submission with files, assessments and each
// assessment's verifications.
func (s *PortfolioService) render(trainee *model.User, submissions []*model.Submission) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Portfolio of Evidence", false)

	// Title page.
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 24)
	pdf.CellFormat(0, 60, "", "", 1, "", false, 0, "")
	pdf.CellFormat(0, 12, "Portfolio of Evidence", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 14)
	pdf.CellFormat(0, 10, trainee.Name, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 8, "Generated "+time.Now().Format(util.TimeFormat), "", 1, "C", false, 0, "")

	// Table of contents.
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Contents", "", 1, "", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for i, sub := range submissions {
		pdf.CellFormat(0, 7, fmt.Sprintf("%d. %s (%s)", i+1, sub.Title, sub.Status), "", 1, "", false, 0, "")
	}
	if len(submissions) == 0 {
		pdf.CellFormat(0, 7, "No submissions yet", "", 1, "", false, 0, "")
	}

	for i, sub := range submissions {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 9, fmt.Sprintf("%d. %s", i+1, sub.Title), "", 1, "", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 6, "Status: "+string(sub.Status), "", 1, "", false, 0, "")
		pdf.CellFormat(0, 6, "Submitted: "+sub.CreatedAt.Format(util.TimeFormat), "", 1, "", false, 0, "")
		if sub.Description != "" {
			pdf.MultiCell(0, 5, sub.Description, "", "", false)
		}

		if len(sub.Files) > 0 {
			pdf.Ln(3)
			pdf.SetFont("Helvetica", "B", 11)
			pdf.CellFormat(0, 7, "Evidence files", "", 1, "", false, 0, "")
			pdf.SetFont("Helvetica", "", 10)
			for _, f := range sub.Files {
				pdf.CellFormat(0, 6, fmt.Sprintf("- %s (%s, %d bytes)", f.FileName, f.ContentType, f.SizeBytes), "", 1, "", false, 0, "")
			}
		}

		for _, assessment := range sub.Assessments {
			pdf.Ln(3)
			pdf.SetFont("Helvetica", "B", 11)
			pdf.CellFormat(0, 7, fmt.Sprintf("Assessment (%s, %s)", assessment.Status, assessment.CreatedAt.Format(util.DateFormat)), "", 1, "", false, 0, "")
			pdf.SetFont("Helvetica", "", 10)
			if assessment.Feedback != "" {
				pdf.MultiCell(0, 5, assessment.Feedback, "", "", false)
			}
			for _, criterion := range assessment.Criteria {
				mark := "not met"
				if criterion.Met {
					mark = "met"
				}
				pdf.CellFormat(0, 5, fmt.Sprintf("  [%s] %s", mark, criterion.Label), "", 1, "", false, 0, "")
			}

			for _, verification := range assessment.Verifications {
				pdf.SetFont("Helvetica", "I", 10)
				line := fmt.Sprintf("Verification (%s): %s", verification.VerifierType, verification.Status)
				if verification.Comments != "" {
					line += " - " + verification.Comments
				}
				pdf.CellFormat(0, 6, line, "", 1, "", false, 0, "")
				pdf.SetFont("Helvetica", "", 10)
			}
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
