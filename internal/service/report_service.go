package service

import (
	"poe_tracker_backend/internal/model"
	"poe_tracker_backend/internal/policy"
	"poe_tracker_backend/internal/repository"
)

// ReportService computes read-only aggregates by full scan, which is
// fine at the data volumes of a training provider. Turnaround is
// measured against a submission's FIRST assessment, in days; a cohort
// with nothing assessed reports 0, never NaN.
type ReportService struct {
	SubmissionRepo *repository.SubmissionRepository
	AssessmentRepo *repository.AssessmentRepository
	UserRepo       *repository.UserRepository
	UnitRepo       *repository.UnitRepository
}

func NewReportService(
	submissionRepo *repository.SubmissionRepository,
	assessmentRepo *repository.AssessmentRepository,
	userRepo *repository.UserRepository,
	unitRepo *repository.UnitRepository,
) *ReportService {
	return &ReportService{
		SubmissionRepo: submissionRepo,
		AssessmentRepo: assessmentRepo,
		UserRepo:       userRepo,
		UnitRepo:       unitRepo,
	}
}

type TraineePerformance struct {
	TraineeID         uint                           `json:"traineeId"`
	TraineeName       string                         `json:"traineeName"`
	CountsByStatus    map[model.SubmissionStatus]int `json:"countsByStatus"`
	AverageTurnaround float64                        `json:"averageTurnaround"`
}

// TraineePerformanceReport: per trainee, submission counts by status
// and mean days from submission to first assessment.
func (s *ReportService) TraineePerformanceReport(actorRole model.UserRole) ([]TraineePerformance, error) {
	if err := policy.CanViewReports(actorRole).Err(); err != nil {
		return nil, err
	}

	trainees, err := s.UserRepo.FindByRole(model.Trainee)
	if err != nil {
		return nil, err
	}
	submissions, err := s.SubmissionRepo.ListAll()
	if err != nil {
		return nil, err
	}
	assessments, err := s.AssessmentRepo.ListAll()
	if err != nil {
		return nil, err
	}
	firstBySubmission := firstAssessments(assessments)

	var out []TraineePerformance
	for _, t := range trainees {
		row := TraineePerformance{
			TraineeID:      t.ID,
			TraineeName:    t.Name,
			CountsByStatus: map[model.SubmissionStatus]int{},
		}

		var totalDays float64
		var assessed int
		for _, sub := range submissions {
			if sub.TraineeID != t.ID {
				continue
			}
			row.CountsByStatus[sub.Status]++
			if first, ok := firstBySubmission[sub.ID]; ok {
				totalDays += first.CreatedAt.Sub(sub.CreatedAt).Hours() / 24
				assessed++
			}
		}
		if assessed > 0 {
			row.AverageTurnaround = totalDays / float64(assessed)
		}
		out = append(out, row)
	}
	return out, nil
}

type AssessorActivity struct {
	AssessorID        uint                           `json:"assessorId"`
	AssessorName      string                         `json:"assessorName"`
	CountsByStatus    map[model.AssessmentStatus]int `json:"countsByStatus"`
	AverageTurnaround float64                        `json:"averageTurnaround"`
}

// AssessorActivityReport: per assessor, assessment counts by status and
// mean turnaround against each assessment's own submission.
func (s *ReportService) AssessorActivityReport(actorRole model.UserRole) ([]AssessorActivity, error) {
	if err := policy.CanViewReports(actorRole).Err(); err != nil {
		return nil, err
	}

	assessors, err := s.UserRepo.FindByRole(model.Assessor)
	if err != nil {
		return nil, err
	}
	submissions, err := s.SubmissionRepo.ListAll()
	if err != nil {
		return nil, err
	}
	assessments, err := s.AssessmentRepo.ListAll()
	if err != nil {
		return nil, err
	}

	submissionByID := make(map[uint]model.Submission, len(submissions))
	for _, sub := range submissions {
		submissionByID[sub.ID] = sub
	}
	firstBySubmission := firstAssessments(assessments)

	var out []AssessorActivity
	for _, a := range assessors {
		row := AssessorActivity{
			AssessorID:     a.ID,
			AssessorName:   a.Name,
			CountsByStatus: map[model.AssessmentStatus]int{},
		}

		var totalDays float64
		var measured int
		for _, assessment := range assessments {
			if assessment.AssessorID != a.ID {
				continue
			}
			row.CountsByStatus[assessment.Status]++
			first, ok := firstBySubmission[assessment.SubmissionID]
			if !ok || first.ID != assessment.ID {
				continue
			}
			if sub, ok := submissionByID[assessment.SubmissionID]; ok {
				totalDays += assessment.CreatedAt.Sub(sub.CreatedAt).Hours() / 24
				measured++
			}
		}
		if measured > 0 {
			row.AverageTurnaround = totalDays / float64(measured)
		}
		out = append(out, row)
	}
	return out, nil
}

type AssessmentOutcome struct {
	UnitID         uint                           `json:"unitId"`
	TaskID         uint                           `json:"taskId"`
	CountsByStatus map[model.SubmissionStatus]int `json:"countsByStatus"`
}

// AssessmentOutcomesReport: per (unit, task) pair, submission counts by
// status, in first-seen order.
func (s *ReportService) AssessmentOutcomesReport(actorRole model.UserRole) ([]AssessmentOutcome, error) {
	if err := policy.CanViewReports(actorRole).Err(); err != nil {
		return nil, err
	}

	submissions, err := s.SubmissionRepo.ListAll()
	if err != nil {
		return nil, err
	}

	type key struct{ unitID, taskID uint }
	index := map[key]int{}
	var out []AssessmentOutcome
	for _, sub := range submissions {
		k := key{sub.UnitID, sub.TaskID}
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, AssessmentOutcome{
				UnitID:         sub.UnitID,
				TaskID:         sub.TaskID,
				CountsByStatus: map[model.SubmissionStatus]int{},
			})
		}
		out[i].CountsByStatus[sub.Status]++
	}
	return out, nil
}

// firstAssessments indexes the earliest assessment of each submission.
// Assessments arrive ordered by id, so the first seen wins.
func firstAssessments(assessments []model.Assessment) map[uint]model.Assessment {
	first := make(map[uint]model.Assessment)
	for _, a := range assessments {
		if _, ok := first[a.SubmissionID]; !ok {
			first[a.SubmissionID] = a
		}
	}
	return first
}
