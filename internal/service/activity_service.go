package service

import (
	"poe_tracker_backend/internal/model"
	"poe_tracker_backend/internal/policy"
	"poe_tracker_backend/internal/repository"
)

// ActivityService exposes the append-only audit trail.
type ActivityService struct {
	Repo *repository.ActivityRepository
}

func NewActivityService(repo *repository.ActivityRepository) *ActivityService {
	return &ActivityService{Repo: repo}
}

// ListForUser: a user reads their own trail; admins read anyone's.
func (s *ActivityService) ListForUser(actorID uint, actorRole model.UserRole, targetID uint, page, limit int) ([]model.ActivityLog, int64, error) {
	if err := policy.SelfOrAdmin(actorID, actorRole, targetID).Err(); err != nil {
		return nil, 0, err
	}
	return s.Repo.ListByUser(targetID, page, limit)
}

// ListAll is the admin-wide view.
func (s *ActivityService) ListAll(page, limit int) ([]model.ActivityLog, int64, error) {
	return s.Repo.ListAll(page, limit)
}
