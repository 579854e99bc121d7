package service

import (
	"context"
	"errors"
	"fmt"
	"poe_tracker_backend/internal/model"
	"poe_tracker_backend/internal/repository"
	"poe_tracker_backend/internal/util"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const unreadCacheTTL = 5 * time.Minute

// NotificationService owns the per-user inbox. The unread counter is a
// badge on every page load, so it is cached in redis and invalidated on
// each write; the cache is optional and failures fall back to the DB.
type NotificationService struct {
	Repo  *repository.NotificationRepository
	Redis *redis.Client
}

func NewNotificationService(repo *repository.NotificationRepository, rdb *redis.Client) *NotificationService {
	return &NotificationService{Repo: repo, Redis: rdb}
}

func unreadKey(userID uint) string {
	return fmt.Sprintf("poe:notifications:unread:%d", userID)
}

// Push writes one notification and drops the recipient's cached unread
// count. Callers on the workflow path treat a returned error as
// best-effort: logged, never propagated.
func (s *NotificationService) Push(n *model.Notification) error {
	if err := s.Repo.Create(n); err != nil {
		return err
	}
	s.invalidateUnread(n.UserID)
	return nil
}

func (s *NotificationService) List(userID uint, page, limit int) ([]model.Notification, int64, error) {
	return s.Repo.ListByUser(userID, page, limit)
}

// MarkRead flips the read flag; only the addressee may do so.
func (s *NotificationService) MarkRead(actorID, notificationID uint) error {
	n, err := s.Repo.FindByID(notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrNotFound
		}
		return err
	}
	if n.UserID != actorID {
		return util.ErrForbidden
	}
	if err := s.Repo.MarkRead(notificationID); err != nil {
		return err
	}
	s.invalidateUnread(actorID)
	return nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, unreadKey(userID)).Result(); err == nil {
			if count, err := strconv.ParseInt(cached, 10, 64); err == nil {
				return count, nil
			}
		}
	}

	count, err := s.Repo.CountUnread(userID)
	if err != nil {
		return 0, err
	}

	if s.Redis != nil {
		// Best-effort cache fill.
		s.Redis.Set(ctx, unreadKey(userID), count, unreadCacheTTL)
	}
	return count, nil
}

func (s *NotificationService) invalidateUnread(userID uint) {
	if s.Redis == nil {
		return
	}
	s.Redis.Del(context.Background(), unreadKey(userID))
}
