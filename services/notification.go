package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/campus-link/api-go/apperrors"
	"github.com/campus-link/api-go/models"
	"github.com/campus-link/api-go/pkg/logger"
)

// Publisher pushes a stored notification to live subscribers.
type Publisher interface {
	Publish(n *models.Notificacion) error
}

// NotificationService stores notifications and fans them out. Notify never
// returns an error: a failed notification must not undo the change that
// triggered it.
type NotificationService struct {
	db        *gorm.DB
	publisher Publisher
	log       *zap.Logger
	now       func() time.Time
}

func NewNotificationService(db *gorm.DB, publisher Publisher, log *zap.Logger, now func() time.Time) *NotificationService {
	if log == nil {
		log = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &NotificationService{db: db, publisher: publisher, log: log, now: now}
}

func (s *NotificationService) Notify(ctx context.Context, userID, tipo, favorID, mensaje string) {
	if userID == "" {
		return
	}
	n := &models.Notificacion{
		ID:        uuid.NewString(),
		CreatedAt: s.now(),
		UsuarioID: userID,
		Tipo:      tipo,
		Mensaje:   mensaje,
		FavorID:   favorID,
	}

	if err := s.db.WithContext(ctx).Create(n).Error; err != nil {
		s.log.Warn("notification not stored",
			zap.String(logger.FieldUserID, userID),
			zap.String(logger.FieldFavorID, favorID),
			zap.String("tipo", tipo),
			zap.Error(err))
		return
	}

	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(n); err != nil {
		s.log.Warn("notification not published",
			zap.String(logger.FieldUserID, userID),
			zap.String("notification_id", n.ID),
			zap.Error(err))
	}
}

// ListForUser returns userID's notifications, newest first.
func (s *NotificationService) ListForUser(ctx context.Context, userID string, unreadOnly bool) ([]models.Notificacion, error) {
	q := s.db.WithContext(ctx).Where("usuario_id = ?", userID)
	if unreadOnly {
		q = q.Where("leida = ?", false)
	}
	var list []models.Notificacion
	if err := q.Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, apperrors.ErrDBError.Wrap(err)
	}
	return list, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Notificacion{}).
		Where("usuario_id = ? AND leida = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.ErrDBError.Wrap(err)
	}
	return count, nil
}

// MarkRead marks one of userID's notifications as read.
func (s *NotificationService) MarkRead(ctx context.Context, userID, id string) error {
	res := s.db.WithContext(ctx).Model(&models.Notificacion{}).
		Where("id = ? AND usuario_id = ?", id, userID).
		Update("leida", true)
	if res.Error != nil {
		return apperrors.ErrDBError.Wrap(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotificationNotFound
	}
	return nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	res := s.db.WithContext(ctx).Model(&models.Notificacion{}).
		Where("usuario_id = ? AND leida = ?", userID, false).
		Update("leida", true)
	if res.Error != nil {
		return 0, apperrors.ErrDBError.Wrap(res.Error)
	}
	return res.RowsAffected, nil
}
