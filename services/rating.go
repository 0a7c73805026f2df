package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/campus-link/api-go/apperrors"
	"github.com/campus-link/api-go/lifecycle"
	"github.com/campus-link/api-go/models"
	"github.com/campus-link/api-go/pkg/logger"
)

type RatingService struct {
	db       *gorm.DB
	notifier Notifier
	log      *zap.Logger
	now      func() time.Time
}

func NewRatingService(db *gorm.DB, notifier Notifier, log *zap.Logger, now func() time.Time) *RatingService {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &RatingService{db: db, notifier: notifier, log: log, now: now}
}

type RateInput struct {
	FavorID    string
	RaterID    string
	Estrellas  int
	Comentario string
}

// Summary is the cached reputation of a user.
type Summary struct {
	UsuarioID           string  `json:"usuarioId"`
	Reputacion          float64 `json:"reputacion"`
	TotalCalificaciones int     `json:"totalCalificaciones"`
}

// Rate records a rating under policy and refreshes the rated user's average.
func (s *RatingService) Rate(ctx context.Context, in RateInput, policy lifecycle.RatingPolicy) (*models.Calificacion, error) {
	if in.Estrellas < 1 || in.Estrellas > 5 {
		return nil, apperrors.ErrInvalidRating
	}

	var rating *models.Calificacion
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		favor, err := loadFavor(tx, in.FavorID)
		if err != nil {
			return err
		}
		rater, err := loadUser(tx, in.RaterID)
		if err != nil {
			return err
		}

		eligibility, err := policy.Check(favor, rater.ID)
		if err != nil {
			return err
		}
		// Locked before the insert so a concurrent rating of the same user
		// waits and then recomputes over both rows.
		rated, err := lockUser(tx, eligibility.Rated.ID)
		if err != nil {
			return err
		}

		raterName := strings.TrimSpace(rater.Nombre)
		ratedName := strings.TrimSpace(eligibility.Rated.Nombre)
		if ratedName == "" {
			ratedName = strings.TrimSpace(rated.Nombre)
		}
		if raterName == "" || ratedName == "" {
			return apperrors.ErrMissingField
		}

		if err := guardDuplicate(tx, favor.ID, rater.ID); err != nil {
			return err
		}

		now := s.now()
		rating = &models.Calificacion{
			ID:                uuid.NewString(),
			CreatedAt:         now,
			FavorID:           favor.ID,
			CalificadorID:     rater.ID,
			CalificadorNombre: raterName,
			CalificadoID:      rated.ID,
			CalificadoNombre:  ratedName,
			Estrellas:         in.Estrellas,
			Comentario:        strings.TrimSpace(in.Comentario),
			Rol:               eligibility.RaterRole,
		}
		if err := insertRating(tx, rating); err != nil {
			return err
		}
		if _, err := recompute(tx, rated.ID); err != nil {
			return err
		}
		return logActivity(tx, favor.ID, rater.ID, models.AccionCalificado, now)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, rating.CalificadoID, models.NotifCalificacionRecibida, rating.FavorID,
		fmt.Sprintf("%s rated you %d stars", rating.CalificadorNombre, rating.Estrellas))
	return rating, nil
}

// guardDuplicate is the pre-insert existence check on (favor, rater).
func guardDuplicate(tx *gorm.DB, favorID, raterID string) error {
	var count int64
	err := tx.Model(&models.Calificacion{}).
		Where("favor_id = ? AND calificador_id = ?", favorID, raterID).
		Count(&count).Error
	if err != nil {
		return apperrors.ErrDBError.Wrap(err)
	}
	if count > 0 {
		return apperrors.ErrAlreadyRated
	}
	return nil
}

// insertRating relies on the unique index when two submissions both passed
// guardDuplicate.
func insertRating(tx *gorm.DB, rating *models.Calificacion) error {
	if err := tx.Create(rating).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrAlreadyRated
		}
		return apperrors.ErrDBError.Wrap(err)
	}
	return nil
}

// RecomputeAverage rebuilds userID's cached reputation from all their ratings.
func (s *RatingService) RecomputeAverage(ctx context.Context, userID string) (Summary, error) {
	var summary Summary
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		summary, err = recompute(tx, userID)
		return err
	})
	return summary, err
}

// RecomputeAll rebuilds the reputation of every user and returns how many
// were updated.
func (s *RatingService) RecomputeAll(ctx context.Context) (int, error) {
	var ids []string
	if err := s.db.WithContext(ctx).Model(&models.Usuario{}).Order("id").Pluck("id", &ids).Error; err != nil {
		return 0, apperrors.ErrDBError.Wrap(err)
	}
	for i, id := range ids {
		if _, err := s.RecomputeAverage(ctx, id); err != nil {
			s.logFailure("recompute_all", err)
			return i, err
		}
	}
	s.log.Info("reputation recomputed", zap.Int("users", len(ids)))
	return len(ids), nil
}

func recompute(tx *gorm.DB, userID string) (Summary, error) {
	if _, err := lockUser(tx, userID); err != nil {
		return Summary{}, err
	}

	var stars []int
	if err := tx.Model(&models.Calificacion{}).Where("calificado_id = ?", userID).Pluck("estrellas", &stars).Error; err != nil {
		return Summary{}, apperrors.ErrDBError.Wrap(err)
	}

	summary := Average(stars)
	summary.UsuarioID = userID
	err := tx.Model(&models.Usuario{ID: userID}).
		Select("reputacion", "total_calificaciones").
		Updates(&models.Usuario{Reputacion: summary.Reputacion, TotalCalificaciones: summary.TotalCalificaciones}).Error
	if err != nil {
		return Summary{}, apperrors.ErrDBError.Wrap(err)
	}
	return summary, nil
}

// Average is the mean of stars rounded to one decimal, or the default
// reputation when there are none.
func Average(stars []int) Summary {
	if len(stars) == 0 {
		return Summary{Reputacion: models.DefaultReputacion}
	}
	sum := 0
	for _, v := range stars {
		sum += v
	}
	mean := float64(sum) / float64(len(stars))
	return Summary{Reputacion: math.Round(mean*10) / 10, TotalCalificaciones: len(stars)}
}

// ListReceived returns the ratings userID received, newest first.
func (s *RatingService) ListReceived(ctx context.Context, userID string) ([]models.Calificacion, error) {
	var ratings []models.Calificacion
	if err := s.db.WithContext(ctx).Where("calificado_id = ?", userID).Order("created_at DESC").Find(&ratings).Error; err != nil {
		return nil, apperrors.ErrDBError.Wrap(err)
	}
	return ratings, nil
}

func (s *RatingService) ListForFavor(ctx context.Context, favorID string) ([]models.Calificacion, error) {
	var ratings []models.Calificacion
	if err := s.db.WithContext(ctx).Where("favor_id = ?", favorID).Order("created_at").Find(&ratings).Error; err != nil {
		return nil, apperrors.ErrDBError.Wrap(err)
	}
	return ratings, nil
}

func (s *RatingService) logFailure(op string, err error) {
	s.log.Warn("rating operation failed", zap.String(logger.FieldOperation, op), zap.Error(err))
}
