package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campus-link/api-go/apperrors"
	"github.com/campus-link/api-go/models"
)

type ReportService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewReportService(db *gorm.DB, now func() time.Time) *ReportService {
	if now == nil {
		now = time.Now
	}
	return &ReportService{db: db, now: now}
}

// ReportFavor files a moderation report against a favor.
func (s *ReportService) ReportFavor(ctx context.Context, reporterID, favorID, motivo, descripcion string) (*models.Reporte, error) {
	motivo = strings.TrimSpace(motivo)
	if motivo == "" {
		return nil, apperrors.ErrMissingField
	}

	var report *models.Reporte
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		favor, err := loadFavor(tx, favorID)
		if err != nil {
			return err
		}
		if favor.UsuarioID == reporterID {
			return apperrors.ErrSelfReport
		}

		var existing int64
		if err := tx.Model(&models.Reporte{}).
			Where("reportador_id = ? AND contenido_id = ? AND estado = ?", reporterID, favorID, models.ReporteEstadoPendiente).
			Count(&existing).Error; err != nil {
			return apperrors.ErrDBError.Wrap(err)
		}
		if existing > 0 {
			return apperrors.ErrAlreadyReported
		}

		now := s.now()
		report = &models.Reporte{
			ID:            uuid.NewString(),
			CreatedAt:     now,
			ReportadorID:  reporterID,
			ContenidoID:   favorID,
			TipoContenido: models.ContenidoFavor,
			Motivo:        motivo,
			Descripcion:   strings.TrimSpace(descripcion),
			Estado:        models.ReporteEstadoPendiente,
		}
		if err := tx.Create(report).Error; err != nil {
			return apperrors.ErrDBError.Wrap(err)
		}
		return logActivity(tx, favorID, reporterID, models.AccionReportado, now)
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

func requireAdmin(tx *gorm.DB, userID string) error {
	user, err := loadUser(tx, userID)
	if err != nil {
		return err
	}
	if !user.IsAdmin() {
		return apperrors.ErrForbidden
	}
	return nil
}

// ListPending returns open reports, oldest first. Admin only.
func (s *ReportService) ListPending(ctx context.Context, adminID string) ([]models.Reporte, error) {
	db := s.db.WithContext(ctx)
	if err := requireAdmin(db, adminID); err != nil {
		return nil, err
	}
	var reports []models.Reporte
	if err := db.Where("estado = ?", models.ReporteEstadoPendiente).Order("created_at").Find(&reports).Error; err != nil {
		return nil, apperrors.ErrDBError.Wrap(err)
	}
	return reports, nil
}

// Resolve closes a report as revisado or descartado. Admin only.
func (s *ReportService) Resolve(ctx context.Context, adminID, reportID, estado string) (*models.Reporte, error) {
	if estado != models.ReporteEstadoRevisado && estado != models.ReporteEstadoDescartado {
		return nil, apperrors.ErrInvalidParams
	}

	var report models.Reporte
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireAdmin(tx, adminID); err != nil {
			return err
		}
		if err := tx.First(&report, "id = ?", reportID).Error; err != nil {
			return notFound(err, apperrors.ErrReportNotFound)
		}
		report.Estado = estado
		if err := tx.Model(&report).Update("estado", estado).Error; err != nil {
			return apperrors.ErrDBError.Wrap(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &report, nil
}
