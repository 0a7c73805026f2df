package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"gorm.io/gorm"

	"github.com/campus-link/api-go/apperrors"
	"github.com/campus-link/api-go/lifecycle"
	"github.com/campus-link/api-go/models"
	"github.com/campus-link/api-go/pkg/logger"
)

type FavorService struct {
	db       *gorm.DB
	notifier Notifier
	log      *zap.Logger
	now      func() time.Time
}

func NewFavorService(db *gorm.DB, notifier Notifier, log *zap.Logger, now func() time.Time) *FavorService {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &FavorService{db: db, notifier: notifier, log: log, now: now}
}

// FavorFilter narrows the public favor listing.
type FavorFilter struct {
	Categoria string
	Page      int
	PageSize  int
}

// FavorPage is one page of the public listing.
type FavorPage struct {
	Items []models.Favor
	Total int
}

var openStates = []string{models.EstadoActivo, models.EstadoPendiente, models.EstadoEnProceso}

func (s *FavorService) Create(ctx context.Context, ownerID string, in lifecycle.NewFavorInput) (*models.Favor, error) {
	var favor *models.Favor
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owner, err := loadUser(tx, ownerID)
		if err != nil {
			return err
		}

		now := s.now()
		favor, err = lifecycle.NewFavor(owner, in, now)
		if err != nil {
			return err
		}
		favor.ID = uuid.NewString()
		favor.CreatedAt = now
		if err := tx.Create(favor).Error; err != nil {
			return apperrors.ErrDBError.Wrap(err)
		}

		owner.FavoresPublicados = appendUnique(owner.FavoresPublicados, favor.ID)
		if err := tx.Model(owner).Select("favores_publicados").Updates(owner).Error; err != nil {
			return apperrors.ErrDBError.Wrap(err)
		}
		return logActivity(tx, favor.ID, ownerID, models.AccionCreado, now)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("favor created", zap.String(logger.FieldFavorID, favor.ID), zap.String(logger.FieldUserID, ownerID))
	return favor, nil
}

func (s *FavorService) Get(ctx context.Context, id string) (*models.Favor, error) {
	return loadFavor(s.db.WithContext(ctx), id)
}

// List returns open, unexpired favors, pinned first and newest next.
func (s *FavorService) List(ctx context.Context, filter FavorFilter) (*FavorPage, error) {
	var favors []models.Favor
	err := s.db.WithContext(ctx).
		Where("estado IN ?", openStates).
		Where("fecha_expiracion > ?", s.now()).
		Find(&favors).Error
	if err != nil {
		return nil, apperrors.ErrDBError.Wrap(err)
	}

	if filter.Categoria != "" {
		fold := cases.Fold()
		want := fold.String(filter.Categoria)
		kept := favors[:0]
		for _, f := range favors {
			if fold.String(f.Categoria) == want {
				kept = append(kept, f)
			}
		}
		favors = kept
	}

	sort.SliceStable(favors, func(i, j int) bool {
		if favors[i].Fijado != favors[j].Fijado {
			return favors[i].Fijado
		}
		return favors[i].CreatedAt.After(favors[j].CreatedAt)
	})

	page := &FavorPage{Total: len(favors), Items: []models.Favor{}}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	num := filter.Page
	if num <= 0 {
		num = 1
	}
	start := (num - 1) * size
	if start >= len(favors) {
		return page, nil
	}
	end := start + size
	if end > len(favors) {
		end = len(favors)
	}
	page.Items = favors[start:end]
	return page, nil
}

// ListByOwner returns every favor ownerID published, newest first.
func (s *FavorService) ListByOwner(ctx context.Context, ownerID string) ([]models.Favor, error) {
	var favors []models.Favor
	if err := s.db.WithContext(ctx).Where("usuario_id = ?", ownerID).Order("created_at DESC").Find(&favors).Error; err != nil {
		return nil, apperrors.ErrDBError.Wrap(err)
	}
	return favors, nil
}

// ListByHelper returns favors userID helped on or still has an offer in.
func (s *FavorService) ListByHelper(ctx context.Context, userID string) ([]models.Favor, error) {
	var candidates []models.Favor
	err := s.db.WithContext(ctx).
		Where("ayudante_id = ? OR estado IN ?", userID, openStates).
		Order("created_at DESC").
		Find(&candidates).Error
	if err != nil {
		return nil, apperrors.ErrDBError.Wrap(err)
	}

	favors := []models.Favor{}
	for _, f := range candidates {
		if _, offered := f.FindOffer(userID); f.AyudanteID == userID || offered {
			favors = append(favors, f)
		}
	}
	return favors, nil
}

// OfferHelp adds userID to the favor's offers and tells the owner.
func (s *FavorService) OfferHelp(ctx context.Context, favorID, userID string) (*models.Favor, error) {
	var favor *models.Favor
	var helper *models.Usuario
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if favor, err = loadFavor(tx, favorID); err != nil {
			return err
		}
		if helper, err = loadUser(tx, userID); err != nil {
			return err
		}

		now := s.now()
		if err := lifecycle.OfferHelp(favor, helper, now); err != nil {
			return err
		}
		if err := saveFavor(tx, favor); err != nil {
			return err
		}
		return logActivity(tx, favor.ID, userID, models.AccionOferta, now)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, favor.UsuarioID, models.NotifOfertaAyuda, favor.ID,
		fmt.Sprintf("%s offered to help with \"%s\"", helper.Nombre, favor.Titulo))
	return favor, nil
}

// AcceptHelper selects helperID among the offers and moves the favor forward.
func (s *FavorService) AcceptHelper(ctx context.Context, favorID, callerID, helperID string) (*models.Favor, error) {
	var favor *models.Favor
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if favor, err = loadFavor(tx, favorID); err != nil {
			return err
		}

		now := s.now()
		if _, err := lifecycle.AcceptHelper(favor, callerID, helperID, now); err != nil {
			return err
		}
		if err := saveFavor(tx, favor); err != nil {
			return err
		}
		return logActivity(tx, favor.ID, callerID, models.AccionAceptado, now)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, helperID, models.NotifAyudanteAceptado, favor.ID,
		fmt.Sprintf("%s accepted your help with \"%s\"", favor.UsuarioNombre, favor.Titulo))
	return favor, nil
}

// Finalize closes the favor and records its helper of record.
func (s *FavorService) Finalize(ctx context.Context, favorID, callerID string) (*models.Favor, error) {
	var favor *models.Favor
	var helper lifecycle.Helper
	var hasHelper bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if favor, err = loadFavor(tx, favorID); err != nil {
			return err
		}

		now := s.now()
		helper, hasHelper, err = lifecycle.Finalize(favor, callerID, now)
		if err != nil {
			return err
		}
		if err := saveFavor(tx, favor); err != nil {
			return err
		}

		if hasHelper {
			if err := s.recordCompleted(tx, helper.ID, favor.ID); err != nil {
				return err
			}
		}
		return logActivity(tx, favor.ID, callerID, models.AccionFinalizado, now)
	})
	if err != nil {
		return nil, err
	}

	if hasHelper {
		s.notifier.Notify(ctx, helper.ID, models.NotifFavorFinalizado, favor.ID,
			fmt.Sprintf("\"%s\" was marked as finished", favor.Titulo))
	}
	return favor, nil
}

func (s *FavorService) recordCompleted(tx *gorm.DB, helperID, favorID string) error {
	helper, err := loadUser(tx, helperID)
	if apperrors.Is(err, apperrors.ErrUserNotFound) {
		s.log.Warn("helper of record has no user document",
			zap.String(logger.FieldUserID, helperID), zap.String(logger.FieldFavorID, favorID))
		return nil
	}
	if err != nil {
		return err
	}
	helper.FavoresCompletados = appendUnique(helper.FavoresCompletados, favorID)
	if err := tx.Model(helper).Select("favores_completados").Updates(helper).Error; err != nil {
		return apperrors.ErrDBError.Wrap(err)
	}
	return nil
}

// ConfirmFinalization records userID's confirmation. claimedRole may be empty.
func (s *FavorService) ConfirmFinalization(ctx context.Context, favorID, userID, claimedRole string) (*models.Favor, error) {
	var favor *models.Favor
	var both bool
	var role string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if favor, err = loadFavor(tx, favorID); err != nil {
			return err
		}

		now := s.now()
		if both, err = lifecycle.Confirm(favor, userID, claimedRole, now); err != nil {
			return err
		}
		role, _ = lifecycle.ResolveRole(favor, userID)
		if err := saveFavor(tx, favor); err != nil {
			return err
		}
		return logActivity(tx, favor.ID, userID, models.AccionConfirmado, now)
	})
	if err != nil {
		return nil, err
	}

	if other, ok := lifecycle.Counterpart(favor, role); ok {
		msg := fmt.Sprintf("The other party confirmed \"%s\"", favor.Titulo)
		if both {
			msg = fmt.Sprintf("\"%s\" is confirmed by both parties", favor.Titulo)
		}
		s.notifier.Notify(ctx, other.ID, models.NotifFavorConfirmado, favor.ID, msg)
	}
	return favor, nil
}

// TogglePin flips the pinned flag.
func (s *FavorService) TogglePin(ctx context.Context, favorID, userID string) (*models.Favor, error) {
	var favor *models.Favor
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := loadUser(tx, userID)
		if err != nil {
			return err
		}
		if favor, err = loadFavor(tx, favorID); err != nil {
			return err
		}
		if err := lifecycle.CanPin(favor, user); err != nil {
			return err
		}

		favor.Fijado = !favor.Fijado
		if err := saveFavor(tx, favor); err != nil {
			return err
		}
		accion := models.AccionDesfijado
		if favor.Fijado {
			accion = models.AccionFijado
		}
		return logActivity(tx, favor.ID, userID, accion, s.now())
	})
	if err != nil {
		return nil, err
	}
	return favor, nil
}

// Delete removes the favor's reports and then the favor, in one transaction.
func (s *FavorService) Delete(ctx context.Context, favorID, userID string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := loadUser(tx, userID)
		if err != nil {
			return err
		}
		favor, err := loadFavor(tx, favorID)
		if err != nil {
			return err
		}
		if err := lifecycle.CanDelete(favor, user); err != nil {
			return err
		}

		if err := tx.Where("contenido_id = ? AND tipo_contenido = ?", favor.ID, models.ContenidoFavor).
			Delete(&models.Reporte{}).Error; err != nil {
			return apperrors.ErrDBError.Wrap(err)
		}
		res := tx.Where("version = ?", favor.Version).Delete(&models.Favor{}, "id = ?", favor.ID)
		if res.Error != nil {
			return apperrors.ErrDBError.Wrap(res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrConcurrentUpdate
		}
		return logActivity(tx, favor.ID, userID, models.AccionEliminado, s.now())
	})
	if err != nil {
		return err
	}

	s.log.Info("favor deleted", zap.String(logger.FieldFavorID, favorID), zap.String(logger.FieldUserID, userID))
	return nil
}

// RatingEligibility runs the named rating policy without writing anything.
func (s *FavorService) RatingEligibility(ctx context.Context, favorID, userID string, policy lifecycle.RatingPolicy) (lifecycle.Eligibility, error) {
	favor, err := loadFavor(s.db.WithContext(ctx), favorID)
	if err != nil {
		return lifecycle.Eligibility{}, err
	}
	return policy.Check(favor, userID)
}
