package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/campus-link/api-go/apperrors"
	"github.com/campus-link/api-go/models"
	"github.com/campus-link/api-go/utils"
)

type UserService struct {
	db        *gorm.DB
	jwtSecret string
	jwtTTL    time.Duration
	now       func() time.Time
}

func NewUserService(db *gorm.DB, jwtSecret string, jwtTTL time.Duration, now func() time.Time) *UserService {
	if now == nil {
		now = time.Now
	}
	return &UserService{db: db, jwtSecret: jwtSecret, jwtTTL: jwtTTL, now: now}
}

type RegisterInput struct {
	Nombre   string
	Email    string
	Password string
	Telefono string
	Carrera  string
}

// ProfileInput carries optional profile changes; nil fields stay as they are.
type ProfileInput struct {
	Nombre   *string
	Telefono *string
	Carrera  *string
	Foto     *string
}

// Session is what a successful login returns.
type Session struct {
	Token   string          `json:"token"`
	Usuario *models.Usuario `json:"usuario"`
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.Usuario, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	nombre := strings.TrimSpace(in.Nombre)
	if email == "" || nombre == "" || in.Password == "" {
		return nil, apperrors.ErrMissingField
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.ErrServerError.Wrap(err)
	}

	user := &models.Usuario{
		ID:                 uuid.NewString(),
		CreatedAt:          s.now(),
		Nombre:             nombre,
		Email:              email,
		Password:           string(hashed),
		Telefono:           strings.TrimSpace(in.Telefono),
		Carrera:            strings.TrimSpace(in.Carrera),
		Rol:                models.RolNormal,
		Reputacion:         models.DefaultReputacion,
		FavoresPublicados:  []string{},
		FavoresCompletados: []string{},
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrEmailTaken
		}
		return nil, apperrors.ErrDBError.Wrap(err)
	}
	return user, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*Session, error) {
	var user models.Usuario
	err := s.db.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.ErrDBError.Wrap(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(s.jwtSecret, user.ID, user.Rol, s.jwtTTL, s.now())
	if err != nil {
		return nil, apperrors.ErrServerError.Wrap(err)
	}
	return &Session{Token: token, Usuario: &user}, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*models.Usuario, error) {
	return loadUser(s.db.WithContext(ctx), id)
}

func (s *UserService) UpdateProfile(ctx context.Context, id string, in ProfileInput) (*models.Usuario, error) {
	var user *models.Usuario
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if user, err = loadUser(tx, id); err != nil {
			return err
		}

		var columns []string
		if in.Nombre != nil {
			nombre := strings.TrimSpace(*in.Nombre)
			if nombre == "" {
				return apperrors.ErrMissingField
			}
			user.Nombre = nombre
			columns = append(columns, "nombre")
		}
		if in.Telefono != nil {
			user.Telefono = strings.TrimSpace(*in.Telefono)
			columns = append(columns, "telefono")
		}
		if in.Carrera != nil {
			user.Carrera = strings.TrimSpace(*in.Carrera)
			columns = append(columns, "carrera")
		}
		if in.Foto != nil {
			user.Foto = strings.TrimSpace(*in.Foto)
			columns = append(columns, "foto")
		}
		if len(columns) == 0 {
			return nil
		}
		if err := tx.Model(user).Select(columns).Updates(user).Error; err != nil {
			return apperrors.ErrDBError.Wrap(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// SetRole changes targetID's role. Admin only.
func (s *UserService) SetRole(ctx context.Context, adminID, targetID, rol string) (*models.Usuario, error) {
	if !models.ValidRol(rol) {
		return nil, apperrors.ErrInvalidParams
	}

	var target *models.Usuario
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireAdmin(tx, adminID); err != nil {
			return err
		}
		var err error
		if target, err = loadUser(tx, targetID); err != nil {
			return err
		}
		target.Rol = rol
		if err := tx.Model(target).Select("rol").Updates(target).Error; err != nil {
			return apperrors.ErrDBError.Wrap(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return target, nil
}
