// Package services runs the favor workflow against the database. Every
// mutation is one transaction; notifications are sent after commit and never
// fail the operation that produced them.
package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/campus-link/api-go/apperrors"
	"github.com/campus-link/api-go/models"
)

// Notifier receives best-effort notifications for a user.
type Notifier interface {
	Notify(ctx context.Context, userID, tipo, favorID, mensaje string)
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, string, string, string, string) {}

func notFound(err error, target *apperrors.AppError) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return target
	}
	return apperrors.ErrDBError.Wrap(err)
}

func loadUser(tx *gorm.DB, id string) (*models.Usuario, error) {
	var u models.Usuario
	if err := tx.First(&u, "id = ?", id).Error; err != nil {
		return nil, notFound(err, apperrors.ErrUserNotFound)
	}
	return &u, nil
}

// forUpdate row-locks what the query reads until the transaction ends.
func forUpdate(tx *gorm.DB) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// lockUser loads a user and holds its row lock, serializing writers of the
// cached reputation.
func lockUser(tx *gorm.DB, id string) (*models.Usuario, error) {
	var u models.Usuario
	if err := forUpdate(tx).First(&u, "id = ?", id).Error; err != nil {
		return nil, notFound(err, apperrors.ErrUserNotFound)
	}
	return &u, nil
}

func loadFavor(tx *gorm.DB, id string) (*models.Favor, error) {
	var f models.Favor
	if err := tx.First(&f, "id = ?", id).Error; err != nil {
		return nil, notFound(err, apperrors.ErrFavorNotFound)
	}
	return &f, nil
}

// saveFavor writes f only if nobody else changed it since it was read.
func saveFavor(tx *gorm.DB, f *models.Favor) error {
	expected := f.Version
	f.Version = expected + 1

	res := tx.Model(f).Where("version = ?", expected).Select("*").Omit("id", "created_at").Updates(f)
	if res.Error != nil {
		f.Version = expected
		return apperrors.ErrDBError.Wrap(res.Error)
	}
	if res.RowsAffected == 0 {
		f.Version = expected
		return apperrors.ErrConcurrentUpdate
	}
	return nil
}

func logActivity(tx *gorm.DB, favorID, userID, accion string, now time.Time) error {
	entry := models.ActividadFavor{FavorID: favorID, UsuarioID: userID, Accion: accion, CreatedAt: now}
	if err := tx.Create(&entry).Error; err != nil {
		return apperrors.ErrDBError.Wrap(err)
	}
	return nil
}

func appendUnique(list []string, id string) []string {
	for _, v := range list {
		if v == id {
			return list
		}
	}
	return append(list, id)
}
