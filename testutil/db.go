// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/campus-link/api-go/config"
	"github.com/campus-link/api-go/models"
)

// NewDB returns a migrated in-memory SQLite database private to t.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// One connection keeps the in-memory database alive and serializes writers.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// CreateUser inserts a user with the given id and phone number.
func CreateUser(t *testing.T, db *gorm.DB, id, phone string) *models.Usuario {
	t.Helper()

	u := &models.Usuario{
		ID:                 id,
		Nombre:             "User " + id,
		Email:              id + "@campus.test",
		Password:           "x",
		Telefono:           phone,
		Carrera:            "Ingenieria",
		Rol:                models.RolNormal,
		Reputacion:         models.DefaultReputacion,
		FavoresPublicados:  []string{},
		FavoresCompletados: []string{},
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create user %s: %v", id, err)
	}
	return u
}

// Clock is a manually advanced clock.
type Clock struct {
	T time.Time
}

func NewClock() *Clock {
	return &Clock{T: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)}
}

func (c *Clock) Now() time.Time { return c.T }

func (c *Clock) Advance(d time.Duration) { c.T = c.T.Add(d) }
