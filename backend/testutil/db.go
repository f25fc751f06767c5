// Package testutil provides fixtures shared by package tests.
package testutil

import (
	"fmt"
	"testing"

	"coursecatalog/backend/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB returns a migrated in-memory database private to the test. It
// is closed when the test ends.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

// SeedCourse inserts an active course owned by creatorID and returns it.
func SeedCourse(t *testing.T, db *gorm.DB, creatorID, name string, mutate ...func(*models.Course)) *models.Course {
	t.Helper()

	course := &models.Course{
		CreatorID: creatorID,
		Name:      name,
		Active:    true,
	}
	for _, m := range mutate {
		m(course)
	}
	require.NoError(t, db.Create(course).Error)
	return course
}
