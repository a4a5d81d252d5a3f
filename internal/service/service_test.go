package service_test

import (
	"path/filepath"
	"testing"

	"github.com/yousseftayari/ElectroDoc/internal/data"
	"github.com/yousseftayari/ElectroDoc/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestData 每个测试一个独立的 SQLite 文件库
func newTestData(t *testing.T) *data.Data {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Document{},
		&model.DocumentState{},
	))

	return &data.Data{DB: db}
}
