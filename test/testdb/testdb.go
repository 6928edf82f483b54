// test/testdb/testdb.go
package testdb

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/dev-mohitbeniwal/ems/api/model"
)

// New opens an in-memory SQLite database with the catalog and ledger schema.
// A single connection keeps every statement on the same in-memory database.
func New(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, gdb.AutoMigrate(
		&model.PolicyCategory{},
		&model.Policy{},
		&model.PolicyRole{},
		&model.PolicyAcknowledgment{},
		&model.ComplianceReminder{},
	))
	return gdb
}
