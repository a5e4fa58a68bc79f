package testutil

import (
	"testing"

	"gorm.io/gorm"

	"usersadmin/internal/db"
)

// OpenInMemoryDB opens a migrated in-memory SQLite database private to the test.
// The connection is closed via t.Cleanup.
func OpenInMemoryDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	// A shared cache keeps every pooled connection on the same in-memory database.
	d, err := db.Open("sqlite", "file:"+name+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := d.DB()
	if err != nil {
		t.Fatalf("underlying sql db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Migrate(d); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return d
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}
