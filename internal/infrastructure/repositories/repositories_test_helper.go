package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createAccountTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE accounts (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		name TEXT NOT NULL,
		phone TEXT,
		avatar_url TEXT,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'individual',
		status TEXT NOT NULL DEFAULT 'active',
		last_login_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createProfileTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE profiles (
		account_id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		org_name TEXT NOT NULL,
		registration_no TEXT,
		address TEXT,
		sector TEXT,
		verification_status TEXT NOT NULL DEFAULT 'pending',
		verified_by TEXT,
		verified_at DATETIME,
		notes TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createAuditTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE audit_entries (
		id TEXT PRIMARY KEY,
		actor_id TEXT NOT NULL,
		action TEXT NOT NULL,
		target_type TEXT NOT NULL,
		target_id TEXT NOT NULL,
		reason TEXT,
		prev_state TEXT,
		new_state TEXT,
		created_at DATETIME
	);`)
}
