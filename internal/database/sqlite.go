package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"vfs-go/internal/database/migrations"
	"vfs-go/internal/model"
	"vfs-go/internal/vfs"
)

// SQLiteDatabase implements the vfs.Database interface using SQLite.
// All queries are hand-written SQL; the schema's unique indexes are the
// authoritative enforcement of the uniqueness invariants, and constraint
// violations are translated into *vfs.ValidationError before they leave
// this package.
type SQLiteDatabase struct {
	db   *sql.DB
	path string
}

// NewSQLiteDatabase creates a new SQLite database connection.
// path can be a file path or ":memory:" for an in-memory database.
func NewSQLiteDatabase(path string) (*SQLiteDatabase, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	return &SQLiteDatabase{
		db:   db,
		path: path,
	}, nil
}

// NewSQLiteDatabaseFromDB wraps an existing database connection.
// The caller is responsible for ensuring the connection is properly configured.
func NewSQLiteDatabaseFromDB(db *sql.DB) *SQLiteDatabase {
	return &SQLiteDatabase{
		db:   db,
		path: "",
	}
}

// OpenConnection opens and configures a SQLite database connection with
// appropriate PRAGMAs. Exported for tools and tests that need a properly
// configured connection. path can be a file path or ":memory:".
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign key constraints (SQLite default is OFF for backward
	// compatibility). The ownership cascades depend on them.
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Wait for locks instead of failing immediately under concurrent writers.
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	return db, nil
}

// Path returns the database file path (or ":memory:" for in-memory
// databases). Empty for connections wrapped with NewSQLiteDatabaseFromDB.
func (s *SQLiteDatabase) Path() string {
	return s.path
}

// CheckMigrations verifies the schema is at the latest version.
func (s *SQLiteDatabase) CheckMigrations() error {
	return migrations.CheckSchemaVersion(s.db)
}

// MigrateUp brings the schema to the latest version.
func (s *SQLiteDatabase) MigrateUp() error {
	return migrations.MigrateUp(s.db)
}

// Close closes the database connection.
func (s *SQLiteDatabase) Close() error {
	return s.db.Close()
}

// translateConstraint converts a sqlite constraint violation into a
// ValidationError attributed to the given field. Any other error passes
// through unchanged. Uniqueness races lost at the store level surface to
// callers the same way a pre-checked duplicate would.
func translateConstraint(err error, field, reason string) error {
	var serr sqlite3.Error
	if errors.As(err, &serr) && serr.Code == sqlite3.ErrConstraint {
		return vfs.NewValidationError(field, reason)
	}
	return err
}

// inTx runs fn inside a transaction, committing on success and rolling
// back on error. Cascading mutations use it so partial effects are never
// observable to other callers.
func (s *SQLiteDatabase) inTx(fn func(tx *sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Volume operations

func (s *SQLiteDatabase) CreateVolume(v *model.Volume) error {
	_, err := s.db.Exec(
		`INSERT INTO volumes (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		v.ID, v.Name, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		return translateConstraint(err, "name", "has already been taken")
	}
	return nil
}

func (s *SQLiteDatabase) FindVolumeByID(id string) (*model.Volume, error) {
	return s.scanVolume(s.db.QueryRow(
		`SELECT id, name, created_at, updated_at FROM volumes WHERE id = ?`, id))
}

func (s *SQLiteDatabase) FindVolumeByName(name string) (*model.Volume, error) {
	return s.scanVolume(s.db.QueryRow(
		`SELECT id, name, created_at, updated_at FROM volumes WHERE name = ?`, name))
}

func (s *SQLiteDatabase) ListVolumes() ([]*model.Volume, error) {
	rows, err := s.db.Query(`SELECT id, name, created_at, updated_at FROM volumes ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing volumes: %w", err)
	}
	defer rows.Close()

	var volumes []*model.Volume
	for rows.Next() {
		v := &model.Volume{}
		if err := rows.Scan(&v.ID, &v.Name, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning volume: %w", err)
		}
		volumes = append(volumes, v)
	}
	return volumes, rows.Err()
}

// DeleteVolume removes the volume row; foreign keys cascade the delete to
// folders, items, revisions, comments, permissions and membership rows.
func (s *SQLiteDatabase) DeleteVolume(id string) error {
	return s.inTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM volumes WHERE id = ?`, id); err != nil {
			return fmt.Errorf("deleting volume: %w", err)
		}
		return nil
	})
}

func (s *SQLiteDatabase) scanVolume(row *sql.Row) (*model.Volume, error) {
	v := &model.Volume{}
	err := row.Scan(&v.ID, &v.Name, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("scanning volume: %w", err)
	}
	return v, nil
}

// Compile-time check that SQLiteDatabase implements the vfs.Database interface
var _ vfs.Database = (*SQLiteDatabase)(nil)
