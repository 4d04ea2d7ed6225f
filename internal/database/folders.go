package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"vfs-go/internal/model"
)

const folderColumns = `id, volume_id, parent_id, name, status, created_at, updated_at`

func (s *SQLiteDatabase) CreateFolder(f *model.Folder) error {
	var parentID sql.NullString
	if f.ParentID != nil {
		parentID = sql.NullString{String: *f.ParentID, Valid: true}
	}

	_, err := s.db.Exec(
		`INSERT INTO folders (id, volume_id, parent_id, name, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		f.ID, f.VolumeID, parentID, f.Name, int(f.Status), f.CreatedAt, f.UpdatedAt,
	)
	if err != nil {
		return translateConstraint(err, "name", "has already been taken in this folder")
	}
	return nil
}

func (s *SQLiteDatabase) FindFolderByID(id string) (*model.Folder, error) {
	return scanFolderRow(s.db.QueryRow(
		`SELECT `+folderColumns+` FROM folders WHERE id = ?`, id))
}

func (s *SQLiteDatabase) UpdateFolderStatus(id string, status model.Status, now time.Time) error {
	_, err := s.db.Exec(
		`UPDATE folders SET status = ?, updated_at = ? WHERE id = ?`,
		int(status), now, id,
	)
	if err != nil {
		// The only constraint a status change can trip is the scoped name
		// index, when restoring next to an active twin.
		return translateConstraint(err, "name", "an active folder with this name already exists")
	}
	return nil
}

// ListSubFolders returns only active children; soft-deleted ones stay
// hidden until restored.
func (s *SQLiteDatabase) ListSubFolders(parentID string) ([]*model.Folder, error) {
	return s.queryFolders(
		`SELECT `+folderColumns+` FROM folders
		 WHERE parent_id = ? AND status = ? ORDER BY name`,
		parentID, int(model.StatusActive),
	)
}

func (s *SQLiteDatabase) ListRootFolders(volumeID string) ([]*model.Folder, error) {
	return s.queryFolders(
		`SELECT `+folderColumns+` FROM folders
		 WHERE volume_id = ? AND parent_id IS NULL AND status = ? ORDER BY name`,
		volumeID, int(model.StatusActive),
	)
}

// DestroyFolder hard-deletes the folder row. The parent_id foreign key
// cascades the delete through every descendant regardless of status, and
// the permission and membership foreign keys cascade from each destroyed
// folder. The single transaction makes the cascade all-or-nothing.
func (s *SQLiteDatabase) DestroyFolder(id string) error {
	return s.inTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM folders WHERE id = ?`, id); err != nil {
			return fmt.Errorf("deleting folder: %w", err)
		}
		return nil
	})
}

func (s *SQLiteDatabase) queryFolders(query string, args ...any) ([]*model.Folder, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying folders: %w", err)
	}
	defer rows.Close()

	var folders []*model.Folder
	for rows.Next() {
		f, err := scanFolder(rows)
		if err != nil {
			return nil, err
		}
		folders = append(folders, f)
	}
	return folders, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFolder(row rowScanner) (*model.Folder, error) {
	f := &model.Folder{}
	var parentID sql.NullString
	var status int
	if err := row.Scan(&f.ID, &f.VolumeID, &parentID, &f.Name, &status, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, fmt.Errorf("scanning folder: %w", err)
	}
	if parentID.Valid {
		f.ParentID = &parentID.String
	}
	f.Status = model.Status(status)
	return f, nil
}

func scanFolderRow(row *sql.Row) (*model.Folder, error) {
	f, err := scanFolder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, err
	}
	return f, nil
}
