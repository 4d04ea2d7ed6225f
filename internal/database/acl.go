package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"vfs-go/internal/model"
)

// Grant finds or creates the permission for (folder, subject), then finds
// or creates each named authorization in the global catalog and links it.
// Everything runs in one transaction; the unique indexes on permissions,
// authorizations and the link table make each step idempotent under
// concurrent granters.
func (s *SQLiteDatabase) Grant(folderID string, subject model.Ref, authNames []string, now time.Time) (*model.Permission, error) {
	var p *model.Permission

	err := s.inTx(func(tx *sql.Tx) error {
		var err error
		p, err = findOrCreatePermission(tx, folderID, subject, now)
		if err != nil {
			return err
		}

		for _, name := range authNames {
			authID, err := findOrCreateAuthorization(tx, name, now)
			if err != nil {
				return err
			}
			// A capability is granted at most once per permission.
			if _, err := tx.Exec(
				`INSERT OR IGNORE INTO permission_authorizations (permission_id, authorization_id, created_at)
				 VALUES (?, ?, ?)`,
				p.ID, authID, now,
			); err != nil {
				return fmt.Errorf("linking authorization %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func findOrCreatePermission(tx *sql.Tx, folderID string, subject model.Ref, now time.Time) (*model.Permission, error) {
	p := &model.Permission{FolderID: folderID, Subject: subject}
	err := tx.QueryRow(
		`SELECT id, created_at FROM permissions
		 WHERE folder_id = ? AND subject_type = ? AND subject_id = ?`,
		folderID, subject.Type, subject.ID,
	).Scan(&p.ID, &p.CreatedAt)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("finding permission: %w", err)
	}

	p.ID = uuid.New().String()
	p.CreatedAt = now
	if _, err := tx.Exec(
		`INSERT INTO permissions (id, folder_id, subject_type, subject_id, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		p.ID, folderID, subject.Type, subject.ID, now,
	); err != nil {
		return nil, translateConstraint(err, "subject", "already holds a permission on this folder")
	}
	return p, nil
}

func findOrCreateAuthorization(tx *sql.Tx, name string, now time.Time) (string, error) {
	var id string
	err := tx.QueryRow(`SELECT id FROM authorizations WHERE name = ?`, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("finding authorization %q: %w", name, err)
	}

	id = uuid.New().String()
	if _, err := tx.Exec(
		`INSERT INTO authorizations (id, name, created_at) VALUES (?, ?, ?)`,
		id, name, now,
	); err != nil {
		return "", translateConstraint(err, "authorization", "was created concurrently")
	}
	return id, nil
}

// RevokeAll deletes the permission row; the link rows cascade with it.
func (s *SQLiteDatabase) RevokeAll(folderID string, subject model.Ref) error {
	if _, err := s.db.Exec(
		`DELETE FROM permissions WHERE folder_id = ? AND subject_type = ? AND subject_id = ?`,
		folderID, subject.Type, subject.ID,
	); err != nil {
		return fmt.Errorf("deleting permission: %w", err)
	}
	return nil
}

// RevokeAuthorization removes a single capability link, leaving the
// permission in place even if it now holds none.
func (s *SQLiteDatabase) RevokeAuthorization(folderID string, subject model.Ref, authName string) error {
	if _, err := s.db.Exec(
		`DELETE FROM permission_authorizations
		 WHERE permission_id IN (
		   SELECT id FROM permissions
		   WHERE folder_id = ? AND subject_type = ? AND subject_id = ?
		 )
		 AND authorization_id IN (SELECT id FROM authorizations WHERE name = ?)`,
		folderID, subject.Type, subject.ID, authName,
	); err != nil {
		return fmt.Errorf("deleting authorization link: %w", err)
	}
	return nil
}

func (s *SQLiteDatabase) IsAccessible(folderID string, subject model.Ref) (bool, error) {
	var exists int
	err := s.db.QueryRow(
		`SELECT 1 FROM permissions
		 WHERE folder_id = ? AND subject_type = ? AND subject_id = ? LIMIT 1`,
		folderID, subject.Type, subject.ID,
	).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("checking access: %w", err)
	}
	return true, nil
}

func (s *SQLiteDatabase) IsAuthorized(folderID string, subject model.Ref, authName string) (bool, error) {
	var exists int
	err := s.db.QueryRow(
		`SELECT 1 FROM permissions p
		 JOIN permission_authorizations pa ON pa.permission_id = p.id
		 JOIN authorizations a ON a.id = pa.authorization_id
		 WHERE p.folder_id = ? AND p.subject_type = ? AND p.subject_id = ? AND a.name = ?
		 LIMIT 1`,
		folderID, subject.Type, subject.ID, authName,
	).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("checking authorization: %w", err)
	}
	return true, nil
}

func (s *SQLiteDatabase) AuthorizationNamesFor(folderID string, subject model.Ref) ([]string, error) {
	rows, err := s.db.Query(
		`SELECT a.name FROM permissions p
		 JOIN permission_authorizations pa ON pa.permission_id = p.id
		 JOIN authorizations a ON a.id = pa.authorization_id
		 WHERE p.folder_id = ? AND p.subject_type = ? AND p.subject_id = ?
		 ORDER BY a.name`,
		folderID, subject.Type, subject.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing authorizations: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning authorization name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// FoldersVisibleTo is a single bounded query: one JOIN, deduplicated by
// DISTINCT. It is the workspace listing for a subject, so no per-folder
// looping is acceptable here.
func (s *SQLiteDatabase) FoldersVisibleTo(subject model.Ref) ([]*model.Folder, error) {
	return s.queryFolders(
		`SELECT DISTINCT f.id, f.volume_id, f.parent_id, f.name, f.status, f.created_at, f.updated_at
		 FROM folders f
		 JOIN permissions p ON p.folder_id = f.id
		 WHERE p.subject_type = ? AND p.subject_id = ?
		 ORDER BY f.name`,
		subject.Type, subject.ID,
	)
}

func (s *SQLiteDatabase) FoldersAuthorizedFor(subject model.Ref, authName string) ([]*model.Folder, error) {
	return s.queryFolders(
		`SELECT DISTINCT f.id, f.volume_id, f.parent_id, f.name, f.status, f.created_at, f.updated_at
		 FROM folders f
		 JOIN permissions p ON p.folder_id = f.id
		 JOIN permission_authorizations pa ON pa.permission_id = p.id
		 JOIN authorizations a ON a.id = pa.authorization_id
		 WHERE p.subject_type = ? AND p.subject_id = ? AND a.name = ?
		 ORDER BY f.name`,
		subject.Type, subject.ID, authName,
	)
}
