package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"vfs-go/internal/model"
)

const revisionColumns = `id, item_id, number, name, creator_type, creator_id,
	contents_type, contents_id, metadata, created_at, updated_at`

// Item operations

func (s *SQLiteDatabase) CreateItem(i *model.Item) error {
	_, err := s.db.Exec(
		`INSERT INTO items (id, volume_id, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		i.ID, i.VolumeID, int(i.Status), i.CreatedAt, i.UpdatedAt,
	)
	if err != nil {
		return translateConstraint(err, "item", "could not be created")
	}
	return nil
}

func (s *SQLiteDatabase) FindItemByID(id string) (*model.Item, error) {
	i := &model.Item{}
	var status int
	err := s.db.QueryRow(
		`SELECT id, volume_id, status, created_at, updated_at FROM items WHERE id = ?`, id,
	).Scan(&i.ID, &i.VolumeID, &status, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("scanning item: %w", err)
	}
	i.Status = model.Status(status)
	return i, nil
}

func (s *SQLiteDatabase) UpdateItemStatus(id string, status model.Status, now time.Time) error {
	if _, err := s.db.Exec(
		`UPDATE items SET status = ?, updated_at = ? WHERE id = ?`,
		int(status), now, id,
	); err != nil {
		return fmt.Errorf("updating item status: %w", err)
	}
	return nil
}

// DestroyItem hard-deletes the item row; foreign keys cascade to its
// revisions, their comments, and its membership rows.
func (s *SQLiteDatabase) DestroyItem(id string) error {
	return s.inTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM items WHERE id = ?`, id); err != nil {
			return fmt.Errorf("deleting item: %w", err)
		}
		return nil
	})
}

// Revision operations

// CreateRevision inserts the revision, allocating its number inside the
// insert statement: 1 + the item's current maximum. The allocation and
// insert happen atomically under SQLite's write lock, and the
// unique(item_id, number) index backstops any race; a lost race surfaces
// as a ValidationError with no automatic retry.
func (s *SQLiteDatabase) CreateRevision(r *model.ItemRevision) error {
	metadata, err := json.Marshal(r.Metadata)
	if err != nil {
		return fmt.Errorf("encoding metadata: %w", err)
	}

	return s.inTx(func(tx *sql.Tx) error {
		_, err := tx.Exec(
			`INSERT INTO item_revisions
			   (id, item_id, number, name, creator_type, creator_id,
			    contents_type, contents_id, metadata, created_at, updated_at)
			 VALUES (?, ?,
			   (SELECT COALESCE(MAX(number), 0) + 1 FROM item_revisions WHERE item_id = ?),
			   ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ID, r.ItemID, r.ItemID, r.Name,
			r.Creator.Type, r.Creator.ID, r.Contents.Type, r.Contents.ID,
			string(metadata), r.CreatedAt, r.UpdatedAt,
		)
		if err != nil {
			return translateConstraint(err, "number", "was allocated concurrently")
		}

		// Read back the allocated number.
		if err := tx.QueryRow(
			`SELECT number FROM item_revisions WHERE id = ?`, r.ID,
		).Scan(&r.Number); err != nil {
			return fmt.Errorf("reading allocated revision number: %w", err)
		}
		return nil
	})
}

func (s *SQLiteDatabase) FindRevisionByID(id string) (*model.ItemRevision, error) {
	return scanRevisionRow(s.db.QueryRow(
		`SELECT `+revisionColumns+` FROM item_revisions WHERE id = ?`, id))
}

// CurrentRevision is purely positional: the row with the maximum number.
func (s *SQLiteDatabase) CurrentRevision(itemID string) (*model.ItemRevision, error) {
	return scanRevisionRow(s.db.QueryRow(
		`SELECT `+revisionColumns+` FROM item_revisions
		 WHERE item_id = ? ORDER BY number DESC LIMIT 1`, itemID))
}

func (s *SQLiteDatabase) ListRevisions(itemID string) ([]*model.ItemRevision, error) {
	rows, err := s.db.Query(
		`SELECT `+revisionColumns+` FROM item_revisions
		 WHERE item_id = ? ORDER BY number DESC`, itemID)
	if err != nil {
		return nil, fmt.Errorf("listing revisions: %w", err)
	}
	defer rows.Close()

	var revisions []*model.ItemRevision
	for rows.Next() {
		r, err := scanRevision(rows)
		if err != nil {
			return nil, err
		}
		revisions = append(revisions, r)
	}
	return revisions, rows.Err()
}

func (s *SQLiteDatabase) UpdateRevision(r *model.ItemRevision) error {
	metadata, err := json.Marshal(r.Metadata)
	if err != nil {
		return fmt.Errorf("encoding metadata: %w", err)
	}

	if _, err := s.db.Exec(
		`UPDATE item_revisions SET name = ?, metadata = ?, updated_at = ? WHERE id = ?`,
		r.Name, string(metadata), r.UpdatedAt, r.ID,
	); err != nil {
		return fmt.Errorf("updating revision: %w", err)
	}
	return nil
}

// Membership operations

// AddItemToFolder is idempotent: re-adding an existing membership leaves
// the original row (and its created_at) in place.
func (s *SQLiteDatabase) AddItemToFolder(folderID, itemID string, now time.Time) error {
	if _, err := s.db.Exec(
		`INSERT OR IGNORE INTO folders_items (folder_id, item_id, created_at) VALUES (?, ?, ?)`,
		folderID, itemID, now,
	); err != nil {
		return fmt.Errorf("inserting membership: %w", err)
	}
	return nil
}

func (s *SQLiteDatabase) RemoveItemFromFolder(folderID, itemID string) error {
	if _, err := s.db.Exec(
		`DELETE FROM folders_items WHERE folder_id = ? AND item_id = ?`,
		folderID, itemID,
	); err != nil {
		return fmt.Errorf("deleting membership: %w", err)
	}
	return nil
}

// ListItemFolders filters to active folders only; the membership rows for
// soft-deleted folders remain and become visible again on restore.
func (s *SQLiteDatabase) ListItemFolders(itemID string) ([]*model.Folder, error) {
	return s.queryFolders(
		`SELECT f.id, f.volume_id, f.parent_id, f.name, f.status, f.created_at, f.updated_at
		 FROM folders f
		 JOIN folders_items fi ON fi.folder_id = f.id
		 WHERE fi.item_id = ? AND f.status = ?
		 ORDER BY f.name`,
		itemID, int(model.StatusActive),
	)
}

func (s *SQLiteDatabase) ListFolderItems(folderID string) ([]*model.Item, error) {
	rows, err := s.db.Query(
		`SELECT i.id, i.volume_id, i.status, i.created_at, i.updated_at
		 FROM items i
		 JOIN folders_items fi ON fi.item_id = i.id
		 WHERE fi.folder_id = ? AND i.status = ?
		 ORDER BY i.created_at DESC`,
		folderID, int(model.StatusActive),
	)
	if err != nil {
		return nil, fmt.Errorf("listing folder items: %w", err)
	}
	defer rows.Close()

	var items []*model.Item
	for rows.Next() {
		i := &model.Item{}
		var status int
		if err := rows.Scan(&i.ID, &i.VolumeID, &status, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		i.Status = model.Status(status)
		items = append(items, i)
	}
	return items, rows.Err()
}

func scanRevision(row rowScanner) (*model.ItemRevision, error) {
	r := &model.ItemRevision{}
	var metadata string
	if err := row.Scan(
		&r.ID, &r.ItemID, &r.Number, &r.Name,
		&r.Creator.Type, &r.Creator.ID, &r.Contents.Type, &r.Contents.ID,
		&metadata, &r.CreatedAt, &r.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("scanning revision: %w", err)
	}
	if err := json.Unmarshal([]byte(metadata), &r.Metadata); err != nil {
		return nil, fmt.Errorf("decoding metadata: %w", err)
	}
	return r, nil
}

func scanRevisionRow(row *sql.Row) (*model.ItemRevision, error) {
	r, err := scanRevision(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, err
	}
	return r, nil
}
