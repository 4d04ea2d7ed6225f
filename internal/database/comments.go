package database

import (
	"database/sql"
	"errors"
	"fmt"

	"vfs-go/internal/model"
)

func (s *SQLiteDatabase) CreateComment(c *model.Comment) error {
	if _, err := s.db.Exec(
		`INSERT INTO comments (id, item_revision_id, creator_type, creator_id, message, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.ItemRevisionID, c.Creator.Type, c.Creator.ID, c.Message, c.CreatedAt, c.UpdatedAt,
	); err != nil {
		return translateConstraint(err, "comment", "could not be created")
	}
	return nil
}

func (s *SQLiteDatabase) FindCommentByID(id string) (*model.Comment, error) {
	c := &model.Comment{}
	err := s.db.QueryRow(
		`SELECT id, item_revision_id, creator_type, creator_id, message, created_at, updated_at
		 FROM comments WHERE id = ?`, id,
	).Scan(&c.ID, &c.ItemRevisionID, &c.Creator.Type, &c.Creator.ID, &c.Message, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("scanning comment: %w", err)
	}
	return c, nil
}

func (s *SQLiteDatabase) ListComments(itemRevisionID string) ([]*model.Comment, error) {
	rows, err := s.db.Query(
		`SELECT id, item_revision_id, creator_type, creator_id, message, created_at, updated_at
		 FROM comments WHERE item_revision_id = ? ORDER BY created_at DESC`, itemRevisionID)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	defer rows.Close()

	var comments []*model.Comment
	for rows.Next() {
		c := &model.Comment{}
		if err := rows.Scan(&c.ID, &c.ItemRevisionID, &c.Creator.Type, &c.Creator.ID, &c.Message, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (s *SQLiteDatabase) UpdateComment(c *model.Comment) error {
	if _, err := s.db.Exec(
		`UPDATE comments SET message = ?, updated_at = ? WHERE id = ?`,
		c.Message, c.UpdatedAt, c.ID,
	); err != nil {
		return fmt.Errorf("updating comment: %w", err)
	}
	return nil
}

func (s *SQLiteDatabase) DeleteComment(id string) error {
	if _, err := s.db.Exec(`DELETE FROM comments WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting comment: %w", err)
	}
	return nil
}
