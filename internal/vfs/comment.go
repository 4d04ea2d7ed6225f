package vfs

import (
	"fmt"
	"strings"

	"vfs-go/internal/model"
)

// CreateComment attaches a note to an item revision. The message body is
// opaque rich text to the core; it only needs to be non-empty.
func (s *Service) CreateComment(itemRevisionID string, creator model.Ref, message string) (*model.Comment, error) {
	if strings.TrimSpace(message) == "" {
		return nil, NewValidationError("message", "cannot be blank")
	}

	r, err := s.database.FindRevisionByID(itemRevisionID)
	if err != nil {
		return nil, fmt.Errorf("finding revision: %w", err)
	}
	if r == nil {
		return nil, NewNotFoundError("revision", itemRevisionID)
	}

	now := s.clock.Now()
	c := &model.Comment{
		ID:             s.idgen.New(),
		ItemRevisionID: itemRevisionID,
		Creator:        creator,
		Message:        message,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.database.CreateComment(c); err != nil {
		return nil, fmt.Errorf("creating comment: %w", err)
	}

	s.logger.Debug("comment created", "revision", itemRevisionID, "creator", creator.Type+":"+creator.ID)
	return c, nil
}

// Comments returns a revision's comments, newest first.
func (s *Service) Comments(itemRevisionID string) ([]*model.Comment, error) {
	r, err := s.database.FindRevisionByID(itemRevisionID)
	if err != nil {
		return nil, fmt.Errorf("finding revision: %w", err)
	}
	if r == nil {
		return nil, NewNotFoundError("revision", itemRevisionID)
	}
	return s.database.ListComments(itemRevisionID)
}

// UpdateComment replaces a comment's message.
func (s *Service) UpdateComment(id, message string) (*model.Comment, error) {
	if strings.TrimSpace(message) == "" {
		return nil, NewValidationError("message", "cannot be blank")
	}

	c, err := s.database.FindCommentByID(id)
	if err != nil {
		return nil, fmt.Errorf("finding comment: %w", err)
	}
	if c == nil {
		return nil, NewNotFoundError("comment", id)
	}

	c.Message = message
	c.UpdatedAt = s.clock.Now()
	if err := s.database.UpdateComment(c); err != nil {
		return nil, fmt.Errorf("updating comment: %w", err)
	}
	return c, nil
}

// DeleteComment removes a comment.
func (s *Service) DeleteComment(id string) error {
	c, err := s.database.FindCommentByID(id)
	if err != nil {
		return fmt.Errorf("finding comment: %w", err)
	}
	if c == nil {
		return NewNotFoundError("comment", id)
	}

	if err := s.database.DeleteComment(id); err != nil {
		return fmt.Errorf("deleting comment: %w", err)
	}
	return nil
}
