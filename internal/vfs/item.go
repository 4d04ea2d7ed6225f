package vfs

import (
	"fmt"
	"strings"
	"time"

	"vfs-go/internal/model"
)

// CreateItem creates a new versioned item in a volume. The item carries no
// name or contents itself; create a revision to give it both.
func (s *Service) CreateItem(volumeID string) (*model.Item, error) {
	v, err := s.database.FindVolumeByID(volumeID)
	if err != nil {
		return nil, fmt.Errorf("finding volume: %w", err)
	}
	if v == nil {
		return nil, NewNotFoundError("volume", volumeID)
	}

	now := s.clock.Now()
	i := &model.Item{
		ID:        s.idgen.New(),
		VolumeID:  volumeID,
		Status:    model.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.database.CreateItem(i); err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	s.logger.Info("item created", "item", i.ID, "volume", v.Name)
	return i, nil
}

// GetItem returns an item by ID.
func (s *Service) GetItem(id string) (*model.Item, error) {
	i, err := s.database.FindItemByID(id)
	if err != nil {
		return nil, fmt.Errorf("finding item: %w", err)
	}
	if i == nil {
		return nil, NewNotFoundError("item", id)
	}
	return i, nil
}

// SoftDeleteItem marks an item deleted. Membership rows are unaffected.
func (s *Service) SoftDeleteItem(id string) error {
	return s.setItemStatus(id, model.StatusDeleted)
}

// RestoreItem marks a soft-deleted item active again.
func (s *Service) RestoreItem(id string) error {
	return s.setItemStatus(id, model.StatusActive)
}

func (s *Service) setItemStatus(id string, status model.Status) error {
	i, err := s.database.FindItemByID(id)
	if err != nil {
		return fmt.Errorf("finding item: %w", err)
	}
	if i == nil {
		return NewNotFoundError("item", id)
	}
	if i.Status == status {
		return nil
	}

	if err := s.database.UpdateItemStatus(id, status, s.clock.Now()); err != nil {
		return fmt.Errorf("updating item status: %w", err)
	}
	return nil
}

// DestroyItem hard-deletes an item, its revisions, their comments and its
// membership rows.
func (s *Service) DestroyItem(id string) error {
	i, err := s.database.FindItemByID(id)
	if err != nil {
		return fmt.Errorf("finding item: %w", err)
	}
	if i == nil {
		return NewNotFoundError("item", id)
	}

	if err := s.database.DestroyItem(id); err != nil {
		return fmt.Errorf("destroying item: %w", err)
	}

	s.logger.Info("item destroyed", "item", id)
	return nil
}

// CreateRevision appends a new revision to an item. The revision number is
// allocated by the store inside the insert transaction: 1 + the item's
// current maximum, starting at 1. The name is trimmed and must be
// non-empty; the contents type must be registered as eligible.
func (s *Service) CreateRevision(itemID string, creator, contents model.Ref, name string, metadata map[string]string) (*model.ItemRevision, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewValidationError("name", "cannot be blank")
	}
	if !s.registry.Eligible(contents.Type) {
		return nil, NewValidationError("contents", fmt.Sprintf("type %q is not an eligible contents type", contents.Type))
	}

	item, err := s.database.FindItemByID(itemID)
	if err != nil {
		return nil, fmt.Errorf("finding item: %w", err)
	}
	if item == nil {
		return nil, NewNotFoundError("item", itemID)
	}

	if metadata == nil {
		metadata = map[string]string{}
	}

	now := s.clock.Now()
	r := &model.ItemRevision{
		ID:        s.idgen.New(),
		ItemID:    itemID,
		Name:      name,
		Creator:   creator,
		Contents:  contents,
		Metadata:  metadata,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.database.CreateRevision(r); err != nil {
		return nil, fmt.Errorf("creating revision: %w", err)
	}

	s.logger.Info("revision created", "item", itemID, "number", r.Number, "name", r.Name)
	return r, nil
}

// GetRevision returns a revision by ID.
func (s *Service) GetRevision(id string) (*model.ItemRevision, error) {
	r, err := s.database.FindRevisionByID(id)
	if err != nil {
		return nil, fmt.Errorf("finding revision: %w", err)
	}
	if r == nil {
		return nil, NewNotFoundError("revision", id)
	}
	return r, nil
}

// CurrentRevision returns the revision with the highest number for an
// item, or ErrNoCurrentRevision if the item has none.
func (s *Service) CurrentRevision(itemID string) (*model.ItemRevision, error) {
	item, err := s.database.FindItemByID(itemID)
	if err != nil {
		return nil, fmt.Errorf("finding item: %w", err)
	}
	if item == nil {
		return nil, NewNotFoundError("item", itemID)
	}

	r, err := s.database.CurrentRevision(itemID)
	if err != nil {
		return nil, fmt.Errorf("finding current revision: %w", err)
	}
	if r == nil {
		return nil, ErrNoCurrentRevision
	}
	return r, nil
}

// IsCurrent reports whether the revision holds the highest number among
// its item's revisions.
func (s *Service) IsCurrent(r *model.ItemRevision) (bool, error) {
	cur, err := s.database.CurrentRevision(r.ItemID)
	if err != nil {
		return false, fmt.Errorf("finding current revision: %w", err)
	}
	return cur != nil && cur.ID == r.ID, nil
}

// Revisions returns an item's revisions, newest first.
func (s *Service) Revisions(itemID string) ([]*model.ItemRevision, error) {
	item, err := s.database.FindItemByID(itemID)
	if err != nil {
		return nil, fmt.Errorf("finding item: %w", err)
	}
	if item == nil {
		return nil, NewNotFoundError("item", itemID)
	}
	return s.database.ListRevisions(itemID)
}

// UpdateRevision updates a revision's own fields: name and metadata.
// No new revision is created; only Item-level CreateRevision does that.
func (s *Service) UpdateRevision(id string, name string, metadata map[string]string) (*model.ItemRevision, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewValidationError("name", "cannot be blank")
	}

	r, err := s.database.FindRevisionByID(id)
	if err != nil {
		return nil, fmt.Errorf("finding revision: %w", err)
	}
	if r == nil {
		return nil, NewNotFoundError("revision", id)
	}

	r.Name = name
	if metadata != nil {
		r.Metadata = metadata
	}
	r.UpdatedAt = s.clock.Now()
	if err := s.database.UpdateRevision(r); err != nil {
		return nil, fmt.Errorf("updating revision: %w", err)
	}
	return r, nil
}

// ItemName returns the item's name as read through its current revision,
// or "" if the item has no revisions yet.
func (s *Service) ItemName(itemID string) (string, error) {
	r, err := s.CurrentRevision(itemID)
	if err != nil {
		if err == ErrNoCurrentRevision {
			return "", nil
		}
		return "", err
	}
	return r.Name, nil
}

// ItemUpdatedAt returns the current revision's update time, falling back
// to the item's own timestamp when no revision exists.
func (s *Service) ItemUpdatedAt(itemID string) (time.Time, error) {
	item, err := s.GetItem(itemID)
	if err != nil {
		return time.Time{}, err
	}

	r, err := s.database.CurrentRevision(itemID)
	if err != nil {
		return time.Time{}, fmt.Errorf("finding current revision: %w", err)
	}
	if r == nil {
		return item.UpdatedAt, nil
	}
	return r.UpdatedAt, nil
}

// AddItemToFolder records the item's membership in a folder. Membership is
// an item-owned fact: it survives soft-deletes of either endpoint and is
// removed only when an endpoint row is hard-destroyed. Adding an existing
// membership is a no-op.
func (s *Service) AddItemToFolder(itemID, folderID string) error {
	item, err := s.database.FindItemByID(itemID)
	if err != nil {
		return fmt.Errorf("finding item: %w", err)
	}
	if item == nil {
		return NewNotFoundError("item", itemID)
	}
	folder, err := s.database.FindFolderByID(folderID)
	if err != nil {
		return fmt.Errorf("finding folder: %w", err)
	}
	if folder == nil {
		return NewNotFoundError("folder", folderID)
	}

	if err := s.database.AddItemToFolder(folderID, itemID, s.clock.Now()); err != nil {
		return fmt.Errorf("adding item to folder: %w", err)
	}
	return nil
}

// RemoveItemFromFolder removes the membership record. Removing a missing
// membership is a no-op.
func (s *Service) RemoveItemFromFolder(itemID, folderID string) error {
	if err := s.database.RemoveItemFromFolder(folderID, itemID); err != nil {
		return fmt.Errorf("removing item from folder: %w", err)
	}
	return nil
}

// ItemFolders returns the active folders an item belongs to, by name.
// Soft-deleted folders are filtered out but their membership rows remain:
// restoring the folder restores visibility without re-adding.
func (s *Service) ItemFolders(itemID string) ([]*model.Folder, error) {
	item, err := s.database.FindItemByID(itemID)
	if err != nil {
		return nil, fmt.Errorf("finding item: %w", err)
	}
	if item == nil {
		return nil, NewNotFoundError("item", itemID)
	}
	return s.database.ListItemFolders(itemID)
}

// FolderItems returns the active items in a folder, newest first.
func (s *Service) FolderItems(folderID string) ([]*model.Item, error) {
	folder, err := s.database.FindFolderByID(folderID)
	if err != nil {
		return nil, fmt.Errorf("finding folder: %w", err)
	}
	if folder == nil {
		return nil, NewNotFoundError("folder", folderID)
	}
	return s.database.ListFolderItems(folderID)
}
