package vfs

import (
	"fmt"
	"strings"

	"vfs-go/internal/model"
)

// CreateFolderParams are the inputs to CreateFolder. Exactly one of
// VolumeID and ParentID may be empty: a folder with a parent and no
// explicit volume inherits the parent's volume.
type CreateFolderParams struct {
	VolumeID string
	ParentID string
	Name     string
}

// CreateFolder creates a folder in the tree. The name is trimmed; it must
// be non-empty and unique (case-insensitively) among folders with the same
// volume, parent and status. When ParentID is set and VolumeID is not, the
// volume is inherited from the parent; an explicit VolumeID is stored as
// given and not re-validated against the parent's.
func (s *Service) CreateFolder(p CreateFolderParams) (*model.Folder, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return nil, NewValidationError("name", "cannot be blank")
	}

	var parentID *string
	volumeID := p.VolumeID
	if p.ParentID != "" {
		parent, err := s.database.FindFolderByID(p.ParentID)
		if err != nil {
			return nil, fmt.Errorf("finding parent folder: %w", err)
		}
		if parent == nil {
			return nil, NewNotFoundError("folder", p.ParentID)
		}
		parentID = &parent.ID
		if volumeID == "" {
			volumeID = parent.VolumeID
		}
	}
	if volumeID == "" {
		return nil, NewValidationError("volume", "cannot be blank")
	}

	now := s.clock.Now()
	f := &model.Folder{
		ID:        s.idgen.New(),
		VolumeID:  volumeID,
		ParentID:  parentID,
		Name:      name,
		Status:    model.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.database.CreateFolder(f); err != nil {
		return nil, fmt.Errorf("creating folder: %w", err)
	}

	s.logger.Info("folder created", "folder", f.Name, "volume", volumeID)
	return f, nil
}

// GetFolder returns a folder by ID.
func (s *Service) GetFolder(id string) (*model.Folder, error) {
	f, err := s.database.FindFolderByID(id)
	if err != nil {
		return nil, fmt.Errorf("finding folder: %w", err)
	}
	if f == nil {
		return nil, NewNotFoundError("folder", id)
	}
	return f, nil
}

// Path returns the '/'-joined chain from the volume name through every
// ancestor folder name down to the folder's own name.
func (s *Service) Path(folderID string) (string, error) {
	f, err := s.GetFolder(folderID)
	if err != nil {
		return "", err
	}

	// Walk up the tree collecting names.
	names := []string{f.Name}
	cur := f
	for cur.ParentID != nil {
		parent, err := s.database.FindFolderByID(*cur.ParentID)
		if err != nil {
			return "", fmt.Errorf("finding ancestor folder: %w", err)
		}
		if parent == nil {
			return "", NewNotFoundError("folder", *cur.ParentID)
		}
		names = append(names, parent.Name)
		cur = parent
	}

	volume, err := s.database.FindVolumeByID(cur.VolumeID)
	if err != nil {
		return "", fmt.Errorf("finding volume: %w", err)
	}
	if volume == nil {
		return "", NewNotFoundError("volume", cur.VolumeID)
	}
	names = append(names, volume.Name)

	// Reverse: volume first, folder last.
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, "/"), nil
}

// SoftDeleteFolder marks a folder deleted. Descendants keep their own
// status; only destruction cascades, not soft-delete.
func (s *Service) SoftDeleteFolder(id string) error {
	return s.setFolderStatus(id, model.StatusDeleted)
}

// RestoreFolder marks a soft-deleted folder active again.
func (s *Service) RestoreFolder(id string) error {
	return s.setFolderStatus(id, model.StatusActive)
}

func (s *Service) setFolderStatus(id string, status model.Status) error {
	f, err := s.database.FindFolderByID(id)
	if err != nil {
		return fmt.Errorf("finding folder: %w", err)
	}
	if f == nil {
		return NewNotFoundError("folder", id)
	}
	if f.Status == status {
		return nil
	}

	if err := s.database.UpdateFolderStatus(id, status, s.clock.Now()); err != nil {
		return fmt.Errorf("updating folder status: %w", err)
	}

	s.logger.Info("folder status changed", "folder", f.Name, "status", status.String())
	return nil
}

// DestroyFolder hard-deletes a folder, all its descendant folders
// regardless of their status, and every permission on any of them.
// Membership rows for the destroyed folders are removed; the items
// themselves persist. The cascade is atomic.
func (s *Service) DestroyFolder(id string) error {
	f, err := s.database.FindFolderByID(id)
	if err != nil {
		return fmt.Errorf("finding folder: %w", err)
	}
	if f == nil {
		return NewNotFoundError("folder", id)
	}

	if err := s.database.DestroyFolder(id); err != nil {
		return fmt.Errorf("destroying folder: %w", err)
	}

	s.logger.Info("folder destroyed", "folder", f.Name)
	return nil
}

// SubFolders returns the active children of a folder, ordered by name.
func (s *Service) SubFolders(parentID string) ([]*model.Folder, error) {
	f, err := s.database.FindFolderByID(parentID)
	if err != nil {
		return nil, fmt.Errorf("finding folder: %w", err)
	}
	if f == nil {
		return nil, NewNotFoundError("folder", parentID)
	}
	return s.database.ListSubFolders(parentID)
}

// RootFolders returns the active root folders of a volume, ordered by name.
func (s *Service) RootFolders(volumeID string) ([]*model.Folder, error) {
	return s.database.ListRootFolders(volumeID)
}
