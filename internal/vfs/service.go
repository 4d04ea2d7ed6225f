package vfs

import (
	"fmt"
	"strings"

	"vfs-go/internal/model"
)

// Service is the orchestration layer for the metadata core: the folder
// tree, item versioning, the ACL engine and revision comments. It
// validates inputs, assigns IDs and timestamps, and delegates persistence
// to the Database, which enforces the uniqueness invariants.
type Service struct {
	database Database
	registry ContentRegistry
	logger   Logger
	clock    Clock
	idgen    IDGenerator
}

// NewService creates a Service with the provided dependencies.
func NewService(database Database, registry ContentRegistry, logger Logger, clock Clock, idgen IDGenerator) *Service {
	return &Service{
		database: database,
		registry: registry,
		logger:   logger,
		clock:    clock,
		idgen:    idgen,
	}
}

// CreateVolume creates a new top-level namespace. The name is trimmed and
// must be non-empty and unique.
func (s *Service) CreateVolume(name string) (*model.Volume, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewValidationError("name", "cannot be blank")
	}

	now := s.clock.Now()
	v := &model.Volume{
		ID:        s.idgen.New(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.database.CreateVolume(v); err != nil {
		return nil, fmt.Errorf("creating volume: %w", err)
	}

	s.logger.Info("volume created", "volume", v.Name)
	return v, nil
}

// GetVolume returns a volume by ID.
func (s *Service) GetVolume(id string) (*model.Volume, error) {
	v, err := s.database.FindVolumeByID(id)
	if err != nil {
		return nil, fmt.Errorf("finding volume: %w", err)
	}
	if v == nil {
		return nil, NewNotFoundError("volume", id)
	}
	return v, nil
}

// ListVolumes returns all volumes ordered by name.
func (s *Service) ListVolumes() ([]*model.Volume, error) {
	return s.database.ListVolumes()
}

// DeleteVolume destroys a volume and everything it owns.
func (s *Service) DeleteVolume(id string) error {
	v, err := s.database.FindVolumeByID(id)
	if err != nil {
		return fmt.Errorf("finding volume: %w", err)
	}
	if v == nil {
		return NewNotFoundError("volume", id)
	}

	if err := s.database.DeleteVolume(id); err != nil {
		return fmt.Errorf("deleting volume: %w", err)
	}

	s.logger.Info("volume deleted", "volume", v.Name)
	return nil
}
