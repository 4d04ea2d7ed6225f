package vfs

import (
	"fmt"
	"strings"

	"vfs-go/internal/model"
)

// Grant gives a subject access to a folder with the named capabilities.
// The permission record, each authorization in the global catalog, and
// each capability link are found-or-created idempotently: granting twice
// leaves exactly one permission and one link per capability.
func (s *Service) Grant(folderID string, subject model.Ref, authNames ...string) (*model.Permission, error) {
	if subject.IsZero() {
		return nil, NewValidationError("subject", "cannot be blank")
	}
	for _, name := range authNames {
		if strings.TrimSpace(name) == "" {
			return nil, NewValidationError("authorization", "name cannot be blank")
		}
	}

	folder, err := s.database.FindFolderByID(folderID)
	if err != nil {
		return nil, fmt.Errorf("finding folder: %w", err)
	}
	if folder == nil {
		return nil, NewNotFoundError("folder", folderID)
	}

	p, err := s.database.Grant(folderID, subject, authNames, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("granting access: %w", err)
	}

	s.logger.Info("access granted",
		"folder", folder.Name,
		"subject", subject.Type+":"+subject.ID,
		"authorizations", strings.Join(authNames, ","))
	return p, nil
}

// RevokeAll removes the subject's permission on the folder along with all
// its capability links. Calling it when no permission exists is a no-op.
func (s *Service) RevokeAll(folderID string, subject model.Ref) error {
	if err := s.database.RevokeAll(folderID, subject); err != nil {
		return fmt.Errorf("revoking access: %w", err)
	}

	s.logger.Info("access revoked", "folder", folderID, "subject", subject.Type+":"+subject.ID)
	return nil
}

// RevokeAuthorization removes one capability from the subject's permission
// on the folder. The permission record survives even when it becomes
// empty. Missing permission or capability is a no-op.
func (s *Service) RevokeAuthorization(folderID string, subject model.Ref, authName string) error {
	if err := s.database.RevokeAuthorization(folderID, subject, authName); err != nil {
		return fmt.Errorf("revoking authorization: %w", err)
	}
	return nil
}

// IsAccessible reports whether the subject holds any permission on the
// folder, regardless of which capabilities it carries.
func (s *Service) IsAccessible(folderID string, subject model.Ref) (bool, error) {
	return s.database.IsAccessible(folderID, subject)
}

// IsAuthorized reports whether the subject's permission on the folder
// holds the named capability. The namespace is flat: holding "admin" does
// not imply "read".
func (s *Service) IsAuthorized(folderID string, subject model.Ref, authName string) (bool, error) {
	return s.database.IsAuthorized(folderID, subject, authName)
}

// Authorizations returns the capability names the subject holds on the
// folder, sorted. Empty when no permission exists.
func (s *Service) Authorizations(folderID string, subject model.Ref) ([]string, error) {
	return s.database.AuthorizationNamesFor(folderID, subject)
}

// FoldersVisibleTo returns every folder with any permission for the
// subject. This is the primary workspace listing for a subject and runs
// as one query.
func (s *Service) FoldersVisibleTo(subject model.Ref) ([]*model.Folder, error) {
	return s.database.FoldersVisibleTo(subject)
}

// FoldersAuthorizedFor returns every folder where the subject holds the
// named capability: a subset of FoldersVisibleTo.
func (s *Service) FoldersAuthorizedFor(subject model.Ref, authName string) ([]*model.Folder, error) {
	return s.database.FoldersAuthorizedFor(subject, authName)
}
