package vfs

import (
	"time"

	"vfs-go/internal/model"
)

// Database provides an interface for metadata storage operations.
// Find methods return nil (not an error) when no row matches; multi-row
// mutations run inside a single transaction. Constraint violations surface
// as *ValidationError.
type Database interface {
	// Volume operations

	// CreateVolume inserts a new volume. The name must be unique.
	CreateVolume(v *model.Volume) error

	// FindVolumeByID returns a volume by ID, or nil if none exists.
	FindVolumeByID(id string) (*model.Volume, error)

	// FindVolumeByName returns a volume by exact name, or nil if none exists.
	FindVolumeByName(name string) (*model.Volume, error)

	// ListVolumes returns all volumes ordered by name.
	ListVolumes() ([]*model.Volume, error)

	// DeleteVolume removes a volume and everything it owns: folders (with
	// their permissions and membership rows) and items (with their
	// revisions and comments).
	DeleteVolume(id string) error

	// Folder operations

	// CreateFolder inserts a new folder. Name uniqueness is scoped to
	// (volume, parent, status), case-insensitively.
	CreateFolder(f *model.Folder) error

	// FindFolderByID returns a folder by ID, or nil if none exists.
	FindFolderByID(id string) (*model.Folder, error)

	// UpdateFolderStatus sets a folder's status. Descendants keep their own.
	UpdateFolderStatus(id string, status model.Status, now time.Time) error

	// ListSubFolders returns the active children of a folder, by name.
	ListSubFolders(parentID string) ([]*model.Folder, error)

	// ListRootFolders returns the active roots of a volume, by name.
	ListRootFolders(volumeID string) ([]*model.Folder, error)

	// DestroyFolder hard-deletes a folder, every descendant folder
	// regardless of status, all permissions on any of them, and their
	// membership rows. Items that were members persist. The cascade is
	// all-or-nothing.
	DestroyFolder(id string) error

	// Item operations

	// CreateItem inserts a new item.
	CreateItem(i *model.Item) error

	// FindItemByID returns an item by ID, or nil if none exists.
	FindItemByID(id string) (*model.Item, error)

	// UpdateItemStatus sets an item's status.
	UpdateItemStatus(id string, status model.Status, now time.Time) error

	// DestroyItem hard-deletes an item, its revisions, their comments and
	// its membership rows.
	DestroyItem(id string) error

	// Revision operations

	// CreateRevision inserts a revision, allocating the next gapless
	// number for the item atomically within the insert transaction.
	// On return r.Number holds the allocated number. A concurrent
	// allocation conflict surfaces as *ValidationError.
	CreateRevision(r *model.ItemRevision) error

	// FindRevisionByID returns a revision by ID, or nil if none exists.
	FindRevisionByID(id string) (*model.ItemRevision, error)

	// CurrentRevision returns the revision with the highest number for an
	// item, or nil if the item has none.
	CurrentRevision(itemID string) (*model.ItemRevision, error)

	// ListRevisions returns an item's revisions, newest first by number.
	ListRevisions(itemID string) ([]*model.ItemRevision, error)

	// UpdateRevision updates a revision's own mutable fields (name,
	// metadata). Number, creator and contents never change.
	UpdateRevision(r *model.ItemRevision) error

	// Membership operations

	// AddItemToFolder records membership. Adding an existing membership
	// is a no-op.
	AddItemToFolder(folderID, itemID string, now time.Time) error

	// RemoveItemFromFolder removes membership. Removing a missing
	// membership is a no-op.
	RemoveItemFromFolder(folderID, itemID string) error

	// ListItemFolders returns the active folders an item belongs to, by name.
	ListItemFolders(itemID string) ([]*model.Folder, error)

	// ListFolderItems returns the active items in a folder, newest first
	// by creation time.
	ListFolderItems(folderID string) ([]*model.Item, error)

	// Comment operations

	// CreateComment inserts a comment on a revision.
	CreateComment(c *model.Comment) error

	// FindCommentByID returns a comment by ID, or nil if none exists.
	FindCommentByID(id string) (*model.Comment, error)

	// ListComments returns a revision's comments, newest first.
	ListComments(itemRevisionID string) ([]*model.Comment, error)

	// UpdateComment updates a comment's message.
	UpdateComment(c *model.Comment) error

	// DeleteComment removes a comment.
	DeleteComment(id string) error

	// ACL operations

	// Grant finds or creates the permission for (folder, subject), then
	// finds or creates each named authorization in the global catalog and
	// links it to the permission. All steps are idempotent and run in one
	// transaction.
	Grant(folderID string, subject model.Ref, authNames []string, now time.Time) (*model.Permission, error)

	// RevokeAll removes the permission (and its links) for a subject on a
	// folder. No-op if none exists.
	RevokeAll(folderID string, subject model.Ref) error

	// RevokeAuthorization removes one capability link. The permission
	// itself survives even when it holds no capabilities afterwards.
	RevokeAuthorization(folderID string, subject model.Ref, authName string) error

	// IsAccessible reports whether any permission exists for the pair.
	IsAccessible(folderID string, subject model.Ref) (bool, error)

	// IsAuthorized reports whether a permission exists for the pair and
	// holds the named capability.
	IsAuthorized(folderID string, subject model.Ref, authName string) (bool, error)

	// AuthorizationNamesFor returns the capability names a subject holds
	// on a folder, sorted.
	AuthorizationNamesFor(folderID string, subject model.Ref) ([]string, error)

	// FoldersVisibleTo returns every folder with any permission for the
	// subject, deduplicated, in a single query.
	FoldersVisibleTo(subject model.Ref) ([]*model.Folder, error)

	// FoldersAuthorizedFor returns every folder where the subject holds
	// the named capability, deduplicated, in a single query.
	FoldersAuthorizedFor(subject model.Ref, authName string) ([]*model.Folder, error)

	// CheckMigrations verifies the schema is at the latest version.
	CheckMigrations() error

	// MigrateUp brings the schema to the latest version.
	MigrateUp() error

	// Close closes the database connection.
	Close() error
}
