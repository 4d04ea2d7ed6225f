package model

import "time"

// Status is the soft-delete state of a folder or item. It is a closed set
// stored as an integer so future states can be added without a migration.
type Status int

const (
	StatusActive  Status = 0
	StatusDeleted Status = -1
)

// String returns the status label used in CLI output and logs.
func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// Ref is a tagged reference to an externally defined entity: a permission
// subject, a revision creator or its contents. The core never dereferences
// the referent; it only stores and compares the pair.
type Ref struct {
	Type string
	ID   string
}

// IsZero reports whether the reference is unset.
func (r Ref) IsZero() bool { return r.Type == "" && r.ID == "" }

// Volume is a top-level namespace owning folders and items.
type Volume struct {
	ID        string // UUID
	Name      string // Unique across volumes, trimmed, non-empty
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (v *Volume) String() string { return v.Name }

// Folder is a node in a volume's tree. ParentID is nil for roots.
// Name is unique (case-insensitively) among folders sharing the same
// volume, parent and status.
type Folder struct {
	ID        string  // UUID
	VolumeID  string  // Foreign key to Volume
	ParentID  *string // Foreign key to parent Folder, nil for roots
	Name      string  // Trimmed, non-empty
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (f *Folder) String() string { return f.Name }

// Item is a stable identity for versioned content. It has no name or
// contents of its own; both are read through its current revision.
type Item struct {
	ID        string // UUID
	VolumeID  string // Foreign key to Volume
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ItemRevision is one immutable numbered version of an item. Numbers are
// gapless and strictly increasing per item, starting at 1.
type ItemRevision struct {
	ID        string // UUID
	ItemID    string // Foreign key to Item
	Number    int    // Position within the item, 1-based
	Name      string // Trimmed, non-empty
	Creator   Ref    // External subject that created the revision
	Contents  Ref    // External content reference; type must be eligible
	Metadata  map[string]string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r *ItemRevision) String() string { return r.Name }

// Comment is a note on an item revision, listed newest first.
type Comment struct {
	ID             string // UUID
	ItemRevisionID string // Foreign key to ItemRevision
	Creator        Ref    // External subject that wrote the comment
	Message        string // Non-empty
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Authorization is a named capability in the global catalog, e.g. "read".
// The namespace is flat: no capability implies another.
type Authorization struct {
	ID          string // UUID
	Name        string // Unique
	Description string
	CreatedAt   time.Time
}

// Well-known capability names. Callers are free to mint others; the
// catalog is created on demand.
const (
	AuthRead   = "read"
	AuthWrite  = "write"
	AuthDelete = "delete"
	AuthShare  = "share"
	AuthAdmin  = "admin"
)

// Permission grants a subject access to one folder. A subject has at most
// one permission record per folder; the capabilities it carries live in
// the permission_authorizations join.
type Permission struct {
	ID        string // UUID
	FolderID  string // Foreign key to Folder
	Subject   Ref    // External subject holding the grant
	CreatedAt time.Time
}
