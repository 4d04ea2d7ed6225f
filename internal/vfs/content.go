package vfs

// ContentRegistry answers whether an external contents type may back an
// item revision. Registration is the marker capability: a type is eligible
// iff something registered it. The core never interprets the payload.
type ContentRegistry interface {
	Eligible(contentsType string) bool
}
