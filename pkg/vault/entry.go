// Package vault provides the unified entry model for password-vault records.
// Entries from different export formats are normalized into one tagged-sum
// Entry type, cleaned in place, and merged pairwise when they represent the
// same logical record.
package vault

import (
	"fmt"

	"github.com/agentstation/utc"
)

// Type discriminates the entry variants.
type Type string

// Entry types. The set is closed: merge and clean dispatch exhaustively on it.
const (
	TypeLogin Type = "login"      // Username/password credential, optionally with TOTP, URLs, passkeys
	TypeCard  Type = "creditCard" // Payment card
	TypeNote  Type = "note"       // Free-text secure note
	TypeAlias Type = "alias"      // Email alias; identity-only, no payload beyond the base fields
)

// String returns the string representation of a Type.
func (t Type) String() string {
	return string(t)
}

// Label returns the natural-language name of a Type for human-readable output.
func (t Type) Label() string {
	switch t {
	case TypeLogin:
		return "login"
	case TypeCard:
		return "credit card"
	case TypeNote:
		return "secure note"
	case TypeAlias:
		return "email alias"
	default:
		return string(t)
	}
}

// Valid reports whether t is one of the known entry types.
func (t Type) Valid() bool {
	switch t {
	case TypeLogin, TypeCard, TypeNote, TypeAlias:
		return true
	}
	return false
}

// ID is the logical identity of an entry: the (item id, name, type) triple.
// Two entries are the same logical record iff their IDs are equal, regardless
// of any other field differences.
type ID struct {
	ItemID string `json:"item_id" yaml:"item_id"`
	Name   string `json:"name" yaml:"name"`
	Type   Type   `json:"type" yaml:"type"`
}

// String returns the string representation of an ID.
func (id ID) String() string {
	return fmt.Sprintf("%s/%s/%s", id.ItemID, id.Type, id.Name)
}

// Entry represents one normalized vault record, independent of its
// originating vendor schema. Exactly one payload pointer is non-nil for
// login, card and note entries; alias entries carry no payload.
type Entry struct {
	// Core identity
	ItemID string `json:"item_id" yaml:"item_id"` // Stable unique identifier; synthesized when the export omits one
	Name   string `json:"name" yaml:"name"`       // Display name
	Type   Type   `json:"type" yaml:"type"`       // Variant discriminant

	// Common attributes
	Note       string `json:"note,omitempty" yaml:"note,omitempty"`               // Free-text note attached to the record
	Favorite   bool   `json:"favorite" yaml:"favorite"`                           // Pinned/favorite flag
	AliasEmail string `json:"alias_email,omitempty" yaml:"alias_email,omitempty"` // Alias address, when the vendor carries one

	// Payload sections - one per variant
	Login      *Login      `json:"login,omitempty" yaml:"login,omitempty"`
	Card       *Card       `json:"card,omitempty" yaml:"card,omitempty"`
	SecureNote *SecureNote `json:"secure_note,omitempty" yaml:"secure_note,omitempty"`

	// Extra holds vendor-specific data that does not fit the common schema.
	// Merged recursively; list values inside it are deduplicated structurally.
	Extra map[string]any `json:"extra,omitempty" yaml:"extra,omitempty"`

	// Timestamps for record keeping
	CreateTime utc.Time `json:"create_time" yaml:"create_time"`
	ModTime    utc.Time `json:"mod_time" yaml:"mod_time"`

	// origData is an independent deep copy of the raw decoded input,
	// retained unmodified for provenance. Never mutated after construction.
	origData map[string]any
}

// ID returns the identity triple of the entry.
func (e *Entry) ID() ID {
	return ID{ItemID: e.ItemID, Name: e.Name, Type: e.Type}
}

// Equal reports whether other is the same logical record: same variant and
// same identity triple. It is identity, not deep value equality.
func (e *Entry) Equal(other *Entry) bool {
	if other == nil {
		return false
	}
	return e.Type == other.Type && e.ID() == other.ID()
}

// OrigData returns the retained deep copy of the raw input the entry was
// constructed from. Callers must treat the returned tree as read-only.
func (e *Entry) OrigData() map[string]any {
	return e.origData
}

// String returns a debug representation of the entry.
func (e *Entry) String() string {
	return fmt.Sprintf("Entry(item_id=%s, type=%s, name=%s)", e.ItemID, e.Type, e.Name)
}

// Display returns a human-readable rendering of the entry.
func (e *Entry) Display() string {
	if e.Name == "" {
		return fmt.Sprintf("unnamed %s", e.Type.Label())
	}
	return fmt.Sprintf("%s (%s)", e.Name, e.Type.Label())
}

// Clean normalizes the entry's free-text and URL fields in place. Identity
// fields are left untouched except for whitespace normalization of the name,
// which happens before identities are compared.
func (e *Entry) Clean() {
	e.Name = CleanName(e.Name)
	switch e.Type {
	case TypeLogin:
		if e.Login != nil {
			e.Login.clean()
		}
	case TypeCard, TypeNote, TypeAlias:
		// No URL-bearing payload to normalize.
	}
}
