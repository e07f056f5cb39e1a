package vault

import (
	"github.com/passfold/passfold/pkg/logging"
)

// Vault is a named collection of entries, as loaded from one vault of a
// vendor export.
type Vault struct {
	ID          string         `json:"id" yaml:"id"`
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Display     map[string]any `json:"display,omitempty" yaml:"display,omitempty"` // Vendor display settings (color, icon), carried through untouched
	Entries     []*Entry       `json:"entries" yaml:"entries"`
}

// Clean normalizes every entry in the vault in place.
func (v *Vault) Clean() {
	for _, e := range v.Entries {
		e.Clean()
	}
}

// MergeDuplicates folds entries that share an identity triple into one entry
// each, merging pairwise with the standard precedence rules. First-seen
// order of distinct identities is preserved.
func (v *Vault) MergeDuplicates() error {
	groups := make(map[ID][]*Entry, len(v.Entries))
	order := make([]ID, 0, len(v.Entries))
	for _, e := range v.Entries {
		id := e.ID()
		if _, seen := groups[id]; !seen {
			order = append(order, id)
		}
		groups[id] = append(groups[id], e)
	}

	merged := make([]*Entry, 0, len(order))
	for _, id := range order {
		entries := groups[id]
		first := entries[0]
		if len(entries) > 1 {
			logging.Default().Debug().
				Str("vault", v.Name).
				Str("entry", first.Display()).
				Int("count", len(entries)).
				Msg("Merging duplicate entries")
			for _, other := range entries[1:] {
				if err := first.Merge(other); err != nil {
					return err
				}
			}
		}
		merged = append(merged, first)
	}
	v.Entries = merged
	return nil
}

// Len returns the number of entries in the vault.
func (v *Vault) Len() int {
	return len(v.Entries)
}
