package vault

import (
	"github.com/agentstation/utc"

	"github.com/passfold/passfold/pkg/errors"
)

// Merge combines other into the receiver. Both entries must be the same
// variant; otherwise a TypeMismatchError is returned and neither side is
// modified.
//
// The side with the later ModTime is authoritative: its non-empty scalar
// fields win, with the other side filling gaps. On equal ModTimes the side
// with the lexicographically smaller ItemID is authoritative, so the outcome
// for a given pair is deterministic. Nested maps merge recursively under the
// same rule; set-like lists concatenate authoritative-first and are
// deduplicated structurally, preserving first-occurrence order. The receiver
// is mutated in place; other is never modified. The merged ModTime is the
// later of the two.
func (e *Entry) Merge(other *Entry) error {
	if other == nil {
		return nil
	}
	if e.Type != other.Type {
		return errors.NewTypeMismatchError(e.Type.String(), other.Type.String())
	}

	newer, older := e, other
	if authoritative(other, e) {
		newer, older = other, e
	}

	merged := Entry{
		ItemID:     pickString(newer.ItemID, older.ItemID),
		Name:       pickString(newer.Name, older.Name),
		Type:       e.Type,
		Note:       pickString(newer.Note, older.Note),
		AliasEmail: pickString(newer.AliasEmail, older.AliasEmail),

		// A cleared flag is indistinguishable from an absent one, so a
		// favorite on either side survives the merge.
		Favorite: newer.Favorite || older.Favorite,

		CreateTime: pickTime(newer.CreateTime, older.CreateTime),
		ModTime:    laterTime(e.ModTime, other.ModTime),

		Extra: mergeTree(newer.Extra, older.Extra),

		// Provenance follows the receiver.
		origData: e.origData,
	}

	switch e.Type {
	case TypeLogin:
		merged.Login = mergeLogin(newer.Login, older.Login)
	case TypeCard:
		merged.Card = mergeCard(newer.Card, older.Card)
	case TypeNote:
		merged.SecureNote = mergeSecureNote(newer.SecureNote, older.SecureNote)
	case TypeAlias:
		// Identity-only: nothing beyond the base fields.
	}

	*e = merged
	return nil
}

// authoritative reports whether a wins the precedence contest against b.
func authoritative(a, b *Entry) bool {
	if !a.ModTime.Equal(b.ModTime) {
		return a.ModTime.After(b.ModTime)
	}
	return a.ItemID < b.ItemID
}

// pickString keeps the authoritative value unless it is empty.
func pickString(newer, older string) string {
	if newer != "" {
		return newer
	}
	return older
}

// pickTime keeps the authoritative timestamp unless it is unset.
func pickTime(newer, older utc.Time) utc.Time {
	if !newer.IsZero() {
		return newer
	}
	return older
}

// laterTime returns the later of two timestamps.
func laterTime(a, b utc.Time) utc.Time {
	if b.After(a) {
		return b
	}
	return a
}

// mergeStrings concatenates newer-first and drops duplicates, preserving
// first-occurrence order.
func mergeStrings(newer, older []string) []string {
	if newer == nil && older == nil {
		return nil
	}
	combined := make([]string, 0, len(newer)+len(older))
	combined = append(combined, newer...)
	combined = append(combined, older...)
	return Unique(combined)
}

// mergeRecords concatenates newer-first and drops structural duplicates. The
// surviving records are deep-copied so the merged entry shares no storage
// with the donor.
func mergeRecords(newer, older []map[string]any) []map[string]any {
	if newer == nil && older == nil {
		return nil
	}
	combined := make([]map[string]any, 0, len(newer)+len(older))
	combined = append(combined, newer...)
	combined = append(combined, older...)
	return copyRecords(Unique(combined))
}

// mergeTree merges two decoded map trees key-by-key: the newer side's
// non-empty values win, nested maps recurse, and lists present on both sides
// concatenate newer-first with structural deduplication. The result shares
// no storage with either input.
func mergeTree(newer, older map[string]any) map[string]any {
	if newer == nil && older == nil {
		return nil
	}
	out := CopyMap(newer)
	if out == nil {
		out = make(map[string]any)
	}
	for k, ov := range older {
		nv, present := out[k]
		if !present || emptyValue(nv) {
			out[k] = CopyTree(ov)
			continue
		}
		switch nvt := nv.(type) {
		case map[string]any:
			if ovm, ok := ov.(map[string]any); ok {
				out[k] = mergeTree(nvt, ovm)
			}
		case []any:
			if ovl, ok := ov.([]any); ok {
				combined := make([]any, 0, len(nvt)+len(ovl))
				combined = append(combined, nvt...)
				for _, item := range ovl {
					combined = append(combined, CopyTree(item))
				}
				out[k] = Unique(combined)
			}
		}
	}
	return out
}

// emptyValue reports whether a decoded value counts as absent for merge
// purposes. Numbers and booleans are always considered present.
func emptyValue(v any) bool {
	switch tv := v.(type) {
	case nil:
		return true
	case string:
		return tv == ""
	case map[string]any:
		return len(tv) == 0
	case []any:
		return len(tv) == 0
	case []string:
		return len(tv) == 0
	case []map[string]any:
		return len(tv) == 0
	}
	return false
}
