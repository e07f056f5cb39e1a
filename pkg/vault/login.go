package vault

// Login is the payload of a login entry.
type Login struct {
	Username string `json:"username,omitempty" yaml:"username,omitempty"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
	TOTP     string `json:"totp,omitempty" yaml:"totp,omitempty"` // otpauth:// URI

	// URLs the credential applies to. Treated as a set: no two entries are
	// equal after Clean or a merge.
	URLs []string `json:"urls,omitempty" yaml:"urls,omitempty"`

	// Passkeys holds FIDO2/passkey credential records as decoded by the
	// source. They are opaque here beyond deduplication by structural
	// equality.
	Passkeys []map[string]any `json:"passkeys,omitempty" yaml:"passkeys,omitempty"`
}

// clean normalizes every URL and drops structural duplicates.
func (l *Login) clean() {
	if len(l.URLs) > 0 {
		cleaned := make([]string, 0, len(l.URLs))
		for _, u := range l.URLs {
			cleaned = append(cleaned, CleanURL(u))
		}
		l.URLs = Unique(cleaned)
	}
	if len(l.Passkeys) > 0 {
		l.Passkeys = Unique(l.Passkeys)
	}
}

// merge combines two login payloads. The receiver is the authoritative
// (more recently modified) side: its non-empty scalars win, and its list
// elements come first in the combined order.
func mergeLogin(newer, older *Login) *Login {
	if newer == nil && older == nil {
		return nil
	}
	if newer == nil {
		newer = &Login{}
	}
	if older == nil {
		older = &Login{}
	}
	return &Login{
		Username: pickString(newer.Username, older.Username),
		Password: pickString(newer.Password, older.Password),
		TOTP:     pickString(newer.TOTP, older.TOTP),
		URLs:     mergeStrings(newer.URLs, older.URLs),
		Passkeys: mergeRecords(newer.Passkeys, older.Passkeys),
	}
}
