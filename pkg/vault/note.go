package vault

// SecureNote is the payload of a secure note entry. The title lives in the
// entry's Name; Body is the note text itself.
type SecureNote struct {
	Body string `json:"body,omitempty" yaml:"body,omitempty"`
}

// mergeSecureNote combines two note payloads under the standard scalar rule.
func mergeSecureNote(newer, older *SecureNote) *SecureNote {
	if newer == nil && older == nil {
		return nil
	}
	if newer == nil {
		newer = &SecureNote{}
	}
	if older == nil {
		older = &SecureNote{}
	}
	return &SecureNote{
		Body: pickString(newer.Body, older.Body),
	}
}
