package vault

// CopyTree creates an independent deep copy of a decoded value tree.
// Maps and lists are copied recursively; scalars are returned as-is.
func CopyTree(v any) any {
	switch tv := v.(type) {
	case map[string]any:
		return CopyMap(tv)
	case []any:
		out := make([]any, len(tv))
		for i, item := range tv {
			out[i] = CopyTree(item)
		}
		return out
	case []string:
		out := make([]string, len(tv))
		copy(out, tv)
		return out
	case []map[string]any:
		out := make([]map[string]any, len(tv))
		for i, item := range tv {
			out[i] = CopyMap(item)
		}
		return out
	default:
		return v
	}
}

// CopyMap creates an independent deep copy of a decoded map.
// Returns nil if the input map is nil.
func CopyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = CopyTree(v)
	}
	return out
}

// copyRecords deep-copies a slice of decoded records.
func copyRecords(records []map[string]any) []map[string]any {
	if records == nil {
		return nil
	}
	out := make([]map[string]any, len(records))
	for i, r := range records {
		out[i] = CopyMap(r)
	}
	return out
}

// Copy returns an independent deep copy of the entry, including its payload
// section, extra fields and retained original data.
func (e *Entry) Copy() *Entry {
	out := *e
	if e.Login != nil {
		login := *e.Login
		login.URLs = append([]string(nil), e.Login.URLs...)
		login.Passkeys = copyRecords(e.Login.Passkeys)
		out.Login = &login
	}
	if e.Card != nil {
		card := *e.Card
		out.Card = &card
	}
	if e.SecureNote != nil {
		note := *e.SecureNote
		out.SecureNote = &note
	}
	out.Extra = CopyMap(e.Extra)
	out.origData = CopyMap(e.origData)
	return &out
}
