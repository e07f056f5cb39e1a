package vault

// Export renders the entry as a Proton Pass-shaped item map, suitable for
// re-serialization into an export document. The retained original data is
// used as the base so vendor fields with no home in the common schema
// survive the round trip; the entry's current values overwrite it. The
// entry itself is not modified.
func (e *Entry) Export() map[string]any {
	out := CopyMap(e.origData)
	if out == nil {
		out = make(map[string]any)
	}
	// Bitwarden-only top-level keys would collide with the nested shape.
	delete(out, "login")
	delete(out, "card")
	delete(out, "secureNote")
	delete(out, "notes")

	out["itemId"] = e.ItemID
	out["createTime"] = e.CreateTime.Unix()
	out["modifyTime"] = e.ModTime.Unix()
	out["pinned"] = e.Favorite
	if e.AliasEmail != "" {
		out["aliasEmail"] = e.AliasEmail
	}
	if state, ok := e.Extra["state"]; ok {
		out["state"] = state
	}

	data := ensureMap(out, "data")
	data["type"] = string(e.Type)

	metadata := ensureMap(data, "metadata")
	metadata["name"] = e.Name
	metadata["note"] = e.Note

	if extra, ok := e.Extra["extraFields"]; ok {
		data["extraFields"] = CopyTree(extra)
	}

	content := ensureMap(data, "content")
	switch e.Type {
	case TypeLogin:
		if l := e.Login; l != nil {
			content["username"] = l.Username
			content["password"] = l.Password
			content["totpUri"] = l.TOTP
			content["urls"] = CopyTree(l.URLs)
			content["passkeys"] = CopyTree(l.Passkeys)
		}
	case TypeCard:
		if c := e.Card; c != nil {
			content["cardholderName"] = c.CardholderName
			content["cardType"] = c.Brand
			content["number"] = c.Number
			content["verificationNumber"] = c.Code
			content["expirationDate"] = c.Expiration
			content["pin"] = c.PIN
		}
	case TypeNote, TypeAlias:
		// Note text lives in metadata; alias entries have empty content.
	}
	return out
}

// ensureMap returns the child map under key, creating it when absent or of
// the wrong shape.
func ensureMap(m map[string]any, key string) map[string]any {
	if child, ok := m[key].(map[string]any); ok {
		return child
	}
	child := make(map[string]any)
	m[key] = child
	return child
}
