package vault

import (
	"time"

	"github.com/agentstation/utc"
	"github.com/google/uuid"

	"github.com/passfold/passfold/pkg/errors"
)

// ParseOption configures entry construction.
type ParseOption func(*parser)

// WithIDGenerator overrides the generator used to synthesize item IDs for
// records that arrive without one. The default is a random UUID v4.
func WithIDGenerator(gen func() string) ParseOption {
	return func(p *parser) {
		p.newID = gen
	}
}

// WithClock overrides the clock used to default missing timestamps.
func WithClock(now func() utc.Time) ParseOption {
	return func(p *parser) {
		p.now = now
	}
}

type parser struct {
	newID func() string
	now   func() utc.Time
}

// Parse builds an Entry from a decoded vendor record. It tolerates both the
// flat Bitwarden spelling and the nested Proton Pass one, accepts any
// superset of the recognized fields, and defaults whatever is absent: a
// missing item ID is synthesized, a missing name becomes empty, and missing
// timestamps default to the construction time. The raw input is retained as
// an independent deep copy.
//
// The only failure mode is a record whose type cannot be resolved to one of
// the known variants; such records surface errors.ErrUnknownEntryType so
// callers can skip them.
func Parse(raw map[string]any, opts ...ParseOption) (*Entry, error) {
	p := &parser{
		newID: uuid.NewString,
		now:   utc.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p.parse(raw)
}

func (p *parser) parse(raw map[string]any) (*Entry, error) {
	entryType, ok := resolveType(raw)
	if !ok {
		return nil, errors.ErrUnknownEntryType
	}

	data := mapAt(raw, "data")
	metadata := mapAt(data, "metadata")
	now := p.now()

	e := &Entry{
		ItemID:     stringAt(raw, "itemId", "id", "item_id"),
		Name:       firstString(stringAt(metadata, "name"), stringAt(raw, "name")),
		Type:       entryType,
		Note:       firstString(stringAt(metadata, "note"), stringAt(raw, "notes", "note")),
		Favorite:   boolAt(raw, "favorite", "pinned"),
		AliasEmail: stringAt(raw, "aliasEmail", "alias_email"),
		CreateTime: timeAt(now, raw, "createTime", "creationDate", "create_time"),
		ModTime:    timeAt(now, raw, "modifyTime", "revisionDate", "modTime", "mod_time"),
		Extra:      extraFields(raw, data),
		origData:   CopyMap(raw),
	}
	if e.ItemID == "" {
		e.ItemID = p.newID()
	}

	switch entryType {
	case TypeLogin:
		e.Login = parseLogin(raw, data)
	case TypeCard:
		e.Card = parseCard(raw, data)
	case TypeNote:
		e.SecureNote = &SecureNote{Body: e.Note}
	case TypeAlias:
		// Identity-only.
	}
	return e, nil
}

// Bitwarden encodes item types numerically.
const (
	bitwardenLogin      = 1
	bitwardenSecureNote = 2
	bitwardenCard       = 3
)

// resolveType determines the entry variant from either the nested Proton
// Pass type string or the numeric Bitwarden item type.
func resolveType(raw map[string]any) (Type, bool) {
	if data := mapAt(raw, "data"); data != nil {
		if t := Type(stringAt(data, "type")); t.Valid() {
			return t, true
		}
	}
	if t := Type(stringAt(raw, "type")); t.Valid() {
		return t, true
	}
	if n, ok := asFloat(raw["type"]); ok {
		switch int(n) {
		case bitwardenLogin:
			return TypeLogin, true
		case bitwardenSecureNote:
			return TypeNote, true
		case bitwardenCard:
			return TypeCard, true
		}
	}
	return "", false
}

// parseLogin reads the login payload from either the Proton Pass content
// section or the Bitwarden login section.
func parseLogin(raw, data map[string]any) *Login {
	content := mapAt(data, "content")
	if content == nil {
		content = mapAt(raw, "login")
	}
	return &Login{
		Username: stringAt(content, "username", "itemEmail", "itemUsername"),
		Password: stringAt(content, "password"),
		TOTP:     stringAt(content, "totpUri", "totp"),
		URLs:     parseURLs(content),
		Passkeys: recordsAt(content, "passkeys", "fido2Credentials"),
	}
}

// parseURLs accepts both the Proton Pass plain list and the Bitwarden
// uris-of-objects form.
func parseURLs(content map[string]any) []string {
	if content == nil {
		return nil
	}
	if urls, ok := content["urls"].([]any); ok {
		out := make([]string, 0, len(urls))
		for _, u := range urls {
			if s, ok := u.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	if uris, ok := content["uris"].([]any); ok {
		out := make([]string, 0, len(uris))
		for _, u := range uris {
			if m, ok := u.(map[string]any); ok {
				if s := stringAt(m, "uri"); s != "" {
					out = append(out, s)
				}
			}
		}
		return out
	}
	return nil
}

// parseCard reads the card payload from either vendor shape. Bitwarden
// splits the expiration into month and year; they are joined as MM/YYYY.
func parseCard(raw, data map[string]any) *Card {
	content := mapAt(data, "content")
	if content == nil {
		content = mapAt(raw, "card")
	}
	expiration := stringAt(content, "expirationDate")
	if expiration == "" {
		month := stringAt(content, "expMonth")
		year := stringAt(content, "expYear")
		if month != "" && year != "" {
			expiration = month + "/" + year
		}
	}
	return &Card{
		CardholderName: stringAt(content, "cardholderName"),
		Brand:          firstString(stringAt(content, "brand"), stringAt(content, "cardType")),
		Number:         stringAt(content, "number"),
		Code:           stringAt(content, "code", "verificationNumber"),
		Expiration:     expiration,
		PIN:            stringAt(content, "pin"),
	}
}

// extraFields collects vendor-specific data that has no home in the common
// schema. The values are deep-copied so the entry never aliases the input.
func extraFields(raw, data map[string]any) map[string]any {
	extra := make(map[string]any)
	if data != nil {
		if fields, ok := data["extraFields"].([]any); ok && len(fields) > 0 {
			extra["extraFields"] = CopyTree(fields)
		}
	}
	if fields, ok := raw["fields"].([]any); ok && len(fields) > 0 {
		extra["fields"] = CopyTree(fields)
	}
	if state, ok := raw["state"]; ok {
		extra["state"] = state
	}
	if len(extra) == 0 {
		return nil
	}
	return extra
}

// Decoded-map accessors. All of them tolerate nil maps and missing keys.

func mapAt(m map[string]any, key string) map[string]any {
	if m == nil {
		return nil
	}
	if v, ok := m[key].(map[string]any); ok {
		return v
	}
	return nil
}

func stringAt(m map[string]any, keys ...string) string {
	if m == nil {
		return ""
	}
	for _, k := range keys {
		if v, ok := m[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

func boolAt(m map[string]any, keys ...string) bool {
	for _, k := range keys {
		if v, ok := m[k].(bool); ok && v {
			return true
		}
	}
	return false
}

func recordsAt(m map[string]any, keys ...string) []map[string]any {
	if m == nil {
		return nil
	}
	for _, k := range keys {
		list, ok := m[k].([]any)
		if !ok {
			continue
		}
		out := make([]map[string]any, 0, len(list))
		for _, item := range list {
			if rec, ok := item.(map[string]any); ok {
				out = append(out, CopyMap(rec))
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

func firstString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// timeAt reads the first present timestamp under keys, accepting both epoch
// seconds (Proton Pass) and RFC 3339 strings (Bitwarden). Falls back to the
// provided default when nothing usable is found.
func timeAt(fallback utc.Time, m map[string]any, keys ...string) utc.Time {
	for _, k := range keys {
		v, ok := m[k]
		if !ok {
			continue
		}
		if n, ok := asFloat(v); ok && n > 0 {
			return utc.Time{Time: time.Unix(int64(n), 0).UTC()}
		}
		if s, ok := v.(string); ok && s != "" {
			if t, err := time.Parse(time.RFC3339, s); err == nil {
				return utc.Time{Time: t.UTC()}
			}
		}
	}
	return fallback
}
