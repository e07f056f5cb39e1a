package vault

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryIdentity(t *testing.T) {
	a := loginEntry("id-1", "GitHub", utcTime(1))
	b := loginEntry("id-1", "GitHub", utcTime(9))
	b.Login.Password = "differs"

	assert.True(t, a.Equal(b), "identity ignores payload and timestamps")
	assert.Equal(t, ID{ItemID: "id-1", Name: "GitHub", Type: TypeLogin}, a.ID())

	note := &Entry{ItemID: "id-1", Name: "GitHub", Type: TypeNote}
	assert.False(t, a.Equal(note), "same id and name but different type")

	renamed := loginEntry("id-1", "GitHub work", utcTime(1))
	assert.False(t, a.Equal(renamed))

	assert.False(t, a.Equal(nil))
}

func TestEntryStrings(t *testing.T) {
	e := loginEntry("id-1", "GitHub", utcTime(1))
	assert.Equal(t, "Entry(item_id=id-1, type=login, name=GitHub)", e.String())
	assert.Equal(t, "GitHub (login)", e.Display())

	card := &Entry{Type: TypeCard}
	assert.Equal(t, "unnamed credit card", card.Display())

	assert.Equal(t, "id-1/login/GitHub", e.ID().String())
}

func TestTypeValid(t *testing.T) {
	for _, typ := range []Type{TypeLogin, TypeCard, TypeNote, TypeAlias} {
		assert.True(t, typ.Valid(), typ.String())
	}
	assert.False(t, Type("identity").Valid())
	assert.False(t, Type("").Valid())
}

func TestEntryCopyIsIndependent(t *testing.T) {
	e := loginEntry("id-1", "GitHub", utcTime(1))
	e.Login.URLs = []string{"https://github.com"}
	e.Login.Passkeys = []map[string]any{{"keyId": "pk-1"}}
	e.Extra = map[string]any{"settings": map[string]any{"color": "blue"}}
	e.origData = map[string]any{"itemId": "id-1"}

	clone := e.Copy()
	require.Equal(t, e, clone)

	clone.Login.URLs[0] = "https://gitlab.com"
	clone.Login.Passkeys[0]["keyId"] = "pk-2"
	clone.Extra["settings"].(map[string]any)["color"] = "red"
	clone.origData["itemId"] = "other"

	assert.Equal(t, "https://github.com", e.Login.URLs[0])
	assert.Equal(t, "pk-1", e.Login.Passkeys[0]["keyId"])
	assert.Equal(t, "blue", e.Extra["settings"].(map[string]any)["color"])
	assert.Equal(t, "id-1", e.origData["itemId"])
}

func TestExportRoundTrip(t *testing.T) {
	raw := map[string]any{
		"itemId":     "item-1",
		"shareId":    "share-9",
		"createTime": float64(1700000000),
		"modifyTime": float64(1700000100),
		"state":      float64(1),
		"data": map[string]any{
			"type":     "login",
			"metadata": map[string]any{"name": "GitHub", "note": "work", "itemUuid": "u-1"},
			"content": map[string]any{
				"username": "octocat",
				"password": "hunter2",
				"urls":     []any{"https://github.com"},
			},
		},
	}
	entry, err := Parse(raw)
	require.NoError(t, err)

	entry.Login.Password = "rotated"
	out := entry.Export()

	assert.Equal(t, "item-1", out["itemId"])
	assert.Equal(t, int64(1700000000), out["createTime"])
	assert.Equal(t, int64(1700000100), out["modifyTime"])
	assert.Equal(t, float64(1), out["state"])
	assert.Equal(t, "share-9", out["shareId"], "vendor fields outside the schema survive")

	data := out["data"].(map[string]any)
	assert.Equal(t, "login", data["type"])
	metadata := data["metadata"].(map[string]any)
	assert.Equal(t, "GitHub", metadata["name"])
	assert.Equal(t, "u-1", metadata["itemUuid"])

	content := data["content"].(map[string]any)
	assert.Equal(t, "rotated", content["password"], "current values overwrite the retained base")
	assert.Equal(t, []string{"https://github.com"}, content["urls"])

	// Export must not touch the retained original.
	orig := entry.OrigData()
	origContent := orig["data"].(map[string]any)["content"].(map[string]any)
	assert.Equal(t, "hunter2", origContent["password"])
}

func TestExportBitwardenDropsVendorSections(t *testing.T) {
	raw := map[string]any{
		"id":    "bw-1",
		"name":  "Example",
		"type":  float64(1),
		"notes": "migrated",
		"login": map[string]any{"username": "u", "password": "p"},
	}
	entry, err := Parse(raw)
	require.NoError(t, err)

	out := entry.Export()
	assert.NotContains(t, out, "login")
	assert.NotContains(t, out, "notes")

	data := out["data"].(map[string]any)
	assert.Equal(t, "migrated", data["metadata"].(map[string]any)["note"])
	assert.Equal(t, "u", data["content"].(map[string]any)["username"])
}
