package protonpass

import (
	"archive/zip"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/passfold/passfold/internal/sources"
	"github.com/passfold/passfold/pkg/errors"
	"github.com/passfold/passfold/pkg/vault"
)

func testDocument() map[string]any {
	return map[string]any{
		"version":   "1.21.2",
		"userId":    "user-1",
		"encrypted": false,
		"vaults": map[string]any{
			"v-2": map[string]any{
				"name":        "Work",
				"description": "",
				"display":     map[string]any{"color": float64(3), "icon": float64(1)},
				"items": []any{
					map[string]any{
						"itemId":     "item-2",
						"createTime": float64(1700000000),
						"modifyTime": float64(1700000100),
						"data": map[string]any{
							"type":     "login",
							"metadata": map[string]any{"name": "GitHub", "note": ""},
							"content":  map[string]any{"username": "octocat", "password": "p", "urls": []any{"https://github.com"}},
						},
					},
				},
			},
			"v-1": map[string]any{
				"name":        "Personal",
				"description": "default vault",
				"items": []any{
					map[string]any{
						"itemId": "item-1",
						"data": map[string]any{
							"type":     "note",
							"metadata": map[string]any{"name": "Reminder", "note": "remember this"},
							"content":  map[string]any{},
						},
					},
					map[string]any{
						"itemId": "item-x",
						"data": map[string]any{
							"type":     "identity",
							"metadata": map[string]any{"name": "Me"},
							"content":  map[string]any{},
						},
					},
				},
			},
		},
	}
}

func writeZip(t *testing.T, doc map[string]any) string {
	t.Helper()
	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "export.zip")
	out, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(out)
	w, err := zw.Create(dataPath)
	require.NoError(t, err)
	_, err = w.Write(raw)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, out.Close())
	return path
}

func writeData(t *testing.T, doc map[string]any) string {
	t.Helper()
	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, raw, 0o644))
	return path
}

func TestLoadZip(t *testing.T) {
	path := writeZip(t, testDocument())

	vaults, err := New().Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, vaults, 2)

	// Vaults come out sorted by id regardless of map order.
	personal, work := vaults[0], vaults[1]
	assert.Equal(t, "Personal", personal.Name)
	assert.Equal(t, "default vault", personal.Description)
	require.Equal(t, 1, personal.Len(), "unsupported item types are skipped")
	assert.Equal(t, vault.TypeNote, personal.Entries[0].Type)
	assert.Equal(t, "remember this", personal.Entries[0].Note)

	assert.Equal(t, "Work", work.Name)
	require.Equal(t, 1, work.Len())
	entry := work.Entries[0]
	assert.Equal(t, "item-2", entry.ItemID)
	assert.Equal(t, vault.TypeLogin, entry.Type)
	assert.Equal(t, []string{"https://github.com"}, entry.Login.URLs)
}

func TestLoadZipVaultFilter(t *testing.T) {
	path := writeZip(t, testDocument())
	vaults, err := New(sources.WithVaultNames([]string{"Work"})).Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, vaults, 1)
	assert.Equal(t, "Work", vaults[0].Name)
}

func TestLoadZipRejectsEncrypted(t *testing.T) {
	doc := testDocument()
	doc["encrypted"] = true
	path := writeZip(t, doc)
	_, err := New().Load(context.Background(), path)
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}

func TestLoadZipMissingDataFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.zip")
	out, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(out)
	_, err = zw.Create("README.txt")
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, out.Close())

	_, loadErr := New().Load(context.Background(), path)
	var parseErr *errors.ParseError
	require.ErrorAs(t, loadErr, &parseErr)
	assert.Contains(t, parseErr.Message, dataPath)
}

func TestSaveRoundTrip(t *testing.T) {
	src := New()
	vaults, err := src.Load(context.Background(), writeZip(t, testDocument()))
	require.NoError(t, err)

	outPath := filepath.Join(t.TempDir(), "deduped.zip")
	require.NoError(t, src.Save(outPath, vaults))

	// The document framing captured at load time survives the round trip.
	zr, err := zip.OpenReader(outPath)
	require.NoError(t, err)
	defer func() { _ = zr.Close() }()
	f, err := zr.Open(dataPath)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	var doc document
	require.NoError(t, json.NewDecoder(f).Decode(&doc))
	assert.Equal(t, "1.21.2", doc.Version)
	assert.Equal(t, "user-1", doc.UserID)
	assert.False(t, doc.Encrypted)
	require.Len(t, doc.Vaults, 2)

	work := doc.Vaults["v-2"]
	assert.Equal(t, "Work", work.Name)
	assert.Equal(t, map[string]any{"color": float64(3), "icon": float64(1)}, work.Display)
	require.Len(t, work.Items, 1)
	item := work.Items[0]
	assert.Equal(t, "item-2", item["itemId"])
	data := item["data"].(map[string]any)
	assert.Equal(t, "login", data["type"])
	assert.Equal(t, "GitHub", data["metadata"].(map[string]any)["name"])

	personal := doc.Vaults["v-1"]
	assert.Equal(t, map[string]any{"color": float64(0), "icon": float64(0)}, personal.Display,
		"vaults without display settings get defaults")
}

func TestDataSource(t *testing.T) {
	src := NewData()
	assert.Equal(t, sources.FormatProtonData, src.Format())

	vaults, err := src.Load(context.Background(), writeData(t, testDocument()))
	require.NoError(t, err)
	require.Len(t, vaults, 2)

	outPath := filepath.Join(t.TempDir(), "data-out.json")
	require.NoError(t, src.Save(outPath, vaults))

	raw, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var doc document
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, "user-1", doc.UserID)
	assert.Len(t, doc.Vaults, 2)
}

func TestDataSourceRejectsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))
	_, err := NewData().Load(context.Background(), path)
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}
