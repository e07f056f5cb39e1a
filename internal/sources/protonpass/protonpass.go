// Package protonpass reads and writes Proton Pass exports, both the export
// zip (with Proton Pass/data.json inside) and the plain data.json variant.
package protonpass

import (
	"archive/zip"
	"context"
	"encoding/json"
	"io"
	"os"
	"sort"

	"github.com/passfold/passfold/internal/sources"
	"github.com/passfold/passfold/pkg/errors"
	"github.com/passfold/passfold/pkg/logging"
	"github.com/passfold/passfold/pkg/vault"
)

// dataPath is where the document lives inside the export zip.
const dataPath = "Proton Pass/data.json"

func init() {
	sources.Register(sources.FormatProtonPass, func(opts ...sources.Option) sources.Source {
		return New(opts...)
	})
	sources.Register(sources.FormatProtonData, func(opts ...sources.Option) sources.Source {
		return NewData(opts...)
	})
}

// document mirrors the top level of Proton Pass's data.json.
type document struct {
	Version   string               `json:"version"`
	UserID    string               `json:"userId"`
	Encrypted bool                 `json:"encrypted"`
	Vaults    map[string]vaultData `json:"vaults"`
}

// vaultData mirrors one vault inside the document.
type vaultData struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Display     map[string]any   `json:"display,omitempty"`
	Items       []map[string]any `json:"items"`
}

// Source reads and writes the Proton Pass export zip.
type Source struct {
	options *sources.Options
	doc     *document
}

// New creates a new Proton Pass zip source.
func New(opts ...sources.Option) *Source {
	return &Source{options: sources.Apply(opts...)}
}

// Format returns the format this source reads.
func (s *Source) Format() sources.Format {
	return sources.FormatProtonPass
}

// Load reads the export zip at path and normalizes its vaults. Document
// framing (version, user id, encrypted flag) is retained for Save.
func (s *Source) Load(ctx context.Context, path string) ([]*vault.Vault, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, errors.WrapParse(string(sources.FormatProtonPass), path, err)
	}
	defer func() { _ = zr.Close() }()

	f, err := zr.Open(dataPath)
	if err != nil {
		return nil, errors.NewParseError(string(sources.FormatProtonPass), path,
			"missing "+dataPath, err)
	}
	defer func() { _ = f.Close() }()

	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return s.decode(ctx, raw, path, sources.FormatProtonPass)
}

// Save writes the vaults back as an export zip at path, preserving the
// document framing captured during Load.
func (s *Source) Save(path string, vaults []*vault.Vault) error {
	doc := s.encode(vaults)
	raw, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return errors.WrapIO("encode", path, err)
	}

	out, err := os.Create(path)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	zw := zip.NewWriter(out)
	w, err := zw.Create(dataPath)
	if err == nil {
		_, err = w.Write(raw)
	}
	if err == nil {
		err = zw.Close()
	}
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	return errors.WrapIO("write", path, err)
}

// decode parses a data.json document and converts wanted vaults.
func (s *Source) decode(ctx context.Context, raw []byte, path string, format sources.Format) ([]*vault.Vault, error) {
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.WrapParse(string(format), path, err)
	}
	if doc.Encrypted {
		return nil, errors.NewParseError(string(format), path,
			"encrypted exports are not supported; export unencrypted data", errors.ErrInvalidInput)
	}
	s.doc = &doc

	// Map iteration order is random; sort by vault id so output is stable.
	ids := make([]string, 0, len(doc.Vaults))
	for id := range doc.Vaults {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	vaults := make([]*vault.Vault, 0, len(doc.Vaults))
	for _, id := range ids {
		vd := doc.Vaults[id]
		if !s.options.Wanted(vd.Name) {
			continue
		}
		v := &vault.Vault{
			ID:          id,
			Name:        vd.Name,
			Description: vd.Description,
			Display:     vd.Display,
		}
		for _, item := range vd.Items {
			entry, err := vault.Parse(item)
			if err != nil {
				if errors.Is(err, errors.ErrUnknownEntryType) {
					logging.Ctx(ctx).Debug().
						Str("format", string(format)).
						Str("vault", vd.Name).
						Msg("Skipping item of unsupported type")
					continue
				}
				return nil, err
			}
			v.Entries = append(v.Entries, entry)
		}
		vaults = append(vaults, v)
	}
	return vaults, nil
}

// encode rebuilds the document from the given vaults and the framing
// captured at load time.
func (s *Source) encode(vaults []*vault.Vault) *document {
	doc := &document{
		Version: "unknown",
		Vaults:  make(map[string]vaultData, len(vaults)),
	}
	if s.doc != nil {
		doc.Version = s.doc.Version
		doc.UserID = s.doc.UserID
		doc.Encrypted = s.doc.Encrypted
	}
	for _, v := range vaults {
		display := v.Display
		if display == nil {
			display = map[string]any{"color": float64(0), "icon": float64(0)}
		}
		items := make([]map[string]any, 0, len(v.Entries))
		for _, e := range v.Entries {
			items = append(items, e.Export())
		}
		doc.Vaults[v.ID] = vaultData{
			Name:        v.Name,
			Description: v.Description,
			Display:     display,
			Items:       items,
		}
	}
	return doc
}

// DataSource reads and writes the plain data.json variant.
type DataSource struct {
	Source
}

// NewData creates a new plain data.json source.
func NewData(opts ...sources.Option) *DataSource {
	return &DataSource{Source: Source{options: sources.Apply(opts...)}}
}

// Format returns the format this source reads.
func (s *DataSource) Format() sources.Format {
	return sources.FormatProtonData
}

// Load reads a plain data.json file at path.
func (s *DataSource) Load(ctx context.Context, path string) ([]*vault.Vault, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return s.decode(ctx, raw, path, sources.FormatProtonData)
}

// Save writes the vaults back as an indented data.json file at path.
func (s *DataSource) Save(path string, vaults []*vault.Vault) error {
	doc := s.encode(vaults)
	raw, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return errors.WrapIO("encode", path, err)
	}
	return errors.WrapIO("write", path, os.WriteFile(path, raw, 0o644))
}
