// Package bitwarden reads Bitwarden's unencrypted JSON export: a flat list
// of items with numeric type codes and an optional folder list.
package bitwarden

import (
	"context"
	"encoding/json"
	"os"

	"github.com/passfold/passfold/internal/sources"
	"github.com/passfold/passfold/pkg/errors"
	"github.com/passfold/passfold/pkg/logging"
	"github.com/passfold/passfold/pkg/vault"
)

func init() {
	sources.Register(sources.FormatBitwarden, func(opts ...sources.Option) sources.Source {
		return New(opts...)
	})
}

// export mirrors the top level of a Bitwarden JSON export. Items stay as
// decoded maps; vault.Parse does the tolerant field mapping.
type export struct {
	Encrypted bool             `json:"encrypted"`
	Folders   []folder         `json:"folders"`
	Items     []map[string]any `json:"items"`
}

type folder struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Source reads Bitwarden exports.
type Source struct {
	options *sources.Options
}

// New creates a new Bitwarden source.
func New(opts ...sources.Option) *Source {
	return &Source{options: sources.Apply(opts...)}
}

// Format returns the format this source reads.
func (s *Source) Format() sources.Format {
	return sources.FormatBitwarden
}

// Load reads a Bitwarden export. Items are grouped into one vault per
// folder, with unfoldered items in a default vault named after the format.
func (s *Source) Load(ctx context.Context, path string) ([]*vault.Vault, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	var doc export
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.WrapParse(string(sources.FormatBitwarden), path, err)
	}
	if doc.Encrypted {
		return nil, errors.NewParseError(string(sources.FormatBitwarden), path,
			"encrypted exports are not supported; export without a password", errors.ErrInvalidInput)
	}

	folderNames := make(map[string]string, len(doc.Folders))
	for _, f := range doc.Folders {
		folderNames[f.ID] = f.Name
	}

	byFolder := make(map[string]*vault.Vault)
	order := make([]*vault.Vault, 0, 1)
	vaultFor := func(folderID string) *vault.Vault {
		if v, ok := byFolder[folderID]; ok {
			return v
		}
		name := folderNames[folderID]
		if name == "" {
			name = "Bitwarden"
		}
		v := &vault.Vault{ID: folderID, Name: name}
		byFolder[folderID] = v
		order = append(order, v)
		return v
	}

	for _, item := range doc.Items {
		entry, err := vault.Parse(item)
		if err != nil {
			if errors.Is(err, errors.ErrUnknownEntryType) {
				logging.Ctx(ctx).Debug().
					Str("format", string(sources.FormatBitwarden)).
					Interface("type", item["type"]).
					Msg("Skipping item of unsupported type")
				continue
			}
			return nil, err
		}
		folderID, _ := item["folderId"].(string)
		v := vaultFor(folderID)
		if !s.options.Wanted(v.Name) {
			continue
		}
		v.Entries = append(v.Entries, entry)
	}

	wanted := make([]*vault.Vault, 0, len(order))
	for _, v := range order {
		if s.options.Wanted(v.Name) {
			wanted = append(wanted, v)
		}
	}
	return wanted, nil
}
