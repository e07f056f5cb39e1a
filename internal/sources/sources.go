// Package sources defines the reader interface for password-vault export
// formats and a registry resolving format names to readers.
package sources

import (
	"context"
	"encoding/json"
	"os"
	"strings"

	"github.com/passfold/passfold/pkg/errors"
	"github.com/passfold/passfold/pkg/vault"
)

// Format identifies a supported export format.
type Format string

// Supported export formats.
const (
	FormatBitwarden  Format = "bitwarden"  // Flat items-list JSON export
	FormatProtonPass Format = "protonpass" // Proton Pass export zip (Proton Pass/data.json inside)
	FormatProtonData Format = "protondb"   // Proton Pass data.json as a plain file
)

// String returns the string representation of a Format.
func (f Format) String() string {
	return string(f)
}

// Source reads one export format into normalized vaults. A Source is
// stateful: Load retains whatever document framing the format carries so a
// Saver can reproduce it on the way out.
type Source interface {
	// Format returns the format this source reads.
	Format() Format

	// Load reads and normalizes the export at path.
	Load(ctx context.Context, path string) ([]*vault.Vault, error)
}

// Saver is implemented by sources that can write their format back out.
type Saver interface {
	// Save writes the given vaults to path in the source's format,
	// preserving document framing captured during Load.
	Save(path string, vaults []*vault.Vault) error
}

// Option configures a source at construction time.
type Option func(*Options)

// Options holds cross-source construction settings.
type Options struct {
	// VaultNames restricts loading to the named vaults, for formats that
	// carry more than one. Empty means all.
	VaultNames []string
}

// WithVaultNames restricts loading to the named vaults.
func WithVaultNames(names []string) Option {
	return func(o *Options) {
		o.VaultNames = names
	}
}

// Apply collects options into an Options value.
func Apply(opts ...Option) *Options {
	o := &Options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Wanted reports whether a vault with the given name should be loaded.
func (o *Options) Wanted(name string) bool {
	if len(o.VaultNames) == 0 {
		return true
	}
	for _, n := range o.VaultNames {
		if n == name {
			return true
		}
	}
	return false
}

// constructors maps formats to source constructors. Registered by For to
// keep the format set closed and the import graph acyclic.
var constructors map[Format]func(...Option) Source

// Register installs a constructor for a format. Called from source package
// init functions.
func Register(f Format, constructor func(...Option) Source) {
	if constructors == nil {
		constructors = make(map[Format]func(...Option) Source)
	}
	constructors[f] = constructor
}

// For returns a source for the named format.
func For(f Format, opts ...Option) (Source, error) {
	constructor, ok := constructors[f]
	if !ok {
		return nil, errors.WrapValidation("format", errors.ErrUnsupportedFormat)
	}
	return constructor(opts...), nil
}

// Formats returns the registered format names, for CLI help text.
func Formats() []string {
	out := make([]string, 0, len(constructors))
	for f := range constructors {
		out = append(out, string(f))
	}
	return out
}

// Detect guesses the export format of a file: zip archives are Proton Pass
// exports, JSON documents are classified by their top-level keys.
func Detect(path string) (Format, error) {
	if strings.HasSuffix(strings.ToLower(path), ".zip") {
		return FormatProtonPass, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", errors.WrapIO("read", path, err)
	}
	if len(raw) >= 2 && raw[0] == 'P' && raw[1] == 'K' {
		return FormatProtonPass, nil
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return "", errors.WrapParse("unknown", path, err)
	}
	if _, ok := doc["vaults"]; ok {
		return FormatProtonData, nil
	}
	if _, ok := doc["items"]; ok {
		return FormatBitwarden, nil
	}
	return "", errors.NewParseError("unknown", path, "unrecognized document shape", errors.ErrUnsupportedFormat)
}
