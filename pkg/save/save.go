// Package save writes normalized vault data as JSON or YAML, for inspection
// output and for formats that have no native writer.
package save

import (
	"encoding/json"
	"io"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/passfold/passfold/pkg/errors"
)

// JSON writes v to path as indented JSON.
func JSON(path string, v any) error {
	raw, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return errors.WrapIO("encode", path, err)
	}
	raw = append(raw, '\n')
	return errors.WrapIO("write", path, os.WriteFile(path, raw, 0o644))
}

// WriteJSON writes v to w as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(v)
}

// YAML writes v to path as YAML.
func YAML(path string, v any) error {
	raw, err := yaml.Marshal(v)
	if err != nil {
		return errors.WrapIO("encode", path, err)
	}
	return errors.WrapIO("write", path, os.WriteFile(path, raw, 0o644))
}

// WriteYAML writes v to w as YAML.
func WriteYAML(w io.Writer, v any) error {
	raw, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	_, err = w.Write(raw)
	return err
}
