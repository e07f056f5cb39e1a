package sources

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/passfold/passfold/pkg/errors"
	"github.com/passfold/passfold/pkg/vault"
)

type fakeSource struct {
	options *Options
}

func (s *fakeSource) Format() Format { return Format("fake") }

func (s *fakeSource) Load(context.Context, string) ([]*vault.Vault, error) {
	return nil, nil
}

func TestRegistry(t *testing.T) {
	Register(Format("fake"), func(opts ...Option) Source {
		return &fakeSource{options: Apply(opts...)}
	})

	src, err := For(Format("fake"), WithVaultNames([]string{"Personal"}))
	require.NoError(t, err)
	fake := src.(*fakeSource)
	assert.True(t, fake.options.Wanted("Personal"))
	assert.False(t, fake.options.Wanted("Work"))

	_, err = For(Format("nope"))
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	assert.Contains(t, Formats(), "fake")
}

func TestOptionsWanted(t *testing.T) {
	assert.True(t, Apply().Wanted("anything"), "no filter means all vaults")
	o := Apply(WithVaultNames([]string{"A", "B"}))
	assert.True(t, o.Wanted("A"))
	assert.False(t, o.Wanted("C"))
}

func TestDetect(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	f, err := Detect("export.zip")
	require.NoError(t, err)
	assert.Equal(t, FormatProtonPass, f)

	f, err = Detect(write("archive.bin", "PK\x03\x04rest-of-zip"))
	require.NoError(t, err)
	assert.Equal(t, FormatProtonPass, f)

	f, err = Detect(write("data.json", `{"version":"1","vaults":{}}`))
	require.NoError(t, err)
	assert.Equal(t, FormatProtonData, f)

	f, err = Detect(write("bw.json", `{"encrypted":false,"items":[]}`))
	require.NoError(t, err)
	assert.Equal(t, FormatBitwarden, f)

	_, err = Detect(write("other.json", `{"something":"else"}`))
	assert.ErrorIs(t, err, errors.ErrUnsupportedFormat)

	_, err = Detect(filepath.Join(dir, "absent.json"))
	var ioErr *errors.IOError
	assert.ErrorAs(t, err, &ioErr)
}
