package vault

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeDuplicatesFoldsGroups(t *testing.T) {
	a1 := loginEntry("id-1", "GitHub", utcTime(1))
	a1.Login.Username = "octocat"
	a2 := loginEntry("id-1", "GitHub", utcTime(3))
	a2.Login.Password = "hunter2"
	a3 := loginEntry("id-1", "GitHub", utcTime(2))
	a3.Login.TOTP = "otpauth://totp/GitHub"

	b := loginEntry("id-2", "Bank", utcTime(1))
	c := &Entry{ItemID: "id-1", Name: "GitHub", Type: TypeNote, ModTime: utcTime(1),
		SecureNote: &SecureNote{Body: "same id and name, different type"}}

	v := &Vault{Name: "Personal", Entries: []*Entry{a1, b, a2, c, a3}}
	require.NoError(t, v.MergeDuplicates())

	// The three id-1 logins fold into one; the note shares id and name but
	// not type, so it stays separate.
	require.Equal(t, 3, v.Len())
	assert.Equal(t, "GitHub", v.Entries[0].Name)
	assert.Equal(t, TypeLogin, v.Entries[0].Type)
	assert.Equal(t, "Bank", v.Entries[1].Name)
	assert.Equal(t, TypeNote, v.Entries[2].Type)

	// All three duplicates contribute fields.
	merged := v.Entries[0]
	assert.Equal(t, "octocat", merged.Login.Username)
	assert.Equal(t, "hunter2", merged.Login.Password)
	assert.Equal(t, "otpauth://totp/GitHub", merged.Login.TOTP)
	assert.Equal(t, utcTime(3), merged.ModTime, "mod time is the latest of the group")
}

func TestMergeDuplicatesPreservesOrder(t *testing.T) {
	v := &Vault{Entries: []*Entry{
		loginEntry("z", "Zeta", utcTime(1)),
		loginEntry("a", "Alpha", utcTime(1)),
		loginEntry("z", "Zeta", utcTime(2)),
		loginEntry("m", "Mid", utcTime(1)),
	}}
	require.NoError(t, v.MergeDuplicates())

	names := make([]string, 0, v.Len())
	for _, e := range v.Entries {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"Zeta", "Alpha", "Mid"}, names)
}

func TestMergeDuplicatesNoDuplicatesIsNoop(t *testing.T) {
	v := &Vault{Entries: []*Entry{
		loginEntry("a", "Alpha", utcTime(1)),
		loginEntry("b", "Beta", utcTime(1)),
	}}
	require.NoError(t, v.MergeDuplicates())
	assert.Equal(t, 2, v.Len())
}

func TestVaultClean(t *testing.T) {
	e := loginEntry("id-1", "  My  Login ", utcTime(1))
	e.Login.URLs = []string{"HTTPS://Example.com/"}
	v := &Vault{Entries: []*Entry{e}}
	v.Clean()
	assert.Equal(t, "My Login", e.Name)
	assert.Equal(t, []string{"https://example.com"}, e.Login.URLs)
}
