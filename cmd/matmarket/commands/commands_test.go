package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matmarket/internal/domain"
)

func run(t *testing.T, home string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("MATMARKET_SERVER_URL", "")
	t.Setenv("MATMARKET_LOG_LEVEL", "error")

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--home", home}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestRegisterThenLogin(t *testing.T) {
	home := t.TempDir()

	out, err := run(t, home, "register", "a@b.com", "--password", "pw", "--confirm", "pw", "--accept-terms")
	require.NoError(t, err)
	assert.Contains(t, out, "Registered a@b.com")

	_, err = run(t, home, "register", "a@b.com", "--password", "pw", "--confirm", "pw", "--accept-terms")
	require.ErrorIs(t, err, domain.ErrEmailTaken)

	out, err = run(t, home, "login", "a@b.com", "--password", "pw")
	require.NoError(t, err)
	assert.Contains(t, out, "Welcome, a@b.com")

	_, err = run(t, home, "login", "a@b.com", "--password", "nope")
	require.ErrorIs(t, err, domain.ErrWrongPassword)

	raw, err := os.ReadFile(filepath.Join(home, "users.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"a@b.com":"pw"}`, string(raw))
}

func TestRegister_TermsRequired(t *testing.T) {
	_, err := run(t, t.TempDir(), "register", "a@b.com", "--password", "pw", "--confirm", "pw")
	require.ErrorIs(t, err, domain.ErrTermsNotAccepted)
}

func TestSellThenListings(t *testing.T) {
	home := t.TempDir()
	img := filepath.Join(t.TempDir(), "crate.png")
	require.NoError(t, os.WriteFile(img, []byte("png"), 0o644))
	txt := filepath.Join(t.TempDir(), "readme.txt")
	require.NoError(t, os.WriteFile(txt, []byte("txt"), 0o644))

	out, err := run(t, home, "listings")
	require.NoError(t, err)
	assert.Contains(t, out, "No listings yet.")

	out, err = run(t, home, "sell",
		"--title", "Pallet Wood",
		"--category", "Wood Waste",
		"--quantity", "4",
		"--price", "2.5",
		"--location", "Bristol",
		"--contact-name", "Jo",
		"--contact-email", "jo@x.io",
		"--image", img,
		"--image", txt,
		"--accept-terms",
	)
	require.NoError(t, err)
	assert.Contains(t, out, `Listed "Pallet Wood"`)
	assert.Contains(t, out, "skipping non-image files: readme.txt")
	assert.Contains(t, out, "with 1 image(s)")

	data, err := os.ReadFile(filepath.Join(home, "uploads", "crate.png"))
	require.NoError(t, err)
	assert.Equal(t, "png", string(data))

	out, err = run(t, home, "listings")
	require.NoError(t, err)
	assert.Contains(t, out, "[1] Pallet Wood (Wood Waste)")
	assert.Contains(t, out, "4 kg @ 2.50 per kg")
	assert.Contains(t, out, filepath.Join(home, "uploads", "crate.png"))
}

func TestSell_Rejected(t *testing.T) {
	home := t.TempDir()
	_, err := run(t, home, "sell", "--title", "X", "--location", "Y", "--contact-name", "Z", "--contact-email", "z@x.io")
	require.ErrorIs(t, err, domain.ErrTermsNotAccepted)

	_, err = os.Stat(filepath.Join(home, "listings.json"))
	assert.True(t, os.IsNotExist(err))

	img := filepath.Join(t.TempDir(), "a.png")
	require.NoError(t, os.WriteFile(img, []byte("png"), 0o644))
	_, err = run(t, home, "sell", "--title", "X", "--location", "Y", "--contact-name", "Z",
		"--contact-email", "z@x.io", "--price", "NaN", "--image", img, "--accept-terms")
	require.ErrorIs(t, err, domain.ErrInvalidField)

	_, err = os.Stat(filepath.Join(home, "uploads"))
	assert.True(t, os.IsNotExist(err), "rejected listing must not store images")
}
