package app

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matmarket/internal/domain"
	"matmarket/internal/logger"
)

func TestNewWire_EndToEnd(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	cfg.Home = t.TempDir()
	require.NoError(t, cfg.Resolve())

	w, err := NewWire(context.Background(), cfg, logger.Discard())
	require.NoError(t, err)
	a := w.App()
	ctx := context.Background()

	require.NoError(t, a.Accounts.Register(ctx, domain.Registration{
		Email: "a@x.io", Password: "pw", ConfirmPassword: "pw", AcceptedTerms: true,
	}))
	require.NoError(t, a.Accounts.Authenticate(ctx, "a@x.io", "pw"))

	l, err := a.Market.Publish(ctx, domain.ListingForm{
		MaterialTitle:    "Glass jars",
		Category:         "Glass",
		Quantity:         1,
		Unit:             "piece",
		Location:         "Goa",
		Condition:        "Like New",
		ContactName:      "Mina",
		ContactEmail:     "mina@x.io",
		PreferredContact: "Email",
		AcceptedTerms:    true,
	}, []domain.Blob{{Name: "jar.png", Data: []byte("jar")}})
	require.NoError(t, err)
	assert.Equal(t, []string{"jar.png"}, l.UploadedFiles)

	for _, p := range []string{cfg.CredentialsPath(), cfg.ListingsPath(), cfg.UploadPath()} {
		_, err := os.Stat(p)
		assert.NoError(t, err, p)
	}
}

func TestNewWire_UnknownHash(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	cfg.Home = t.TempDir()
	cfg.PasswordHash = "rot13"

	_, err = NewWire(context.Background(), cfg, nil)
	assert.Error(t, err)
}
