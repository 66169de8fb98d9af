package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"matmarket/internal/crypto"
	"matmarket/internal/domain"
	accountsvc "matmarket/internal/services/account"
	listingsvc "matmarket/internal/services/listing"
	miniostore "matmarket/internal/storage/minio"
	"matmarket/internal/store"
)

// Wire bundles all stores and services built from a Config.
type Wire struct {
	Credentials *store.CredentialFileStore
	Listings    *store.ListingFileStore
	Uploads     domain.UploadStore
	Accounts    *accountsvc.Service
	Market      *listingsvc.Service
}

// NewWire constructs the dependency graph from cfg. cfg must already be
// resolved.
func NewWire(ctx context.Context, cfg Config, log *slog.Logger) (*Wire, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
		return nil, fmt.Errorf("create home %s: %w", cfg.Home, err)
	}

	// File-based snapshot stores
	credentialStore := store.NewCredentialFileStore(cfg.CredentialsPath(), log.With("store", "credentials"))
	listingStore := store.NewListingFileStore(cfg.ListingsPath(), log.With("store", "listings"))

	uploads, err := newUploadStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	hasher, err := crypto.NewPasswordHasher(cfg.PasswordHash, cfg.BcryptCost)
	if err != nil {
		return nil, err
	}

	// High-level services
	accounts := accountsvc.New(credentialStore, hasher, log.With("service", "account"))
	market := listingsvc.New(listingStore, uploads,
		listingsvc.WithMaxUploads(cfg.MaxUploads),
		listingsvc.WithLogger(log.With("service", "listing")),
	)

	return &Wire{
		Credentials: credentialStore,
		Listings:    listingStore,
		Uploads:     uploads,
		Accounts:    accounts,
		Market:      market,
	}, nil
}

// App returns the collaborator-facing surface of the wired services.
func (w *Wire) App() *App {
	return New(w.Accounts, w.Market, w.Uploads)
}

func newUploadStore(ctx context.Context, cfg Config) (domain.UploadStore, error) {
	if cfg.UploadBackend != BackendMinIO {
		return store.NewUploadDirStore(cfg.UploadPath(), store.WithUniqueNames(cfg.UniqueUploadNames)), nil
	}
	client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
		Secure: cfg.MinIO.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	return miniostore.New(ctx, client, cfg.MinIO.Bucket, cfg.UniqueUploadNames)
}
