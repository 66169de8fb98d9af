package interfaces

import (
	"context"

	domaintypes "matmarket/internal/domain/types"
)

// AccountService registers and authenticates users.
type AccountService interface {
	Register(ctx context.Context, reg domaintypes.Registration) error
	Authenticate(ctx context.Context, email, password string) error
}

// Marketplace publishes and lists material listings.
type Marketplace interface {
	Publish(ctx context.Context, form domaintypes.ListingForm, blobs []domaintypes.Blob) (domaintypes.Listing, error)
	List(ctx context.Context) ([]domaintypes.Listing, error)
}

// ListingService is a Marketplace that can also validate a form without
// persisting the resulting listing.
type ListingService interface {
	Marketplace
	ValidateAndBuild(ctx context.Context, form domaintypes.ListingForm, blobs []domaintypes.Blob) (domaintypes.Listing, error)
}
