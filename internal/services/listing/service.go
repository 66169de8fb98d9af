package listing

import (
	"context"
	"log/slog"
	"math"
	"time"

	"matmarket/internal/domain"
	"matmarket/internal/store"
)

// Service validates and publishes listings.
type Service struct {
	listings   domain.ListingStore
	uploads    domain.UploadStore
	maxUploads int
	now        func() time.Time
	log        *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithMaxUploads caps how many images a listing keeps.
func WithMaxUploads(n int) Option {
	return func(s *Service) { s.maxUploads = n }
}

// WithClock replaces time.Now for listing timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLogger sets the service logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) { s.log = log }
}

// New returns a listing service over the given stores.
func New(listings domain.ListingStore, uploads domain.UploadStore, opts ...Option) *Service {
	s := &Service{
		listings:   listings,
		uploads:    uploads,
		maxUploads: store.DefaultMaxUploads,
		now:        time.Now,
		log:        slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ValidateAndBuild checks form and, if it is acceptable, stores the uploaded
// blobs and returns the finished listing. The listing itself is not persisted.
func (s *Service) ValidateAndBuild(ctx context.Context, form domain.ListingForm, blobs []domain.Blob) (domain.Listing, error) {
	if err := Validate(form); err != nil {
		return domain.Listing{}, err
	}
	listingTime := domain.NewTimestamp(s.now())

	names, err := s.uploads.StoreUploads(ctx, blobs, s.maxUploads)
	if err != nil {
		return domain.Listing{}, err
	}

	return domain.Listing{
		MaterialTitle:    form.MaterialTitle,
		Category:         form.Category,
		Quantity:         form.Quantity,
		Unit:             form.Unit,
		PricePerUnit:     form.PricePerUnit,
		Location:         form.Location,
		Condition:        form.Condition,
		Description:      form.Description,
		UploadedFiles:    names,
		ContactName:      form.ContactName,
		ContactEmail:     form.ContactEmail,
		ContactPhone:     form.ContactPhone,
		PreferredContact: form.PreferredContact,
		ListingTime:      listingTime,
	}, nil
}

// Publish validates and builds a listing and appends it to the store.
func (s *Service) Publish(ctx context.Context, form domain.ListingForm, blobs []domain.Blob) (domain.Listing, error) {
	l, err := s.ValidateAndBuild(ctx, form, blobs)
	if err != nil {
		return domain.Listing{}, err
	}
	if err := s.listings.AppendListing(l); err != nil {
		return domain.Listing{}, err
	}
	s.log.Info("listing published", "title", l.MaterialTitle, "images", len(l.UploadedFiles))
	return l, nil
}

// List returns every listing in publication order.
func (s *Service) List(_ context.Context) ([]domain.Listing, error) {
	return s.listings.LoadListings()
}

// Validate applies the listing rules in order: accepted terms, required
// fields, then enumerated and numeric field domains.
func Validate(form domain.ListingForm) error {
	if !form.AcceptedTerms {
		return domain.Invalid(domain.ErrTermsNotAccepted, "accepted_terms")
	}

	required := []struct {
		field, value string
	}{
		{"material_title", form.MaterialTitle},
		{"contact_name", form.ContactName},
		{"contact_email", form.ContactEmail},
		{"location", form.Location},
	}
	for _, r := range required {
		if r.value == "" {
			return domain.Invalid(domain.ErrMissingFields, r.field)
		}
	}

	switch {
	case !domain.IsCategory(form.Category):
		return domain.Invalid(domain.ErrInvalidField, "category")
	case !domain.IsUnit(form.Unit):
		return domain.Invalid(domain.ErrInvalidField, "unit")
	case !domain.IsCondition(form.Condition):
		return domain.Invalid(domain.ErrInvalidField, "condition")
	case !domain.IsContactPreference(form.PreferredContact):
		return domain.Invalid(domain.ErrInvalidField, "preferred_contact")
	case form.Quantity < 1:
		return domain.Invalid(domain.ErrInvalidField, "quantity")
	case math.IsNaN(form.PricePerUnit) || math.IsInf(form.PricePerUnit, 0) || form.PricePerUnit < 0:
		return domain.Invalid(domain.ErrInvalidField, "price_per_unit")
	}
	return nil
}

// Compile-time assertion that Service implements domain.ListingService.
var _ domain.ListingService = (*Service)(nil)
