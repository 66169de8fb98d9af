package domain

import (
	"time"

	interfaces "matmarket/internal/domain/interfaces"
	types "matmarket/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Credentials  = types.Credentials
	Registration = types.Registration
	Blob         = types.Blob
	Listing      = types.Listing
	ListingForm  = types.ListingForm
	Timestamp    = types.Timestamp
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	CredentialStore = interfaces.CredentialStore
	ListingStore    = interfaces.ListingStore
	UploadStore     = interfaces.UploadStore
	PasswordHasher  = interfaces.PasswordHasher
	AccountService  = interfaces.AccountService
	Marketplace     = interfaces.Marketplace
	ListingService  = interfaces.ListingService
)

// TimestampLayout is the on-disk listing time format.
const TimestampLayout = types.TimestampLayout

// NewTimestamp truncates t to whole seconds in the local zone.
func NewTimestamp(t time.Time) Timestamp { return types.NewTimestamp(t) }

var (
	Categories         = types.Categories
	Units              = types.Units
	Conditions         = types.Conditions
	ContactPreferences = types.ContactPreferences

	IsCategory          = types.IsCategory
	IsUnit              = types.IsUnit
	IsCondition         = types.IsCondition
	IsContactPreference = types.IsContactPreference
)
