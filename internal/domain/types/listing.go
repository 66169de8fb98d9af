package types

import (
	"encoding/json"
	"time"
)

// TimestampLayout is the on-disk format of Listing.ListingTime.
const TimestampLayout = "2006-01-02 15:04:05"

// Timestamp is a wall-clock time with second precision, serialised using
// TimestampLayout in the local time zone.
type Timestamp struct {
	time.Time
}

// NewTimestamp truncates t to whole seconds in the local zone.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.Local().Truncate(time.Second)}
}

// String returns the TimestampLayout form.
func (t Timestamp) String() string { return t.Format(TimestampLayout) }

// MarshalJSON encodes the timestamp as a TimestampLayout string.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(TimestampLayout))
}

// UnmarshalJSON accepts TimestampLayout and, failing that, RFC 3339.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := time.ParseInLocation(TimestampLayout, s, time.Local)
	if err != nil {
		rfc, rfcErr := time.Parse(time.RFC3339, s)
		if rfcErr != nil {
			return err
		}
		parsed = rfc.Local()
	}
	t.Time = parsed
	return nil
}

// Listing is one published material listing. Field order and JSON names match
// the listing snapshot file.
type Listing struct {
	MaterialTitle    string    `json:"material_title"`
	Category         string    `json:"category"`
	Quantity         int       `json:"quantity"`
	Unit             string    `json:"unit"`
	PricePerUnit     float64   `json:"price_per_unit"`
	Location         string    `json:"location"`
	Condition        string    `json:"condition"`
	Description      string    `json:"description"`
	UploadedFiles    []string  `json:"uploaded_files"`
	ContactName      string    `json:"contact_name"`
	ContactEmail     string    `json:"contact_email"`
	ContactPhone     string    `json:"contact_phone"`
	PreferredContact string    `json:"preferred_contact"`
	ListingTime      Timestamp `json:"listing_time"`
}

// ListingForm is the raw listing input gathered by a collaborator.
type ListingForm struct {
	MaterialTitle    string  `json:"material_title"`
	Category         string  `json:"category"`
	Quantity         int     `json:"quantity"`
	Unit             string  `json:"unit"`
	PricePerUnit     float64 `json:"price_per_unit"`
	Location         string  `json:"location"`
	Condition        string  `json:"condition"`
	Description      string  `json:"description"`
	ContactName      string  `json:"contact_name"`
	ContactEmail     string  `json:"contact_email"`
	ContactPhone     string  `json:"contact_phone"`
	PreferredContact string  `json:"preferred_contact"`
	AcceptedTerms    bool    `json:"accepted_terms"`
}
