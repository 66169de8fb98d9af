// Package listing validates, builds and publishes material listings.
//
// A listing is validated before anything is written: a rejected form leaves
// both the listing snapshot and the upload storage untouched. Accepted
// listings are stamped with the current time, get their images stored via the
// domain.UploadStore, and are appended to the domain.ListingStore.
package listing
