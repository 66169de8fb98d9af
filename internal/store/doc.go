// Package store provides file-based persistence for the marketplace core.
//
// Each store owns exactly one snapshot file and serialises it as JSON on disk,
// replacing the whole file on every save. Methods are concurrency-safe within a
// process via internal locking; separate processes writing the same snapshot
// still race with last-write-wins.
//
// The package includes:
//   - Credentials (CredentialFileStore): a JSON object of email to password.
//   - Listings (ListingFileStore): a JSON array of listings in insertion order.
//   - Uploads (UploadDirStore): a flat directory of image files.
package store
