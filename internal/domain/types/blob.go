package types

// Blob is an uploaded file prior to being written to upload storage.
type Blob struct {
	Name string
	Data []byte
}
