package bucket

import "fmt"

// ErrObjectNotFound is returned when a key or a prefix has no object behind it
type ErrObjectNotFound struct {
	Bucket string
	Key    string
}

func (e ErrObjectNotFound) Error() string {
	return fmt.Sprintf("object not found: s3://%s/%s", e.Bucket, e.Key)
}

// ErrInvalidKeyPattern is returned when an id cannot be mapped to a key of the bucket family
type ErrInvalidKeyPattern struct {
	ID     string
	Reason string
}

func (e ErrInvalidKeyPattern) Error() string {
	return fmt.Sprintf("no key pattern for %s: %s", e.ID, e.Reason)
}

// ErrUploadDenied is returned when the archive refuses a write
type ErrUploadDenied struct {
	Bucket string
	Key    string
}

func (e ErrUploadDenied) Error() string {
	return fmt.Sprintf("upload denied: s3://%s/%s", e.Bucket, e.Key)
}

// ErrPartialUpload is returned when only a part of a product could be uploaded
type ErrPartialUpload struct {
	Bucket   string
	Prefix   string
	Uploaded int
	Total    int
}

func (e ErrPartialUpload) Error() string {
	return fmt.Sprintf("partial upload to s3://%s/%s: %d/%d files", e.Bucket, e.Prefix, e.Uploaded, e.Total)
}
