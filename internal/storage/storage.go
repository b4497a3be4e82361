package storage

import (
	"context"
	"errors"
	"io"
)

// Sentinel errors to help callers distinguish failure reasons.
var (
	ErrInvalidAttachment = errors.New("storage: invalid attachment")
	ErrUnsupportedType   = errors.New("storage: only PDF attachments are accepted")
)

// Attachment represents the payload sent to a storage backend when a CV
// is uploaded.
type Attachment struct {
	OriginalName string
	ContentType  string
	Size         int64
	Reader       io.Reader
}

// Storage describes the operations every attachment backend supports.
// Save returns the stored filename, which the caller records on the
// account row.
type Storage interface {
	Save(ctx context.Context, att *Attachment) (string, error)
	Remove(ctx context.Context, storedName string) error
}

// ValidateAttachment performs a light validation before delegating to a
// backend. Only the PDF MIME family is accepted.
func ValidateAttachment(att *Attachment) error {
	if att == nil || att.Reader == nil {
		return ErrInvalidAttachment
	}
	if att.OriginalName == "" {
		return ErrInvalidAttachment
	}
	if att.ContentType != "application/pdf" {
		return ErrUnsupportedType
	}
	return nil
}
