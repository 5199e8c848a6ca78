package market

import (
	"context"
	"io"
)

// ContentStore is the port for the content-addressed store. Implementations
// include the Kubo HTTP API client (clients/ipfs) and the in-memory mock.
//
// Uploads are not idempotent: the backing store may hand out a fresh address
// per call, so the returned URI is authoritative and must never be derived
// locally. Transport failures are classified under ErrStorageUnavailable.
// The store never retries — the caller decides.
type ContentStore interface {
	// Upload stores raw bytes and returns a dereferenceable URI.
	Upload(ctx context.Context, r io.Reader) (string, error)

	// UploadJSON serializes v and stores the document.
	UploadJSON(ctx context.Context, v any) (string, error)

	// Fetch dereferences a URI previously returned by an upload (or read
	// from a token's metadata pointer) and returns the document bytes.
	Fetch(ctx context.Context, uri string) ([]byte, error)
}

// progressReader counts bytes as they are consumed by an upload and reports
// the cumulative total on a caller-supplied channel. Sends are best-effort:
// a slow subscriber drops updates rather than stalling the upload.
type progressReader struct {
	r     io.Reader
	sent  int64
	event chan<- int64
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.sent += int64(n)
		select {
		case p.event <- p.sent:
		default:
		}
	}
	return n, err
}
