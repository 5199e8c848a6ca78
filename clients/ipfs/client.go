// Package ipfs implements the market.ContentStore port against a Kubo node's
// HTTP API, with reads and writes addressed through a configurable gateway.
package ipfs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ipfs/boxo/files"
	shell "github.com/ipfs/go-ipfs-api"

	"github.com/JTStephens18/NFTMarketplace/market"
)

// Config holds connection configuration.
type Config struct {
	// APIAddr is the Kubo HTTP API endpoint, e.g. "localhost:5001" or a
	// multiaddr.
	APIAddr string
	// Gateway is the public gateway base used to build dereferenceable
	// URIs, e.g. "https://ipfs.io". No trailing slash.
	Gateway string
}

// Client implements market.ContentStore.
type Client struct {
	sh      *shell.Shell
	gateway string
}

// New creates a content-store client. It does not probe the node; the first
// upload or fetch surfaces connectivity problems.
func New(cfg Config) *Client {
	return &Client{
		sh:      shell.NewShell(cfg.APIAddr),
		gateway: strings.TrimRight(cfg.Gateway, "/"),
	}
}

// NewWithClient creates a content-store client with a caller-supplied HTTP
// client (custom timeouts, transports).
func NewWithClient(cfg Config, hc *http.Client) *Client {
	return &Client{
		sh:      shell.NewShellWithClient(cfg.APIAddr, hc),
		gateway: strings.TrimRight(cfg.Gateway, "/"),
	}
}

// URI maps a content path to its gateway form: {gateway}/ipfs/{path}.
func (c *Client) URI(path string) string {
	return c.gateway + "/ipfs/" + path
}

// Upload adds the reader's bytes to the store, pinned, and returns the
// gateway URI of the new object. The returned URI is authoritative: the
// store assigns the address and nothing here tries to derive it locally.
func (c *Client) Upload(ctx context.Context, r io.Reader) (string, error) {
	fr := files.NewReaderFile(r)
	dir := files.NewSliceDirectory([]files.DirEntry{files.FileEntry("", fr)})
	body := files.NewMultiFileReader(dir, true, false)

	var out struct {
		Hash string
	}
	err := c.sh.Request("add").
		Option("pin", "true").
		Body(body).
		Exec(ctx, &out)
	if err != nil {
		return "", fmt.Errorf("%w: add: %w", market.ErrStorageUnavailable, err)
	}
	return c.URI(out.Hash), nil
}

// UploadJSON serializes v and uploads the document.
func (c *Client) UploadJSON(ctx context.Context, v any) (string, error) {
	doc, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}
	return c.Upload(ctx, bytes.NewReader(doc))
}

// Fetch dereferences a URI and returns the document bytes. Gateway URIs,
// ipfs:// URIs and bare content paths are all accepted; the read goes
// through the node's API rather than the public gateway.
func (c *Client) Fetch(ctx context.Context, uri string) ([]byte, error) {
	path, err := contentPath(uri)
	if err != nil {
		return nil, err
	}

	resp, err := c.sh.Request("cat", path).Send(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: cat %s: %w", market.ErrStorageUnavailable, path, err)
	}
	defer resp.Close()
	if resp.Error != nil {
		return nil, fmt.Errorf("%w: cat %s: %w", market.ErrStorageUnavailable, path, resp.Error)
	}

	doc, err := io.ReadAll(resp.Output)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", market.ErrStorageUnavailable, path, err)
	}
	return doc, nil
}

// contentPath strips the addressing scheme from a URI, leaving the bare
// content path the API accepts.
func contentPath(uri string) (string, error) {
	switch {
	case strings.Contains(uri, "/ipfs/"):
		_, path, _ := strings.Cut(uri, "/ipfs/")
		if path == "" {
			return "", fmt.Errorf("empty content path in %q", uri)
		}
		return path, nil
	case strings.HasPrefix(uri, "ipfs://"):
		return strings.TrimPrefix(uri, "ipfs://"), nil
	case uri == "":
		return "", fmt.Errorf("empty content URI")
	default:
		// Bare path, e.g. "Qm..." or "bafy...".
		return uri, nil
	}
}
