package mock

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/JTStephens18/NFTMarketplace/market"
)

const mockGateway = "https://gateway.mock/ipfs/"

// MockContentStore implements market.ContentStore for testing and demos.
// Objects live in an in-memory map keyed by a sequentially assigned path —
// deliberately not content-derived, so nothing can get away with assuming
// the store hands out deterministic addresses.
type MockContentStore struct {
	mu      sync.Mutex
	objects map[string][]byte // path -> bytes
	seq     int

	offline     bool
	failFetch   map[string]bool // path -> fail next fetch
	uploadSeen  int
	uploadsLeft int // uploads allowed before failing; -1 disables
}

func NewMockContentStore() *MockContentStore {
	return &MockContentStore{
		objects:     make(map[string][]byte),
		failFetch:   make(map[string]bool),
		uploadsLeft: -1,
	}
}

// Upload stores the reader's bytes under a fresh path.
func (m *MockContentStore) Upload(ctx context.Context, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("%w: %w", market.ErrStorageUnavailable, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploadSeen++
	if m.offline {
		return "", fmt.Errorf("%w: store offline", market.ErrStorageUnavailable)
	}
	if m.uploadsLeft == 0 {
		return "", fmt.Errorf("%w: simulated upload failure", market.ErrStorageUnavailable)
	}
	if m.uploadsLeft > 0 {
		m.uploadsLeft--
	}

	m.seq++
	path := fmt.Sprintf("QmMock%06d", m.seq)
	m.objects[path] = data

	slog.Info("🗄️  [MockStore] object stored", "path", path, "size", len(data))
	return mockGateway + path, nil
}

// UploadJSON serializes v and stores the document.
func (m *MockContentStore) UploadJSON(ctx context.Context, v any) (string, error) {
	doc, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}
	return m.Upload(ctx, strings.NewReader(string(doc)))
}

// Fetch returns a stored object's bytes.
func (m *MockContentStore) Fetch(ctx context.Context, uri string) ([]byte, error) {
	path := strings.TrimPrefix(uri, mockGateway)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.offline {
		return nil, fmt.Errorf("%w: store offline", market.ErrStorageUnavailable)
	}
	if m.failFetch[path] {
		return nil, fmt.Errorf("%w: simulated fetch failure for %s", market.ErrStorageUnavailable, path)
	}

	data, ok := m.objects[path]
	if !ok {
		return nil, fmt.Errorf("%w: no object at %s", market.ErrStorageUnavailable, path)
	}
	return data, nil
}

// FailUploadsAfter allows n more uploads to succeed and fails the rest.
// Used to let the raw-asset upload through and kill the metadata upload.
func (m *MockContentStore) FailUploadsAfter(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploadsLeft = n
}

// SetOffline makes every subsequent upload and fetch fail.
func (m *MockContentStore) SetOffline(offline bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.offline = offline
}

// FailFetch makes fetches of the given URI fail until cleared. Used to
// simulate one listing's metadata document being unreachable.
func (m *MockContentStore) FailFetch(uri string, fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failFetch[strings.TrimPrefix(uri, mockGateway)] = fail
}

// Count returns how many objects the store holds.
func (m *MockContentStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

// UploadAttempts returns how many uploads were attempted, successful or not.
func (m *MockContentStore) UploadAttempts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.uploadSeen
}
