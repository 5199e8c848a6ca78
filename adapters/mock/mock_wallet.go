package mock

import (
	"context"
	"log/slog"
	"sync"

	"github.com/JTStephens18/NFTMarketplace/market"
)

// DefaultMockAddress is the address every mockSigner reports.
const DefaultMockAddress = "0x8626f6940E2eb28930eFb4CeF49B2d1F2C9C1199"

type mockSigner struct {
	addr string
}

func (s *mockSigner) Address() string { return s.addr }

// MockWalletProvider implements market.WalletProvider with controllable
// outcomes: a normal connection, a user clicking "reject" on the prompt, or
// no wallet being installed at all.
type MockWalletProvider struct {
	mu         sync.Mutex
	reject     bool
	noProvider bool
	addr       string
	connects   int
}

func NewMockWalletProvider() *MockWalletProvider {
	return &MockWalletProvider{addr: DefaultMockAddress}
}

// Connect hands out a signer unless a failure mode is armed.
func (m *MockWalletProvider) Connect(ctx context.Context) (market.Signer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connects++

	switch {
	case m.noProvider:
		slog.Info("👛 [MockWallet] no provider installed")
		return nil, market.ErrNoProvider
	case m.reject:
		slog.Info("👛 [MockWallet] user rejected the connection prompt")
		return nil, market.ErrUserRejected
	}

	slog.Info("👛 [MockWallet] connected", "address", m.addr)
	return &mockSigner{addr: m.addr}, nil
}

// SetReject simulates the user dismissing the signing prompt.
func (m *MockWalletProvider) SetReject(reject bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reject = reject
}

// SetNoProvider simulates a missing wallet extension.
func (m *MockWalletProvider) SetNoProvider(missing bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.noProvider = missing
}

// SetAddress changes the address of subsequently issued signers, so tests
// can act as a second user.
func (m *MockWalletProvider) SetAddress(addr string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addr = addr
}

// Connects returns how many connection attempts were made.
func (m *MockWalletProvider) Connects() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connects
}
