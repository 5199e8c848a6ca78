package market

import (
	"context"
	"sync"
)

// Signer is a credential-bearing handle able to authorize chain writes on
// behalf of a user address. It is opaque to the orchestrators; the chain
// adapter that issued it knows how to use it. Once obtained it is read-only,
// so it may be shared across flows without locking.
type Signer interface {
	Address() string
}

// WalletProvider obtains a signing identity from the user's wallet. It is
// injected rather than reached for globally so tests can substitute a fake.
// Connect fails with ErrUserRejected or ErrNoProvider.
type WalletProvider interface {
	Connect(ctx context.Context) (Signer, error)
}

// WalletSession caches the first successfully connected Signer and reuses it
// for every write in the session. A failed connection is never silently
// retried; the user re-initiates. Concurrent callers never trigger two
// outstanding provider prompts — the second waits on the first.
type WalletSession struct {
	provider WalletProvider

	mu     sync.Mutex
	signer Signer
}

func NewWalletSession(provider WalletProvider) *WalletSession {
	return &WalletSession{provider: provider}
}

// Connect returns the cached Signer, connecting through the provider on
// first use.
func (s *WalletSession) Connect(ctx context.Context) (Signer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.signer != nil {
		return s.signer, nil
	}

	signer, err := s.provider.Connect(ctx)
	if err != nil {
		return nil, err
	}
	s.signer = signer
	return signer, nil
}

// Reset drops the cached Signer. The next Connect goes back to the provider.
// This is only called on explicit user action (e.g. switching accounts).
func (s *WalletSession) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.signer = nil
}
