package market_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JTStephens18/NFTMarketplace/adapters/mock"
	"github.com/JTStephens18/NFTMarketplace/market"
)

func TestWalletSession_ReusesSigner(t *testing.T) {
	wallet := mock.NewMockWalletProvider()
	session := market.NewWalletSession(wallet)
	ctx := context.Background()

	first, err := session.Connect(ctx)
	require.NoError(t, err)
	second, err := session.Connect(ctx)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, wallet.Connects(), "provider prompted once per session")
}

func TestWalletSession_FailureIsNotCached(t *testing.T) {
	wallet := mock.NewMockWalletProvider()
	wallet.SetReject(true)
	session := market.NewWalletSession(wallet)
	ctx := context.Background()

	_, err := session.Connect(ctx)
	assert.ErrorIs(t, err, market.ErrUserRejected)

	// The rejection is not retried silently, but an explicit new attempt
	// goes back to the provider.
	wallet.SetReject(false)
	signer, err := session.Connect(ctx)
	require.NoError(t, err)
	assert.Equal(t, mock.DefaultMockAddress, signer.Address())
	assert.Equal(t, 2, wallet.Connects())
}

func TestWalletSession_Reset(t *testing.T) {
	wallet := mock.NewMockWalletProvider()
	session := market.NewWalletSession(wallet)
	ctx := context.Background()

	_, err := session.Connect(ctx)
	require.NoError(t, err)

	session.Reset()
	_, err = session.Connect(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, wallet.Connects())
}

func TestWalletSession_ConcurrentConnectsPromptOnce(t *testing.T) {
	wallet := mock.NewMockWalletProvider()
	session := market.NewWalletSession(wallet)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := session.Connect(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wallet.Connects(), "no re-entrant provider prompts")
}

func TestWalletSession_NoProvider(t *testing.T) {
	wallet := mock.NewMockWalletProvider()
	wallet.SetNoProvider(true)
	session := market.NewWalletSession(wallet)

	_, err := session.Connect(context.Background())
	assert.ErrorIs(t, err, market.ErrNoProvider)
}
