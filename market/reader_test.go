package market_test

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JTStephens18/NFTMarketplace/adapters/mock"
	"github.com/JTStephens18/NFTMarketplace/market"
)

// seedListings mints and lists n assets named "Asset 1".."Asset n", priced
// "0.5" each, and returns the wired fixture plus a reader.
func seedListings(t *testing.T, n int) (*mintFixture, *market.MarketplaceReader) {
	t.Helper()
	f := newMintFixture()
	ctx := context.Background()
	for i := 1; i <= n; i++ {
		_, err := f.minter.CreateAsset(ctx, market.CreateAssetRequest{
			Raw:          bytes.Repeat([]byte{byte(i)}, 64),
			Name:         fmt.Sprintf("Asset %d", i),
			Description:  "seeded",
			PriceDecimal: "0.5",
		})
		require.NoError(t, err)
	}
	return f, market.NewMarketplaceReader(f.chain, f.store)
}

func TestLoadSnapshot_MergesChainAndMetadata(t *testing.T) {
	_, reader := seedListings(t, 2)

	snapshot, err := reader.LoadSnapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, snapshot.Items, 2)
	assert.False(t, snapshot.TakenAt.IsZero())

	for i, item := range snapshot.Items {
		assert.Equal(t, uint64(i+1), item.TokenID, "contract order preserved")
		assert.Equal(t, fmt.Sprintf("Asset %d", i+1), item.Metadata.Name)
		assert.Equal(t, "0.5", item.Price)
		assert.Equal(t, "500000000000000000", item.PriceWei.String())
		assert.Equal(t, mock.DefaultMockAddress, item.Seller)
		assert.Equal(t, market.ZeroAddress, item.Owner, "unsold items have no owner")
	}
}

func TestLoadSnapshot_EmptyMarket(t *testing.T) {
	f := newMintFixture()
	reader := market.NewMarketplaceReader(f.chain, f.store)

	snapshot, err := reader.LoadSnapshot(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snapshot.Items)
}

func TestLoadSnapshot_ExcludesOnlyFailedItem(t *testing.T) {
	f, reader := seedListings(t, 3)
	ctx := context.Background()

	// Break exactly the middle listing's metadata document.
	uri, err := f.chain.TokenURI(ctx, 2)
	require.NoError(t, err)
	f.store.FailFetch(uri, true)

	snapshot, err := reader.LoadSnapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snapshot.Items, 2)
	assert.Equal(t, uint64(1), snapshot.Items[0].TokenID)
	assert.Equal(t, uint64(3), snapshot.Items[1].TokenID)

	// Repairing the document brings the listing back on the next read.
	f.store.FailFetch(uri, false)
	snapshot, err = reader.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snapshot.Items, 3)
}

func TestLoadSnapshot_ContractQueryFailureAborts(t *testing.T) {
	f, reader := seedListings(t, 1)
	f.chain.FailRead(true)

	_, err := reader.LoadSnapshot(context.Background())
	assert.ErrorIs(t, err, market.ErrReadFailed)
}

func TestLoadSnapshot_ManyListings(t *testing.T) {
	// More listings than the fan-out limit, exercising the bounded group.
	_, reader := seedListings(t, 20)

	snapshot, err := reader.LoadSnapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, snapshot.Items, 20)
	for i, item := range snapshot.Items {
		assert.Equal(t, uint64(i+1), item.TokenID)
	}
}
