package market_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JTStephens18/NFTMarketplace/adapters/mock"
	"github.com/JTStephens18/NFTMarketplace/market"
)

// mintFixture wires a full mint pipeline over fresh mocks.
type mintFixture struct {
	store   *mock.MockContentStore
	chain   *mock.MockChain
	wallet  *mock.MockWalletProvider
	session *market.WalletSession
	minter  *market.AssetMintOrchestrator
}

func newMintFixture() *mintFixture {
	f := &mintFixture{
		store:  mock.NewMockContentStore(),
		chain:  mock.NewMockChain(),
		wallet: mock.NewMockWalletProvider(),
	}
	f.session = market.NewWalletSession(f.wallet)
	f.minter = market.NewAssetMintOrchestrator(f.store, f.session, f.chain, f.chain)
	return f
}

func validRequest() market.CreateAssetRequest {
	return market.CreateAssetRequest{
		Raw:          bytes.Repeat([]byte{0x42}, 5*1024),
		Name:         "Art",
		Description:  "desc",
		PriceDecimal: "1.5",
	}
}

func TestCreateAsset_FullPipeline(t *testing.T) {
	f := newMintFixture()
	ctx := context.Background()

	listing, err := f.minter.CreateAsset(ctx, validRequest())
	require.NoError(t, err)

	assert.Equal(t, uint64(1), listing.TokenID)
	assert.Equal(t, "1500000000000000000", listing.PriceWei.String())
	assert.Equal(t, "1.5", listing.Price)
	assert.Equal(t, "Art", listing.Metadata.Name)
	assert.Equal(t, "desc", listing.Metadata.Description)
	assert.NotEmpty(t, listing.Metadata.Image)
	assert.Equal(t, mock.DefaultMockAddress, listing.Seller)
	assert.Equal(t, market.ZeroAddress, listing.Owner)

	// Both the asset bytes and the metadata document landed in the store,
	// and the chain saw exactly a mint and a listing.
	assert.Equal(t, 2, f.store.Count())
	assert.Equal(t, 2, f.chain.WriteCalls())
}

func TestCreateAsset_IncompleteInput(t *testing.T) {
	f := newMintFixture()
	ctx := context.Background()

	bad := []market.CreateAssetRequest{
		{Name: "Art", Description: "desc", PriceDecimal: "1"},                // no bytes
		{Raw: []byte{1}, Description: "desc", PriceDecimal: "1"},             // no name
		{Raw: []byte{1}, Name: "Art", PriceDecimal: "1"},                     // no description
		{Raw: []byte{1}, Name: "Art", Description: "desc"},                   // no price
		{Raw: []byte{1}, Name: "Art", Description: "d", PriceDecimal: "abc"}, // unparseable price
		{Raw: []byte{1}, Name: "Art", Description: "d", PriceDecimal: "-1"},  // negative price
	}
	for i, req := range bad {
		_, err := f.minter.CreateAsset(ctx, req)
		assert.ErrorIs(t, err, market.ErrIncompleteInput, "case %d", i)
	}

	// Validation failures make no network calls at all.
	assert.Equal(t, 0, f.store.UploadAttempts())
	assert.Equal(t, 0, f.chain.WriteCalls())
	assert.Equal(t, 0, f.wallet.Connects())
}

func TestCreateAsset_UploadFailureMakesNoWrites(t *testing.T) {
	f := newMintFixture()
	f.store.SetOffline(true)

	_, err := f.minter.CreateAsset(context.Background(), validRequest())
	assert.ErrorIs(t, err, market.ErrUploadFailed)
	assert.ErrorIs(t, err, market.ErrStorageUnavailable)
	assert.Equal(t, 0, f.chain.WriteCalls())
	assert.Equal(t, 0, f.wallet.Connects())
}

func TestCreateAsset_MetadataUploadFailureKeepsAssetOrphan(t *testing.T) {
	f := newMintFixture()
	f.store.FailUploadsAfter(1) // raw upload passes, metadata upload fails

	_, err := f.minter.CreateAsset(context.Background(), validRequest())
	assert.ErrorIs(t, err, market.ErrUploadFailed)

	// The raw-asset object is orphaned in the store, not rolled back.
	assert.Equal(t, 1, f.store.Count())
	assert.Equal(t, 0, f.chain.WriteCalls())
}

func TestCreateAsset_WalletRejectedAfterUploads(t *testing.T) {
	f := newMintFixture()
	f.wallet.SetReject(true)

	_, err := f.minter.CreateAsset(context.Background(), validRequest())
	assert.ErrorIs(t, err, market.ErrWalletConnect)
	assert.ErrorIs(t, err, market.ErrUserRejected)

	// Uploads are sunk cost: both objects remain, zero chain writes.
	assert.Equal(t, 2, f.store.Count())
	assert.Equal(t, 0, f.chain.WriteCalls())
}

func TestCreateAsset_MintFailureMakesNoListingCall(t *testing.T) {
	f := newMintFixture()
	f.chain.FailMint(true)

	_, err := f.minter.CreateAsset(context.Background(), validRequest())
	assert.ErrorIs(t, err, market.ErrMintFailed)

	// Exactly one write (the failed mint); the listing call never happened.
	assert.Equal(t, 1, f.chain.WriteCalls())
}

func TestCreateAsset_ListingFailureLeavesMintedOrphan(t *testing.T) {
	f := newMintFixture()
	f.chain.FailListing(true)
	ctx := context.Background()

	_, err := f.minter.CreateAsset(ctx, validRequest())
	assert.ErrorIs(t, err, market.ErrListingFailed)
	assert.Contains(t, err.Error(), "token 1", "the orphaned token id is surfaced")

	// The token exists on chain but no snapshot will ever show it.
	assert.True(t, f.chain.TokenExists(1))
	reader := market.NewMarketplaceReader(f.chain, f.store)
	snapshot, err := reader.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, snapshot.Items)
}

func TestCreateAsset_PaysListingFee(t *testing.T) {
	f := newMintFixture()
	fee, err := market.ParsePriceWei("0.025")
	require.NoError(t, err)
	f.chain.SetListingFee(fee)

	// The mock chain reverts on any fee mismatch, so success means the
	// queried fee was attached to the listing transaction.
	listing, err := f.minter.CreateAsset(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), listing.TokenID)
}

func TestCreateAsset_ProgressEvents(t *testing.T) {
	f := newMintFixture()
	progress := make(chan int64, 64)

	_, err := f.minter.CreateAsset(context.Background(), validRequest(), market.WithProgress(progress))
	require.NoError(t, err)

	var last int64
	for {
		select {
		case sent := <-progress:
			assert.GreaterOrEqual(t, sent, last, "progress is cumulative")
			last = sent
			continue
		default:
		}
		break
	}
	assert.Equal(t, int64(5*1024), last, "final event covers the whole upload")
}

func TestCreateAsset_SequentialTokenIDs(t *testing.T) {
	f := newMintFixture()
	ctx := context.Background()

	for want := uint64(1); want <= 3; want++ {
		listing, err := f.minter.CreateAsset(ctx, validRequest())
		require.NoError(t, err)
		assert.Equal(t, want, listing.TokenID)
	}
	// One signer served all three flows.
	assert.Equal(t, 1, f.wallet.Connects())
}
