package mock

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"sync"

	"github.com/JTStephens18/NFTMarketplace/domain"
	"github.com/JTStephens18/NFTMarketplace/market"
)

const zeroAddress = "0x0000000000000000000000000000000000000000"

// mockListing is the chain-side listing record, mirroring the marketplace
// contract's storage.
type mockListing struct {
	itemID  uint64
	tokenID uint64
	seller  string
	owner   string
	price   *big.Int
	sold    bool
}

// MockChain implements market.ChainReader and market.ChainWriter as one
// in-memory contract pair. Writes behave like confirmed transactions: state
// mutates before the call returns, exactly the durability the real adapter
// guarantees by waiting for mining. Failure flags simulate rejected
// signatures and reverts; a write-call counter lets tests assert that
// aborted pipelines stopped before touching the chain.
type MockChain struct {
	mu         sync.Mutex
	listingFee *big.Int
	nextToken  uint64
	nextItem   uint64
	tokenURIs  map[uint64]string
	listings   []*mockListing

	failMint     bool
	failListing  bool
	failPurchase bool
	failRead     bool
	writeCalls   int
	txSeq        int
}

func NewMockChain() *MockChain {
	return &MockChain{
		listingFee: big.NewInt(0),
		tokenURIs:  make(map[uint64]string),
	}
}

func (m *MockChain) txID(kind string) string {
	m.txSeq++
	return fmt.Sprintf("0xmock_%s_%04d", kind, m.txSeq)
}

// FetchUnsoldListings returns the unsold listings in creation order.
func (m *MockChain) FetchUnsoldListings(ctx context.Context) ([]domain.ChainListing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failRead {
		return nil, fmt.Errorf("simulated rpc failure")
	}

	var out []domain.ChainListing
	for _, l := range m.listings {
		if l.sold {
			continue
		}
		out = append(out, domain.ChainListing{
			ItemID:   l.itemID,
			TokenID:  l.tokenID,
			Seller:   l.seller,
			Owner:    l.owner,
			PriceWei: new(big.Int).Set(l.price),
			Sold:     l.sold,
		})
	}
	return out, nil
}

// TokenURI returns a minted token's metadata pointer.
func (m *MockChain) TokenURI(ctx context.Context, tokenID uint64) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	uri, ok := m.tokenURIs[tokenID]
	if !ok {
		return "", fmt.Errorf("tokenURI query for nonexistent token %d", tokenID)
	}
	return uri, nil
}

// ListingFee returns the marketplace's listing fee.
func (m *MockChain) ListingFee(ctx context.Context) (*big.Int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return new(big.Int).Set(m.listingFee), nil
}

// Mint assigns the next sequential token id, starting at 1 like a fresh
// ERC-721 deployment.
func (m *MockChain) Mint(ctx context.Context, signer market.Signer, metadataURI string) (*domain.MintReceipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeCalls++

	if m.failMint {
		return nil, fmt.Errorf("simulated mint revert")
	}

	m.nextToken++
	m.tokenURIs[m.nextToken] = metadataURI

	slog.Info("⛓️  [MockChain] token minted", "token_id", m.nextToken, "minter", signer.Address())
	return &domain.MintReceipt{
		TxID:    m.txID("mint"),
		TokenID: m.nextToken,
		Status:  domain.TxStatusConfirmed,
	}, nil
}

// CreateListing records a new unsold listing, enforcing the contract's
// listing-fee payment.
func (m *MockChain) CreateListing(ctx context.Context, signer market.Signer, tokenID uint64, priceWei, feeWei *big.Int) (*domain.TxReceipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeCalls++

	if m.failListing {
		return nil, fmt.Errorf("simulated listing revert")
	}
	if _, ok := m.tokenURIs[tokenID]; !ok {
		return nil, fmt.Errorf("token %d not minted", tokenID)
	}
	if feeWei == nil || feeWei.Cmp(m.listingFee) != 0 {
		return nil, fmt.Errorf("listing fee mismatch: want %s got %s", m.listingFee, feeWei)
	}

	m.nextItem++
	m.listings = append(m.listings, &mockListing{
		itemID:  m.nextItem,
		tokenID: tokenID,
		seller:  signer.Address(),
		owner:   zeroAddress,
		price:   new(big.Int).Set(priceWei),
	})

	slog.Info("⛓️  [MockChain] listing created", "token_id", tokenID, "price_wei", priceWei)
	return &domain.TxReceipt{TxID: m.txID("list"), Status: domain.TxStatusConfirmed}, nil
}

// Purchase consumes an unsold listing, transferring ownership to the buyer.
func (m *MockChain) Purchase(ctx context.Context, signer market.Signer, tokenID uint64, priceWei *big.Int) (*domain.TxReceipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeCalls++

	if m.failPurchase {
		return nil, fmt.Errorf("simulated purchase revert")
	}

	for _, l := range m.listings {
		if l.tokenID != tokenID || l.sold {
			continue
		}
		if priceWei == nil || priceWei.Cmp(l.price) != 0 {
			return nil, fmt.Errorf("payment mismatch: asking %s got %s", l.price, priceWei)
		}
		l.sold = true
		l.owner = signer.Address()

		slog.Info("⛓️  [MockChain] listing sold", "token_id", tokenID, "buyer", signer.Address())
		return &domain.TxReceipt{TxID: m.txID("sale"), Status: domain.TxStatusConfirmed}, nil
	}
	return nil, fmt.Errorf("no unsold listing for token %d", tokenID)
}

// SetListingFee changes the fee the marketplace demands.
func (m *MockChain) SetListingFee(fee *big.Int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listingFee = new(big.Int).Set(fee)
}

// FailMint arms or clears a simulated mint revert.
func (m *MockChain) FailMint(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failMint = fail
}

// FailListing arms or clears a simulated listing revert. With FailListing
// armed a mint still succeeds — producing the minted-but-unlisted orphan.
func (m *MockChain) FailListing(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failListing = fail
}

// FailPurchase arms or clears a simulated purchase revert.
func (m *MockChain) FailPurchase(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failPurchase = fail
}

// FailRead arms or clears a simulated failure of the unsold-listings query.
func (m *MockChain) FailRead(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failRead = fail
}

// WriteCalls returns how many write entry points were invoked, successful
// or not.
func (m *MockChain) WriteCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writeCalls
}

// TokenExists reports whether a token id was ever minted, listed or not.
func (m *MockChain) TokenExists(tokenID uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.tokenURIs[tokenID]
	return ok
}
