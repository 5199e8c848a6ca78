package market

import (
	"context"
	"math/big"

	"github.com/JTStephens18/NFTMarketplace/domain"
)

// ChainReader is the read-only port onto the contract pair. No signer is
// required; implementations connect with a plain JSON-RPC provider.
type ChainReader interface {
	// FetchUnsoldListings returns every currently unsold listing, in
	// contract order. A single call — there is no partial failure mode.
	FetchUnsoldListings(ctx context.Context) ([]domain.ChainListing, error)

	// TokenURI resolves a token's metadata pointer via the asset contract.
	TokenURI(ctx context.Context, tokenID uint64) (string, error)

	// ListingFee returns the marketplace's fixed fee for creating a
	// listing, in wei. Independent of the asset's sale price.
	ListingFee(ctx context.Context) (*big.Int, error)
}

// ChainWriter is the write port onto the contract pair. Every method blocks
// until the transaction confirms or fails: a receipt is only ever returned
// for a confirmed transaction, so dependent state (token id, listing
// visibility) is durable the moment a call returns nil error.
type ChainWriter interface {
	// Mint creates a token carrying metadataURI as its tokenURI and
	// returns the assigned token id, extracted from the transfer event
	// inside the adapter.
	Mint(ctx context.Context, signer Signer, metadataURI string) (*domain.MintReceipt, error)

	// CreateListing lists a minted token for priceWei, attaching feeWei
	// as the marketplace's listing fee payment.
	CreateListing(ctx context.Context, signer Signer, tokenID uint64, priceWei, feeWei *big.Int) (*domain.TxReceipt, error)

	// Purchase buys a listed token, attaching priceWei as payment.
	Purchase(ctx context.Context, signer Signer, tokenID uint64, priceWei *big.Int) (*domain.TxReceipt, error)
}
