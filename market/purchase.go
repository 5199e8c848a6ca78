package market

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JTStephens18/NFTMarketplace/domain"
)

// PurchaseOrchestrator executes purchases against specific listings. It
// shares the WalletSession with the mint flow — one signing identity per
// user visit — and refreshes the market snapshot once a sale confirms.
type PurchaseOrchestrator struct {
	session *WalletSession
	writer  ChainWriter
	reader  *MarketplaceReader
}

func NewPurchaseOrchestrator(session *WalletSession, writer ChainWriter, reader *MarketplaceReader) *PurchaseOrchestrator {
	return &PurchaseOrchestrator{
		session: session,
		writer:  writer,
		reader:  reader,
	}
}

// Purchase buys the given listing, attaching its PriceWei as payment. The
// price is already in wei — unlike the mint path there is no decimal to
// re-derive. On confirmation a fresh snapshot is loaded and returned inside
// the Confirmation, with the consumed listing gone.
//
// Any failure — wallet rejection, contract revert because the listing sold
// first — aborts with ErrPurchaseFailed and leaves the caller's prior
// snapshot stale until they refresh.
func (o *PurchaseOrchestrator) Purchase(ctx context.Context, listing domain.ListingItem) (*domain.Confirmation, error) {
	signer, err := o.session.Connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPurchaseFailed, err)
	}

	slog.Info("[Purchase] buying listing", "token_id", listing.TokenID, "price_wei", listing.PriceWei, "buyer", signer.Address())

	receipt, err := o.writer.Purchase(ctx, signer, listing.TokenID, listing.PriceWei)
	if err != nil {
		return nil, fmt.Errorf("%w: token %d: %w", ErrPurchaseFailed, listing.TokenID, err)
	}
	slog.Info("[Purchase] sale confirmed", "token_id", listing.TokenID, "tx", receipt.TxID)

	// The sale is durable; refresh so the caller sees the listing gone.
	// A refresh failure does not un-buy anything, so it is reported as a
	// read failure, not a purchase failure.
	snapshot, err := o.reader.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.Confirmation{TxID: receipt.TxID, Snapshot: snapshot}, nil
}
