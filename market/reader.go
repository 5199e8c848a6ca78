package market

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/JTStephens18/NFTMarketplace/domain"
)

// metadataFetchLimit bounds the reader's fan-out so a large market does not
// open one gateway request per listing all at once.
const metadataFetchLimit = 8

// MarketplaceReader produces display-ready snapshots of the unsold listings.
// The contract query is a single call; metadata resolution fans out per item
// and tolerates individual failures.
type MarketplaceReader struct {
	chain ChainReader
	store ContentStore
}

func NewMarketplaceReader(chain ChainReader, store ContentStore) *MarketplaceReader {
	return &MarketplaceReader{chain: chain, store: store}
}

// LoadSnapshot reads the unsold listings, resolves each token's metadata and
// merges chain fields with the fetched documents. Items whose metadata
// cannot be resolved are excluded and logged; order otherwise follows the
// contract's. A failure of the listing query itself aborts with ErrReadFailed.
//
// The snapshot is valid only at the instant it was taken — nothing
// subscribes to chain updates, the caller refreshes explicitly.
func (r *MarketplaceReader) LoadSnapshot(ctx context.Context) (*domain.MarketSnapshot, error) {
	listings, err := r.chain.FetchUnsoldListings(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadFailed, err)
	}

	// Resolve metadata per listing, index-addressed to preserve contract
	// order. A nil slot afterwards means that item failed and is dropped.
	resolved := make([]*domain.ListingItem, len(listings))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(metadataFetchLimit)
	for i, listing := range listings {
		i, listing := i, listing
		g.Go(func() error {
			item, err := r.resolve(gctx, listing)
			if err != nil {
				slog.Warn("[Market] listing excluded from snapshot",
					"token_id", listing.TokenID, "err", err)
				return nil
			}
			resolved[i] = item
			return nil
		})
	}
	// Per-item errors never propagate; Wait only fails on context death.
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadFailed, err)
	}

	items := make([]domain.ListingItem, 0, len(listings))
	for _, item := range resolved {
		if item != nil {
			items = append(items, *item)
		}
	}

	slog.Info("[Market] snapshot loaded", "listings", len(listings), "resolved", len(items))
	return &domain.MarketSnapshot{Items: items, TakenAt: time.Now()}, nil
}

// resolve turns one raw chain record into a display-ready item: token URI
// lookup, metadata document fetch, decode, merge. The price leaves its
// integer form here and nowhere else.
func (r *MarketplaceReader) resolve(ctx context.Context, listing domain.ChainListing) (*domain.ListingItem, error) {
	uri, err := r.chain.TokenURI(ctx, listing.TokenID)
	if err != nil {
		return nil, fmt.Errorf("tokenURI: %w", err)
	}

	doc, err := r.store.Fetch(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("metadata fetch %s: %w", uri, err)
	}

	var meta domain.AssetMetadata
	if err := json.Unmarshal(doc, &meta); err != nil {
		return nil, fmt.Errorf("metadata decode %s: %w", uri, err)
	}

	return &domain.ListingItem{
		TokenID:  listing.TokenID,
		Seller:   listing.Seller,
		Owner:    listing.Owner,
		PriceWei: listing.PriceWei,
		Price:    FormatPriceWei(listing.PriceWei),
		Metadata: meta,
	}, nil
}
