package domain

import (
	"math/big"
	"time"
)

// ChainListing is the raw unsold-listing record as the marketplace contract
// returns it. No metadata has been resolved yet and the price is still in
// wei — exactly what came over the wire.
type ChainListing struct {
	ItemID   uint64 // marketplace-internal item id
	TokenID  uint64
	Seller   string // hex address
	Owner    string // hex address; zero address while listed
	PriceWei *big.Int
	Sold     bool
}

// ListingItem is the display-ready merge of a ChainListing with its resolved
// off-chain metadata. A ListingItem only ever exists for listings whose mint
// and listing transactions both confirmed — the contract does not return
// anything else from its unsold query.
type ListingItem struct {
	TokenID  uint64
	Seller   string
	Owner    string
	PriceWei *big.Int
	Price    string // decimal display form, derived from PriceWei at merge time
	Metadata AssetMetadata
}

// MarketSnapshot is the set of unsold listings at a single read instant, in
// the order the contract returned them. It is never updated in place; stale
// snapshots stay stale until the caller loads a new one.
type MarketSnapshot struct {
	Items   []ListingItem
	TakenAt time.Time
}
