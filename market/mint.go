package market

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/big"

	"github.com/JTStephens18/NFTMarketplace/domain"
)

// ZeroAddress is the owner recorded for a listing that has not sold yet.
const ZeroAddress = "0x0000000000000000000000000000000000000000"

// CreateAssetRequest is the user input for the full create flow.
type CreateAssetRequest struct {
	Raw          []byte
	Name         string
	Description  string
	PriceDecimal string // human decimal unit, e.g. "1.5"
}

// CreateAssetOption customizes a single CreateAsset call.
type CreateAssetOption func(*createAssetOptions)

type createAssetOptions struct {
	progress chan<- int64
}

// WithProgress subscribes a channel to cumulative byte counts while the raw
// asset uploads. Sends are best-effort and the channel is never closed by
// the library; progress is decoupled from the upload's success or failure.
func WithProgress(ch chan<- int64) CreateAssetOption {
	return func(o *createAssetOptions) { o.progress = ch }
}

// AssetMintOrchestrator runs the strictly ordered create pipeline:
// upload asset → upload metadata → connect wallet → mint → create listing.
// Each step blocks on the previous one; a failure aborts the pipeline and
// nothing already done externally is rolled back.
type AssetMintOrchestrator struct {
	store   ContentStore
	session *WalletSession
	reader  ChainReader
	writer  ChainWriter
}

func NewAssetMintOrchestrator(store ContentStore, session *WalletSession, reader ChainReader, writer ChainWriter) *AssetMintOrchestrator {
	return &AssetMintOrchestrator{
		store:   store,
		session: session,
		reader:  reader,
		writer:  writer,
	}
}

// mintFlow is the per-call flow state. One value, owned exclusively by the
// running call, threaded through the steps; nothing is shared or global.
type mintFlow struct {
	req         CreateAssetRequest
	priceWei    *big.Int
	imageURI    string
	metadataURI string
	signer      Signer
	receipt     *domain.MintReceipt
}

// CreateAsset executes the full pipeline and returns the resulting listing.
//
// Failure modes, in step order: ErrIncompleteInput (nothing happened),
// ErrUploadFailed (uploads may be orphaned in the store), ErrWalletConnect
// (uploads orphaned, zero writes), ErrMintFailed (zero listings),
// ErrListingFailed (token minted but unlisted — a terminal orphan this
// module cannot re-list).
func (o *AssetMintOrchestrator) CreateAsset(ctx context.Context, req CreateAssetRequest, opts ...CreateAssetOption) (*domain.ListingItem, error) {
	var options createAssetOptions
	for _, opt := range opts {
		opt(&options)
	}

	// Step 1: validate locally, before any network call. An unparseable
	// price is caught here too — not after two uploads.
	flow := mintFlow{req: req}
	if len(req.Raw) == 0 || req.Name == "" || req.Description == "" || req.PriceDecimal == "" {
		return nil, fmt.Errorf("%w: raw bytes, name, description and price are all required", ErrIncompleteInput)
	}
	priceWei, err := ParsePriceWei(req.PriceDecimal)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIncompleteInput, err)
	}
	flow.priceWei = priceWei

	slog.Info("[Mint] creating asset", "name", req.Name, "size", len(req.Raw), "price", req.PriceDecimal)

	// Step 2: upload the raw asset.
	var upload io.Reader = bytes.NewReader(req.Raw)
	if options.progress != nil {
		upload = &progressReader{r: upload, event: options.progress}
	}
	flow.imageURI, err = o.store.Upload(ctx, upload)
	if err != nil {
		return nil, fmt.Errorf("%w: asset upload: %w", ErrUploadFailed, err)
	}
	slog.Info("[Mint] asset uploaded", "uri", flow.imageURI)

	// Step 3: build and upload the metadata document. Step 2's object is
	// not rolled back on failure — an accepted orphan in the store.
	meta := domain.AssetMetadata{
		Name:        req.Name,
		Description: req.Description,
		Image:       flow.imageURI,
	}
	flow.metadataURI, err = o.store.UploadJSON(ctx, meta)
	if err != nil {
		return nil, fmt.Errorf("%w: metadata upload: %w", ErrUploadFailed, err)
	}
	slog.Info("[Mint] metadata uploaded", "uri", flow.metadataURI)

	// Step 4: obtain the signer. Uploads are sunk cost; nothing has been
	// written on chain yet.
	flow.signer, err = o.session.Connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWalletConnect, err)
	}

	// Step 5: mint. A failure here leaves nothing on chain; a success
	// makes the token id durable before we move on.
	flow.receipt, err = o.writer.Mint(ctx, flow.signer, flow.metadataURI)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMintFailed, err)
	}
	slog.Info("[Mint] token minted", "token_id", flow.receipt.TokenID, "tx", flow.receipt.TxID)

	// Step 6: query the listing fee and create the listing. A failure
	// here is the terminal orphan condition: the token is minted but
	// unlisted and this module has no re-listing path. The token id is
	// carried in the error so the caller at least knows what exists.
	fee, err := o.reader.ListingFee(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: listing fee query for token %d: %w", ErrListingFailed, flow.receipt.TokenID, err)
	}
	listTx, err := o.writer.CreateListing(ctx, flow.signer, flow.receipt.TokenID, flow.priceWei, fee)
	if err != nil {
		return nil, fmt.Errorf("%w: token %d minted but not listed: %w", ErrListingFailed, flow.receipt.TokenID, err)
	}
	slog.Info("[Mint] listing created", "token_id", flow.receipt.TokenID, "tx", listTx.TxID, "fee_wei", fee)

	return &domain.ListingItem{
		TokenID:  flow.receipt.TokenID,
		Seller:   flow.signer.Address(),
		Owner:    ZeroAddress,
		PriceWei: flow.priceWei,
		Price:    FormatPriceWei(flow.priceWei),
		Metadata: meta,
	}, nil
}
