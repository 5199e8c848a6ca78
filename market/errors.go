package market

import "errors"

// Failure classes for the orchestration flows. Every orchestrator error
// wraps exactly one of these sentinels together with the step that failed
// and the underlying cause, so callers can classify with errors.Is and the
// message still says which step died.
//
// Nothing here is retried automatically: each step has an externally visible,
// non-reversible side effect once it succeeds, so the only safe policy is
// fail fast, report, let the user re-initiate.
var (
	// ErrIncompleteInput means local validation failed; no network call
	// was made and no external state exists.
	ErrIncompleteInput = errors.New("incomplete input")

	// ErrStorageUnavailable classifies content-store transport failures.
	ErrStorageUnavailable = errors.New("content store unavailable")

	// ErrUploadFailed means an upload step aborted the mint pipeline.
	// Earlier uploads are not rolled back (accepted orphan cost).
	ErrUploadFailed = errors.New("upload failed")

	// ErrUserRejected means the user declined the wallet connection.
	ErrUserRejected = errors.New("user rejected wallet connection")

	// ErrNoProvider means no wallet provider is available.
	ErrNoProvider = errors.New("no wallet provider available")

	// ErrWalletConnect classifies any failure to obtain a signer.
	ErrWalletConnect = errors.New("wallet connection failed")

	// ErrMintFailed means the mint transaction was rejected or reverted.
	// No listing was attempted.
	ErrMintFailed = errors.New("mint transaction failed")

	// ErrListingFailed means the token minted but the listing transaction
	// failed, leaving a minted-but-unlisted token on chain. There is no
	// automatic recovery; the wrapped error carries the orphaned token id.
	ErrListingFailed = errors.New("listing transaction failed")

	// ErrPurchaseFailed means the purchase transaction was rejected or
	// reverted (e.g. the listing sold first). The caller's snapshot is
	// stale until explicitly refreshed.
	ErrPurchaseFailed = errors.New("purchase failed")

	// ErrReadFailed means the unsold-listings contract query itself
	// failed, aborting the whole snapshot load.
	ErrReadFailed = errors.New("market read failed")
)
