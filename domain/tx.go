package domain

type TxStatus string

const (
	TxStatusSubmitted TxStatus = "SUBMITTED"
	TxStatusConfirmed TxStatus = "CONFIRMED"
	TxStatusRejected  TxStatus = "REJECTED"
)

// MintReceipt is the structured result of a confirmed mint transaction.
// The chain adapter extracts TokenID from the transfer event log, so callers
// never touch raw event arrays.
type MintReceipt struct {
	TxID    string
	TokenID uint64
	Status  TxStatus
}

// TxReceipt is the result of any other confirmed write (listing creation,
// purchase). Only confirmed receipts are ever returned; a rejected or
// reverted transaction surfaces as an error instead.
type TxReceipt struct {
	TxID   string
	Status TxStatus
}

// Confirmation is returned by a successful purchase. Snapshot is the market
// state re-read after the sale confirmed, so the consumed listing is already
// gone from it.
type Confirmation struct {
	TxID     string
	Snapshot *MarketSnapshot
}
