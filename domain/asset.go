package domain

// Asset is a user-created digital asset before it touches any external
// system. This is strictly the input payload — it carries no chain or
// storage identity.
type Asset struct {
	Raw         []byte // raw file bytes destined for the content store
	Name        string
	Description string
}

// AssetMetadata is the off-chain JSON document describing a minted token.
// Its storage URI becomes the token's canonical metadata pointer (tokenURI).
// Field names follow the document shape marketplace frontends read.
type AssetMetadata struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"` // content-store URI of the asset bytes
}
