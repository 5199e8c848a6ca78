// Package eth implements the market chain ports against the pre-deployed
// asset (ERC-721) and marketplace contracts over Ethereum JSON-RPC.
package eth

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/JTStephens18/NFTMarketplace/domain"
)

// Contract surface this client needs. Hand-bound: the full artifacts carry
// the whole ERC-721 surface, but only these entry points are ever called.
const assetABI = `[
	{"name":"createToken","type":"function","stateMutability":"nonpayable","inputs":[{"name":"tokenURI","type":"string"}],"outputs":[{"name":"","type":"uint256"}]},
	{"name":"tokenURI","type":"function","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"}],"outputs":[{"name":"","type":"string"}]},
	{"name":"Transfer","type":"event","anonymous":false,"inputs":[{"name":"from","type":"address","indexed":true},{"name":"to","type":"address","indexed":true},{"name":"tokenId","type":"uint256","indexed":true}]}
]`

const marketABI = `[
	{"name":"getListingPrice","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"name":"fetchMarketItems","type":"function","stateMutability":"view","inputs":[],"outputs":[{"components":[{"name":"itemId","type":"uint256"},{"name":"nftContract","type":"address"},{"name":"tokenId","type":"uint256"},{"name":"seller","type":"address"},{"name":"owner","type":"address"},{"name":"price","type":"uint256"},{"name":"sold","type":"bool"}],"name":"","type":"tuple[]"}]},
	{"name":"createMarketItem","type":"function","stateMutability":"payable","inputs":[{"name":"nftContract","type":"address"},{"name":"tokenId","type":"uint256"},{"name":"price","type":"uint256"}],"outputs":[]},
	{"name":"createMarketSale","type":"function","stateMutability":"payable","inputs":[{"name":"nftContract","type":"address"},{"name":"tokenId","type":"uint256"}],"outputs":[]}
]`

// Config holds connection configuration.
type Config struct {
	RPCURL         string
	AssetContract  string // hex address of the ERC-721 contract
	MarketContract string // hex address of the marketplace contract
	ChainID        int64
}

// Client implements market.ChainReader and market.ChainWriter.
type Client struct {
	conn    *ethclient.Client
	chainID *big.Int

	assetAddr  common.Address
	marketAddr common.Address
	asset      *bind.BoundContract
	market     *bind.BoundContract

	transferTopic common.Hash
}

// Dial connects to the JSON-RPC endpoint and binds both contracts.
func Dial(cfg Config) (*Client, error) {
	conn, err := ethclient.Dial(cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", cfg.RPCURL, err)
	}

	assetParsed, err := abi.JSON(strings.NewReader(assetABI))
	if err != nil {
		return nil, fmt.Errorf("parse asset ABI: %w", err)
	}
	marketParsed, err := abi.JSON(strings.NewReader(marketABI))
	if err != nil {
		return nil, fmt.Errorf("parse market ABI: %w", err)
	}

	assetAddr := common.HexToAddress(cfg.AssetContract)
	marketAddr := common.HexToAddress(cfg.MarketContract)

	return &Client{
		conn:          conn,
		chainID:       big.NewInt(cfg.ChainID),
		assetAddr:     assetAddr,
		marketAddr:    marketAddr,
		asset:         bind.NewBoundContract(assetAddr, assetParsed, conn, conn, conn),
		market:        bind.NewBoundContract(marketAddr, marketParsed, conn, conn, conn),
		transferTopic: assetParsed.Events["Transfer"].ID,
	}, nil
}

// Close closes the underlying RPC connection.
func (c *Client) Close() {
	c.conn.Close()
}

// marketItem mirrors the marketplace contract's MarketItem struct for ABI
// decoding.
type marketItem struct {
	ItemId      *big.Int
	NftContract common.Address
	TokenId     *big.Int
	Seller      common.Address
	Owner       common.Address
	Price       *big.Int
	Sold        bool
}

// FetchUnsoldListings queries the marketplace for every unsold listing, in
// contract order.
func (c *Client) FetchUnsoldListings(ctx context.Context) ([]domain.ChainListing, error) {
	var out []interface{}
	if err := c.market.Call(&bind.CallOpts{Context: ctx}, &out, "fetchMarketItems"); err != nil {
		return nil, fmt.Errorf("fetchMarketItems: %w", err)
	}
	items := *abi.ConvertType(out[0], new([]marketItem)).(*[]marketItem)

	listings := make([]domain.ChainListing, 0, len(items))
	for _, item := range items {
		listings = append(listings, domain.ChainListing{
			ItemID:   item.ItemId.Uint64(),
			TokenID:  item.TokenId.Uint64(),
			Seller:   item.Seller.Hex(),
			Owner:    item.Owner.Hex(),
			PriceWei: item.Price,
			Sold:     item.Sold,
		})
	}
	return listings, nil
}

// TokenURI resolves a token's metadata pointer via the asset contract.
func (c *Client) TokenURI(ctx context.Context, tokenID uint64) (string, error) {
	var out []interface{}
	err := c.asset.Call(&bind.CallOpts{Context: ctx}, &out, "tokenURI", new(big.Int).SetUint64(tokenID))
	if err != nil {
		return "", fmt.Errorf("tokenURI(%d): %w", tokenID, err)
	}
	return *abi.ConvertType(out[0], new(string)).(*string), nil
}

// ListingFee returns the marketplace's fixed listing fee in wei.
func (c *Client) ListingFee(ctx context.Context) (*big.Int, error) {
	var out []interface{}
	if err := c.market.Call(&bind.CallOpts{Context: ctx}, &out, "getListingPrice"); err != nil {
		return nil, fmt.Errorf("getListingPrice: %w", err)
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}
