package eth

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/JTStephens18/NFTMarketplace/domain"
	"github.com/JTStephens18/NFTMarketplace/market"
)

// Mint calls the asset contract's createToken with the metadata URI, waits
// for the transaction to mine and extracts the assigned token id from the
// transfer event. Callers get a structured receipt, never raw logs.
func (c *Client) Mint(ctx context.Context, signer market.Signer, metadataURI string) (*domain.MintReceipt, error) {
	s, err := c.localSigner(signer)
	if err != nil {
		return nil, err
	}
	opts, err := s.transactOpts(ctx, nil)
	if err != nil {
		return nil, err
	}

	tx, err := c.asset.Transact(opts, "createToken", metadataURI)
	if err != nil {
		return nil, fmt.Errorf("createToken: %w", err)
	}
	receipt, err := c.waitConfirmed(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("createToken: %w", err)
	}

	tokenID, err := c.tokenIDFromLogs(receipt.Logs)
	if err != nil {
		return nil, fmt.Errorf("createToken tx %s: %w", tx.Hash().Hex(), err)
	}

	return &domain.MintReceipt{
		TxID:    tx.Hash().Hex(),
		TokenID: tokenID,
		Status:  domain.TxStatusConfirmed,
	}, nil
}

// CreateListing calls the marketplace's createMarketItem, attaching the
// listing fee as payment.
func (c *Client) CreateListing(ctx context.Context, signer market.Signer, tokenID uint64, priceWei, feeWei *big.Int) (*domain.TxReceipt, error) {
	s, err := c.localSigner(signer)
	if err != nil {
		return nil, err
	}
	opts, err := s.transactOpts(ctx, feeWei)
	if err != nil {
		return nil, err
	}

	tx, err := c.market.Transact(opts, "createMarketItem", c.assetAddr, new(big.Int).SetUint64(tokenID), priceWei)
	if err != nil {
		return nil, fmt.Errorf("createMarketItem: %w", err)
	}
	if _, err := c.waitConfirmed(ctx, tx); err != nil {
		return nil, fmt.Errorf("createMarketItem: %w", err)
	}

	return &domain.TxReceipt{TxID: tx.Hash().Hex(), Status: domain.TxStatusConfirmed}, nil
}

// Purchase calls the marketplace's createMarketSale, attaching the sale
// price as payment.
func (c *Client) Purchase(ctx context.Context, signer market.Signer, tokenID uint64, priceWei *big.Int) (*domain.TxReceipt, error) {
	s, err := c.localSigner(signer)
	if err != nil {
		return nil, err
	}
	opts, err := s.transactOpts(ctx, priceWei)
	if err != nil {
		return nil, err
	}

	tx, err := c.market.Transact(opts, "createMarketSale", c.assetAddr, new(big.Int).SetUint64(tokenID))
	if err != nil {
		return nil, fmt.Errorf("createMarketSale: %w", err)
	}
	if _, err := c.waitConfirmed(ctx, tx); err != nil {
		return nil, fmt.Errorf("createMarketSale: %w", err)
	}

	return &domain.TxReceipt{TxID: tx.Hash().Hex(), Status: domain.TxStatusConfirmed}, nil
}

// waitConfirmed blocks until the transaction mines and checks it did not
// revert. Everything downstream may treat a returned receipt as durable.
func (c *Client) waitConfirmed(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	receipt, err := bind.WaitMined(ctx, c.conn, tx)
	if err != nil {
		return nil, fmt.Errorf("wait for tx %s: %w", tx.Hash().Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("tx %s reverted", tx.Hash().Hex())
	}
	return receipt, nil
}

// tokenIDFromLogs finds the asset contract's Transfer event in a mint
// receipt and decodes the token id from its third indexed argument.
func (c *Client) tokenIDFromLogs(logs []*types.Log) (uint64, error) {
	for _, l := range logs {
		if l.Address != c.assetAddr {
			continue
		}
		if len(l.Topics) == 4 && l.Topics[0] == c.transferTopic {
			return l.Topics[3].Big().Uint64(), nil
		}
	}
	return 0, fmt.Errorf("no transfer event in receipt")
}
