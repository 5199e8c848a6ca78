package eth

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/JTStephens18/NFTMarketplace/market"
)

// Signer is a key-backed signing identity for this chain client. It is
// handed out by a WalletProvider and accepted back by the Client's write
// methods; the key never leaves this package.
type Signer struct {
	key     *ecdsa.PrivateKey
	addr    common.Address
	chainID *big.Int
}

// Address returns the signer's hex address.
func (s *Signer) Address() string {
	return s.addr.Hex()
}

// transactOpts builds per-call transaction options. value is the payment
// attached to the call (listing fee, sale price) and may be nil.
func (s *Signer) transactOpts(ctx context.Context, value *big.Int) (*bind.TransactOpts, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(s.key, s.chainID)
	if err != nil {
		return nil, fmt.Errorf("build transactor: %w", err)
	}
	opts.Context = ctx
	opts.Value = value
	return opts, nil
}

// localSigner rejects signers issued by a different provider. The ports
// keep Signer opaque, so this is where the concrete type is recovered.
func (c *Client) localSigner(s market.Signer) (*Signer, error) {
	ls, ok := s.(*Signer)
	if !ok {
		return nil, fmt.Errorf("signer %T was not issued by this chain client's wallet provider", s)
	}
	return ls, nil
}

// WalletProvider implements market.WalletProvider over a locally held
// private key. In a headless client the browser wallet prompt becomes a key
// load; a missing key is the equivalent of having no wallet installed.
type WalletProvider struct {
	privKeyHex string
	chainID    *big.Int
}

func NewWalletProvider(privKeyHex string, chainID int64) *WalletProvider {
	return &WalletProvider{
		privKeyHex: privKeyHex,
		chainID:    big.NewInt(chainID),
	}
}

// Connect derives the signing identity from the configured key.
func (p *WalletProvider) Connect(ctx context.Context) (market.Signer, error) {
	if p.privKeyHex == "" {
		return nil, market.ErrNoProvider
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(p.privKeyHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("%w: bad private key: %w", market.ErrNoProvider, err)
	}

	return &Signer{
		key:     key,
		addr:    crypto.PubkeyToAddress(key.PublicKey),
		chainID: p.chainID,
	}, nil
}
