package wallet

import (
	"HotCams/pkg/chain"
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// erc20 transfer(address,uint256)
var transferSelector = crypto.Keccak256([]byte("transfer(address,uint256)"))[:4]

// EVMClient ethclient.Client 的子集
type EVMClient interface {
	ChainID(ctx context.Context) (*big.Int, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *ethtypes.Transaction) error
}

// EVMSigner 本地私钥签名的 EVM 钱包，ETH 原生转账，USDC 走 ERC20 合约
type EVMSigner struct {
	client EVMClient
	key    *ecdsa.PrivateKey
	from   common.Address
	usdc   common.Address
}

var _ Signer = (*EVMSigner)(nil)

func NewEVMSigner(client EVMClient, key *ecdsa.PrivateKey, usdc common.Address) *EVMSigner {
	return &EVMSigner{
		client: client,
		key:    key,
		from:   crypto.PubkeyToAddress(key.PublicKey),
		usdc:   usdc,
	}
}

// DialEVMSigner hexKey 不带 0x 前缀
func DialEVMSigner(ctx context.Context, url, hexKey, usdc string) (*EVMSigner, error) {
	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	client, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	return NewEVMSigner(client, key, common.HexToAddress(usdc)), nil
}

func (s *EVMSigner) Address() string {
	return s.from.Hex()
}

func (s *EVMSigner) SendTransfer(ctx context.Context, t *Transfer) (string, error) {
	if t.Chain != chain.Ethereum {
		return "", fmt.Errorf("evm signer cannot send on %s", t.Chain)
	}
	to := common.HexToAddress(t.To)
	value := new(big.Int)
	var data []byte
	switch t.Asset {
	case ETH:
		value.Set(t.Amount)
	case USDC:
		if s.usdc == (common.Address{}) {
			return "", errors.New("usdc contract not configured")
		}
		data = append(data, transferSelector...)
		data = append(data, common.LeftPadBytes(to.Bytes(), 32)...)
		data = append(data, common.LeftPadBytes(t.Amount.Bytes(), 32)...)
		to = s.usdc
	default:
		return "", ErrUnsupportedAsset
	}

	chainID, err := s.client.ChainID(ctx)
	if err != nil {
		return "", fmt.Errorf("chain id: %w", err)
	}
	nonce, err := s.client.PendingNonceAt(ctx, s.from)
	if err != nil {
		return "", fmt.Errorf("nonce: %w", err)
	}
	gasPrice, err := s.client.SuggestGasPrice(ctx)
	if err != nil {
		return "", fmt.Errorf("gas price: %w", err)
	}
	gas, err := s.client.EstimateGas(ctx, ethereum.CallMsg{From: s.from, To: &to, Value: value, Data: data})
	if err != nil {
		return "", fmt.Errorf("estimate gas: %w", err)
	}

	tx := ethtypes.NewTx(&ethtypes.LegacyTx{
		Nonce:    nonce,
		To:       &to,
		Value:    value,
		Gas:      gas,
		GasPrice: gasPrice,
		Data:     data,
	})
	signed, err := ethtypes.SignTx(tx, ethtypes.LatestSignerForChainID(chainID), s.key)
	if err != nil {
		return "", fmt.Errorf("sign: %w", err)
	}
	if err := s.client.SendTransaction(ctx, signed); err != nil {
		return "", fmt.Errorf("send: %w", err)
	}
	return signed.Hash().Hex(), nil
}
