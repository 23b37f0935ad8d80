package wallet

import (
	"HotCams/pkg/chain"
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEVMClient struct {
	sent *ethtypes.Transaction
}

func (f *fakeEVMClient) ChainID(context.Context) (*big.Int, error) { return big.NewInt(1), nil }
func (f *fakeEVMClient) PendingNonceAt(context.Context, common.Address) (uint64, error) {
	return 7, nil
}
func (f *fakeEVMClient) SuggestGasPrice(context.Context) (*big.Int, error) {
	return big.NewInt(1_000_000_000), nil
}
func (f *fakeEVMClient) EstimateGas(context.Context, ethereum.CallMsg) (uint64, error) {
	return 21000, nil
}
func (f *fakeEVMClient) SendTransaction(_ context.Context, tx *ethtypes.Transaction) error {
	f.sent = tx
	return nil
}

func TestEVMSignerNativeTransfer(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	client := &fakeEVMClient{}
	s := NewEVMSigner(client, key, common.Address{})

	amount, _ := new(big.Int).SetString("50000000000000000", 10)
	hash, err := s.SendTransfer(context.Background(), &Transfer{
		Chain: chain.Ethereum, Asset: ETH, To: performerEth, Amount: amount, Decimals: 18,
	})
	require.NoError(t, err)
	require.NotNil(t, client.sent)
	assert.Equal(t, client.sent.Hash().Hex(), hash)
	assert.Equal(t, amount, client.sent.Value())
	assert.EqualValues(t, 7, client.sent.Nonce())
	assert.Equal(t, common.HexToAddress(performerEth), *client.sent.To())

	from, err := ethtypes.Sender(ethtypes.LatestSignerForChainID(big.NewInt(1)), client.sent)
	require.NoError(t, err)
	assert.Equal(t, s.Address(), from.Hex())
}

func TestEVMSignerUSDC(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	usdc := common.HexToAddress("0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48")
	client := &fakeEVMClient{}
	s := NewEVMSigner(client, key, usdc)

	_, err = s.SendTransfer(context.Background(), &Transfer{
		Chain: chain.Ethereum, Asset: USDC, To: performerEth, Amount: big.NewInt(5_000_000), Decimals: 6,
	})
	require.NoError(t, err)
	assert.Equal(t, usdc, *client.sent.To())
	assert.Zero(t, client.sent.Value().Sign())
	data := client.sent.Data()
	require.Len(t, data, 4+32+32)
	assert.Equal(t, []byte{0xa9, 0x05, 0x9c, 0xbb}, data[:4])
	assert.Equal(t, int64(5_000_000), new(big.Int).SetBytes(data[36:]).Int64())

	_, err = s.SendTransfer(context.Background(), &Transfer{Chain: chain.Solana, Asset: SOL, Amount: big.NewInt(1)})
	assert.Error(t, err)
}
