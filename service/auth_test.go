package service

import (
	"HotCams/pkg/chain"
	"HotCams/pkg/jwt"
	"HotCams/types"
	"context"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/mr-tron/base58"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type evmSigner struct {
	t   *testing.T
	key *ecdsa.PrivateKey
}

func newEVMSigner(t *testing.T) *evmSigner {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	return &evmSigner{t: t, key: key}
}

func (s *evmSigner) address() string {
	return crypto.PubkeyToAddress(s.key.PublicKey).Hex()
}

func (s *evmSigner) request(ts int64) *types.WalletLoginRequest {
	s.t.Helper()
	sig, err := crypto.Sign(accounts.TextHash([]byte(chain.LoginMessage(s.address(), ts))), s.key)
	require.NoError(s.t, err)
	sig[crypto.RecoveryIDOffset] += 27
	return &types.WalletLoginRequest{Address: s.address(), Timestamp: ts, Signature: "0x" + hex.EncodeToString(sig)}
}

func TestWalletLoginEVM(t *testing.T) {
	mr := miniredis.RunT(t)
	e := newEnv(t, redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	ctx := context.Background()
	signer := newEVMSigner(t)

	req := signer.request(time.Now().UnixMilli())
	resp, err := e.authSvc.WalletLogin(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, types.LoginStatusSignupNeeded, resp.Status)
	assert.Empty(t, resp.Token)

	_, err = e.authSvc.WalletLogin(ctx, req)
	assert.ErrorIs(t, err, types.ErrSignatureUsed)

	id := mustCreate(t, e, viewerReq("cleo", signer.address()))
	resp, err = e.authSvc.WalletLogin(ctx, signer.request(time.Now().Unix()))
	require.NoError(t, err)
	assert.Equal(t, types.LoginStatusSuccess, resp.Status)
	assert.Equal(t, id, resp.User.ID)
	assert.NotEmpty(t, resp.Token)
}

func TestWalletLoginIssuesToken(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	address := base58.Encode(pub)
	req := viewerReq("dina", "")
	req.SolAddress = address
	id := mustCreate(t, e, req)

	ts := time.Now().Unix()
	sig := ed25519.Sign(priv, []byte(chain.LoginMessage(address, ts)))
	resp, err := e.authSvc.WalletLogin(ctx, &types.WalletLoginRequest{
		Address: address, Timestamp: ts, Signature: base58.Encode(sig),
	})
	require.NoError(t, err)
	assert.Equal(t, types.LoginStatusSuccess, resp.Status)
	require.NotNil(t, resp.User)
	assert.Equal(t, id, resp.User.ID)

	claims, err := jwt.ParseToken([]byte(e.conf.Jwt.Secret), jwt.TokenTypeAccess, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID)
	assert.Equal(t, address, claims.Address)
}

func TestWalletLoginRejects(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()

	signer := newEVMSigner(t)
	_, err := e.authSvc.WalletLogin(ctx, signer.request(time.Now().Add(-2*time.Hour).Unix()))
	assert.ErrorIs(t, err, types.ErrLoginExpired)

	forged := newEVMSigner(t).request(time.Now().Unix())
	forged.Address = signer.address()
	_, err = e.authSvc.WalletLogin(ctx, forged)
	assert.ErrorIs(t, err, types.ErrInvalidSignature)

	bad := signer.request(time.Now().Unix())
	bad.Address = "0x12"
	_, err = e.authSvc.WalletLogin(ctx, bad)
	assert.ErrorIs(t, err, types.ErrInvalidWallet)
}
