package chain

import (
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/mr-tron/base58"
)

var ErrSignatureMismatch = errors.New("signature does not match address")

// LoginMessage 钱包登录时客户端签名的原文
func LoginMessage(address string, timestamp int64) string {
	return fmt.Sprintf(`{"address":"%s","timestamp":%d}`, address, timestamp)
}

// VerifySignature EVM 地址按 EIP-191 personal_sign 恢复公钥，Solana 地址做 ed25519 校验
func VerifySignature(address, message, signature string) error {
	if DetectChain(address) == Ethereum {
		return verifyEVM(address, message, signature)
	}
	return verifySolana(address, message, signature)
}

func verifyEVM(address, message, signature string) error {
	sig, err := hex.DecodeString(strings.TrimPrefix(signature, "0x"))
	if err != nil {
		return fmt.Errorf("invalid hex signature: %w", err)
	}
	if len(sig) != crypto.SignatureLength {
		return fmt.Errorf("invalid signature length %d", len(sig))
	}
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}

	pub, err := crypto.SigToPub(accounts.TextHash([]byte(message)), sig)
	if err != nil {
		return fmt.Errorf("recover public key: %w", err)
	}
	if !strings.EqualFold(crypto.PubkeyToAddress(*pub).Hex(), address) {
		return ErrSignatureMismatch
	}
	return nil
}

func verifySolana(address, message, signature string) error {
	pub, err := base58.Decode(address)
	if err != nil || len(pub) != ed25519.PublicKeySize {
		return ErrInvalidAddress
	}
	sig, err := base58.Decode(signature)
	if err != nil {
		// 部分钱包返回 hex
		sig, err = hex.DecodeString(signature)
		if err != nil {
			return errors.New("invalid signature encoding")
		}
	}
	if len(sig) != ed25519.SignatureSize {
		return fmt.Errorf("invalid ed25519 signature length %d", len(sig))
	}
	if !ed25519.Verify(ed25519.PublicKey(pub), []byte(message), sig) {
		return ErrSignatureMismatch
	}
	return nil
}
