package chain

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mr-tron/base58"
	"golang.org/x/crypto/sha3"
)

type Chain string

const (
	Ethereum Chain = "ethereum"
	Solana   Chain = "solana"
)

var (
	ErrInvalidAddress  = errors.New("invalid wallet address")
	ErrChecksumInvalid = errors.New("address checksum mismatch")
)

// DetectChain 0x 前缀视为 EVM 地址，其余按 Solana 处理
func DetectChain(address string) Chain {
	if strings.HasPrefix(address, "0x") || strings.HasPrefix(address, "0X") {
		return Ethereum
	}
	return Solana
}

// ValidateAddress 校验地址格式；混合大小写的 EVM 地址同时校验 EIP-55
func ValidateAddress(c Chain, address string) error {
	switch c {
	case Ethereum:
		if !common.IsHexAddress(address) || !strings.HasPrefix(strings.ToLower(address), "0x") {
			return fmt.Errorf("%w: %q", ErrInvalidAddress, address)
		}
		body := address[2:]
		if body != strings.ToLower(body) && body != strings.ToUpper(body) {
			if address != ChecksumAddress(address) {
				return ErrChecksumInvalid
			}
		}
		return nil
	case Solana:
		b, err := base58.Decode(address)
		if err != nil || len(b) != 32 {
			return fmt.Errorf("%w: %q", ErrInvalidAddress, address)
		}
		return nil
	}
	return fmt.Errorf("unsupported chain %q", c)
}

// ChecksumAddress EIP-55 大小写校验格式
func ChecksumAddress(address string) string {
	lower := strings.ToLower(strings.TrimPrefix(strings.TrimPrefix(address, "0x"), "0X"))
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(lower))
	digest := hex.EncodeToString(h.Sum(nil))

	out := []byte(lower)
	for i, ch := range out {
		if ch >= 'a' && ch <= 'f' && digest[i] >= '8' {
			out[i] = ch - 32
		}
	}
	return "0x" + string(out)
}
