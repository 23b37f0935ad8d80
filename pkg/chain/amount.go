package chain

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

var ErrInvalidAmount = errors.New("amount must be greater than 0")

// Decimals 资产精度
func Decimals(asset string) int {
	switch strings.ToUpper(asset) {
	case "ETH":
		return 18
	case "SOL":
		return 9
	case "USDC":
		return 6
	}
	return 18
}

// ParseAmount 十进制金额转最小单位，拒绝非正数与超出精度的小数位
func ParseAmount(amount string, decimals int) (*big.Int, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return nil, ErrInvalidAmount
	}
	if strings.HasPrefix(amount, "-") {
		return nil, ErrInvalidAmount
	}
	whole, frac, _ := strings.Cut(amount, ".")
	if whole == "" {
		whole = "0"
	}
	if len(frac) > decimals {
		return nil, fmt.Errorf("amount %s exceeds %d decimal places", amount, decimals)
	}
	for _, part := range []string{whole, frac} {
		for _, r := range part {
			if r < '0' || r > '9' {
				return nil, fmt.Errorf("malformed amount %q", amount)
			}
		}
	}

	v, ok := new(big.Int).SetString(whole+frac+strings.Repeat("0", decimals-len(frac)), 10)
	if !ok {
		return nil, fmt.Errorf("malformed amount %q", amount)
	}
	if v.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}
	return v, nil
}

// FormatAmount 最小单位转十进制字符串，去掉末尾的 0
func FormatAmount(v *big.Int, decimals int) string {
	s := v.String()
	if decimals == 0 {
		return s
	}
	if len(s) <= decimals {
		s = strings.Repeat("0", decimals-len(s)+1) + s
	}
	whole, frac := s[:len(s)-decimals], strings.TrimRight(s[len(s)-decimals:], "0")
	if frac == "" {
		return whole
	}
	return whole + "." + frac
}
