package models

import "time"

type Currency string

const (
	CurrencyETH  Currency = "ETH"
	CurrencySOL  Currency = "SOL"
	CurrencyUSDC Currency = "USDC"
)

func (c Currency) Valid() bool {
	switch c {
	case CurrencyETH, CurrencySOL, CurrencyUSDC:
		return true
	}
	return false
}

// Tip 打赏记录，只写不改
type Tip struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	FromUserID uint64    `gorm:"column:from_user_id;not null;index" json:"fromUserId"`
	StreamID   uint64    `gorm:"column:stream_id;not null;index" json:"streamId"`
	Amount     float64   `gorm:"column:amount;not null" json:"amount"`
	Currency   Currency  `gorm:"column:currency;type:varchar(8);not null" json:"currency"`
	Chain      string    `gorm:"column:chain;type:varchar(16)" json:"chain"`
	Message    string    `gorm:"column:message;type:varchar(255)" json:"message,omitempty"`
	TxHash     string    `gorm:"column:tx_hash;type:varchar(128);not null;uniqueIndex" json:"txHash"`
	CreatedAt  time.Time `gorm:"column:created_at;index" json:"createdAt"`
}

func (Tip) TableName() string {
	return "tips"
}
