package types

import "HotCams/models"

const (
	LoginStatusSuccess      = "success"
	LoginStatusSignupNeeded = "signup_needed"
)

// WalletLoginRequest 签名原文为 {"address":"...","timestamp":...}
type WalletLoginRequest struct {
	Address   string `json:"address" binding:"required"`
	Timestamp int64  `json:"timestamp" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}

type WalletLoginResponse struct {
	Status string        `json:"status"`
	Token  string        `json:"token,omitempty"`
	User   *models.Users `json:"user,omitempty"`
}
