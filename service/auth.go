package service

import (
	"HotCams/config"
	"HotCams/dao/cache"
	"HotCams/models"
	"HotCams/pkg/chain"
	"HotCams/pkg/jwt"
	"HotCams/pkg/log"
	"HotCams/types"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

type IAuthService interface {
	WalletLogin(ctx context.Context, req *types.WalletLoginRequest) (*types.WalletLoginResponse, error)
	IssueToken(user *models.Users) (string, error)
}

type AuthService struct {
	Conf   *config.Config
	Store  ProfileStore
	Nonces *cache.NonceStorage
}

var _ IAuthService = (*AuthService)(nil)

func (s *AuthService) IssueToken(user *models.Users) (string, error) {
	expire := time.Duration(s.Conf.Jwt.ExpiresIn) * time.Second
	return jwt.GenerateToken([]byte(s.Conf.Jwt.Secret), user.ID, user.WalletAddress(), jwt.TokenTypeAccess, expire)
}

func (s *AuthService) window() time.Duration {
	if s.Conf.Chain == nil || s.Conf.Chain.LoginWindow <= 0 {
		return time.Hour
	}
	return s.Conf.Chain.LoginWindow
}

// loginTime 客户端可能提交毫秒时间戳
func loginTime(ts int64) time.Time {
	if ts > 1e12 {
		return time.UnixMilli(ts)
	}
	return time.Unix(ts, 0)
}

// WalletLogin 校验签名后签发 token；钱包未注册时返回 signup_needed
func (s *AuthService) WalletLogin(ctx context.Context, req *types.WalletLoginRequest) (*types.WalletLoginResponse, error) {
	address := strings.TrimSpace(req.Address)
	if address == "" {
		return nil, types.ErrAddressRequired
	}
	if err := chain.ValidateAddress(chain.DetectChain(address), address); err != nil {
		return nil, types.ErrInvalidWallet
	}

	window := s.window()
	skew := time.Since(loginTime(req.Timestamp))
	if skew > window || skew < -window {
		return nil, types.ErrLoginExpired
	}
	if err := chain.VerifySignature(address, chain.LoginMessage(address, req.Timestamp), req.Signature); err != nil {
		log.L.Debug("wallet signature rejected", zap.String("address", address), zap.Error(err))
		return nil, types.ErrInvalidSignature
	}
	fresh, err := s.Nonces.Claim(ctx, req.Signature, 2*window)
	if err != nil {
		return nil, fmt.Errorf("claim signature: %w", err)
	}
	if !fresh {
		return nil, types.ErrSignatureUsed
	}

	user, err := s.Store.FindByWallet(ctx, address)
	if errors.Is(err, types.ErrUserNotFound) {
		return &types.WalletLoginResponse{Status: types.LoginStatusSignupNeeded}, nil
	}
	if err != nil {
		return nil, err
	}
	token, err := s.IssueToken(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &types.WalletLoginResponse{Status: types.LoginStatusSuccess, Token: token, User: user}, nil
}
