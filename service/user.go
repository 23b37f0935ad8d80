package service

import (
	"HotCams/dao"
	"HotCams/models"
	"HotCams/pkg/chain"
	"HotCams/pkg/onboarding"
	"HotCams/pkg/snowflake"
	"HotCams/types"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
)

type IUserService interface {
	GetByAddress(ctx context.Context, address string) (*types.UserResponse, error)
	GetByID(ctx context.Context, id uint64) (*models.Users, error)
	Create(ctx context.Context, req *types.CreateUserRequest) (*models.Users, error)
	Update(ctx context.Context, userID uint64, req *types.UpdateUserRequest) (*models.Users, error)
	AttachMedia(ctx context.Context, userID uint64, video bool, url string) (*models.PerformerProfile, error)
}

type UserService struct {
	Store ProfileStore
}

var _ IUserService = (*UserService)(nil)

func (s *UserService) GetByAddress(ctx context.Context, address string) (*types.UserResponse, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, types.ErrAddressRequired
	}
	user, err := s.Store.FindByWallet(ctx, address)
	if err != nil {
		return nil, err
	}
	followers, following, err := s.Store.FollowCounts(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("follow counts: %w", err)
	}
	return &types.UserResponse{Users: user, FollowerCount: followers, FollowingCount: following}, nil
}

func (s *UserService) GetByID(ctx context.Context, id uint64) (*models.Users, error) {
	return s.Store.FindByID(ctx, id)
}

// walletOf 校验 ethAddress / solAddress 只填一个且格式正确
func walletOf(req *types.CreateUserRequest) (*string, *string, error) {
	eth := strings.TrimSpace(req.EthAddress)
	sol := strings.TrimSpace(req.SolAddress)
	if (eth == "") == (sol == "") {
		return nil, nil, types.ErrOneWallet
	}
	if eth != "" {
		if err := chain.ValidateAddress(chain.Ethereum, eth); err != nil {
			return nil, nil, types.ErrInvalidWallet
		}
		eth = dao.NormalizeAddress(eth)
		return &eth, nil, nil
	}
	if err := chain.ValidateAddress(chain.Solana, sol); err != nil {
		return nil, nil, types.ErrInvalidWallet
	}
	return nil, &sol, nil
}

func newProfile(req *types.PerformerProfileRequest, age int) (*models.PerformerProfile, error) {
	if req == nil || strings.TrimSpace(req.StageName) == "" {
		return nil, types.ErrStageNameRequired
	}
	category, ok := models.ParseCategory(req.Category)
	if !ok {
		return nil, types.ErrInvalidCategory
	}
	gender := models.Gender(strings.ToUpper(strings.TrimSpace(req.Gender)))
	if gender != "" && !gender.Valid() {
		return nil, types.ErrInvalidGender
	}
	return &models.PerformerProfile{
		ID:              snowflake.GenUint64(),
		StageName:       strings.TrimSpace(req.StageName),
		Age:             age,
		Gender:          gender,
		Category:        category,
		Tags:            datatypes.JSONSlice[string](nonNil(req.Tags)),
		Languages:       datatypes.JSONSlice[string](nonNil(req.Languages)),
		Photos:          datatypes.JSONSlice[string]{},
		Videos:          datatypes.JSONSlice[string]{},
		ProfilePhoto:    req.ProfilePhoto,
		CoverPhoto:      req.CoverPhoto,
		Location:        req.Location,
		Bio:             req.Bio,
		PrivateShowRate: req.PrivateShowRate,
		TipGoal:         req.TipGoal,
	}, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func birthdayError(err error) error {
	switch {
	case errors.Is(err, onboarding.ErrUnderage):
		return types.ErrUnderage
	default:
		return types.BadRequest(err)
	}
}

// Create 校验资料后写入用户，主播资料同一事务写入
func (s *UserService) Create(ctx context.Context, req *types.CreateUserRequest) (*models.Users, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, types.ErrUsernameRequired
	}
	now := time.Now().UTC()
	dob, err := onboarding.CheckBirthday(req.DateOfBirth, now)
	if err != nil {
		return nil, birthdayError(err)
	}

	role := models.Role(strings.ToUpper(strings.TrimSpace(req.Role)))
	if role == "" {
		role = models.RoleViewer
	}
	if role != models.RoleViewer && role != models.RolePerformer {
		return nil, types.BadRequest(onboarding.ErrRoleInvalid)
	}

	eth, sol, err := walletOf(req)
	if err != nil {
		return nil, err
	}

	var profile *models.PerformerProfile
	if role == models.RolePerformer {
		if profile, err = newProfile(req.PerformerProfile, onboarding.Age(dob, now)); err != nil {
			return nil, err
		}
		if profile.Location == "" {
			profile.Location = req.Location
		}
		if profile.Bio == "" {
			profile.Bio = req.Bio
		}
	}

	taken, err := s.Store.UsernameTaken(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if taken {
		return nil, types.ErrUsernameTaken
	}
	wallet := eth
	if wallet == nil {
		wallet = sol
	}
	if taken, err = s.Store.WalletTaken(ctx, *wallet); err != nil {
		return nil, fmt.Errorf("check wallet: %w", err)
	}
	if taken {
		return nil, types.ErrWalletTaken
	}

	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		displayName = username
	}
	user := &models.Users{
		ID:               snowflake.GenUint64(),
		Username:         username,
		DisplayName:      displayName,
		Email:            strings.TrimSpace(req.Email),
		Avatar:           req.Avatar,
		Bio:              req.Bio,
		Location:         req.Location,
		DateOfBirth:      &dob,
		Role:             role,
		EthAddress:       eth,
		SolAddress:       sol,
		CanStream:        role == models.RolePerformer,
		PerformerProfile: profile,
	}
	if err := s.Store.Create(ctx, user); err != nil {
		return nil, err
	}
	user.PerformerProfile = profile
	return user, nil
}

// Update 只覆盖请求中出现的字段
func (s *UserService) Update(ctx context.Context, userID uint64, req *types.UpdateUserRequest) (*models.Users, error) {
	user, err := s.Store.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	set(&user.DisplayName, req.DisplayName)
	set(&user.Email, req.Email)
	set(&user.Avatar, req.Avatar)
	set(&user.Bio, req.Bio)
	set(&user.Location, req.Location)
	if req.IsOnline != nil {
		user.IsOnline = *req.IsOnline
	}

	if p := req.PerformerProfile; p != nil {
		profile := user.PerformerProfile
		if profile == nil {
			return nil, types.ErrNotPerformer
		}
		if p.StageName != nil {
			if strings.TrimSpace(*p.StageName) == "" {
				return nil, types.ErrStageNameRequired
			}
			profile.StageName = strings.TrimSpace(*p.StageName)
		}
		if p.Gender != nil {
			g := models.Gender(strings.ToUpper(*p.Gender))
			if !g.Valid() {
				return nil, types.ErrInvalidGender
			}
			profile.Gender = g
		}
		if p.Category != nil {
			c, ok := models.ParseCategory(*p.Category)
			if !ok {
				return nil, types.ErrInvalidCategory
			}
			profile.Category = c
		}
		if p.Tags != nil {
			profile.Tags = nonNil(*p.Tags)
		}
		if p.Languages != nil {
			profile.Languages = nonNil(*p.Languages)
		}
		set(&profile.Bio, p.Bio)
		set(&profile.Location, p.Location)
		set(&profile.ProfilePhoto, p.ProfilePhoto)
		set(&profile.CoverPhoto, p.CoverPhoto)
		if p.PrivateShowRate != nil {
			profile.PrivateShowRate = *p.PrivateShowRate
		}
		if p.TipGoal != nil {
			profile.TipGoal = *p.TipGoal
		}
	}

	if err := s.Store.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func (s *UserService) AttachMedia(ctx context.Context, userID uint64, video bool, url string) (*models.PerformerProfile, error) {
	return s.Store.AppendMedia(ctx, userID, video, url)
}
