package dao

import (
	"HotCams/models"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

type Users struct {
	Repo[models.Users]
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{
		Repo: NewRepo[models.Users](db),
	}
}

// NormalizeAddress 以太坊地址统一小写存储，Solana 地址大小写敏感
func NormalizeAddress(address string) string {
	address = strings.TrimSpace(address)
	if strings.HasPrefix(address, "0x") || strings.HasPrefix(address, "0X") {
		return strings.ToLower(address)
	}
	return address
}

// FindByWallet 按钱包地址查询，带出主播资料
func (u *Users) FindByWallet(ctx context.Context, address string) (*models.Users, error) {
	address = NormalizeAddress(address)
	var user models.Users
	err := u.Db.WithContext(ctx).
		Preload("PerformerProfile").
		Where("eth_address = ? OR sol_address = ?", address, address).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *Users) FindWithProfile(ctx context.Context, id uint64) (*models.Users, error) {
	var user models.Users
	err := u.Db.WithContext(ctx).Preload("PerformerProfile").First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *Users) IsUsernameTaken(ctx context.Context, username string) (bool, error) {
	return u.Repo.IsExist(ctx, "LOWER(username) = ?", strings.ToLower(username))
}

// IsWalletTaken 地址出现在任一链的列上都算占用
func (u *Users) IsWalletTaken(ctx context.Context, address string) (bool, error) {
	address = NormalizeAddress(address)
	return u.Repo.IsExist(ctx, "eth_address = ? OR sol_address = ?", address, address)
}

// CreateWithProfile 用户与主播资料同一事务写入
func (u *Users) CreateWithProfile(ctx context.Context, user *models.Users, profile *models.PerformerProfile) error {
	return u.Txx(ctx, func(tx *gorm.DB) error {
		if err := tx.Omit("PerformerProfile").Create(user).Error; err != nil {
			return err
		}
		if profile == nil {
			return nil
		}
		profile.UserID = user.ID
		if err := tx.Create(profile).Error; err != nil {
			return err
		}
		user.PerformerProfile = profile
		return nil
	})
}

// SaveWithProfile 整行保存用户与主播资料
func (u *Users) SaveWithProfile(ctx context.Context, user *models.Users) error {
	return u.Txx(ctx, func(tx *gorm.DB) error {
		if err := tx.Omit("PerformerProfile").Save(user).Error; err != nil {
			return fmt.Errorf("dao.Users.SaveWithProfile user: %w", err)
		}
		if user.PerformerProfile == nil {
			return nil
		}
		if err := tx.Save(user.PerformerProfile).Error; err != nil {
			return fmt.Errorf("dao.Users.SaveWithProfile profile: %w", err)
		}
		return nil
	})
}

// AppendMedia 追加主播照片或视频地址
func (u *Users) AppendMedia(ctx context.Context, userID uint64, video bool, url string) (*models.PerformerProfile, error) {
	var profile models.PerformerProfile
	err := u.Txx(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).First(&profile).Error; err != nil {
			return err
		}
		if video {
			profile.Videos = append(profile.Videos, url)
			return tx.Model(&profile).Update("videos", profile.Videos).Error
		}
		profile.Photos = append(profile.Photos, url)
		return tx.Model(&profile).Update("photos", profile.Photos).Error
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (u *Users) SetOnline(ctx context.Context, userID uint64, online bool) error {
	return u.Model(ctx).Where("id = ?", userID).Update("is_online", online).Error
}

func (u *Users) Count(ctx context.Context) (int64, error) {
	var count int64
	err := u.Model(ctx).Count(&count).Error
	return count, err
}

// CountBetween [from, to) 内注册的用户数
func (u *Users) CountBetween(ctx context.Context, from, to time.Time) (int64, error) {
	return u.FindCount(ctx, "created_at >= ? AND created_at < ?", from, to)
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
