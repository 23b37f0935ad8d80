package models

import (
	"time"
)

type Role string

const (
	RoleViewer    Role = "VIEWER"
	RolePerformer Role = "PERFORMER"
	RoleModerator Role = "MODERATOR"
	RoleAdmin     Role = "ADMIN"
)

func (r Role) Valid() bool {
	switch r {
	case RoleViewer, RolePerformer, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

type Users struct {
	ID                uint64            `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	Username          string            `gorm:"column:username;type:varchar(32);not null;uniqueIndex" json:"username"`
	DisplayName       string            `gorm:"column:display_name;type:varchar(64)" json:"displayName"`
	Email             string            `gorm:"column:email;type:varchar(128)" json:"email,omitempty"`
	Avatar            string            `gorm:"column:avatar;type:varchar(512)" json:"avatar,omitempty"`
	Bio               string            `gorm:"column:bio;type:text" json:"bio,omitempty"`
	Location          string            `gorm:"column:location;type:varchar(128)" json:"location,omitempty"`
	DateOfBirth       *time.Time        `gorm:"column:date_of_birth" json:"dateOfBirth,omitempty"`
	Role              Role              `gorm:"column:role;type:varchar(16);not null;default:VIEWER;index" json:"role"`
	IsVerified        bool              `gorm:"column:is_verified;not null;default:false" json:"isVerified"`
	EthAddress        *string           `gorm:"column:eth_address;type:varchar(64);uniqueIndex" json:"ethAddress,omitempty"`
	SolAddress        *string           `gorm:"column:sol_address;type:varchar(64);uniqueIndex" json:"solAddress,omitempty"`
	CanStream         bool              `gorm:"column:can_stream;not null;default:false" json:"canStream"`
	StreamingApproved bool              `gorm:"column:streaming_approved;not null;default:false" json:"streamingApproved"`
	IsOnline          bool              `gorm:"column:is_online;not null;default:false" json:"isOnline"`
	PerformerProfile  *PerformerProfile `gorm:"foreignKey:UserID;references:ID" json:"performerProfile"`
	CreatedAt         time.Time         `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt         time.Time         `gorm:"column:updated_at" json:"updatedAt"`
}

func (Users) TableName() string {
	return "users"
}

// WalletAddress 优先返回以太坊地址
func (u *Users) WalletAddress() string {
	if u.EthAddress != nil && *u.EthAddress != "" {
		return *u.EthAddress
	}
	if u.SolAddress != nil {
		return *u.SolAddress
	}
	return ""
}
