package types

import "HotCams/models"

type PerformerProfileRequest struct {
	StageName       string   `json:"stageName"`
	Gender          string   `json:"gender"`
	Category        string   `json:"category"`
	Tags            []string `json:"tags"`
	Languages       []string `json:"languages"`
	Bio             string   `json:"bio"`
	Location        string   `json:"location"`
	ProfilePhoto    string   `json:"profilePhoto"`
	CoverPhoto      string   `json:"coverPhoto"`
	PrivateShowRate float64  `json:"privateShowRate" binding:"gte=0"`
	TipGoal         float64  `json:"tipGoal" binding:"gte=0"`
}

// CreateUserRequest POST /api/user，ethAddress 与 solAddress 二选一
type CreateUserRequest struct {
	Username         string                   `json:"username"`
	DisplayName      string                   `json:"displayName"`
	Email            string                   `json:"email" binding:"omitempty,email"`
	Avatar           string                   `json:"avatar"`
	Bio              string                   `json:"bio"`
	Location         string                   `json:"location"`
	DateOfBirth      string                   `json:"dateOfBirth"` // YYYY-MM-DD
	Role             string                   `json:"role"`
	EthAddress       string                   `json:"ethAddress"`
	SolAddress       string                   `json:"solAddress"`
	PerformerProfile *PerformerProfileRequest `json:"performerProfile"`
}

// UpdateUserRequest 只更新非空字段
type UpdateUserRequest struct {
	DisplayName      *string                 `json:"displayName"`
	Email            *string                 `json:"email" binding:"omitempty,email"`
	Avatar           *string                 `json:"avatar"`
	Bio              *string                 `json:"bio"`
	Location         *string                 `json:"location"`
	IsOnline         *bool                   `json:"isOnline"`
	PerformerProfile *UpdatePerformerRequest `json:"performerProfile"`
}

type UpdatePerformerRequest struct {
	StageName       *string   `json:"stageName"`
	Gender          *string   `json:"gender"`
	Category        *string   `json:"category"`
	Tags            *[]string `json:"tags"`
	Languages       *[]string `json:"languages"`
	Bio             *string   `json:"bio"`
	Location        *string   `json:"location"`
	ProfilePhoto    *string   `json:"profilePhoto"`
	CoverPhoto      *string   `json:"coverPhoto"`
	PrivateShowRate *float64  `json:"privateShowRate" binding:"omitempty,gte=0"`
	TipGoal         *float64  `json:"tipGoal" binding:"omitempty,gte=0"`
}

// UserResponse 用户详情，带关注计数
type UserResponse struct {
	*models.Users
	FollowerCount  int64 `json:"followerCount"`
	FollowingCount int64 `json:"followingCount"`
}

type MediaResponse struct {
	URL  string `json:"url"`
	Kind string `json:"kind"`
}
