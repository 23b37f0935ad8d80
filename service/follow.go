package service

import (
	"HotCams/dao"
	"HotCams/models"
	"HotCams/types"
	"context"
)

var _ IFollowService = (*FollowService)(nil)

type IFollowService interface {
	Follow(ctx context.Context, followerID, followeeID uint64) (*types.FollowResponse, error)
	Unfollow(ctx context.Context, followerID, followeeID uint64) (*types.FollowResponse, error)
	Status(ctx context.Context, followerID, followeeID uint64) (*types.FollowResponse, error)
	Counts(ctx context.Context, userID uint64) (*types.FollowResponse, error)
}

type FollowService struct {
	FollowDAO *dao.Follows
	UserDAO   *dao.Users
}

func (s *FollowService) check(ctx context.Context, followerID, followeeID uint64) error {
	// 不能关注自己
	if followerID == followeeID {
		return types.ErrFollowSelf
	}

	// 校验被关注用户是否存在
	exist, err := s.UserDAO.IsExist(ctx, "id = ?", followeeID)
	if err != nil {
		return err
	}
	if !exist {
		return types.ErrUserNotFound
	}
	return nil
}

// Follow 重复关注直接返回当前状态
func (s *FollowService) Follow(ctx context.Context, followerID, followeeID uint64) (*types.FollowResponse, error) {
	if err := s.check(ctx, followerID, followeeID); err != nil {
		return nil, err
	}
	isFollowing, err := s.FollowDAO.IsFollowing(ctx, followerID, followeeID)
	if err != nil {
		return nil, err
	}
	if !isFollowing {
		if err := s.FollowDAO.SetStatus(ctx, followerID, followeeID, models.FollowStatusActive); err != nil {
			return nil, err
		}
	}
	return s.Status(ctx, followerID, followeeID)
}

func (s *FollowService) Unfollow(ctx context.Context, followerID, followeeID uint64) (*types.FollowResponse, error) {
	if err := s.check(ctx, followerID, followeeID); err != nil {
		return nil, err
	}
	isFollowing, err := s.FollowDAO.IsFollowing(ctx, followerID, followeeID)
	if err != nil {
		return nil, err
	}
	if isFollowing {
		if err := s.FollowDAO.SetStatus(ctx, followerID, followeeID, models.FollowStatusCanceled); err != nil {
			return nil, err
		}
	}
	return s.Status(ctx, followerID, followeeID)
}

func (s *FollowService) Status(ctx context.Context, followerID, followeeID uint64) (*types.FollowResponse, error) {
	resp, err := s.Counts(ctx, followeeID)
	if err != nil {
		return nil, err
	}
	if resp.Following, err = s.FollowDAO.IsFollowing(ctx, followerID, followeeID); err != nil {
		return nil, err
	}
	return resp, nil
}

// Counts 用户的粉丝数与关注数
func (s *FollowService) Counts(ctx context.Context, userID uint64) (*types.FollowResponse, error) {
	followers, err := s.FollowDAO.GetFollowerCount(ctx, userID)
	if err != nil {
		return nil, err
	}
	following, err := s.FollowDAO.GetFollowingCount(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &types.FollowResponse{FollowerCount: followers, FollowingCount: following}, nil
}
