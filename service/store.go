package service

import (
	"HotCams/dao"
	"HotCams/models"
	"HotCams/types"
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProfileStore 用户与主播资料的存储能力，按配置选择数据库或内存实现
type ProfileStore interface {
	// FindByWallet 不存在时返回 types.ErrUserNotFound
	FindByWallet(ctx context.Context, address string) (*models.Users, error)
	FindByID(ctx context.Context, id uint64) (*models.Users, error)
	UsernameTaken(ctx context.Context, username string) (bool, error)
	WalletTaken(ctx context.Context, address string) (bool, error)
	// Create 用户与可选的主播资料一并写入
	Create(ctx context.Context, user *models.Users) error
	Save(ctx context.Context, user *models.Users) error
	AppendMedia(ctx context.Context, userID uint64, video bool, url string) (*models.PerformerProfile, error)
	FollowCounts(ctx context.Context, userID uint64) (followers, following int64, err error)
}

// StreamStore 主播列表、直播与统计数据的读取能力
type StreamStore interface {
	ListPerformers(ctx context.Context, filter dao.PerformerFilter) ([]*dao.PerformerRow, error)
	TopPerformers(ctx context.Context, limit int) ([]*models.Users, error)
	LiveStats(ctx context.Context) (liveStreams, currentViewers int64, err error)
	// TipsByCurrency 某天按币种拆分的打赏额
	TipsByCurrency(ctx context.Context, day time.Time) (map[models.Currency]float64, error)
	TotalUsers(ctx context.Context) (int64, error)
	// DayTotals 统计某天的全站数据，today 为 true 时计入当前在线人数
	DayTotals(ctx context.Context, day time.Time, today bool) (*models.Analytics, error)
	// PerformerDayTotals 按主播统计某天数据
	PerformerDayTotals(ctx context.Context, day time.Time) ([]*models.Analytics, error)
	SaveDaily(ctx context.Context, row *models.Analytics) error
	DailyRange(ctx context.Context, scope uint64, from, to time.Time) ([]*models.Analytics, error)
}

type DBProfileStore struct {
	Users   *dao.Users
	Follows *dao.Follows
}

var _ ProfileStore = (*DBProfileStore)(nil)

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return types.ErrUserNotFound
	}
	return err
}

func (s *DBProfileStore) FindByWallet(ctx context.Context, address string) (*models.Users, error) {
	user, err := s.Users.FindByWallet(ctx, address)
	return user, notFound(err)
}

func (s *DBProfileStore) FindByID(ctx context.Context, id uint64) (*models.Users, error) {
	user, err := s.Users.FindWithProfile(ctx, id)
	return user, notFound(err)
}

func (s *DBProfileStore) UsernameTaken(ctx context.Context, username string) (bool, error) {
	return s.Users.IsUsernameTaken(ctx, username)
}

func (s *DBProfileStore) WalletTaken(ctx context.Context, address string) (bool, error) {
	return s.Users.IsWalletTaken(ctx, address)
}

func (s *DBProfileStore) Create(ctx context.Context, user *models.Users) error {
	profile := user.PerformerProfile
	user.PerformerProfile = nil
	err := s.Users.CreateWithProfile(ctx, user, profile)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// 并发注册时唯一索引兜底，按与校验相同的顺序区分冲突字段
		return s.conflict(ctx, user)
	}
	return err
}

func (s *DBProfileStore) conflict(ctx context.Context, user *models.Users) error {
	if taken, err := s.Users.IsUsernameTaken(ctx, user.Username); err == nil && taken {
		return types.ErrUsernameTaken
	}
	if wallet := user.WalletAddress(); wallet != "" {
		if taken, err := s.Users.IsWalletTaken(ctx, wallet); err == nil && taken {
			return types.ErrWalletTaken
		}
	}
	return types.ErrUsernameTaken
}

func (s *DBProfileStore) Save(ctx context.Context, user *models.Users) error {
	return s.Users.SaveWithProfile(ctx, user)
}

func (s *DBProfileStore) AppendMedia(ctx context.Context, userID uint64, video bool, url string) (*models.PerformerProfile, error) {
	profile, err := s.Users.AppendMedia(ctx, userID, video, url)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.ErrNotPerformer
	}
	return profile, err
}

func (s *DBProfileStore) FollowCounts(ctx context.Context, userID uint64) (int64, int64, error) {
	followers, err := s.Follows.GetFollowerCount(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	following, err := s.Follows.GetFollowingCount(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	return followers, following, nil
}

type DBStreamStore struct {
	Users      *dao.Users
	Performers *dao.Performers
	Streams    *dao.Streams
	Tips       *dao.Tips
	Follows    *dao.Follows
	Analytics  *dao.AnalyticsDAO
}

var _ StreamStore = (*DBStreamStore)(nil)

func (s *DBStreamStore) ListPerformers(ctx context.Context, filter dao.PerformerFilter) ([]*dao.PerformerRow, error) {
	return s.Performers.List(ctx, filter)
}

func (s *DBStreamStore) TopPerformers(ctx context.Context, limit int) ([]*models.Users, error) {
	return s.Performers.TopByEarnings(ctx, limit)
}

func (s *DBStreamStore) LiveStats(ctx context.Context) (int64, int64, error) {
	live, err := s.Streams.CountLive(ctx)
	if err != nil {
		return 0, 0, err
	}
	viewers, err := s.Streams.SumCurrentViewers(ctx)
	if err != nil {
		return 0, 0, err
	}
	return live, viewers, nil
}

func (s *DBStreamStore) TipsByCurrency(ctx context.Context, day time.Time) (map[models.Currency]float64, error) {
	from := models.Day(day)
	return s.Tips.SumByCurrencyBetween(ctx, from, from.AddDate(0, 0, 1))
}

func (s *DBStreamStore) TotalUsers(ctx context.Context) (int64, error) {
	return s.Users.Count(ctx)
}

func (s *DBStreamStore) DayTotals(ctx context.Context, day time.Time, today bool) (*models.Analytics, error) {
	from := models.Day(day)
	to := from.AddDate(0, 0, 1)

	row := &models.Analytics{Date: datatypes.Date(from), UserID: models.GlobalScope}
	var err error
	if row.TotalViews, err = s.Streams.SumViewsStartedBetween(ctx, from, to); err != nil {
		return nil, err
	}
	if today {
		current, err := s.Streams.SumCurrentViewers(ctx)
		if err != nil {
			return nil, err
		}
		row.TotalViews += current
		row.UniqueViewers = current
	}
	if row.TotalTips, err = s.Tips.SumBetween(ctx, from, to); err != nil {
		return nil, err
	}
	if row.NewFollowers, err = s.Follows.CountNewBetween(ctx, from, to); err != nil {
		return nil, err
	}
	if row.NewUsers, err = s.Users.CountBetween(ctx, from, to); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *DBStreamStore) PerformerDayTotals(ctx context.Context, day time.Time) ([]*models.Analytics, error) {
	from := models.Day(day)
	to := from.AddDate(0, 0, 1)

	ids, err := s.Performers.ListUserIDs(ctx)
	if err != nil {
		return nil, err
	}
	views, err := s.Streams.ViewsByPerformerBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	tips, err := s.Tips.SumByPerformerBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	followers, err := s.Follows.NewFollowersByUserBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	rows := make([]*models.Analytics, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, &models.Analytics{
			Date:         datatypes.Date(from),
			UserID:       id,
			TotalViews:   views[id],
			TotalTips:    tips[id],
			NewFollowers: followers[id],
		})
	}
	return rows, nil
}

func (s *DBStreamStore) SaveDaily(ctx context.Context, row *models.Analytics) error {
	return s.Analytics.Upsert(ctx, row)
}

func (s *DBStreamStore) DailyRange(ctx context.Context, scope uint64, from, to time.Time) ([]*models.Analytics, error) {
	return s.Analytics.Range(ctx, scope, from, to)
}
