package service

import (
	"HotCams/dao"
	"HotCams/models"
	"HotCams/pkg/snowflake"
	"HotCams/types"
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"gorm.io/datatypes"
)

// MemoryProfileStore 无数据库时的用户存储，进程内有效
type MemoryProfileStore struct {
	mu    sync.RWMutex
	users map[uint64]*models.Users
}

var _ ProfileStore = (*MemoryProfileStore)(nil)

// NewMemoryProfileStore 预置 mock 主播，钱包查询与列表数据一致
func NewMemoryProfileStore() *MemoryProfileStore {
	s := &MemoryProfileStore{users: make(map[uint64]*models.Users)}
	for _, row := range mockPerformers() {
		s.users[row.User.ID] = cloneUser(row.User)
	}
	return s
}

func cloneUser(u *models.Users) *models.Users {
	if u == nil {
		return nil
	}
	cp := *u
	if u.PerformerProfile != nil {
		p := *u.PerformerProfile
		p.Tags = append(datatypes.JSONSlice[string]{}, u.PerformerProfile.Tags...)
		p.Languages = append(datatypes.JSONSlice[string]{}, u.PerformerProfile.Languages...)
		p.Photos = append(datatypes.JSONSlice[string]{}, u.PerformerProfile.Photos...)
		p.Videos = append(datatypes.JSONSlice[string]{}, u.PerformerProfile.Videos...)
		cp.PerformerProfile = &p
	}
	return &cp
}

func matchWallet(u *models.Users, address string) bool {
	address = dao.NormalizeAddress(address)
	return (u.EthAddress != nil && *u.EthAddress == address) ||
		(u.SolAddress != nil && *u.SolAddress == address)
}

func (s *MemoryProfileStore) FindByWallet(_ context.Context, address string) (*models.Users, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if matchWallet(u, address) {
			return cloneUser(u), nil
		}
	}
	return nil, types.ErrUserNotFound
}

func (s *MemoryProfileStore) FindByID(_ context.Context, id uint64) (*models.Users, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, types.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (s *MemoryProfileStore) UsernameTaken(_ context.Context, username string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Username, username) {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryProfileStore) WalletTaken(_ context.Context, address string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if matchWallet(u, address) {
			return true, nil
		}
	}
	return false, nil
}

// Create 在写锁内复查唯一性，并发创建同名用户只有一个成功
func (s *MemoryProfileStore) Create(_ context.Context, user *models.Users) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Username, user.Username) {
			return types.ErrUsernameTaken
		}
		if matchWallet(u, user.WalletAddress()) {
			return types.ErrWalletTaken
		}
	}
	now := time.Now().UTC()
	if user.ID == 0 {
		user.ID = snowflake.GenUint64()
	}
	user.CreatedAt, user.UpdatedAt = now, now
	if p := user.PerformerProfile; p != nil {
		if p.ID == 0 {
			p.ID = snowflake.GenUint64()
		}
		p.UserID = user.ID
		p.CreatedAt, p.UpdatedAt = now, now
	}
	s.users[user.ID] = cloneUser(user)
	return nil
}

func (s *MemoryProfileStore) Save(_ context.Context, user *models.Users) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return types.ErrUserNotFound
	}
	user.UpdatedAt = time.Now().UTC()
	s.users[user.ID] = cloneUser(user)
	return nil
}

func (s *MemoryProfileStore) AppendMedia(_ context.Context, userID uint64, video bool, url string) (*models.PerformerProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, types.ErrUserNotFound
	}
	if u.PerformerProfile == nil {
		return nil, types.ErrNotPerformer
	}
	if video {
		u.PerformerProfile.Videos = append(u.PerformerProfile.Videos, url)
	} else {
		u.PerformerProfile.Photos = append(u.PerformerProfile.Photos, url)
	}
	p := *cloneUser(u).PerformerProfile
	return &p, nil
}

func (s *MemoryProfileStore) FollowCounts(_ context.Context, userID uint64) (int64, int64, error) {
	for _, row := range mockPerformers() {
		if row.User.ID == userID {
			return row.FollowerCount, 0, nil
		}
	}
	return 0, 0, nil
}

// mock 总览数据
const (
	mockTotalUsers     = 1547
	mockNewUsers       = 23
	mockLiveStreams    = 12
	mockCurrentViewers = 2849
	mockTodayTips      = 15670
)

// MockStreamStore 固定的主播与统计数据
type MockStreamStore struct {
	mu    sync.Mutex
	daily map[string]*models.Analytics
}

var _ StreamStore = (*MockStreamStore)(nil)

func NewMockStreamStore() *MockStreamStore {
	return &MockStreamStore{daily: make(map[string]*models.Analytics)}
}

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

type mockPerformer struct {
	id        uint64
	username  string
	wallet    string
	stageName string
	age       int
	location  string
	bio       string
	tags      []string
	views     int64
	rating    float64
	rate      float64
	tipGoal   float64
	earnings  float64
	viewers   int64
	tips      float64
	followers int64
	live      bool
}

var mockPerformerData = []mockPerformer{
	{
		id: 1, username: "stellarose", wallet: "0x1234567890123456789012345678901234567890",
		stageName: "Stella Rose", age: 24, location: "California, USA",
		bio:  "Interactive shows, music and dancing.",
		tags: []string{"cute", "interactive", "dancing"}, views: 145623, rating: 4.8,
		rate: 60, tipGoal: 2000, earnings: 12450, viewers: 234, tips: 1456, followers: 3421, live: true,
	},
	{
		id: 2, username: "lunavixen", wallet: "0x2345678901234567890123456789012345678901",
		stageName: "Luna Vixen", age: 26, location: "Miami, FL",
		bio:  "Late night streams and conversation.",
		tags: []string{"seductive", "mysterious", "fetish"}, views: 98765, rating: 4.9,
		rate: 80, tipGoal: 1500, earnings: 11200, viewers: 189, tips: 876, followers: 2876, live: true,
	},
	{
		id: 3, username: "cherrybomb", wallet: "0x3456789012345678901234567890123456789012",
		stageName: "Cherry Bomb", age: 22, location: "Las Vegas, NV",
		bio:  "High energy games and challenges.",
		tags: []string{"energetic", "fun", "wild"}, views: 76543, rating: 4.7,
		rate: 70, tipGoal: 3000, earnings: 9875, followers: 1987,
	},
}

// mockStartedAt mock 直播的固定开播时间
var mockStartedAt = time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC)

func mockPerformers() []*dao.PerformerRow {
	rows := make([]*dao.PerformerRow, 0, len(mockPerformerData))
	for _, m := range mockPerformerData {
		user := &models.Users{
			ID:          m.id,
			Username:    m.username,
			DisplayName: m.stageName,
			Role:        models.RolePerformer,
			IsVerified:  true,
			EthAddress:  strPtr(m.wallet),
			CanStream:   true,
			IsOnline:    m.live,
			PerformerProfile: &models.PerformerProfile{
				ID:              m.id,
				UserID:          m.id,
				StageName:       m.stageName,
				Age:             m.age,
				Gender:          models.GenderFemale,
				Category:        models.CategoryCamGirls,
				Tags:            datatypes.JSONSlice[string](m.tags),
				Languages:       datatypes.JSONSlice[string]{"English"},
				Photos:          datatypes.JSONSlice[string]{"/mock/" + m.username + "/photo-1.jpg"},
				Videos:          datatypes.JSONSlice[string]{"/mock/" + m.username + "/clip-1.mp4"},
				ProfilePhoto:    "/mock/" + m.username + "/profile.jpg",
				CoverPhoto:      "/mock/" + m.username + "/cover.jpg",
				Location:        m.location,
				Bio:             m.bio,
				PrivateShowRate: m.rate,
				TipGoal:         m.tipGoal,
				TotalViews:      m.views,
				TotalEarnings:   m.earnings,
				Rating:          m.rating,
				IsVerified:      true,
			},
		}
		row := &dao.PerformerRow{User: user, FollowerCount: m.followers}
		if m.live {
			row.Stream = &models.Stream{
				ID:             m.id,
				UserID:         m.id,
				Title:          m.stageName + " live",
				Category:       models.CategoryCamGirls,
				IsLive:         true,
				CurrentViewers: m.viewers,
				TotalViews:     m.viewers,
				TotalTips:      m.tips,
				TipGoal:        m.tipGoal,
				PlaybackID:     "mock-" + m.username,
				StartedAt:      timePtr(mockStartedAt),
			}
		}
		rows = append(rows, row)
	}
	return rows
}

var mockTopPerformers = []struct {
	name     string
	earnings float64
	views    int64
}{
	{"StellaRose", 12450, 89234},
	{"LunaVixen", 11200, 76543},
	{"CherryBomb", 9875, 65432},
	{"AngelDream", 8760, 54321},
	{"RedVelvet", 7650, 43210},
}

func (m *MockStreamStore) ListPerformers(_ context.Context, filter dao.PerformerFilter) ([]*dao.PerformerRow, error) {
	rows := make([]*dao.PerformerRow, 0, len(mockPerformerData))
	for _, row := range mockPerformers() {
		if filter.Category != "" && row.User.PerformerProfile.Category != filter.Category {
			continue
		}
		if filter.LiveOnly && !row.IsLive() {
			continue
		}
		rows = append(rows, row)
	}
	dao.SortPerformers(rows)
	return rows, nil
}

func (m *MockStreamStore) TopPerformers(_ context.Context, limit int) ([]*models.Users, error) {
	users := make([]*models.Users, 0, len(mockTopPerformers))
	for i, t := range mockTopPerformers {
		if limit > 0 && i >= limit {
			break
		}
		users = append(users, &models.Users{
			ID:       uint64(i + 1),
			Username: strings.ToLower(t.name),
			Role:     models.RolePerformer,
			PerformerProfile: &models.PerformerProfile{
				UserID:        uint64(i + 1),
				StageName:     t.name,
				Category:      models.CategoryCamGirls,
				TotalEarnings: t.earnings,
				TotalViews:    t.views,
			},
		})
	}
	return users, nil
}

func (m *MockStreamStore) LiveStats(context.Context) (int64, int64, error) {
	return mockLiveStreams, mockCurrentViewers, nil
}

// TipsByCurrency mock 数据只有名义总额
func (m *MockStreamStore) TipsByCurrency(context.Context, time.Time) (map[models.Currency]float64, error) {
	return nil, nil
}

func (m *MockStreamStore) TotalUsers(context.Context) (int64, error) {
	return mockTotalUsers, nil
}

// mockDay 以日期为种子生成稳定的历史数据
func mockDay(day time.Time) *models.Analytics {
	day = models.Day(day)
	n := day.Unix() / 86400
	return &models.Analytics{
		Date:          datatypes.Date(day),
		UserID:        models.GlobalScope,
		TotalViews:    500 + (n*37)%1000,
		UniqueViewers: 200 + (n*13)%400,
		TotalTips:     float64(1000 + (n*131)%5000),
		NewFollowers:  20 + (n*11)%80,
		NewUsers:      10 + (n*7)%50,
	}
}

func (m *MockStreamStore) DayTotals(_ context.Context, day time.Time, today bool) (*models.Analytics, error) {
	row := mockDay(day)
	if today {
		row.TotalTips = mockTodayTips
		row.NewUsers = mockNewUsers
		row.UniqueViewers = mockCurrentViewers
	}
	return row, nil
}

func (m *MockStreamStore) PerformerDayTotals(_ context.Context, day time.Time) ([]*models.Analytics, error) {
	base := mockDay(day)
	rows := make([]*models.Analytics, 0, len(mockPerformerData))
	for i, p := range mockPerformerData {
		share := int64(len(mockPerformerData) - i)
		rows = append(rows, &models.Analytics{
			Date:         base.Date,
			UserID:       p.id,
			TotalViews:   base.TotalViews * share / 6,
			TotalTips:    base.TotalTips * float64(share) / 6,
			NewFollowers: base.NewFollowers * share / 6,
		})
	}
	return rows, nil
}

func (m *MockStreamStore) SaveDaily(_ context.Context, row *models.Analytics) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *row
	m.daily[m.key(row.UserID, time.Time(row.Date))] = &cp
	return nil
}

// DailyRange 未保存过的日期用生成数据补齐
func (m *MockStreamStore) DailyRange(_ context.Context, scope uint64, from, to time.Time) ([]*models.Analytics, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var rows []*models.Analytics
	for day := models.Day(from); !day.After(models.Day(to)); day = day.AddDate(0, 0, 1) {
		if row, ok := m.daily[m.key(scope, day)]; ok {
			cp := *row
			rows = append(rows, &cp)
			continue
		}
		if scope == models.GlobalScope {
			rows = append(rows, mockDay(day))
		}
	}
	return rows, nil
}

func (m *MockStreamStore) key(scope uint64, day time.Time) string {
	return fmt.Sprintf("%s:%d", models.Day(day).Format(time.DateOnly), scope)
}
