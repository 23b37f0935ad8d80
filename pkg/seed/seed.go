// Package seed 写入本地演示数据：主播、观众、在播直播间、关注、打赏、聊天与近 7 天统计
package seed

import (
	"HotCams/models"
	"HotCams/pkg/snowflake"
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrSeeded = errors.New("database already seeded")

type performer struct {
	username  string
	stageName string
	age       int
	gender    models.Gender
	category  models.Category
	bio       string
	tags      []string
	languages []string
	rate      float64
	location  string
}

var performers = []performer{
	{"sophia_rose", "Sophia Rose", 24, models.GenderFemale, models.CategoryCamGirls,
		"Playful and chatty, always up for a conversation.",
		[]string{"blonde", "interactive", "music"}, []string{"English", "Spanish"}, 6.5, "Los Angeles, CA"},
	{"maya_wild", "Maya Wild", 26, models.GenderFemale, models.CategoryCamGirls,
		"Dancer and traveller sharing stories from the road.",
		[]string{"brunette", "dancing", "travel"}, []string{"English", "French"}, 8, "Miami, FL"},
	{"alex_steel", "Alex Steel", 28, models.GenderMale, models.CategoryCamBoys,
		"Fitness coach streaming workouts and Q&A.",
		[]string{"athletic", "fitness", "interactive"}, []string{"English"}, 7.5, "New York, NY"},
	{"emma_jake", "Emma & Jake", 25, models.GenderCouple, models.CategoryCouples,
		"Real couple hanging out with the chat.",
		[]string{"couple", "interactive", "games"}, []string{"English"}, 12, "Austin, TX"},
	{"luna_goddess", "Luna Goddess", 23, models.GenderTrans, models.CategoryTrans,
		"Cosplay, makeup and late night talks.",
		[]string{"cosplay", "makeup", "sweet"}, []string{"English", "Portuguese"}, 9, "San Francisco, CA"},
	{"victoria_classic", "Victoria", 42, models.GenderFemale, models.CategoryMature,
		"Wine lover with a taste for good conversation.",
		[]string{"classy", "wine", "roleplay"}, []string{"English", "Italian"}, 10, "Las Vegas, NV"},
}

var viewers = []string{"john_viewer", "mike_fan", "david_user", "chris_vip", "alex_viewer"}

var chatLines = []string{
	"Hey! 👋",
	"Great stream today ✨",
	"Love the music 🎶",
	"Having a great time here! 🎉",
	"Thanks for the show! 🙏",
	"Best stream on the site 👑",
	"You made my day ☀️",
}

var tipLines = []string{
	"Keep it up! ⭐",
	"Thanks for the great show! 🎉",
	"Love your energy! ✨",
	"You're the best! 👑",
}

type Summary struct {
	Performers  int
	Viewers     int
	LiveStreams int
	Tips        int
	Messages    int
}

// Seed 在一个事务内写入全部演示数据；已存在演示账号时返回 ErrSeeded
func Seed(ctx context.Context, db *gorm.DB, now time.Time) (*Summary, error) {
	var n int64
	if err := db.WithContext(ctx).Model(&models.Users{}).
		Where("username = ?", performers[0].username).Count(&n).Error; err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, ErrSeeded
	}

	s := &seeder{
		rnd: rand.New(rand.NewPCG(uint64(now.Unix()), 7)),
		now: now.UTC(),
	}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.run(tx)
	})
	if err != nil {
		return nil, err
	}
	return &s.sum, nil
}

type seeder struct {
	rnd *rand.Rand
	now time.Time
	sum Summary
}

func (s *seeder) money(base, span float64) float64 {
	return math.Round((base+s.rnd.Float64()*span)*100) / 100
}

func wallet(i int) *string {
	addr := fmt.Sprintf("0x%040x", 0xa11ce000+i)
	return &addr
}

func (s *seeder) run(tx *gorm.DB) error {
	var stars []*models.Users
	for i, p := range performers {
		dob := time.Date(s.now.Year()-p.age-1, time.January, 1, 0, 0, 0, 0, time.UTC)
		uid := snowflake.GenUint64()
		u := &models.Users{
			ID:                uid,
			Username:          p.username,
			DisplayName:       p.stageName,
			Role:              models.RolePerformer,
			IsVerified:        true,
			DateOfBirth:       &dob,
			Bio:               p.bio,
			Location:          p.location,
			EthAddress:        wallet(i),
			CanStream:         true,
			StreamingApproved: true,
			PerformerProfile: &models.PerformerProfile{
				ID:              snowflake.GenUint64(),
				UserID:          uid,
				StageName:       p.stageName,
				Age:             p.age,
				Gender:          p.gender,
				Category:        p.category,
				Tags:            p.tags,
				Languages:       p.languages,
				Bio:             p.bio,
				Location:        p.location,
				PrivateShowRate: p.rate,
				TipGoal:         500,
				TotalEarnings:   s.money(10000, 50000),
				TotalViews:      50000 + s.rnd.Int64N(500000),
				Rating:          math.Round((4.2+s.rnd.Float64()*0.8)*10) / 10,
				RatingCount:     100 + s.rnd.Int64N(500),
				IsVerified:      true,
			},
		}
		if err := tx.Create(u).Error; err != nil {
			return fmt.Errorf("create performer %s: %w", p.username, err)
		}
		stars = append(stars, u)
	}
	s.sum.Performers = len(stars)

	var fans []*models.Users
	for i, name := range viewers {
		dob := time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC)
		u := &models.Users{
			ID:          snowflake.GenUint64(),
			Username:    name,
			DisplayName: name,
			Role:        models.RoleViewer,
			DateOfBirth: &dob,
			EthAddress:  wallet(len(performers) + i),
		}
		if err := tx.Create(u).Error; err != nil {
			return fmt.Errorf("create viewer %s: %w", name, err)
		}
		fans = append(fans, u)
	}
	s.sum.Viewers = len(fans)

	// 每个观众随机关注 1~3 位主播
	for _, fan := range fans {
		for _, i := range s.rnd.Perm(len(stars))[:1+s.rnd.IntN(3)] {
			f := &models.Follow{FollowerID: fan.ID, FollowingID: stars[i].ID, Status: models.FollowStatusActive}
			if err := tx.Create(f).Error; err != nil {
				return fmt.Errorf("create follow: %w", err)
			}
		}
	}

	for i, star := range stars {
		// 偶数位主播在播，保证演示环境始终有直播间
		if i%2 == 1 && s.rnd.Float64() < 0.5 {
			continue
		}
		if err := s.liveStream(tx, star, performers[i], fans); err != nil {
			return err
		}
	}

	return s.history(tx, stars)
}

func (s *seeder) liveStream(tx *gorm.DB, star *models.Users, p performer, fans []*models.Users) error {
	started := s.now.Add(-time.Duration(s.rnd.Int64N(int64(time.Hour))))
	key := fmt.Sprintf("live_%s_%d", p.username, s.now.UnixMilli())
	stream := &models.Stream{
		ID:             snowflake.GenUint64(),
		UserID:         star.ID,
		Title:          p.stageName + " Live Show",
		Description:    fmt.Sprintf("Come chat with %s!", p.stageName),
		Category:       p.category,
		Tags:           p.tags,
		IsLive:         true,
		CurrentViewers: 50 + s.rnd.Int64N(500),
		TotalViews:     200 + s.rnd.Int64N(2000),
		TipGoal:        500,
		StreamKey:      key,
		PlaybackID:     fmt.Sprintf("pb_%x", s.rnd.Uint32()),
		RtmpURL:        "rtmp://rtmp.livepeer.com/live/" + key,
		StartedAt:      &started,
	}
	if err := tx.Create(stream).Error; err != nil {
		return fmt.Errorf("create stream: %w", err)
	}
	if err := tx.Model(&models.Users{}).Where("id = ?", star.ID).Update("is_online", true).Error; err != nil {
		return err
	}
	s.sum.LiveStreams++

	var total float64
	for range 2 + s.rnd.IntN(5) {
		tip := &models.Tip{
			ID:         snowflake.GenUint64(),
			FromUserID: fans[s.rnd.IntN(len(fans))].ID,
			StreamID:   stream.ID,
			Amount:     s.money(0.01, 0.5),
			Currency:   models.CurrencyETH,
			Chain:      "ethereum",
			Message:    tipLines[s.rnd.IntN(len(tipLines))],
			TxHash:     fmt.Sprintf("0x%016x%016x%016x%016x", s.rnd.Uint64(), s.rnd.Uint64(), s.rnd.Uint64(), s.rnd.Uint64()),
			CreatedAt:  started.Add(time.Duration(s.rnd.Int64N(int64(s.now.Sub(started) + 1)))),
		}
		if err := tx.Create(tip).Error; err != nil {
			return fmt.Errorf("create tip: %w", err)
		}
		total += tip.Amount
		s.sum.Tips++
	}
	if err := tx.Model(stream).Update("total_tips", math.Round(total*1e6)/1e6).Error; err != nil {
		return err
	}

	for range 10 + s.rnd.IntN(20) {
		msg := &models.ChatMessage{
			ID:       snowflake.GenUint64(),
			UserID:   fans[s.rnd.IntN(len(fans))].ID,
			StreamID: stream.ID,
			Message:  chatLines[s.rnd.IntN(len(chatLines))],
			IsVip:    s.rnd.Float64() > 0.8,
		}
		if err := tx.Create(msg).Error; err != nil {
			return fmt.Errorf("create chat: %w", err)
		}
		s.sum.Messages++
	}
	return nil
}

// history 近 7 天每位主播的统计行
func (s *seeder) history(tx *gorm.DB, stars []*models.Users) error {
	today := models.Day(s.now)
	for i := range 7 {
		day := today.AddDate(0, 0, -i)
		for _, star := range stars {
			row := &models.Analytics{
				Date:          datatypes.Date(day),
				UserID:        star.ID,
				TotalViews:    100 + s.rnd.Int64N(1000),
				UniqueViewers: 50 + s.rnd.Int64N(500),
				TotalTips:     s.money(20, 200),
				NewFollowers:  1 + s.rnd.Int64N(20),
			}
			if err := tx.Create(row).Error; err != nil {
				return fmt.Errorf("create analytics: %w", err)
			}
		}
	}
	return nil
}
