package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

type Category string

const (
	CategoryCamGirls   Category = "CAM_GIRLS"
	CategoryCamBoys    Category = "CAM_BOYS"
	CategoryCouples    Category = "COUPLES"
	CategoryTrans      Category = "TRANS"
	CategoryMature     Category = "MATURE"
	CategoryFetishBDSM Category = "FETISH_BDSM"
)

var Categories = []Category{
	CategoryCamGirls, CategoryCamBoys, CategoryCouples,
	CategoryTrans, CategoryMature, CategoryFetishBDSM,
}

// ParseCategory 大小写不敏感
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if strings.EqualFold(string(c), s) {
			return c, true
		}
	}
	return "", false
}

type Gender string

const (
	GenderFemale    Gender = "FEMALE"
	GenderMale      Gender = "MALE"
	GenderCouple    Gender = "COUPLE"
	GenderTrans     Gender = "TRANS"
	GenderNonBinary Gender = "NON_BINARY"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderFemale, GenderMale, GenderCouple, GenderTrans, GenderNonBinary:
		return true
	}
	return false
}

type PerformerProfile struct {
	ID              uint64                      `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	UserID          uint64                      `gorm:"column:user_id;not null;uniqueIndex" json:"userId"`
	StageName       string                      `gorm:"column:stage_name;type:varchar(64);not null" json:"stageName"`
	Age             int                         `gorm:"column:age" json:"age"`
	Gender          Gender                      `gorm:"column:gender;type:varchar(16)" json:"gender,omitempty"`
	Category        Category                    `gorm:"column:category;type:varchar(32);not null;index" json:"category"`
	Tags            datatypes.JSONSlice[string] `gorm:"column:tags" json:"tags"`
	Languages       datatypes.JSONSlice[string] `gorm:"column:languages" json:"languages"`
	Photos          datatypes.JSONSlice[string] `gorm:"column:photos" json:"photos"`
	Videos          datatypes.JSONSlice[string] `gorm:"column:videos" json:"videos"`
	ProfilePhoto    string                      `gorm:"column:profile_photo;type:varchar(512)" json:"profilePhoto,omitempty"`
	CoverPhoto      string                      `gorm:"column:cover_photo;type:varchar(512)" json:"coverPhoto,omitempty"`
	Location        string                      `gorm:"column:location;type:varchar(128)" json:"location,omitempty"`
	Bio             string                      `gorm:"column:bio;type:text" json:"bio,omitempty"`
	PrivateShowRate float64                     `gorm:"column:private_show_rate;not null;default:0" json:"privateShowRate"`
	TipGoal         float64                     `gorm:"column:tip_goal;not null;default:0" json:"tipGoal"`
	TotalViews      int64                       `gorm:"column:total_views;not null;default:0" json:"totalViews"`
	TotalEarnings   float64                     `gorm:"column:total_earnings;not null;default:0" json:"totalEarnings"`
	Rating          float64                     `gorm:"column:rating;not null;default:0" json:"rating"`
	RatingCount     int64                       `gorm:"column:rating_count;not null;default:0" json:"ratingCount"`
	IsVerified      bool                        `gorm:"column:is_verified;not null;default:false" json:"isVerified"`
	CreatedAt       time.Time                   `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt       time.Time                   `gorm:"column:updated_at" json:"updatedAt"`
}

func (PerformerProfile) TableName() string {
	return "performer_profiles"
}

// HasTag 子串匹配，大小写不敏感
func (p *PerformerProfile) HasTag(needle string) bool {
	needle = strings.ToLower(needle)
	for _, t := range p.Tags {
		if strings.Contains(strings.ToLower(t), needle) {
			return true
		}
	}
	return false
}
