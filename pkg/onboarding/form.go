package onboarding

import (
	"errors"
	"strings"
	"time"

	"HotCams/models"
	"HotCams/pkg/chain"
	"HotCams/types"
)

const (
	MinimumAge = 18
	DateLayout = "2006-01-02"
)

var (
	ErrUsernameRequired  = errors.New(types.MsgUsernameRequired)
	ErrBirthdayRequired  = errors.New(types.MsgBirthdayRequired)
	ErrBirthdayInvalid   = errors.New(types.MsgBirthdayInvalid)
	ErrUnderage          = errors.New(types.MsgUnderage)
	ErrRoleInvalid       = errors.New(types.MsgRoleInvalid)
	ErrStageNameRequired = errors.New(types.MsgStageNameRequired)
	ErrGenderRequired    = errors.New(types.MsgGenderRequired)
	ErrCategoryRequired  = errors.New(types.MsgCategoryRequired)
	ErrWalletRequired    = errors.New(types.MsgWalletRequired)
)

type Step int

const (
	StepIdentity Step = iota
	StepRole
	StepPerformer
	StepReview
)

func (s Step) String() string {
	switch s {
	case StepIdentity:
		return "identity"
	case StepRole:
		return "role"
	case StepPerformer:
		return "performer"
	case StepReview:
		return "review"
	}
	return "unknown"
}

// Steps 观众跳过主播资料一步
func Steps(role models.Role) []Step {
	if role == models.RolePerformer {
		return []Step{StepIdentity, StepRole, StepPerformer, StepReview}
	}
	return []Step{StepIdentity, StepRole, StepReview}
}

// Age 按公历年份差计算，当年生日未到减一
func Age(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}

func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrBirthdayRequired
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		// 兼容客户端直接提交 ISO 时间
		if t, err = time.Parse(time.RFC3339, s); err != nil {
			return time.Time{}, ErrBirthdayInvalid
		}
	}
	return t, nil
}

// CheckBirthday 解析出生日期并校验年龄
func CheckBirthday(s string, now time.Time) (time.Time, error) {
	dob, err := ParseDate(s)
	if err != nil {
		return time.Time{}, err
	}
	if Age(dob, now) < MinimumAge {
		return time.Time{}, ErrUnderage
	}
	return dob, nil
}

// Form 资料填写表单
type Form struct {
	WalletAddress string

	Username    string
	DisplayName string
	Email       string
	Bio         string
	Location    string
	DateOfBirth string

	Role models.Role

	StageName       string
	Gender          models.Gender
	Category        models.Category
	Tags            []string
	Languages       []string
	PrivateShowRate float64
}

// CanAdvance 校验当前步骤需要的字段
func (f *Form) CanAdvance(step Step, now time.Time) error {
	switch step {
	case StepIdentity:
		if strings.TrimSpace(f.Username) == "" {
			return ErrUsernameRequired
		}
		_, err := CheckBirthday(f.DateOfBirth, now)
		return err
	case StepRole:
		if f.Role != models.RoleViewer && f.Role != models.RolePerformer {
			return ErrRoleInvalid
		}
	case StepPerformer:
		if f.Role != models.RolePerformer {
			return nil
		}
		if strings.TrimSpace(f.StageName) == "" {
			return ErrStageNameRequired
		}
		if !f.Gender.Valid() {
			return ErrGenderRequired
		}
		if _, ok := models.ParseCategory(string(f.Category)); !ok {
			return ErrCategoryRequired
		}
	case StepReview:
		return f.Validate(now)
	}
	return nil
}

// Validate 提交前的完整校验，不发起任何网络请求
func (f *Form) Validate(now time.Time) error {
	if strings.TrimSpace(f.WalletAddress) == "" {
		return ErrWalletRequired
	}
	for _, step := range []Step{StepIdentity, StepRole, StepPerformer} {
		if err := f.CanAdvance(step, now); err != nil {
			return err
		}
	}
	return nil
}

// Request 生成 POST /api/user 请求体
func (f *Form) Request() *types.CreateUserRequest {
	req := &types.CreateUserRequest{
		Username:    strings.TrimSpace(f.Username),
		DisplayName: strings.TrimSpace(f.DisplayName),
		Email:       strings.TrimSpace(f.Email),
		Bio:         f.Bio,
		Location:    f.Location,
		DateOfBirth: strings.TrimSpace(f.DateOfBirth),
		Role:        string(f.Role),
	}
	if req.DisplayName == "" {
		req.DisplayName = req.Username
	}
	if chain.DetectChain(f.WalletAddress) == chain.Ethereum {
		req.EthAddress = f.WalletAddress
	} else {
		req.SolAddress = f.WalletAddress
	}
	if f.Role == models.RolePerformer {
		req.PerformerProfile = &types.PerformerProfileRequest{
			StageName:       strings.TrimSpace(f.StageName),
			Gender:          string(f.Gender),
			Category:        string(f.Category),
			Tags:            f.Tags,
			Languages:       f.Languages,
			Bio:             f.Bio,
			Location:        f.Location,
			PrivateShowRate: f.PrivateShowRate,
		}
	}
	return req
}
