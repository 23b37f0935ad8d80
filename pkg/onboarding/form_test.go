package onboarding

import (
	"testing"
	"time"

	"HotCams/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func TestAge(t *testing.T) {
	cases := []struct {
		dob  string
		want int
	}{
		{"2006-06-15", 18},
		{"2006-06-16", 17},
		{"2006-07-01", 17},
		{"2006-05-31", 18},
		{"1990-12-31", 33},
	}
	for _, c := range cases {
		dob, err := ParseDate(c.dob)
		require.NoError(t, err)
		assert.Equal(t, c.want, Age(dob, now), c.dob)
	}
}

func validForm() *Form {
	return &Form{
		WalletAddress: "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed",
		Username:      "viewer1",
		DateOfBirth:   "1995-01-01",
		Role:          models.RoleViewer,
	}
}

func TestValidate(t *testing.T) {
	f := validForm()
	assert.NoError(t, f.Validate(now))

	f.DateOfBirth = "2007-01-01"
	assert.ErrorIs(t, f.Validate(now), ErrUnderage)

	f = validForm()
	f.Username = "  "
	assert.ErrorIs(t, f.Validate(now), ErrUsernameRequired)

	f = validForm()
	f.DateOfBirth = "01/02/1990"
	assert.ErrorIs(t, f.Validate(now), ErrBirthdayInvalid)

	f = validForm()
	f.WalletAddress = ""
	assert.ErrorIs(t, f.Validate(now), ErrWalletRequired)

	f = validForm()
	f.Role = models.RoleAdmin
	assert.ErrorIs(t, f.Validate(now), ErrRoleInvalid)
}

func TestValidatePerformer(t *testing.T) {
	f := validForm()
	f.Role = models.RolePerformer
	assert.ErrorIs(t, f.Validate(now), ErrStageNameRequired)

	f.StageName = "Star"
	assert.ErrorIs(t, f.Validate(now), ErrGenderRequired)

	f.Gender = models.GenderFemale
	assert.ErrorIs(t, f.Validate(now), ErrCategoryRequired)

	f.Category = "cam_girls"
	assert.NoError(t, f.Validate(now))
}

func TestSteps(t *testing.T) {
	assert.Equal(t, []Step{StepIdentity, StepRole, StepReview}, Steps(models.RoleViewer))
	assert.Len(t, Steps(models.RolePerformer), 4)

	f := validForm()
	f.DateOfBirth = "2010-01-01"
	assert.ErrorIs(t, f.CanAdvance(StepIdentity, now), ErrUnderage)
	assert.NoError(t, f.CanAdvance(StepPerformer, now))
}

func TestRequest(t *testing.T) {
	f := validForm()
	req := f.Request()
	assert.Equal(t, "viewer1", req.DisplayName)
	assert.Equal(t, f.WalletAddress, req.EthAddress)
	assert.Empty(t, req.SolAddress)
	assert.Nil(t, req.PerformerProfile)

	f.WalletAddress = "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin"
	f.Role = models.RolePerformer
	f.StageName = " Star "
	f.Category = models.CategoryCouples
	req = f.Request()
	assert.Equal(t, f.WalletAddress, req.SolAddress)
	require.NotNil(t, req.PerformerProfile)
	assert.Equal(t, "Star", req.PerformerProfile.StageName)
	assert.Equal(t, "COUPLES", req.PerformerProfile.Category)
}
