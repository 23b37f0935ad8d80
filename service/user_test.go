package service

import (
	"HotCams/models"
	"HotCams/types"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// profileStores 数据库与内存实现表现一致
func profileStores(t *testing.T) map[string]*UserService {
	return map[string]*UserService{
		"db":     newEnv(t, nil).userSvc,
		"memory": {Store: NewMemoryProfileStore()},
	}
}

func TestUserCreateAndLookup(t *testing.T) {
	for name, svc := range profileStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			mixed := "0x52908400098527886E0F7030069857D2E4169EE7"

			created, err := svc.Create(ctx, viewerReq("alice", mixed))
			require.NoError(t, err)
			assert.Equal(t, "alice", created.DisplayName)
			assert.False(t, created.CanStream)
			assert.Nil(t, created.PerformerProfile)

			got, err := svc.GetByAddress(ctx, ethAddr1)
			require.NoError(t, err)
			assert.Equal(t, created.ID, got.ID)
			assert.Equal(t, int64(0), got.FollowerCount)

			_, err = svc.GetByAddress(ctx, ethAddr2)
			assert.ErrorIs(t, err, types.ErrUserNotFound)

			_, err = svc.GetByAddress(ctx, "  ")
			assert.ErrorIs(t, err, types.ErrAddressRequired)
		})
	}
}

func TestUserCreateConflicts(t *testing.T) {
	for name, svc := range profileStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			_, err := svc.Create(ctx, viewerReq("bob", ethAddr1))
			require.NoError(t, err)

			_, err = svc.Create(ctx, viewerReq("BOB", ethAddr2))
			assert.ErrorIs(t, err, types.ErrUsernameTaken)

			_, err = svc.Create(ctx, viewerReq("bobby", ethAddr1))
			assert.ErrorIs(t, err, types.ErrWalletTaken)
		})
	}
}

func TestDBProfileStoreConflictOnInsert(t *testing.T) {
	e := newEnv(t, nil)
	store := &DBProfileStore{Users: e.users}
	ctx := context.Background()

	user := func(id uint64, name, wallet string) *models.Users {
		return &models.Users{ID: id, Username: name, Role: models.RoleViewer, EthAddress: &wallet}
	}
	require.NoError(t, store.Create(ctx, user(1, "carol", ethAddr1)))

	// 跳过服务层的预检查，直接撞唯一索引
	assert.ErrorIs(t, store.Create(ctx, user(2, "caroline", ethAddr1)), types.ErrWalletTaken)
	assert.ErrorIs(t, store.Create(ctx, user(3, "carol", ethAddr2)), types.ErrUsernameTaken)
}

func TestUserCreateValidation(t *testing.T) {
	svc := &UserService{Store: NewMemoryProfileStore()}
	ctx := context.Background()
	tomorrow18 := time.Now().UTC().AddDate(-18, 0, 1).Format(time.DateOnly)

	cases := []struct {
		name   string
		mutate func(r *types.CreateUserRequest)
		want   error
	}{
		{"missing username", func(r *types.CreateUserRequest) { r.Username = " " }, types.ErrUsernameRequired},
		{"underage by a day", func(r *types.CreateUserRequest) { r.DateOfBirth = tomorrow18 }, types.ErrUnderage},
		{"bad role", func(r *types.CreateUserRequest) { r.Role = "ADMIN" }, nil},
		{"two wallets", func(r *types.CreateUserRequest) { r.SolAddress = solAddr1 }, types.ErrOneWallet},
		{"no wallet", func(r *types.CreateUserRequest) { r.EthAddress = "" }, types.ErrOneWallet},
		{"bad eth", func(r *types.CreateUserRequest) { r.EthAddress = "0x1234" }, types.ErrInvalidWallet},
		{"bad sol", func(r *types.CreateUserRequest) { r.EthAddress, r.SolAddress = "", "0OIl" }, types.ErrInvalidWallet},
		{"performer without stage name", func(r *types.CreateUserRequest) {
			r.Role = "PERFORMER"
			r.PerformerProfile = &types.PerformerProfileRequest{Category: "COUPLES"}
		}, types.ErrStageNameRequired},
		{"performer bad category", func(r *types.CreateUserRequest) {
			r.Role = "PERFORMER"
			r.PerformerProfile = &types.PerformerProfileRequest{StageName: "x", Category: "OTHER"}
		}, types.ErrInvalidCategory},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := viewerReq("carol", ethAddr3)
			tc.mutate(req)
			_, err := svc.Create(ctx, req)
			require.Error(t, err)
			if tc.want != nil {
				assert.ErrorIs(t, err, tc.want)
			}
		})
	}
}

func TestUserCreateBirthdayBoundary(t *testing.T) {
	svc := &UserService{Store: NewMemoryProfileStore()}
	req := viewerReq("dora", ethAddr1)
	req.DateOfBirth = time.Now().UTC().AddDate(-18, 0, 0).Format(time.DateOnly)
	_, err := svc.Create(context.Background(), req)
	assert.NoError(t, err)
}

func TestUserCreatePerformer(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()

	u, err := e.userSvc.Create(ctx, performerReq("erin", ethAddr1, "cam_girls"))
	require.NoError(t, err)
	require.NotNil(t, u.PerformerProfile)
	assert.True(t, u.CanStream)
	assert.Equal(t, "CAM_GIRLS", string(u.PerformerProfile.Category))
	assert.Equal(t, 25, u.PerformerProfile.Age)
	assert.Equal(t, "Lisbon", u.PerformerProfile.Location)

	got, err := e.userSvc.GetByAddress(ctx, ethAddr1)
	require.NoError(t, err)
	require.NotNil(t, got.PerformerProfile)
	assert.Equal(t, []string{"music", "chat"}, []string(got.PerformerProfile.Tags))
}

func TestUserUpdate(t *testing.T) {
	for name, svc := range profileStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			u, err := svc.Create(ctx, performerReq("fay", ethAddr2, "MATURE"))
			require.NoError(t, err)

			bio := "new bio"
			stage := "Fay Night"
			tags := []string{"late"}
			updated, err := svc.Update(ctx, u.ID, &types.UpdateUserRequest{
				Bio: &bio,
				PerformerProfile: &types.UpdatePerformerRequest{
					StageName: &stage,
					Tags:      &tags,
				},
			})
			require.NoError(t, err)
			assert.Equal(t, bio, updated.Bio)

			got, err := svc.GetByID(ctx, u.ID)
			require.NoError(t, err)
			assert.Equal(t, bio, got.Bio)
			assert.Equal(t, stage, got.PerformerProfile.StageName)
			assert.Equal(t, []string{"late"}, []string(got.PerformerProfile.Tags))
			assert.Equal(t, "fay", got.Username)

			bad := "SPACE"
			_, err = svc.Update(ctx, u.ID, &types.UpdateUserRequest{
				PerformerProfile: &types.UpdatePerformerRequest{Category: &bad},
			})
			assert.ErrorIs(t, err, types.ErrInvalidCategory)

			_, err = svc.Update(ctx, 42, &types.UpdateUserRequest{Bio: &bio})
			assert.ErrorIs(t, err, types.ErrUserNotFound)
		})
	}
}

func TestMemoryStoreSeedsMockPerformers(t *testing.T) {
	svc := &UserService{Store: NewMemoryProfileStore()}
	got, err := svc.GetByAddress(context.Background(), "0x1234567890123456789012345678901234567890")
	require.NoError(t, err)
	assert.Equal(t, "stellarose", got.Username)
	assert.Equal(t, int64(3421), got.FollowerCount)
}
