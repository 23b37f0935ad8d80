package service

import (
	"HotCams/pkg/hashid"
	"HotCams/pkg/socket"
	"HotCams/types"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamStartRequiresPerformer(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()
	viewer := mustCreate(t, e, viewerReq("pat", ethAddr1))

	_, err := e.streamSvc.Start(ctx, viewer, &types.StartStreamRequest{Title: "hi"})
	assert.ErrorIs(t, err, types.ErrNotPerformer)

	_, err = e.streamSvc.Start(ctx, viewer, &types.StartStreamRequest{Title: " "})
	assert.ErrorIs(t, err, types.ErrTitleRequired)

	_, err = e.streamSvc.Start(ctx, 999, &types.StartStreamRequest{Title: "hi"})
	assert.ErrorIs(t, err, types.ErrUserNotFound)
}

func TestStreamLifecycle(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()
	performer := mustCreate(t, e, performerReq("quinn", ethAddr1, "CAM_BOYS"))
	other := mustCreate(t, e, viewerReq("rae", ethAddr2))

	first, err := e.streamSvc.Start(ctx, performer, &types.StartStreamRequest{Title: "one", TipGoal: 10})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(first.StreamKey, "sk_"))
	assert.Equal(t, RtmpIngestURL, first.RtmpURL)
	id, err := hashid.Decode(first.PlaybackID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, id)
	assert.Equal(t, "CAM_BOYS", string(first.Category))

	owner, err := e.users.FindByID(ctx, performer)
	require.NoError(t, err)
	assert.True(t, owner.IsOnline)

	second, err := e.streamSvc.Start(ctx, performer, &types.StartStreamRequest{Title: "two"})
	require.NoError(t, err)
	old, err := e.streamSvc.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, old.IsLive)
	assert.NotNil(t, old.EndedAt)

	live, err := e.streamSvc.ListLive(ctx)
	require.NoError(t, err)
	require.Len(t, live, 1)
	assert.Equal(t, second.ID, live[0].ID)

	_, err = e.streamSvc.Stop(ctx, other, second.ID)
	assert.ErrorIs(t, err, types.ErrForbidden)

	stopped, err := e.streamSvc.Stop(ctx, performer, second.ID)
	require.NoError(t, err)
	assert.False(t, stopped.IsLive)
	again, err := e.streamSvc.Stop(ctx, performer, second.ID)
	require.NoError(t, err)
	assert.Equal(t, stopped.EndedAt.Unix(), again.EndedAt.Unix())

	_, err = e.streamSvc.Get(ctx, 12345)
	assert.ErrorIs(t, err, types.ErrStreamNotFound)
}

func TestStreamStopNotifiesSubscribers(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()
	performer := mustCreate(t, e, performerReq("sam", ethAddr1, "TRANS"))
	started, err := e.streamSvc.Start(ctx, performer, &types.StartStreamRequest{Title: "x"})
	require.NoError(t, err)

	sub := e.hub.Subscribe(started.ID)
	_, err = e.streamSvc.Stop(ctx, performer, started.ID)
	require.NoError(t, err)

	body, ok := <-sub.C
	require.True(t, ok)
	var ev socket.Event
	require.NoError(t, json.Unmarshal(body, &ev))
	assert.Equal(t, socket.EventStreamEnded, ev.Type)
	_, ok = <-sub.C
	assert.False(t, ok, "channel closed after stream end")
}

func TestStreamViewersNeverNegative(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()
	performer := mustCreate(t, e, performerReq("tess", ethAddr1, "MATURE"))
	started, err := e.streamSvc.Start(ctx, performer, &types.StartStreamRequest{Title: "x"})
	require.NoError(t, err)

	resp, err := e.streamSvc.Leave(ctx, started.ID, "ghost")
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.CurrentViewers)

	resp, err = e.streamSvc.Join(ctx, started.ID, "a")
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.CurrentViewers)
}

func TestStreamPresenceDeduplicatesViewers(t *testing.T) {
	mr := miniredis.RunT(t)
	e := newEnv(t, redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	ctx := context.Background()
	performer := mustCreate(t, e, performerReq("uma", ethAddr1, "FETISH_BDSM"))
	started, err := e.streamSvc.Start(ctx, performer, &types.StartStreamRequest{Title: "x"})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = e.streamSvc.Join(ctx, started.ID, "viewer-a")
		require.NoError(t, err)
	}
	resp, err := e.streamSvc.Join(ctx, started.ID, "viewer-b")
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.CurrentViewers)

	resp, err = e.streamSvc.Leave(ctx, started.ID, "viewer-a")
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.CurrentViewers)
	resp, err = e.streamSvc.Leave(ctx, started.ID, "viewer-a")
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.CurrentViewers)

	stream, err := e.streamSvc.Get(ctx, started.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stream.TotalViews)
}
