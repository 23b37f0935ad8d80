package service

import (
	"HotCams/pkg/socket"
	"HotCams/types"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTipRecord(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()
	performer := mustCreate(t, e, performerReq("vera", ethAddr1, "CAM_GIRLS"))
	viewer := mustCreate(t, e, viewerReq("will", ethAddr2))
	started, err := e.streamSvc.Start(ctx, performer, &types.StartStreamRequest{Title: "x"})
	require.NoError(t, err)
	sub := e.hub.Subscribe(started.ID)

	tip, err := e.tipSvc.Record(ctx, viewer, &types.RecordTipRequest{
		StreamID: started.ID, Amount: 0.25, Currency: "eth", TxHash: "0xabc", Message: "gg",
	})
	require.NoError(t, err)
	assert.Equal(t, "ethereum", tip.Chain)
	assert.Equal(t, "ETH", string(tip.Currency))

	stream, err := e.streamSvc.Get(ctx, started.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.25, stream.TotalTips)
	owner, err := e.users.FindWithProfile(ctx, performer)
	require.NoError(t, err)
	assert.Equal(t, 0.25, owner.PerformerProfile.TotalEarnings)

	var ev socket.Event
	require.NoError(t, json.Unmarshal(<-sub.C, &ev))
	assert.Equal(t, socket.EventTip, ev.Type)

	_, err = e.tipSvc.Record(ctx, viewer, &types.RecordTipRequest{
		StreamID: started.ID, Amount: 1, Currency: "ETH", TxHash: "0xabc",
	})
	assert.ErrorIs(t, err, types.ErrTipRecorded)

	tips, err := e.tipSvc.ListByStream(ctx, started.ID)
	require.NoError(t, err)
	assert.Len(t, tips, 1)
}

func TestTipValidation(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()
	performer := mustCreate(t, e, performerReq("xena", ethAddr1, "CAM_GIRLS"))
	started, err := e.streamSvc.Start(ctx, performer, &types.StartStreamRequest{Title: "x"})
	require.NoError(t, err)

	cases := []struct {
		name string
		req  types.RecordTipRequest
		want error
	}{
		{"zero amount", types.RecordTipRequest{StreamID: started.ID, Amount: 0, Currency: "ETH", TxHash: "0x1"}, types.ErrInvalidAmount},
		{"negative amount", types.RecordTipRequest{StreamID: started.ID, Amount: -1, Currency: "ETH", TxHash: "0x1"}, types.ErrInvalidAmount},
		{"unknown currency", types.RecordTipRequest{StreamID: started.ID, Amount: 1, Currency: "DOGE", TxHash: "0x1"}, types.ErrInvalidCurrency},
		{"chain mismatch", types.RecordTipRequest{StreamID: started.ID, Amount: 1, Currency: "SOL", Chain: "ethereum", TxHash: "0x1"}, types.ErrInvalidCurrency},
		{"missing hash", types.RecordTipRequest{StreamID: started.ID, Amount: 1, Currency: "ETH"}, types.ErrTxHashRequired},
		{"unknown stream", types.RecordTipRequest{StreamID: 1, Amount: 1, Currency: "ETH", TxHash: "0x1"}, types.ErrStreamNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.tipSvc.Record(ctx, 1, &tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestTipChainInference(t *testing.T) {
	c, err := tipChain("USDC", "", "5VERv8NMvzbJMEkV8xnrLkEaWRtSz9CosKDYjCJjBRnbJLgp8uirBgmQpjKhoR4tjF3ZpRzrFmBV6UjKdiSZkQUW")
	require.NoError(t, err)
	assert.Equal(t, "solana", c)
	c, err = tipChain("USDC", "", "0x"+strings.Repeat("a", 64))
	require.NoError(t, err)
	assert.Equal(t, "ethereum", c)
	c, err = tipChain("SOL", "Solana", "x")
	require.NoError(t, err)
	assert.Equal(t, "solana", c)
	_, err = tipChain("USDC", "bitcoin", "x")
	assert.Error(t, err)
}

func TestChatSend(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()
	performer := mustCreate(t, e, performerReq("yara", ethAddr1, "CAM_GIRLS"))
	viewer := mustCreate(t, e, viewerReq("zed", ethAddr2))
	started, err := e.streamSvc.Start(ctx, performer, &types.StartStreamRequest{Title: "x"})
	require.NoError(t, err)

	_, err = e.chatSvc.Send(ctx, viewer, started.ID, "   ")
	assert.ErrorIs(t, err, types.ErrMessageRequired)
	_, err = e.chatSvc.Send(ctx, viewer, started.ID, strings.Repeat("é", MaxChatLength+1))
	assert.ErrorIs(t, err, types.ErrMessageTooLong)

	msg, err := e.chatSvc.Send(ctx, viewer, started.ID, strings.Repeat("é", MaxChatLength))
	require.NoError(t, err)
	assert.False(t, msg.IsVip)
	assert.Equal(t, "zed", msg.Username)

	_, err = e.tipSvc.Record(ctx, viewer, &types.RecordTipRequest{
		StreamID: started.ID, Amount: 0.05, Currency: "ETH", TxHash: "0xvip",
	})
	require.NoError(t, err)
	vip, err := e.chatSvc.Send(ctx, viewer, started.ID, "thanks")
	require.NoError(t, err)
	assert.True(t, vip.IsVip)

	history, err := e.chatSvc.List(ctx, started.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "thanks", history[1].Message)

	_, err = e.streamSvc.Stop(ctx, performer, started.ID)
	require.NoError(t, err)
	_, err = e.chatSvc.Send(ctx, viewer, started.ID, "late")
	assert.ErrorIs(t, err, types.ErrStreamNotLive)
}

func TestFollow(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()
	a := mustCreate(t, e, viewerReq("abe", ethAddr1))
	b := mustCreate(t, e, performerReq("bea", ethAddr2, "COUPLES"))

	_, err := e.followSvc.Follow(ctx, a, a)
	assert.ErrorIs(t, err, types.ErrFollowSelf)
	_, err = e.followSvc.Follow(ctx, a, 404)
	assert.ErrorIs(t, err, types.ErrUserNotFound)

	resp, err := e.followSvc.Follow(ctx, a, b)
	require.NoError(t, err)
	assert.True(t, resp.Following)
	assert.Equal(t, int64(1), resp.FollowerCount)

	resp, err = e.followSvc.Follow(ctx, a, b)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.FollowerCount)

	counts, err := e.followSvc.Counts(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts.FollowingCount)

	resp, err = e.followSvc.Unfollow(ctx, a, b)
	require.NoError(t, err)
	assert.False(t, resp.Following)
	assert.Equal(t, int64(0), resp.FollowerCount)

	resp, err = e.followSvc.Follow(ctx, a, b)
	require.NoError(t, err)
	assert.True(t, resp.Following)

	user, err := e.userSvc.GetByAddress(ctx, ethAddr2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.FollowerCount)
}
