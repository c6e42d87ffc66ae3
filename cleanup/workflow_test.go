package cleanup

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/devguild/devlin/leaderboard"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const invoker discord.UserID = 42

func workflowRoster() *FakeRoster {
	return NewFakeRoster(
		member(1, "one", oldJoin),
		member(2, "two", oldJoin),
		member(3, "three", oldJoin),
	)
}

func workflowLeaderboard() *FakeLeaderboard {
	return &FakeLeaderboard{Entries: []leaderboard.Entry{entry("1", 5), entry("2", 20), entry("3", 3)}}
}

func TestRunConfirm(t *testing.T) {
	roster := workflowRoster()
	s := newTestService(t, workflowLeaderboard())

	op := &FakeOperator{InvokerID: invoker, Presses: []Press{{User: invoker, Action: ActionConfirm}}}

	o, err := s.Run(context.Background(), op, roster)
	require.NoError(t, err)
	require.NotNil(t, o)

	assert.Equal(t, Outcome{Succeeded: 2}, *o)
	assert.Equal(t, []discord.UserID{1, 3}, roster.Kicked)
	assert.Equal(t, 1, op.Held)
	require.Len(t, op.Finished, 1)
	assert.Contains(t, op.Finished[0], "Kicked: 2 members")

	require.Len(t, op.Views, 1)
	require.NotNil(t, op.Views[0])
	assert.Equal(t, invoker, op.Views[0].Invoker)
}

func TestRunCancel(t *testing.T) {
	roster := workflowRoster()
	s := newTestService(t, workflowLeaderboard())

	op := &FakeOperator{InvokerID: invoker, Presses: []Press{{User: invoker, Action: ActionCancel}}}

	o, err := s.Run(context.Background(), op, roster)
	require.NoError(t, err)
	assert.Nil(t, o)
	assert.Equal(t, []string{MessageCancelled}, op.Closed)
	assert.Empty(t, roster.Kicked)
	assert.NotContains(t, roster.Trace(), "Kick")
	assert.NotContains(t, roster.Trace(), "SendDM")
}

func TestRunExpires(t *testing.T) {
	roster := workflowRoster()
	s := newTestService(t, workflowLeaderboard())
	s.Options.ConfirmTimeout = 20 * time.Millisecond

	// someone else tries to confirm; the invoker never answers
	op := &FakeOperator{InvokerID: invoker, Presses: []Press{{User: 7, Action: ActionConfirm}}}

	o, err := s.Run(context.Background(), op, roster)
	require.NoError(t, err)
	assert.Nil(t, o)
	assert.Len(t, op.Rejected, 1)
	assert.Equal(t, MessageExpired, op.Shown[len(op.Shown)-1])
	assert.Empty(t, roster.Kicked)
	assert.NotContains(t, roster.Trace(), "Kick")
}

func TestRunNoCandidates(t *testing.T) {
	roster := workflowRoster()

	// what the leaderboard client returns after an HTTP 500
	lb := &FakeLeaderboard{}
	s := newTestService(t, lb)

	op := &FakeOperator{InvokerID: invoker}

	o, err := s.Run(context.Background(), op, roster)
	require.NoError(t, err)
	assert.Nil(t, o)
	assert.Equal(t, 1, lb.Calls)
	assert.Equal(t, []string{MessageNoCandidates}, op.Shown)
	assert.Nil(t, op.Views[0])
	assert.Empty(t, roster.Trace())
}

func TestRunPartialFailure(t *testing.T) {
	roster := workflowRoster()
	roster.KickFn = func(ctx context.Context, id discord.UserID, reason string) error {
		if id == 2 {
			return errors.New("Missing Permissions")
		}
		return nil
	}

	lb := &FakeLeaderboard{Entries: []leaderboard.Entry{entry("1", 1), entry("2", 1), entry("3", 1)}}
	s := newTestService(t, lb)

	op := &FakeOperator{InvokerID: invoker, Presses: []Press{{User: invoker, Action: ActionConfirm}}}

	o, err := s.Run(context.Background(), op, roster)
	require.NoError(t, err)
	require.NotNil(t, o)
	assert.Equal(t, 2, o.Succeeded)
	assert.Equal(t, 1, o.Failed)
	assert.Len(t, o.Failures, 1)
	assert.Contains(t, op.Finished[0], "two: Missing Permissions")
}

func TestRunDeferFailure(t *testing.T) {
	lb := workflowLeaderboard()
	s := newTestService(t, lb)

	op := &FakeOperator{InvokerID: invoker, DeferFn: func() error { return errors.New("unknown interaction") }}

	_, err := s.Run(context.Background(), op, workflowRoster())
	assert.Error(t, err)
	assert.Zero(t, lb.Calls)
}
