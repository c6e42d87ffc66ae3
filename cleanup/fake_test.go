package cleanup

import (
	"context"
	"sync"
	"time"

	"github.com/devguild/devlin/leaderboard"
	"github.com/diamondburned/arikawa/v3/discord"
)

// ------------------------
// Fake Roster
// ------------------------

// FakeRoster is a programmable Roster backed by a member map.
type FakeRoster struct {
	mu    sync.Mutex
	trace []string

	Members map[discord.UserID]discord.Member
	// Cached controls whether Member finds members in Members.
	Cached bool

	FetchMemberFn func(ctx context.Context, id discord.UserID) (*discord.Member, error)
	SendDMFn      func(ctx context.Context, id discord.UserID, content string) error
	KickFn        func(ctx context.Context, id discord.UserID, reason string) error

	Kicked  []discord.UserID
	DMed    []discord.UserID
	Reasons []string
}

func NewFakeRoster(members ...discord.Member) *FakeRoster {
	r := &FakeRoster{Members: map[discord.UserID]discord.Member{}}
	for _, m := range members {
		r.Members[m.User.ID] = m
	}
	return r
}

func (r *FakeRoster) record(step string) {
	r.mu.Lock()
	r.trace = append(r.trace, step)
	r.mu.Unlock()
}

// Trace returns the sequence of method calls made to the fake.
func (r *FakeRoster) Trace() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.trace))
	copy(out, r.trace)
	return out
}

func (r *FakeRoster) FetchMember(ctx context.Context, id discord.UserID) (*discord.Member, error) {
	r.record("FetchMember")
	if r.FetchMemberFn != nil {
		return r.FetchMemberFn(ctx, id)
	}
	m, ok := r.Members[id]
	if !ok {
		return nil, ErrMemberNotFound
	}
	return &m, nil
}

func (r *FakeRoster) Member(id discord.UserID) (*discord.Member, bool) {
	r.record("Member")
	if !r.Cached {
		return nil, false
	}
	m, ok := r.Members[id]
	if !ok {
		return nil, false
	}
	return &m, true
}

func (r *FakeRoster) SendDM(ctx context.Context, id discord.UserID, content string) error {
	r.record("SendDM")
	r.DMed = append(r.DMed, id)
	if r.SendDMFn != nil {
		return r.SendDMFn(ctx, id, content)
	}
	return nil
}

func (r *FakeRoster) Kick(ctx context.Context, id discord.UserID, reason string) error {
	r.record("Kick")
	if r.KickFn != nil {
		if err := r.KickFn(ctx, id, reason); err != nil {
			return err
		}
	}
	r.Kicked = append(r.Kicked, id)
	r.Reasons = append(r.Reasons, reason)
	return nil
}

// ------------------------
// Fake Leaderboard
// ------------------------

type FakeLeaderboard struct {
	Entries []leaderboard.Entry
	Calls   int
}

func (l *FakeLeaderboard) Fetch(context.Context) []leaderboard.Entry {
	l.Calls++
	return l.Entries
}

// ------------------------
// Fake Operator
// ------------------------

// FakeOperator replays a fixed sequence of button presses.
// Once they run out, WaitPress blocks until the context expires.
type FakeOperator struct {
	InvokerID discord.UserID
	// Presses are returned by WaitPress in order.
	Presses []Press

	DeferFn func() error
	ShowFn  func(content string, view *ConfirmView) error

	Shown    []string
	Views    []*ConfirmView
	Rejected []Press
	Closed   []string
	Held     int
	Finished []string
}

func (o *FakeOperator) Invoker() discord.UserID { return o.InvokerID }

func (o *FakeOperator) Defer() error {
	if o.DeferFn != nil {
		return o.DeferFn()
	}
	return nil
}

func (o *FakeOperator) Show(content string, view *ConfirmView) error {
	o.Shown = append(o.Shown, content)
	o.Views = append(o.Views, view)
	if o.ShowFn != nil {
		return o.ShowFn(content, view)
	}
	return nil
}

func (o *FakeOperator) WaitPress(ctx context.Context, view *ConfirmView) (*Press, bool) {
	if len(o.Presses) == 0 {
		<-ctx.Done()
		return nil, false
	}
	p := o.Presses[0]
	o.Presses = o.Presses[1:]
	return &p, true
}

func (o *FakeOperator) Reject(p *Press, content string) error {
	o.Rejected = append(o.Rejected, *p)
	return nil
}

func (o *FakeOperator) Close(p *Press, content string) error {
	o.Closed = append(o.Closed, content)
	return nil
}

func (o *FakeOperator) Hold(p *Press) error {
	o.Held++
	return nil
}

func (o *FakeOperator) Finish(p *Press, content string) error {
	o.Finished = append(o.Finished, content)
	return nil
}

// ------------------------
// Helpers
// ------------------------

var (
	testCutoff = time.Date(2024, 11, 20, 0, 0, 0, 0, time.UTC)
	oldJoin    = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	boosterRole discord.RoleID = 1071866368372244661
	modRole     discord.RoleID = 1311580509452898335
	plainRole   discord.RoleID = 1200000000000000001
)

func member(id discord.UserID, name string, joined time.Time, roles ...discord.RoleID) discord.Member {
	return discord.Member{
		User: discord.User{
			ID:       id,
			Username: name,
		},
		RoleIDs: roles,
		Joined:  discord.NewTimestamp(joined),
	}
}

func entry(id string, level int) leaderboard.Entry {
	return leaderboard.Entry{ID: leaderboard.ID(id), Level: &level}
}

func ids(candidates []Candidate) []discord.UserID {
	out := make([]discord.UserID, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.ID)
	}
	return out
}
