// Package cleanup removes members who never reached a level on the leveling service's leaderboard.
package cleanup

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"emperror.dev/errors"
	"github.com/devguild/devlin/leaderboard"
	"github.com/diamondburned/arikawa/v3/discord"
	"go.uber.org/zap"
)

// Leaderboard is the source of leaderboard entries.
type Leaderboard interface {
	Fetch(ctx context.Context) []leaderboard.Entry
}

// Candidate is a member staged for removal.
type Candidate struct {
	ID          discord.UserID
	Username    string
	DisplayName string
}

// Options are the non-policy settings of a Service.
type Options struct {
	// Notice is sent to members before they are kicked.
	Notice string
	// Reason is the audit log reason for kicks.
	Reason string

	ConfirmTimeout  time.Duration
	PreviewSize     int
	MaxErrorDetails int
}

// Service runs cleanups.
type Service struct {
	Policy      Policy
	Options     Options
	Leaderboard Leaderboard

	log *zap.SugaredLogger
}

// New returns a new Service.
func New(policy Policy, opts Options, lb Leaderboard, log *zap.SugaredLogger) *Service {
	if opts.ConfirmTimeout == 0 {
		opts.ConfirmTimeout = 3 * time.Minute
	}
	if opts.PreviewSize == 0 {
		opts.PreviewSize = 10
	}
	if opts.MaxErrorDetails == 0 {
		opts.MaxErrorDetails = 5
	}

	return &Service{
		Policy:      policy,
		Options:     opts,
		Leaderboard: lb,
		log:         log,
	}
}

// Filter returns the leaderboard entries that should be removed, in leaderboard order.
// Entries that can't be processed are logged and skipped.
func (s *Service) Filter(ctx context.Context, entries []leaderboard.Entry, roster Roster) []Candidate {
	s.log.Infof("Filtering %v leaderboard entries", len(entries))

	var candidates []Candidate
	for _, e := range entries {
		c, ok := s.check(ctx, e, roster)
		if ok {
			candidates = append(candidates, c)
		}
	}

	s.log.Infof("Total users to kick: %v", len(candidates))
	return candidates
}

func (s *Service) check(ctx context.Context, e leaderboard.Entry, roster Roster) (c Candidate, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Errorf("Panic processing leaderboard entry %q: %v\n%s", e.ID, r, debug.Stack())
			ok = false
		}
	}()

	sf, err := discord.ParseSnowflake(string(e.ID))
	if err != nil || !sf.IsValid() {
		s.log.Warnf("Skipping leaderboard entry with invalid id %q", e.ID)
		return c, false
	}
	if e.Level == nil || *e.Level < 0 {
		s.log.Warnf("Skipping leaderboard entry %v with missing or invalid level", sf)
		return c, false
	}
	id := discord.UserID(sf)

	m, err := roster.FetchMember(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, ErrMemberNotFound):
			s.log.Infof("User %v not found in guild", id)
		case errors.Is(err, ErrForbidden):
			s.log.Errorf("Cannot fetch member %v due to permissions", id)
		default:
			s.log.Errorf("Error fetching member %v: %v", id, err)
		}
		return c, false
	}

	s.log.Debugw("Processing member",
		"user", m.User.Username, "id", m.User.ID,
		"joined", m.Joined.Time(), "bot", m.User.Bot, "roles", m.RoleIDs)

	eligible, reason := s.Policy.Eligible(*e.Level, *m)
	if !eligible {
		s.log.Debugf("Keeping %v (%v): %v", m.User.Username, m.User.ID, reason)
		return c, false
	}

	s.log.Infof("Added %v to kick list", m.User.Username)
	return Candidate{
		ID:          m.User.ID,
		Username:    m.User.Username,
		DisplayName: displayName(*m),
	}, true
}

func displayName(m discord.Member) string {
	if m.Nick != "" {
		return m.Nick
	}
	return m.User.Username
}

// Outcome is the result of a removal.
type Outcome struct {
	Succeeded int
	Failed    int
	// Skipped is the number of candidates that had already left.
	Skipped  int
	Failures []string
}

// Message renders o for the operator, with at most maxDetails failure lines.
func (o Outcome) Message(maxDetails int) string {
	var b strings.Builder
	b.WriteString("✅ Cleanup completed.\n")
	fmt.Fprintf(&b, "Kicked: %v members\n", o.Succeeded)
	if o.Skipped > 0 {
		fmt.Fprintf(&b, "Already gone: %v\n", o.Skipped)
	}

	if o.Failed > 0 {
		fmt.Fprintf(&b, "Errors: %v\n", o.Failed)

		details := o.Failures
		if len(details) > maxDetails {
			details = details[:maxDetails]
		}
		if len(details) > 0 {
			b.WriteString("Error details:\n")
			b.WriteString(strings.Join(details, "\n"))
		}
	}
	return b.String()
}

// Execute kicks every candidate still in the guild.
// A failure for one candidate never stops the others.
func (s *Service) Execute(ctx context.Context, roster Roster, candidates []Candidate) Outcome {
	var o Outcome

	for _, c := range candidates {
		err := s.remove(ctx, roster, c)
		switch {
		case err == nil:
			o.Succeeded++
			s.log.Infof("Kicked %v (%v)", c.Username, c.ID)
		case errors.Is(err, ErrMemberNotFound):
			o.Skipped++
			s.log.Infof("%v (%v) already left the guild, skipping", c.Username, c.ID)
		default:
			o.Failed++
			o.Failures = append(o.Failures, fmt.Sprintf("%v: %v", c.Username, err))
			s.log.Errorf("Error kicking %v (%v): %v", c.Username, c.ID, err)
		}
	}

	return o
}

func (s *Service) remove(ctx context.Context, roster Roster, c Candidate) (err error) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Errorf("Panic kicking %v: %v\n%s", c.ID, r, debug.Stack())
			err = errors.Errorf("panic: %v", r)
		}
	}()

	if _, ok := roster.Member(c.ID); !ok {
		if _, err := roster.FetchMember(ctx, c.ID); err != nil {
			return err
		}
	}

	if s.Options.Notice != "" {
		if err := roster.SendDM(ctx, c.ID, s.Options.Notice); err != nil {
			s.log.Warnf("Could not DM %v before kick: %v", c.Username, err)
		}
	}

	return roster.Kick(ctx, c.ID, s.Options.Reason)
}
