package cleanup

import (
	"context"

	"emperror.dev/errors"
)

// Messages shown to the operator.
const (
	MessageNoCandidates = "No users found matching kick criteria."
	MessageCancelled    = "Cleanup cancelled."
	MessageExpired      = "Cleanup confirmation expired. No members were kicked."
)

// Run performs a full cleanup for op: fetch, filter, confirm, execute.
// The returned Outcome is nil unless members were actually processed for removal.
// Errors are only returned for failures talking to the operator.
func (s *Service) Run(ctx context.Context, op Operator, roster Roster) (*Outcome, error) {
	if err := op.Defer(); err != nil {
		return nil, errors.Wrap(err, "deferring response")
	}

	entries := s.Leaderboard.Fetch(ctx)
	s.log.Infof("Leaderboard users to process: %v", len(entries))

	candidates := s.Filter(ctx, entries, roster)
	if len(candidates) == 0 {
		s.log.Info("No users found to kick")
		return nil, errors.Wrap(op.Show(MessageNoCandidates, nil), "sending empty result")
	}

	view := NewConfirmView(candidates, op.Invoker(), s.Options.PreviewSize)
	if err := op.Show("", view); err != nil {
		return nil, errors.Wrap(err, "sending confirmation")
	}

	gctx, cancel := context.WithTimeout(ctx, s.Options.ConfirmTimeout)
	decision, press := view.Await(gctx, op)
	cancel()

	s.log.Infof("Cleanup for %v candidates %v by %v", len(candidates), decision, op.Invoker())

	switch decision {
	case Cancelled:
		return nil, errors.Wrap(op.Close(press, MessageCancelled), "closing prompt")
	case Expired:
		return nil, errors.Wrap(op.Show(MessageExpired, nil), "expiring prompt")
	}

	if err := op.Hold(press); err != nil {
		// the gate was resolved, so carry on and try to report the outcome anyway
		s.log.Errorf("Error acknowledging confirmation: %v", err)
	}

	// from here on the batch always runs to completion
	outcome := s.Execute(context.WithoutCancel(ctx), roster, view.Candidates)

	err := op.Finish(press, outcome.Message(s.Options.MaxErrorDetails))
	return &outcome, errors.Wrap(err, "sending outcome")
}
