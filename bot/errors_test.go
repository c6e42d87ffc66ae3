package bot

import (
	"strings"
	"testing"

	"emperror.dev/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogCommandErrorKeepsStack(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{name: "without sentry", want: "error in command cleanup: boom"},
		{name: "with code", code: "abc123", want: "error in command cleanup (code abc123): boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.ErrorLevel)

			err := errors.Wrap(errors.New("boom"), "running cleanup")
			logCommandError(zap.New(core).Sugar(), "cleanup", tt.code, err)

			entries := logs.All()
			require.Len(t, entries, 1)

			msg := entries[0].Message
			assert.True(t, strings.HasPrefix(msg, tt.want), "unexpected message %q", msg)
			assert.Contains(t, msg, "running cleanup")
			assert.Contains(t, msg, "bot.TestLogCommandErrorKeepsStack", "the stack trace must be logged")
			assert.Contains(t, msg, "errors_test.go")
		})
	}
}
