package meta

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPongMessage(t *testing.T) {
	tests := []struct {
		latency time.Duration
		want    string
	}{
		{0, "🏓 Pong! Latency: 0ms"},
		{42 * time.Millisecond, "🏓 Pong! Latency: 42ms"},
		{42*time.Millisecond + 567*time.Microsecond, "🏓 Pong! Latency: 42.57ms"},
		{1500 * time.Millisecond, "🏓 Pong! Latency: 1500ms"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, pongMessage(tt.latency))
	}
}
