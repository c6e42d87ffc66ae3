package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0 seconds"},
		{time.Second, "1 second"},
		{3 * time.Minute, "3 minutes"},
		{90 * time.Second, "1 minute and 30 seconds"},
		{time.Hour + 30*time.Second, "1 hour"},
		{26*time.Hour + 5*time.Minute, "1 day, 2 hours, and 5 minutes"},
		{48 * time.Hour, "2 days"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.d), tt.d.String())
	}
}
