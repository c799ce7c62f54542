package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCalculateTotalDays(t *testing.T) {
	tests := []struct {
		name           string
		start, end     time.Time
		halfStart      bool
		halfEnd        bool
		expected       float64
	}{
		{
			name:  "single full day",
			start: day(2025, time.June, 4), end: day(2025, time.June, 4),
			expected: 1,
		},
		{
			name:  "single half day via start flag",
			start: day(2025, time.June, 4), end: day(2025, time.June, 4),
			halfStart: true,
			expected:  0.5,
		},
		{
			name:  "single half day via end flag",
			start: day(2025, time.June, 4), end: day(2025, time.June, 4),
			halfEnd:  true,
			expected: 0.5,
		},
		{
			name:  "three full days",
			start: day(2025, time.June, 3), end: day(2025, time.June, 5),
			expected: 3,
		},
		{
			name:  "three days with half start",
			start: day(2025, time.June, 3), end: day(2025, time.June, 5),
			halfStart: true,
			expected:  2.5,
		},
		{
			name:  "three days with both halves",
			start: day(2025, time.June, 3), end: day(2025, time.June, 5),
			halfStart: true, halfEnd: true,
			expected: 2,
		},
		{
			name:  "inverted range",
			start: day(2025, time.June, 5), end: day(2025, time.June, 3),
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateTotalDays(tt.start, tt.end, tt.halfStart, tt.halfEnd)
			assert.Equal(t, tt.expected, got)
		})
	}
}
