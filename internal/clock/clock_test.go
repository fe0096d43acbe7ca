package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFakeClock(t *testing.T) {
	start := time.Date(2026, 10, 14, 10, 0, 0, 0, time.FixedZone("WIB", 7*3600))
	clk := NewFakeClock(start)

	assert.Equal(t, time.UTC, clk.Now().Location())
	assert.True(t, clk.Now().Equal(start))

	clk.Advance(36 * time.Hour)
	assert.True(t, clk.Now().Equal(start.Add(36*time.Hour)))

	clk.Set(start)
	assert.True(t, clk.Now().Equal(start))
}

func TestSystemClockIsUTC(t *testing.T) {
	var clk Clock = SystemClock{}
	assert.Equal(t, time.UTC, clk.Now().Location())
}
