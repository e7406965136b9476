package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStub_Advance(t *testing.T) {
	c := Fixed()
	start := c.Now()

	assert.Equal(t, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), start)
	assert.Equal(t, start, c.Now(), "время не должно идти само")

	c.Advance(90 * time.Minute)
	assert.Equal(t, start.Add(90*time.Minute), c.Now())
}

func TestReal_Now(t *testing.T) {
	before := time.Now()
	got := Real{}.Now()

	assert.False(t, got.Before(before))
}
