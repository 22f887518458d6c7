package loots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBackoff_IncreaseNeverExceedsMax(t *testing.T) {
	b := NewBackoff(30*time.Second, 30*time.Second, 2*time.Minute)
	assert.Equal(t, 30*time.Second, b.Interval())

	want := []time.Duration{time.Minute, 90 * time.Second, 2 * time.Minute, 2 * time.Minute}
	for _, w := range want {
		assert.Equal(t, w, b.Increase())
	}
	for i := 0; i < 100; i++ {
		assert.LessOrEqual(t, b.Increase(), 2*time.Minute)
	}
}

func TestBackoff_ResetRestoresDefault(t *testing.T) {
	b := NewBackoff(time.Second, 7*time.Second, time.Minute)
	for i := 0; i < 5; i++ {
		b.Increase()
	}
	assert.Equal(t, time.Second, b.Reset())
	assert.Equal(t, time.Second, b.Interval())
	assert.Equal(t, time.Second, b.Reset())
}

func TestBackoff_IncrementOvershootsToMax(t *testing.T) {
	b := NewBackoff(10*time.Second, 25*time.Second, 30*time.Second)
	assert.Equal(t, 30*time.Second, b.Increase())
}

func TestBackoff_MaxBelowDefault(t *testing.T) {
	b := NewBackoff(time.Minute, time.Second, time.Second)
	assert.Equal(t, time.Minute, b.Increase())
}
