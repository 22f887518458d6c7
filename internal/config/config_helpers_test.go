package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvAsInt(t *testing.T) {
	t.Run("returns default value when env var not set", func(t *testing.T) {
		assert.Equal(t, 42, getEnvAsInt("TEST_INT_VAR_UNSET", 42))
	})

	t.Run("parses valid integer from env var", func(t *testing.T) {
		t.Setenv("TEST_INT_VAR", "100")
		assert.Equal(t, 100, getEnvAsInt("TEST_INT_VAR", 42))
	})

	t.Run("returns default for invalid integer", func(t *testing.T) {
		t.Setenv("TEST_INT_VAR", "42.5")
		assert.Equal(t, 10, getEnvAsInt("TEST_INT_VAR", 10))
	})
}

func TestGetEnvAsDuration(t *testing.T) {
	t.Run("parses valid duration from env var", func(t *testing.T) {
		t.Setenv("TEST_DURATION_VAR", "1h30m")
		assert.Equal(t, 90*time.Minute, getEnvAsDuration("TEST_DURATION_VAR", time.Minute))
	})

	t.Run("returns default for plain numbers without unit", func(t *testing.T) {
		t.Setenv("TEST_DURATION_VAR", "100")
		assert.Equal(t, time.Minute, getEnvAsDuration("TEST_DURATION_VAR", time.Minute))
	})
}

func TestGetEnvAsMillis(t *testing.T) {
	t.Run("parses plain milliseconds", func(t *testing.T) {
		t.Setenv("TEST_MS_VAR", "1500")
		assert.Equal(t, 1500*time.Millisecond, getEnvAsMillis("TEST_MS_VAR", time.Second))
	})

	t.Run("zero is allowed", func(t *testing.T) {
		t.Setenv("TEST_MS_VAR", "0")
		assert.Equal(t, time.Duration(0), getEnvAsMillis("TEST_MS_VAR", time.Second))
	})

	t.Run("negative falls back to default", func(t *testing.T) {
		t.Setenv("TEST_MS_VAR", "-5")
		assert.Equal(t, time.Second, getEnvAsMillis("TEST_MS_VAR", time.Second))
	})

	t.Run("duration strings are rejected", func(t *testing.T) {
		t.Setenv("TEST_MS_VAR", "5s")
		assert.Equal(t, time.Second, getEnvAsMillis("TEST_MS_VAR", time.Second))
	})
}

func TestGetEnvAsBool(t *testing.T) {
	t.Setenv("TEST_BOOL_VAR", "TRUE")
	assert.True(t, getEnvAsBool("TEST_BOOL_VAR", false))

	t.Setenv("TEST_BOOL_VAR", "nope")
	assert.True(t, getEnvAsBool("TEST_BOOL_VAR", true))
}

func TestGetEnvAsList(t *testing.T) {
	t.Setenv("TEST_LIST_VAR", " 10.0.0.1, ,10.0.0.2 ")
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, getEnvAsList("TEST_LIST_VAR"))

	t.Setenv("TEST_LIST_VAR", "")
	assert.Nil(t, getEnvAsList("TEST_LIST_VAR"))
}
