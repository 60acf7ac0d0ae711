package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeConnectionPoolSettings_Defaults(t *testing.T) {
	open, idle, lifetime, idleTime := NormalizeConnectionPoolSettings(0, 0, 0, 0)

	assert.Equal(t, 10, open)
	assert.Equal(t, 2, idle)
	assert.Equal(t, 5*time.Minute, lifetime)
	assert.Equal(t, 10*time.Minute, idleTime)
}

func TestNormalizeConnectionPoolSettings_ClampsIdleToOpen(t *testing.T) {
	open, idle, _, _ := NormalizeConnectionPoolSettings(4, 9, time.Minute, time.Minute)

	assert.Equal(t, 4, open)
	assert.Equal(t, 4, idle)
}

func TestDecodeRow(t *testing.T) {
	values, err := decodeRow([]byte(`{"id":"a","pods":3}`))
	assert.NoError(t, err)
	assert.Equal(t, "a", values["id"])
	assert.Equal(t, float64(3), values["pods"])

	_, err = decodeRow([]byte(`not json`))
	assert.Error(t, err)
}
