package featureflags

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnabled_BooleanValues(t *testing.T) {
	m := NewManager("marketplace=on,reviews=off,beta=true,legacy=false,a=1,b=0")

	assert.True(t, m.Enabled("marketplace", 1))
	assert.True(t, m.Enabled("beta", 1))
	assert.True(t, m.Enabled("a", 1))
	assert.False(t, m.Enabled("reviews", 1))
	assert.False(t, m.Enabled("legacy", 1))
	assert.False(t, m.Enabled("b", 1))

	// Unconfigured flags are off.
	assert.False(t, m.Enabled("unknown", 1))
}

func TestEnabled_PercentageValues(t *testing.T) {
	m := NewManager("always=100%,never=0%,canary=25%")

	assert.True(t, m.Enabled("always", 1))
	assert.False(t, m.Enabled("never", 1))

	// Percentage rollout must be deterministic per user.
	first := m.Enabled("canary", 42)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, m.Enabled("canary", 42))
	}

	// Anonymous users never fall into a partial rollout.
	assert.False(t, m.Enabled("canary", 0))
}

func TestParseAndSnapshot(t *testing.T) {
	m := NewManager(" bad ,marketplace=on, reviews = 20% ,legacy=off ")

	raw := m.Raw()
	assert.Len(t, raw, 3)
	assert.Equal(t, "on", raw["marketplace"])
	assert.Equal(t, "20%", raw["reviews"])
	assert.Equal(t, "off", raw["legacy"])

	snap := m.Snapshot(123)
	assert.Len(t, snap, 3)
	assert.True(t, snap["marketplace"])
	assert.False(t, snap["legacy"])
}

func TestNilManager(t *testing.T) {
	var m *Manager
	assert.False(t, m.Enabled("anything", 1))
}
