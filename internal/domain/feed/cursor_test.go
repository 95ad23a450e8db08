package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursor_AdvanceUntilExhausted(t *testing.T) {
	c := NewCursor(FixtureProfiles())
	n := c.Len()
	require.Equal(t, 3, n)
	assert.Equal(t, StateActive, c.State())

	for i := 0; i < n; i++ {
		c.Advance()
	}

	assert.Equal(t, StateExhausted, c.State())
	assert.Equal(t, n, c.Position())
	_, ok := c.Current()
	assert.False(t, ok)
}

func TestCursor_AdvanceWhenExhaustedKeepsPosition(t *testing.T) {
	c := NewCursor(FixtureProfiles())
	for i := 0; i < 10; i++ {
		c.Advance()
	}
	assert.Equal(t, c.Len(), c.Position())
	assert.Equal(t, StateExhausted, c.State())
}

func TestCursor_ResetFromExhausted(t *testing.T) {
	c := NewCursor(FixtureProfiles())
	for i := 0; i < c.Len(); i++ {
		c.Advance()
	}

	c.Reset()

	assert.Equal(t, 0, c.Position())
	assert.Equal(t, StateActive, c.State())
	cur, ok := c.Current()
	require.True(t, ok)
	assert.Equal(t, "Max", cur.Name)
}

func TestCursor_Empty(t *testing.T) {
	c := NewCursor(nil)

	assert.Equal(t, StateEmpty, c.State())
	_, ok := c.Current()
	assert.False(t, ok)

	c.Reset()
	assert.Equal(t, StateEmpty, c.State())
	assert.Equal(t, 0, c.Position())

	c.Advance()
	assert.Equal(t, 0, c.Position())
	assert.Equal(t, StateEmpty, c.State())
}

func TestCursor_SingleItem(t *testing.T) {
	c := NewCursor(FixtureProfiles()[:1])

	cur, ok := c.Current()
	require.True(t, ok)
	assert.Equal(t, "fixture-max", cur.ID)

	c.Advance()
	assert.Equal(t, 1, c.Position())
	assert.Equal(t, StateExhausted, c.State())
}

func TestCursor_CopiesInput(t *testing.T) {
	items := FixtureProfiles()
	c := NewCursor(items)
	items[0].Name = "changed"

	cur, _ := c.Current()
	assert.Equal(t, "Max", cur.Name)

	out := c.Items()
	out[0].Name = "changed again"
	cur, _ = c.Current()
	assert.Equal(t, "Max", cur.Name)
}

func TestCursor_WalkThrough(t *testing.T) {
	c := NewCursor(FixtureProfiles())

	var seen []string
	for c.State() == StateActive {
		cur, _ := c.Current()
		seen = append(seen, cur.Name)
		c.Advance()
	}
	assert.Equal(t, []string{"Max", "Luna", "Buddy"}, seen)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "empty", StateEmpty.String())
	assert.Equal(t, "active", StateActive.String())
	assert.Equal(t, "exhausted", StateExhausted.String())
	assert.Equal(t, "unknown", State(42).String())
}
