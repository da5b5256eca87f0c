package id

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsSortable(t *testing.T) {
	prev := New()
	assert.Len(t, prev, 26)
	for i := 0; i < 100; i++ {
		next := New()
		assert.Greater(t, next, prev)
		prev = next
	}
}

func TestAtRoundTrip(t *testing.T) {
	when := time.Date(2024, 1, 2, 10, 0, 0, 123e6, time.UTC)
	s := At(when)

	got, err := Time(s)
	require.NoError(t, err)
	assert.True(t, got.Equal(when), "got %s", got)

	later := At(when.Add(time.Second))
	assert.Greater(t, later, s)
}

func TestTimeRejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := Time("not-a-ulid")
	assert.Error(t, err)
}
