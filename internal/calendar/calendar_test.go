package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestNightsBetween(t *testing.T) {
	t.Run("two nights", func(t *testing.T) {
		assert.Equal(t, 2, NightsBetween(mustParse(t, "2026-03-01"), mustParse(t, "2026-03-03")))
	})

	t.Run("same day is zero", func(t *testing.T) {
		assert.Equal(t, 0, NightsBetween(mustParse(t, "2026-03-01"), mustParse(t, "2026-03-01")))
	})

	t.Run("inverted range is zero", func(t *testing.T) {
		assert.Equal(t, 0, NightsBetween(mustParse(t, "2026-03-03"), mustParse(t, "2026-03-01")))
	})

	t.Run("month boundary", func(t *testing.T) {
		assert.Equal(t, 3, NightsBetween(mustParse(t, "2026-02-27"), mustParse(t, "2026-03-02")))
	})
}

func TestEnumerateNights(t *testing.T) {
	nights := EnumerateNights(mustParse(t, "2026-03-01"), mustParse(t, "2026-03-04"))
	require.Len(t, nights, 3)
	assert.Equal(t, "2026-03-01", FormatDate(nights[0]))
	assert.Equal(t, "2026-03-02", FormatDate(nights[1]))
	assert.Equal(t, "2026-03-03", FormatDate(nights[2]))

	assert.Nil(t, EnumerateNights(mustParse(t, "2026-03-01"), mustParse(t, "2026-03-01")))
}

func TestRangesOverlap(t *testing.T) {
	a1, a2 := mustParse(t, "2026-03-01"), mustParse(t, "2026-03-05")

	t.Run("overlapping", func(t *testing.T) {
		assert.True(t, RangesOverlap(a1, a2, mustParse(t, "2026-03-04"), mustParse(t, "2026-03-08")))
	})

	t.Run("back to back stays do not overlap", func(t *testing.T) {
		// Checkout day is free for the next check-in.
		assert.False(t, RangesOverlap(a1, a2, mustParse(t, "2026-03-05"), mustParse(t, "2026-03-08")))
	})

	t.Run("contained", func(t *testing.T) {
		assert.True(t, RangesOverlap(a1, a2, mustParse(t, "2026-03-02"), mustParse(t, "2026-03-03")))
	})

	t.Run("disjoint", func(t *testing.T) {
		assert.False(t, RangesOverlap(a1, a2, mustParse(t, "2026-03-10"), mustParse(t, "2026-03-12")))
	})
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-03-01")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, d.Location())
	assert.Equal(t, 0, d.Hour())

	_, err = ParseDate("01/03/2026")
	assert.Error(t, err)
}

func TestContainsDate(t *testing.T) {
	start, end := mustParse(t, "2026-04-01"), mustParse(t, "2026-06-30")
	assert.True(t, ContainsDate(start, end, mustParse(t, "2026-04-01")))
	assert.True(t, ContainsDate(start, end, mustParse(t, "2026-06-30")))
	assert.False(t, ContainsDate(start, end, mustParse(t, "2026-07-01")))
}
