package dateparse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseUnixTimestamp(t *testing.T) {
	got, err := Parse("1335806603", time.Now())
	require.NoError(t, err)
	require.Equal(t, int64(1335806603), got.Unix())
}

func TestParseISOLikeWithOffset(t *testing.T) {
	got, err := Parse("2012-04-30 17:22:43 +0000", time.Now())
	require.NoError(t, err)
	require.Equal(t, int64(1335806563), got.Unix())
}

func TestParseDateOnly(t *testing.T) {
	got, err := Parse("2012-05-03", time.Now())
	require.NoError(t, err)
	require.Equal(t, 2012, got.Year())
	require.Equal(t, time.May, got.Month())
	require.Equal(t, 3, got.Day())
	require.Equal(t, 0, got.Hour())
}

func TestParseRelative(t *testing.T) {
	now := time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC)

	got, err := Parse("2 days ago", now)
	require.NoError(t, err)
	require.Equal(t, now.Add(-48*time.Hour), got)

	got, err = Parse("1 second", now)
	require.NoError(t, err)
	require.Equal(t, now.Add(-time.Second), got)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse("1a", time.Now())
	require.ErrorIs(t, err, ErrUnparsable)

	_, err = Parse("", time.Now())
	require.ErrorIs(t, err, ErrUnparsable)
}
