package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolveEffectiveDate(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{name: "empty falls back to now", raw: "", want: now},
		{name: "garbage falls back to now", raw: "not-a-date", want: now},
		{name: "future falls back to now", raw: "2025-07-01T00:00:00Z", want: now},
		{
			name: "past rfc3339 accepted",
			raw:  "2025-05-01T09:30:00Z",
			want: time.Date(2025, 5, 1, 9, 30, 0, 0, time.UTC),
		},
		{
			name: "date only taken as midnight utc",
			raw:  "2025-05-01",
			want: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveEffectiveDate(tt.raw, now)
			assert.True(t, got.Equal(tt.want), "got %s, want %s", got, tt.want)
		})
	}
}

func TestGuardUpdateDate(t *testing.T) {
	latest := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	current := latest.Add(-time.Hour)
	stale := latest.Add(-48 * time.Hour)
	fresh := latest.Add(time.Hour)

	t.Run("nil request retains current", func(t *testing.T) {
		got := GuardUpdateDate(nil, &current, latest, true)
		assert.Equal(t, &current, got)
	})

	t.Run("stale request discarded", func(t *testing.T) {
		got := GuardUpdateDate(&stale, &current, latest, true)
		assert.Equal(t, &current, got)
	})

	t.Run("request at latest accepted", func(t *testing.T) {
		at := latest
		got := GuardUpdateDate(&at, &current, latest, true)
		assert.Equal(t, &at, got)
	})

	t.Run("fresh request accepted", func(t *testing.T) {
		got := GuardUpdateDate(&fresh, &current, latest, true)
		assert.Equal(t, &fresh, got)
	})

	t.Run("no history accepts anything", func(t *testing.T) {
		got := GuardUpdateDate(&stale, nil, time.Time{}, false)
		assert.Equal(t, &stale, got)
	})
}
