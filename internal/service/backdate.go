package service

import "time"

// Layouts accepted for caller supplied effective dates. Date-only values
// are taken as midnight UTC.
var effectiveDateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
}

// ResolveEffectiveDate decides the timestamp recorded on a new history
// entry. An absent, unparseable or future-dated value falls back to now;
// an effective date at or before now is accepted as-is, which is what
// makes backdated corrections possible.
func ResolveEffectiveDate(raw string, now time.Time) time.Time {
	if raw == "" {
		return now
	}

	for _, layout := range effectiveDateLayouts {
		parsed, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		if parsed.After(now) {
			return now
		}
		return parsed
	}

	return now
}

// GuardUpdateDate decides the display "as of" date persisted on an entity.
// The requested value is silently discarded in favour of the current one
// whenever it would claim to be older than the newest recorded change:
// the narrative date must never regress behind the audit trail. An absent
// request retains the current value.
func GuardUpdateDate(requested, current *time.Time, latestHistory time.Time, hasHistory bool) *time.Time {
	if requested == nil {
		return current
	}
	if hasHistory && requested.Before(latestHistory) {
		return current
	}
	return requested
}
