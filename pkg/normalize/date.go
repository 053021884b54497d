package normalize

import (
	"strings"
	"time"
)

var dateTimeLayouts = []string{
	"2006-1-2 15:4:5",
	"2006-1-2 15:4",
	"2006-1-2T15:4:5",
	"20060102150405",
}

var dateLayouts = []string{
	"2006-1-2",
	"20060102",
}

var monthDayLayouts = []string{
	"1-2 15:4",
	"1-2",
}

// Bounds for year inference on month-day-only dates: statements that omit
// the year are assumed to reference a date at most 45 days ahead of or 320
// days behind the reference date.
const (
	monthDayForward  = 45 * 24 * time.Hour
	monthDayBackward = 320 * 24 * time.Hour
)

// ParseDate parses date or date-time text against a list of known patterns.
// Month-day-only values get their year inferred from ref: whichever of the
// reference year, the year before and the year after puts the result inside
// the forward/backward window wins. The second return is false when nothing
// matches; callers drop the record instead of failing the batch.
func ParseDate(text string, ref time.Time) (time.Time, bool) {
	s := canonicalDateText(text)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	for _, layout := range monthDayLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		for _, year := range []int{ref.Year(), ref.Year() - 1, ref.Year() + 1} {
			cand := time.Date(year, t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
			if cand.After(ref.Add(monthDayForward)) || cand.Before(ref.Add(-monthDayBackward)) {
				continue
			}
			return cand, true
		}
	}
	return time.Time{}, false
}

// canonicalDateText rewrites Korean date markers and mixed separators into
// the single dash-separated shape the layout lists expect.
func canonicalDateText(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = strings.NewReplacer("년", "-", "월", "-", "일", "").Replace(s)
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, ".", "-")
	s = strings.Join(strings.Fields(s), " ")
	s = strings.ReplaceAll(s, " -", "-")
	s = strings.ReplaceAll(s, "- ", "-")
	return strings.Trim(s, "-")
}
