package energy

import (
	"fmt"
	"time"
)

// DayKey returns the calendar day of t in its own location, formatted
// YYYY-MM-DD.
func DayKey(t time.Time) string {
	return t.Format(time.DateOnly)
}

// WeekKey returns the ISO year-week of t, formatted YYYY-Www.
func WeekKey(t time.Time) string {
	y, w := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", y, w)
}

// BattlesRemaining returns how many battles are still allowed today given the
// used counter and the day it was last updated.
//
// Postcondition: Result is in [0, DailyBattleLimit].
func BattlesRemaining(used int, lastDay string, now time.Time) int {
	if lastDay != DayKey(now) {
		return DailyBattleLimit
	}
	return max(0, DailyBattleLimit-used)
}
