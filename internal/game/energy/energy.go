// Package energy implements battle energy regeneration and the daily battle
// allowance as pure functions of the current time.
package energy

import "time"

const (
	// DefaultMax is the default battle energy capacity.
	DefaultMax = 5
	// RechargeInterval is the time needed to regenerate one energy point.
	RechargeInterval = 30 * time.Minute
	// DailyBattleLimit is the number of battles allowed per calendar day.
	DailyBattleLimit = 3
)

// Battery is a regenerating battle energy pool.
//
// Invariant: 0 <= Current <= Max.
type Battery struct {
	Current int `json:"current"`
	Max     int `json:"max"`
	// LastRecharge anchors regeneration. While the battery is below Max it
	// advances in whole RechargeInterval steps so partial progress carries over.
	LastRecharge time.Time `json:"lastRecharge"`
}

// Full returns a full battery anchored at now.
func Full(now time.Time) Battery {
	return Battery{Current: DefaultMax, Max: DefaultMax, LastRecharge: now}
}

// Recharge applies regeneration up to now.
//
// Postcondition: Recharge(Recharge(b, t), t) == Recharge(b, t); calling it at
// irregular intervals yields the same result as a single call at the final time.
func Recharge(b Battery, now time.Time) Battery {
	b = normalize(b)
	if b.Current >= b.Max {
		return b
	}
	elapsed := now.Sub(b.LastRecharge)
	if elapsed < RechargeInterval {
		return b
	}
	points := int(elapsed / RechargeInterval)
	if b.Current+points >= b.Max {
		points = b.Max - b.Current
	}
	b.Current += points
	b.LastRecharge = b.LastRecharge.Add(time.Duration(points) * RechargeInterval)
	return b
}

// Spend removes one energy point. ok is false, and b is returned unchanged,
// when the battery is empty.
func Spend(b Battery, now time.Time) (out Battery, ok bool) {
	b = normalize(b)
	if b.Current <= 0 {
		return b, false
	}
	if b.Current == b.Max {
		// Regeneration starts from the moment the battery leaves full.
		b.LastRecharge = now
	}
	b.Current--
	return b, true
}

// Add grants n bonus points, capped at Max. The recharge anchor is kept so
// regeneration in progress is not lost.
func Add(b Battery, n int) Battery {
	b = normalize(b)
	if n <= 0 {
		return b
	}
	b.Current = min(b.Max, b.Current+n)
	return b
}

// MinutesUntilFull returns the whole minutes until the battery is full as of
// now, rounded up. Returns 0 for a full battery.
func MinutesUntilFull(b Battery, now time.Time) int {
	b = Recharge(b, now)
	if b.Current >= b.Max {
		return 0
	}
	next := b.LastRecharge.Add(RechargeInterval)
	remaining := next.Sub(now) + time.Duration(b.Max-b.Current-1)*RechargeInterval
	mins := int(remaining / time.Minute)
	if remaining%time.Minute != 0 {
		mins++
	}
	return mins
}

func normalize(b Battery) Battery {
	if b.Max <= 0 {
		b.Max = DefaultMax
	}
	b.Current = max(0, min(b.Max, b.Current))
	return b
}
