package protocol

// Daily routine activities a character can be engaged in. Wire values are
// snake_case strings.
const (
	ActivityIdle        = "idle"
	ActivitySleeping    = "sleeping"
	ActivityEating      = "eating"
	ActivityCooking     = "cooking"
	ActivityWorking     = "working"
	ActivityExercising  = "exercising"
	ActivitySocializing = "socializing"
	ActivityShopping    = "shopping"
	ActivityCleaning    = "cleaning"
	ActivityBathing     = "bathing"
	ActivityReading     = "reading"
	ActivityWatchingTV  = "watching_tv"
	ActivityGaming      = "gaming"
	ActivityCommuting   = "commuting"
)

var knownActivities = map[string]struct{}{
	ActivityIdle:        {},
	ActivitySleeping:    {},
	ActivityEating:      {},
	ActivityCooking:     {},
	ActivityWorking:     {},
	ActivityExercising:  {},
	ActivitySocializing: {},
	ActivityShopping:    {},
	ActivityCleaning:    {},
	ActivityBathing:     {},
	ActivityReading:     {},
	ActivityWatchingTV:  {},
	ActivityGaming:      {},
	ActivityCommuting:   {},
}

// IsKnownActivity accepts the empty string (treated as idle downstream).
func IsKnownActivity(a string) bool {
	if a == "" {
		return true
	}
	_, ok := knownActivities[a]
	return ok
}
