package domain

// DefaultWeeklyHours is the process-wide capacity default applied to any
// actor without an explicit override. 40 hours across a five-day pattern.
const DefaultWeeklyHours = 40.0

// CapacityConfig holds the weekly capacity default plus a sparse per-actor
// override map. Mutated only through a full replacement; no partial merges.
type CapacityConfig struct {
	DefaultWeeklyHours float64
	Overrides          map[string]float64
}

// NewCapacityConfig creates a config with the standard default and no
// overrides.
func NewCapacityConfig() CapacityConfig {
	return CapacityConfig{
		DefaultWeeklyHours: DefaultWeeklyHours,
		Overrides:          make(map[string]float64),
	}
}

// WeeklyHours returns the override for the actor if present, else the
// global default.
func (c CapacityConfig) WeeklyHours(actorID string) float64 {
	if hours, ok := c.Overrides[actorID]; ok {
		return hours
	}
	return c.DefaultWeeklyHours
}

// IsValid checks that all configured hours are non-negative.
func (c CapacityConfig) IsValid() bool {
	if c.DefaultWeeklyHours < 0 {
		return false
	}
	for _, hours := range c.Overrides {
		if hours < 0 {
			return false
		}
	}
	return true
}
