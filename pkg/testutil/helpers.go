// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/mortgage-calculator/internal/schedule"
)

// FindScenario finds a scenario by name in the results slice.
// Returns a pointer to the schedule if found, nil otherwise.
func FindScenario(results []schedule.Schedule, name string) *schedule.Schedule {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}
