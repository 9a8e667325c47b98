package store

import "github.com/example/maintenance-agent/internal/models"

// DefaultTasks is the seed list used on first run or when the persisted
// collection cannot be read.
func DefaultTasks() []models.Task {
	return []models.Task{
		{ID: 101, Description: "Fix broken window in lobby", Status: models.StatusPending, AssignedTo: "Unassigned", Date: "2024-07-20"},
		{ID: 102, Description: "Service the main HVAC unit", Status: models.StatusInProgress, AssignedTo: "John", Date: "2024-07-19"},
		{ID: 103, Description: "Replace hallway light bulbs", Status: models.StatusCompleted, AssignedTo: "Jane", Date: "2024-07-18"},
	}
}
