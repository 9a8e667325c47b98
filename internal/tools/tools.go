package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"

	"github.com/example/maintenance-agent/internal/export"
	"github.com/example/maintenance-agent/internal/models"
	"github.com/example/maintenance-agent/internal/store"
)

// New builds the fixed registry of maintenance tools over the task store
// and the export staging area. The set is closed: these six tools are the
// only operations the model can request.
func New(tasks *store.Store, staging *export.Staging) *Registry {
	statusEnum := make([]string, 0, 3)
	for _, s := range models.Statuses() {
		statusEnum = append(statusEnum, string(s))
	}
	statusList := strings.Join(statusEnum, ", ")

	return newRegistry(
		Tool{
			Name:        "addComplaint",
			Description: "Adds a new maintenance complaint to the system. Use this only for creating brand new tasks.",
			Params: []Param{
				{Name: "id", Type: genai.TypeNumber, Description: "A unique numeric ID for the new task.", Required: true},
				{Name: "description", Type: genai.TypeString, Description: "A detailed description of the complaint.", Required: true},
				{Name: "assignedTo", Type: genai.TypeString, Description: `The name of the person assigned to the task. Defaults to "Unassigned" if not provided.`},
			},
			run: func(ctx context.Context, args []any) (models.ToolResult, error) {
				id, _ := optInt(args[0])
				description, _ := optString(args[1])
				assignedTo, _ := optString(args[2])
				err := tasks.Add(id, description, assignedTo)
				if errors.Is(err, store.ErrDuplicateID) {
					return failf("Task with ID %d already exists. Please use a unique ID.", id), nil
				}
				if err != nil {
					return models.ToolResult{}, err
				}
				return models.ToolResult{
					Success: true,
					Message: fmt.Sprintf("Complaint '%s' added with ID %d.", description, id),
					TaskID:  id,
				}, nil
			},
		},
		Tool{
			Name:        "updateTask",
			Description: "Updates an existing maintenance task. Can be used to change the status or the assignee.",
			Params: []Param{
				{Name: "taskId", Type: genai.TypeNumber, Description: "The ID of the task to update.", Required: true},
				{Name: "status", Type: genai.TypeString, Description: "The new status of the task. Must be one of: " + statusList, Enum: statusEnum},
				{Name: "assignedTo", Type: genai.TypeString, Description: "The name of the new person assigned to the task."},
			},
			run: func(ctx context.Context, args []any) (models.ToolResult, error) {
				id, _ := optInt(args[0])
				var status *models.TaskStatus
				if s, ok := optString(args[1]); ok {
					st := models.TaskStatus(s)
					status = &st
				}
				var assignedTo *string
				if a, ok := optString(args[2]); ok {
					assignedTo = &a
				}
				err := tasks.Update(id, status, assignedTo)
				switch {
				case errors.Is(err, store.ErrNotFound):
					return failf("Task with ID %d not found.", id), nil
				case errors.Is(err, store.ErrNoUpdates):
					return failf("No updates provided for task ID %d.", id), nil
				case err != nil:
					return models.ToolResult{}, err
				}
				return models.ToolResult{
					Success: true,
					Message: fmt.Sprintf("Task ID %d has been updated.", id),
				}, nil
			},
		},
		Tool{
			Name:        "deleteTask",
			Description: "Deletes a maintenance task from the system.",
			Params: []Param{
				{Name: "taskId", Type: genai.TypeNumber, Description: "The ID of the task to delete.", Required: true},
			},
			run: func(ctx context.Context, args []any) (models.ToolResult, error) {
				id, _ := optInt(args[0])
				err := tasks.Delete(id)
				if errors.Is(err, store.ErrNotFound) {
					return failf("Task with ID %d not found.", id), nil
				}
				if err != nil {
					return models.ToolResult{}, err
				}
				return models.ToolResult{
					Success: true,
					Message: fmt.Sprintf("Task ID %d has been deleted.", id),
				}, nil
			},
		},
		Tool{
			Name:        "getTasks",
			Description: "Retrieves a list of maintenance tasks, optionally filtered by status.",
			Params: []Param{
				{Name: "status", Type: genai.TypeString, Description: "The status to filter tasks by. If omitted, all tasks are returned. Must be one of: " + statusList, Enum: statusEnum},
			},
			run: func(ctx context.Context, args []any) (models.ToolResult, error) {
				var filter *models.TaskStatus
				if s, ok := optString(args[0]); ok {
					st := models.TaskStatus(s)
					filter = &st
				}
				list := tasks.List(filter)
				return models.ToolResult{
					Success: true,
					Message: fmt.Sprintf("Found %d task(s).", len(list)),
					Tasks:   list,
				}, nil
			},
		},
		Tool{
			Name:        "createGoogleSheetForTask",
			Description: "Creates a downloadable, styled spreadsheet (.xls file) with the details of a specific task. Statuses are color-coded for easy viewing.",
			Params: []Param{
				{Name: "taskId", Type: genai.TypeNumber, Description: "The ID of the task to create a spreadsheet for.", Required: true},
			},
			run: func(ctx context.Context, args []any) (models.ToolResult, error) {
				id, _ := optInt(args[0])
				task, ok := tasks.Get(id)
				if !ok {
					return failf("Task with ID %d not found.", id), nil
				}
				filename := export.TaskFilename(id)
				title := fmt.Sprintf("Details for Task ID: %d", id)
				staging.Put(filename, export.BuildSheet([]models.Task{task}, title))
				return models.ToolResult{
					Success: true,
					Message: fmt.Sprintf("A styled spreadsheet for task %d has been downloaded.", id),
					File:    filename,
				}, nil
			},
		},
		Tool{
			Name:        "createGoogleSheetForAllTasks",
			Description: "Creates a single downloadable, styled spreadsheet (.xls file) containing all tasks. Statuses are color-coded for easy viewing.",
			run: func(ctx context.Context, args []any) (models.ToolResult, error) {
				list := tasks.List(nil)
				if len(list) == 0 {
					return models.ToolResult{Success: false, Message: "There are no tasks to export."}, nil
				}
				staging.Put(export.AllTasksFilename, export.BuildSheet(list, "All Tasks Report"))
				return models.ToolResult{
					Success: true,
					Message: fmt.Sprintf("A styled spreadsheet with all %d tasks has been downloaded.", len(list)),
					File:    export.AllTasksFilename,
				}, nil
			},
		},
	)
}

func failf(format string, args ...any) models.ToolResult {
	return models.ToolResult{Success: false, Message: fmt.Sprintf(format, args...)}
}
