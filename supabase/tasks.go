package supabase

import (
	"encoding/json"
	"fmt"
	"time"

	"formulaihu/flow-bot/types"

	"github.com/supabase-community/postgrest-go"
)

const taskListLimit = 10

// normalizeTasks folds the legacy title column into content so handlers only
// ever see one text field. Rows written before the content migration carry
// title only.
func normalizeTasks(tasks []types.Task) {
	for i := range tasks {
		if tasks[i].Content == "" {
			tasks[i].Content = tasks[i].Title
		}
	}
}

// InsertTask creates a pending task captured from Discord. The raw Discord
// user id is attached so anonymous capture works without a linked profile.
func InsertTask(client *Client, content, discordUserID string, createdBy *string) (types.Task, error) {
	task := types.Task{
		Content:       content,
		Status:        types.TaskStatusPending,
		DiscordUserID: &discordUserID,
		CreatedBy:     createdBy,
		CreatedAt:     time.Now(),
	}

	created := []types.Task{task}
	resp, _, err := client.From("tasks").Insert(created, false, "", "", "").Execute()
	if err != nil {
		return types.Task{}, fmt.Errorf("failed to insert task: %w", err)
	}

	if err := json.Unmarshal(resp, &created); err != nil {
		return types.Task{}, fmt.Errorf("failed to parse inserted task: %w", err)
	}
	if len(created) == 0 {
		return task, nil
	}
	normalizeTasks(created)
	return created[0], nil
}

// TasksCreatedBy lists the caller's most recent tasks, newest first.
func TasksCreatedBy(client *Client, profileID string) ([]types.Task, error) {
	return listTasks(client, "created_by", profileID)
}

// TasksAssignedTo lists the tasks assigned to the caller, newest first.
func TasksAssignedTo(client *Client, profileID string) ([]types.Task, error) {
	return listTasks(client, "assigned_to", profileID)
}

func listTasks(client *Client, column, profileID string) ([]types.Task, error) {
	resp, _, err := client.From("tasks").
		Select("*", "", false).
		Eq(column, profileID).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Limit(taskListLimit, "").
		Execute()

	if err != nil {
		return nil, fmt.Errorf("failed to fetch tasks: %w", err)
	}

	var tasks []types.Task
	if err := json.Unmarshal(resp, &tasks); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tasks: %w", err)
	}

	normalizeTasks(tasks)
	return tasks, nil
}

// CompleteOwnedTask marks a task completed. Ownership is part of the update
// predicate itself: a task id belonging to someone else matches zero rows,
// so there is no separate read to race against.
func CompleteOwnedTask(client *Client, taskID, profileID string) (*types.Task, error) {
	updates := map[string]interface{}{
		"status":          types.TaskStatusCompleted,
		"completion_date": time.Now(),
	}

	resp, _, err := client.From("tasks").
		Update(updates, "", "").
		Eq("id", taskID).
		Eq("created_by", profileID).
		Execute()

	if err != nil {
		return nil, fmt.Errorf("failed to complete task: %w", err)
	}

	var updated []types.Task
	if err := json.Unmarshal(resp, &updated); err != nil {
		return nil, fmt.Errorf("failed to parse update result: %w", err)
	}
	if len(updated) == 0 {
		return nil, nil
	}
	normalizeTasks(updated)
	return &updated[0], nil
}
