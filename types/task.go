package types

import "time"

type Task struct {
	ID             string     `json:"id,omitempty"`
	Content        string     `json:"content,omitempty"`
	Title          string     `json:"title,omitempty"` // legacy column, see supabase.normalizeTask
	Status         string     `json:"status,omitempty"`
	Priority       string     `json:"priority,omitempty"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	AssignedTo     *string    `json:"assigned_to,omitempty"`
	CreatedBy      *string    `json:"created_by,omitempty"`
	CompletionDate *time.Time `json:"completion_date,omitempty"`
	DiscordUserID  *string    `json:"discord_user_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at,omitempty"`
}

const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
)
