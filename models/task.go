package models

import "time"

// TaskStatus is the lifecycle of a follow-up card. The workflow only ever
// creates cards as NotStarted; completion happens in the task board UI.
type TaskStatus string

const (
	TaskStatusNotStarted TaskStatus = "not_started"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// FollowUpTask is a card on a show's task board, auto-created to track
// required action on a prop (repair, replacement, search for a missing item).
// Stored under todo_boards/{boardId}/lists/{listId}/cards.
type FollowUpTask struct {
	ID          string         `json:"id"`
	PropId      string         `json:"prop_id"`
	ShowId      string         `json:"show_id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	AssignedTo  []string       `json:"assigned_to,omitempty"`
	Priority    StatusPriority `json:"priority"`
	Status      TaskStatus     `json:"status"`
	Completed   bool           `json:"completed"`
	Labels      []string       `json:"labels,omitempty"`
	CreatedBy   string         `json:"created_by,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// TodoBoard is the board document owned by a show. Lists/cards live in
// subcollections; the workflow never manages board or list lifecycle.
type TodoBoard struct {
	ID     string `json:"id"`
	ShowId string `json:"show_id"`
	Name   string `json:"name,omitempty"`
}

type TodoList struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}
