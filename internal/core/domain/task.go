package domain

import "time"

// TaskStatusOpen is the default status for newly assigned tasks. Later status
// values are free-form strings; only creation is gated.
const TaskStatusOpen = "open"

// Task is a work item an admin assigns to another user. It is independent of
// the purchase workflow but shares the role model.
type Task struct {
	ID          string     `json:"id" bson:"_id,omitempty"`
	AssignedBy  string     `json:"assigned_by" bson:"assigned_by"`
	AssignedTo  string     `json:"assigned_to" bson:"assigned_to"`
	Title       string     `json:"title" bson:"title"`
	Description string     `json:"description,omitempty" bson:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty" bson:"due_date,omitempty"`
	Status      string     `json:"status" bson:"status"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" bson:"updated_at"`
}
