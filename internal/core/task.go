package core

// CompletionDetail tracks one assignee's progress on a shared task.
// Completion is per-person: a task assigned to three people has three
// independent completion records.
type CompletionDetail struct {
	User        Ref  `json:"user"`
	Completed   bool `json:"completed"`
	CompletedAt Date `json:"completedAt"`
}

// TodoTask is a shared household task as returned by the family API.
// CanEdit is optional: when the server supplies it, that value is
// authoritative and local recomputation is skipped.
type TodoTask struct {
	ID                string             `json:"_id"`
	Title             string             `json:"title"`
	Priority          Priority           `json:"priority"`
	DueDate           Date               `json:"dueDate"`
	AssignedTo        []Ref              `json:"assignedTo"`
	CompletionDetails []CompletionDetail `json:"completionDetails"`
	CreatedBy         Ref                `json:"createdBy"`
	CanEdit           *bool              `json:"canEdit,omitempty"`
}

func (t TodoTask) Validate() error {
	if t.Title == "" {
		return ErrEmptyTitle
	}
	switch t.Priority {
	case PriorityLow, PriorityMedium, PriorityHigh, "":
	default:
		return ErrInvalidType
	}
	return nil
}

// TotalAssigned returns the number of assignees. Zero means unassigned.
func (t TodoTask) TotalAssigned() int {
	return len(t.AssignedTo)
}

// CompletedCount counts assignees whose own completion record is done.
func (t TodoTask) CompletedCount() int {
	n := 0
	for _, cd := range t.CompletionDetails {
		if cd.Completed {
			n++
		}
	}
	return n
}

// AllCompleted reports whether every assignee has finished. An unassigned
// task is never "all completed".
func (t TodoTask) AllCompleted() bool {
	total := t.TotalAssigned()
	return total > 0 && t.CompletedCount() == total
}

// CompletionPercentage is round(completed/assigned*100), 0 when unassigned.
func (t TodoTask) CompletionPercentage() int {
	return Percent(int64(t.CompletedCount()), int64(t.TotalAssigned()))
}

// IsAssignee reports whether the user is among the task's assignees.
func (t TodoTask) IsAssignee(userID string) bool {
	for _, a := range t.AssignedTo {
		if a.ID == userID {
			return true
		}
	}
	return false
}

// CompletionFor returns the user's own completion record, if any.
func (t TodoTask) CompletionFor(userID string) (CompletionDetail, bool) {
	for _, cd := range t.CompletionDetails {
		if cd.User.ID == userID {
			return cd, true
		}
	}
	return CompletionDetail{}, false
}
