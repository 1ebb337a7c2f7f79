package views

import (
	"time"

	"famboard/internal/core"
)

// nearDeadlineWindow is how far ahead a due date counts as "near".
const nearDeadlineWindow = 24 * time.Hour

// TaskView is one task annotated with the viewer-relative permission and
// deadline flags plus the shared completion figures.
//
// Overdue and near-deadline are inherently per-assignee: a shared task
// tracks independent completion per person, so a task assigned to three
// people where one finished must keep warning the other two and stop
// warning the one who is done.
type TaskView struct {
	Task core.TodoTask `json:"task"`

	CanEdit         bool `json:"canEdit"`
	CanToggleStatus bool `json:"canToggleStatus"`

	IsOverdueForViewer      bool `json:"isOverdueForViewer"`
	IsNearDeadlineForViewer bool `json:"isNearDeadlineForViewer"`

	TotalAssigned        int  `json:"totalAssigned"`
	CompletedCount       int  `json:"completedCount"`
	AllCompleted         bool `json:"allCompleted"`
	CompletionPercentage int  `json:"completionPercentage"`

	// Owner-facing aggregate: names of assignees still pending, split by
	// whether their due date has passed or is inside the next 24h.
	OverdueMemberNames      []string `json:"overdueMemberNames"`
	NearDeadlineMemberNames []string `json:"nearDeadlineMemberNames"`
}

// DeriveTaskView computes every derived flag for one task without mutating
// it. The member list resolves display names; the viewer decides the
// permission flags. now is injected so screens and tests agree on the clock.
func DeriveTaskView(task core.TodoTask, members []core.Member, viewer core.Viewer, now time.Time) TaskView {
	view := TaskView{
		Task:                    task,
		TotalAssigned:           task.TotalAssigned(),
		CompletedCount:          task.CompletedCount(),
		AllCompleted:            task.AllCompleted(),
		CompletionPercentage:    task.CompletionPercentage(),
		OverdueMemberNames:      []string{},
		NearDeadlineMemberNames: []string{},
	}

	// The server is authoritative on canEdit when it opines.
	if task.CanEdit != nil {
		view.CanEdit = *task.CanEdit
	} else {
		view.CanEdit = viewer.IsOwner || (viewer.UserID != "" && viewer.UserID == task.CreatedBy.ID)
	}
	view.CanToggleStatus = view.CanEdit || task.IsAssignee(viewer.UserID)

	overdue, near := deadlinePhase(task.DueDate, now)

	if task.IsAssignee(viewer.UserID) && !view.AllCompleted && !assigneeDone(task, viewer.UserID) {
		view.IsOverdueForViewer = overdue
		view.IsNearDeadlineForViewer = near
	}

	if overdue || near {
		names := make(map[string]string, len(members))
		for _, m := range members {
			names[m.User.ID] = core.DisplayName(m.User)
		}
		for _, a := range task.AssignedTo {
			if assigneeDone(task, a.ID) {
				continue
			}
			name, known := names[a.ID]
			if !known {
				name = core.DisplayName(a)
			}
			if overdue {
				view.OverdueMemberNames = append(view.OverdueMemberNames, name)
			} else {
				view.NearDeadlineMemberNames = append(view.NearDeadlineMemberNames, name)
			}
		}
	}

	return view
}

// DeriveTaskViews maps DeriveTaskView over a task list, preserving order.
func DeriveTaskViews(tasks []core.TodoTask, members []core.Member, viewer core.Viewer, now time.Time) []TaskView {
	out := make([]TaskView, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, DeriveTaskView(task, members, viewer, now))
	}
	return out
}

// deadlinePhase classifies a due date against now: already passed, or due
// within the near window. A zero due date is neither.
func deadlinePhase(due core.Date, now time.Time) (overdue, near bool) {
	if due.IsZero() {
		return false, false
	}
	until := due.Sub(now)
	switch {
	case until <= 0:
		return true, false
	case until <= nearDeadlineWindow:
		return false, true
	default:
		return false, false
	}
}

// assigneeDone reports whether the user's own completion record is done.
// A missing record counts as not done.
func assigneeDone(task core.TodoTask, userID string) bool {
	cd, ok := task.CompletionFor(userID)
	return ok && cd.Completed
}
