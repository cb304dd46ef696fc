package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/spec-kit/hrms-service/internal/repository"
)

func handleMyTasks(ctx context.Context, d *Dispatcher, s *session) (Reply, error) {
	now := s.now
	tasks, err := d.stores.Tasks.List(ctx, repository.TaskFilter{
		OrganizationID: s.actor.OrganizationID,
		AssigneeID:     s.subject.ID,
		DueAfter:       &now,
		SortAscending:  true,
		Limit:          5,
	})
	if err != nil {
		return Reply{}, err
	}
	if len(tasks) == 0 {
		return Reply{Answer: s.who("have", "has") + " no active tasks."}, nil
	}
	lines := make([]string, len(tasks))
	for i, t := range tasks {
		lines[i] = fmt.Sprintf("%s (Due: %s, Status: %s)", t.Title, formatDate(t.EndDate, s.loc), t.Status)
	}
	return Reply{Answer: s.poss() + " current tasks:\n" + strings.Join(lines, "\n")}, nil
}

func handleAllMyTasks(ctx context.Context, d *Dispatcher, s *session) (Reply, error) {
	tasks, err := d.stores.Tasks.List(ctx, repository.TaskFilter{
		OrganizationID: s.actor.OrganizationID,
		AssigneeID:     s.subject.ID,
		Limit:          10,
	})
	if err != nil {
		return Reply{}, err
	}
	if len(tasks) == 0 {
		return Reply{Answer: s.who("have", "has") + " no tasks."}, nil
	}
	lead := "All your tasks:"
	if !s.aboutSelf() {
		lead = s.subject.FullName + "'s tasks:"
	}
	lines := make([]string, len(tasks))
	for i, t := range tasks {
		lines[i] = fmt.Sprintf("%s (Due: %s, Status: %s)", t.Title, formatDate(t.EndDate, s.loc), t.Status)
	}
	return Reply{Answer: lead + "\n" + strings.Join(lines, "\n")}, nil
}

func handleAllStaffTasks(ctx context.Context, d *Dispatcher, s *session) (Reply, error) {
	now := s.now
	tasks, err := d.stores.Tasks.List(ctx, repository.TaskFilter{
		OrganizationID: s.actor.OrganizationID,
		DueAfter:       &now,
		SortAscending:  true,
		Limit:          10,
	})
	if err != nil {
		return Reply{}, err
	}
	if len(tasks) == 0 {
		return Reply{Answer: "No active tasks for any staff."}, nil
	}
	lines := make([]string, len(tasks))
	for i, t := range tasks {
		names := make([]string, len(t.Assignees))
		for j, a := range t.Assignees {
			names[j] = a.FullName
		}
		lines[i] = fmt.Sprintf("%s (Due: %s, Status: %s, Assigned to: %s)",
			t.Title, formatDate(t.EndDate, s.loc), t.Status, strings.Join(names, ", "))
	}
	return Reply{Answer: "Active tasks for staff:\n" + strings.Join(lines, "\n")}, nil
}

func handleViewTasks(ctx context.Context, d *Dispatcher, s *session) (Reply, error) {
	now := s.now
	tasks, err := d.stores.Tasks.List(ctx, repository.TaskFilter{
		OrganizationID: s.actor.OrganizationID,
		AssigneeID:     s.subject.ID,
		DueAfter:       &now,
		SortAscending:  true,
		Limit:          10,
	})
	if err != nil {
		return Reply{}, err
	}
	if len(tasks) == 0 {
		return Reply{Answer: s.who("have", "has") + " no active tasks."}, nil
	}
	lines := make([]string, len(tasks))
	for i, t := range tasks {
		lines[i] = fmt.Sprintf("%s (Due: %s, Status: %s)", t.Title, formatDate(t.EndDate, s.loc), t.Status)
	}
	return Reply{Answer: s.poss() + " active tasks:\n" + strings.Join(lines, "\n")}, nil
}
