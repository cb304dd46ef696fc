package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/hrms-service/internal/domain"
)

// TaskRepository exposes read access to assignable tasks.
type TaskRepository interface {
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
}

// TaskFilter defines query params for task listings. AssigneeID restricts
// to tasks assigned to that user; when empty the whole organization is
// listed.
type TaskFilter struct {
	OrganizationID string
	AssigneeID     string
	DueAfter       *time.Time
	SortAscending  bool
	Limit          int
}

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository instantiates the repository.
func NewTaskRepository(pool *pgxpool.Pool) TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) List(ctx context.Context, filter TaskFilter) ([]domain.Task, error) {
	query := `
        SELECT t.id, t.organization_id, t.title, t.status, t.end_date
        FROM tasks t`
	args := []any{}
	clauses := []string{}

	if filter.AssigneeID != "" {
		args = append(args, filter.AssigneeID)
		query += fmt.Sprintf(" JOIN task_assignees ta ON ta.task_id = t.id AND ta.user_id = $%d", len(args))
	}
	if filter.OrganizationID != "" {
		args = append(args, filter.OrganizationID)
		clauses = append(clauses, fmt.Sprintf("t.organization_id=$%d", len(args)))
	}
	if filter.DueAfter != nil {
		args = append(args, *filter.DueAfter)
		clauses = append(clauses, fmt.Sprintf("t.end_date >= $%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	if filter.SortAscending {
		query += " ORDER BY t.end_date ASC"
	} else {
		query += " ORDER BY t.end_date DESC"
	}
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.OrganizationID, &t.Title, &t.Status, &t.EndDate); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return tasks, nil
	}
	return r.attachAssignees(ctx, tasks)
}

func (r *taskRepository) attachAssignees(ctx context.Context, tasks []domain.Task) ([]domain.Task, error) {
	ids := make([]string, 0, len(tasks))
	index := make(map[string]int, len(tasks))
	for i, t := range tasks {
		ids = append(ids, t.ID)
		index[t.ID] = i
	}

	const query = `
        SELECT ta.task_id, ta.user_id, u.full_name
        FROM task_assignees ta
        JOIN users u ON u.id = ta.user_id
        WHERE ta.task_id = ANY($1)
        ORDER BY u.full_name`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var taskID string
		var assignee domain.TaskAssignee
		if err := rows.Scan(&taskID, &assignee.UserID, &assignee.FullName); err != nil {
			return nil, err
		}
		if i, ok := index[taskID]; ok {
			tasks[i].Assignees = append(tasks[i].Assignees, assignee)
		}
	}
	return tasks, rows.Err()
}
