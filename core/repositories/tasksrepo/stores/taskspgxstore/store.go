package taskspgxstore

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jrazmi/zentask/core/repositories"
	"github.com/jrazmi/zentask/core/repositories/storeerrs"
	"github.com/jrazmi/zentask/core/repositories/tasksrepo"
	"github.com/jrazmi/zentask/core/scaffolding/fop"
	"github.com/jrazmi/zentask/infrastructure/postgresdb"
	"github.com/jrazmi/zentask/sdk/logger"
)

// selectTasks joins every task with the project fields shown beside it.
const selectTasks = `SELECT t.task_id, t.user_id, t.project_id, t.title, t.description,
		t.status, t.priority, t.due_date, t.sort_order, t.created_at, t.updated_at,
		p.name AS project_name, p.is_default AS project_is_default, p.show_in_today AS project_show_in_today
	FROM tasks t
	JOIN projects p ON p.project_id = t.project_id`

type Store struct {
	log  *logger.Logger
	pool *postgresdb.Pool
}

func NewStore(log *logger.Logger, pool *postgresdb.Pool) *Store {
	return &Store{
		log:  log,
		pool: pool,
	}
}

func (s *Store) Create(ctx context.Context, t tasksrepo.Task) (tasksrepo.Task, error) {
	query := `INSERT INTO tasks (task_id, user_id, project_id, title, description, status, priority, due_date, sort_order, created_at, updated_at)
		VALUES (@task_id, @user_id, @project_id, @title, @description, @status, @priority, @due_date, @sort_order, @created_at, @updated_at)`

	args := pgx.NamedArgs{
		"task_id":     t.TaskID,
		"user_id":     t.UserID,
		"project_id":  t.ProjectID,
		"title":       t.Title,
		"description": t.Description,
		"status":      int16(t.Status),
		"priority":    int16(t.Priority),
		"due_date":    t.DueDate,
		"sort_order":  t.SortOrder,
		"created_at":  t.CreatedAt,
		"updated_at":  t.UpdatedAt,
	}

	if _, err := postgresdb.Querier(ctx, s.pool).Exec(ctx, query, args); err != nil {
		return tasksrepo.Task{}, storeerrs.FromPostgres(err)
	}
	return s.Get(ctx, t.TaskID, t.UserID)
}

func (s *Store) Get(ctx context.Context, taskID, userID string) (tasksrepo.Task, error) {
	query := selectTasks + ` WHERE t.task_id = @task_id AND t.user_id = @user_id`

	rows, err := postgresdb.Querier(ctx, s.pool).Query(ctx, query, pgx.NamedArgs{"task_id": taskID, "user_id": userID})
	if err != nil {
		return tasksrepo.Task{}, storeerrs.FromPostgres(err)
	}
	defer rows.Close()

	task, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[tasksrepo.Task])
	if err != nil {
		return tasksrepo.Task{}, storeerrs.FromPostgres(err)
	}
	return task, nil
}

func (s *Store) List(ctx context.Context, filter tasksrepo.QueryFilter, orderBy fop.By, page fop.Page) ([]tasksrepo.Task, error) {
	args := pgx.NamedArgs{}
	buf := bytes.NewBufferString(selectTasks)
	applyFilter(filter, args, buf)

	if err := postgresdb.AddOrderByClause(buf, orderBy.Field, tasksrepo.PKField, orderBy.Direction); err != nil {
		return nil, err
	}
	postgresdb.AddPageClause(page.Limit, page.Offset(), args, buf)

	return s.many(ctx, buf.String(), args)
}

func (s *Store) Count(ctx context.Context, filter tasksrepo.QueryFilter) (int, error) {
	args := pgx.NamedArgs{}
	buf := bytes.NewBufferString(`SELECT COUNT(*) FROM tasks t`)
	applyFilter(filter, args, buf)

	var count int
	if err := postgresdb.Querier(ctx, s.pool).QueryRow(ctx, buf.String(), args).Scan(&count); err != nil {
		return 0, storeerrs.FromPostgres(err)
	}
	return count, nil
}

// applyFilter writes the WHERE clause. The due date filter compares the
// stored day, read as UTC midnight, against the exact instant given.
func applyFilter(filter tasksrepo.QueryFilter, args pgx.NamedArgs, buf *bytes.Buffer) {
	buf.WriteString(" WHERE t.user_id = @user_id")
	args["user_id"] = filter.UserID

	if filter.ProjectID != nil {
		buf.WriteString(" AND t.project_id = @project_id")
		args["project_id"] = *filter.ProjectID
	}
	if filter.Status != nil {
		buf.WriteString(" AND t.status = @status")
		args["status"] = int16(*filter.Status)
	}
	if filter.Priority != nil {
		buf.WriteString(" AND t.priority = @priority")
		args["priority"] = int16(*filter.Priority)
	}
	if filter.DueDate != nil {
		buf.WriteString(" AND (t.due_date::timestamp AT TIME ZONE 'UTC') = @due_date")
		args["due_date"] = filter.DueDate.UTC()
	}
}

func (s *Store) Update(ctx context.Context, taskID string, update tasksrepo.UpdateTask, updatedAt time.Time) error {
	sets := []string{"updated_at = @updated_at"}
	args := pgx.NamedArgs{"task_id": taskID, "updated_at": updatedAt}

	if update.Title != nil {
		sets = append(sets, "title = @title")
		args["title"] = *update.Title
	}
	if update.Description != nil {
		sets = append(sets, "description = @description")
		args["description"] = *update.Description
	}
	if update.Status != nil {
		sets = append(sets, "status = @status")
		args["status"] = int16(*update.Status)
	}
	if update.Priority != nil {
		sets = append(sets, "priority = @priority")
		args["priority"] = int16(*update.Priority)
	}
	if update.DueDate != nil {
		sets = append(sets, "due_date = @due_date")
		args["due_date"] = *update.DueDate
	}

	query := `UPDATE tasks SET ` + strings.Join(sets, ", ") + ` WHERE task_id = @task_id`
	return s.exec(ctx, query, args, taskID)
}

func (s *Store) Delete(ctx context.Context, taskID string) error {
	return s.exec(ctx, `DELETE FROM tasks WHERE task_id = @task_id`, pgx.NamedArgs{"task_id": taskID}, taskID)
}

func (s *Store) MaxSortOrder(ctx context.Context, projectID string) (int, error) {
	var max int
	query := `SELECT COALESCE(MAX(sort_order), 0) FROM tasks WHERE project_id = @project_id`
	if err := postgresdb.Querier(ctx, s.pool).QueryRow(ctx, query, pgx.NamedArgs{"project_id": projectID}).Scan(&max); err != nil {
		return 0, storeerrs.FromPostgres(err)
	}
	return max, nil
}

func (s *Store) CountOwned(ctx context.Context, userID string, taskIDs []string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM tasks WHERE user_id = @user_id AND task_id::text = ANY(@task_ids::text[])`
	if err := postgresdb.Querier(ctx, s.pool).QueryRow(ctx, query, pgx.NamedArgs{"user_id": userID, "task_ids": taskIDs}).Scan(&count); err != nil {
		return 0, storeerrs.FromPostgres(err)
	}
	return count, nil
}

func (s *Store) SetSortOrder(ctx context.Context, taskID string, sortOrder int, updatedAt time.Time) error {
	query := `UPDATE tasks SET sort_order = @sort_order, updated_at = @updated_at WHERE task_id = @task_id`
	args := pgx.NamedArgs{"task_id": taskID, "sort_order": sortOrder, "updated_at": updatedAt}
	return s.exec(ctx, query, args, taskID)
}

func (s *Store) ListToday(ctx context.Context, userID string, w tasksrepo.Window) ([]tasksrepo.Task, error) {
	query := selectTasks + `
	WHERE t.user_id = @user_id
		AND p.show_in_today
		AND (
			(t.due_date >= @due_from AND t.due_date < @due_to)
			OR (t.due_date IS NULL AND t.created_at >= @created_from AND t.created_at < @created_to)
		)
	ORDER BY t.status ASC, t.due_date ASC NULLS LAST, t.sort_order ASC, t.task_id ASC`

	args := pgx.NamedArgs{
		"user_id":      userID,
		"due_from":     w.DueFrom,
		"due_to":       w.DueTo,
		"created_from": w.CreatedFrom,
		"created_to":   w.CreatedTo,
	}
	return s.many(ctx, query, args)
}

func (s *Store) ListUpcoming(ctx context.Context, userID string, w tasksrepo.Window) ([]tasksrepo.Task, error) {
	query := selectTasks + `
	WHERE t.user_id = @user_id
		AND t.status = @status
		AND t.due_date >= @due_from AND t.due_date < @due_to
	ORDER BY t.due_date ASC, t.sort_order ASC, t.task_id ASC`

	args := pgx.NamedArgs{
		"user_id":  userID,
		"status":   int16(tasksrepo.StatusPending),
		"due_from": w.DueFrom,
		"due_to":   w.DueTo,
	}
	return s.many(ctx, query, args)
}

func (s *Store) many(ctx context.Context, query string, args pgx.NamedArgs) ([]tasksrepo.Task, error) {
	rows, err := postgresdb.Querier(ctx, s.pool).Query(ctx, query, args)
	if err != nil {
		return nil, storeerrs.FromPostgres(err)
	}
	defer rows.Close()

	tasks, err := pgx.CollectRows(rows, pgx.RowToStructByName[tasksrepo.Task])
	if err != nil {
		return nil, storeerrs.FromPostgres(err)
	}
	return tasks, nil
}

func (s *Store) exec(ctx context.Context, query string, args pgx.NamedArgs, taskID string) error {
	tag, err := postgresdb.Querier(ctx, s.pool).Exec(ctx, query, args)
	if err != nil {
		return storeerrs.FromPostgres(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("task %s: %w", taskID, repositories.ErrNotFound)
	}
	return nil
}
