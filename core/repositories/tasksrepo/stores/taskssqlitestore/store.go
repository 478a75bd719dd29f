package taskssqlitestore

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jrazmi/zentask/core/repositories"
	"github.com/jrazmi/zentask/core/repositories/storeerrs"
	"github.com/jrazmi/zentask/core/repositories/tasksrepo"
	"github.com/jrazmi/zentask/core/scaffolding/fop"
	"github.com/jrazmi/zentask/infrastructure/sqlitedb"
	"github.com/jrazmi/zentask/sdk/logger"
)

const selectTasks = `SELECT t.task_id, t.user_id, t.project_id, t.title, t.description,
		t.status, t.priority, t.due_date, t.sort_order, t.created_at, t.updated_at,
		p.name AS project_name, p.is_default AS project_is_default, p.show_in_today AS project_show_in_today
	FROM tasks t
	JOIN projects p ON p.project_id = t.project_id`

type Store struct {
	log *logger.Logger
	db  *sqlx.DB
}

func NewStore(log *logger.Logger, db *sqlx.DB) *Store {
	return &Store{
		log: log,
		db:  db,
	}
}

// bindTask returns named arguments with times in UTC.
func bindTask(t tasksrepo.Task) map[string]any {
	var due any
	if t.DueDate != nil {
		due = t.DueDate.UTC()
	}
	return map[string]any{
		"task_id":     t.TaskID,
		"user_id":     t.UserID,
		"project_id":  t.ProjectID,
		"title":       t.Title,
		"description": t.Description,
		"status":      int16(t.Status),
		"priority":    int16(t.Priority),
		"due_date":    due,
		"sort_order":  t.SortOrder,
		"created_at":  t.CreatedAt.UTC(),
		"updated_at":  t.UpdatedAt.UTC(),
	}
}

func (s *Store) Create(ctx context.Context, t tasksrepo.Task) (tasksrepo.Task, error) {
	query := `INSERT INTO tasks (task_id, user_id, project_id, title, description, status, priority, due_date, sort_order, created_at, updated_at)
		VALUES (:task_id, :user_id, :project_id, :title, :description, :status, :priority, :due_date, :sort_order, :created_at, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, sqlitedb.Querier(ctx, s.db), query, bindTask(t)); err != nil {
		return tasksrepo.Task{}, storeerrs.FromSQLite(err)
	}
	return s.Get(ctx, t.TaskID, t.UserID)
}

func (s *Store) Get(ctx context.Context, taskID, userID string) (tasksrepo.Task, error) {
	var task tasksrepo.Task
	query := selectTasks + ` WHERE t.task_id = ? AND t.user_id = ?`
	if err := sqlx.GetContext(ctx, sqlitedb.Querier(ctx, s.db), &task, query, taskID, userID); err != nil {
		return tasksrepo.Task{}, storeerrs.FromSQLite(err)
	}
	return task, nil
}

func (s *Store) List(ctx context.Context, filter tasksrepo.QueryFilter, orderBy fop.By, page fop.Page) ([]tasksrepo.Task, error) {
	buf := bytes.NewBufferString(selectTasks)
	args := applyFilter(filter, buf)

	if err := sqlitedb.AddOrderByClause(buf, orderBy.Field, tasksrepo.PKField, orderBy.Direction); err != nil {
		return nil, err
	}
	args = sqlitedb.AddPageClause(page.Limit, page.Offset(), args, buf)

	return s.many(ctx, buf.String(), args...)
}

func (s *Store) Count(ctx context.Context, filter tasksrepo.QueryFilter) (int, error) {
	buf := bytes.NewBufferString(`SELECT COUNT(*) FROM tasks t`)
	args := applyFilter(filter, buf)

	var count int
	if err := sqlx.GetContext(ctx, sqlitedb.Querier(ctx, s.db), &count, buf.String(), args...); err != nil {
		return 0, storeerrs.FromSQLite(err)
	}
	return count, nil
}

// applyFilter writes the WHERE clause and returns its arguments. The due
// date filter is an exact match on the stored value.
func applyFilter(filter tasksrepo.QueryFilter, buf *bytes.Buffer) []any {
	buf.WriteString(" WHERE t.user_id = ?")
	args := []any{filter.UserID}

	if filter.ProjectID != nil {
		buf.WriteString(" AND t.project_id = ?")
		args = append(args, *filter.ProjectID)
	}
	if filter.Status != nil {
		buf.WriteString(" AND t.status = ?")
		args = append(args, int16(*filter.Status))
	}
	if filter.Priority != nil {
		buf.WriteString(" AND t.priority = ?")
		args = append(args, int16(*filter.Priority))
	}
	if filter.DueDate != nil {
		buf.WriteString(" AND t.due_date = ?")
		args = append(args, filter.DueDate.UTC())
	}
	return args
}

func (s *Store) Update(ctx context.Context, taskID string, update tasksrepo.UpdateTask, updatedAt time.Time) error {
	sets := []string{"updated_at = ?"}
	args := []any{updatedAt.UTC()}

	if update.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *update.Title)
	}
	if update.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *update.Description)
	}
	if update.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, int16(*update.Status))
	}
	if update.Priority != nil {
		sets = append(sets, "priority = ?")
		args = append(args, int16(*update.Priority))
	}
	if update.DueDate != nil {
		sets = append(sets, "due_date = ?")
		args = append(args, update.DueDate.UTC())
	}
	args = append(args, taskID)

	query := `UPDATE tasks SET ` + strings.Join(sets, ", ") + ` WHERE task_id = ?`
	return s.exec(ctx, taskID, query, args...)
}

func (s *Store) Delete(ctx context.Context, taskID string) error {
	return s.exec(ctx, taskID, `DELETE FROM tasks WHERE task_id = ?`, taskID)
}

func (s *Store) MaxSortOrder(ctx context.Context, projectID string) (int, error) {
	var max int
	query := `SELECT COALESCE(MAX(sort_order), 0) FROM tasks WHERE project_id = ?`
	if err := sqlx.GetContext(ctx, sqlitedb.Querier(ctx, s.db), &max, query, projectID); err != nil {
		return 0, storeerrs.FromSQLite(err)
	}
	return max, nil
}

func (s *Store) CountOwned(ctx context.Context, userID string, taskIDs []string) (int, error) {
	query, args, err := sqlx.In(`SELECT COUNT(*) FROM tasks WHERE user_id = ? AND task_id IN (?)`, userID, taskIDs)
	if err != nil {
		return 0, fmt.Errorf("expand ids: %w", err)
	}

	var count int
	if err := sqlx.GetContext(ctx, sqlitedb.Querier(ctx, s.db), &count, s.db.Rebind(query), args...); err != nil {
		return 0, storeerrs.FromSQLite(err)
	}
	return count, nil
}

func (s *Store) SetSortOrder(ctx context.Context, taskID string, sortOrder int, updatedAt time.Time) error {
	query := `UPDATE tasks SET sort_order = ?, updated_at = ? WHERE task_id = ?`
	return s.exec(ctx, taskID, query, sortOrder, updatedAt.UTC(), taskID)
}

func (s *Store) ListToday(ctx context.Context, userID string, w tasksrepo.Window) ([]tasksrepo.Task, error) {
	query := selectTasks + `
	WHERE t.user_id = ?
		AND p.show_in_today = 1
		AND (
			(t.due_date >= ? AND t.due_date < ?)
			OR (t.due_date IS NULL AND t.created_at >= ? AND t.created_at < ?)
		)
	ORDER BY t.status ASC, t.due_date ASC NULLS LAST, t.sort_order ASC, t.task_id ASC`

	return s.many(ctx, query, userID, w.DueFrom.UTC(), w.DueTo.UTC(), w.CreatedFrom.UTC(), w.CreatedTo.UTC())
}

func (s *Store) ListUpcoming(ctx context.Context, userID string, w tasksrepo.Window) ([]tasksrepo.Task, error) {
	query := selectTasks + `
	WHERE t.user_id = ?
		AND t.status = ?
		AND t.due_date >= ? AND t.due_date < ?
	ORDER BY t.due_date ASC, t.sort_order ASC, t.task_id ASC`

	return s.many(ctx, query, userID, int16(tasksrepo.StatusPending), w.DueFrom.UTC(), w.DueTo.UTC())
}

func (s *Store) many(ctx context.Context, query string, args ...any) ([]tasksrepo.Task, error) {
	tasks := []tasksrepo.Task{}
	if err := sqlx.SelectContext(ctx, sqlitedb.Querier(ctx, s.db), &tasks, query, args...); err != nil {
		return nil, storeerrs.FromSQLite(err)
	}
	return tasks, nil
}

func (s *Store) exec(ctx context.Context, taskID, query string, args ...any) error {
	res, err := sqlitedb.Querier(ctx, s.db).ExecContext(ctx, query, args...)
	if err != nil {
		return storeerrs.FromSQLite(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("task %s: %w", taskID, repositories.ErrNotFound)
	}
	return nil
}
