package projectssqlitestore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jrazmi/zentask/core/repositories"
	"github.com/jrazmi/zentask/core/repositories/projectsrepo"
	"github.com/jrazmi/zentask/core/repositories/storeerrs"
	"github.com/jrazmi/zentask/infrastructure/sqlitedb"
	"github.com/jrazmi/zentask/sdk/logger"
)

const projectColumns = `project_id, user_id, name, is_default, show_in_today, created_at, updated_at`

const countsQuery = `SELECT p.project_id, p.user_id, p.name, p.is_default, p.show_in_today, p.created_at, p.updated_at,
		COUNT(t.task_id) AS task_count,
		COALESCE(SUM(CASE WHEN t.status = 0 THEN 1 ELSE 0 END), 0) AS uncompleted_task_count
	FROM projects p
	LEFT JOIN tasks t ON t.project_id = p.project_id
	WHERE p.user_id = ?`

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

func (s *Store) Create(ctx context.Context, p projectsrepo.Project) (projectsrepo.Project, error) {
	query := `INSERT INTO projects (` + projectColumns + `)
		VALUES (:project_id, :user_id, :name, :is_default, :show_in_today, :created_at, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, sqlitedb.Querier(ctx, s.db), query, p); err != nil {
		return projectsrepo.Project{}, storeerrs.FromSQLite(err)
	}
	return s.Get(ctx, p.ProjectID, p.UserID)
}

func (s *Store) Get(ctx context.Context, projectID, userID string) (projectsrepo.Project, error) {
	var p projectsrepo.Project
	query := `SELECT ` + projectColumns + ` FROM projects WHERE project_id = ? AND user_id = ?`
	if err := sqlx.GetContext(ctx, sqlitedb.Querier(ctx, s.db), &p, query, projectID, userID); err != nil {
		return projectsrepo.Project{}, storeerrs.FromSQLite(err)
	}
	return p, nil
}

func (s *Store) GetDefault(ctx context.Context, userID string) (projectsrepo.Project, error) {
	var p projectsrepo.Project
	query := `SELECT ` + projectColumns + ` FROM projects WHERE user_id = ? AND is_default = 1`
	if err := sqlx.GetContext(ctx, sqlitedb.Querier(ctx, s.db), &p, query, userID); err != nil {
		return projectsrepo.Project{}, storeerrs.FromSQLite(err)
	}
	return p, nil
}

func (s *Store) GetWithCounts(ctx context.Context, projectID, userID string) (projectsrepo.ProjectWithCounts, error) {
	var p projectsrepo.ProjectWithCounts
	query := countsQuery + ` AND p.project_id = ? GROUP BY p.project_id`
	if err := sqlx.GetContext(ctx, sqlitedb.Querier(ctx, s.db), &p, query, userID, projectID); err != nil {
		return projectsrepo.ProjectWithCounts{}, storeerrs.FromSQLite(err)
	}
	return p, nil
}

func (s *Store) List(ctx context.Context, userID string) ([]projectsrepo.ProjectWithCounts, error) {
	projects := []projectsrepo.ProjectWithCounts{}
	query := countsQuery + ` GROUP BY p.project_id ORDER BY p.is_default DESC, p.created_at ASC, p.project_id ASC`
	if err := sqlx.SelectContext(ctx, sqlitedb.Querier(ctx, s.db), &projects, query, userID); err != nil {
		return nil, storeerrs.FromSQLite(err)
	}
	return projects, nil
}

func (s *Store) Update(ctx context.Context, projectID string, update projectsrepo.UpdateProject, updatedAt time.Time) error {
	sets := []string{"updated_at = ?"}
	args := []any{updatedAt.UTC()}

	if update.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *update.Name)
	}
	if update.ShowInToday != nil {
		sets = append(sets, "show_in_today = ?")
		args = append(args, *update.ShowInToday)
	}
	args = append(args, projectID)

	query := `UPDATE projects SET ` + strings.Join(sets, ", ") + ` WHERE project_id = ?`
	res, err := sqlitedb.Querier(ctx, s.db).ExecContext(ctx, query, args...)
	if err != nil {
		return storeerrs.FromSQLite(err)
	}
	return expectRow(res.RowsAffected, projectID)
}

func (s *Store) Delete(ctx context.Context, projectID string) error {
	res, err := sqlitedb.Querier(ctx, s.db).ExecContext(ctx, `DELETE FROM projects WHERE project_id = ?`, projectID)
	if err != nil {
		return storeerrs.FromSQLite(err)
	}
	return expectRow(res.RowsAffected, projectID)
}

func expectRow(rowsAffected func() (int64, error), projectID string) error {
	n, err := rowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("project %s: %w", projectID, repositories.ErrNotFound)
	}
	return nil
}
