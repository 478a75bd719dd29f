package projectspgxstore

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jrazmi/zentask/core/repositories"
	"github.com/jrazmi/zentask/core/repositories/projectsrepo"
	"github.com/jrazmi/zentask/core/repositories/storeerrs"
	"github.com/jrazmi/zentask/infrastructure/postgresdb"
	"github.com/jrazmi/zentask/sdk/logger"
)

const projectColumns = `project_id, user_id, name, is_default, show_in_today, created_at, updated_at`

// countsQuery selects projects annotated with total and pending task counts.
const countsQuery = `SELECT p.project_id, p.user_id, p.name, p.is_default, p.show_in_today, p.created_at, p.updated_at,
		COUNT(t.task_id) AS task_count,
		COALESCE(SUM(CASE WHEN t.status = 0 THEN 1 ELSE 0 END), 0) AS uncompleted_task_count
	FROM projects p
	LEFT JOIN tasks t ON t.project_id = p.project_id
	WHERE p.user_id = @user_id`

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

func (s *Store) Create(ctx context.Context, p projectsrepo.Project) (projectsrepo.Project, error) {
	query := `INSERT INTO projects (` + projectColumns + `)
		VALUES (@project_id, @user_id, @name, @is_default, @show_in_today, @created_at, @updated_at)
		RETURNING ` + projectColumns

	args := pgx.NamedArgs{
		"project_id":    p.ProjectID,
		"user_id":       p.UserID,
		"name":          p.Name,
		"is_default":    p.IsDefault,
		"show_in_today": p.ShowInToday,
		"created_at":    p.CreatedAt,
		"updated_at":    p.UpdatedAt,
	}
	return s.one(ctx, query, args)
}

func (s *Store) Get(ctx context.Context, projectID, userID string) (projectsrepo.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE project_id = @project_id AND user_id = @user_id`
	return s.one(ctx, query, pgx.NamedArgs{"project_id": projectID, "user_id": userID})
}

func (s *Store) GetDefault(ctx context.Context, userID string) (projectsrepo.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE user_id = @user_id AND is_default`
	return s.one(ctx, query, pgx.NamedArgs{"user_id": userID})
}

func (s *Store) GetWithCounts(ctx context.Context, projectID, userID string) (projectsrepo.ProjectWithCounts, error) {
	query := countsQuery + ` AND p.project_id = @project_id GROUP BY p.project_id`

	rows, err := postgresdb.Querier(ctx, s.pool).Query(ctx, query, pgx.NamedArgs{"project_id": projectID, "user_id": userID})
	if err != nil {
		return projectsrepo.ProjectWithCounts{}, storeerrs.FromPostgres(err)
	}
	defer rows.Close()

	project, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[projectsrepo.ProjectWithCounts])
	if err != nil {
		return projectsrepo.ProjectWithCounts{}, storeerrs.FromPostgres(err)
	}
	return project, nil
}

func (s *Store) List(ctx context.Context, userID string) ([]projectsrepo.ProjectWithCounts, error) {
	query := countsQuery + ` GROUP BY p.project_id ORDER BY p.is_default DESC, p.created_at ASC, p.project_id ASC`

	rows, err := postgresdb.Querier(ctx, s.pool).Query(ctx, query, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, storeerrs.FromPostgres(err)
	}
	defer rows.Close()

	projects, err := pgx.CollectRows(rows, pgx.RowToStructByName[projectsrepo.ProjectWithCounts])
	if err != nil {
		return nil, storeerrs.FromPostgres(err)
	}
	return projects, nil
}

func (s *Store) Update(ctx context.Context, projectID string, update projectsrepo.UpdateProject, updatedAt time.Time) error {
	var buf bytes.Buffer
	args := pgx.NamedArgs{"project_id": projectID, "updated_at": updatedAt}

	buf.WriteString("UPDATE projects SET updated_at = @updated_at")
	if update.Name != nil {
		buf.WriteString(", name = @name")
		args["name"] = *update.Name
	}
	if update.ShowInToday != nil {
		buf.WriteString(", show_in_today = @show_in_today")
		args["show_in_today"] = *update.ShowInToday
	}
	buf.WriteString(" WHERE project_id = @project_id")

	tag, err := postgresdb.Querier(ctx, s.pool).Exec(ctx, buf.String(), args)
	if err != nil {
		return storeerrs.FromPostgres(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("project %s: %w", projectID, repositories.ErrNotFound)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, projectID string) error {
	tag, err := postgresdb.Querier(ctx, s.pool).Exec(ctx,
		`DELETE FROM projects WHERE project_id = @project_id`, pgx.NamedArgs{"project_id": projectID})
	if err != nil {
		return storeerrs.FromPostgres(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("project %s: %w", projectID, repositories.ErrNotFound)
	}
	return nil
}

func (s *Store) one(ctx context.Context, query string, args pgx.NamedArgs) (projectsrepo.Project, error) {
	rows, err := postgresdb.Querier(ctx, s.pool).Query(ctx, query, args)
	if err != nil {
		return projectsrepo.Project{}, storeerrs.FromPostgres(err)
	}
	defer rows.Close()

	project, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[projectsrepo.Project])
	if err != nil {
		return projectsrepo.Project{}, storeerrs.FromPostgres(err)
	}
	return project, nil
}
