package projectssqlitestore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jrazmi/zentask/core/repositories"
	"github.com/jrazmi/zentask/core/repositories/projectsrepo"
	"github.com/jrazmi/zentask/core/repositories/projectsrepo/stores/projectssqlitestore"
	"github.com/jrazmi/zentask/infrastructure/sqlitedb"
	"github.com/jrazmi/zentask/sdk/logger"
	"github.com/jrazmi/zentask/sdk/validation"
)

func insertUser(t *testing.T, db *sqlx.DB, id string) {
	t.Helper()
	now := time.Now().UTC()
	_, err := db.Exec(`INSERT INTO users (user_id, email, password_hash, created_at, updated_at) VALUES (?, ?, 'x', ?, ?)`,
		id, id+"@example.com", now, now)
	if err != nil {
		t.Fatal(err)
	}
}

func insertTask(t *testing.T, db *sqlx.DB, id, userID, projectID string, status int) {
	t.Helper()
	now := time.Now().UTC()
	_, err := db.Exec(`INSERT INTO tasks (task_id, user_id, project_id, title, status, priority, sort_order, created_at, updated_at)
		VALUES (?, ?, ?, 'task', ?, 2, 1, ?, ?)`, id, userID, projectID, status, now, now)
	if err != nil {
		t.Fatal(err)
	}
}

func TestStore(t *testing.T) {
	db := sqlitedb.NewTestDB(t)
	log := logger.NewDiscard()
	repo := projectsrepo.NewRepository(log, projectssqlitestore.NewStore(log, db))
	ctx := context.Background()

	insertUser(t, db, "u1")
	insertUser(t, db, "u2")

	work, err := repo.Create(ctx, projectsrepo.CreateProject{UserID: "u1", Name: "Work"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	inbox, err := repo.CreateDefault(ctx, "u1")
	if err != nil {
		t.Fatalf("CreateDefault() error = %v", err)
	}
	if _, err := repo.CreateDefault(ctx, "u1"); !errors.Is(err, repositories.ErrConflict) {
		t.Errorf("second default error = %v, want ErrConflict", err)
	}

	insertTask(t, db, "t1", "u1", work.ProjectID, 0)
	insertTask(t, db, "t2", "u1", work.ProjectID, 1)
	insertTask(t, db, "t3", "u1", work.ProjectID, 0)

	list, err := repo.List(ctx, "u1")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("List() len = %d, want 2", len(list))
	}
	if list[0].ProjectID != inbox.ProjectID {
		t.Errorf("default project should sort first, got %s", list[0].Name)
	}
	if list[1].TaskCount != 3 || list[1].UncompletedTaskCount != 2 {
		t.Errorf("counts = %d/%d, want 3/2", list[1].TaskCount, list[1].UncompletedTaskCount)
	}
	if list[0].TaskCount != 0 {
		t.Errorf("inbox count = %d, want 0", list[0].TaskCount)
	}

	if _, err := repo.Get(ctx, work.ProjectID, "u2"); !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("Get(foreign) error = %v, want ErrNotFound", err)
	}

	updated, err := repo.Update(ctx, work.ProjectID, "u1", projectsrepo.UpdateProject{
		Name:        validation.StringPtr("Job"),
		ShowInToday: validation.BoolPtr(false),
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Name != "Job" || updated.ShowInToday || updated.TaskCount != 3 {
		t.Errorf("Update() = %+v", updated)
	}

	def, err := repo.GetDefault(ctx, "u1")
	if err != nil || def.ProjectID != inbox.ProjectID {
		t.Errorf("GetDefault() = %+v, %v", def, err)
	}

	if err := repo.Delete(ctx, work.ProjectID, "u1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	var remaining int
	if err := db.Get(&remaining, `SELECT COUNT(*) FROM tasks`); err != nil {
		t.Fatal(err)
	}
	if remaining != 0 {
		t.Errorf("tasks remaining after cascade = %d, want 0", remaining)
	}
}
