package agents_test

import (
	"context"
	"database/sql"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/redlinehq/redline/internal/agents"
	"github.com/redlinehq/redline/pkg/pagination"
)

var agentColumns = []string{
	"id", "name", "type", "guideline_prompt",
	"created_by", "created_at", "updated_by", "updated_at",
}

func newSystem(t *testing.T) (agents.System, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open stub database: %v", err)
	}

	system := agents.New(
		db,
		slog.New(slog.DiscardHandler),
		pagination.Config{DefaultPageSize: 20, MaxPageSize: 100},
	)

	return system, mock, func() { db.Close() }
}

func agentRow(id uuid.UUID, name, agentType, prompt string) *sqlmock.Rows {
	return sqlmock.NewRows(agentColumns).
		AddRow(id.String(), name, agentType, prompt, "creator", time.Now(), nil, nil)
}

func TestAgentsCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		system, mock, cleanup := newSystem(t)
		defer cleanup()

		id := uuid.New()
		cmd := agents.CreateCommand{
			Name:            "Compliance Reviewer",
			Type:            "compliance",
			GuidelinePrompt: "Review each paragraph.",
		}

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM public\.agents a WHERE a\.name = \$1 AND a\.type = \$2`).
			WithArgs(cmd.Name, cmd.Type).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery("INSERT INTO agents").
			WithArgs(cmd.Name, cmd.Type, cmd.GuidelinePrompt, "admin").
			WillReturnRows(agentRow(id, cmd.Name, cmd.Type, cmd.GuidelinePrompt))
		mock.ExpectCommit()

		got, err := system.Create(ctx, cmd, "admin")

		assert.NoError(t, err)
		assert.Equal(t, id, got.ID)
		assert.Equal(t, cmd.Name, got.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate name for type", func(t *testing.T) {
		system, mock, cleanup := newSystem(t)
		defer cleanup()

		cmd := agents.CreateCommand{
			Name:            "Compliance Reviewer",
			Type:            "compliance",
			GuidelinePrompt: "Review each paragraph.",
		}

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM public\.agents`).
			WithArgs(cmd.Name, cmd.Type).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectRollback()

		_, err := system.Create(ctx, cmd, "admin")

		assert.ErrorIs(t, err, agents.ErrDuplicate)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("validation failure skips database", func(t *testing.T) {
		system, mock, cleanup := newSystem(t)
		defer cleanup()

		_, err := system.Create(ctx, agents.CreateCommand{}, "admin")

		assert.ErrorIs(t, err, agents.ErrValidation)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("input trimmed before insert", func(t *testing.T) {
		system, mock, cleanup := newSystem(t)
		defer cleanup()

		id := uuid.New()
		cmd := agents.CreateCommand{
			Name:            "  Padded Name  ",
			Type:            " compliance ",
			GuidelinePrompt: " Review. ",
		}

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM public\.agents`).
			WithArgs("Padded Name", "compliance").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery("INSERT INTO agents").
			WithArgs("Padded Name", "compliance", "Review.", "admin").
			WillReturnRows(agentRow(id, "Padded Name", "compliance", "Review."))
		mock.ExpectCommit()

		got, err := system.Create(ctx, cmd, "admin")

		assert.NoError(t, err)
		assert.Equal(t, "Padded Name", got.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAgentsUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("success with partial fields", func(t *testing.T) {
		system, mock, cleanup := newSystem(t)
		defer cleanup()

		id := uuid.New()
		cmd := agents.UpdateCommand{Name: ptr("Renamed")}

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT (.+) FROM public\.agents a WHERE a\.id = \$1`).
			WithArgs(id.String()).
			WillReturnRows(agentRow(id, "Original", "compliance", "Review."))
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM public\.agents a WHERE a\.name = \$1 AND a\.type = \$2 AND a\.id <> \$3`).
			WithArgs("Renamed", "compliance", id.String()).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery("UPDATE agents SET").
			WithArgs("Renamed", "compliance", "admin", id.String()).
			WillReturnRows(agentRow(id, "Renamed", "compliance", "Review."))
		mock.ExpectCommit()

		got, err := system.Update(ctx, id, cmd, "admin")

		assert.NoError(t, err)
		assert.Equal(t, "Renamed", got.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		system, mock, cleanup := newSystem(t)
		defer cleanup()

		id := uuid.New()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT (.+) FROM public\.agents a WHERE a\.id = \$1`).
			WithArgs(id.String()).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		_, err := system.Update(ctx, id, agents.UpdateCommand{Name: ptr("x")}, "admin")

		assert.ErrorIs(t, err, agents.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("conflict with another record", func(t *testing.T) {
		system, mock, cleanup := newSystem(t)
		defer cleanup()

		id := uuid.New()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT (.+) FROM public\.agents a WHERE a\.id = \$1`).
			WithArgs(id.String()).
			WillReturnRows(agentRow(id, "Original", "compliance", "Review."))
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM public\.agents`).
			WithArgs("Taken", "compliance", id.String()).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectRollback()

		_, err := system.Update(ctx, id, agents.UpdateCommand{Name: ptr("Taken")}, "admin")

		assert.ErrorIs(t, err, agents.ErrDuplicate)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty command rejected", func(t *testing.T) {
		system, mock, cleanup := newSystem(t)
		defer cleanup()

		_, err := system.Update(ctx, uuid.New(), agents.UpdateCommand{}, "admin")

		assert.ErrorIs(t, err, agents.ErrValidation)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAgentsDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes existing record", func(t *testing.T) {
		system, mock, cleanup := newSystem(t)
		defer cleanup()

		id := uuid.New()
		mock.ExpectExec("DELETE FROM agents").
			WithArgs(id.String()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, system.Delete(ctx, id))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing record is a no-op", func(t *testing.T) {
		system, mock, cleanup := newSystem(t)
		defer cleanup()

		id := uuid.New()
		mock.ExpectExec("DELETE FROM agents").
			WithArgs(id.String()).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.NoError(t, system.Delete(ctx, id))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAgentsFind(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		system, mock, cleanup := newSystem(t)
		defer cleanup()

		id := uuid.New()
		mock.ExpectQuery(`SELECT (.+) FROM public\.agents a WHERE a\.id = \$1`).
			WithArgs(id.String()).
			WillReturnRows(agentRow(id, "Compliance Reviewer", "compliance", "Review."))

		got, err := system.Find(ctx, id)

		assert.NoError(t, err)
		assert.Equal(t, id, got.ID)
	})

	t.Run("not found", func(t *testing.T) {
		system, mock, cleanup := newSystem(t)
		defer cleanup()

		id := uuid.New()
		mock.ExpectQuery(`SELECT (.+) FROM public\.agents a WHERE a\.id = \$1`).
			WithArgs(id.String()).
			WillReturnError(sql.ErrNoRows)

		_, err := system.Find(ctx, id)

		assert.ErrorIs(t, err, agents.ErrNotFound)
	})
}

func TestAgentsList(t *testing.T) {
	system, mock, cleanup := newSystem(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM public\.agents`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`SELECT (.+) FROM public\.agents a ORDER BY a\.name ASC LIMIT 20 OFFSET 0`).
		WillReturnRows(sqlmock.NewRows(agentColumns).
			AddRow(uuid.New().String(), "Alpha", "compliance", "p1", "creator", time.Now(), nil, nil).
			AddRow(uuid.New().String(), "Beta", "legal", "p2", "creator", time.Now(), nil, nil))

	result, err := system.List(context.Background(), pagination.PageRequest{}, agents.Filters{})

	assert.NoError(t, err)
	assert.Equal(t, 2, result.Total)
	assert.Len(t, result.Data, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAgentsLatestPromptByType(t *testing.T) {
	ctx := context.Background()

	t.Run("returns most recent prompt", func(t *testing.T) {
		system, mock, cleanup := newSystem(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT (.+) FROM public\.agents a WHERE a\.type = \$1 ORDER BY COALESCE\(a\.updated_at, a\.created_at\) DESC LIMIT 1`).
			WithArgs("compliance").
			WillReturnRows(agentRow(uuid.New(), "Latest", "compliance", "newest guidance"))

		got := system.LatestPromptByType(ctx, "compliance")
		assert.Equal(t, "newest guidance", got)
	})

	t.Run("no agent yields empty prompt", func(t *testing.T) {
		system, mock, cleanup := newSystem(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT (.+) FROM public\.agents a WHERE a\.type = \$1`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		got := system.LatestPromptByType(ctx, "missing")
		assert.Empty(t, got)
	})
}

func TestAgentsDistinctTypes(t *testing.T) {
	ctx := context.Background()

	t.Run("returns types in order", func(t *testing.T) {
		system, mock, cleanup := newSystem(t)
		defer cleanup()

		mock.ExpectQuery("SELECT DISTINCT type FROM agents ORDER BY type").
			WillReturnRows(sqlmock.NewRows([]string{"type"}).
				AddRow("compliance").
				AddRow("legal"))

		got := system.DistinctTypes(ctx)
		assert.Equal(t, []string{"compliance", "legal"}, got)
	})

	t.Run("query failure yields empty slice", func(t *testing.T) {
		system, mock, cleanup := newSystem(t)
		defer cleanup()

		mock.ExpectQuery("SELECT DISTINCT type FROM agents").
			WillReturnError(sql.ErrConnDone)

		got := system.DistinctTypes(ctx)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}
