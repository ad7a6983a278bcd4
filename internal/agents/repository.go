package agents

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/redlinehq/redline/pkg/pagination"
	"github.com/redlinehq/redline/pkg/query"
	"github.com/redlinehq/redline/pkg/repository"
)

const returning = "id, name, type, guideline_prompt, created_by, created_at, updated_by, updated_at"

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates an agent repository implementing the System interface.
func New(
	db *sql.DB,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "agents"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Agent], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name", "Type")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count agents: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	agents, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanAgent)
	if err != nil {
		return nil, fmt.Errorf("query agents: %w", err)
	}

	result := pagination.NewPageResult(agents, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Agent, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	a, err := repository.QueryOne(ctx, r.db, q, args, scanAgent)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &a, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand, actor string) (*Agent, error) {
	if err := validateCreate(cmd); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(cmd.Name)
	agentType := strings.TrimSpace(cmd.Type)
	prompt := strings.TrimSpace(cmd.GuidelinePrompt)

	a, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Agent, error) {
		taken, err := r.nameTaken(ctx, tx, name, agentType, uuid.Nil)
		if err != nil {
			return Agent{}, err
		}
		if taken {
			return Agent{}, ErrDuplicate
		}

		q := `
			INSERT INTO agents(name, type, guideline_prompt, created_by)
			VALUES ($1, $2, $3, $4)
			RETURNING ` + returning

		args := []any{name, agentType, prompt, actor}
		return repository.QueryOne(ctx, tx, q, args, scanAgent)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("agent created", "id", a.ID, "name", a.Name, "type", a.Type, "actor", actor)
	return &a, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand, actor string) (*Agent, error) {
	if err := validateUpdate(cmd); err != nil {
		return nil, err
	}

	a, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Agent, error) {
		findQ, findArgs := query.NewBuilder(projection).BuildSingle("ID", id)
		current, err := repository.QueryOne(ctx, tx, findQ, findArgs, scanAgent)
		if err != nil {
			return Agent{}, err
		}

		// the conflict check runs against the record's effective identity,
		// not just the fields being changed
		name := current.Name
		if cmd.Name != nil {
			name = strings.TrimSpace(*cmd.Name)
		}
		agentType := current.Type
		if cmd.Type != nil {
			agentType = strings.TrimSpace(*cmd.Type)
		}

		taken, err := r.nameTaken(ctx, tx, name, agentType, id)
		if err != nil {
			return Agent{}, err
		}
		if taken {
			return Agent{}, ErrDuplicate
		}

		sets := []string{"name = $1", "type = $2", "updated_by = $3", "updated_at = now()"}
		args := []any{name, agentType, actor}

		if cmd.GuidelinePrompt != nil {
			sets = append(sets, fmt.Sprintf("guideline_prompt = $%d", len(args)+1))
			args = append(args, strings.TrimSpace(*cmd.GuidelinePrompt))
		}

		q := fmt.Sprintf(
			"UPDATE agents SET %s WHERE id = $%d RETURNING %s",
			strings.Join(sets, ", "),
			len(args)+1,
			returning,
		)
		args = append(args, id)

		return repository.QueryOne(ctx, tx, q, args, scanAgent)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("agent updated", "id", a.ID, "name", a.Name, "type", a.Type, "actor", actor)
	return &a, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	if err := repository.Exec(
		ctx, r.db,
		"DELETE FROM agents WHERE id = $1",
		id,
	); err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("agent deleted", "id", id)
	return nil
}

// LatestPromptByType returns the guideline prompt of the agent most recently
// written for the given type, ranked by update time with creation time as
// fallback. Lookup failures degrade to an empty prompt rather than failing
// the caller.
func (r *repo) LatestPromptByType(ctx context.Context, agentType string) string {
	q, args := query.
		NewBuilder(projection).
		WhereEquals("Type", agentType).
		OrderByExpr("COALESCE(a.updated_at, a.created_at) DESC").
		BuildFirst()

	a, err := repository.QueryOne(ctx, r.db, q, args, scanAgent)
	if err != nil {
		if err != sql.ErrNoRows {
			r.logger.Error("latest prompt lookup failed", "type", agentType, "error", err)
		}
		return ""
	}

	return a.GuidelinePrompt
}

// DistinctTypes returns the distinct agent types in alphabetical order.
// Lookup failures degrade to an empty slice.
func (r *repo) DistinctTypes(ctx context.Context) []string {
	rows, err := r.db.QueryContext(ctx, "SELECT DISTINCT type FROM agents ORDER BY type")
	if err != nil {
		r.logger.Error("distinct types lookup failed", "error", err)
		return []string{}
	}
	defer rows.Close()

	types := []string{}
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			r.logger.Error("distinct types scan failed", "error", err)
			return []string{}
		}
		types = append(types, t)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("distinct types lookup failed", "error", err)
		return []string{}
	}

	return types
}

// nameTaken reports whether another agent already claims the (name, type)
// pair. exclude removes the record under update from its own conflict set;
// pass uuid.Nil on create.
func (r *repo) nameTaken(
	ctx context.Context,
	tx *sql.Tx,
	name, agentType string,
	exclude uuid.UUID,
) (bool, error) {
	qb := query.
		NewBuilder(projection).
		WhereEquals("Name", name).
		WhereEquals("Type", agentType)

	if exclude != uuid.Nil {
		qb.WhereNotEquals("ID", exclude)
	}

	q, args := qb.BuildCount()

	var count int
	if err := tx.QueryRowContext(ctx, q, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("check agent name: %w", err)
	}

	return count > 0, nil
}
