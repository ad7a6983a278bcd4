package settings

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

const returning = "id, name, value, created_by, created_at, updated_by, updated_at"

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a setting repository implementing the System interface.
func New(
	db *sql.DB,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "settings"),
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
) (*pagination.PageResult[Setting], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name", "Value")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count settings: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	settings, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanSetting)
	if err != nil {
		return nil, fmt.Errorf("query settings: %w", err)
	}

	result := pagination.NewPageResult(settings, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Setting, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	s, err := repository.QueryOne(ctx, r.db, q, args, scanSetting)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &s, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand, actor string) (*Setting, error) {
	if err := validateCreate(cmd); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(cmd.Name)
	value := strings.TrimSpace(cmd.Value)

	s, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Setting, error) {
		taken, err := r.nameTaken(ctx, tx, name, uuid.Nil)
		if err != nil {
			return Setting{}, err
		}
		if taken {
			return Setting{}, ErrDuplicate
		}

		q := `
			INSERT INTO settings(name, value, created_by)
			VALUES ($1, $2, $3)
			RETURNING ` + returning

		args := []any{name, value, actor}
		return repository.QueryOne(ctx, tx, q, args, scanSetting)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("setting created", "id", s.ID, "name", s.Name, "actor", actor)
	return &s, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand, actor string) (*Setting, error) {
	if err := validateUpdate(cmd); err != nil {
		return nil, err
	}

	s, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Setting, error) {
		findQ, findArgs := query.NewBuilder(projection).BuildSingle("ID", id)
		current, err := repository.QueryOne(ctx, tx, findQ, findArgs, scanSetting)
		if err != nil {
			return Setting{}, err
		}

		name := current.Name
		if cmd.Name != nil {
			name = strings.TrimSpace(*cmd.Name)
		}

		taken, err := r.nameTaken(ctx, tx, name, id)
		if err != nil {
			return Setting{}, err
		}
		if taken {
			return Setting{}, ErrDuplicate
		}

		sets := []string{"name = $1", "updated_by = $2", "updated_at = now()"}
		args := []any{name, actor}

		if cmd.Value != nil {
			sets = append(sets, fmt.Sprintf("value = $%d", len(args)+1))
			args = append(args, strings.TrimSpace(*cmd.Value))
		}

		q := fmt.Sprintf(
			"UPDATE settings SET %s WHERE id = $%d RETURNING %s",
			strings.Join(sets, ", "),
			len(args)+1,
			returning,
		)
		args = append(args, id)

		return repository.QueryOne(ctx, tx, q, args, scanSetting)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("setting updated", "id", s.ID, "name", s.Name, "actor", actor)
	return &s, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	if err := repository.Exec(
		ctx, r.db,
		"DELETE FROM settings WHERE id = $1",
		id,
	); err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("setting deleted", "id", id)
	return nil
}

// nameTaken reports whether another setting already claims the name.
// exclude removes the record under update from its own conflict set;
// pass uuid.Nil on create.
func (r *repo) nameTaken(
	ctx context.Context,
	tx *sql.Tx,
	name string,
	exclude uuid.UUID,
) (bool, error) {
	qb := query.
		NewBuilder(projection).
		WhereEquals("Name", name)

	if exclude != uuid.Nil {
		qb.WhereNotEquals("ID", exclude)
	}

	q, args := qb.BuildCount()

	var count int
	if err := tx.QueryRowContext(ctx, q, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("check setting name: %w", err)
	}

	return count > 0, nil
}
