package issues

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/redlinehq/redline/pkg/pagination"
	"github.com/redlinehq/redline/pkg/query"
	"github.com/redlinehq/redline/pkg/repository"
)

const returning = `id, document_id, type, text, explanation, suggested_fix,
	source_sentence, page_number, bounding_box, paragraph_index, chunk, status,
	review_initiated_by, review_initiated_at, resolved_by, resolved_at,
	modified_fields, dismissal_feedback`

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates an issue repository implementing the System interface.
func New(
	db *sql.DB,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "issues"),
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
) (*pagination.PageResult[Issue], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Text", "Explanation")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count issues: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	issues, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanIssue)
	if err != nil {
		return nil, fmt.Errorf("query issues: %w", err)
	}

	result := pagination.NewPageResult(issues, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Issue, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	i, err := repository.QueryOne(ctx, r.db, q, args, scanIssue)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrNotFound)
	}
	return &i, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Issue, error) {
	i, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Issue, error) {
		return insert(ctx, tx, cmd)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrNotFound)
	}

	r.logger.Info("issue created", "id", i.ID, "document", i.DocumentID, "type", i.Type)
	return &i, nil
}

func (r *repo) CreateBatch(ctx context.Context, cmds []CreateCommand) ([]Issue, error) {
	if len(cmds) == 0 {
		return []Issue{}, nil
	}

	issues, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) ([]Issue, error) {
		out := make([]Issue, 0, len(cmds))
		for _, cmd := range cmds {
			i, err := insert(ctx, tx, cmd)
			if err != nil {
				return nil, err
			}
			out = append(out, i)
		}
		return out, nil
	})
	if err != nil {
		return nil, fmt.Errorf("create issue batch: %w", err)
	}

	r.logger.Info("issue batch created", "document", cmds[0].DocumentID, "count", len(issues))
	return issues, nil
}

func (r *repo) Resolve(ctx context.Context, id uuid.UUID, cmd ResolveCommand, actor string) (*Issue, error) {
	if _, err := ParseStatus(string(cmd.Status)); err != nil {
		return nil, err
	}

	modified, err := encodeJSON(cmd.ModifiedFields)
	if err != nil {
		return nil, err
	}

	// resolving back to not_reviewed clears the resolution audit fields
	q := `
		UPDATE issues
		SET status = $1,
			resolved_by = CASE WHEN $1 = 'not_reviewed' THEN NULL ELSE $2 END,
			resolved_at = CASE WHEN $1 = 'not_reviewed' THEN NULL ELSE now() END,
			dismissal_feedback = $3,
			modified_fields = $4
		WHERE id = $5
		RETURNING ` + returning

	args := []any{cmd.Status, actor, cmd.DismissalFeedback, modified, id}

	i, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Issue, error) {
		return repository.QueryOne(ctx, tx, q, args, scanIssue)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrNotFound)
	}

	r.logger.Info("issue resolved", "id", i.ID, "status", i.Status, "actor", actor)
	return &i, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	if err := repository.Exec(
		ctx, r.db,
		"DELETE FROM issues WHERE id = $1",
		id,
	); err != nil {
		return repository.MapError(err, ErrNotFound, ErrNotFound)
	}

	r.logger.Info("issue deleted", "id", id)
	return nil
}

func (r *repo) DeleteByDocument(ctx context.Context, documentID uuid.UUID) error {
	if err := repository.Exec(
		ctx, r.db,
		"DELETE FROM issues WHERE document_id = $1",
		documentID,
	); err != nil {
		return repository.MapError(err, ErrNotFound, ErrNotFound)
	}

	r.logger.Info("document issues deleted", "document", documentID)
	return nil
}

func insert(ctx context.Context, tx *sql.Tx, cmd CreateCommand) (Issue, error) {
	boundingBox, err := encodeJSON(cmd.BoundingBox)
	if err != nil {
		return Issue{}, err
	}

	q := `
		INSERT INTO issues(
			document_id, type, text, explanation, suggested_fix, source_sentence,
			page_number, bounding_box, paragraph_index, chunk, review_initiated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + returning

	args := []any{
		cmd.DocumentID,
		cmd.Type,
		cmd.Text,
		cmd.Explanation,
		cmd.SuggestedFix,
		cmd.SourceSentence,
		cmd.PageNumber,
		boundingBox,
		cmd.ParagraphIndex,
		cmd.Chunk,
		cmd.ReviewInitiatedBy,
	}

	return repository.QueryOne(ctx, tx, q, args, scanIssue)
}
