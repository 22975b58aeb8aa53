// Package document_repo provides PostgreSQL implementations for document
// repositories. A document persists as a header row plus a table part:
// header and lines are always written together, and loading a document
// always brings its lines along. Tenancy is row-scoped like catalog_repo.
package document_repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"

	"tradebooks/internal/core/apperror"
	"tradebooks/internal/core/id"
	"tradebooks/internal/core/tenant"
	"tradebooks/internal/domain"
	"tradebooks/internal/infrastructure/storage/postgres"
)

// BaseDocumentRepo provides header+lines CRUD for one document type.
// T is the header model, L its line model. The line table carries two
// columns beyond L's own: document_id and tenant_id.
type BaseDocumentRepo[T domain.DocumentEntity, L any] struct {
	tableName string
	lineTable string

	selectCols []string
	lineCols   []string
	searchCols []string

	newFn    func() T
	linesOf  func(T) []L
	setLines func(T, []L)

	// listScope is an extra predicate applied to List only
	// (e.g. hiding soft-deleted payments)
	listScope squirrel.Sqlizer
}

// ScopeListWith adds a fixed predicate to every List query.
func (r *BaseDocumentRepo[T, L]) ScopeListWith(pred squirrel.Sqlizer) {
	r.listScope = pred
}

// NewBaseDocumentRepo creates a new base document repository. linesOf and
// setLines bridge the header's typed Lines slice; pass nil for document
// types without a table part.
func NewBaseDocumentRepo[T domain.DocumentEntity, L any](
	tableName, lineTable string,
	searchCols []string,
	newFn func() T,
	linesOf func(T) []L,
	setLines func(T, []L),
) *BaseDocumentRepo[T, L] {
	return &BaseDocumentRepo[T, L]{
		tableName:  tableName,
		lineTable:  lineTable,
		selectCols: postgres.ExtractDBColumns[T](),
		lineCols:   postgres.ExtractDBColumns[L](),
		searchCols: searchCols,
		newFn:      newFn,
		linesOf:    linesOf,
		setLines:   setLines,
	}
}

func (r *BaseDocumentRepo[T, L]) getTxManager(ctx context.Context) *postgres.TxManager {
	return postgres.MustGetTxManager(ctx)
}

// Builder returns a new squirrel builder with PostgreSQL placeholder format.
func (r *BaseDocumentRepo[T, L]) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *BaseDocumentRepo[T, L]) tenantScope(ctx context.Context) squirrel.Eq {
	return squirrel.Eq{"tenant_id": tenant.MustGetTenantID(ctx)}
}

// Create inserts the header and its lines.
func (r *BaseDocumentRepo[T, L]) Create(ctx context.Context, doc T) error {
	data := postgres.StructToMap(doc)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in document")
	}

	filteredData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	q := r.Builder().
		Insert(r.tableName).
		SetMap(filteredData)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if _, err = querier.Exec(ctx, sql, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperror.NewDuplicate(r.tableName, "number", doc.GetNumber()).WithCause(err)
		}
		return fmt.Errorf("insert %s: %w", r.tableName, err)
	}

	return r.insertLines(ctx, doc)
}

func (r *BaseDocumentRepo[T, L]) insertLines(ctx context.Context, doc T) error {
	if r.linesOf == nil {
		return nil
	}
	lines := r.linesOf(doc)
	if len(lines) == 0 {
		return nil
	}

	tenantID := tenant.MustGetTenantID(ctx)
	querier := r.getTxManager(ctx).GetQuerier(ctx)

	for i := range lines {
		data := postgres.StructToMap(&lines[i])
		lineData := make(map[string]any, len(r.lineCols)+2)
		for _, col := range r.lineCols {
			if val, ok := data[col]; ok {
				lineData[col] = val
			}
		}
		lineData["tenant_id"] = tenantID
		lineData["document_id"] = doc.GetID()

		sql, args, err := r.Builder().
			Insert(r.lineTable).
			SetMap(lineData).
			ToSql()
		if err != nil {
			return fmt.Errorf("build line insert: %w", err)
		}
		if _, err := querier.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("insert %s line: %w", r.tableName, err)
		}
	}

	return nil
}

func (r *BaseDocumentRepo[T, L]) deleteLines(ctx context.Context, docID id.ID) error {
	if r.lineTable == "" {
		return nil
	}

	sql, args, err := r.Builder().
		Delete(r.lineTable).
		Where(r.tenantScope(ctx)).
		Where(squirrel.Eq{"document_id": docID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build line delete: %w", err)
	}

	if _, err := r.getTxManager(ctx).GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete %s lines: %w", r.tableName, err)
	}
	return nil
}

func (r *BaseDocumentRepo[T, L]) loadLines(ctx context.Context, doc T) error {
	if r.setLines == nil {
		return nil
	}

	q := r.Builder().
		Select(r.lineCols...).
		From(r.lineTable).
		Where(r.tenantScope(ctx)).
		Where(squirrel.Eq{"document_id": doc.GetID()}).
		OrderBy("line_no ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build line query: %w", err)
	}

	var lines []L
	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &lines, sql, args...); err != nil {
		return fmt.Errorf("load %s lines: %w", r.tableName, err)
	}

	r.setLines(doc, lines)
	return nil
}

func (r *BaseDocumentRepo[T, L]) baseSelect(ctx context.Context) squirrel.SelectBuilder {
	return r.Builder().
		Select(r.selectCols...).
		From(r.tableName).
		Where(r.tenantScope(ctx))
}

// GetByID retrieves a document with its lines.
func (r *BaseDocumentRepo[T, L]) GetByID(ctx context.Context, docID id.ID) (T, error) {
	doc := r.newFn()

	q := r.baseSelect(ctx).
		Where(squirrel.Eq{"id": docID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return doc, fmt.Errorf("build query: %w", err)
	}

	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, doc, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return doc, apperror.NewNotFound(r.tableName, docID.String())
		}
		return doc, fmt.Errorf("get by id: %w", err)
	}

	if err := r.loadLines(ctx, doc); err != nil {
		return doc, err
	}
	return doc, nil
}

// Update rewrites the header with optimistic locking and replaces the lines.
func (r *BaseDocumentRepo[T, L]) Update(ctx context.Context, doc T) error {
	data := postgres.StructToMap(doc)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in document")
	}

	version, ok := data["version"].(int)
	if !ok {
		return fmt.Errorf("document has no 'version' field or it is not an int")
	}

	filteredData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		switch col {
		case "id", "tenant_id", "created_at", "created_by_id":
			continue // immutable
		case "version":
			continue // managed below (optimistic locking)
		}
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	// StampUpdate has already bumped the in-memory version, so the stored
	// row must still carry version-1 for the write to win.
	q := r.Builder().
		Update(r.tableName).
		SetMap(filteredData).
		Set("version", squirrel.Expr("version + 1")).
		Where(r.tenantScope(ctx)).
		Where(squirrel.Eq{"id": doc.GetID()}).
		Where(squirrel.Eq{"version": version - 1})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	querier := r.getTxManager(ctx).GetQuerier(ctx)
	result, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", r.tableName, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification(r.tableName, doc.GetID())
	}

	if r.linesOf != nil {
		if err := r.deleteLines(ctx, doc.GetID()); err != nil {
			return err
		}
		if err := r.insertLines(ctx, doc); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes the document and its lines.
func (r *BaseDocumentRepo[T, L]) Delete(ctx context.Context, docID id.ID) error {
	if r.lineTable != "" {
		if err := r.deleteLines(ctx, docID); err != nil {
			return err
		}
	}

	sql, args, err := r.Builder().
		Delete(r.tableName).
		Where(r.tenantScope(ctx)).
		Where(squirrel.Eq{"id": docID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.getTxManager(ctx).GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperror.NewConflict("cannot delete: referenced by other records").
				WithDetail("entity", r.tableName).
				WithDetail("id", docID.String()).
				WithCause(err)
		}
		return fmt.Errorf("execute delete %s: %w", r.tableName, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(r.tableName, docID.String())
	}

	return nil
}

// List retrieves one page of headers (without lines).
func (r *BaseDocumentRepo[T, L]) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[T], error) {
	result := domain.ListResult[T]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.baseSelect(ctx)
	if r.listScope != nil {
		q = q.Where(r.listScope)
	}
	q = r.applyFilter(q, filter)

	countQ := r.Builder().
		Select("COUNT(*)").
		FromSelect(q, "sub")

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}

	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	orderBy, err := r.parseOrderBy(filter.OrderBy)
	if err != nil {
		return result, err
	}
	q = q.OrderBy(orderBy)

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list: %w", err)
	}

	return result, nil
}

func (r *BaseDocumentRepo[T, L]) applyFilter(q squirrel.SelectBuilder, filter domain.ListFilter) squirrel.SelectBuilder {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		or := make(squirrel.Or, 0, len(r.searchCols))
		for _, col := range r.searchCols {
			or = append(or, squirrel.ILike{col: pattern})
		}
		if len(or) > 0 {
			q = q.Where(or)
		}
	}

	if len(filter.IDs) > 0 {
		q = q.Where(squirrel.Eq{"id": filter.IDs})
	}

	if filter.BranchID != nil {
		q = q.Where(squirrel.Eq{"branch_id": *filter.BranchID})
	}

	return q
}

func (r *BaseDocumentRepo[T, L]) parseOrderBy(orderBy string) (string, error) {
	allowed := make(map[string]struct{}, len(r.selectCols))
	for _, col := range r.selectCols {
		allowed[col] = struct{}{}
	}

	if orderBy == "" {
		return "date DESC, number DESC", nil
	}

	direction := "ASC"
	field := orderBy
	if strings.HasPrefix(orderBy, "-") {
		direction = "DESC"
		field = strings.TrimPrefix(orderBy, "-")
	} else if strings.HasPrefix(orderBy, "+") {
		field = strings.TrimPrefix(orderBy, "+")
	}

	field = strings.TrimSpace(field)
	if field == "" {
		return "", apperror.NewValidation("invalid orderBy").WithDetail("orderBy", orderBy)
	}

	if _, ok := allowed[field]; !ok {
		return "", apperror.NewValidation("invalid orderBy").
			WithDetail("orderBy", orderBy).
			WithDetail("field", field)
	}

	return field + " " + direction, nil
}
