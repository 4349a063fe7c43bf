package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/qoveo/platform/pkg/constants"
)

var (
	// ErrNotFound covers both "record does not exist" and "record belongs to
	// another tenant". Callers must not be able to distinguish the two.
	ErrNotFound = errors.New("record not found")

	ErrNoTenant = errors.New("tenant-scoped operation requires a tenant ID")

	// ErrEmptyFilter rejects bulk mutations whose filter clause is empty.
	ErrEmptyFilter = errors.New("bulk mutation requires a non-empty filter")
)

// Mapper binds a domain type to its table. Scan reads one row in the column
// order produced by the helper: id, tenant_id, is_active, <Columns...>,
// created_at, updated_at. Args returns the values for Columns in the same
// order.
type Mapper[T any] struct {
	Table   string
	Columns []string
	ID      func(T) uuid.UUID
	Args    func(T) []any
	Scan    func(rows pgx.Rows) (T, error)
}

// TenantScoped is the single data-access path business modules use.
// Every statement it issues is constrained by tenant_id, and deletion is
// soft-only: Archive flips is_active, Restore flips it back.
type TenantScoped[T any] struct {
	m Mapper[T]
}

func NewTenantScoped[T any](m Mapper[T]) *TenantScoped[T] {
	if m.Table == "" {
		panic("repo: mapper requires a table name")
	}
	return &TenantScoped[T]{m: m}
}

func (s *TenantScoped[T]) selectColumns() string {
	cols := append([]string{"id", "tenant_id", "is_active"}, s.m.Columns...)
	cols = append(cols, "created_at", "updated_at")
	return strings.Join(cols, ", ")
}

func (s *TenantScoped[T]) FindAll(ctx context.Context, tenantID uuid.UUID, includeArchived bool) ([]T, error) {
	if tenantID == uuid.Nil {
		return nil, ErrNoTenant
	}
	tx, err := useTx(ctx)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT %s FROM %s WHERE tenant_id = $1", s.selectColumns(), s.m.Table)
	if !includeArchived {
		query += " AND is_active = true"
	}
	query += " ORDER BY created_at DESC"

	rows, err := tx.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := s.m.Scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// FindWhere narrows FindAll with an extra filter. Caller placeholders start
// at $2; the tenant filter always applies on top.
func (s *TenantScoped[T]) FindWhere(ctx context.Context, tenantID uuid.UUID, where string, args ...any) ([]T, error) {
	if tenantID == uuid.Nil {
		return nil, ErrNoTenant
	}
	if strings.TrimSpace(where) == "" {
		return nil, ErrEmptyFilter
	}
	tx, err := useTx(ctx)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE tenant_id = $1 AND is_active = true AND (%s) ORDER BY created_at DESC",
		s.selectColumns(), s.m.Table, where,
	)
	rows, err := tx.Query(ctx, query, append([]any{tenantID}, args...)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := s.m.Scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s *TenantScoped[T]) GetByID(ctx context.Context, id, tenantID uuid.UUID) (T, error) {
	var zero T
	if tenantID == uuid.Nil {
		return zero, ErrNoTenant
	}
	tx, err := useTx(ctx)
	if err != nil {
		return zero, err
	}

	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE id = $1 AND tenant_id = $2",
		s.selectColumns(), s.m.Table,
	)
	rows, err := tx.Query(ctx, query, id, tenantID)
	if err != nil {
		return zero, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return zero, err
		}
		return zero, ErrNotFound
	}
	return s.m.Scan(rows)
}

// Create stamps the supplied tenant ID and forces is_active to true,
// overriding anything the caller put in the payload for those fields.
func (s *TenantScoped[T]) Create(ctx context.Context, tenantID uuid.UUID, v T) (T, error) {
	var zero T
	if tenantID == uuid.Nil {
		return zero, ErrNoTenant
	}
	tx, err := useTx(ctx)
	if err != nil {
		return zero, err
	}

	cols := append([]string{"id", "tenant_id", "is_active"}, s.m.Columns...)
	cols = append(cols, "created_at", "updated_at")

	now := time.Now()
	args := []any{s.m.ID(v), tenantID, true}
	args = append(args, s.m.Args(v)...)
	args = append(args, now, now)

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		s.m.Table, strings.Join(cols, ", "), placeholders(len(args)),
	)
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return zero, err
	}
	return s.GetByID(ctx, s.m.ID(v), tenantID)
}

// Update refuses to touch rows outside the supplied tenant: the existence
// check and the UPDATE are both scoped by tenant_id.
func (s *TenantScoped[T]) Update(ctx context.Context, tenantID uuid.UUID, v T) (T, error) {
	var zero T
	if tenantID == uuid.Nil {
		return zero, ErrNoTenant
	}
	id := s.m.ID(v)
	if err := s.exists(ctx, id, tenantID); err != nil {
		return zero, err
	}
	tx, err := useTx(ctx)
	if err != nil {
		return zero, err
	}

	sets := make([]string, 0, len(s.m.Columns)+1)
	args := make([]any, 0, len(s.m.Columns)+3)
	for i, col := range s.m.Columns {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, i+1))
	}
	args = append(args, s.m.Args(v)...)
	sets = append(sets, fmt.Sprintf("updated_at = $%d", len(args)+1))
	args = append(args, time.Now(), id, tenantID)

	query := fmt.Sprintf(
		"UPDATE %s SET %s WHERE id = $%d AND tenant_id = $%d",
		s.m.Table, strings.Join(sets, ", "), len(args)-1, len(args),
	)
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return zero, err
	}
	return s.GetByID(ctx, id, tenantID)
}

// Archive soft-deletes: it flips is_active to false. No hard delete is
// exposed through this path.
func (s *TenantScoped[T]) Archive(ctx context.Context, id, tenantID uuid.UUID) error {
	return s.setActive(ctx, id, tenantID, false)
}

// Restore reactivates an archived record.
func (s *TenantScoped[T]) Restore(ctx context.Context, id, tenantID uuid.UUID) error {
	return s.setActive(ctx, id, tenantID, true)
}

func (s *TenantScoped[T]) setActive(ctx context.Context, id, tenantID uuid.UUID, active bool) error {
	if tenantID == uuid.Nil {
		return ErrNoTenant
	}
	if err := s.exists(ctx, id, tenantID); err != nil {
		return err
	}
	tx, err := useTx(ctx)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(
		"UPDATE %s SET is_active = $1, updated_at = $2 WHERE id = $3 AND tenant_id = $4",
		s.m.Table,
	)
	_, err = tx.Exec(ctx, query, active, time.Now(), id, tenantID)
	return err
}

func (s *TenantScoped[T]) Count(ctx context.Context, tenantID uuid.UUID, activeOnly bool) (int64, error) {
	if tenantID == uuid.Nil {
		return 0, ErrNoTenant
	}
	tx, err := useTx(ctx)
	if err != nil {
		return 0, err
	}
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE tenant_id = $1", s.m.Table)
	if activeOnly {
		query += " AND is_active = true"
	}
	var count int64
	if err := tx.QueryRow(ctx, query, tenantID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// ArchiveWhere is the only bulk mutation on this path. The where clause is
// mandatory on top of the tenant filter; an empty one is rejected outright.
func (s *TenantScoped[T]) ArchiveWhere(ctx context.Context, tenantID uuid.UUID, where string, args ...any) (int64, error) {
	if tenantID == uuid.Nil {
		return 0, ErrNoTenant
	}
	if strings.TrimSpace(where) == "" {
		return 0, ErrEmptyFilter
	}
	tx, err := useTx(ctx)
	if err != nil {
		return 0, err
	}

	// Caller placeholders start at $3: $1 is is_active, $2 the tenant.
	query := fmt.Sprintf(
		"UPDATE %s SET is_active = $1 WHERE tenant_id = $2 AND (%s)",
		s.m.Table, where,
	)
	tag, err := tx.Exec(ctx, query, append([]any{false, tenantID}, args...)...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (s *TenantScoped[T]) exists(ctx context.Context, id, tenantID uuid.UUID) error {
	tx, err := useTx(ctx)
	if err != nil {
		return err
	}
	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE id = $1 AND tenant_id = $2)", s.m.Table)
	var ok bool
	if err := tx.QueryRow(ctx, query, id, tenantID).Scan(&ok); err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func placeholders(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("$%d", i+1)
	}
	return strings.Join(parts, ", ")
}

// useTx mirrors composables.UseTx; duplicated here to keep pkg/repo free of
// a dependency cycle with pkg/composables.
func useTx(ctx context.Context) (Tx, error) {
	if tx, ok := ctx.Value(constants.TxKey).(Tx); ok && tx != nil {
		return tx, nil
	}
	if pool, ok := ctx.Value(constants.PoolKey).(*pgxpool.Pool); ok && pool != nil {
		return pool, nil
	}
	return nil, errors.New("no transaction or pool found in context")
}
