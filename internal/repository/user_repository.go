package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/hrms-service/internal/domain"
)

// UserRepository defines persistence access for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByEmailInOrg(ctx context.Context, organizationID, email string) (*domain.User, error)
	SearchByNameInOrg(ctx context.Context, organizationID, name string) ([]domain.User, error)
	List(ctx context.Context, filter UserFilter) ([]domain.User, error)
	ListActiveExcluding(ctx context.Context, organizationID string, excludedIDs []string) ([]domain.User, error)
}

// UserFilter defines query params for account listing.
type UserFilter struct {
	OrganizationID string
	Role           *string
	Status         *domain.UserStatus
	Limit          int
	Offset         int
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `id, full_name, email, password_hash, role, organization_id, status, created_at, updated_at`

func scanUser(row pgx.Row, user *domain.User) error {
	return row.Scan(
		&user.ID,
		&user.FullName,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.OrganizationID,
		&user.Status,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (full_name, email, password_hash, role, organization_id, status)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		user.FullName,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.OrganizationID,
		user.Status,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE users
        SET full_name=$1, email=$2, password_hash=$3, role=$4, status=$5, updated_at=NOW()
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		user.FullName,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.Status,
		user.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	var user domain.User
	if err := scanUser(r.pool.QueryRow(ctx, query, id), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email=$1`
	var user domain.User
	if err := scanUser(r.pool.QueryRow(ctx, query, email), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmailInOrg(ctx context.Context, organizationID, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE organization_id=$1 AND email=$2`
	var user domain.User
	if err := scanUser(r.pool.QueryRow(ctx, query, organizationID, email), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SearchByNameInOrg performs a case-insensitive wildcard match against full
// names: whitespace runs in the candidate become wildcards, so "john doe"
// also matches "John A. Doe". The candidate travels as a bind parameter with
// ILIKE metacharacters escaped, never spliced into the SQL text.
func (r *userRepository) SearchByNameInOrg(ctx context.Context, organizationID, name string) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
        WHERE organization_id=$1 AND full_name ILIKE $2 ESCAPE '\'
        ORDER BY full_name`

	rows, err := r.pool.Query(ctx, query, organizationID, namePattern(name))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

func namePattern(name string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	fields := strings.Fields(name)
	escaped := make([]string, 0, len(fields))
	for _, f := range fields {
		escaped = append(escaped, replacer.Replace(f))
	}
	return "%" + strings.Join(escaped, "%") + "%"
}

func (r *userRepository) List(ctx context.Context, filter UserFilter) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users`
	args := []any{}
	clauses := []string{}

	if filter.OrganizationID != "" {
		args = append(args, filter.OrganizationID)
		clauses = append(clauses, fmt.Sprintf("organization_id=$%d", len(args)))
	}
	if filter.Role != nil {
		args = append(args, *filter.Role)
		clauses = append(clauses, fmt.Sprintf("role=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	query += " ORDER BY created_at DESC"
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

// ListActiveExcluding returns non-archived accounts in the organization whose
// ids are not in the excluded set. Used for absentee lookups.
func (r *userRepository) ListActiveExcluding(ctx context.Context, organizationID string, excludedIDs []string) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
        WHERE organization_id=$1 AND status <> $2 AND NOT (id = ANY($3))
        ORDER BY full_name`

	if excludedIDs == nil {
		excludedIDs = []string{}
	}
	rows, err := r.pool.Query(ctx, query, organizationID, domain.UserStatusArchived, excludedIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

func collectUsers(rows pgx.Rows) ([]domain.User, error) {
	var result []domain.User
	for rows.Next() {
		var user domain.User
		if err := scanUser(rows, &user); err != nil {
			return nil, err
		}
		result = append(result, user)
	}
	return result, rows.Err()
}
