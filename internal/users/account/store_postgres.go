// Copyright (c) 2026 Scribe. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/scribe/internal/platform/apperr"
	"github.com/taibuivan/scribe/internal/platform/database/schema"
	"github.com/taibuivan/scribe/internal/platform/dberr"
	"github.com/taibuivan/scribe/internal/platform/sec"
)

// # Account Repository

// PostgresAccountRepository implements [AccountRepository] using pgx.
//
// The permission is stored as a foreign key; queries resolve it by name so the
// Go side only ever handles [sec.Permission] values.
type PostgresAccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new PostgreSQL implementation of the AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{pool: pool}
}

// selectAccount is the shared projection joined with the permission name.
var selectAccount = fmt.Sprintf(`
	SELECT a.%s, a.%s, a.%s, a.%s, p.%s, a.%s, a.%s
	FROM %s a
	JOIN %s p ON p.%s = a.%s`,
	schema.Account.ID,
	schema.Account.Email,
	schema.Account.Name,
	schema.Account.PasswordHash,
	schema.Permission.Name,
	schema.Account.CreatedAt,
	schema.Account.UpdatedAt,
	schema.Account.Table,
	schema.Permission.Table,
	schema.Permission.ID,
	schema.Account.PermissionID,
)

// permissionIDByName resolves a permission name placeholder into its id.
func permissionIDByName(placeholder string) string {
	return fmt.Sprintf("(SELECT %s FROM %s WHERE %s = %s)",
		schema.Permission.ID, schema.Permission.Table, schema.Permission.Name, placeholder)
}

/*
Create persists a new account.

Description: The permission name is resolved inside the insert; timestamps
and the id are produced by PostgreSQL and written back into user.

Returns:
  - error: CONFLICT on a duplicate email, or connectivity errors
*/
func (repository *PostgresAccountRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, %s)
		RETURNING %s, %s, %s`,
		schema.Account.Table,
		schema.Account.Email,
		schema.Account.Name,
		schema.Account.PasswordHash,
		schema.Account.PermissionID,
		permissionIDByName("$4"),
		schema.Account.ID,
		schema.Account.CreatedAt,
		schema.Account.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		user.Email,
		user.Name,
		user.PasswordHash,
		string(user.Permission),
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		return dberr.Wrap(err, "User")
	}
	return nil
}

// FindByID retrieves an account by primary key.
func (repository *PostgresAccountRepository) FindByID(context context.Context, id int64) (*User, error) {
	query := selectAccount + fmt.Sprintf(" WHERE a.%s = $1", schema.Account.ID)
	return repository.findOne(context, query, id)
}

// FindByEmail retrieves an account by its unique email address.
func (repository *PostgresAccountRepository) FindByEmail(context context.Context, email string) (*User, error) {
	query := selectAccount + fmt.Sprintf(" WHERE a.%s = $1", schema.Account.Email)
	return repository.findOne(context, query, email)
}

/*
List returns one page of accounts ordered by id.

Description: The total comes from a separate COUNT so that a page past the
end still reports how many accounts exist.
*/
func (repository *PostgresAccountRepository) List(context context.Context, limit, offset int) ([]*User, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(selectAccount)
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY a.%s ASC LIMIT $1 OFFSET $2", schema.Account.ID))

	rows, err := repository.pool.Query(context, queryBuilder.String(), limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list accounts: %w", err)
	}

	users, err := pgx.CollectRows(rows, scanUser)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to scan accounts: %w", err)
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", schema.Account.Table)
	if err := repository.pool.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to count accounts: %w", err)
	}

	return users, total, nil
}

// Update persists the mutable columns of user and refreshes UpdatedAt.
func (repository *PostgresAccountRepository) Update(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = %s, %s = NOW()
		WHERE %s = $1
		RETURNING %s`,
		schema.Account.Table,
		schema.Account.Email,
		schema.Account.Name,
		schema.Account.PasswordHash,
		schema.Account.PermissionID, permissionIDByName("$5"),
		schema.Account.UpdatedAt,
		schema.Account.ID,
		schema.Account.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		user.ID,
		user.Email,
		user.Name,
		user.PasswordHash,
		string(user.Permission),
	).Scan(&user.UpdatedAt)

	if err != nil {
		return dberr.Wrap(err, "User")
	}
	return nil
}

// Delete removes an account. Accounts that still author articles are refused with CONFLICT.
func (repository *PostgresAccountRepository) Delete(context context.Context, id int64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.Account.Table, schema.Account.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "User")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}
	return nil
}

// PermissionExists reports whether a permission row with the given name exists.
func (repository *PostgresAccountRepository) PermissionExists(context context.Context, permission sec.Permission) (bool, error) {
	query := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)",
		schema.Permission.Table, schema.Permission.Name)

	var exists bool
	if err := repository.pool.QueryRow(context, query, string(permission)).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres: failed to look up permission: %w", err)
	}
	return exists, nil
}

// # Row Mapping

func (repository *PostgresAccountRepository) findOne(context context.Context, query string, argument any) (*User, error) {
	rows, err := repository.pool.Query(context, query, argument)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query account: %w", err)
	}

	user, err := pgx.CollectExactlyOneRow(rows, scanUser)
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}
	return user, nil
}

func scanUser(row pgx.CollectableRow) (*User, error) {
	var user User
	var permissionName string

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.PasswordHash,
		&permissionName,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	permission, ok := sec.ParsePermission(permissionName)
	if !ok {
		return nil, fmt.Errorf("postgres: account %d has unknown permission %q", user.ID, permissionName)
	}
	user.Permission = permission

	return &user, nil
}
