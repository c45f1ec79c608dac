//go:generate mockgen -source=account.go -destination=mocks/mock_account.go -package=mocks

package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/vfg2006/traffic-manager-browser/infrastructure/database/postgres"
	"github.com/vfg2006/traffic-manager-browser/internal/domain"
)

const accountsTable = "accounts"

type AccountRepository interface {
	ListAccounts(ctx context.Context) ([]*domain.Account, error)
	SaveOrUpdate(ctx context.Context, accounts []*domain.Account) error
}

type accountRepository struct {
	conn postgres.Queryer
}

func NewAccountRepository(conn postgres.Queryer) AccountRepository {
	return &accountRepository{
		conn: conn,
	}
}

func listAccountsQuery() squirrel.SelectBuilder {
	return squirrel.
		Select("account_id", "email", "auth_token", "creation_date").
		From(accountsTable).
		OrderBy("account_id").
		PlaceholderFormat(squirrel.Dollar)
}

func (r *accountRepository) ListAccounts(ctx context.Context) ([]*domain.Account, error) {
	accountsSQL, accountsArgs, err := listAccountsQuery().ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build accounts query")
	}

	rows, err := r.conn.QueryContext(ctx, accountsSQL, accountsArgs...)
	if err != nil {
		return nil, wrapDatabaseError(err, "list accounts")
	}
	defer rows.Close()

	accounts := make([]*domain.Account, 0)
	for rows.Next() {
		acc := &domain.Account{}
		var creationDate sql.NullString

		if err := rows.Scan(&acc.AccountID, &acc.Email, &acc.AuthToken, &creationDate); err != nil {
			return nil, errors.Wrap(err, "scan account")
		}

		acc.CreationDate = creationDate.String
		accounts = append(accounts, acc)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapDatabaseError(err, "iterate accounts")
	}

	return accounts, nil
}

func upsertAccountsQuery(accounts []*domain.Account) squirrel.InsertBuilder {
	query := squirrel.
		Insert(accountsTable).
		Columns("account_id", "email", "auth_token", "creation_date").
		PlaceholderFormat(squirrel.Dollar)

	for _, acc := range accounts {
		query = query.Values(acc.AccountID, acc.Email, acc.AuthToken, nullString(acc.CreationDate))
	}

	return query.Suffix(`
		ON CONFLICT (account_id) DO UPDATE SET
			email = EXCLUDED.email,
			auth_token = EXCLUDED.auth_token,
			creation_date = EXCLUDED.creation_date
	`)
}

func (r *accountRepository) SaveOrUpdate(ctx context.Context, accounts []*domain.Account) error {
	if len(accounts) == 0 {
		return nil
	}

	sqlQuery, args, err := upsertAccountsQuery(accounts).ToSql()
	if err != nil {
		return errors.Wrap(err, "failed to build query")
	}

	if _, err := r.conn.ExecContext(ctx, sqlQuery, args...); err != nil {
		return wrapDatabaseError(err, "save accounts")
	}

	return nil
}

// wrapDatabaseError acrescenta o código do postgres quando disponível
func wrapDatabaseError(err error, op string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return errors.Wrapf(err, "database error on %s (code: %s)", op, pqErr.Code)
	}
	return errors.Wrapf(err, "failed to %s", op)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt64(i *int64) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *i, Valid: true}
}

func int64Ptr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}
