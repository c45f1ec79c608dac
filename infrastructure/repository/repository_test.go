package repository

import (
	"database/sql"
	"testing"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/traffic-manager-browser/internal/domain"
)

func ptr(i int64) *int64 {
	return &i
}

func TestListQueries(t *testing.T) {
	tests := []struct {
		name string
		sql  func() (string, []interface{}, error)
		want string
	}{
		{
			name: "Contas",
			sql:  listAccountsQuery().ToSql,
			want: "SELECT account_id, email, auth_token, creation_date FROM accounts ORDER BY account_id",
		},
		{
			name: "Perfis",
			sql:  listProfilesQuery().ToSql,
			want: "SELECT profile_id, country, marketplace, account_id FROM profiles ORDER BY profile_id",
		},
		{
			name: "Campanhas",
			sql:  listCampaignsQuery().ToSql,
			want: "SELECT campaign_id, clicks, cost, to_char(date, 'YYYY-MM-DD'), profile_id FROM campaigns ORDER BY campaign_id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := tt.sql()
			require.NoError(t, err)
			assert.Equal(t, tt.want, query)
			assert.Empty(t, args)
		})
	}
}

func TestUpsertQueries(t *testing.T) {
	t.Run("Contas", func(t *testing.T) {
		query, args, err := upsertAccountsQuery([]*domain.Account{
			{AccountID: 1, Email: "a@example.com", AuthToken: "t"},
		}).ToSql()
		require.NoError(t, err)

		assert.Contains(t, query, "INSERT INTO accounts (account_id,email,auth_token,creation_date) VALUES ($1,$2,$3,$4)")
		assert.Contains(t, query, "ON CONFLICT (account_id) DO UPDATE")
		assert.Equal(t, []interface{}{int64(1), "a@example.com", "t", sql.NullString{}}, args)
	})

	t.Run("Perfis com conta nula", func(t *testing.T) {
		query, args, err := upsertProfilesQuery([]*domain.Profile{
			{ProfileID: 5, Country: "US", AccountID: ptr(1)},
			{ProfileID: 6, Country: "BR"},
		}).ToSql()
		require.NoError(t, err)

		assert.Contains(t, query, "VALUES ($1,$2,$3,$4),($5,$6,$7,$8)")
		assert.Equal(t, sql.NullInt64{Int64: 1, Valid: true}, args[3])
		assert.Equal(t, sql.NullInt64{}, args[7])
	})

	t.Run("Campanhas", func(t *testing.T) {
		query, args, err := upsertCampaignsQuery([]*domain.Campaign{
			{CampaignID: 9, Clicks: 3, Cost: 1.5, Date: "2024-01-01", ProfileID: ptr(5)},
		}).ToSql()
		require.NoError(t, err)

		assert.Contains(t, query, "ON CONFLICT (campaign_id) DO UPDATE")
		assert.Equal(t, []interface{}{
			int64(9), int64(3), 1.5,
			sql.NullString{String: "2024-01-01", Valid: true},
			sql.NullInt64{Int64: 5, Valid: true},
		}, args)
	})
}

func TestWrapDatabaseError(t *testing.T) {
	pqErr := &pq.Error{Code: "23503", Message: "violates foreign key"}

	err := wrapDatabaseError(pqErr, "save profiles")
	assert.Contains(t, err.Error(), "code: 23503")
	assert.Equal(t, pqErr, errors.Cause(err))

	err = wrapDatabaseError(sql.ErrConnDone, "list accounts")
	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.Contains(t, err.Error(), "failed to list accounts")
}

func TestNullHelpers(t *testing.T) {
	assert.Nil(t, int64Ptr(sql.NullInt64{}))
	assert.Equal(t, int64(7), *int64Ptr(sql.NullInt64{Int64: 7, Valid: true}))
	assert.Equal(t, sql.NullInt64{}, nullInt64(nil))
	assert.False(t, nullString("").Valid)
}
