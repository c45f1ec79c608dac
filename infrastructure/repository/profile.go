//go:generate mockgen -source=profile.go -destination=mocks/mock_profile.go -package=mocks

package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/traffic-manager-browser/infrastructure/database/postgres"
	"github.com/vfg2006/traffic-manager-browser/internal/domain"
)

const profilesTable = "profiles"

type ProfileRepository interface {
	ListProfiles(ctx context.Context) ([]*domain.Profile, error)
	SaveOrUpdate(ctx context.Context, profiles []*domain.Profile) error
}

type profileRepository struct {
	conn postgres.Queryer
}

func NewProfileRepository(conn postgres.Queryer) ProfileRepository {
	return &profileRepository{
		conn: conn,
	}
}

func listProfilesQuery() squirrel.SelectBuilder {
	return squirrel.
		Select("profile_id", "country", "marketplace", "account_id").
		From(profilesTable).
		OrderBy("profile_id").
		PlaceholderFormat(squirrel.Dollar)
}

func (r *profileRepository) ListProfiles(ctx context.Context) ([]*domain.Profile, error) {
	profilesSQL, profilesArgs, err := listProfilesQuery().ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build profiles query")
	}

	rows, err := r.conn.QueryContext(ctx, profilesSQL, profilesArgs...)
	if err != nil {
		return nil, wrapDatabaseError(err, "list profiles")
	}
	defer rows.Close()

	profiles := make([]*domain.Profile, 0)
	for rows.Next() {
		profile := &domain.Profile{}
		var accountID sql.NullInt64

		if err := rows.Scan(&profile.ProfileID, &profile.Country, &profile.Marketplace, &accountID); err != nil {
			return nil, errors.Wrap(err, "scan profile")
		}

		// Perfis sem conta continuam no snapshot; o filtro os exclui
		profile.AccountID = int64Ptr(accountID)
		profiles = append(profiles, profile)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapDatabaseError(err, "iterate profiles")
	}

	return profiles, nil
}

func upsertProfilesQuery(profiles []*domain.Profile) squirrel.InsertBuilder {
	query := squirrel.
		Insert(profilesTable).
		Columns("profile_id", "country", "marketplace", "account_id").
		PlaceholderFormat(squirrel.Dollar)

	for _, profile := range profiles {
		query = query.Values(profile.ProfileID, profile.Country, profile.Marketplace, nullInt64(profile.AccountID))
	}

	return query.Suffix(`
		ON CONFLICT (profile_id) DO UPDATE SET
			country = EXCLUDED.country,
			marketplace = EXCLUDED.marketplace,
			account_id = EXCLUDED.account_id
	`)
}

func (r *profileRepository) SaveOrUpdate(ctx context.Context, profiles []*domain.Profile) error {
	if len(profiles) == 0 {
		return nil
	}

	sqlQuery, args, err := upsertProfilesQuery(profiles).ToSql()
	if err != nil {
		return errors.Wrap(err, "failed to build query")
	}

	if _, err := r.conn.ExecContext(ctx, sqlQuery, args...); err != nil {
		return wrapDatabaseError(err, "save profiles")
	}

	return nil
}
