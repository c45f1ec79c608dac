//go:generate mockgen -source=campaign.go -destination=mocks/mock_campaign.go -package=mocks

package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/traffic-manager-browser/infrastructure/database/postgres"
	"github.com/vfg2006/traffic-manager-browser/internal/domain"
)

const campaignsTable = "campaigns"

type CampaignRepository interface {
	ListCampaigns(ctx context.Context) ([]*domain.Campaign, error)
	SaveOrUpdate(ctx context.Context, campaigns []*domain.Campaign) error
}

type campaignRepository struct {
	conn postgres.Queryer
}

func NewCampaignRepository(conn postgres.Queryer) CampaignRepository {
	return &campaignRepository{
		conn: conn,
	}
}

func listCampaignsQuery() squirrel.SelectBuilder {
	return squirrel.
		Select("campaign_id", "clicks", "cost", "to_char(date, 'YYYY-MM-DD')", "profile_id").
		From(campaignsTable).
		OrderBy("campaign_id").
		PlaceholderFormat(squirrel.Dollar)
}

func (r *campaignRepository) ListCampaigns(ctx context.Context) ([]*domain.Campaign, error) {
	campaignsSQL, campaignsArgs, err := listCampaignsQuery().ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build campaigns query")
	}

	rows, err := r.conn.QueryContext(ctx, campaignsSQL, campaignsArgs...)
	if err != nil {
		return nil, wrapDatabaseError(err, "list campaigns")
	}
	defer rows.Close()

	campaigns := make([]*domain.Campaign, 0)
	for rows.Next() {
		campaign := &domain.Campaign{}
		var (
			date      sql.NullString
			profileID sql.NullInt64
		)

		if err := rows.Scan(&campaign.CampaignID, &campaign.Clicks, &campaign.Cost, &date, &profileID); err != nil {
			return nil, errors.Wrap(err, "scan campaign")
		}

		campaign.Date = date.String
		campaign.ProfileID = int64Ptr(profileID)
		campaigns = append(campaigns, campaign)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapDatabaseError(err, "iterate campaigns")
	}

	return campaigns, nil
}

func upsertCampaignsQuery(campaigns []*domain.Campaign) squirrel.InsertBuilder {
	query := squirrel.
		Insert(campaignsTable).
		Columns("campaign_id", "clicks", "cost", "date", "profile_id").
		PlaceholderFormat(squirrel.Dollar)

	for _, campaign := range campaigns {
		query = query.Values(campaign.CampaignID, campaign.Clicks, campaign.Cost, nullString(campaign.Date), nullInt64(campaign.ProfileID))
	}

	return query.Suffix(`
		ON CONFLICT (campaign_id) DO UPDATE SET
			clicks = EXCLUDED.clicks,
			cost = EXCLUDED.cost,
			date = EXCLUDED.date,
			profile_id = EXCLUDED.profile_id
	`)
}

func (r *campaignRepository) SaveOrUpdate(ctx context.Context, campaigns []*domain.Campaign) error {
	if len(campaigns) == 0 {
		return nil
	}

	sqlQuery, args, err := upsertCampaignsQuery(campaigns).ToSql()
	if err != nil {
		return errors.Wrap(err, "failed to build query")
	}

	if _, err := r.conn.ExecContext(ctx, sqlQuery, args...); err != nil {
		return wrapDatabaseError(err, "save campaigns")
	}

	return nil
}
