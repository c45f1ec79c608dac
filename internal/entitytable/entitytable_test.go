package entitytable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/traffic-manager-browser/internal/domain"
)

func int64Ptr(i int64) *int64 {
	return &i
}

func TestColumns(t *testing.T) {
	accounts, err := NewAccountTable(nil, func(*domain.Account) {})
	require.NoError(t, err)
	profiles, err := NewProfileTable(nil, func(*domain.Profile) {})
	require.NoError(t, err)
	campaigns, err := NewCampaignTable(nil, func(*domain.Campaign) {})
	require.NoError(t, err)

	var got []string
	for _, h := range accounts.Headers() {
		got = append(got, h.Label)
	}
	assert.Equal(t, []string{"Account ID", "Email", "Auth Token", "Creation Date"}, got)
	assert.Equal(t, "accountId", accounts.SortField())

	got = nil
	for _, h := range profiles.Headers() {
		got = append(got, h.Label)
	}
	assert.Equal(t, []string{"Profile ID", "Country", "Marketplace"}, got)
	assert.Equal(t, "profileId", profiles.SortField())

	got = nil
	for _, h := range campaigns.Headers() {
		got = append(got, h.Label)
	}
	assert.Equal(t, []string{"Campaign ID", "Clicks", "Cost", "Date"}, got)
	assert.Equal(t, "campaignId", campaigns.SortField())
}

func TestAdapters_ForwardSelection(t *testing.T) {
	campaign := &domain.Campaign{CampaignID: 9, Clicks: 3, Cost: 1.5, Date: "2024-01-01", ProfileID: int64Ptr(5)}

	var selected *domain.Campaign
	tbl, err := NewCampaignTable([]*domain.Campaign{campaign}, func(c *domain.Campaign) {
		selected = c
	})
	require.NoError(t, err)

	view := tbl.View()
	require.Len(t, view.Rows, 1)
	assert.Equal(t, "9", view.Rows[0].Key)
	assert.Equal(t, []string{"9", "3", "1.5", "2024-01-01"}, view.Rows[0].Cells)

	require.NoError(t, tbl.Select("9"))
	assert.Same(t, campaign, selected)
}

func TestAccountTable_NumericSort(t *testing.T) {
	accounts := []*domain.Account{
		{AccountID: 10, Email: "b@x.com"},
		{AccountID: 2, Email: "a@x.com"},
		{AccountID: 1, Email: "c@x.com"},
	}

	tbl, err := NewAccountTable(accounts, func(*domain.Account) {})
	require.NoError(t, err)

	var keys []string
	for _, row := range tbl.Rows() {
		keys = append(keys, row.Key)
	}
	assert.Equal(t, []string{"1", "2", "10"}, keys)
}
