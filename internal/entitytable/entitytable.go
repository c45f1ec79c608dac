// Package entitytable liga a tabela genérica às colunas fixas de cada entidade
package entitytable

import (
	"github.com/vfg2006/traffic-manager-browser/internal/domain"
	"github.com/vfg2006/traffic-manager-browser/internal/table"
)

const (
	AccountsTitle  = "Accounts"
	ProfilesTitle  = "Profiles"
	CampaignsTitle = "Campaigns"
)

// AccountColumns são as colunas da tabela de contas; a primeira define a ordenação
func AccountColumns() []table.Column[*domain.Account] {
	return []table.Column[*domain.Account]{
		{
			Label: "Account ID",
			Field: "accountId",
			Value: func(a *domain.Account) any { return a.AccountID },
			Sort:  table.Ascending,
			Key:   true,
		},
		{
			Label: "Email",
			Field: "email",
			Value: func(a *domain.Account) any { return a.Email },
			Sort:  table.Ascending,
		},
		{
			Label: "Auth Token",
			Field: "authToken",
			Value: func(a *domain.Account) any { return a.AuthToken },
			Sort:  table.Ascending,
		},
		{
			Label: "Creation Date",
			Field: "creationDate",
			Value: func(a *domain.Account) any { return a.CreationDate },
			Sort:  table.Ascending,
		},
	}
}

func ProfileColumns() []table.Column[*domain.Profile] {
	return []table.Column[*domain.Profile]{
		{
			Label: "Profile ID",
			Field: "profileId",
			Value: func(p *domain.Profile) any { return p.ProfileID },
			Sort:  table.Ascending,
			Key:   true,
		},
		{
			Label: "Country",
			Field: "country",
			Value: func(p *domain.Profile) any { return p.Country },
			Sort:  table.Ascending,
		},
		{
			Label: "Marketplace",
			Field: "marketplace",
			Value: func(p *domain.Profile) any { return p.Marketplace },
			Sort:  table.Ascending,
		},
	}
}

func CampaignColumns() []table.Column[*domain.Campaign] {
	return []table.Column[*domain.Campaign]{
		{
			Label: "Campaign ID",
			Field: "campaignId",
			Value: func(c *domain.Campaign) any { return c.CampaignID },
			Sort:  table.Ascending,
			Key:   true,
		},
		{
			Label: "Clicks",
			Field: "clicks",
			Value: func(c *domain.Campaign) any { return c.Clicks },
			Sort:  table.Ascending,
		},
		{
			Label: "Cost",
			Field: "cost",
			Value: func(c *domain.Campaign) any { return c.Cost },
			Sort:  table.Ascending,
		},
		{
			Label: "Date",
			Field: "date",
			Value: func(c *domain.Campaign) any { return c.Date },
			Sort:  table.Ascending,
		},
	}
}

func NewAccountTable(accounts []*domain.Account, onSelect func(*domain.Account)) (*table.Table[*domain.Account], error) {
	return table.New(accounts, AccountColumns(), onSelect)
}

func NewProfileTable(profiles []*domain.Profile, onSelect func(*domain.Profile)) (*table.Table[*domain.Profile], error) {
	return table.New(profiles, ProfileColumns(), onSelect)
}

func NewCampaignTable(campaigns []*domain.Campaign, onSelect func(*domain.Campaign)) (*table.Table[*domain.Campaign], error) {
	return table.New(campaigns, CampaignColumns(), onSelect)
}
