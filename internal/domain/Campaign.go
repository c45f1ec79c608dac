package domain

import (
	"fmt"
	"strconv"
)

type Campaign struct {
	CampaignID int64   `json:"campaignId" yaml:"campaignId"`
	Clicks     int64   `json:"clicks" yaml:"clicks"`
	Cost       float64 `json:"cost" yaml:"cost"`
	Date       string  `json:"date" yaml:"date"`
	ProfileID  *int64  `json:"profileId" yaml:"profileId"`
}

// BelongsTo indica se a campanha pertence ao perfil informado
func (c *Campaign) BelongsTo(profileID int64) bool {
	return c != nil && c.ProfileID != nil && *c.ProfileID == profileID
}

// CampaignDetail é o resumo exibido quando uma campanha está selecionada
type CampaignDetail struct {
	CampaignID int64   `json:"campaignId"`
	Clicks     int64   `json:"clicks"`
	Cost       float64 `json:"cost"`
	Date       string  `json:"date"`
	Summary    string  `json:"summary"`
}

// Detail monta o painel de detalhes da campanha
func (c *Campaign) Detail() *CampaignDetail {
	if c == nil {
		return nil
	}

	return &CampaignDetail{
		CampaignID: c.CampaignID,
		Clicks:     c.Clicks,
		Cost:       c.Cost,
		Date:       c.Date,
		Summary:    c.Summary(),
	}
}

// Summary retorna o resumo em uma linha, ex.: "Campaign ID: 9, Clicks: 3, Cost: 1.5, Date: 2024-01-01"
func (c *Campaign) Summary() string {
	return fmt.Sprintf(
		"Campaign ID: %d, Clicks: %d, Cost: %s, Date: %s",
		c.CampaignID,
		c.Clicks,
		strconv.FormatFloat(c.Cost, 'f', -1, 64),
		c.Date,
	)
}
