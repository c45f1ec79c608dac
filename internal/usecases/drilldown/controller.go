// Package drilldown mantém a seleção em cascata contas → perfis → campanhas e
// deriva as coleções filtradas de cada nível
package drilldown

import (
	"github.com/vfg2006/traffic-manager-browser/internal/domain"
	"github.com/vfg2006/traffic-manager-browser/pkg/log"
)

// Layout é a política de renderização: quais tabelas e painel exibir, com
// quais coleções e callbacks. Função pura da seleção atual.
type Layout struct {
	Accounts        []*domain.Account
	OnAccountSelect func(*domain.Account)

	ShowProfiles    bool
	Profiles        []*domain.Profile
	OnProfileSelect func(*domain.Profile)

	ShowCampaigns    bool
	Campaigns        []*domain.Campaign
	OnCampaignSelect func(*domain.Campaign)

	ShowDetail bool
	Detail     *domain.CampaignDetail
}

type Controller struct {
	snapshot  *domain.Snapshot
	selection Selection
}

func NewController(snapshot *domain.Snapshot) *Controller {
	if snapshot == nil {
		snapshot = domain.EmptySnapshot()
	}

	return &Controller{snapshot: snapshot}
}

// SetSnapshot recebe as coleções da próxima renderização; a seleção é mantida
func (c *Controller) SetSnapshot(snapshot *domain.Snapshot) {
	if snapshot == nil {
		snapshot = domain.EmptySnapshot()
	}
	c.snapshot = snapshot
}

func (c *Controller) Snapshot() *domain.Snapshot {
	return c.snapshot
}

func (c *Controller) Selection() Selection {
	return c.selection
}

// SelectAccount seleciona a conta e limpa perfil e campanha
func (c *Controller) SelectAccount(account *domain.Account) {
	if account == nil {
		log.L.Warn("Seleção de conta nula ignorada")
		return
	}

	c.selection = withAccount(account)
}

// SelectProfile seleciona o perfil e limpa a campanha. Sem conta selecionada
// a chamada é ignorada e retorna false.
func (c *Controller) SelectProfile(profile *domain.Profile) bool {
	if profile == nil {
		log.L.Warn("Seleção de perfil nula ignorada")
		return false
	}

	if c.selection.depth < DepthAccount {
		log.L.WithField("level", domain.LevelProfiles).Warnf("Perfil %d selecionado sem conta selecionada, ignorando", profile.ProfileID)
		return false
	}

	c.selection = c.selection.withProfile(profile)
	return true
}

// SelectCampaign seleciona a campanha. Sem perfil selecionado a chamada é
// ignorada e retorna false.
func (c *Controller) SelectCampaign(campaign *domain.Campaign) bool {
	if campaign == nil {
		log.L.Warn("Seleção de campanha nula ignorada")
		return false
	}

	if c.selection.depth < DepthProfile {
		log.L.WithField("level", domain.LevelCampaigns).Warnf("Campanha %d selecionada sem perfil selecionado, ignorando", campaign.CampaignID)
		return false
	}

	c.selection = c.selection.withCampaign(campaign)
	return true
}

// FilteredProfiles retorna os perfis da conta selecionada na ordem do snapshot
func (c *Controller) FilteredProfiles() []*domain.Profile {
	profiles := make([]*domain.Profile, 0)

	account, ok := c.selection.Account()
	if !ok {
		return profiles
	}

	for _, profile := range c.snapshot.Profiles {
		if profile.BelongsTo(account.AccountID) {
			profiles = append(profiles, profile)
		}
	}

	return profiles
}

// FilteredCampaigns retorna as campanhas do perfil selecionado na ordem do snapshot
func (c *Controller) FilteredCampaigns() []*domain.Campaign {
	campaigns := make([]*domain.Campaign, 0)

	profile, ok := c.selection.Profile()
	if !ok {
		return campaigns
	}

	for _, campaign := range c.snapshot.Campaigns {
		if campaign.BelongsTo(profile.ProfileID) {
			campaigns = append(campaigns, campaign)
		}
	}

	return campaigns
}

func (c *Controller) Layout() Layout {
	layout := Layout{
		Accounts:        c.snapshot.Accounts,
		OnAccountSelect: c.SelectAccount,
	}

	if c.selection.depth >= DepthAccount {
		layout.ShowProfiles = true
		layout.Profiles = c.FilteredProfiles()
		layout.OnProfileSelect = func(p *domain.Profile) { c.SelectProfile(p) }
	}

	if c.selection.depth >= DepthProfile {
		layout.ShowCampaigns = true
		layout.Campaigns = c.FilteredCampaigns()
		layout.OnCampaignSelect = func(cp *domain.Campaign) { c.SelectCampaign(cp) }
	}

	if campaign, ok := c.selection.Campaign(); ok {
		layout.ShowDetail = true
		layout.Detail = campaign.Detail()
	}

	return layout
}
