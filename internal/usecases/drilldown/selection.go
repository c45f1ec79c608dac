package drilldown

import "github.com/vfg2006/traffic-manager-browser/internal/domain"

// Depth indica até qual nível a seleção chegou
type Depth int

const (
	DepthNone Depth = iota
	DepthAccount
	DepthProfile
	DepthCampaign
)

func (d Depth) String() string {
	switch d {
	case DepthAccount:
		return "account"
	case DepthProfile:
		return "account_profile"
	case DepthCampaign:
		return "account_profile_campaign"
	default:
		return "none"
	}
}

// Selection é a seleção em cascata: None, Account(a), AccountProfile(a,p) ou
// AccountProfileCampaign(a,p,c). Só as transições do Controller constroem
// valores, então não existe perfil selecionado sem conta.
type Selection struct {
	depth    Depth
	account  *domain.Account
	profile  *domain.Profile
	campaign *domain.Campaign
}

func (s Selection) Depth() Depth {
	return s.depth
}

func (s Selection) Account() (*domain.Account, bool) {
	return s.account, s.depth >= DepthAccount
}

func (s Selection) Profile() (*domain.Profile, bool) {
	return s.profile, s.depth >= DepthProfile
}

func (s Selection) Campaign() (*domain.Campaign, bool) {
	return s.campaign, s.depth >= DepthCampaign
}

func withAccount(a *domain.Account) Selection {
	return Selection{depth: DepthAccount, account: a}
}

func (s Selection) withProfile(p *domain.Profile) Selection {
	return Selection{depth: DepthProfile, account: s.account, profile: p}
}

func (s Selection) withCampaign(c *domain.Campaign) Selection {
	return Selection{depth: DepthCampaign, account: s.account, profile: s.profile, campaign: c}
}
