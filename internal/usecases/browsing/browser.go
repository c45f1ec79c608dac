// Package browsing monta a tela de navegação: o controlador de seleção mais as
// tabelas de cada nível, montadas e desmontadas conforme a política de renderização
package browsing

import (
	"github.com/vfg2006/traffic-manager-browser/internal/domain"
	"github.com/vfg2006/traffic-manager-browser/internal/entitytable"
	"github.com/vfg2006/traffic-manager-browser/internal/table"
	"github.com/vfg2006/traffic-manager-browser/internal/usecases/drilldown"
)

// TableView é a renderização de um nível
type TableView struct {
	Level    domain.Level `json:"level"`
	Title    string       `json:"title"`
	Selected string       `json:"selected,omitempty"` // Chave da linha selecionada neste nível
	table.View
}

// View é a renderização completa da tela
type View struct {
	Accounts         TableView              `json:"accounts"`
	Profiles         *TableView             `json:"profiles,omitempty"`
	Campaigns        *TableView             `json:"campaigns,omitempty"`
	SelectedCampaign *domain.CampaignDetail `json:"selected_campaign,omitempty"`
	SnapshotVersion  int64                  `json:"snapshot_version"`
}

// Browser é uma tela montada. Não é seguro para uso concorrente: quem a
// compartilha entre goroutines deve serializar o acesso (ver SessionStore).
type Browser struct {
	controller *drilldown.Controller
	accounts   *table.Table[*domain.Account]
	profiles   *table.Table[*domain.Profile]
	campaigns  *table.Table[*domain.Campaign]
}

func NewBrowser(snapshot *domain.Snapshot) (*Browser, error) {
	controller := drilldown.NewController(snapshot)
	layout := controller.Layout()

	accounts, err := entitytable.NewAccountTable(layout.Accounts, layout.OnAccountSelect)
	if err != nil {
		return nil, err
	}

	return &Browser{
		controller: controller,
		accounts:   accounts,
	}, nil
}

func (b *Browser) Selection() drilldown.Selection {
	return b.controller.Selection()
}

// Refresh recebe um novo snapshot para a próxima renderização
func (b *Browser) Refresh(snapshot *domain.Snapshot) error {
	b.controller.SetSnapshot(snapshot)
	_, err := b.apply()
	return err
}

// Render aplica a política de renderização e retorna a tela
func (b *Browser) Render() (*View, error) {
	layout, err := b.apply()
	if err != nil {
		return nil, err
	}

	selection := b.controller.Selection()

	view := &View{
		Accounts: TableView{
			Level: domain.LevelAccounts,
			Title: entitytable.AccountsTitle,
			View:  b.accounts.View(),
		},
		SnapshotVersion: b.controller.Snapshot().Version,
	}
	if account, ok := selection.Account(); ok {
		view.Accounts.Selected = b.accounts.KeyOf(account)
	}

	if b.profiles != nil {
		view.Profiles = &TableView{
			Level: domain.LevelProfiles,
			Title: entitytable.ProfilesTitle,
			View:  b.profiles.View(),
		}
		if profile, ok := selection.Profile(); ok {
			view.Profiles.Selected = b.profiles.KeyOf(profile)
		}
	}

	if b.campaigns != nil {
		view.Campaigns = &TableView{
			Level: domain.LevelCampaigns,
			Title: entitytable.CampaignsTitle,
			View:  b.campaigns.View(),
		}
		if campaign, ok := selection.Campaign(); ok {
			view.Campaigns.Selected = b.campaigns.KeyOf(campaign)
		}
	}

	if layout.ShowDetail {
		view.SelectedCampaign = layout.Detail
	}

	markSelected(&view.Accounts)
	markSelected(view.Profiles)
	markSelected(view.Campaigns)

	return view, nil
}

// markSelected marca a linha cuja chave é a selecionada do nível
func markSelected(tv *TableView) {
	if tv == nil || tv.Selected == "" {
		return
	}
	for i := range tv.Rows {
		tv.Rows[i].Selected = tv.Rows[i].Key == tv.Selected
	}
}

// Click trata o clique na linha `key` do nível informado
func (b *Browser) Click(level domain.Level, key string) error {
	var err error

	switch level {
	case domain.LevelAccounts:
		err = b.accounts.Select(key)
	case domain.LevelProfiles:
		if b.profiles == nil {
			return ErrLevelHidden
		}
		err = b.profiles.Select(key)
	case domain.LevelCampaigns:
		if b.campaigns == nil {
			return ErrLevelHidden
		}
		err = b.campaigns.Select(key)
	default:
		return ErrUnknownLevel
	}
	if err != nil {
		return err
	}

	_, err = b.apply()
	return err
}

// ClickAt trata o clique pela posição renderizada, usado pelo terminal
func (b *Browser) ClickAt(level domain.Level, position int) error {
	var err error

	switch level {
	case domain.LevelAccounts:
		err = b.accounts.SelectAt(position)
	case domain.LevelProfiles:
		if b.profiles == nil {
			return ErrLevelHidden
		}
		err = b.profiles.SelectAt(position)
	case domain.LevelCampaigns:
		if b.campaigns == nil {
			return ErrLevelHidden
		}
		err = b.campaigns.SelectAt(position)
	default:
		return ErrUnknownLevel
	}
	if err != nil {
		return err
	}

	_, err = b.apply()
	return err
}

// ToggleSort inverte a ordenação da tabela do nível informado
func (b *Browser) ToggleSort(level domain.Level) error {
	switch level {
	case domain.LevelAccounts:
		b.accounts.ToggleSort()
	case domain.LevelProfiles:
		if b.profiles == nil {
			return ErrLevelHidden
		}
		b.profiles.ToggleSort()
	case domain.LevelCampaigns:
		if b.campaigns == nil {
			return ErrLevelHidden
		}
		b.campaigns.ToggleSort()
	default:
		return ErrUnknownLevel
	}

	return nil
}

// apply monta as tabelas que passaram a ser exibidas, desmonta as que foram
// escondidas (descartando a ordenação) e entrega a cada uma sua coleção filtrada
func (b *Browser) apply() (drilldown.Layout, error) {
	layout := b.controller.Layout()

	b.accounts.SetData(layout.Accounts)

	if !layout.ShowProfiles {
		b.profiles = nil
	} else if b.profiles == nil {
		profiles, err := entitytable.NewProfileTable(layout.Profiles, layout.OnProfileSelect)
		if err != nil {
			return layout, err
		}
		b.profiles = profiles
	} else {
		b.profiles.SetData(layout.Profiles)
	}

	if !layout.ShowCampaigns {
		b.campaigns = nil
	} else if b.campaigns == nil {
		campaigns, err := entitytable.NewCampaignTable(layout.Campaigns, layout.OnCampaignSelect)
		if err != nil {
			return layout, err
		}
		b.campaigns = campaigns
	} else {
		b.campaigns.SetData(layout.Campaigns)
	}

	return layout, nil
}
