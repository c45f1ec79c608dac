package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/traffic-manager-browser/internal/domain"
	"github.com/vfg2006/traffic-manager-browser/internal/usecases/browsing"
)

func int64Ptr(i int64) *int64 {
	return &i
}

func testSnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		Accounts: []*domain.Account{
			{AccountID: 2, Email: "b@example.com"},
			{AccountID: 1, Email: "a@example.com"},
		},
		Profiles: []*domain.Profile{
			{ProfileID: 5, Country: "BR", AccountID: int64Ptr(1)},
			{ProfileID: 6, Country: "US", AccountID: int64Ptr(2)},
		},
		Campaigns: []*domain.Campaign{
			{CampaignID: 9, Clicks: 3, Cost: 1.5, Date: "2024-01-01", ProfileID: int64Ptr(5)},
			{CampaignID: 10, Clicks: 1, Cost: 0.5, Date: "2024-01-02", ProfileID: int64Ptr(6)},
		},
	}
}

func newModel(t *testing.T, loader Loader) *Model {
	t.Helper()

	browser, err := browsing.NewBrowser(testSnapshot())
	require.NoError(t, err)

	m, err := New(context.Background(), browser, loader)
	require.NoError(t, err)

	return m
}

func press(m *Model, msgs ...tea.KeyMsg) {
	for _, msg := range msgs {
		m.Update(msg)
	}
}

var (
	enter    = tea.KeyMsg{Type: tea.KeyEnter}
	tab      = tea.KeyMsg{Type: tea.KeyTab}
	shiftTab = tea.KeyMsg{Type: tea.KeyShiftTab}
	down     = tea.KeyMsg{Type: tea.KeyDown}
	sortKey  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")}
	reload   = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")}
	quit     = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}
)

func TestModel_DrillDown(t *testing.T) {
	m := newModel(t, nil)

	assert.Equal(t, domain.LevelAccounts, m.Focus())
	assert.Contains(t, m.View(), "Accounts")
	assert.NotContains(t, m.View(), "Campaign ID:")

	// Conta 1 é a primeira linha na ordenação ascendente
	press(m, enter)
	assert.Equal(t, domain.LevelProfiles, m.Focus())
	assert.NotNil(t, m.view.Profiles)
	assert.Nil(t, m.view.Campaigns)

	press(m, enter)
	assert.Equal(t, domain.LevelCampaigns, m.Focus())

	press(m, enter)
	require.NoError(t, m.err)
	assert.Contains(t, m.View(), "Campaign ID: 9, Clicks: 3, Cost: 1.5, Date: 2024-01-01")
}

func TestModel_CursorMovesBeforeSelect(t *testing.T) {
	m := newModel(t, nil)

	press(m, down, enter)

	account, ok := m.browser.Selection().Account()
	require.True(t, ok)
	assert.Equal(t, int64(2), account.AccountID)
	assert.Equal(t, []string{"6"}, m.rowKeys[domain.LevelProfiles])
}

func TestModel_FocusCyclesOverVisibleLevels(t *testing.T) {
	m := newModel(t, nil)

	press(m, tab)
	assert.Equal(t, domain.LevelAccounts, m.Focus())

	press(m, enter)
	require.Equal(t, domain.LevelProfiles, m.Focus())

	press(m, tab)
	assert.Equal(t, domain.LevelAccounts, m.Focus())

	press(m, shiftTab)
	assert.Equal(t, domain.LevelProfiles, m.Focus())
}

func TestModel_ToggleSortKeepsCursorOnRow(t *testing.T) {
	m := newModel(t, nil)

	assert.Equal(t, []string{"1", "2"}, m.rowKeys[domain.LevelAccounts])
	assert.Contains(t, m.View(), "▲")

	press(m, sortKey)
	assert.Equal(t, []string{"2", "1"}, m.rowKeys[domain.LevelAccounts])
	assert.Equal(t, 1, m.tables[domain.LevelAccounts].Cursor())
	assert.Contains(t, m.View(), "▼")
}

func TestModel_ReselectingAccountHidesCampaigns(t *testing.T) {
	m := newModel(t, nil)

	press(m, enter, enter)
	require.NotNil(t, m.view.Campaigns)

	press(m, tab, enter)
	assert.Nil(t, m.view.Campaigns)
	assert.NotContains(t, m.tables, domain.LevelCampaigns)
	assert.Equal(t, domain.LevelProfiles, m.Focus())
}

func TestModel_Reload(t *testing.T) {
	t.Run("Sem loader a tecla fica desabilitada", func(t *testing.T) {
		m := newModel(t, nil)

		_, cmd := m.Update(reload)
		assert.Nil(t, cmd)
	})

	t.Run("Aplica o novo snapshot", func(t *testing.T) {
		next := testSnapshot()
		next.Version = 2
		next.Accounts = append(next.Accounts, &domain.Account{AccountID: 3})

		m := newModel(t, func(context.Context) (*domain.Snapshot, error) {
			return next, nil
		})

		_, cmd := m.Update(reload)
		require.NotNil(t, cmd)
		m.Update(cmd())

		require.NoError(t, m.err)
		assert.Equal(t, []string{"1", "2", "3"}, m.rowKeys[domain.LevelAccounts])
		assert.Contains(t, m.View(), "Snapshot v2: 3 contas")
	})

	t.Run("Erro mantém os dados exibidos", func(t *testing.T) {
		m := newModel(t, func(context.Context) (*domain.Snapshot, error) {
			return nil, errors.New("banco indisponível")
		})

		_, cmd := m.Update(reload)
		require.NotNil(t, cmd)
		m.Update(cmd())

		assert.Equal(t, []string{"1", "2"}, m.rowKeys[domain.LevelAccounts])
		assert.Contains(t, m.View(), "Erro: banco indisponível")
	})
}

func TestModel_ReloadUsesProgramContext(t *testing.T) {
	browser, err := browsing.NewBrowser(testSnapshot())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())

	var loaderErr error
	m, err := New(ctx, browser, func(ctx context.Context) (*domain.Snapshot, error) {
		loaderErr = ctx.Err()
		return nil, ctx.Err()
	})
	require.NoError(t, err)

	_, cmd := m.Update(reload)
	require.NotNil(t, cmd)

	// Programa encerrado antes da recarga terminar
	cancel()
	m.Update(cmd())

	assert.ErrorIs(t, loaderErr, context.Canceled)
	assert.ErrorIs(t, m.err, context.Canceled)
	assert.Equal(t, []string{"1", "2"}, m.rowKeys[domain.LevelAccounts])
}

func TestModel_Quit(t *testing.T) {
	m := newModel(t, nil)

	_, cmd := m.Update(quit)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_EmptySnapshot(t *testing.T) {
	browser, err := browsing.NewBrowser(domain.EmptySnapshot())
	require.NoError(t, err)

	m, err := New(context.Background(), browser, nil)
	require.NoError(t, err)

	press(m, enter)
	assert.Error(t, m.err)
	assert.Contains(t, m.View(), "(nenhum registro)")
}
