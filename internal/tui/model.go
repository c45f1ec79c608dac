// Package tui é o navegador de terminal: uma tabela por nível visível,
// empilhadas, mais o painel de detalhes da campanha selecionada
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vfg2006/traffic-manager-browser/internal/domain"
	"github.com/vfg2006/traffic-manager-browser/internal/usecases/browsing"
	"github.com/vfg2006/traffic-manager-browser/pkg/log"
)

const (
	tableHeight    = 8
	maxColumnWidth = 40
)

// Loader recarrega o snapshot sob demanda (tecla r)
type Loader func(ctx context.Context) (*domain.Snapshot, error)

type snapshotMsg struct {
	snapshot *domain.Snapshot
	err      error
}

type Model struct {
	browser *browsing.Browser
	view    *browsing.View
	tables  map[domain.Level]*table.Model
	rowKeys map[domain.Level][]string
	focus   domain.Level
	loader  Loader
	ctx     context.Context

	keys   keyMap
	help   help.Model
	styles styles
	status string
	err    error
}

// New monta o modelo. O contexto é repassado ao loader nas recargas.
func New(ctx context.Context, browser *browsing.Browser, loader Loader) (*Model, error) {
	m := &Model{
		browser: browser,
		tables:  make(map[domain.Level]*table.Model),
		rowKeys: make(map[domain.Level][]string),
		focus:   domain.LevelAccounts,
		loader:  loader,
		ctx:     ctx,
		keys:    defaultKeyMap(),
		help:    help.New(),
		styles:  defaultStyles(),
	}
	m.keys.Reload.SetEnabled(loader != nil)

	if err := m.refresh(); err != nil {
		return nil, err
	}

	return m, nil
}

// Run abre o navegador em tela cheia até o usuário sair
func Run(ctx context.Context, browser *browsing.Browser, loader Loader) error {
	m, err := New(ctx, browser, loader)
	if err != nil {
		return err
	}

	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case snapshotMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = m.browser.Refresh(msg.snapshot)
		if m.err == nil {
			counts := msg.snapshot.Counts()
			m.status = fmt.Sprintf("Snapshot v%d: %d contas, %d perfis, %d campanhas",
				msg.snapshot.Version, counts["accounts"], counts["profiles"], counts["campaigns"])
			m.err = m.refresh()
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.moveFocus(1)
		case key.Matches(msg, m.keys.Prev):
			m.moveFocus(-1)
		case key.Matches(msg, m.keys.Select):
			m.selectRow()
		case key.Matches(msg, m.keys.Sort):
			m.toggleSort()
		case key.Matches(msg, m.keys.Reload):
			m.status = "Recarregando snapshot..."
			return m, m.reload()
		default:
			if t := m.tables[m.focus]; t != nil {
				var cmd tea.Cmd
				*t, cmd = t.Update(msg)
				return m, cmd
			}
		}
	}

	return m, nil
}

func (m *Model) View() string {
	sections := []string{m.styles.title.Render("Traffic Manager Browser")}

	for _, level := range m.visibleLevels() {
		tv := m.tableView(level)

		body := []string{m.styles.title.Render(tv.Title), m.tables[level].View()}
		if len(tv.Rows) == 0 {
			body = append(body, m.styles.status.Render("(nenhum registro)"))
		}

		panel := m.styles.panel
		if level == m.focus {
			panel = m.styles.panelFocused
		}
		sections = append(sections, panel.Render(lipgloss.JoinVertical(lipgloss.Left, body...)))
	}

	if m.view.SelectedCampaign != nil {
		sections = append(sections, m.styles.detail.Render(m.view.SelectedCampaign.Summary))
	}

	switch {
	case m.err != nil:
		sections = append(sections, m.styles.err.Render("Erro: "+m.err.Error()))
	case m.status != "":
		sections = append(sections, m.styles.status.Render(m.status))
	}

	sections = append(sections, m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// Focus retorna o nível com foco
func (m *Model) Focus() domain.Level {
	return m.focus
}

func (m *Model) selectRow() {
	t := m.tables[m.focus]
	if t == nil {
		return
	}

	level := m.focus
	if err := m.browser.ClickAt(level, t.Cursor()); err != nil {
		m.err = err
		return
	}

	m.err = m.refresh()
	m.status = ""

	// Desce para o nível seguinte quando ele passa a ser exibido
	levels := m.visibleLevels()
	for i, visible := range levels {
		if visible == level && i+1 < len(levels) {
			m.setFocus(levels[i+1])
		}
	}
}

func (m *Model) toggleSort() {
	if err := m.browser.ToggleSort(m.focus); err != nil {
		m.err = err
		return
	}
	m.err = m.refresh()
}

func (m *Model) reload() tea.Cmd {
	ctx, loader := m.ctx, m.loader
	return func() tea.Msg {
		snapshot, err := loader(ctx)
		return snapshotMsg{snapshot: snapshot, err: err}
	}
}

func (m *Model) moveFocus(delta int) {
	levels := m.visibleLevels()
	for i, level := range levels {
		if level == m.focus {
			next := (i + delta + len(levels)) % len(levels)
			m.setFocus(levels[next])
			return
		}
	}
}

func (m *Model) setFocus(level domain.Level) {
	m.focus = level
	for l, t := range m.tables {
		if l == level {
			t.Focus()
		} else {
			t.Blur()
		}
	}
}

func (m *Model) visibleLevels() []domain.Level {
	levels := []domain.Level{domain.LevelAccounts}
	if m.view.Profiles != nil {
		levels = append(levels, domain.LevelProfiles)
	}
	if m.view.Campaigns != nil {
		levels = append(levels, domain.LevelCampaigns)
	}
	return levels
}

func (m *Model) tableView(level domain.Level) *browsing.TableView {
	switch level {
	case domain.LevelProfiles:
		return m.view.Profiles
	case domain.LevelCampaigns:
		return m.view.Campaigns
	default:
		return &m.view.Accounts
	}
}

// refresh renderiza o navegador e sincroniza as tabelas do terminal
func (m *Model) refresh() error {
	view, err := m.browser.Render()
	if err != nil {
		log.L.WithError(err).Error("Erro ao renderizar navegador")
		return err
	}
	m.view = view

	visible := make(map[domain.Level]struct{})
	for _, level := range m.visibleLevels() {
		visible[level] = struct{}{}
		m.syncTable(level, m.tableView(level))
	}

	for level := range m.tables {
		if _, ok := visible[level]; !ok {
			delete(m.tables, level)
			delete(m.rowKeys, level)
		}
	}

	if _, ok := visible[m.focus]; !ok {
		levels := m.visibleLevels()
		m.focus = levels[len(levels)-1]
	}
	m.setFocus(m.focus)

	return nil
}

func (m *Model) syncTable(level domain.Level, tv *browsing.TableView) {
	t, exists := m.tables[level]
	if !exists {
		created := table.New(table.WithHeight(tableHeight))
		created.SetStyles(tableStyles())
		t = &created
		m.tables[level] = t
	}

	// A linha sob o cursor continua sob o cursor depois de reordenar
	var cursorKey string
	if previous := m.rowKeys[level]; t.Cursor() >= 0 && t.Cursor() < len(previous) {
		cursorKey = previous[t.Cursor()]
	} else {
		cursorKey = tv.Selected
	}

	rows := make([]table.Row, 0, len(tv.Rows))
	keys := make([]string, 0, len(tv.Rows))
	cursor := 0
	for i, row := range tv.Rows {
		rows = append(rows, table.Row(row.Cells))
		keys = append(keys, row.Key)
		if row.Key == cursorKey {
			cursor = i
		}
	}

	t.SetColumns(columns(tv))
	t.SetRows(rows)
	t.SetCursor(cursor)
	m.rowKeys[level] = keys
}

func columns(tv *browsing.TableView) []table.Column {
	cols := make([]table.Column, 0, len(tv.Headers))
	for i, header := range tv.Headers {
		title := header.Label
		if header.Sortable {
			title += " " + header.Symbol
		}

		width := lipgloss.Width(title)
		for _, row := range tv.Rows {
			if i < len(row.Cells) {
				width = max(width, lipgloss.Width(row.Cells[i]))
			}
		}

		cols = append(cols, table.Column{Title: title, Width: min(width, maxColumnWidth)})
	}
	return cols
}
