package tui

import (
	"hdxpiano/internal/piano"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Model is the bubbletea front-end of a piano. The piano is only touched
// from Update, which bubbletea runs on one goroutine.
type Model struct {
	piano *piano.Piano
	keys  keyMap
	help  help.Model
}

func New(p *piano.Piano) Model {
	return Model{piano: p, keys: defaultKeyMap(), help: help.New()}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}

		runes := msg.Runes
		if msg.Type == tea.KeySpace {
			runes = []rune{' '}
		}
		// triggers win over the control keys, so a key map may bind '-'
		if len(runes) == 1 && m.piano.Type(runes[0]) {
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.VolumeUp):
			m.piano.VolumeUp()
		case key.Matches(msg, m.keys.VolumeDown):
			m.piano.VolumeDown()
		case key.Matches(msg, m.keys.Toggle):
			m.piano.Toggle()
		case msg.Paste:
			for _, r := range runes {
				m.piano.Type(r)
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	return Render(ViewOf(m.piano)) + "\n" + m.help.View(m.keys)
}
