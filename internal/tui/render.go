// Package tui draws the piano in a terminal with bubbletea and lipgloss.
package tui

import (
	"fmt"
	"strings"

	"hdxpiano/internal/keys"
	"hdxpiano/internal/piano"
	"hdxpiano/pkg/format"

	"github.com/charmbracelet/lipgloss"
)

const (
	cellWidth  = 6
	labelWidth = 4
	barWidth   = 10
	ruleWidth  = 43
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	ruleStyle  = lipgloss.NewStyle().Faint(true)
	whiteStyle = lipgloss.NewStyle().Width(labelWidth)
	blackStyle = lipgloss.NewStyle().Width(3)
	focusStyle = lipgloss.NewStyle().Reverse(true).Bold(true)
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// View is everything a frame needs; it holds no piano reference so tests can
// draw arbitrary states.
type View struct {
	Keys    []keys.Definition
	Focused string
	Checked bool
	Percent int
}

func ViewOf(p *piano.Piano) View {
	st := p.Status()
	return View{Keys: p.Keys(), Focused: st.Focused, Checked: st.Checked, Percent: st.Percent}
}

// column groups a white key with the black keys that follow it.
type column struct {
	white  *keys.Definition
	blacks []keys.Definition
}

func layout(defs []keys.Definition) []column {
	// leading black keys get an empty white slot
	cols := []column{{}}
	for i := range defs {
		d := defs[i]
		if d.Variant == keys.White {
			cols = append(cols, column{white: &defs[i]})
			continue
		}
		last := &cols[len(cols)-1]
		last.blacks = append(last.blacks, d)
	}
	if len(cols[0].blacks) == 0 {
		cols = cols[1:]
	}
	return cols
}

func (v View) style(base lipgloss.Style, id string) lipgloss.Style {
	if id == v.Focused {
		return base.Inherit(focusStyle)
	}
	return base
}

func (v View) blackRow(cols []column, label func(keys.Definition) string) string {
	var sb strings.Builder
	for _, c := range cols {
		if len(c.blacks) == 0 {
			sb.WriteString(strings.Repeat(" ", cellWidth))
			continue
		}
		sb.WriteString("   ")
		for _, b := range c.blacks {
			sb.WriteString(v.style(blackStyle, b.ID).Render(label(b)))
		}
	}
	return strings.TrimRight(sb.String(), " ")
}

func (v View) whiteRow(cols []column, open, close string, label func(keys.Definition) string) string {
	var sb strings.Builder
	for _, c := range cols {
		if c.white == nil {
			sb.WriteString(strings.Repeat(" ", cellWidth))
			continue
		}
		sb.WriteString(open + v.style(whiteStyle, c.white.ID).Render(label(*c.white)) + close)
	}
	return strings.TrimRight(sb.String(), " ")
}

// markerRow puts a caret under the focused key, so focus survives terminals
// without reverse video.
func (v View) markerRow(cols []column) string {
	var sb strings.Builder
	for _, c := range cols {
		cell := ""
		if c.white != nil && c.white.ID == v.Focused {
			cell = " ^"
		}
		for i, b := range c.blacks {
			if b.ID == v.Focused {
				cell = strings.Repeat(" ", 3+3*i) + "^"
			}
		}
		sb.WriteString(fmt.Sprintf("%-*s", cellWidth, cell))
	}
	return strings.TrimRight(sb.String(), " ")
}

// Render draws one full frame.
func Render(v View) string {
	id := func(d keys.Definition) string { return d.ID }
	trigger := func(d keys.Definition) string { return string(d.Trigger) }

	cols := layout(v.Keys)
	rule := ruleStyle.Render(strings.Repeat("─", ruleWidth))

	lines := []string{
		titleStyle.Render(fmt.Sprintf("HDX PIANO V.%s [%d keys]", format.Version, len(v.Keys))),
		rule,
		v.blackRow(cols, id),
	}
	if v.Checked {
		lines = append(lines, v.blackRow(cols, trigger))
	}
	lines = append(lines, v.whiteRow(cols, "[", "]", id))
	if v.Checked {
		lines = append(lines, v.whiteRow(cols, " ", " ", trigger))
	}
	lines = append(lines,
		v.markerRow(cols),
		rule,
		fmt.Sprintf("Volume [%s] %3d%%", barStyle.Render(VolumeBar(v.Percent)), v.Percent),
	)
	return strings.Join(lines, "\n")
}

// VolumeBar draws percent as a fixed-width bar, one cell per volume step.
func VolumeBar(percent int) string {
	filled := percent * barWidth / 100
	if filled < 0 {
		filled = 0
	}
	if filled > barWidth {
		filled = barWidth
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}
