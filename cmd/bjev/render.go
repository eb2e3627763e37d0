package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/bjev/internal/chart"
	"github.com/lox/bjev/internal/ev"
	"github.com/lox/bjev/internal/rules"
	"github.com/lox/bjev/internal/shoe"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	bestStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))

	diffStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true)

	winStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	lossStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	// Chart cell colours, matching the usual printed charts.
	actionStyles = map[rules.Action]lipgloss.Style{
		rules.Stand:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		rules.Hit:       lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
		rules.Double:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		rules.Split:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		rules.Surrender: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		rules.Insurance: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	}
)

// renderChart draws the chart as a grid. Cells that differ from compare, when
// given, are underlined.
func renderChart(c chart.Chart, compare *chart.Chart) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("%-4s", "")))
	for _, r := range shoe.Ranks {
		b.WriteString(headerStyle.Render(fmt.Sprintf(" %2s", r)))
	}
	b.WriteString("\n")

	for col := 0; col < chart.PlayerCols; col++ {
		if col == chart.FirstSoft || col == chart.FirstPair {
			b.WriteString("\n")
		}
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-4s", chart.Label(col))))
		for row := 0; row < chart.DealerRows; row++ {
			a := c.Actions[row][col]
			style := actionStyles[a]
			if compare != nil && compare.Actions[row][col] != a {
				style = style.Inherit(diffStyle)
			}
			b.WriteString("  ")
			b.WriteString(style.Render(string(a.Letter())))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderResult lists each action's EV with the chosen one highlighted.
func renderResult(res ev.Result, allowed rules.ActionSet) string {
	var b strings.Builder
	for _, a := range rules.Actions {
		name := fmt.Sprintf("%-10s", a)
		if !allowed.Has(a) {
			b.WriteString(dimStyle.Render(name + "         -"))
			b.WriteString("\n")
			continue
		}
		line := fmt.Sprintf("%s %+10.6f", name, res.EV[a])
		if a == res.Best {
			b.WriteString(bestStyle.Render(line + "  <"))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderNet(net float64) string {
	s := fmt.Sprintf("%+.1f", net)
	switch {
	case net > 0:
		return winStyle.Render(s)
	case net < 0:
		return lossStyle.Render(s)
	default:
		return s
	}
}

func renderPercent(x float64) string {
	s := fmt.Sprintf("%+.4f%%", 100*x)
	if x < 0 {
		return lossStyle.Render(s)
	}
	return winStyle.Render(s)
}
