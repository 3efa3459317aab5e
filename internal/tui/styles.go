package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/fibseq/internal/ui"
)

// Style variables for the dashboard, rebuilt by initTUIStyles.
var (
	panelStyle      lipgloss.Style
	titleStyle      lipgloss.Style
	dimStyle        lipgloss.Style
	algoStyle       lipgloss.Style
	barStyle        lipgloss.Style
	successStyle    lipgloss.Style
	errorStyle      lipgloss.Style
	footerKeyStyle  lipgloss.Style
	statusDoneStyle lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds the styles from the active ui theme. With colors
// disabled every style is plain apart from borders.
func initTUIStyles() {
	plain := lipgloss.NewStyle()
	panelStyle = plain.Border(lipgloss.RoundedBorder()).Padding(0, 1)

	if !ui.ColorsEnabled() {
		titleStyle, dimStyle, algoStyle, barStyle = plain.Bold(true), plain, plain, plain
		successStyle, errorStyle, footerKeyStyle, statusDoneStyle = plain, plain, plain.Bold(true), plain.Bold(true)
		return
	}

	accent := lipgloss.AdaptiveColor{Light: "27", Dark: "39"}
	dim := lipgloss.AdaptiveColor{Light: "240", Dark: "245"}

	panelStyle = panelStyle.BorderForeground(dim)
	titleStyle = plain.Bold(true).Foreground(accent)
	dimStyle = plain.Foreground(dim)
	algoStyle = plain.Foreground(lipgloss.AdaptiveColor{Light: "54", Dark: "141"})
	barStyle = plain.Foreground(accent)
	successStyle = plain.Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "82"})
	errorStyle = plain.Foreground(lipgloss.AdaptiveColor{Light: "124", Dark: "196"})
	footerKeyStyle = plain.Bold(true).Foreground(accent)
	statusDoneStyle = plain.Bold(true).Foreground(accent)
}
