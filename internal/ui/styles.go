// Package ui renders scan progress and results to the terminal.
package ui

import "github.com/charmbracelet/lipgloss"

var (
	cyan    = lipgloss.Color("#00FFFF")
	green   = lipgloss.Color("#00FF00")
	red     = lipgloss.Color("#FF0000")
	yellow  = lipgloss.Color("#FFFF00")
	magenta = lipgloss.Color("#FF00FF")
	grey    = lipgloss.Color("#888888")

	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(magenta).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(cyan).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(grey)

	errStyle = lipgloss.NewStyle().
			Foreground(red)

	summaryPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.DoubleBorder()).
				BorderForeground(green).
				Padding(1, 2)

	statusOK        = lipgloss.NewStyle().Foreground(green).Bold(true)
	statusRedirect  = lipgloss.NewStyle().Foreground(yellow).Bold(true)
	statusClientErr = lipgloss.NewStyle().Foreground(red).Bold(true)
	statusServerErr = lipgloss.NewStyle().Foreground(magenta).Bold(true)
)

// statusStyle picks a colour for an HTTP status code class.
func statusStyle(code int) lipgloss.Style {
	switch {
	case code >= 200 && code < 300:
		return statusOK
	case code >= 300 && code < 400:
		return statusRedirect
	case code >= 400 && code < 500:
		return statusClientErr
	default:
		return statusServerErr
	}
}

// Banner returns the styled startup banner.
func Banner() string {
	const banner = `
 _  __          _               ____            _
| |/ /_ __ __ _| | _____ _ __  | __ ) _   _ ___| |_ ___ _ __
| ' /| '__/ _` + "`" + ` | |/ / _ \ '_ \ |  _ \| | | / __| __/ _ \ '__|
| . \| | | (_| |   <  __/ | | || |_) | |_| \__ \ ||  __/ |
|_|\_\_|  \__,_|_|\_\___|_| |_||____/ \__,_|___/\__\___|_|
`
	return bannerStyle.Render(banner)
}
