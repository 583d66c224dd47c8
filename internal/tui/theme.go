package tui

import "github.com/charmbracelet/lipgloss"

// ---------------------------------------------------------------------------
// Catppuccin Mocha palette, true-color hex values
// https://catppuccin.com/palette
// ---------------------------------------------------------------------------

const (
	colorMauve    lipgloss.Color = "#cba6f7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
	colorBase     lipgloss.Color = "#1e1e2e"
)

// ---------------------------------------------------------------------------
// Semantic color aliases
// ---------------------------------------------------------------------------

const (
	colorBrand   = colorMauve
	colorFocus   = colorLavender
	colorSuccess = colorGreen
	colorError   = colorRed
	colorWarning = colorYellow
	colorInfo    = colorTeal
	colorAccent  = colorPeach
	colorPath    = colorBlue
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorBrand)
	labelStyle    = lipgloss.NewStyle().Foreground(colorSubtext0)
	valueStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	dimStyle      = lipgloss.NewStyle().Foreground(colorOverlay0)
	errorStyle    = lipgloss.NewStyle().Foreground(colorError)
	hintStyle     = lipgloss.NewStyle().Foreground(colorWarning)
	liveStyle     = lipgloss.NewStyle().Foreground(colorSuccess)
	offlineStyle  = lipgloss.NewStyle().Foreground(colorError)
	pendingStyle  = lipgloss.NewStyle().Foreground(colorInfo)
	stopStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorPath)
	arrowStyle    = lipgloss.NewStyle().Foreground(colorAccent)
	footerStyle   = lipgloss.NewStyle().Foreground(colorSubtext0).Background(colorSurface0).Padding(0, 1)
	panelStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorSurface1).Padding(0, 1)
	buttonStyle   = lipgloss.NewStyle().Foreground(colorBase).Background(colorBrand).Bold(true).Padding(0, 2)
	busyStyle     = lipgloss.NewStyle().Foreground(colorSubtext0).Background(colorSurface1).Padding(0, 2)
	focusedPrompt = lipgloss.NewStyle().Foreground(colorFocus)
	blurredPrompt = lipgloss.NewStyle().Foreground(colorOverlay0)
)
