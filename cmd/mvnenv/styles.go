// SPDX-License-Identifier: MPL-2.0

package cmd

import "github.com/charmbracelet/lipgloss"

// Color palette shared by all CLI output. Tuned for dark terminal backgrounds.
const (
	// ColorPrimary is purple, used for titles and headers.
	ColorPrimary = lipgloss.Color("#7C3AED")

	// ColorMuted is gray, used for secondary text.
	ColorMuted = lipgloss.Color("#6B7280")

	// ColorSuccess is green.
	ColorSuccess = lipgloss.Color("#10B981")

	// ColorError is red.
	ColorError = lipgloss.Color("#EF4444")

	// ColorWarning is amber.
	ColorWarning = lipgloss.Color("#F59E0B")

	// ColorHighlight is blue, used for keys, ids and commands.
	ColorHighlight = lipgloss.Color("#3B82F6")

	// ColorVerbose is light gray, used for supplementary details.
	ColorVerbose = lipgloss.Color("#9CA3AF")
)

var (
	// TitleStyle is for primary headers and section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// SubtitleStyle is for secondary headers and descriptions.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// SuccessStyle is for success messages and values.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// ErrorStyle is for error messages.
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	// WarningStyle is for warnings.
	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// CmdStyle is for repository ids, keys and commands.
	CmdStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight)

	// VerboseStyle is for supplementary information.
	VerboseStyle = lipgloss.NewStyle().
			Foreground(ColorVerbose)
)
