// ABOUTME: Fixes the lipgloss background to dark before BubbleTea's init() can query the terminal
// ABOUTME: Import with _ ahead of any package that imports bubbletea

package termfix

import "github.com/charmbracelet/lipgloss"

func init() {
	// With an explicit background, lipgloss skips the OSC 11 query whose
	// reply would otherwise arrive on stdin as keystrokes. Must not import
	// bubbletea so this init runs first.
	lipgloss.SetHasDarkBackground(true)
}
