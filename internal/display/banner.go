package display

import (
	_ "embed"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

//go:embed banner.txt
var bannerArt string

const tagline = "your recipes, a timer and a chef who knows a few things"

// RenderBanner returns the startup art with the tagline underneath, both
// centred for the current terminal.
func RenderBanner() string {
	return renderBanner(termWidth())
}

func renderBanner(width int) string {
	art := strings.TrimRight(bannerArt, "\n")
	if art == "" {
		return ""
	}
	block := lipgloss.JoinVertical(lipgloss.Center,
		BannerStyle.Render(art),
		"",
		secondaryStyle.Render(tagline),
	)
	if lipgloss.Width(block) >= width {
		return block + "\n"
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block) + "\n"
}

// termWidth returns the terminal column count, or 80 when stdout isn't a
// terminal.
func termWidth() int {
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		return w
	}
	return 80
}
