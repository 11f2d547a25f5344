package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/color-cascade/internal/core"
)

// Styles are built lazily per colour; SSH sessions share the cache.
var (
	stylesMu sync.RWMutex
	styles   = map[core.Color]lipgloss.Style{
		core.ColorDefault: lipgloss.NewStyle(),
	}
)

func styleFor(c core.Color) lipgloss.Style {
	stylesMu.RLock()
	st, ok := styles[c]
	stylesMu.RUnlock()
	if ok {
		return st
	}

	st = lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex()))
	stylesMu.Lock()
	styles[c] = st
	stylesMu.Unlock()
	return st
}

// RenderScreen converts a screen buffer into styled terminal output.
// Runs of cells sharing a colour are emitted under one style.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}

		for x := 0; x < s.Width(); {
			color := s.GetCell(x, y).Color
			run.Reset()
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}
			if color.IsDefault() {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(styleFor(color).Render(run.String()))
		}
	}
	return sb.String()
}
