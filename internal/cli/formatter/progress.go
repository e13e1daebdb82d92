package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderUtilization renders a load bar like [████░░░░] 45%. Load is bad news
// past a point, so the bar turns yellow from 70% and red from 100%. Values
// over 100% fill the bar and keep their real percentage.
func RenderUtilization(pct int, width int) string {
	if width < 2 {
		width = 2
	}
	clamped := min(max(pct, 0), 100)
	filled := clamped * width / 100
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	switch {
	case pct >= 100:
		style = StyleRed
	case pct >= 70:
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %3d%%", style.Render(bar), pct)
}
