package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderStreakBar draws the current streak against the longest one, like
// [████░░░░] 4/8. The bar is green once the current streak is the record.
func RenderStreakBar(current, longest, width int) string {
	if width < 2 {
		width = 2
	}
	if longest < current {
		longest = current
	}

	filled := 0
	if longest > 0 {
		filled = current * width / longest
	}
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleYellow
	switch {
	case current == 0:
		style = StyleDim
	case current == longest:
		style = StyleGreen
	}
	return fmt.Sprintf("[%s] %d/%d", style.Render(bar), current, longest)
}
