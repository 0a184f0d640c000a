package catalog

const (
	WideWindow   = 5
	NarrowWindow = 3
)

// WidthFor picks the page window width for a terminal of the given columns.
// Unknown width (0) counts as wide.
func WidthFor(columns, narrowBelow int) int {
	if columns > 0 && columns < narrowBelow {
		return NarrowWindow
	}
	return WideWindow
}

// Window returns up to width consecutive page numbers centred on current and
// clamped to [1, total].
func Window(current, total, width int) []int {
	if total < 1 {
		total = 1
	}
	if width < 1 {
		width = 1
	}
	if width > total {
		width = total
	}
	current = clamp(current, 1, total)

	start := current - width/2
	if start < 1 {
		start = 1
	}
	if start+width-1 > total {
		start = total - width + 1
	}

	pages := make([]int, width)
	for i := range pages {
		pages[i] = start + i
	}
	return pages
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
