package colorconfig

import "sort"

var basicRGB = map[[3]int]int{
	{0, 0, 0}:       0,
	{128, 0, 0}:     1,
	{0, 120, 0}:     2,
	{128, 128, 0}:   3,
	{0, 0, 128}:     4,
	{128, 0, 128}:   5,
	{0, 128, 128}:   6,
	{192, 192, 192}: 7,
	{128, 128, 128}: 8,
}

var cubeSteps = []int{0, 95, 135, 175, 215, 255}

// indexClosest returns the index into a sorted slice whose value is
// nearest to val, per the standard binary-search-then-compare-neighbors
// approach (Python's bisect.bisect_left plus a neighbor check).
func indexClosest(xs []int, val int) int {
	pos := sort.SearchInts(xs, val)
	if pos == 0 || pos == len(xs) {
		if pos == len(xs) {
			return pos - 1
		}
		return pos
	}
	before, after := xs[pos-1], xs[pos]
	if after-val < val-before {
		return pos
	}
	return pos - 1
}

// ConvertColor maps a 24-bit RGB triple to the nearest xterm 256-color
// index: the 16 standard ANSI colors (by exact match for the handful
// conventionally reused), the 24-step grayscale ramp, or the 6x6x6 cube.
func ConvertColor(r, g, b int) int {
	if idx, ok := basicRGB[[3]int{r, g, b}]; ok {
		return idx
	}
	if r == g && g == b && r < 243 {
		v := (r - 3) / 10
		if v < 0 {
			v = 0
		}
		return v + 232
	}
	ri := indexClosest(cubeSteps, r)
	gi := indexClosest(cubeSteps, g)
	bi := indexClosest(cubeSteps, b)
	return ri*36 + gi*6 + bi + 16
}
