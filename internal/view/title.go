package view

import "github.com/inodb/seqview/internal/colorconfig"

// glyphHeight is the number of banner rows the block-letter font occupies;
// the title banner reserves 3 additional blank rows (two above, one below)
// for a total 10-row band, matching the reference program's layout.
const glyphHeight = 7

// glyphs is a compact block-letter font covering the characters that can
// appear in a chromosome name ("1".."22", "X", "Y", "mt"). Each entry is
// glyphHeight rows of equal width.
var glyphs = map[byte][glyphHeight]string{
	'0': {"#####", "#   #", "#   #", "#   #", "#   #", "#   #", "#####"},
	'1': {"  #  ", " ##  ", "  #  ", "  #  ", "  #  ", "  #  ", " ### "},
	'2': {"#####", "    #", "    #", "#####", "#    ", "#    ", "#####"},
	'3': {"#####", "    #", "    #", " ####", "    #", "    #", "#####"},
	'4': {"#   #", "#   #", "#   #", "#####", "    #", "    #", "    #"},
	'5': {"#####", "#    ", "#    ", "#####", "    #", "    #", "#####"},
	'6': {"#####", "#    ", "#    ", "#####", "#   #", "#   #", "#####"},
	'7': {"#####", "    #", "   # ", "  #  ", " #   ", " #   ", " #   "},
	'8': {"#####", "#   #", "#   #", "#####", "#   #", "#   #", "#####"},
	'9': {"#####", "#   #", "#   #", "#####", "    #", "    #", "#####"},
	'X': {"#   #", "#   #", " # # ", "  #  ", " # # ", "#   #", "#   #"},
	'Y': {"#   #", "#   #", " # # ", "  #  ", "  #  ", "  #  ", "  #  "},
	'm': {"     ", "     ", "## # ", "# # #", "# # #", "# # #", "     "},
	't': {" #   ", "#### ", " #   ", " #   ", " #   ", " ##  ", "     "},
}

// printTitleLine draws one row of the chromosome-name banner. line is the
// Position's title cursor, in [-10, -1]; only [-8, -2] carry glyph pixels,
// the remaining rows are blank padding above and below.
func (v *View) printTitleLine(title string, line int) {
	scrw := v.scrw()
	n := glyphHeight + line + 1

	if n < 0 || n >= glyphHeight {
		for v.fillx < scrw-1 {
			v.Screen.SetCell(v.fillx, v.filly, ' ', colorconfig.PairUnknown)
			v.fillx++
		}
		return
	}

	length := 0
	for i := 0; i < len(title); i++ {
		length += len(glyphs[title[i]][0])
	}
	pad := (scrw - length) / 2
	if pad < 0 {
		pad = 0
	}
	for i := 0; i < pad; i++ {
		v.Screen.SetCell(v.fillx, v.filly, ' ', colorconfig.PairUnknown)
		v.fillx++
	}
	for i := 0; i < len(title); i++ {
		row := glyphs[title[i]][n]
		for _, c := range row {
			v.Screen.SetCell(v.fillx, v.filly, c, colorconfig.PairUnknown)
			v.fillx++
		}
	}
	for v.fillx < scrw-1 {
		v.Screen.SetCell(v.fillx, v.filly, ' ', colorconfig.PairUnknown)
		v.fillx++
	}
}
