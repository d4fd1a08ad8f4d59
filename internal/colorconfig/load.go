package colorconfig

import (
	"regexp"
	"strconv"

	"go.uber.org/zap"
	"gopkg.in/ini.v1"
)

var (
	reDecimal = regexp.MustCompile(`^\d+$`)
	reHex     = regexp.MustCompile(`^#([0-9a-fA-F]{2})([0-9a-fA-F]{2})([0-9a-fA-F]{2})$`)
	reRGB     = regexp.MustCompile(`^[rR][gG][bB]\((\d+),\s*(\d+),\s*(\d+)\)$`)
)

// resolveColor parses one config.ini value into a 256-color index: a plain
// decimal 0-255, a "#RRGGBB" hex triple, or an "rgb(r,g,b)" call. An
// unrecognized or missing value leaves the existing color untouched, so a
// malformed config.ini degrades to defaults rather than failing to start.
func resolveColor(raw string) (int, bool) {
	if raw == "" {
		return 0, false
	}
	if reDecimal.MatchString(raw) {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 && v < 256 {
			return v, true
		}
		return 0, false
	}
	if m := reHex.FindStringSubmatch(raw); m != nil {
		r, _ := strconv.ParseInt(m[1], 16, 32)
		g, _ := strconv.ParseInt(m[2], 16, 32)
		b, _ := strconv.ParseInt(m[3], 16, 32)
		return ConvertColor(int(r), int(g), int(b)), true
	}
	if m := reRGB.FindStringSubmatch(raw); m != nil {
		r, _ := strconv.Atoi(m[1])
		g, _ := strconv.Atoi(m[2])
		b, _ := strconv.Atoi(m[3])
		return ConvertColor(r, g, b), true
	}
	return 0, false
}

// Load reads config.ini at path and overlays it on the defaults. A missing
// or unparsable file is not an error: Load logs a warning and returns the
// defaults untouched, per the "config errors fall back to defaults" policy.
func Load(path string, log *zap.Logger) *Palette {
	p := DefaultPalette()

	f, err := ini.Load(path)
	if err != nil {
		log.Warn("colorconfig: falling back to defaults", zap.String("path", path), zap.Error(err))
		return p
	}

	if sec, err := f.GetSection("Nucleobase Colors"); err == nil {
		apply := func(idx int, key string) {
			if v, ok := resolveColor(sec.Key(key).String()); ok {
				p.NucleotideFG[idx] = v
			}
		}
		apply(0, "A")
		apply(1, "C")
		apply(2, "G")
		apply(3, "T")
		apply(4, "?")
	}

	if sec, err := f.GetSection("Region Colors"); err == nil {
		apply := func(pair int, key string) {
			if v, ok := resolveColor(sec.Key(key).String()); ok {
				p.RegionBG[pair] = v
			}
		}
		apply(PairExonPseudo, "pseudogene exon")
		apply(PairUTRGene, "gene UTR")
		apply(PairCDS, "CDS")
		apply(PairCDS2, "CDS 2")
		apply(PairIntron, "intron")
		apply(PairTRNA, "tRNA")
		apply(PairRRNA, "rRNA")
		apply(PairMiRNA, "miRNA")
	}

	if sec, err := f.GetSection("Other Colors"); err == nil {
		if v, ok := resolveColor(sec.Key("highlight").String()); ok {
			p.Highlight = v
		}
	}

	return p
}
