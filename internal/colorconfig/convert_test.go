package colorconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/inodb/seqview/internal/colorconfig"
)

func TestConvertColorBasic(t *testing.T) {
	require.Equal(t, 0, colorconfig.ConvertColor(0, 0, 0))
	require.Equal(t, 7, colorconfig.ConvertColor(192, 192, 192))
}

func TestConvertColorGrayscale(t *testing.T) {
	// r==g==b, not an exact basic match, below the cube cutoff of 243.
	got := colorconfig.ConvertColor(50, 50, 50)
	require.GreaterOrEqual(t, got, 232)
	require.LessOrEqual(t, got, 255)
}

func TestConvertColorCube(t *testing.T) {
	// Pure red at full intensity lands in the 6x6x6 cube, top corner.
	got := colorconfig.ConvertColor(255, 0, 0)
	require.Equal(t, 5*36+0*6+0+16, got)
}

func TestLoadFallsBackOnMissingFile(t *testing.T) {
	log := zap.NewNop()
	p := colorconfig.Load(filepath.Join(t.TempDir(), "nope.ini"), log)
	require.Equal(t, colorconfig.DefaultPalette(), p)
}

func TestLoadParsesSections(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.ini")
	contents := `[Nucleobase Colors]
A = #ff0000
C = rgb(0,255,0)
G = 21
T = 255

[Region Colors]
CDS = 63
intron = #000000

[Other Colors]
highlight = 11
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	log := zap.NewNop()
	p := colorconfig.Load(path, log)
	require.Equal(t, colorconfig.ConvertColor(255, 0, 0), p.NucleotideFG[0])
	require.Equal(t, colorconfig.ConvertColor(0, 255, 0), p.NucleotideFG[1])
	require.Equal(t, 21, p.NucleotideFG[2])
	require.Equal(t, 255, p.NucleotideFG[3])
	require.Equal(t, 63, p.RegionBG[colorconfig.PairCDS])
	require.Equal(t, colorconfig.ConvertColor(0, 0, 0), p.RegionBG[colorconfig.PairIntron])
	require.Equal(t, 11, p.Highlight)
}
