// Package app bundles session state that the reference program kept in
// module-level globals (pause flag, highlight selection, logger, reader
// cache), plus the color palette, into one explicit value that main
// assembles; the view and term layers receive the fields they need from it.
// Screen size is not held here: the view reads it from its Screen.
package app

import (
	"go.uber.org/zap"

	"github.com/inodb/seqview/internal/colorconfig"
	"github.com/inodb/seqview/internal/highlight"
	"github.com/inodb/seqview/internal/readercache"
)

// App is the session-wide context for one running viewer.
type App struct {
	Log        *zap.Logger
	Cache      *readercache.Cache
	Palette    *colorconfig.Palette
	Highlights highlight.Set
	Paused     bool
}

// New assembles an App from its components.
func New(log *zap.Logger, cache *readercache.Cache, palette *colorconfig.Palette, hls highlight.Set, paused bool) *App {
	return &App{Log: log, Cache: cache, Palette: palette, Highlights: hls, Paused: paused}
}
