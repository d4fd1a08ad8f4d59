// Command seqview is an interactive terminal viewer of the human reference
// genome: it streams a chromosome's packed sequence and feature-annotation
// metadata to a color-attributed terminal display, auto-scrolling or
// hand-scrolling through it while coloring each base by the biological
// region it falls within.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	xterm "golang.org/x/term"

	"github.com/inodb/seqview/internal/app"
	"github.com/inodb/seqview/internal/applog"
	"github.com/inodb/seqview/internal/colorconfig"
	"github.com/inodb/seqview/internal/config"
	"github.com/inodb/seqview/internal/highlight"
	"github.com/inodb/seqview/internal/position"
	"github.com/inodb/seqview/internal/reader"
	"github.com/inodb/seqview/internal/readercache"
	"github.com/inodb/seqview/internal/term"
	"github.com/inodb/seqview/internal/view"
)

// Exit codes, per the CLI's documented contract.
const (
	exitOK            = 0
	exitMissingData   = 1
	exitConfig        = 2
	exitTerminalSmall = 3
)

// exitError carries a specific process exit code out of cobra's RunE.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

var reStartSpec = regexp.MustCompile(`^([1-9]|1[0-9]|2[0-2]|X|Y|mt)(?:\.(-?\d+)(%)?)?$`)
var reHighlight = regexp.MustCompile(`^hl=(.+)$`)

// startSpec is the parsed form of a "CHR[.POS[%]]" CLI argument.
type startSpec struct {
	chromosome string
	pos        int64
	isPercent  bool
	isFromEnd  bool
	explicit   bool // a position was given, as opposed to defaulting to 1
}

// parseStartSpec parses "CHR", "CHR.POS", or "CHR.POS%". ok is false if raw
// doesn't match the grammar at all (the caller then ignores it, per the
// "unrecognized arguments are ignored" CLI policy).
func parseStartSpec(raw string) (startSpec, bool) {
	m := reStartSpec.FindStringSubmatch(raw)
	if m == nil {
		return startSpec{}, false
	}
	s := startSpec{chromosome: m[1], pos: 1}
	if m[2] == "" {
		return s, true
	}
	v, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return startSpec{}, false
	}
	s.pos = v
	s.isPercent = m[3] == "%"
	s.isFromEnd = v < 0
	s.explicit = true
	return s, true
}

// parseHighlightArg parses "hl=NAME[,NAME…]", returning the requested names.
func parseHighlightArg(raw string) ([]string, bool) {
	m := reHighlight.FindStringSubmatch(raw)
	if m == nil {
		return nil, false
	}
	return strings.Split(m[1], ","), true
}

func main() {
	os.Exit(runMain())
}

func runMain() int {
	root := newRootCmd()
	root.AddCommand(newConfigCmd())

	if err := root.Execute(); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			if ee.err != nil {
				fmt.Fprintln(os.Stderr, ee.err)
			}
			return ee.code
		}
		fmt.Fprintln(os.Stderr, err)
		return exitConfig
	}
	return exitOK
}

func newRootCmd() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:   "seqview [CHR[.POS[%]]] [hl=NAME[,NAME…]]",
		Short: "Interactive terminal viewer of the human reference genome",
		Example: `  seqview
  seqview 7.25%
  seqview X.-1000
  seqview 1 hl=cpg,tata`,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(args, debug)
		},
	}
	cmd.Flags().BoolVar(&debug, "debug", false, "enable verbose development logging")
	return cmd
}

func runView(args []string, debug bool) error {
	log, err := applog.New(debug)
	if err != nil {
		return &exitError{exitConfig, fmt.Errorf("seqview: starting logger: %w", err)}
	}
	defer log.Sync() //nolint:errcheck

	var spec startSpec
	var hlNames []string
	for _, a := range args {
		if s, ok := parseStartSpec(a); ok {
			spec = s
			continue
		}
		if names, ok := parseHighlightArg(a); ok {
			hlNames = append(hlNames, names...)
			continue
		}
		// Unrecognized arguments are ignored per the CLI contract.
	}

	sess := config.Load(log)
	if spec.chromosome == "" {
		if s, ok := parseStartSpec(sess.StartChromosome + "." + sess.StartPosition); ok {
			spec = s
			spec.explicit = false // a config default never forces Paused
		} else {
			spec = startSpec{chromosome: "1", pos: 1}
		}
	}
	if len(hlNames) == 0 {
		hlNames = sess.DefaultHighlight
	}

	w, h, err := xterm.GetSize(int(os.Stdout.Fd()))
	if err != nil || w < 20 || h < 10 {
		return &exitError{exitTerminalSmall, fmt.Errorf("seqview: terminal too small (need at least 20x10, have %dx%d)", w, h)}
	}

	opts := reader.OpenOptions{PosIsPercent: spec.isPercent, FromEnd: spec.isFromEnd}
	r, err := reader.Open(sess.DataDir, spec.chromosome, spec.pos, opts)
	if err != nil {
		if os.IsNotExist(err) {
			return &exitError{exitMissingData, fmt.Errorf("seqview: missing sequence data for chromosome %s in %s", spec.chromosome, sess.DataDir)}
		}
		return &exitError{exitMissingData, fmt.Errorf("seqview: opening chromosome %s: %w", spec.chromosome, err)}
	}

	dataDir := sess.DataDir
	loader := readercache.LoaderFunc(func(ch string) (*reader.Reader, error) {
		return reader.Open(dataDir, ch, 1, reader.OpenOptions{})
	})
	cache := readercache.New(loader, log, 3)
	cache.Put(spec.chromosome, r)
	defer cache.Close() //nolint:errcheck

	palette := colorconfig.Load(filepath.Join(dataDir, "config.ini"), log)
	hls := highlight.NewSet(hlNames)

	a := app.New(log, cache, palette, hls, spec.explicit)

	backend, err := term.NewBackend(palette)
	if err != nil {
		return &exitError{exitConfig, fmt.Errorf("seqview: initializing terminal: %w", err)}
	}
	defer backend.Close()

	top := position.New(r)
	v := view.New(backend, cache, a.Highlights, top)

	scrw, scrh := backend.Size()
	if scrw < 19 || scrh < 9 {
		return &exitError{exitTerminalSmall, fmt.Errorf("seqview: terminal too small once the status line is reserved")}
	}
	if err := v.Fill(0, 0, scrh); err != nil {
		return &exitError{exitConfig, fmt.Errorf("seqview: initial render: %w", err)}
	}
	if err := backend.Flush(); err != nil {
		return &exitError{exitConfig, fmt.Errorf("seqview: initial flush: %w", err)}
	}

	reloadCh := make(chan highlight.Set, 1)
	watcher, err := config.Watch(log, func(s *config.Session) {
		hls := highlight.NewSet(s.DefaultHighlight)
		for {
			select {
			case reloadCh <- hls:
				return
			default:
				// A reload is already pending: discard it so the latest
				// config is the one applied.
				select {
				case <-reloadCh:
				default:
				}
			}
		}
	})
	if err != nil {
		log.Warn("seqview: could not watch config file for highlight changes", zap.Error(err))
	} else {
		defer watcher.Close() //nolint:errcheck
	}

	if err := term.Run(backend, v, a.Log, a.Paused, reloadCh); err != nil {
		return &exitError{exitConfig, fmt.Errorf("seqview: %w", err)}
	}
	return nil
}
