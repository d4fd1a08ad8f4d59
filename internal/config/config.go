// Package config loads the viewer's session defaults from ~/.seqview.yaml
// (data directory, starting chromosome/position, default highlights) and
// watches it for edits so a running session picks up changed highlight
// preferences without a restart.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Session holds the subset of ~/.seqview.yaml the viewer reads at startup.
type Session struct {
	DataDir          string
	StartChromosome  string
	StartPosition    string
	DefaultHighlight []string
}

// Load reads ~/.seqview.yaml if present, falling back to defaults for any
// unset key. A missing or unparsable file is not an error.
func Load(log *zap.Logger) *Session {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Warn("config: cannot determine home directory", zap.Error(err))
		home = "."
	}

	viper.SetConfigName(".seqview")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(home)

	viper.SetDefault("data-dir", ".")
	viper.SetDefault("start.chromosome", "1")
	viper.SetDefault("start.position", "1")
	viper.SetDefault("highlights", []string{})

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn("config: falling back to defaults", zap.String("path", filepath.Join(home, ".seqview.yaml")), zap.Error(err))
		}
	}

	return sessionFromViper()
}

func sessionFromViper() *Session {
	var hl []string
	switch v := viper.Get("highlights").(type) {
	case []string:
		hl = v
	case string:
		if v != "" {
			hl = strings.Split(v, ",")
		}
	case []interface{}:
		for _, e := range v {
			if s, ok := e.(string); ok {
				hl = append(hl, s)
			}
		}
	}
	return &Session{
		DataDir:          viper.GetString("data-dir"),
		StartChromosome:  viper.GetString("start.chromosome"),
		StartPosition:    viper.GetString("start.position"),
		DefaultHighlight: hl,
	}
}

// Watch starts watching the config file for edits, invoking onChange with
// the reloaded Session whenever it's written. The returned watcher must be
// closed by the caller when the session ends.
func Watch(log *zap.Logger, onChange func(*Session)) (*fsnotify.Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	cfgFile := viper.ConfigFileUsed()
	if cfgFile == "" {
		return w, nil
	}
	if err := w.Add(filepath.Dir(cfgFile)); err != nil {
		w.Close()
		return nil, err
	}

	go func() {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Name == cfgFile && (ev.Op&(fsnotify.Write|fsnotify.Create) != 0) {
					if err := viper.ReadInConfig(); err != nil {
						log.Warn("config: reload failed", zap.Error(err))
						continue
					}
					onChange(sessionFromViper())
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Warn("config: watch error", zap.Error(err))
			}
		}
	}()

	return w, nil
}
