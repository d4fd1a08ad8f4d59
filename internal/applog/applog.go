// Package applog constructs the zap logger used throughout the viewer.
package applog

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// New builds a production logger unless debug is set, in which case it
// builds a development logger (human-readable, debug-level) instead. Every
// logger carries a random session id field, so log lines from concurrent
// seqview processes pointed at the same data directory can be told apart.
func New(debug bool) (*zap.Logger, error) {
	var log *zap.Logger
	var err error
	if debug {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	return log.With(zap.String("session", uuid.NewString())), nil
}
