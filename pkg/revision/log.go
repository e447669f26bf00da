package revision

import (
	"github.com/oneconcern/gpmodel/pkg/dlogger"
	"go.uber.org/zap"
)

var logger = defaultLogger()

func defaultLogger() *zap.Logger {
	return dlogger.MustGetLogger(dlogger.LogLevelNone)
}

// SetLogger sets the logger used by this package. A nil logger restores the default, which does not log.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = defaultLogger()
	}
	logger = l
}

// Invariant logs a broken invariant of an object graph and returns the error to panic with.
//
// Broken invariants are never recovered: the graph is corrupted.
//
// Sample usage:
//
//	panic(revision.Invariant(status.ErrChildNotFound, zap.Stringer("kind", kind)))
func Invariant(err error, fields ...zap.Field) error {
	logger.Error("revision: broken invariant", append(fields, zap.Error(err))...)
	return err
}
