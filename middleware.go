package traitkit

import "go.uber.org/zap"

// OpMiddleware wraps a default operation implementation before the resolver
// installs it on a record's surface. Middleware executes in FIFO order
// (first registered wraps first, onion model).
//
// Example usage:
//
//	tracing := func(name string, next traitkit.Op) traitkit.Op {
//	    return func(rec traitkit.Carrier, args ...any) (any, error) {
//	        log.Printf("invoking %s...", name)
//	        return next(rec, args...)
//	    }
//	}
type OpMiddleware func(name string, next Op) Op

// LoggingOpMiddleware returns a middleware that logs every invocation of an
// installed default operation at debug level.
func LoggingOpMiddleware(logger *zap.Logger) OpMiddleware {
	return func(name string, next Op) Op {
		return func(rec Carrier, args ...any) (any, error) {
			result, err := next(rec, args...)
			if err != nil {
				logger.Debug("operation failed",
					zap.String("op", name),
					zap.Error(err))
				return result, err
			}
			logger.Debug("operation invoked",
				zap.String("op", name),
				zap.Int("args", len(args)))
			return result, err
		}
	}
}
