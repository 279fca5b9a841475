// Package logger builds the service's zap loggers.
//
// Level and format come from the log config section. The json format is meant
// for deployments and console for local runs and the CLI.
//
// Request handlers derive their logger with WithRayID so every entry of a
// request carries the same ray_id as the X-Ray-ID response header:
//
//	logg, _ := logger.New(&cfg.Log)
//	l := logger.WithRayID(logg, c).With(zap.String("wallet_id", id))
//	l.Warn("Wallet connect failed", zap.Error(err))
package logger
