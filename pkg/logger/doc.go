// Package logger builds *slog.Logger instances for sessionkit binaries and
// provides attribute helpers so every store logs with the same keys.
//
//	log := logger.New(
//	    logger.WithDevelopment("sessionkit"),
//	    logger.WithContextValue("request_id", requestIDKey),
//	)
//	log.WarnContext(ctx, "transaction rejected",
//	    logger.Component("transaction"),
//	    logger.Cookie("__txn_abc"),
//	    logger.Error(err),
//	)
//
// Config reads LOG_LEVEL and LOG_FORMAT from the environment; NewFromConfig
// turns it into a logger. Libraries default to Discard so they stay silent
// unless the caller passes a logger.
//
// Attribute helpers such as Error and SessionID return an empty slog.Attr for
// zero input, which slog drops, so call sites need no nil checks. Cookie
// values, tokens and secrets are never logged; only cookie names are.
package logger
