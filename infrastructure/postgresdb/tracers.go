package postgresdb

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

type queryStartKey struct{}

type queryStart struct {
	at  time.Time
	sql string
}

// LoggingQueryTracer logs every statement at Debug and statements slower
// than slow at Warn. A zero slow disables the warning.
type LoggingQueryTracer struct {
	logger *slog.Logger
	slow   time.Duration
}

func NewLoggingQueryTracer(logger *slog.Logger, slow time.Duration) *LoggingQueryTracer {
	return &LoggingQueryTracer{logger: logger, slow: slow}
}

// compactSQL folds a multi-line statement onto one line.
func compactSQL(sql string) string {
	sql = strings.Join(strings.Fields(sql), " ")
	sql = strings.ReplaceAll(sql, "( ", "(")
	return strings.ReplaceAll(sql, " )", ")")
}

func (l *LoggingQueryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	sql := compactSQL(data.SQL)
	l.logger.DebugContext(ctx, "query start",
		slog.String("sql", sql),
		slog.Int("args", len(data.Args)),
	)
	return context.WithValue(ctx, queryStartKey{}, queryStart{at: time.Now(), sql: sql})
}

func (l *LoggingQueryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	attrs := []any{slog.String("command_tag", data.CommandTag.String())}

	start, ok := ctx.Value(queryStartKey{}).(queryStart)
	var took time.Duration
	if ok {
		took = time.Since(start.at)
		attrs = append(attrs, slog.Duration("took", took))
	}

	switch {
	case data.Err != nil:
		l.logger.ErrorContext(ctx, "query end", append(attrs, slog.String("error", data.Err.Error()))...)
	case ok && l.slow > 0 && took >= l.slow:
		l.logger.WarnContext(ctx, "slow query", append(attrs, slog.String("sql", start.sql))...)
	default:
		l.logger.DebugContext(ctx, "query end", attrs...)
	}
}
