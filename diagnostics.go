package hll

import (
	"context"
	"log/slog"
)

// diagnostics wraps a *slog.Logger so nil loggers degrade to slog.Default()
// without every call site needing a nil check. No third-party structured
// logging library appears in the teacher repository or in any fully
// readable example source in the retrieval pack (grep across the corpus
// turns up zap/logrus/zerolog only in unrelated go.mod manifests for
// blockchain and code-analysis repos whose source was never read), so this
// is one of the few concerns left on the standard library; see DESIGN.md.
type diagnostics struct {
	logger *slog.Logger
}

func newDiagnostics(logger *slog.Logger) diagnostics {
	if logger == nil {
		logger = slog.Default()
	}
	return diagnostics{logger: logger}
}

func (d diagnostics) numerical(msg string, args ...any) {
	args = append(args, "kind", diagKindNumerical)
	d.logger.Warn(msg, args...)
}

func (d diagnostics) preconditionViolation(msg string, args ...any) {
	args = append(args, "kind", diagKindPreconditionViolation)
	d.logger.WarnContext(context.Background(), msg, args...)
}
