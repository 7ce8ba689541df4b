package command

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/yndnr/trilium-cli/internal/cli/output"
	"github.com/yndnr/trilium-cli/internal/core/domain"
	"github.com/yndnr/trilium-cli/internal/infra/shutdown"
	"github.com/yndnr/trilium-cli/internal/telemetry/logger"
)

// Exit codes.
const (
	ExitOK          = 0
	ExitFailure     = 1 // remote and internal errors
	ExitUsage       = 2 // usage and path resolution errors
	ExitInterrupted = 130
)

// ErrorEnvelope is the document printed on stdout when a command fails.
type ErrorEnvelope struct {
	OK         bool        `json:"ok"`
	Kind       domain.Kind `json:"kind"`
	Code       string      `json:"code,omitempty"`
	Message    string      `json:"message"`
	HTTPStatus int         `json:"httpStatus,omitempty"`
	Path       string      `json:"path,omitempty"`
	Segment    string      `json:"segment,omitempty"`
	Parent     string      `json:"parent,omitempty"`
}

// NewErrorEnvelope describes err for output.
func NewErrorEnvelope(err error) *ErrorEnvelope {
	env := &ErrorEnvelope{
		Kind:    domain.KindOf(err),
		Code:    domain.GetErrorCode(err),
		Message: err.Error(),
	}

	var remote *domain.RemoteError
	if errors.As(err, &remote) {
		env.HTTPStatus = remote.Status
		env.Path = remote.Path
		env.Message = remote.Message
	}

	var res *domain.ResolutionError
	if errors.As(err, &res) {
		env.Segment = res.Segment
		env.Parent = res.Parent
		env.Message = res.Error()
	}
	return env
}

// ExitCode maps err to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	switch domain.KindOf(err) {
	case domain.KindUsage, domain.KindResolution:
		return ExitUsage
	default:
		return ExitFailure
	}
}

// ReportError prints the error envelope to stdout with formatter (JSON
// when nil) and one line to stderr. It returns the exit code.
func ReportError(stdout, stderr io.Writer, formatter output.Formatter, err error) int {
	if formatter == nil {
		formatter = &output.JSONFormatter{}
	}
	if ferr := formatter.Format(stdout, NewErrorEnvelope(err)); ferr != nil {
		logger.Error("write error envelope", "error", ferr)
	}
	output.ErrorLine(stderr, logger.RedactString(err.Error()))
	return ExitCode(err)
}

// Run runs the CLI with args (including the program name) and returns the
// process exit code. Commands are cancelled on SIGINT or SIGTERM.
func Run(parent context.Context, args []string, stdout, stderr io.Writer) int {
	ctx, stop := shutdown.WithSignals(parent)
	defer stop()

	app := App()
	app.Writer = stdout
	app.ErrWriter = stderr

	err := app.RunContext(ctx, args)
	rt, _ := app.Metadata[runtimeKey].(*runtime)

	code := ExitOK
	if err != nil {
		var formatter output.Formatter
		if rt != nil {
			formatter = rt.formatter
		}
		code = ReportError(stdout, stderr, formatter, err)
		if shutdown.Interrupted(ctx, parent) {
			code = ExitInterrupted
		}
	}

	if rt != nil {
		finish(rt, err)
	}
	return code
}

// finish records the command in the metrics registry and writes the
// textfile when one is configured.
func finish(rt *runtime, err error) {
	if rt.command == "" {
		return
	}
	result := "ok"
	if err != nil {
		result = string(domain.KindOf(err))
	}
	elapsed := time.Since(rt.started)
	rt.metrics.ObserveCommand(rt.command, result, elapsed)

	log := logger.L(rt.ctx)
	log.Debug("command finished", "command", rt.command, "result", result, "duration_ms", elapsed.Milliseconds())

	if path := rt.cfg.MetricsFile; path != "" {
		if werr := rt.metrics.WriteTextfile(path); werr != nil {
			log.Warn("metrics file not written", "path", path, "error", werr)
		}
	}
}
