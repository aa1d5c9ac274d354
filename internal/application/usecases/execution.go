package usecases

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"playground-bot/internal/domain/user"
	"playground-bot/internal/infrastructure/playground"
)

// Executor runs one request against the playground
type Executor interface {
	Execute(ctx context.Context, req playground.Request) (*playground.Response, error)
}

// ExecutionUseCase runs submitted code with the submitter's preferences
type ExecutionUseCase struct {
	preferencesRepo user.PreferencesRepository
	executor        Executor
	logger          *zap.Logger
}

// NewExecutionUseCase creates a new execution use case
func NewExecutionUseCase(preferencesRepo user.PreferencesRepository, executor Executor, logger *zap.Logger) *ExecutionUseCase {
	return &ExecutionUseCase{
		preferencesRepo: preferencesRepo,
		executor:        executor,
		logger:          logger,
	}
}

// Execute runs code for userID and returns the formatted report. The error,
// if any, wraps playground.ErrExecution.
func (uc *ExecutionUseCase) Execute(ctx context.Context, userID user.TelegramID, code string) (string, error) {
	prefs := uc.preferencesRepo.Get(userID)
	prefs.Code = code

	requestID := uuid.NewString()
	logger := uc.logger.With(zap.String("request_id", requestID), zap.Stringer("user", userID))
	logger.Debug("Executing code",
		zap.String("channel", string(prefs.Channel)),
		zap.String("mode", string(prefs.Mode)),
		zap.String("edition", string(prefs.Edition)),
		zap.String("crate_type", string(prefs.CrateType)),
		zap.Bool("tests", prefs.Tests),
		zap.Int("code_bytes", len(code)))

	start := time.Now()
	resp, err := uc.executor.Execute(ctx, playground.NewRequest(prefs, prefs.Code))
	if err != nil {
		// reported by the dispatcher
		logger.Debug("Playground request failed", zap.Duration("elapsed", time.Since(start)))
		return "", err
	}

	logger.Info("Playground request finished", zap.Bool("success", resp.Success), zap.Duration("elapsed", time.Since(start)))
	return FormatReport(resp), nil
}

const (
	stderrHeader = "---- Standard Error ----"
	stdoutHeader = "---- Standard Output ----"
)

// FormatReport renders a playground response. Standard output is only
// included when the run succeeded, one blank line below the stderr text.
func FormatReport(resp *playground.Response) string {
	var sb strings.Builder
	sb.WriteString(stderrHeader)
	sb.WriteString("\n\n")
	sb.WriteString(resp.Stderr)
	if resp.Success {
		// stderr from the playground normally ends with its own newline
		if resp.Stderr == "" || strings.HasSuffix(resp.Stderr, "\n") {
			sb.WriteString("\n")
		} else {
			sb.WriteString("\n\n")
		}
		sb.WriteString(stdoutHeader)
		sb.WriteString("\n\n")
		sb.WriteString(resp.Stdout)
	}
	return sb.String()
}
