package usecases

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"playground-bot/internal/domain/command"
	"playground-bot/internal/domain/user"
)

// CommandUseCase answers one message from one user
type CommandUseCase struct {
	preferencesRepo user.PreferencesRepository
	execution       *ExecutionUseCase
	logger          *zap.Logger
}

// NewCommandUseCase creates a new command use case
func NewCommandUseCase(preferencesRepo user.PreferencesRepository, execution *ExecutionUseCase, logger *zap.Logger) *CommandUseCase {
	return &CommandUseCase{
		preferencesRepo: preferencesRepo,
		execution:       execution,
		logger:          logger,
	}
}

// Handle parses text and returns the reply. An error is returned only when
// code execution fails; invalid settings produce a reply, not an error.
func (uc *CommandUseCase) Handle(ctx context.Context, userID user.TelegramID, text string) (string, error) {
	switch cmd := command.Parse(text).(type) {
	case command.Start:
		return StartText(), nil
	case command.Help:
		return HelpText(), nil
	case command.Playground:
		return PlaygroundURL, nil
	case command.GitHub:
		return GitHubURL, nil
	case command.Info:
		return InfoText(uc.preferencesRepo.Get(userID)), nil
	case command.SetChannel:
		uc.update(userID, command.SettingChannel, cmd.Raw, func(p *user.Preferences) { p.Channel = cmd.Channel })
		return "Channel is " + cmd.Raw, nil
	case command.SetMode:
		uc.update(userID, command.SettingMode, cmd.Raw, func(p *user.Preferences) { p.Mode = cmd.Mode })
		return "Mode is " + cmd.Raw, nil
	case command.SetEdition:
		uc.update(userID, command.SettingEdition, cmd.Raw, func(p *user.Preferences) { p.Edition = cmd.Edition })
		return "Edition is " + cmd.Raw, nil
	case command.SetBacktrace:
		uc.update(userID, command.SettingBacktrace, cmd.Raw, func(p *user.Preferences) { p.Backtrace = cmd.Enabled })
		return "Backtrace " + cmd.Raw, nil
	case command.SetBuildType:
		uc.update(userID, command.SettingBuildType, cmd.Raw, func(p *user.Preferences) { p.ApplyBuildType(cmd.BuildType) })
		return cmd.Raw + " build type set.", nil
	case command.Invalid:
		uc.logger.Debug("Rejected setting value",
			zap.Stringer("user", userID), zap.String("setting", string(cmd.Setting)), zap.String("value", cmd.Raw))
		return InvalidValueText(cmd.Setting), nil
	case command.Execute:
		return uc.execution.Execute(ctx, userID, cmd.Code)
	default:
		panic(fmt.Sprintf("unhandled command %T", cmd))
	}
}

func (uc *CommandUseCase) update(userID user.TelegramID, setting command.Setting, raw string, apply func(*user.Preferences)) {
	uc.logger.Info("Set preference",
		zap.Stringer("user", userID), zap.String("setting", string(setting)), zap.String("value", raw))

	uc.preferencesRepo.Update(userID, apply)
}
