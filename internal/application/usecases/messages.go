package usecases

import (
	"fmt"
	"strings"

	"playground-bot/internal/domain/command"
	"playground-bot/internal/domain/user"
)

const (
	PlaygroundURL = "https://play.rust-lang.org/"
	GitHubURL     = "https://github.com/vyavdoshenko/rust_playground_bot"

	// ExecutionFailedText is sent when the playground round trip fails
	ExecutionFailedText = "Create response error, sorry for inconvenience"
)

// StartText returns the welcome message
func StartText() string {
	return "Welcome! Let's go deeper to Rust.\n\n" +
		"It's Rust Playground Bot.\n" +
		"You can check some pieces of your Rust code, sending it to me.\n" +
		"I will check it using Rust playground: " + PlaygroundURL + "\n\n" +
		"This Bot is an open-source project.\n" +
		GitHubURL
}

// HelpText lists every command with its accepted values
func HelpText() string {
	var sb strings.Builder
	sb.WriteString("Send me Rust code and I will run it on the playground.\n\nCommands:\n")
	for _, d := range command.Descriptions() {
		fmt.Fprintf(&sb, "/%s - %s\n", d.Name, d.Text)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// InfoText summarizes a user's preferences
func InfoText(p user.Preferences) string {
	return fmt.Sprintf("Backtrace: %s\nChannel: %s\nEdition: %s\nMode: %s\nCrate type: %s\nTests: %s",
		enabledText(p.Backtrace), p.Channel, p.Edition, p.Mode, p.CrateType, enabledText(p.Tests))
}

// InvalidValueText is the reply to a /set_* command with an unknown value
func InvalidValueText(setting command.Setting) string {
	return fmt.Sprintf("Error. Wrong %s.", setting)
}

func enabledText(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}
