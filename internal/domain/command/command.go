// Package command turns the text of an incoming message into a typed command.
package command

import (
	"strings"

	"playground-bot/internal/domain/user"
)

// Command is one of the variants declared in this file
type Command interface {
	isCommand()
}

// Setting names a preference that a /set_* command changes
type Setting string

const (
	SettingChannel   Setting = "channel"
	SettingMode      Setting = "mode"
	SettingEdition   Setting = "edition"
	SettingBacktrace Setting = "backtrace"
	SettingBuildType Setting = "build type"
)

type (
	// Start is /start
	Start struct{}
	// Help is /help
	Help struct{}
	// Playground is /playground
	Playground struct{}
	// GitHub is /github
	GitHub struct{}
	// Info is /info
	Info struct{}

	// SetChannel is a valid /set_channel. Raw is the value as typed.
	SetChannel struct {
		Channel user.Channel
		Raw     string
	}
	// SetMode is a valid /set_mode
	SetMode struct {
		Mode user.Mode
		Raw  string
	}
	// SetEdition is a valid /set_edition
	SetEdition struct {
		Edition user.Edition
		Raw     string
	}
	// SetBacktrace is a valid /set_backtrace
	SetBacktrace struct {
		Enabled bool
		Raw     string
	}
	// SetBuildType is a valid /set_build_type
	SetBuildType struct {
		BuildType user.BuildType
		Raw       string
	}

	// Invalid is a /set_* command whose value is outside its enumeration
	Invalid struct {
		Setting Setting
		Raw     string
	}

	// Execute is any other text; it is treated as source code
	Execute struct {
		Code string
	}
)

func (Start) isCommand()        {}
func (Help) isCommand()         {}
func (Playground) isCommand()   {}
func (GitHub) isCommand()       {}
func (Info) isCommand()         {}
func (SetChannel) isCommand()   {}
func (SetMode) isCommand()      {}
func (SetEdition) isCommand()   {}
func (SetBacktrace) isCommand() {}
func (SetBuildType) isCommand() {}
func (Invalid) isCommand()      {}
func (Execute) isCommand()      {}

// Command names as registered with Telegram
const (
	NameStart        = "start"
	NameHelp         = "help"
	NamePlayground   = "playground"
	NameGitHub       = "github"
	NameInfo         = "info"
	NameSetChannel   = "set_channel"
	NameSetMode      = "set_mode"
	NameSetEdition   = "set_edition"
	NameSetBacktrace = "set_backtrace"
	NameSetBuildType = "set_build_type"
)

var exact = map[string]Command{
	"/" + NameStart:      Start{},
	"/" + NameHelp:       Help{},
	"/" + NamePlayground: Playground{},
	"/" + NameGitHub:     GitHub{},
	"/" + NameInfo:       Info{},
}

type setter struct {
	prefix string
	parse  func(raw string) Command
}

var setters = []setter{
	{"/" + NameSetChannel + " ", func(raw string) Command {
		if c, ok := user.ParseChannel(raw); ok {
			return SetChannel{Channel: c, Raw: raw}
		}
		return Invalid{Setting: SettingChannel, Raw: raw}
	}},
	{"/" + NameSetMode + " ", func(raw string) Command {
		if m, ok := user.ParseMode(raw); ok {
			return SetMode{Mode: m, Raw: raw}
		}
		return Invalid{Setting: SettingMode, Raw: raw}
	}},
	{"/" + NameSetEdition + " ", func(raw string) Command {
		if e, ok := user.ParseEdition(raw); ok {
			return SetEdition{Edition: e, Raw: raw}
		}
		return Invalid{Setting: SettingEdition, Raw: raw}
	}},
	{"/" + NameSetBacktrace + " ", func(raw string) Command {
		if enabled, ok := user.ParseBacktrace(raw); ok {
			return SetBacktrace{Enabled: enabled, Raw: raw}
		}
		return Invalid{Setting: SettingBacktrace, Raw: raw}
	}},
	{"/" + NameSetBuildType + " ", func(raw string) Command {
		if b, ok := user.ParseBuildType(raw); ok {
			return SetBuildType{BuildType: b, Raw: raw}
		}
		return Invalid{Setting: SettingBuildType, Raw: raw}
	}},
}

// Parse classifies text. Command names are case-sensitive; anything that is
// not a known command is returned as Execute. In group chats Telegram sends
// commands as /name@BotUsername, the mention is ignored.
func Parse(text string) Command {
	if cmd, ok := parse(text); ok {
		return cmd
	}
	if stripped, ok := stripMention(text); ok {
		if cmd, ok := parse(stripped); ok {
			return cmd
		}
	}
	return Execute{Code: text}
}

func parse(text string) (Command, bool) {
	if cmd, ok := exact[text]; ok {
		return cmd, true
	}
	for _, s := range setters {
		if raw, ok := strings.CutPrefix(text, s.prefix); ok {
			return s.parse(raw), true
		}
	}
	return nil, false
}

// stripMention removes @username from the first word of a /command
func stripMention(text string) (string, bool) {
	if !strings.HasPrefix(text, "/") {
		return "", false
	}
	end := strings.IndexAny(text, " \n")
	if end < 0 {
		end = len(text)
	}
	at := strings.IndexByte(text[:end], '@')
	if at < 0 || !isUsername(text[at+1:end]) {
		return "", false
	}
	return text[:at] + text[end:], true
}

func isUsername(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_') {
			return false
		}
	}
	return true
}

// Description pairs a command name with its menu text
type Description struct {
	Name string
	Text string
}

// Descriptions lists the commands in the order they are shown to users
func Descriptions() []Description {
	return []Description{
		{NameStart, "Welcome message"},
		{NameHelp, "List available commands"},
		{NamePlayground, "Rust Playground URL"},
		{NameGitHub, "Bot source code URL"},
		{NameInfo, "Show your current settings"},
		{NameSetChannel, "stable | beta | nightly"},
		{NameSetMode, "debug | release"},
		{NameSetEdition, "2015 | 2018"},
		{NameSetBacktrace, "enabled | disabled"},
		{NameSetBuildType, "run | build | test"},
	}
}
