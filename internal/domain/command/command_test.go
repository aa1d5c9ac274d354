package command

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"playground-bot/internal/domain/user"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Command
	}{
		{"start", "/start", Start{}},
		{"help", "/help", Help{}},
		{"playground", "/playground", Playground{}},
		{"github", "/github", GitHub{}},
		{"info", "/info", Info{}},
		{"channel", "/set_channel stable", SetChannel{Channel: user.ChannelStable, Raw: "stable"}},
		{"channel keeps raw case", "/set_channel NightLY", SetChannel{Channel: user.ChannelNightly, Raw: "NightLY"}},
		{"channel invalid", "/set_channel alpha", Invalid{Setting: SettingChannel, Raw: "alpha"}},
		{"mode", "/set_mode Release", SetMode{Mode: user.ModeRelease, Raw: "Release"}},
		{"mode invalid", "/set_mode fast", Invalid{Setting: SettingMode, Raw: "fast"}},
		{"edition", "/set_edition 2015", SetEdition{Edition: user.Edition2015, Raw: "2015"}},
		{"edition invalid", "/set_edition 2021", Invalid{Setting: SettingEdition, Raw: "2021"}},
		{"backtrace", "/set_backtrace ENABLED", SetBacktrace{Enabled: true, Raw: "ENABLED"}},
		{"backtrace disabled", "/set_backtrace disabled", SetBacktrace{Enabled: false, Raw: "disabled"}},
		{"backtrace invalid", "/set_backtrace on", Invalid{Setting: SettingBacktrace, Raw: "on"}},
		{"build type", "/set_build_type test", SetBuildType{BuildType: user.BuildTypeTest, Raw: "test"}},
		{"build type invalid", "/set_build_type deploy", Invalid{Setting: SettingBuildType, Raw: "deploy"}},
		{"empty value", "/set_mode ", Invalid{Setting: SettingMode, Raw: ""}},
		{"code", "fn main() {}", Execute{Code: "fn main() {}"}},
		{"prefix without space is code", "/set_channelstable", Execute{Code: "/set_channelstable"}},
		{"command name is case-sensitive", "/START", Execute{Code: "/START"}},
		{"exact match only", "/start now", Execute{Code: "/start now"}},
		{"unknown command is code", "/compile", Execute{Code: "/compile"}},
		{"group mention", "/info@PlaygroundBot", Info{}},
		{"group mention with value", "/set_channel@PlaygroundBot beta", SetChannel{Channel: user.ChannelBeta, Raw: "beta"}},
		{"group mention invalid value", "/set_mode@PlaygroundBot fast", Invalid{Setting: SettingMode, Raw: "fast"}},
		{"mention on unknown command is code", "/compile@PlaygroundBot", Execute{Code: "/compile@PlaygroundBot"}},
		{"mention needs a username", "/info@", Execute{Code: "/info@"}},
		{"mention only in the first word", "/start @PlaygroundBot", Execute{Code: "/start @PlaygroundBot"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.text))
		})
	}
}

func TestParseEditionIsCaseSensitiveValue(t *testing.T) {
	// editions are digits, so only surrounding text can break the match
	assert.Equal(t, Invalid{Setting: SettingEdition, Raw: " 2018"}, Parse("/set_edition  2018"))
}

func TestDescriptionsCoverEveryCommand(t *testing.T) {
	names := make(map[string]bool)
	for _, d := range Descriptions() {
		assert.NotEmpty(t, d.Text, d.Name)
		names[d.Name] = true
	}

	for _, name := range []string{
		NameStart, NameHelp, NamePlayground, NameGitHub, NameInfo,
		NameSetChannel, NameSetMode, NameSetEdition, NameSetBacktrace, NameSetBuildType,
	} {
		assert.True(t, names[name], name)
	}
}
