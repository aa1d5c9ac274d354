package user

import "strings"

// Channel is the Rust toolchain release channel
type Channel string

const (
	ChannelStable  Channel = "stable"
	ChannelBeta    Channel = "beta"
	ChannelNightly Channel = "nightly"
)

// Mode is the compiler optimization profile
type Mode string

const (
	ModeDebug   Mode = "debug"
	ModeRelease Mode = "release"
)

// Edition is the Rust language edition
type Edition string

const (
	Edition2015 Edition = "2015"
	Edition2018 Edition = "2018"
)

// CrateType is the kind of crate the playground compiles
type CrateType string

const (
	CrateTypeBin CrateType = "bin"
	CrateTypeLib CrateType = "lib"
)

// BuildType is what the user asked the playground to do with the code
type BuildType string

const (
	BuildTypeRun   BuildType = "run"
	BuildTypeBuild BuildType = "build"
	BuildTypeTest  BuildType = "test"
)

// ParseChannel matches s case-insensitively against the known channels
func ParseChannel(s string) (Channel, bool) {
	switch c := Channel(strings.ToLower(s)); c {
	case ChannelStable, ChannelBeta, ChannelNightly:
		return c, true
	default:
		return "", false
	}
}

// ParseMode matches s case-insensitively against the known modes
func ParseMode(s string) (Mode, bool) {
	switch m := Mode(strings.ToLower(s)); m {
	case ModeDebug, ModeRelease:
		return m, true
	default:
		return "", false
	}
}

// ParseEdition matches s exactly against the known editions
func ParseEdition(s string) (Edition, bool) {
	switch e := Edition(s); e {
	case Edition2015, Edition2018:
		return e, true
	default:
		return "", false
	}
}

// ParseBacktrace accepts "enabled" or "disabled" in any case
func ParseBacktrace(s string) (enabled bool, ok bool) {
	switch strings.ToLower(s) {
	case "enabled":
		return true, true
	case "disabled":
		return false, true
	default:
		return false, false
	}
}

// ParseBuildType matches s case-insensitively against run, build and test
func ParseBuildType(s string) (BuildType, bool) {
	switch b := BuildType(strings.ToLower(s)); b {
	case BuildTypeRun, BuildTypeBuild, BuildTypeTest:
		return b, true
	default:
		return "", false
	}
}

// Preferences holds the playground options remembered for one user
type Preferences struct {
	Backtrace bool      `json:"backtrace"`
	Channel   Channel   `json:"channel"`
	CrateType CrateType `json:"crateType"`
	Edition   Edition   `json:"edition"`
	Mode      Mode      `json:"mode"`
	Tests     bool      `json:"tests"`

	// Code is the last submitted snippet. It is overwritten before every
	// execution and never persisted.
	Code string `json:"-"`
}

// NewPreferences returns the defaults every unknown user starts with
func NewPreferences() Preferences {
	return Preferences{
		Backtrace: false,
		Channel:   ChannelStable,
		CrateType: CrateTypeBin,
		Edition:   Edition2018,
		Mode:      ModeDebug,
		Tests:     false,
	}
}

// ApplyBuildType maps a build type onto the crate type and tests flag
func (p *Preferences) ApplyBuildType(b BuildType) {
	p.Tests = b == BuildTypeTest
	if b == BuildTypeRun {
		p.CrateType = CrateTypeBin
	} else {
		p.CrateType = CrateTypeLib
	}
}

// Normalize fills empty fields with defaults, so records loaded from older
// or hand-edited state files are always complete
func (p Preferences) Normalize() Preferences {
	def := NewPreferences()
	if c, ok := ParseChannel(string(p.Channel)); ok {
		p.Channel = c
	} else {
		p.Channel = def.Channel
	}
	if m, ok := ParseMode(string(p.Mode)); ok {
		p.Mode = m
	} else {
		p.Mode = def.Mode
	}
	if _, ok := ParseEdition(string(p.Edition)); !ok {
		p.Edition = def.Edition
	}
	switch p.CrateType {
	case CrateTypeBin, CrateTypeLib:
	default:
		p.CrateType = def.CrateType
	}
	return p
}
