package domain

import "strings"

// Channel is a rust release channel.
type Channel string

// Release channels.
const (
	ChannelStable  Channel = "stable"
	ChannelBeta    Channel = "beta"
	ChannelNightly Channel = "nightly"
	ChannelDev     Channel = "dev"
)

// ParseChannel derives the channel from a rustc release string such as
// "1.80.0-nightly".
func ParseChannel(release string) Channel {
	switch {
	case strings.Contains(release, "-nightly"):
		return ChannelNightly
	case strings.Contains(release, "-beta"):
		return ChannelBeta
	case strings.Contains(release, "-dev"):
		return ChannelDev
	default:
		return ChannelStable
	}
}

// Toolchain describes the rustc in use.
type Toolchain struct {
	Host       string
	Release    string
	CommitHash string
	Channel    Channel
	// Sysroot is the toolchain's own sysroot (rustc --print sysroot).
	Sysroot string
	// Src is the directory holding the standard library crates.
	Src string
}
