/*
Package config is the CLI boundary adapter for mount-time identity: plain
structs populated from flags, optionally merged with a named profile loaded
from a TOML file.

An example profile file looks like this:

	[profiles.freenode]
	server = "chat.freenode.net:6697"
	nickname = "mynick"
	altnick = "mynick_"
	username = "mynick"
	realname = "Mount User"
	floodstep = 2.0
	floodtimeout = 10.0

A flag given on the command line always overrides the matching field from a
profile; the session kernel itself never reads a file or a flag, only the
plain handler.Identity struct the caller builds from the merged Profile.
*/
package config

import (
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Profile is one named mount profile as it appears under [profiles.<name>]
// in a config file.
type Profile struct {
	Server       string  `toml:"server"`
	Nickname     string  `toml:"nickname"`
	AltNick      string  `toml:"altnick"`
	Username     string  `toml:"username"`
	Realname     string  `toml:"realname"`
	Password     string  `toml:"password"`
	FloodStep    float64 `toml:"floodstep"`
	FloodTimeout float64 `toml:"floodtimeout"`
	FloodPenalty uint    `toml:"floodpenalty"`
}

// File is the decoded shape of a mount-profile TOML file.
type File struct {
	Profiles map[string]Profile `toml:"profiles"`
}

// Load decodes a TOML profile file.
func Load(filename string) (*File, error) {
	var f File
	if _, err := toml.DecodeFile(filename, &f); err != nil {
		return nil, errors.Wrapf(err, "config: failed to load %q", filename)
	}
	return &f, nil
}

// Profile looks up a named profile.
func (f *File) Profile(name string) (Profile, bool) {
	if f == nil {
		return Profile{}, false
	}
	p, ok := f.Profiles[name]
	return p, ok
}

// Merge overlays override's non-zero-value fields onto base, so CLI flags
// (passed as override) always win over a profile's values (passed as base)
// without needing to know which flags the caller actually set explicitly.
func Merge(base, override Profile) Profile {
	out := base
	if len(override.Server) > 0 {
		out.Server = override.Server
	}
	if len(override.Nickname) > 0 {
		out.Nickname = override.Nickname
	}
	if len(override.AltNick) > 0 {
		out.AltNick = override.AltNick
	}
	if len(override.Username) > 0 {
		out.Username = override.Username
	}
	if len(override.Realname) > 0 {
		out.Realname = override.Realname
	}
	if len(override.Password) > 0 {
		out.Password = override.Password
	}
	if override.FloodStep > 0 {
		out.FloodStep = override.FloodStep
	}
	if override.FloodTimeout > 0 {
		out.FloodTimeout = override.FloodTimeout
	}
	if override.FloodPenalty > 0 {
		out.FloodPenalty = override.FloodPenalty
	}
	return out
}

// Nicknames returns the candidate nickname list in try order: the primary
// nickname, then the alternate if one is set.
func (p Profile) Nicknames() []string {
	nicks := []string{p.Nickname}
	if len(p.AltNick) > 0 {
		nicks = append(nicks, p.AltNick)
	}
	return nicks
}

