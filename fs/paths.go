/*
Package fs implements the filesystem projection: a pathfs.FileSystem that
maps file paths onto the session kernel's stores, per the namespace

	/                     conversation files + commands/, info/, names/
	/<nick>               private conversation
	/<#channel>           channel message log
	/commands/<verb>      issuing a command by writing to it
	/info/<name>          read-only informational store
	/info/<#channel>      synthesized channel metadata snapshot
	/info/status          synthesized session status snapshot
	/names/<#channel>/    member nick directory
	/names/<#channel>/<nick>  synthesized per-member info file
*/
package fs

import (
	"strings"

	"github.com/pyircfs/pyircfs/irc"
)

type nodeKind int

const (
	kindUnknown nodeKind = iota
	kindRoot
	kindConversation
	kindCommandsDir
	kindCommand
	kindInfoDir
	kindInfoStore
	kindInfoChannel
	kindInfoStatus
	kindNamesDir
	kindNamesChannelDir
	kindNamesMember
)

// node is the resolved identity of one path.
type node struct {
	kind    nodeKind
	target  string // conversation/channel/verb/info name, as appropriate
	channel string // owning channel, for kindNamesMember
	member  string // member nick, for kindNamesMember
}

// resolve maps a FUSE path (no leading slash, "" for root) onto a node.
func resolve(path string) node {
	if path == "" {
		return node{kind: kindRoot}
	}

	parts := strings.Split(path, "/")

	switch parts[0] {
	case "commands":
		if len(parts) == 1 {
			return node{kind: kindCommandsDir}
		}
		if len(parts) == 2 {
			return node{kind: kindCommand, target: parts[1]}
		}
		return node{kind: kindUnknown}

	case "info":
		if len(parts) == 1 {
			return node{kind: kindInfoDir}
		}
		if len(parts) == 2 {
			name := parts[1]
			switch {
			case name == "status":
				return node{kind: kindInfoStatus}
			case irc.IsChannel(name):
				return node{kind: kindInfoChannel, target: name}
			default:
				return node{kind: kindInfoStore, target: name}
			}
		}
		return node{kind: kindUnknown}

	case "names":
		if len(parts) == 1 {
			return node{kind: kindNamesDir}
		}
		if len(parts) == 2 {
			return node{kind: kindNamesChannelDir, target: parts[1]}
		}
		if len(parts) == 3 {
			return node{kind: kindNamesMember, channel: parts[1], member: parts[2]}
		}
		return node{kind: kindUnknown}

	default:
		if len(parts) == 1 {
			return node{kind: kindConversation, target: parts[0]}
		}
		return node{kind: kindUnknown}
	}
}
