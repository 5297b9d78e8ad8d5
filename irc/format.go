package irc

import (
	"fmt"
	"strings"
)

const (
	// maxLineLength is the longest line this package will emit, short of
	// the 512-byte wire limit by enough room for the server to prepend a
	// full nick!user@host prefix when it echoes or relays the line back.
	maxLineLength = 510 - 62
	// splitBackward is how far format will scan backwards from
	// maxLineLength looking for a space to split on, rather than cutting
	// a multi-line message mid-word.
	splitBackward = 20
)

// FormatPrivmsg renders one or more PRIVMSG lines addressed to target,
// splitting msg across lines if it would not fit in a single one.
func FormatPrivmsg(target, msg string) []string {
	return splitLines(fmt.Sprintf("%s %s :", PRIVMSG, target), msg)
}

// FormatNotice renders one or more NOTICE lines addressed to target.
func FormatNotice(target, msg string) []string {
	return splitLines(fmt.Sprintf("%s %s :", NOTICE, target), msg)
}

// FormatCTCP renders a CTCP-tagged PRIVMSG line. CTCP messages are never
// split across lines.
func FormatCTCP(target, tag, data string) string {
	return fmt.Sprintf("%s %s :%s", PRIVMSG, target, CTCPPackString(tag, data))
}

// FormatCTCPReply renders a CTCP-tagged NOTICE line, the conventional way
// to answer a CTCP request.
func FormatCTCPReply(target, tag, data string) string {
	return fmt.Sprintf("%s %s :%s", NOTICE, target, CTCPPackString(tag, data))
}

// FormatJoin renders a JOIN line for one or more channel names.
func FormatJoin(targets ...string) string {
	return fmt.Sprintf("%s %s", JOIN, strings.Join(targets, ","))
}

// FormatPart renders a PART line for one or more channel names.
func FormatPart(targets ...string) string {
	return fmt.Sprintf("%s %s", PART, strings.Join(targets, ","))
}

// FormatQuit renders a QUIT line with the given farewell message.
func FormatQuit(msg string) string {
	if len(msg) == 0 {
		return QUIT
	}
	return fmt.Sprintf("%s :%s", QUIT, msg)
}

// splitLines breaks msg into as many lines as necessary to keep each
// line, header included, under maxLineLength. It prefers to split on a
// space within splitBackward bytes of the limit over cutting mid-word.
func splitLines(header, msg string) []string {
	lnh := len(header)
	msgMax := maxLineLength - lnh
	if len(msg) <= msgMax {
		return []string{header + msg}
	}

	var lines []string
	for len(msg) > 0 {
		size := msgMax
		skip := 0
		if len(msg) <= msgMax {
			size = len(msg)
		} else {
			for i := msgMax; i != 0 && i > msgMax-splitBackward; i-- {
				if msg[i] == ' ' {
					size = i
					skip = 1
					break
				}
			}
		}
		lines = append(lines, header+msg[:size])
		msg = msg[size+skip:]
	}
	return lines
}
