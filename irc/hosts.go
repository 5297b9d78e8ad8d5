package irc

import (
	"regexp"
	"strings"
)

// rgxHost validates and splits hosts.
var rgxHost = regexp.MustCompile(
	`(?i)^` +
		`([\w\x5B-\x60][\w\d\x5B-\x60]*)` + // nickname
		`!([^\0@\s]+)` + // username
		`@([^\0\s]+)` + // host
		`$`,
)

// Host is a type that represents an irc hostname. nickname!username@hostname
type Host string

// Mask is an irc hostmask that contains wildcard characters ? and *, as
// collected by ChannelStore's ban list (see IsBanned).
type Mask string

// Match checks if the mask satisfies the given host.
func (m Mask) Match(h Host) bool {
	return isMatch(string(h), string(m))
}

// isMatch is a matching function for a string, and a string with the wildcards
// * and ? in it.
func isMatch(hs, ms string) bool {
	ml, hl := len(ms), len(hs)

	if ml == 0 {
		return hl == 0
	}

	var i, j, consume = 0, 0, 0
	for i < ml && j < hl {

		switch ms[i] {
		case '?', '*':
			star := false
			consume = 0

			for i < ml && (ms[i] == '*' || ms[i] == '?') {
				star = star || ms[i] == '*'
				i++
				consume++
			}

			if star {
				consume = -1
			}
		case hs[j]:
			consume = 0
			i++
			j++
		default:
			if consume != 0 {
				consume--
				j++
			} else {
				return false
			}
		}
	}

	for i < ml && (ms[i] == '?' || ms[i] == '*') {
		i++
	}

	if consume < 0 {
		consume = hl - j
	}
	j += consume

	if i < ml || j < hl {
		return false
	}

	return true
}

// Nick returns the nick of the host.
func Nick(host string) string {
	index := strings.IndexAny(host, "!@")
	if index >= 0 {
		return host[:index]
	}
	return host
}

// Username returns the username of the host.
func Username(host string) string {
	_, user, _ := Split(host)
	return user
}

// Hostname returns the host of the host.
func Hostname(host string) string {
	_, _, hostname := Split(host)
	return hostname
}

// Split splits a host into it's fragments: nick, user, and hostname. If the
// format is not acceptable empty string is returned for everything.
func Split(host string) (nick, user, hostname string) {
	fragments := rgxHost.FindStringSubmatch(string(host))
	if len(fragments) == 0 {
		return
	}
	return fragments[1], fragments[2], fragments[3]
}
