package store

import (
	"strings"

	"github.com/pyircfs/pyircfs/irc"
)

// PrivmsgStore is a per-remote-nick conversation: it keeps only
// PRIVMSG/NOTICE events whose source nick matches its target
// (case-insensitively), follows the target's NICK changes, and answers a
// minimal CTCP VERSION request. ChannelStore embeds this and overrides the
// matching rule for channel targets.
type PrivmsgStore struct {
	base
	target string // the remote nick (or channel, for ChannelStore) this store is for
}

// NewPrivmsgStore constructs a PrivmsgStore addressed to target.
func NewPrivmsgStore(id int, sink Sink, target string) *PrivmsgStore {
	s := &PrivmsgStore{base: newBase(id, target, sink), target: target}
	s.log.setFormatter(s.Format)
	return s
}

// Target is the remote nick (or channel) this store is addressed to.
func (s *PrivmsgStore) Target() string { return s.target }

// Retarget follows the remote party's NICK change.
func (s *PrivmsgStore) Retarget(newTarget string) {
	s.target = newTarget
	s.name = newTarget
}

func (s *PrivmsgStore) DeclaredInbound() []string {
	return []string{irc.PRIVMSG, irc.NOTICE, irc.NICK}
}
func (s *PrivmsgStore) DeclaredOutbound() []string {
	return []string{irc.PRIVMSG, irc.NOTICE}
}

// matches reports whether ev's source nick is this store's remote party.
func (s *PrivmsgStore) matches(ev *irc.Event) bool {
	return strings.EqualFold(ev.Nick(), s.target)
}

func (s *PrivmsgStore) OnEvent(ev *irc.Event) []string {
	switch ev.Command {
	case irc.NICK:
		if s.matches(ev) {
			args := ev.Args()
			if len(args) > 0 {
				s.Retarget(args[0])
			}
		}
		return nil

	case irc.PRIVMSG, irc.NOTICE:
		if !s.matches(ev) {
			return nil
		}
		s.log.Append(ev)
		if ev.Command == irc.PRIVMSG && ev.IsCTCP() {
			tag, _ := ev.UnpackCTCP()
			if tag == irc.CTCPVersion {
				return []string{irc.FormatCTCPReply(ev.Nick(), irc.CTCPVersion, "pyircfs")}
			}
		}
		return nil
	}
	return nil
}

// Generate sends a PRIVMSG (or, with verb NOTICE, a NOTICE) to this
// store's target, splitting across multiple wire lines if the text
// exceeds the protocol's line length.
func (s *PrivmsgStore) Generate(verb string, params []string) []string {
	if len(params) == 0 || len(params[0]) == 0 {
		return nil
	}
	text := params[0]

	var lines []string
	eventCmd := irc.PRIVMSG
	if strings.EqualFold(verb, irc.NOTICE) {
		eventCmd = irc.NOTICE
		lines = irc.FormatNotice(s.target, text)
	} else {
		lines = irc.FormatPrivmsg(s.target, text)
	}

	s.log.Append(irc.NewEvent("", eventCmd, s.target+" :"+text))
	return lines
}

func (s *PrivmsgStore) Format(ev *irc.Event) string {
	return ev.Time.Format("15:04:05") + " <" + ev.Nick() + "> " + ev.ParamsEndpart
}

func (s *PrivmsgStore) OnRemove() []string { return nil }
