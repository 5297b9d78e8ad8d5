package store

import "github.com/pyircfs/pyircfs/irc"

// JoinStore formats an outbound JOIN. Inbound JOIN routing happens through
// the per-channel ChannelStore, not here; this store exists only so JOIN
// has a registered Generate target for commands issued outside the
// `/names/<#chan> mkdir` path (e.g. `/commands/join`).
type JoinStore struct {
	base
}

// NewJoinStore constructs a JoinStore.
func NewJoinStore(id int, sink Sink) *JoinStore {
	s := &JoinStore{base: newBase(id, "join", sink)}
	s.log.setFormatter(s.Format)
	return s
}

func (s *JoinStore) DeclaredInbound() []string  { return nil }
func (s *JoinStore) DeclaredOutbound() []string { return []string{irc.JOIN} }

func (s *JoinStore) OnEvent(ev *irc.Event) []string { return nil }

// Generate formats a JOIN for one or more comma-joinable channel names.
func (s *JoinStore) Generate(verb string, params []string) []string {
	if len(params) == 0 {
		return nil
	}
	line := irc.FormatJoin(params...)
	s.log.Append(irc.NewEvent("", irc.JOIN, ":"+params[0]))
	return []string{line}
}

func (s *JoinStore) Format(ev *irc.Event) string { return ev.String() }
func (s *JoinStore) OnRemove() []string          { return nil }
