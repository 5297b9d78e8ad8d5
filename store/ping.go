package store

import "github.com/pyircfs/pyircfs/irc"

// PingStore auto-replies to the server's keepalive PING with a matching
// PONG. It never appears in the filesystem projection; the Handler wires
// it in purely for the reaction.
type PingStore struct {
	base
}

// NewPingStore constructs a PingStore.
func NewPingStore(id int, sink Sink) *PingStore {
	s := &PingStore{base: newBase(id, "ping", sink)}
	s.log.setFormatter(s.Format)
	return s
}

func (s *PingStore) DeclaredInbound() []string  { return []string{irc.PING} }
func (s *PingStore) DeclaredOutbound() []string { return nil }

// OnEvent answers every PING with a PONG carrying the same token, per RFC
// 2812's keepalive handshake.
func (s *PingStore) OnEvent(ev *irc.Event) []string {
	s.log.Append(ev)
	token := ev.ParamsEndpart
	if len(token) == 0 {
		token = ev.Params
	}
	return []string{irc.PONG + " :" + token}
}

func (s *PingStore) Generate(verb string, params []string) []string { return nil }
func (s *PingStore) Format(ev *irc.Event) string                    { return ev.String() }
func (s *PingStore) OnRemove() []string                             { return nil }
