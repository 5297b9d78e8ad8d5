package store

import "github.com/pyircfs/pyircfs/irc"

// WhoStore collects WHO replies (352) and gives WHO a registered outbound
// target for `/commands/who` writes and the `mv nick /commands/who`
// rename idiom.
type WhoStore struct {
	base
}

// NewWhoStore constructs a WhoStore.
func NewWhoStore(id int, sink Sink) *WhoStore {
	s := &WhoStore{base: newBase(id, "who", sink)}
	s.log.setFormatter(s.Format)
	return s
}

func (s *WhoStore) DeclaredInbound() []string {
	return []string{irc.RplWhoreply, irc.RplEndofwho}
}
func (s *WhoStore) DeclaredOutbound() []string { return []string{irc.WHO} }

func (s *WhoStore) OnEvent(ev *irc.Event) []string {
	s.log.Append(ev)
	return nil
}

// Generate formats WHO <target>.
func (s *WhoStore) Generate(verb string, params []string) []string {
	if len(params) == 0 {
		return nil
	}
	target := params[0]
	s.log.Append(irc.NewEvent("", irc.WHO, ":"+target))
	return []string{irc.WHO + " " + target}
}

func (s *WhoStore) Format(ev *irc.Event) string { return ev.String() }
func (s *WhoStore) OnRemove() []string          { return nil }
