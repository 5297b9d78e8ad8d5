package store

import "github.com/pyircfs/pyircfs/irc"

// ModeStore collects MODE-related numerics (324 channel-modes-is) outside
// of any particular channel's own tracking, for a raw/diagnostic view, and
// gives MODE a registered outbound target for ad-hoc `/commands/mode`
// writes.
type ModeStore struct {
	base
}

// NewModeStore constructs a ModeStore.
func NewModeStore(id int, sink Sink) *ModeStore {
	s := &ModeStore{base: newBase(id, "mode", sink)}
	s.log.setFormatter(s.Format)
	return s
}

func (s *ModeStore) DeclaredInbound() []string  { return []string{irc.RplChannelmode, irc.MODE} }
func (s *ModeStore) DeclaredOutbound() []string { return []string{irc.MODE} }

func (s *ModeStore) OnEvent(ev *irc.Event) []string {
	s.log.Append(ev)
	return nil
}

// Generate formats MODE <target> <flags> [params...].
func (s *ModeStore) Generate(verb string, params []string) []string {
	if len(params) == 0 {
		return nil
	}
	line := irc.MODE
	for _, p := range params {
		line += " " + p
	}
	evParams := ""
	for i, p := range params {
		if i > 0 {
			evParams += " "
		}
		evParams += p
	}
	s.log.Append(irc.NewEvent("", irc.MODE, evParams))
	return []string{line}
}

func (s *ModeStore) Format(ev *irc.Event) string { return ev.String() }
func (s *ModeStore) OnRemove() []string          { return nil }
