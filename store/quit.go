package store

import "github.com/pyircfs/pyircfs/irc"

// QuitStore formats an outbound QUIT carrying a trailing farewell reason.
// It exists purely to give QUIT a registered Generate target; the
// Connection's priority queue (not this store) is what makes QUIT jump
// ahead of backlogged traffic.
type QuitStore struct {
	base
}

// NewQuitStore constructs a QuitStore.
func NewQuitStore(id int, sink Sink) *QuitStore {
	s := &QuitStore{base: newBase(id, "quit", sink)}
	s.log.setFormatter(s.Format)
	return s
}

func (s *QuitStore) DeclaredInbound() []string  { return nil }
func (s *QuitStore) DeclaredOutbound() []string { return []string{irc.QUIT} }

func (s *QuitStore) OnEvent(ev *irc.Event) []string { return nil }

// Generate formats the QUIT line. params[0], if present, is the farewell
// message.
func (s *QuitStore) Generate(verb string, params []string) []string {
	reason := ""
	if len(params) > 0 {
		reason = params[0]
	}
	line := irc.FormatQuit(reason)
	evParams := ""
	if len(reason) > 0 {
		evParams = ":" + reason
	}
	s.log.Append(irc.NewEvent("", irc.QUIT, evParams))
	return []string{line}
}

func (s *QuitStore) Format(ev *irc.Event) string { return ev.String() }
func (s *QuitStore) OnRemove() []string          { return nil }
