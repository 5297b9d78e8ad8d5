package store

import "github.com/pyircfs/pyircfs/irc"

// PassStore formats the registration-time PASS line.
type PassStore struct {
	base
}

// NewPassStore constructs a PassStore.
func NewPassStore(id int, sink Sink) *PassStore {
	s := &PassStore{base: newBase(id, "pass", sink)}
	s.log.setFormatter(s.Format)
	return s
}

func (s *PassStore) DeclaredInbound() []string  { return nil }
func (s *PassStore) DeclaredOutbound() []string { return []string{irc.PASS} }

func (s *PassStore) OnEvent(ev *irc.Event) []string { return nil }

// Generate formats PASS <password>. The password itself is never written
// to the event log: the history entry carries "(redacted)" in its place.
func (s *PassStore) Generate(verb string, params []string) []string {
	if len(params) == 0 {
		return nil
	}
	line := irc.PASS + " " + params[0]
	s.log.Append(irc.NewEvent("", irc.PASS, "(redacted)"))
	return []string{line}
}

func (s *PassStore) Format(ev *irc.Event) string { return ev.String() }
func (s *PassStore) OnRemove() []string          { return nil }
