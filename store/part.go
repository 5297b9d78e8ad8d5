package store

import "github.com/pyircfs/pyircfs/irc"

// PartStore formats an outbound PART, carrying an optional reason as a
// trailing argument.
type PartStore struct {
	base
}

// NewPartStore constructs a PartStore.
func NewPartStore(id int, sink Sink) *PartStore {
	s := &PartStore{base: newBase(id, "part", sink)}
	s.log.setFormatter(s.Format)
	return s
}

func (s *PartStore) DeclaredInbound() []string  { return nil }
func (s *PartStore) DeclaredOutbound() []string { return []string{irc.PART} }

func (s *PartStore) OnEvent(ev *irc.Event) []string { return nil }

// Generate formats a PART for one or more channels. params[0] is the
// channel list (comma-joined by the caller is not required — a single
// channel is the common case); params[1], if present, is the reason.
func (s *PartStore) Generate(verb string, params []string) []string {
	if len(params) == 0 {
		return nil
	}
	line := irc.FormatPart(params[0])
	if len(params) > 1 && len(params[1]) > 0 {
		line += " :" + params[1]
	}
	s.log.Append(irc.NewEvent("", irc.PART, ":"+params[0]))
	return []string{line}
}

func (s *PartStore) Format(ev *irc.Event) string { return ev.String() }
func (s *PartStore) OnRemove() []string          { return nil }
