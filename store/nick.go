package store

import "github.com/pyircfs/pyircfs/irc"

// NickStore drives nickname acquisition during registration and tracks
// the session's own current nickname afterward. The Handler consults its
// exported status accessors directly (Connected, ExhaustedCandidates)
// because nick negotiation is the one place session-wide state depends on
// store-internal bookkeeping that the plain Store interface doesn't
// expose.
type NickStore struct {
	base

	candidates []string
	tried      int
	current    string
	connected  bool
}

// NewNickStore constructs a NickStore with the ordered list of nicknames
// to try, most preferred first.
func NewNickStore(id int, sink Sink, candidates []string) *NickStore {
	s := &NickStore{
		base:       newBase(id, "nick", sink),
		candidates: candidates,
	}
	s.log.setFormatter(s.Format)
	return s
}

func (s *NickStore) DeclaredInbound() []string {
	return []string{irc.RplWelcome, irc.ErrNicknameInUse, irc.ErrUnavailResource, irc.NICK}
}
func (s *NickStore) DeclaredOutbound() []string { return []string{irc.NICK} }

// CurrentNick is the nickname this session believes it currently holds.
func (s *NickStore) CurrentNick() string { return s.current }

// Connected reports whether the 001 welcome numeric has been seen.
func (s *NickStore) Connected() bool { return s.connected }

// ExhaustedCandidates reports whether every candidate nickname has been
// rejected and there are none left to try.
func (s *NickStore) ExhaustedCandidates() bool {
	return s.tried > len(s.candidates)
}

// OnEvent advances nick negotiation: on 001 it records the accepted
// nickname and marks the session connected; on 433/437 it tries the next
// candidate; on a NICK line for our own nick it updates the recorded
// nickname to follow a rename (self or server-forced).
func (s *NickStore) OnEvent(ev *irc.Event) []string {
	s.log.Append(ev)

	switch ev.Command {
	case irc.RplWelcome:
		args := ev.Args()
		if len(args) > 0 {
			s.current = args[0]
		} else if s.tried > 0 && s.tried <= len(s.candidates) {
			s.current = s.candidates[s.tried-1]
		}
		s.connected = true

	case irc.ErrNicknameInUse, irc.ErrUnavailResource:
		if s.connected {
			return nil
		}
		if s.tried >= len(s.candidates) {
			// The last candidate has been rejected too.
			s.tried = len(s.candidates) + 1
			return nil
		}
		next := s.candidates[s.tried]
		s.tried++
		return []string{irc.NICK + " " + next}

	case irc.NICK:
		if ev.Nick() == s.current {
			args := ev.Args()
			if len(args) > 0 {
				s.current = args[0]
			}
		}
	}
	return nil
}

// Generate issues a NICK change requested by the user (not part of
// registration-time negotiation).
func (s *NickStore) Generate(verb string, params []string) []string {
	if len(params) == 0 {
		return nil
	}
	line := irc.NICK + " " + params[0]
	s.log.Append(irc.NewEvent("", irc.NICK, ":"+params[0]))
	return []string{line}
}

func (s *NickStore) Format(ev *irc.Event) string { return ev.String() }
func (s *NickStore) OnRemove() []string          { return nil }

// FirstCandidate is the nickname the Handler should open registration
// with.
func (s *NickStore) FirstCandidate() string {
	if len(s.candidates) == 0 {
		return ""
	}
	s.tried = 1
	return s.candidates[0]
}

// Reset reseeds the candidate list for a fresh connection attempt
// (first connect, or a reconnect after disconnection), clearing any
// earlier negotiation state.
func (s *NickStore) Reset(candidates []string) {
	s.candidates = candidates
	s.tried = 0
	s.current = ""
	s.connected = false
}
