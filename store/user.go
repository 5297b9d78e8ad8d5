package store

import "github.com/pyircfs/pyircfs/irc"

// UserStore and PassStore exist purely to give USER and PASS registered
// outbound targets during the registration phase; neither reacts to
// inbound traffic. Like every registered outbound verb, USER and PASS are
// listed under /commands.

// UserStore formats the registration-time USER line.
type UserStore struct {
	base
}

// NewUserStore constructs a UserStore.
func NewUserStore(id int, sink Sink) *UserStore {
	s := &UserStore{base: newBase(id, "user", sink)}
	s.log.setFormatter(s.Format)
	return s
}

func (s *UserStore) DeclaredInbound() []string  { return nil }
func (s *UserStore) DeclaredOutbound() []string { return []string{irc.USER} }

func (s *UserStore) OnEvent(ev *irc.Event) []string { return nil }

// Generate formats USER <username> 0 * :<realname> per RFC 2812.
func (s *UserStore) Generate(verb string, params []string) []string {
	if len(params) < 2 {
		return nil
	}
	username, realname := params[0], params[1]
	line := irc.USER + " " + username + " 0 * :" + realname
	s.log.Append(irc.NewEvent("", irc.USER, username+" 0 * :"+realname))
	return []string{line}
}

func (s *UserStore) Format(ev *irc.Event) string { return ev.String() }
func (s *UserStore) OnRemove() []string          { return nil }
