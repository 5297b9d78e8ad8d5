package store

import "github.com/pyircfs/pyircfs/irc"

// whoisNumerics are the reply codes making up a WHOIS reply sequence.
var whoisNumerics = []string{
	"311", // RPL_WHOISUSER
	"312", // RPL_WHOISSERVER
	"313", // RPL_WHOISOPERATOR
	"317", // RPL_WHOISIDLE
	"318", // RPL_ENDOFWHOIS
	"319", // RPL_WHOISCHANNELS
	"330", // RPL_WHOISACCOUNT
	irc.ErrNoSuchNick,
}

// WhoisStore collects a WHOIS reply sequence and gives WHOIS a registered
// outbound target for `/commands/whois` writes and `mv nick
// /commands/whois`.
type WhoisStore struct {
	base
}

// NewWhoisStore constructs a WhoisStore.
func NewWhoisStore(id int, sink Sink) *WhoisStore {
	s := &WhoisStore{base: newBase(id, "whois", sink)}
	s.log.setFormatter(s.Format)
	return s
}

func (s *WhoisStore) DeclaredInbound() []string  { return whoisNumerics }
func (s *WhoisStore) DeclaredOutbound() []string { return []string{irc.WHOIS} }

func (s *WhoisStore) OnEvent(ev *irc.Event) []string {
	s.log.Append(ev)
	return nil
}

// Generate formats WHOIS <nick>.
func (s *WhoisStore) Generate(verb string, params []string) []string {
	if len(params) == 0 {
		return nil
	}
	target := params[0]
	s.log.Append(irc.NewEvent("", irc.WHOIS, ":"+target))
	return []string{irc.WHOIS + " " + target}
}

func (s *WhoisStore) Format(ev *irc.Event) string { return ev.String() }
func (s *WhoisStore) OnRemove() []string          { return nil }
