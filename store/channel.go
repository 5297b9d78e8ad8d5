package store

import (
	"sort"
	"strings"

	"github.com/pyircfs/pyircfs/irc"
)

// Member is one channel participant's known state, built up from NAMES
// (353), WHO (352) and MODE tracking.
type Member struct {
	Nick     string
	Host     string
	User     string
	Server   string
	Realname string
	Hopcount int
	Op       bool
	Voice    bool
	Away     bool
}

// ChannelStore is a PrivmsgStore specialized for a channel target: on top
// of the private-conversation message log it tracks membership, topic,
// channel modes and bans, and defers outgoing messages until the channel
// has actually been joined.
type ChannelStore struct {
	PrivmsgStore

	members  map[string]*Member // keyed by lowercased nick
	topic    string
	modes    string
	bans     []string
	joined   bool
	joinSent bool
	pending  []string
}

// NewChannelStore constructs a ChannelStore for the given channel name.
func NewChannelStore(id int, sink Sink, channel string) *ChannelStore {
	s := &ChannelStore{
		PrivmsgStore: *NewPrivmsgStore(id, sink, channel),
		members:      make(map[string]*Member),
	}
	s.log.setFormatter(s.Format)
	return s
}

// Joined reports whether the own JOIN for this channel has landed.
func (s *ChannelStore) Joined() bool { return s.joined }

// Topic is the channel's last known topic.
func (s *ChannelStore) Topic() string { return s.topic }

// Modes is the channel's last known mode string, as recorded by 324.
func (s *ChannelStore) Modes() string { return s.modes }

// IsBanned reports whether hostmask (nick!user@host) matches any ban mask
// currently on record for this channel, using irc.Mask's ?/* wildcard
// matching rather than plain string equality.
func (s *ChannelStore) IsBanned(hostmask string) bool {
	for _, b := range s.bans {
		if irc.Mask(b).Match(irc.Host(hostmask)) {
			return true
		}
	}
	return false
}

// Bans is a snapshot of the ban mask list.
func (s *ChannelStore) Bans() []string {
	out := make([]string, len(s.bans))
	copy(out, s.bans)
	return out
}

// Members is a snapshot of the member map, sorted by nick for stable
// directory listings.
func (s *ChannelStore) Members() []*Member {
	out := make([]*Member, 0, len(s.members))
	for _, m := range s.members {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nick < out[j].Nick })
	return out
}

func (s *ChannelStore) member(nick string) *Member {
	return s.members[strings.ToLower(nick)]
}

func (s *ChannelStore) setMember(m *Member) {
	s.members[strings.ToLower(m.Nick)] = m
}

func (s *ChannelStore) removeMember(nick string) {
	delete(s.members, strings.ToLower(nick))
}

func (s *ChannelStore) DeclaredInbound() []string {
	return []string{
		irc.JOIN, irc.PART, irc.MODE, irc.KICK, irc.QUIT,
		irc.PRIVMSG, irc.NOTICE,
		irc.RplNamreply, irc.RplWhoreply, irc.RplChannelmode, irc.RplTopic,
		irc.RplBanlist, irc.RplEndofnames,
		irc.ErrInviteOnlyChan, irc.ErrBannedFromChan, irc.ErrBadChannelKey,
		irc.ErrChannelIsFull,
	}
}

// OnEvent implements the channel state machine described by the mode
// parsing and membership rules: most numerics here are consumed into
// state without being appended to the viewable event log, so a read of
// the channel file shows conversation, not protocol noise.
func (s *ChannelStore) OnEvent(ev *irc.Event) []string {
	switch ev.Command {
	case irc.JOIN:
		return s.onJoin(ev)
	case irc.PART:
		s.onPart(ev)
		return nil
	case irc.KICK:
		s.onKick(ev)
		return nil
	case irc.QUIT:
		s.onQuit(ev)
		return nil
	case irc.MODE:
		s.onMode(ev)
		return nil
	case irc.RplNamreply:
		s.onNames(ev)
		return nil
	case irc.RplWhoreply:
		s.onWho(ev)
		return nil
	case irc.RplChannelmode:
		args := ev.Args()
		if len(args) >= 3 {
			s.modes = strings.Join(args[2:], " ")
		}
		return nil
	case irc.RplTopic:
		s.topic = ev.ParamsEndpart
		return nil
	case irc.RplBanlist:
		args := ev.Args()
		if len(args) >= 3 {
			s.bans = append(s.bans, args[2])
		}
		return nil
	case irc.ErrInviteOnlyChan, irc.ErrBannedFromChan, irc.ErrBadChannelKey, irc.ErrChannelIsFull:
		s.joinSent = false
		s.pending = nil
		return nil
	case irc.PRIVMSG, irc.NOTICE:
		s.log.Append(ev)
		if ev.Command == irc.PRIVMSG && ev.IsCTCP() {
			tag, _ := ev.UnpackCTCP()
			if tag == irc.CTCPVersion {
				return []string{irc.FormatCTCPReply(ev.Nick(), irc.CTCPVersion, "pyircfs")}
			}
		}
		return nil
	}
	return nil
}

// onJoin handles both our own JOIN landing (which flushes the
// pending-message queue and kicks off the post-join info fetch) and a
// fellow member's JOIN (which just adds them).
func (s *ChannelStore) onJoin(ev *irc.Event) []string {
	nick := ev.Nick()
	if strings.EqualFold(nick, s.sink.CurrentNick()) {
		s.joined = true
		s.joinSent = false
		s.log.Append(ev)

		var toSend []string
		for _, line := range s.pending {
			toSend = append(toSend, irc.FormatPrivmsg(s.target, line)...)
		}
		s.pending = nil
		toSend = append(toSend,
			irc.WHO+" "+s.target,
			irc.MODE+" "+s.target,
			irc.MODE+" "+s.target+" b",
		)
		return toSend
	}

	s.setMember(&Member{Nick: nick, Host: hostOf(ev.Prefix), User: userOf(ev.Prefix)})
	s.log.Append(ev)
	return nil
}

func (s *ChannelStore) onPart(ev *irc.Event) {
	nick := ev.Nick()
	s.log.Append(ev)
	if strings.EqualFold(nick, s.sink.CurrentNick()) {
		s.joined = false
		s.members = make(map[string]*Member)
		return
	}
	s.removeMember(nick)
}

func (s *ChannelStore) onKick(ev *irc.Event) {
	args := ev.Args()
	if len(args) < 2 {
		return
	}
	victim := args[1]
	s.log.Append(ev)
	if strings.EqualFold(victim, s.sink.CurrentNick()) {
		s.joined = false
		s.members = make(map[string]*Member)
		return
	}
	s.removeMember(victim)
}

func (s *ChannelStore) onQuit(ev *irc.Event) {
	nick := ev.Nick()
	if s.member(nick) == nil {
		return
	}
	s.removeMember(nick)
	s.log.Append(ev)
}

// onNames parses a 353 NAMREPLY: space-separated nicks, each optionally
// prefixed with @ (op) or + (voice).
func (s *ChannelStore) onNames(ev *irc.Event) {
	for _, raw := range strings.Fields(ev.ParamsEndpart) {
		op, voice := false, false
		nick := raw
		for len(nick) > 0 && (nick[0] == '@' || nick[0] == '+') {
			if nick[0] == '@' {
				op = true
			} else {
				voice = true
			}
			nick = nick[1:]
		}
		m := s.member(nick)
		if m == nil {
			m = &Member{Nick: nick}
		}
		m.Op, m.Voice = op, voice
		s.setMember(m)
	}
}

// onWho parses a 352 WHOREPLY: own-nick channel user host server nick
// flags hopcount+realname.
func (s *ChannelStore) onWho(ev *irc.Event) {
	args := ev.Args()
	if len(args) < 7 {
		return
	}
	user, host, srv, nick, flags := args[2], args[3], args[4], args[5], args[6]
	m := s.member(nick)
	if m == nil {
		m = &Member{Nick: nick}
	}
	m.User, m.Host, m.Server = user, host, srv
	m.Away = strings.Contains(flags, "G")
	m.Op = m.Op || strings.Contains(flags, "@")
	m.Voice = m.Voice || strings.Contains(flags, "+")
	if len(args) >= 8 {
		rest := args[7]
		if i := strings.IndexByte(rest, ' '); i >= 0 {
			m.Realname = rest[i+1:]
		}
	}
	s.setMember(m)
}

// modeAddParamsPlus and modeAddParamsMinus are the flags that consume a
// parameter depending on the sign in effect when they're encountered.
const (
	modeAddParamsPlus  = "abehIkLloqv"
	modeAddParamsMinus = "abehIoqv"
)

// onMode walks a MODE line's flag string left to right, tracking the
// current sign, and applies op/voice/ban changes. Parameter-consuming
// flags differ by sign; at the first flag whose parameter would run past
// the end of params, parsing stops silently and later flags are ignored.
func (s *ChannelStore) onMode(ev *irc.Event) {
	s.log.Append(ev)

	args := ev.Args()
	if len(args) < 2 {
		return
	}
	flags := args[1]
	params := args[2:]
	pi := 0

	sign := byte('+')
	for i := 0; i < len(flags); i++ {
		f := flags[i]
		if f == '+' || f == '-' {
			sign = f
			continue
		}

		takesParam := false
		if sign == '+' {
			takesParam = strings.IndexByte(modeAddParamsPlus, f) >= 0
		} else {
			takesParam = strings.IndexByte(modeAddParamsMinus, f) >= 0
		}

		var param string
		if takesParam {
			if pi >= len(params) {
				break
			}
			param = params[pi]
			pi++
		}

		switch f {
		case 'o':
			if m := s.member(param); m != nil {
				m.Op = sign == '+'
			}
		case 'v':
			if m := s.member(param); m != nil {
				m.Voice = sign == '+'
			}
		case 'b':
			if sign == '+' {
				s.addBan(param)
			} else {
				s.removeBan(param)
			}
		}
	}
}

func (s *ChannelStore) addBan(mask string) {
	for _, b := range s.bans {
		if b == mask {
			return
		}
	}
	s.bans = append(s.bans, mask)
}

func (s *ChannelStore) removeBan(mask string) {
	for i, b := range s.bans {
		if b == mask {
			s.bans = append(s.bans[:i], s.bans[i+1:]...)
			return
		}
	}
}

// Generate sends a message to the channel, deferring to the pending queue
// (and requesting a JOIN, once) if the channel hasn't been joined yet.
func (s *ChannelStore) Generate(verb string, params []string) []string {
	if len(params) == 0 || len(params[0]) == 0 {
		return nil
	}

	if !s.joined {
		lines := []string{}
		if !s.joinSent {
			s.joinSent = true
			lines = append(lines, irc.FormatJoin(s.target))
		}
		s.pending = append(s.pending, params[0])
		return lines
	}

	return s.PrivmsgStore.Generate(verb, params)
}

func (s *ChannelStore) Format(ev *irc.Event) string {
	return s.PrivmsgStore.Format(ev)
}

// OnRemove leaves the channel: it sends PART if the channel is currently
// joined, and nothing otherwise.
func (s *ChannelStore) OnRemove() []string {
	if !s.joined {
		return nil
	}
	return []string{irc.FormatPart(s.target)}
}

func hostOf(prefix string) string {
	_, _, h := irc.Split(prefix)
	return h
}

func userOf(prefix string) string {
	_, u, _ := irc.Split(prefix)
	return u
}
