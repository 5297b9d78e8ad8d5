/*
Package handler implements the session kernel: the single owner of the
Connection, the event-store registry, and the session state machine. Every
filesystem operation that sends or reads history goes through a Handler.
*/
package handler

import (
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	log15 "gopkg.in/inconshreveable/log15.v2"

	"github.com/pyircfs/pyircfs/conn"
	"github.com/pyircfs/pyircfs/irc"
	"github.com/pyircfs/pyircfs/session"
	"github.com/pyircfs/pyircfs/store"
)

// Sentinel errors returned at the Handler boundary, per the ambient error
// stack: compared with errors.Is/errors.Cause, wrapped with
// github.com/pkg/errors at every package edge.
var (
	ErrNotConnected = errors.New("handler: not connected")
	ErrUnknownVerb  = errors.New("handler: unknown command verb")
)

// ConnectionError wraps a dial failure (DNS, TCP) returned by Connect,
// preserving the underlying cause for the mounting adapter or a
// /info/errors reader to display. Registration failures (every nickname
// rejected, bad password) happen after Connect has returned and surface
// only as status transitions (104, 105), never as a ConnectionError.
type ConnectionError struct {
	cause error
}

func (e *ConnectionError) Error() string { return "handler: connect failed: " + e.cause.Error() }
func (e *ConnectionError) Cause() error  { return e.cause }

// Identity is everything the Handler needs to register with the server.
// It is a plain struct: the CLI/config boundary adapter is responsible for
// populating it from flags or a TOML profile; the Handler itself never
// reads a file or a flag.
type Identity struct {
	Server    string // host[:port]
	Nicknames []string
	Username  string
	Realname  string
	Password  string
}

// dialFunc is substituted in tests to avoid a real socket.
type dialFunc func(network, address string) (net.Conn, error)

// Handler is the session kernel. The zero value is not usable; construct
// with New.
type Handler struct {
	log log15.Logger
	dial dialFunc

	mu           sync.Mutex
	conn         *conn.Connection
	status       session.Status
	statusWaiter chan session.Status

	nextID        int
	allStores     map[int]store.Store
	replyRoutes   map[string][]store.Store
	commandRoutes map[string][]store.Store
	privmsg       map[string]*store.PrivmsgStore // keyed by lowercased nick
	channels      map[string]*store.ChannelStore // keyed by lowercased channel name

	nickStore  *store.NickStore
	errorStore *store.ErrorStore
	rawStore   *store.RawStore
	modeStore  *store.ModeStore
	whoStore   *store.WhoStore

	identity Identity
}

// New constructs an unconnected Handler.
func New(log log15.Logger) *Handler {
	if log == nil {
		log = log15.New()
	}
	h := &Handler{
		log:           log.New("component", "handler"),
		dial:          net.Dial,
		status:        session.New(session.NotConnected, ""),
		statusWaiter:  make(chan session.Status, 1),
		allStores:     make(map[int]store.Store),
		replyRoutes:   make(map[string][]store.Store),
		commandRoutes: make(map[string][]store.Store),
		privmsg:       make(map[string]*store.PrivmsgStore),
		channels:      make(map[string]*store.ChannelStore),
	}
	h.registerSingletons()
	return h
}

// CurrentNick implements store.Sink.
func (h *Handler) CurrentNick() string {
	if h.nickStore == nil {
		return ""
	}
	return h.nickStore.CurrentNick()
}

// Status returns the current session status.
func (h *Handler) Status() session.Status {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.status
}

// registerSingletons wires the one-of-a-kind stores (ping, quit, join,
// part, user, pass, nick, mode, who, motd, whois, error, raw) into the
// routing tables. Demand-created stores (privmsg, channel) are added by
// privmsgFor/channelFor as they're needed.
func (h *Handler) registerSingletons() {
	for _, s := range []store.Store{
		store.NewPingStore(h.newID(), h),
		store.NewQuitStore(h.newID(), h),
		store.NewJoinStore(h.newID(), h),
		store.NewPartStore(h.newID(), h),
		store.NewUserStore(h.newID(), h),
		store.NewPassStore(h.newID(), h),
		store.NewMotdStore(h.newID(), h),
		store.NewWhoisStore(h.newID(), h),
	} {
		h.addStore(s)
	}

	mode := store.NewModeStore(h.newID(), h)
	h.modeStore = mode
	h.addStore(mode)

	who := store.NewWhoStore(h.newID(), h)
	h.whoStore = who
	h.addStore(who)

	nick := store.NewNickStore(h.newID(), h, nil)
	h.nickStore = nick
	h.addStore(nick)

	errStore := store.NewErrorStore(h.newID(), h)
	h.errorStore = errStore
	h.addStore(errStore)

	raw := store.NewRawStore(h.newID(), h)
	h.rawStore = raw
	h.replyRoutes[irc.RAW] = append(h.replyRoutes[irc.RAW], raw)
	h.commandRoutes["RAW"] = append(h.commandRoutes["RAW"], raw)
	h.allStores[raw.ID()] = raw
}

func (h *Handler) newID() int {
	h.nextID++
	return h.nextID
}

// addStore wires s into allStores and both routing tables under every
// command it declares interest in.
func (h *Handler) addStore(s store.Store) {
	h.allStores[s.ID()] = s
	for _, cmd := range s.DeclaredInbound() {
		h.replyRoutes[cmd] = append(h.replyRoutes[cmd], s)
	}
	for _, cmd := range s.DeclaredOutbound() {
		h.commandRoutes[cmd] = append(h.commandRoutes[cmd], s)
	}
}

// removeStore detaches s from every table it was registered under.
func (h *Handler) removeStore(s store.Store) {
	delete(h.allStores, s.ID())
	for _, cmd := range s.DeclaredInbound() {
		h.replyRoutes[cmd] = removeFromSlice(h.replyRoutes[cmd], s)
	}
	for _, cmd := range s.DeclaredOutbound() {
		h.commandRoutes[cmd] = removeFromSlice(h.commandRoutes[cmd], s)
	}
}

func removeFromSlice(stores []store.Store, target store.Store) []store.Store {
	out := stores[:0]
	for _, s := range stores {
		if s.ID() != target.ID() {
			out = append(out, s)
		}
	}
	return out
}

// Connect dials the server, starts the Connection, and blocks until the
// session leaves state 0 (i.e. the socket opened, or dialing/registration
// failed outright). On success it returns once the socket is open; full
// registration (through to status 10) continues asynchronously, driven by
// NickStore as 001/433/437 arrive.
func (h *Handler) Connect(identity Identity) error {
	h.mu.Lock()
	h.identity = identity
	h.nickStore.Reset(identity.Nicknames)
	h.mu.Unlock()

	addr := identity.Server
	if !strings.Contains(addr, ":") {
		addr = addr + ":6667"
	}

	sock, err := h.dial("tcp", addr)
	if err != nil {
		h.transition(session.New(session.ConnectFailure, err.Error()))
		return &ConnectionError{cause: err}
	}

	c := conn.New(sock, h.log, h.onLine, h.onConnStatus)

	h.mu.Lock()
	h.conn = c
	h.status = session.New(session.SocketOpen, "")
	h.mu.Unlock()

	c.Start()

	if len(identity.Password) > 0 {
		c.Send(irc.PASS + " " + identity.Password)
	}
	first := h.nickStore.FirstCandidate()
	c.Send(irc.NICK + " " + first)
	c.Send(fmt.Sprintf("%s %s 0 * :%s", irc.USER, identity.Username, identity.Realname))

	return nil
}

// Reconnect records the channels joined at disconnect time, reconnects
// with the same identity, and re-issues JOIN for each once registration
// completes.
func (h *Handler) Reconnect() error {
	h.mu.Lock()
	var rejoin []string
	for name, ch := range h.channels {
		if ch.Joined() {
			rejoin = append(rejoin, name)
		}
	}
	identity := h.identity
	h.mu.Unlock()

	if err := h.Connect(identity); err != nil {
		return err
	}

	go func() {
		if !h.WaitConnected(30 * time.Second) {
			return
		}
		for _, ch := range rejoin {
			h.SendCommand(irc.JOIN, []string{ch})
		}
	}()
	return nil
}

// WaitConnected blocks until the session reaches status 10 or the timeout
// elapses, returning whether it connected in time.
func (h *Handler) WaitConnected(timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if h.Status().Code == session.Connected {
			return true
		}
		time.Sleep(20 * time.Millisecond)
	}
	return false
}

// Close issues the unmount handshake QUIT (if the session is live) and
// tears the Connection down.
func (h *Handler) Close(reason string) {
	h.mu.Lock()
	c := h.conn
	live := h.status.Code == session.SocketOpen || h.status.Code == session.Connected
	h.mu.Unlock()

	if c == nil {
		return
	}
	if live {
		c.Send(irc.FormatQuit(reason))
	}
	c.Close()
}

// onLine is the Connection's inbound-line callback: parse, then route.
func (h *Handler) onLine(line string) {
	ev, err := irc.Line(line)
	if err != nil {
		h.log.Debug("dropping malformed line", "line", line, "error", err)
		return
	}
	h.dispatch(ev)
}

// onConnStatus is the Connection's status callback.
func (h *Handler) onConnStatus(st session.Status) {
	h.transition(st)
}

func (h *Handler) transition(st session.Status) {
	h.mu.Lock()
	h.status = st
	h.mu.Unlock()
	h.log.Info("status transition", "status", st.String())
	select {
	case h.statusWaiter <- st:
	default:
	}
}

// dispatch routes one parsed inbound Event to its stores, demand-creating
// a target store first where the spec requires it (JOIN, PRIVMSG/NOTICE).
func (h *Handler) dispatch(ev *irc.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.checkErrorTransition(ev)
	defer h.checkNickTransition()

	switch ev.Command {
	case irc.JOIN:
		args := ev.Args()
		if len(args) > 0 {
			h.dispatchOne(ev, h.channelFor(args[0]))
		}

	case irc.MODE:
		h.dispatchOne(ev, h.modeStore)
		args := ev.Args()
		if len(args) > 0 && irc.IsChannel(args[0]) {
			if s, ok := h.channels[strings.ToLower(args[0])]; ok {
				h.dispatchOne(ev, s)
			}
		}

	case irc.PART, irc.KICK:
		// Channel-scoped: routed only to the one named channel, never
		// broadcast, since ChannelStore.OnEvent applies these blindly
		// without checking the channel name itself.
		args := ev.Args()
		if len(args) > 0 {
			if s, ok := h.channels[strings.ToLower(args[0])]; ok {
				h.dispatchOne(ev, s)
			}
		}

	case irc.QUIT:
		// Not channel-scoped on the wire: broadcast, each ChannelStore
		// checks its own membership before acting.
		for _, s := range h.channels {
			h.dispatchOne(ev, s)
		}

	case irc.RplWhoreply:
		// WhoStore keeps its own cross-channel accumulator in addition to
		// each ChannelStore's per-member view, so both receive it.
		h.dispatchOne(ev, h.whoStore)
		if name, ok := channelArg(ev); ok {
			if s, ok := h.channels[strings.ToLower(name)]; ok {
				h.dispatchOne(ev, s)
			}
		}

	case irc.RplNamreply, irc.RplChannelmode, irc.RplTopic,
		irc.RplBanlist, irc.RplEndofnames,
		irc.ErrInviteOnlyChan, irc.ErrBannedFromChan, irc.ErrBadChannelKey, irc.ErrChannelIsFull:
		// Channel-scoped replies to our own WHO/MODE/NAMES/JOIN requests;
		// ChannelStore applies these without checking the channel name
		// itself, so route only to the one channel named in the reply.
		// ModeStore also records 324, and ErrorStore the join refusals.
		switch ev.Command {
		case irc.RplChannelmode:
			h.dispatchOne(ev, h.modeStore)
		case irc.ErrInviteOnlyChan, irc.ErrBannedFromChan, irc.ErrBadChannelKey, irc.ErrChannelIsFull:
			h.dispatchOne(ev, h.errorStore)
		}
		if name, ok := channelArg(ev); ok {
			if s, ok := h.channels[strings.ToLower(name)]; ok {
				h.dispatchOne(ev, s)
			}
		}

	case irc.PRIVMSG, irc.NOTICE:
		args := ev.Args()
		if len(args) == 0 {
			break
		}
		target := args[0]
		if !irc.IsChannel(target) {
			target = ev.Nick()
		}
		var s store.Store
		if irc.IsChannel(target) {
			s = h.channelFor(target)
		} else {
			s = h.privmsgFor(target)
		}
		h.dispatchOne(ev, s)

	default:
		h.routeToAll(ev, h.replyRoutes[ev.Command])
	}

	// Every inbound event, whichever case routed it, reaches the wildcard
	// sinks too.
	h.routeToAll(ev, h.wildcardSinks())
}

// channelArg returns the first argument of ev that looks like a channel
// name, used to route a channel-scoped numeric reply to the one
// ChannelStore it belongs to.
func channelArg(ev *irc.Event) (string, bool) {
	for _, a := range ev.Args() {
		if irc.IsChannel(a) {
			return a, true
		}
	}
	return "", false
}

// wildcardSinks returns every store registered under the "*" pseudo-code.
func (h *Handler) wildcardSinks() []store.Store {
	return h.replyRoutes[irc.RAW]
}

func (h *Handler) routeToAll(ev *irc.Event, stores []store.Store) {
	for _, s := range stores {
		h.dispatchOne(ev, s)
	}
}

// dispatchOne calls a single store's OnEvent, recovering from a panic so a
// single misbehaving store can never corrupt the registry: it is removed
// and the failure is recorded through the error sink.
func (h *Handler) dispatchOne(ev *irc.Event, s store.Store) {
	if s == nil {
		return
	}
	var lines []string
	func() {
		defer func() {
			if r := recover(); r != nil {
				h.log.Warn("store panicked, removing", "store", s.Name(), "recover", r)
				h.errorStore.OnEvent(irc.NewInformational(irc.ERROR, fmt.Sprintf(":store %s failed: %v", s.Name(), r)))
				h.removeStore(s)
			}
		}()
		lines = s.OnEvent(ev)
	}()
	h.enqueueAll(lines)
}

// checkErrorTransition maps a server ERROR line onto a session status
// transition. This is Handler-level, not ErrorStore-level, because it
// needs session state (are we still pre-registration?) that only the
// Handler tracks.
func (h *Handler) checkErrorTransition(ev *irc.Event) {
	if ev.Command != irc.ERROR {
		return
	}

	preRegistration := h.status.Code == session.SocketOpen
	msg := ev.ParamsEndpart
	if len(msg) == 0 {
		msg = ev.Params
	}

	if preRegistration {
		if strings.Contains(strings.ToLower(msg), "password mismatch") {
			h.statusLocked(session.BadPassword, msg)
		} else {
			h.statusLocked(session.ConnectFailure, msg)
		}
		if h.conn != nil {
			h.conn.Close()
		}
		return
	}

	h.statusLocked(session.OtherDisconnect, msg)
	if h.conn != nil {
		h.conn.Close()
	}
}

// checkNickTransition promotes the session status once NickStore reports
// the welcome numeric seen, or fails it once every candidate nickname has
// been rejected. Caller must hold h.mu.
func (h *Handler) checkNickTransition() {
	if h.nickStore == nil {
		return
	}
	if h.nickStore.Connected() {
		if h.status.Code != session.Connected {
			h.statusLocked(session.Connected, "")
		}
		return
	}
	if h.nickStore.ExhaustedCandidates() && h.status.Code == session.SocketOpen {
		h.statusLocked(session.AllNicksInUse, "all candidate nicknames rejected")
		if h.conn != nil {
			h.conn.Close()
		}
	}
}

// statusLocked sets status while h.mu is already held by the caller.
func (h *Handler) statusLocked(code int, msg string) {
	h.status = session.New(code, msg)
	h.log.Info("status transition", "status", h.status.String())
}

func (h *Handler) enqueueAll(lines []string) {
	if h.conn == nil {
		return
	}
	for _, line := range lines {
		h.conn.Send(line)
	}
}

// privmsgFor returns the PrivmsgStore for nick, demand-creating it if
// necessary. Caller must hold h.mu.
func (h *Handler) privmsgFor(nick string) *store.PrivmsgStore {
	key := strings.ToLower(nick)
	if s, ok := h.privmsg[key]; ok {
		return s
	}
	s := store.NewPrivmsgStore(h.newID(), h, nick)
	h.privmsg[key] = s
	h.addStore(s)
	return s
}

// channelFor returns the ChannelStore for name, demand-creating it if
// necessary. Caller must hold h.mu.
func (h *Handler) channelFor(name string) *store.ChannelStore {
	key := strings.ToLower(name)
	if s, ok := h.channels[key]; ok {
		return s
	}
	s := store.NewChannelStore(h.newID(), h, name)
	h.channels[key] = s
	h.addStore(s)
	return s
}

// LookupPrivmsg finds an existing privmsg store without creating one.
func (h *Handler) LookupPrivmsg(nick string) (*store.PrivmsgStore, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.privmsg[strings.ToLower(nick)]
	return s, ok
}

// LookupChannel finds an existing channel store without creating one.
func (h *Handler) LookupChannel(name string) (*store.ChannelStore, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.channels[strings.ToLower(name)]
	return s, ok
}

// Channels returns every currently known channel store, in no particular
// order.
func (h *Handler) Channels() []*store.ChannelStore {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*store.ChannelStore, 0, len(h.channels))
	for _, c := range h.channels {
		out = append(out, c)
	}
	return out
}

// Conversations returns every currently known privmsg store, in no
// particular order.
func (h *Handler) Conversations() []*store.PrivmsgStore {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*store.PrivmsgStore, 0, len(h.privmsg))
	for _, c := range h.privmsg {
		out = append(out, c)
	}
	return out
}

// JoinChannel demand-creates the channel store for name and issues JOIN,
// the mkdir(/names/<#chan>) operation.
func (h *Handler) JoinChannel(name string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.status.Code != session.Connected {
		return ErrNotConnected
	}
	h.channelFor(name)
	h.enqueueAll([]string{irc.FormatJoin(name)})
	return nil
}

// RemoveStore detaches a demand-created store (privmsg or channel) and
// runs its OnRemove handler. This is the unlink(<path>) operation.
func (h *Handler) RemoveStore(id int) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.allStores[id]
	if !ok {
		return false
	}

	switch v := s.(type) {
	case *store.ChannelStore:
		delete(h.channels, strings.ToLower(v.Target()))
	case *store.PrivmsgStore:
		delete(h.privmsg, strings.ToLower(v.Target()))
	}

	h.removeStore(s)
	h.enqueueAll(s.OnRemove())
	return true
}

// SendCommand issues a command for the given verb and params, rejecting it
// if the session state disallows the verb outside registration.
func (h *Handler) SendCommand(verb string, params []string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	verb = strings.ToUpper(verb)
	if h.status.Code != session.Connected {
		switch verb {
		case irc.PASS, irc.USER, irc.NICK:
		default:
			return ErrNotConnected
		}
	}

	stores, ok := h.commandRoutes[verb]
	if !ok || len(stores) == 0 {
		return errors.Wrapf(ErrUnknownVerb, "verb %q", verb)
	}
	for _, s := range stores {
		h.enqueueAll(s.Generate(verb, params))
	}
	return nil
}

// SendMessage resolves or demand-creates the privmsg/channel store for
// target and sends text through it as kind (PRIVMSG or NOTICE).
func (h *Handler) SendMessage(target, text, kind string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.status.Code != session.Connected {
		return ErrNotConnected
	}

	var s store.Store
	if irc.IsChannel(target) {
		s = h.channelFor(target)
	} else {
		s = h.privmsgFor(target)
	}
	h.enqueueAll(s.Generate(kind, []string{text}))
	return nil
}

// EnsureConversation demand-creates (without sending anything) the
// privmsg store for nick, the create(/<nick>) filesystem operation.
func (h *Handler) EnsureConversation(nick string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.privmsgFor(nick)
}

// RemoveConversation detaches the privmsg store for nick, if any.
func (h *Handler) RemoveConversation(nick string) bool {
	h.mu.Lock()
	s, ok := h.privmsg[strings.ToLower(nick)]
	h.mu.Unlock()
	if !ok {
		return false
	}
	return h.RemoveStore(s.ID())
}

// RemoveChannel detaches the channel store for name, if any, sending PART
// via its OnRemove handler.
func (h *Handler) RemoveChannel(name string) bool {
	h.mu.Lock()
	s, ok := h.channels[strings.ToLower(name)]
	h.mu.Unlock()
	if !ok {
		return false
	}
	return h.RemoveStore(s.ID())
}

// infoStoreNames lists the fixed, non-channel stores visible under
// /info/<name> and /commands/<verb> (where they also have an outbound
// form).
var infoStoreNames = []string{"errors", "raw", "who", "motd", "whois", "mode", "nick", "join", "part", "quit"}

// InfoStoreNames returns the names of the fixed informational stores.
func (h *Handler) InfoStoreNames() []string {
	out := make([]string, len(infoStoreNames))
	copy(out, infoStoreNames)
	return out
}

// CommandVerbs returns every verb currently registered in commandRoutes,
// the set of valid /commands/<verb> and rename(src, /commands/<verb>)
// targets.
func (h *Handler) CommandVerbs() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, 0, len(h.commandRoutes))
	for verb := range h.commandRoutes {
		out = append(out, verb)
	}
	return out
}

// StoreByName finds one of the fixed singleton stores by its display
// name, for the /info/<name> and /commands/<verb> read paths.
func (h *Handler) StoreByName(name string) (store.Store, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, s := range h.allStores {
		if s.Name() == name {
			return s, true
		}
	}
	return nil, false
}

// ChannelSnapshot renders a synthesized metadata block for /info/<#chan>.
func (h *Handler) ChannelSnapshot(name string) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.channels[strings.ToLower(name)]
	if !ok {
		return "", false
	}
	var b strings.Builder
	fmt.Fprintf(&b, "channel: %s\n", name)
	fmt.Fprintf(&b, "joined: %v\n", s.Joined())
	fmt.Fprintf(&b, "topic: %s\n", s.Topic())
	fmt.Fprintf(&b, "modes: %s\n", s.Modes())
	fmt.Fprintf(&b, "bans: %s\n", strings.Join(s.Bans(), ", "))
	members := s.Members()
	fmt.Fprintf(&b, "members: %d\n", len(members))
	return b.String(), true
}

// MemberSnapshot renders a synthesized per-member info block for
// /names/<#chan>/<nick>.
func (h *Handler) MemberSnapshot(channel, nick string) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.channels[strings.ToLower(channel)]
	if !ok {
		return "", false
	}
	for _, m := range s.Members() {
		if strings.EqualFold(m.Nick, nick) {
			var b strings.Builder
			fmt.Fprintf(&b, "nick: %s\n", m.Nick)
			fmt.Fprintf(&b, "user: %s\n", m.User)
			fmt.Fprintf(&b, "host: %s\n", m.Host)
			fmt.Fprintf(&b, "server: %s\n", m.Server)
			fmt.Fprintf(&b, "realname: %s\n", m.Realname)
			fmt.Fprintf(&b, "op: %v\n", m.Op)
			fmt.Fprintf(&b, "voice: %v\n", m.Voice)
			fmt.Fprintf(&b, "away: %v\n", m.Away)
			fmt.Fprintf(&b, "banned: %v\n", s.IsBanned(fmt.Sprintf("%s!%s@%s", m.Nick, m.User, m.Host)))
			return b.String(), true
		}
	}
	return "", false
}

// MemberNames lists the member nicks of an existing channel, for
// readdir(/names/<#chan>).
func (h *Handler) MemberNames(channel string) ([]string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.channels[strings.ToLower(channel)]
	if !ok {
		return nil, false
	}
	members := s.Members()
	names := make([]string, len(members))
	for i, m := range members {
		names[i] = m.Nick
	}
	return names, true
}

// StatusSnapshot renders the session status for /info/status.
func (h *Handler) StatusSnapshot() string {
	st := h.Status()
	return fmt.Sprintf("code: %d\nmessage: %s\nstatus: %s\ntime: %s\n",
		st.Code, st.Message, st.String(), st.Time.Format(time.RFC3339))
}

// ConversationNames lists every known privmsg/channel target name, for
// readdir("/").
func (h *Handler) ConversationNames() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, 0, len(h.privmsg)+len(h.channels))
	for _, s := range h.privmsg {
		out = append(out, s.Target())
	}
	for _, s := range h.channels {
		out = append(out, s.Target())
	}
	return out
}

// Conversation resolves an existing privmsg or channel store by target
// name, the lookup behind read/getattr on "/<name>".
func (h *Handler) Conversation(name string) (store.Store, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if s, ok := h.channels[strings.ToLower(name)]; ok {
		return s, true
	}
	if s, ok := h.privmsg[strings.ToLower(name)]; ok {
		return s, true
	}
	return nil, false
}

// QueueDepth reports how many lines are currently queued on the
// Connection, used to decide whether the filesystem write path should
// pause.
func (h *Handler) QueueDepth() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conn == nil {
		return 0
	}
	return h.conn.QueueDepth()
}
