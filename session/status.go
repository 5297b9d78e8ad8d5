// Package session defines the lifecycle status codes shared by the
// Connection and the Handler, so neither has to import the other to agree
// on what a status transition means.
package session

import "time"

// Status codes for a session's lifecycle, reported by Connection's status
// callback and by the Handler's own negotiation logic.
const (
	NotConnected    = 0
	SocketOpen      = 1
	Connected       = 10
	UserDisconnect  = 100
	PeerReset       = 101
	OtherDisconnect = 102
	ConnectFailure  = 103
	AllNicksInUse   = 104
	BadPassword     = 105
)

// Status is a timestamped lifecycle transition.
type Status struct {
	Code    int
	Message string
	Time    time.Time
}

// New stamps a Status with the current time.
func New(code int, message string) Status {
	return Status{Code: code, Message: message, Time: time.Now()}
}

// String names well-known codes for logging, falling back to "unknown"
// for any code it doesn't recognize.
func (s Status) String() string {
	name, ok := names[s.Code]
	if !ok {
		name = "unknown"
	}
	if len(s.Message) == 0 {
		return name
	}
	return name + ": " + s.Message
}

var names = map[int]string{
	NotConnected:    "not-connected",
	SocketOpen:      "socket-open",
	Connected:       "connected",
	UserDisconnect:  "user-disconnect",
	PeerReset:       "peer-reset",
	OtherDisconnect: "other-disconnect",
	ConnectFailure:  "connect-failure",
	AllNicksInUse:   "all-nicks-in-use",
	BadPassword:     "bad-password",
}
