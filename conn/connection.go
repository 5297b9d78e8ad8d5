/*
Package conn owns the single TCP stream to an IRC server: line framing,
outbound flood control and the lifecycle status callback the session kernel
reacts to. It knows nothing about IRC semantics beyond line framing and the
PING/PONG/QUIT priority rule.
*/
package conn

import (
	"bytes"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	log15 "gopkg.in/inconshreveable/log15.v2"

	"github.com/pyircfs/pyircfs/session"
)

const (
	// readTimeout bounds each poll of the socket so the I/O loop can
	// notice a close request promptly.
	readTimeout = 200 * time.Millisecond
	// floodWindow is how far into the future the allowance cursor may
	// sit before a line is held back.
	floodWindow = 8 * time.Second
	// floodBase is the per-line cost charged against the allowance
	// cursor, independent of length.
	floodBase = 2100 * time.Millisecond
	// floodPerByte spreads an additional second of cost over this many
	// bytes of line length.
	floodPerByte = 120
	// maxLineLength is the payload limit (excluding CRLF) on outbound
	// lines, per RFC 1459/2812.
	maxLineLength = 510
)

// ErrNotStarted is returned by Send when the Connection is not running:
// it was never started, or it has already been closed.
var ErrNotStarted = errors.New("conn: not started")

// OnLine is invoked once per complete inbound line, CR stripped and LF
// removed.
type OnLine func(line string)

// OnStatus is invoked on every lifecycle transition.
type OnStatus func(status session.Status)

// Connection owns one TCP stream to an IRC server. The zero value is not
// usable; construct with New.
type Connection struct {
	log log15.Logger

	onLine   OnLine
	onStatus OnStatus

	mu        sync.Mutex
	sock      net.Conn
	queue     outQueue
	allowance time.Time
	running   bool
	closeOnce sync.Once
}

// New wraps an already-dialed socket. Dialing itself is the Handler's
// concern (it needs to report a ConnectionError distinct from a mid-session
// failure), so Connection takes ownership of a live net.Conn rather than an
// address.
func New(sock net.Conn, log log15.Logger, onLine OnLine, onStatus OnStatus) *Connection {
	if log == nil {
		log = log15.New()
	}
	return &Connection{
		log:      log.New("component", "connection"),
		sock:     sock,
		onLine:   onLine,
		onStatus: onStatus,
	}
}

// Start launches the I/O goroutine. It returns immediately; status
// transitions and inbound lines arrive via the callbacks given to New.
func (c *Connection) Start() {
	c.mu.Lock()
	c.running = true
	c.mu.Unlock()
	go c.loop()
}

// Send enqueues a line for delivery, without its trailing CRLF. Lines whose
// verb is PING, PONG or QUIT jump to the head of the queue.
func (c *Connection) Send(line string) error {
	if len(line) > maxLineLength {
		line = line[:maxLineLength]
	}

	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return ErrNotStarted
	}
	if c.queue.empty() {
		c.allowance = time.Now()
	}
	c.queue.push(line)
	c.mu.Unlock()
	return nil
}

// QueueDepth reports how many lines are currently queued for delivery.
func (c *Connection) QueueDepth() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queue.len()
}

// Close stops the I/O loop and closes the socket. Safe to call more than
// once and from any goroutine; only the first call has effect.
func (c *Connection) Close() {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.running = false
		c.mu.Unlock()
		c.sock.Close()
		c.report(session.New(session.UserDisconnect, "closed locally"))
	})
}

// loop is the sole goroutine that touches the socket's read side. It polls
// with a bounded timeout, accumulates inbound bytes across polls, frames
// complete lines, then gives the outbound queue one chance to send under
// the flood gate.
func (c *Connection) loop() {
	readBuf := make([]byte, 4096)
	var pending []byte

	for {
		c.mu.Lock()
		running := c.running
		c.mu.Unlock()
		if !running {
			return
		}

		c.sock.SetReadDeadline(time.Now().Add(readTimeout))
		n, err := c.sock.Read(readBuf)
		if n > 0 {
			pending = append(pending, readBuf[:n]...)
			pending = c.drainLines(pending)
		}
		if err != nil {
			if isTimeout(err) {
				c.trySend()
				continue
			}
			c.log.Debug("read failed, closing", "error", err)
			c.failAndClose(session.PeerReset, err.Error())
			return
		}
		if n == 0 {
			c.log.Debug("read returned no data, closing")
			c.failAndClose(session.PeerReset, "connection closed by peer")
			return
		}

		c.trySend()
	}
}

// drainLines splits buf on every LF, emitting each complete line (CR
// stripped) and returning whatever partial tail remains for the next poll
// to complete.
func (c *Connection) drainLines(buf []byte) []byte {
	for {
		i := bytes.IndexByte(buf, '\n')
		if i < 0 {
			return buf
		}
		c.emit(buf[:i])
		buf = buf[i+1:]
	}
}

// emit strips any stray CR before handing the line to the owner's
// callback.
func (c *Connection) emit(raw []byte) {
	line := strings.ReplaceAll(string(raw), "\r", "")
	if len(line) == 0 {
		return
	}
	if c.onLine != nil {
		c.onLine(line)
	}
}

// trySend sends at most one queued line, if the flood gate allows it.
func (c *Connection) trySend() {
	c.mu.Lock()
	if c.queue.empty() {
		c.mu.Unlock()
		return
	}
	now := time.Now()
	if !c.allowance.Before(now.Add(floodWindow)) {
		c.mu.Unlock()
		return
	}
	line, _ := c.queue.pop()
	cost := floodBase + time.Duration(len(line))*time.Second/floodPerByte
	if c.allowance.Before(now) {
		c.allowance = now
	}
	c.allowance = c.allowance.Add(cost)
	sock := c.sock
	c.mu.Unlock()

	if _, err := sock.Write([]byte(line + "\r\n")); err != nil {
		if isWouldBlock(err) {
			c.log.Debug("write would block, dropping line", "line", line)
			return
		}
		c.log.Debug("write failed, closing", "error", err)
		c.failAndClose(session.PeerReset, err.Error())
		return
	}
	c.log.Debug("sent line", "line", line)
}

// failAndClose tears the connection down once and reports the given status
// instead of the default user-disconnect Close reports.
func (c *Connection) failAndClose(code int, msg string) {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.running = false
		c.mu.Unlock()
		c.sock.Close()
		c.report(session.New(code, msg))
	})
}

func (c *Connection) report(status session.Status) {
	if c.onStatus != nil {
		c.onStatus(status)
	}
}

// isTimeout reports a net.Error-style timeout, used both for the read
// loop's poll deadline and as the closest Go equivalent of a transient
// would-block on send.
func isTimeout(err error) bool {
	type timeouter interface{ Timeout() bool }
	t, ok := err.(timeouter)
	return ok && t.Timeout()
}

func isWouldBlock(err error) bool {
	return isTimeout(err)
}
