package conn

import (
	"bufio"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/pyircfs/pyircfs/session"
)

// recorder collects lines and status transitions reported by a Connection
// under test, safe for concurrent use from the I/O goroutine.
type recorder struct {
	mu       sync.Mutex
	lines    []string
	statuses []session.Status
}

func (r *recorder) onLine(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, line)
}

func (r *recorder) onStatus(st session.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses = append(r.statuses, st)
}

func (r *recorder) lineCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.lines)
}

func (r *recorder) statusCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.statuses)
}

func (r *recorder) snapshot() ([]string, []session.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lines...), append([]session.Status(nil), r.statuses...)
}

// newTestConnection wires a Connection to one end of an in-memory pipe,
// returning the other end for the test to play server and the recorder
// tracking everything the Connection reported.
func newTestConnection(t *testing.T) (*Connection, net.Conn, *recorder) {
	t.Helper()
	client, server := net.Pipe()
	rec := &recorder{}
	c := New(client, nil, rec.onLine, rec.onStatus)
	return c, server, rec
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("Timed out waiting for condition.")
}

func TestConnection_SendQueuesAndFlushes(t *testing.T) {
	c, server, _ := newTestConnection(t)
	c.Start()
	defer c.Close()

	if err := c.Send("PRIVMSG #chan :hi"); err != nil {
		t.Fatal("Unexpected error from Send:", err)
	}

	server.SetReadDeadline(time.Now().Add(time.Second))
	reader := bufio.NewReader(server)
	got, err := reader.ReadString('\n')
	if err != nil {
		t.Fatal("Expected to read the sent line, got error:", err)
	}
	if want := "PRIVMSG #chan :hi\r\n"; got != want {
		t.Errorf("Expected: %q, got: %q", want, got)
	}
}

func TestConnection_SendBeforeStartFails(t *testing.T) {
	c, _, _ := newTestConnection(t)
	if err := c.Send("PING :x"); err != ErrNotStarted {
		t.Error("Expected ErrNotStarted before Start, got:", err)
	}
}

func TestConnection_ReceivesFramedLines(t *testing.T) {
	c, server, rec := newTestConnection(t)
	c.Start()
	defer c.Close()

	go func() {
		server.Write([]byte(":nick!u@h PRIVMSG #chan :hel"))
		server.Write([]byte("lo\r\n"))
	}()

	waitFor(t, 2*time.Second, func() bool { return rec.lineCount() > 0 })

	lines, _ := rec.snapshot()
	if len(lines) != 1 {
		t.Fatalf("Expected exactly 1 framed line, got %d: %v", len(lines), lines)
	}
	want := ":nick!u@h PRIVMSG #chan :hello"
	if lines[0] != want {
		t.Errorf("Expected: %q, got: %q", want, lines[0])
	}
}

func TestConnection_CloseReportsExactlyOnce(t *testing.T) {
	c, _, rec := newTestConnection(t)
	c.Start()

	c.Close()
	c.Close()

	_, statuses := rec.snapshot()
	if len(statuses) != 1 {
		t.Fatalf("Expected exactly 1 status report from two Close calls, got %d", len(statuses))
	}
	if statuses[0].Code != session.UserDisconnect {
		t.Errorf("Expected UserDisconnect, got %d", statuses[0].Code)
	}
}

func TestConnection_PeerCloseReportsPeerReset(t *testing.T) {
	c, server, rec := newTestConnection(t)
	c.Start()
	server.Close()

	waitFor(t, 2*time.Second, func() bool { return rec.statusCount() > 0 })

	_, statuses := rec.snapshot()
	if len(statuses) != 1 {
		t.Fatalf("Expected exactly 1 status report, got %d", len(statuses))
	}
	if statuses[0].Code != session.PeerReset {
		t.Errorf("Expected PeerReset, got %d", statuses[0].Code)
	}
}

func TestConnection_PriorityVerbsJumpSendQueue(t *testing.T) {
	c, server, _ := newTestConnection(t)
	c.Start()
	defer c.Close()

	c.Send("PRIVMSG #chan :slow")
	c.Send("QUIT :bye")

	server.SetReadDeadline(time.Now().Add(time.Second))
	reader := bufio.NewReader(server)
	got, err := reader.ReadString('\n')
	if err != nil {
		t.Fatal("Unexpected error:", err)
	}
	if want := "QUIT :bye\r\n"; got != want {
		t.Errorf("Expected QUIT to be sent first, got: %q", got)
	}
}
