package store

import (
	"testing"

	"github.com/pyircfs/pyircfs/irc"
)

func TestPrivmsgStore_OnlyKeepsMatchingSource(t *testing.T) {
	s := NewPrivmsgStore(1, &fakeSink{}, "alice")

	s.OnEvent(irc.NewEvent("alice!u@h", irc.PRIVMSG, "me :hi there"))
	s.OnEvent(irc.NewEvent("bob!u@h", irc.PRIVMSG, "me :unrelated"))

	if got := len(s.log.Events()); got != 1 {
		t.Fatalf("Expected only the matching source's event to be kept, got %d", got)
	}
}

func TestPrivmsgStore_CTCPVersionReply(t *testing.T) {
	s := NewPrivmsgStore(1, &fakeSink{}, "alice")
	ev := irc.NewEvent("alice!u@h", irc.PRIVMSG, "me :\x01VERSION\x01")

	lines := s.OnEvent(ev)
	if len(lines) != 1 {
		t.Fatalf("Expected a CTCP VERSION reply, got %v", lines)
	}
	want := irc.FormatCTCPReply("alice", irc.CTCPVersion, "pyircfs")
	if lines[0] != want {
		t.Errorf("Expected: %q, got: %q", want, lines[0])
	}
}

func TestPrivmsgStore_FollowsRename(t *testing.T) {
	s := NewPrivmsgStore(1, &fakeSink{}, "alice")
	s.OnEvent(irc.NewEvent("alice!u@h", irc.NICK, ":alice2"))

	if got := s.Target(); got != "alice2" {
		t.Errorf("Expected target to follow the rename, got %q", got)
	}
}

func TestPrivmsgStore_GenerateSplitsLongMessages(t *testing.T) {
	s := NewPrivmsgStore(1, &fakeSink{}, "alice")
	long := make([]byte, 1000)
	for i := range long {
		long[i] = 'a'
	}
	lines := s.Generate(irc.PRIVMSG, []string{string(long)})
	if len(lines) < 2 {
		t.Errorf("Expected a long message to split into multiple wire lines, got %d", len(lines))
	}
}
