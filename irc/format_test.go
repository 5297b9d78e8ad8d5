package irc

import (
	"strings"
	"testing"
)

func TestFormatPrivmsg_Short(t *testing.T) {
	lines := FormatPrivmsg("#chan", "hello there")
	if len(lines) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(lines))
	}
	expect := "PRIVMSG #chan :hello there"
	if lines[0] != expect {
		t.Errorf("Expected: %s, got: %s", expect, lines[0])
	}
}

func TestFormatPrivmsg_Split(t *testing.T) {
	header := "PRIVMSG #chan :"
	s1 := strings.Repeat("a", maxLineLength)
	s2 := strings.Repeat("b", maxLineLength)
	s3 := strings.Repeat("c", 300)

	lines := FormatPrivmsg("#chan", s1+s2+s3)
	var total int
	for _, l := range lines {
		total += len(l)
	}
	expect := len(header)*len(lines) + len(s1) + len(s2) + len(s3)
	if total != expect {
		t.Errorf("Expected total length %d, got %d", expect, total)
	}
	for _, l := range lines {
		if len(l) > maxLineLength {
			t.Errorf("Line exceeds maxLineLength: %d", len(l))
		}
	}
}

func TestFormatPrivmsg_SplitsOnSpace(t *testing.T) {
	header := "PRIVMSG #chan :"
	s1 := strings.Repeat("a", maxLineLength-len(header)-splitBackward+1) + " "
	s2 := strings.Repeat("b", maxLineLength-len(header)-1)

	lines := FormatPrivmsg("#chan", s1+s2)
	if len(lines) != 2 {
		t.Fatalf("Expected the message to split into 2 lines, got %d", len(lines))
	}
	if strings.HasSuffix(lines[0], " ") {
		t.Error("Expected the trailing space to be dropped at the split point.")
	}
}

func TestFormatNotice(t *testing.T) {
	lines := FormatNotice("nick", "a message")
	expect := "NOTICE nick :a message"
	if len(lines) != 1 || lines[0] != expect {
		t.Errorf("Expected: [%s], got: %v", expect, lines)
	}
}

func TestFormatCTCP(t *testing.T) {
	got := FormatCTCP("#chan", "VERSION", "")
	expect := "PRIVMSG #chan :\x01VERSION\x01"
	if got != expect {
		t.Errorf("Expected: %s, got: %s", expect, got)
	}
}

func TestFormatCTCPReply(t *testing.T) {
	got := FormatCTCPReply("nick", "VERSION", "pyircfs 1.0")
	expect := "NOTICE nick :\x01VERSION pyircfs 1.0\x01"
	if got != expect {
		t.Errorf("Expected: %s, got: %s", expect, got)
	}
}

func TestFormatJoin(t *testing.T) {
	if got := FormatJoin("#chan"); got != "JOIN #chan" {
		t.Errorf("Expected: JOIN #chan, got: %s", got)
	}
	if got := FormatJoin("#chan1", "#chan2"); got != "JOIN #chan1,#chan2" {
		t.Errorf("Expected: JOIN #chan1,#chan2, got: %s", got)
	}
}

func TestFormatPart(t *testing.T) {
	if got := FormatPart("#chan"); got != "PART #chan" {
		t.Errorf("Expected: PART #chan, got: %s", got)
	}
}

func TestFormatQuit(t *testing.T) {
	if got := FormatQuit("goodbye"); got != "QUIT :goodbye" {
		t.Errorf("Expected: QUIT :goodbye, got: %s", got)
	}
	if got := FormatQuit(""); got != "QUIT" {
		t.Errorf("Expected a bare QUIT with no message, got: %s", got)
	}
}
