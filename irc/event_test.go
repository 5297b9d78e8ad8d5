package irc

import (
	"strings"
	"testing"
)

func TestNewEvent(t *testing.T) {
	ev := NewEvent("nick!user@host", "privmsg", "#chan1 :hello there")
	if ev.Prefix != "nick!user@host" {
		t.Error("Expected prefix to be preserved, got:", ev.Prefix)
	}
	if ev.Command != PRIVMSG {
		t.Error("Expected command to be upper-cased, got:", ev.Command)
	}
	if ev.Params != "#chan1 :hello there" {
		t.Error("Expected params to be preserved, got:", ev.Params)
	}
	if ev.ParamsEndpart != "hello there" {
		t.Error("Expected endpart to be split out, got:", ev.ParamsEndpart)
	}
	if !ev.Generated {
		t.Error("Expected a locally constructed event to be marked Generated.")
	}
	if ev.Informational {
		t.Error("NewEvent should not produce an Informational event.")
	}
	if ev.Time.Unix() == 0 {
		t.Error("Expected the timestamp to be set.")
	}
}

func TestNewInformational(t *testing.T) {
	ev := NewInformational("STATUS", "connected")
	if ev.Prefix != "" {
		t.Error("Expected no prefix on an informational event, got:", ev.Prefix)
	}
	if !ev.Informational {
		t.Error("Expected Informational to be set.")
	}
	if !ev.Generated {
		t.Error("Expected Generated to be set.")
	}
}

func TestEvent_Nick(t *testing.T) {
	ev := NewEvent("nick!user@host", JOIN, "#chan")
	if nick := ev.Nick(); nick != "nick" {
		t.Error("Expected nick to be extracted from the prefix, got:", nick)
	}

	ev = NewEvent("irc.example.net", NOTICE, ":a server notice")
	if nick := ev.Nick(); nick != "irc.example.net" {
		t.Error("Expected a bare server prefix to pass through unchanged, got:", nick)
	}
}

func TestEvent_Args(t *testing.T) {
	testArgs := []string{"#chan1", "#chan2"}
	ev := NewEvent("", JOIN, strings.Join(testArgs, " :"))
	args := ev.Args()
	if len(args) != len(testArgs) {
		t.Fatalf("Expected %d args, got %d: %v", len(testArgs), len(args), args)
	}
	for i, v := range args {
		if v != testArgs[i] {
			t.Error("Expected arg", i, "to be", testArgs[i], "got:", v)
		}
	}

	ev = NewEvent("", PRIVMSG, "#chan :hello, world")
	args = ev.Args()
	if len(args) != 2 || args[0] != "#chan" || args[1] != "hello, world" {
		t.Error("Expected trailing arg to be folded into one element, got:", args)
	}

	ev = NewEvent("", PING, "")
	if args := ev.Args(); args != nil {
		t.Error("Expected no params to give nil args, got:", args)
	}
}

func TestEvent_IsNumeric(t *testing.T) {
	ev := NewEvent("irc.example.net", RplWelcome, "nick :Welcome")
	if !ev.IsNumeric() {
		t.Error("Expected a 3-digit command to be numeric.")
	}

	ev = NewEvent("nick!user@host", PRIVMSG, "#chan :hi")
	if ev.IsNumeric() {
		t.Error("Expected a verb command to not be numeric.")
	}

	ev = &Event{Command: "99"}
	if ev.IsNumeric() {
		t.Error("Expected a short code to not be numeric.")
	}
}

func TestEvent_String(t *testing.T) {
	ev := NewEvent("nick!user@host", PRIVMSG, "#chan :hello there")
	expect := ":nick!user@host PRIVMSG #chan :hello there"
	if got := ev.String(); got != expect {
		t.Errorf("Expected: [%s] Got: [%s]", expect, got)
	}

	ev = NewEvent("", PING, ":irc.example.net")
	expect = "PING :irc.example.net"
	if got := ev.String(); got != expect {
		t.Errorf("Expected: [%s] Got: [%s]", expect, got)
	}
}

func TestLine(t *testing.T) {
	ev, err := Line(":nick!user@host PRIVMSG #chan :hello there")
	if err != nil {
		t.Fatal("Unexpected error:", err)
	}
	if ev.Prefix != "nick!user@host" {
		t.Error("Expected prefix to be parsed, got:", ev.Prefix)
	}
	if ev.Command != PRIVMSG {
		t.Error("Expected command to be parsed, got:", ev.Command)
	}
	if ev.Params != "#chan :hello there" {
		t.Error("Expected params to be parsed, got:", ev.Params)
	}
	if ev.ParamsEndpart != "hello there" {
		t.Error("Expected endpart to be parsed, got:", ev.ParamsEndpart)
	}
	if ev.Generated {
		t.Error("A parsed line should not be marked Generated.")
	}

	ev, err = Line("PING :irc.example.net")
	if err != nil {
		t.Fatal("Unexpected error:", err)
	}
	if ev.Prefix != "" {
		t.Error("Expected no prefix, got:", ev.Prefix)
	}
	if ev.Command != PING {
		t.Error("Expected PING, got:", ev.Command)
	}

	ev, err = Line("JOIN")
	if err != nil {
		t.Fatal("Unexpected error:", err)
	}
	if ev.Command != JOIN || ev.Params != "" {
		t.Error("Expected a bare command with no params, got:", ev.Command, ev.Params)
	}
}

func TestLine_Errors(t *testing.T) {
	if _, err := Line(""); err != errEmptyLine {
		t.Error("Expected errEmptyLine for an empty line, got:", err)
	}

	if _, err := Line(":nick"); err != errMalformedLine {
		t.Error("Expected errMalformedLine for a prefix with no command, got:", err)
	}

	if _, err := Line(":"); err != errMalformedLine {
		t.Error("Expected errMalformedLine for a bare colon, got:", err)
	}
}
