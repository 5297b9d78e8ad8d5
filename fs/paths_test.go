package fs

import "testing"

func TestResolve_Root(t *testing.T) {
	n := resolve("")
	if n.kind != kindRoot {
		t.Errorf("Expected kindRoot, got %v", n.kind)
	}
}

func TestResolve_Conversation(t *testing.T) {
	n := resolve("alice")
	if n.kind != kindConversation || n.target != "alice" {
		t.Errorf("Expected conversation alice, got %+v", n)
	}
}

func TestResolve_ChannelConversation(t *testing.T) {
	n := resolve("#chan")
	if n.kind != kindConversation || n.target != "#chan" {
		t.Errorf("Expected conversation #chan, got %+v", n)
	}
}

func TestResolve_CommandsDir(t *testing.T) {
	n := resolve("commands")
	if n.kind != kindCommandsDir {
		t.Errorf("Expected kindCommandsDir, got %v", n.kind)
	}
}

func TestResolve_Command(t *testing.T) {
	n := resolve("commands/join")
	if n.kind != kindCommand || n.target != "join" {
		t.Errorf("Expected command join, got %+v", n)
	}
}

func TestResolve_CommandTooDeep(t *testing.T) {
	n := resolve("commands/join/extra")
	if n.kind != kindUnknown {
		t.Errorf("Expected kindUnknown, got %v", n.kind)
	}
}

func TestResolve_InfoStatus(t *testing.T) {
	n := resolve("info/status")
	if n.kind != kindInfoStatus {
		t.Errorf("Expected kindInfoStatus, got %v", n.kind)
	}
}

func TestResolve_InfoChannel(t *testing.T) {
	n := resolve("info/#chan")
	if n.kind != kindInfoChannel || n.target != "#chan" {
		t.Errorf("Expected info channel #chan, got %+v", n)
	}
}

func TestResolve_InfoStore(t *testing.T) {
	n := resolve("info/who")
	if n.kind != kindInfoStore || n.target != "who" {
		t.Errorf("Expected info store who, got %+v", n)
	}
}

func TestResolve_NamesChannelDir(t *testing.T) {
	n := resolve("names/#chan")
	if n.kind != kindNamesChannelDir || n.target != "#chan" {
		t.Errorf("Expected names channel dir #chan, got %+v", n)
	}
}

func TestResolve_NamesMember(t *testing.T) {
	n := resolve("names/#chan/alice")
	if n.kind != kindNamesMember || n.channel != "#chan" || n.member != "alice" {
		t.Errorf("Expected names member #chan/alice, got %+v", n)
	}
}

func TestResolve_NamesTooDeep(t *testing.T) {
	n := resolve("names/#chan/alice/extra")
	if n.kind != kindUnknown {
		t.Errorf("Expected kindUnknown, got %v", n.kind)
	}
}

func TestResolve_ConversationTooDeep(t *testing.T) {
	n := resolve("alice/bob")
	if n.kind != kindUnknown {
		t.Errorf("Expected kindUnknown, got %v", n.kind)
	}
}
