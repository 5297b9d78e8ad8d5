package store

import "testing"

func TestRawStore_GenerateSendsVerbatim(t *testing.T) {
	s := NewRawStore(1, &fakeSink{})
	// The fs write path always passes "RAW" as verb (the /commands/raw
	// directory name) and the whole unsplit user line as params[0];
	// Generate must ignore verb and derive the real verb/rest itself.
	lines := s.Generate("RAW", []string{"WHOIS somebody"})
	if len(lines) != 1 || lines[0] != "WHOIS somebody" {
		t.Errorf("Expected the raw line unmodified, got %v", lines)
	}
}

func TestRawStore_GenerateIgnoresVerbArg(t *testing.T) {
	s := NewRawStore(1, &fakeSink{})
	lines := s.Generate("", []string{"PRIVMSG #chan :hello world"})
	if len(lines) != 1 || lines[0] != "PRIVMSG #chan :hello world" {
		t.Errorf("Expected the raw line unmodified regardless of verb arg, got %v", lines)
	}
}
