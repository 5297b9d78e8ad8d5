package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profiles.toml")
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatalf("Failed to write temp config: %v", err)
	}
	return path
}

func TestLoad_DecodesProfiles(t *testing.T) {
	path := writeTempConfig(t, `
[profiles.freenode]
server = "chat.freenode.net:6697"
nickname = "mynick"
altnick = "mynick_"
floodstep = 2.0
`)

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	p, ok := f.Profile("freenode")
	if !ok {
		t.Fatal("Expected profile \"freenode\" to be found")
	}
	if want := "chat.freenode.net:6697"; p.Server != want {
		t.Errorf("Expected server %q, got %q", want, p.Server)
	}
	if want := 2.0; p.FloodStep != want {
		t.Errorf("Expected floodstep %v, got %v", want, p.FloodStep)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nonexistent.toml")); err == nil {
		t.Error("Expected an error loading a nonexistent file")
	}
}

func TestFile_ProfileNotFound(t *testing.T) {
	path := writeTempConfig(t, `
[profiles.freenode]
server = "chat.freenode.net:6697"
`)
	f, err := Load(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, ok := f.Profile("nonexistent"); ok {
		t.Error("Expected profile lookup to fail for an unknown name")
	}
}

func TestFile_ProfileOnNilFile(t *testing.T) {
	var f *File
	if _, ok := f.Profile("anything"); ok {
		t.Error("Expected a nil *File to never find a profile")
	}
}

func TestMerge_OverrideWinsOverBase(t *testing.T) {
	base := Profile{Server: "base.example.net", Nickname: "basenick", FloodStep: 1.0}
	override := Profile{Nickname: "overridenick"}

	merged := Merge(base, override)
	if want := "base.example.net"; merged.Server != want {
		t.Errorf("Expected unset override field to keep base value %q, got %q", want, merged.Server)
	}
	if want := "overridenick"; merged.Nickname != want {
		t.Errorf("Expected override nickname %q, got %q", want, merged.Nickname)
	}
	if want := 1.0; merged.FloodStep != want {
		t.Errorf("Expected base floodstep %v to survive, got %v", want, merged.FloodStep)
	}
}

func TestProfile_Nicknames(t *testing.T) {
	p := Profile{Nickname: "primary"}
	if got := p.Nicknames(); len(got) != 1 || got[0] != "primary" {
		t.Errorf("Expected [primary] with no altnick, got %v", got)
	}

	p.AltNick = "secondary"
	if got := p.Nicknames(); len(got) != 2 || got[1] != "secondary" {
		t.Errorf("Expected [primary secondary], got %v", got)
	}
}
