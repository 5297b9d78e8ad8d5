package conn

import "testing"

func TestOutQueue_FIFO(t *testing.T) {
	var q outQueue
	q.push("PRIVMSG #chan :one")
	q.push("PRIVMSG #chan :two")
	q.push("PRIVMSG #chan :three")

	for _, want := range []string{
		"PRIVMSG #chan :one", "PRIVMSG #chan :two", "PRIVMSG #chan :three",
	} {
		got, ok := q.pop()
		if !ok || got != want {
			t.Errorf("Expected %q, got %q (ok=%v)", want, got, ok)
		}
	}
	if !q.empty() {
		t.Error("Expected queue to be empty after draining.")
	}
}

func TestOutQueue_PriorityJumpsQueue(t *testing.T) {
	var q outQueue
	q.push("PRIVMSG #chan :one")
	q.push("PRIVMSG #chan :two")
	q.push("QUIT :bye")

	got, ok := q.pop()
	if !ok || got != "QUIT :bye" {
		t.Errorf("Expected QUIT to jump the queue, got %q", got)
	}
}

func TestOutQueue_MultiplePriorityPreserveOrder(t *testing.T) {
	var q outQueue
	q.push("PRIVMSG #chan :one")
	q.push("PING :token1")
	q.push("PONG :token2")

	got, _ := q.pop()
	if got != "PING :token1" {
		t.Errorf("Expected the earlier priority line first (FIFO among priority lines), got %q", got)
	}
	got, _ = q.pop()
	if got != "PONG :token2" {
		t.Errorf("Expected the later priority line next, got %q", got)
	}
	got, _ = q.pop()
	if got != "PRIVMSG #chan :one" {
		t.Errorf("Expected the non-priority line last, got %q", got)
	}
}

func TestOutQueue_Empty(t *testing.T) {
	var q outQueue
	if !q.empty() {
		t.Error("Expected a zero-value queue to be empty.")
	}
	if _, ok := q.pop(); ok {
		t.Error("Expected pop on an empty queue to return ok=false.")
	}
}

func TestIsPriorityLine(t *testing.T) {
	cases := map[string]bool{
		"PING :token":          true,
		"PONG :token":          true,
		"QUIT :bye":            true,
		"ping :token":          true,
		"PRIVMSG #chan :hello": false,
		"":                     false,
	}
	for line, want := range cases {
		if got := isPriorityLine(line); got != want {
			t.Errorf("isPriorityLine(%q) = %v, want %v", line, got, want)
		}
	}
}
