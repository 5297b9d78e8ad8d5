package irc

import (
	"testing"
)

func TestMask_Match(t *testing.T) {
	var mask Mask
	var host Host
	if !mask.Match(host) {
		t.Error("Expected empty case to evaluate true.")
	}

	if !Mask("nick!*@*").Match("nick!@") {
		t.Error("Expected trivial case to evaluate true.")
	}

	host = "nick!user@host"

	positiveMasks := []Mask{
		// Default
		`nick!user@host`,
		// *'s
		`*`, `*!*@*`, `**!**@**`, `*@host`, `**@host`,
		`nick!*`, `nick!**`, `*nick!user@host`, `**nick!user@host`,
		`nick!user@host*`, `nick!user@host**`,
		// ?'s
		`ni?k!us?r@ho?st`, `ni??k!us??r@ho??st`, `????!????@????`,
		`?ick!user@host`, `??ick!user@host`, `?nick!user@host`,
		`??nick!user@host`, `nick!user@hos?`, `nick!user@hos??`,
		`nick!user@host?`, `nick!user@host??`,
		// Combination
		`?*nick!user@host`, `*?nick!user@host`, `??**nick!user@host`,
		`**??nick!user@host`,
		`nick!user@host?*`, `nick!user@host*?`, `nick!user@host??**`,
		`nick!user@host**??`, `nick!u?*?ser@host`, `nick!u?*?ser@host`,
	}

	for i := 0; i < len(positiveMasks); i++ {
		if !positiveMasks[i].Match(host) {
			t.Errorf("Expected: %v to match %v", positiveMasks[i], host)
		}
	}

	negativeMasks := []Mask{
		``, `?nq******c?!*@*`, `nick2!*@*`, `*!*@hostfail`, `*!*@failhost`,
	}

	for i := 0; i < len(negativeMasks); i++ {
		if negativeMasks[i].Match(host) {
			t.Errorf("Expected: %v not to match %v", negativeMasks[i], host)
		}
	}
}
