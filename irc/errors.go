package irc

import "errors"

var (
	// errEmptyLine is returned by Line for a zero-length input.
	errEmptyLine = errors.New("irc: empty line")
	// errMalformedLine is returned by Line when no command verb could be
	// extracted.
	errMalformedLine = errors.New("irc: malformed line")
)
