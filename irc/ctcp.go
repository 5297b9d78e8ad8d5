package irc

import "bytes"

// CTCP framing and quoting characters, per the CTCP spec layered on top of
// PRIVMSG/NOTICE payloads.
const (
	CTCPDelim     = '\x01'
	CTCPLowQuote  = '\x10'
	CTCPHighQuote = '\x5C'
	CTCPSep       = '\x20'
)

// IsCTCP reports whether msg is delimited by CTCPDelim at both ends.
func IsCTCP(msg []byte) bool {
	return len(msg) >= 2 && CTCPDelim == msg[0] && CTCPDelim == msg[len(msg)-1]
}

// IsCTCPString is IsCTCP for a string.
func IsCTCPString(msg string) bool {
	return len(msg) >= 2 && msg[0] == CTCPDelim && msg[len(msg)-1] == CTCPDelim
}

// CTCPUnpack extracts the tag and data from a delimited CTCP message.
func CTCPUnpack(msg []byte) (tag []byte, data []byte) {
	msg = msg[1 : len(msg)-1]

	msg = ctcpLowLevelUnescape(msg)
	tag, data = ctcpSplitTag(msg)
	tag = ctcpHighLevelUnescape(tag)
	if data != nil {
		data = ctcpHighLevelUnescape(data)
	}
	return tag, data
}

// CTCPPack packs a tag and data into a delimited CTCP message.
func CTCPPack(tag, data []byte) []byte {
	if data != nil {
		data = ctcpHighLevelEscape(data)
	}
	tag = ctcpHighLevelEscape(tag)

	ret := ctcpJoinTag(tag, data)
	ret = ctcpLowLevelEscape(ret)

	delimited := make([]byte, len(ret)+2)
	delimited[0] = CTCPDelim
	delimited[len(delimited)-1] = CTCPDelim
	copy(delimited[1:], ret)
	return delimited
}

// CTCPUnpackString is CTCPUnpack for strings.
func CTCPUnpackString(msg string) (tag, data string) {
	t, d := CTCPUnpack([]byte(msg))
	return string(t), string(d)
}

// CTCPPackString is CTCPPack for strings.
func CTCPPackString(tag, data string) string {
	return string(CTCPPack([]byte(tag), []byte(data)))
}

// ctcpSplitTag separates the tag from the data on the first CTCPSep.
func ctcpSplitTag(in []byte) ([]byte, []byte) {
	splits := bytes.SplitN(in, []byte{CTCPSep}, 2)
	if len(splits) == 2 {
		return splits[0], splits[1]
	}
	return splits[0], nil
}

// ctcpJoinTag is the inverse of ctcpSplitTag.
func ctcpJoinTag(tag []byte, data []byte) []byte {
	if len(data) == 0 {
		return tag
	}

	ret := make([]byte, len(tag)+len(data)+1)
	copy(ret, tag)
	ret[len(tag)] = CTCPSep
	copy(ret[len(tag)+1:], data)
	return ret
}

// ctcpHighLevelEscape escapes CTCPDelim occurrences inside the tag/data, so
// that a nested delimiter cannot be mistaken for the message's own framing.
func ctcpHighLevelEscape(in []byte) []byte {
	out := bytes.Replace(in, []byte{CTCPHighQuote},
		[]byte{CTCPHighQuote, CTCPHighQuote}, -1)
	out = bytes.Replace(out, []byte{CTCPDelim}, []byte{CTCPHighQuote, 0x61}, -1)
	return out
}

func ctcpHighLevelUnescape(in []byte) []byte {
	out := bytes.Replace(in, []byte{CTCPHighQuote, 0x61}, []byte{CTCPDelim}, -1)
	out = bytes.Replace(out, []byte{CTCPHighQuote, CTCPHighQuote},
		[]byte{CTCPHighQuote}, -1)
	return out
}

// ctcpLowLevelEscape quotes the bytes that would otherwise break IRC line
// framing (NUL, CR, LF) once the whole line is assembled.
func ctcpLowLevelEscape(in []byte) []byte {
	out := bytes.Replace(in, []byte{CTCPLowQuote},
		[]byte{CTCPLowQuote, CTCPLowQuote}, -1)
	out = bytes.Replace(out, []byte{'\r'}, []byte{CTCPLowQuote, '\r'}, -1)
	out = bytes.Replace(out, []byte{'\n'}, []byte{CTCPLowQuote, '\n'}, -1)
	out = bytes.Replace(out, []byte{0x00}, []byte{CTCPLowQuote, 0x00}, -1)
	return out
}

func ctcpLowLevelUnescape(in []byte) []byte {
	out := bytes.Replace(in, []byte{CTCPLowQuote, 0x00}, []byte{0x00}, -1)
	out = bytes.Replace(out, []byte{CTCPLowQuote, '\n'}, []byte{'\n'}, -1)
	out = bytes.Replace(out, []byte{CTCPLowQuote, '\r'}, []byte{'\r'}, -1)
	out = bytes.Replace(out, []byte{CTCPLowQuote, CTCPLowQuote},
		[]byte{CTCPLowQuote}, -1)
	return out
}
