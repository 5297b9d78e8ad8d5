package store

import "github.com/pyircfs/pyircfs/irc"

// errorNumerics is every three-digit numeric from 400 to 599, the error
// range of RFC 2812 replies.
func errorNumerics() []string {
	nums := make([]string, 0, 200)
	for i := 400; i < 600; i++ {
		nums = append(nums, itoa3(i))
	}
	return nums
}

func itoa3(n int) string {
	digits := [3]byte{}
	digits[0] = byte('0' + n/100%10)
	digits[1] = byte('0' + n/10%10)
	digits[2] = byte('0' + n%10)
	return string(digits[:])
}

// ErrorStore is the session's wildcard error sink: every ERROR line and
// every numeric in [400, 599] lands here for display at /info/errors. The
// Handler inspects ERROR lines itself to decide on a status transition (a
// session-wide concern); this store only records.
type ErrorStore struct {
	base
	numerics []string
}

// NewErrorStore constructs an ErrorStore.
func NewErrorStore(id int, sink Sink) *ErrorStore {
	s := &ErrorStore{base: newBase(id, "errors", sink)}
	s.numerics = errorNumerics()
	s.log.setFormatter(s.Format)
	return s
}

func (s *ErrorStore) DeclaredInbound() []string {
	return append([]string{irc.ERROR}, s.numerics...)
}
func (s *ErrorStore) DeclaredOutbound() []string { return nil }

func (s *ErrorStore) OnEvent(ev *irc.Event) []string {
	s.log.Append(ev)
	return nil
}

func (s *ErrorStore) Generate(verb string, params []string) []string { return nil }
func (s *ErrorStore) Format(ev *irc.Event) string                    { return ev.String() }
func (s *ErrorStore) OnRemove() []string                             { return nil }
