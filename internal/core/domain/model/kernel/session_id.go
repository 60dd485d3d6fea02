package kernel

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"

	"github.com/google/uuid"
)

const (
	// SessionIDPrefix starts every session identifier minted by NewSessionID.
	SessionIDPrefix = "SESS-"

	// sessionSuffixLength is the number of trailing characters that derived
	// identifiers (order ID, tracking number) are built from.
	sessionSuffixLength = 6

	randomPartLength = 11
)

// ErrSessionIDIsNotConstructed is returned when a zero-value SessionID is used.
var ErrSessionIDIsNotConstructed = errs.NewValueIsRequiredError(
	"session ID must be created via NewSessionID or SessionIDFromString")

// SessionID is the opaque token minted at checkout start. It correlates every
// partial write of one purchase attempt and keys the persisted order record.
//
// Identifiers minted here look like "SESS-1723456789012-k3j9x0q2m7a". Values
// read back from storage are accepted as-is as long as they are non-empty and
// contain no whitespace or underscores (underscores separate the session ID
// from the staging suffix in storage keys).
type SessionID struct { //nolint:recvcheck //using for validation
	value string
	guard guard.ConstructorGuard
}

// NewSessionID mints a fresh identifier: prefix, the creation time in unix
// milliseconds, and a random lower-case alphanumeric tail.
func NewSessionID(now time.Time) SessionID {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:randomPartLength]
	return SessionID{
		value: fmt.Sprintf("%s%d-%s", SessionIDPrefix, now.UnixMilli(), random),
		guard: guard.NewConstructorGuard(),
	}
}

// SessionIDFromString parses an identifier received from a client or read from storage.
func SessionIDFromString(s string) (SessionID, error) {
	if s == "" {
		return SessionID{}, errs.NewValueIsRequiredError("sessionId")
	}
	if strings.ContainsFunc(s, func(r rune) bool { return unicode.IsSpace(r) || r == '_' }) {
		return SessionID{}, errs.NewValueIsInvalidErrorWithCause(
			"sessionId", fmt.Errorf("%q contains whitespace or underscore", s))
	}
	return SessionID{value: s, guard: guard.NewConstructorGuard()}, nil
}

// MustSessionID is SessionIDFromString for literals known to be valid.
func MustSessionID(s string) SessionID {
	id, err := SessionIDFromString(s)
	if err != nil {
		panic(err)
	}
	return id
}

// Validate reports whether the identifier was built through a constructor.
func (s SessionID) Validate() error {
	return s.guard.Validate(ErrSessionIDIsNotConstructed)
}

func (s SessionID) String() string {
	return s.value
}

// IsEqual compares two identifiers by value.
func (s SessionID) IsEqual(other SessionID) bool {
	return s.value == other.value
}

// Suffix returns the last six characters, or the whole identifier when it is shorter.
// Different sessions sharing a suffix produce the same suffix; callers deriving
// display identifiers from it inherit that collision risk.
//
// Characters are runes, so a multi-byte character is never split.
func (s SessionID) Suffix() string {
	runes := []rune(s.value)
	if len(runes) <= sessionSuffixLength {
		return s.value
	}
	return string(runes[len(runes)-sessionSuffixLength:])
}
