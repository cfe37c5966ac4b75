package detect

// Kind identifies a detector. The set is closed; the declaration order is the
// fixed priority order used for tie-breaking during overlap resolution.
type Kind int

const (
	Email Kind = iota
	IPv4
	IPv6
	UUID
	JWT
	Token
)

// Kinds lists every detector kind in priority order.
var Kinds = [...]Kind{Email, IPv4, IPv6, UUID, JWT, Token}

var kindNames = map[Kind]string{
	Email: "email",
	IPv4:  "ipv4",
	IPv6:  "ipv6",
	UUID:  "uuid",
	JWT:   "jwt",
	Token: "token",
}

// String returns the configuration name of the kind
func (k Kind) String() string {
	return kindNames[k]
}

// Structural reports whether the kind is a pattern matcher rather than the
// entropy heuristic. Structural matches take precedence over Token matches.
func (k Kind) Structural() bool {
	return k != Token
}

// KindFromName resolves a configuration name to a Kind
func KindFromName(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// Span is a single detector match over the input byte sequence.
// After resolution spans are non-overlapping and sorted by Start.
type Span struct {
	Start int
	End   int
	Text  string
	Kind  Kind
}
