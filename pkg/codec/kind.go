package codec

// Kind is the discriminant sealed into every blob. A blob opens only under the
// kind it was sealed with.
type Kind string

const (
	KindSession            Kind = "session"
	KindConnectionTokenSet Kind = "connection_token_set"
	KindTransaction        Kind = "transaction"
)

// Payload is implemented by value types that always travel under one kind.
// Seal and Open take the kind from the type, so a call site cannot pair a
// payload type with a foreign kind.
type Payload interface {
	PayloadKind() Kind
}

func (k Kind) valid() bool {
	return k != ""
}

func (k Kind) String() string {
	return string(k)
}
