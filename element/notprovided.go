package element

type notProvided struct{}

func (notProvided) String() string { return "<not provided>" }

// NotProvided marks a keyword or value that is absent. It is distinct from
// nil, which stands for JSON null.
var NotProvided = notProvided{}

// IsNotProvided reports whether v is the NotProvided sentinel.
func IsNotProvided(v any) bool {
	_, ok := v.(notProvided)
	return ok
}
