package codec

import "fmt"

// LoadErrorKind enumerates the ways load(bytes) can fail, per §7's
// ConfigLoadError taxonomy. All are fatal at daemon startup.
type LoadErrorKind uint8

const (
	InvalidMagic LoadErrorKind = iota
	UnsupportedMajorVersion
	Truncated
	Corrupt
)

func (k LoadErrorKind) String() string {
	switch k {
	case InvalidMagic:
		return "InvalidMagic"
	case UnsupportedMajorVersion:
		return "UnsupportedMajorVersion"
	case Truncated:
		return "Truncated"
	case Corrupt:
		return "Corrupt"
	default:
		return "UnknownLoadError"
	}
}

// LoadError is ConfigLoadError: a fatal, typed failure decoding a .krx
// archive. Loaders never panic on arbitrary input; every malformed-input
// path returns a LoadError instead.
type LoadError struct {
	Kind LoadErrorKind
	Msg  string
}

func (e *LoadError) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func newLoadError(kind LoadErrorKind, msg string) *LoadError {
	return &LoadError{Kind: kind, Msg: msg}
}
