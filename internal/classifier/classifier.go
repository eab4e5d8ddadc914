// internal/classifier/classifier.go
// Package classifier adapts file-type detection libraries behind a small
// session API: open a session, load a signature database, classify files and
// close the session.
package classifier

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// DefaultBackend is the backend used when the configuration does not name one.
const DefaultBackend = "mimetype"

// BuiltinDatabase loads only the signatures compiled into a backend.
const BuiltinDatabase = "builtin"

var (
	// ErrUnknownBackend is returned by Open for a backend name with no registration.
	ErrUnknownBackend = errors.New("unknown classifier backend")

	// ErrSessionOpen is returned when a backend cannot create a session.
	ErrSessionOpen = errors.New("creation of classification session failed")

	// ErrDatabaseLoad is matched by every *LoadError.
	ErrDatabaseLoad = errors.New("loading signature database failed")

	// ErrNotLoaded is returned by Classify before a database was loaded.
	ErrNotLoaded = errors.New("signature database not loaded")

	// ErrSessionClosed is returned by Load and Classify after Close.
	ErrSessionClosed = errors.New("classification session closed")

	// ErrUnknownFlag is returned by ParseFlags for a name it does not recognize.
	ErrUnknownFlag = errors.New("unknown session flag")
)

// LoadError carries the diagnostic a backend produced while loading a database.
type LoadError struct {
	Path   string
	Detail string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading magic database failed: %s", e.Detail)
}

// Is reports whether target is ErrDatabaseLoad.
func (e *LoadError) Is(target error) bool {
	return target == ErrDatabaseLoad
}

// Flags selects what a session returns from Classify.
type Flags uint

const (
	// None returns a textual description.
	None Flags = 0
	// MIMEType returns the MIME type.
	MIMEType Flags = 1 << iota
	// MIMEEncoding returns the MIME encoding (charset).
	MIMEEncoding
	// Continue returns every match, not just the first.
	Continue

	// MIME returns both type and encoding.
	MIME = MIMEType | MIMEEncoding
)

// DefaultFlags is the flag set the benchmark drivers open sessions with.
const DefaultFlags = MIME | Continue

var flagNames = map[string]Flags{
	"none":          None,
	"mime_type":     MIMEType,
	"mime_encoding": MIMEEncoding,
	"mime":          MIME,
	"continue":      Continue,
}

// ParseFlags combines flag names such as "mime" and "continue" into a Flags value.
// An empty list yields DefaultFlags.
func ParseFlags(names []string) (Flags, error) {
	if len(names) == 0 {
		return DefaultFlags, nil
	}
	var flags Flags
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		key = strings.ReplaceAll(key, "-", "_")
		f, ok := flagNames[key]
		if !ok {
			return None, errors.Wrapf(ErrUnknownFlag, "%q", name)
		}
		flags |= f
	}
	return flags, nil
}

func (f Flags) String() string {
	if f == None {
		return "none"
	}
	var parts []string
	switch {
	case f&MIME == MIME:
		parts = append(parts, "mime")
	case f&MIMEType != 0:
		parts = append(parts, "mime_type")
	case f&MIMEEncoding != 0:
		parts = append(parts, "mime_encoding")
	}
	if f&Continue != 0 {
		parts = append(parts, "continue")
	}
	return strings.Join(parts, "|")
}

// Options configures a new session.
type Options struct {
	Flags Flags
	// ReadLimit caps how many bytes of each file are inspected. Zero keeps the backend default.
	ReadLimit uint32
}

// Session is an open classification session. Sessions are not safe for
// concurrent use.
type Session interface {
	// Load reads the signature database at path.
	Load(path string) error
	// Classify returns the description of the file at path.
	Classify(path string) (string, error)
	// Close releases the session. Calling Close more than once is a no-op.
	Close() error
}

// Opener creates a session for a backend.
type Opener func(opts Options) (Session, error)

var (
	mu       sync.Mutex
	backends = map[string]Opener{}
)

// Register makes a backend available to Open under name. Registering a name
// twice replaces the earlier opener.
func Register(name string, opener Opener) {
	mu.Lock()
	defer mu.Unlock()
	backends[strings.ToLower(name)] = opener
}

// Backends returns the registered backend names in sorted order.
func Backends() []string {
	mu.Lock()
	defer mu.Unlock()
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open creates a session on the named backend.
func Open(backend string, opts Options) (Session, error) {
	name := strings.ToLower(strings.TrimSpace(backend))
	if name == "" {
		name = DefaultBackend
	}

	mu.Lock()
	opener, ok := backends[name]
	mu.Unlock()
	if !ok {
		return nil, errors.Wrapf(ErrUnknownBackend, "%q (available: %s)", backend, strings.Join(Backends(), ", "))
	}

	session, err := opener(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSessionOpen, err)
	}
	if session == nil {
		return nil, ErrSessionOpen
	}
	return session, nil
}
