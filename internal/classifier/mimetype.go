// internal/classifier/mimetype.go
package classifier

import (
	"bytes"
	"encoding/hex"
	"mime"
	"os"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"
)

func init() {
	Register("mimetype", openMimetype)
}

// Signature describes one extra file type recognized by a magic byte sequence.
type Signature struct {
	Name      string `json:"name,omitempty"`
	MIME      string `json:"mime"`
	Extension string `json:"extension,omitempty"`
	Offset    int    `json:"offset,omitempty"`
	Magic     string `json:"magic"`
	Parent    string `json:"parent,omitempty"`
}

// Database is the on-disk signature database read by the mimetype backend.
type Database struct {
	Signatures []Signature `json:"signatures"`
}

// databaseSchema validates signature databases before any signature is registered.
var databaseSchema = map[string]any{
	"type":     "object",
	"required": []string{"signatures"},
	"properties": map[string]any{
		"signatures": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":                 "object",
				"required":             []string{"mime", "magic"},
				"additionalProperties": false,
				"properties": map[string]any{
					"name":      map[string]any{"type": "string"},
					"mime":      map[string]any{"type": "string", "pattern": `^[a-z]+/[A-Za-z0-9.+_-]+$`},
					"extension": map[string]any{"type": "string", "pattern": `^(\.[A-Za-z0-9]+)?$`},
					"offset":    map[string]any{"type": "integer", "minimum": 0},
					"magic":     map[string]any{"type": "string", "pattern": `^([0-9A-Fa-f]{2})+$`},
					"parent":    map[string]any{"type": "string"},
				},
			},
		},
	},
}

// mimetype keeps its detection tree in package state, so registrations are
// shared by every session in the process.
var extendMu sync.Mutex

type mimetypeSession struct {
	flags     Flags
	readLimit uint32
	loaded    bool
	closed    bool
}

func openMimetype(opts Options) (Session, error) {
	return &mimetypeSession{flags: opts.Flags, readLimit: opts.ReadLimit}, nil
}

func (s *mimetypeSession) Load(path string) error {
	if s.closed {
		return ErrSessionClosed
	}
	if s.readLimit > 0 {
		mimetype.SetLimit(s.readLimit)
	}
	if path == BuiltinDatabase {
		s.loaded = true
		return nil
	}

	db, err := ReadDatabase(path)
	if err != nil {
		return err
	}
	if err := register(db); err != nil {
		return &LoadError{Path: path, Detail: err.Error()}
	}
	s.loaded = true
	return nil
}

func (s *mimetypeSession) Classify(path string) (string, error) {
	if s.closed {
		return "", ErrSessionClosed
	}
	if !s.loaded {
		return "", ErrNotLoaded
	}
	m, err := mimetype.DetectFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "classify %s", path)
	}
	return describe(m, s.flags), nil
}

func (s *mimetypeSession) Close() error {
	s.closed = true
	return nil
}

// ReadDatabase reads and validates the signature database at path.
func ReadDatabase(path string) (Database, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Database{}, &LoadError{Path: path, Detail: err.Error()}
	}
	return ParseDatabase(path, data)
}

// ParseDatabase validates data against the database schema and decodes it.
func ParseDatabase(path string, data []byte) (Database, error) {
	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(databaseSchema), gojsonschema.NewBytesLoader(data))
	if err != nil {
		return Database{}, &LoadError{Path: path, Detail: err.Error()}
	}
	if !result.Valid() {
		var problems []string
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return Database{}, &LoadError{Path: path, Detail: strings.Join(problems, "; ")}
	}

	var db Database
	if err := json.Unmarshal(data, &db); err != nil {
		return Database{}, &LoadError{Path: path, Detail: err.Error()}
	}
	return db, nil
}

// register adds every signature in db to the detection tree. Signatures whose
// MIME type is already known are skipped.
func register(db Database) error {
	extendMu.Lock()
	defer extendMu.Unlock()

	for _, sig := range db.Signatures {
		if mimetype.Lookup(sig.MIME) != nil {
			continue
		}
		magic, err := hex.DecodeString(sig.Magic)
		if err != nil {
			return errors.Wrapf(err, "signature %s", sig.MIME)
		}
		detector := magicDetector(sig.Offset, magic)
		if sig.Parent == "" {
			mimetype.Extend(detector, sig.MIME, sig.Extension)
			continue
		}
		parent := mimetype.Lookup(sig.Parent)
		if parent == nil {
			return errors.Errorf("signature %s: unknown parent %s", sig.MIME, sig.Parent)
		}
		parent.Extend(detector, sig.MIME, sig.Extension)
	}
	return nil
}

func magicDetector(offset int, magic []byte) func(raw []byte, limit uint32) bool {
	return func(raw []byte, _ uint32) bool {
		end := offset + len(magic)
		return len(raw) >= end && bytes.Equal(raw[offset:end], magic)
	}
}

// describe renders m the way the session flags ask for. With Continue the
// parent chain is appended, one match per line.
func describe(m *mimetype.MIME, flags Flags) string {
	parts := []string{describeOne(m, flags)}
	if flags&Continue != 0 {
		for p := m.Parent(); p != nil; p = p.Parent() {
			parts = append(parts, describeOne(p, flags))
		}
	}
	return strings.Join(parts, "\n- ")
}

func describeOne(m *mimetype.MIME, flags Flags) string {
	mediaType, params, err := mime.ParseMediaType(m.String())
	if err != nil {
		mediaType = m.String()
	}
	charset := params["charset"]
	if charset == "" {
		charset = "binary"
	}

	switch {
	case flags&MIME == MIME:
		return mediaType + "; charset=" + charset
	case flags&MIMEType != 0:
		return mediaType
	case flags&MIMEEncoding != 0:
		return charset
	}
	ext := strings.TrimPrefix(m.Extension(), ".")
	if ext == "" {
		return "data"
	}
	return strings.ToUpper(ext) + " document"
}
