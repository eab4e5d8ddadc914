// internal/classifier/libmagic.go
//go:build cgo && libmagic

package classifier

/*
#cgo LDFLAGS: -lmagic
#include <stdlib.h>
#include <magic.h>
*/
import "C"

import (
	"unsafe"

	"github.com/pkg/errors"
)

func init() {
	Register("libmagic", openLibmagic)
}

type libmagicSession struct {
	cookie C.magic_t
	loaded bool
}

func openLibmagic(opts Options) (Session, error) {
	cookie := C.magic_open(libmagicFlags(opts.Flags))
	if cookie == nil {
		return nil, errors.New("magic_open returned NULL")
	}
	return &libmagicSession{cookie: cookie}, nil
}

func libmagicFlags(f Flags) C.int {
	var flags C.int = C.MAGIC_NONE
	if f&MIMEType != 0 {
		flags |= C.MAGIC_MIME_TYPE
	}
	if f&MIMEEncoding != 0 {
		flags |= C.MAGIC_MIME_ENCODING
	}
	if f&Continue != 0 {
		flags |= C.MAGIC_CONTINUE
	}
	return flags
}

func (s *libmagicSession) Load(path string) error {
	if s.cookie == nil {
		return ErrSessionClosed
	}
	var cpath *C.char
	if path != BuiltinDatabase {
		cpath = C.CString(path)
		defer C.free(unsafe.Pointer(cpath))
	}
	if C.magic_load(s.cookie, cpath) != 0 {
		return &LoadError{Path: path, Detail: s.lastError()}
	}
	s.loaded = true
	return nil
}

func (s *libmagicSession) Classify(path string) (string, error) {
	if s.cookie == nil {
		return "", ErrSessionClosed
	}
	if !s.loaded {
		return "", ErrNotLoaded
	}
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))

	description := C.magic_file(s.cookie, cpath)
	if description == nil {
		return "", errors.Errorf("classify %s: %s", path, s.lastError())
	}
	return C.GoString(description), nil
}

func (s *libmagicSession) Close() error {
	if s.cookie == nil {
		return nil
	}
	C.magic_close(s.cookie)
	s.cookie = nil
	return nil
}

func (s *libmagicSession) lastError() string {
	msg := C.magic_error(s.cookie)
	if msg == nil {
		return "unknown error"
	}
	return C.GoString(msg)
}
