package wirefmt

import (
	"errors"
	"io"
	"sync"

	eng "github.com/reoring/wirefmt/internal/engine"
	jsonsrc "github.com/reoring/wirefmt/source/json"
	xmlsrc "github.com/reoring/wirefmt/source/xml"
)

// Format selects the wire form a reader or writer operates on.
type Format int

const (
	FormatXML Format = iota
	FormatJSON
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatXML:
		return "xml"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// ReadOpt bundles reader options. The zero value is the hardened default:
// comments dropped, duplicate object keys rejected, no depth or size caps.
type ReadOpt struct {
	// KeepComments surfaces comments as KindComment nodes instead of
	// dropping them. This is the only behavior flag; everything else about
	// the hardened configuration is fixed.
	KeepComments bool
	// AllowDuplicateKeys disables duplicate object key rejection.
	AllowDuplicateKeys bool
	// MaxDepth caps container nesting when > 0.
	MaxDepth int
	// MaxBytes caps consumed input bytes when > 0.
	MaxBytes int64
}

// TokenSource is the streaming token interface consumed by readers. It is an
// alias so driver packages can implement it without importing internals
// through unstable paths.
type TokenSource = eng.TokenSource

// JSONDriver converts object-notation input into a TokenSource via a
// pluggable SPI. The default implementation is based on encoding/json and may
// be swapped with SetJSONDriver (see source/gojson).
type JSONDriver interface {
	NewReader(r io.Reader) TokenSource
	NewBytes(b []byte) TokenSource
	Name() string
}

var (
	jsonDriverMu      sync.RWMutex
	currentJSONDriver JSONDriver = defaultJSONDriver{}
)

// SetJSONDriver replaces the global JSON driver; nil values are ignored.
func SetJSONDriver(d JSONDriver) {
	if d == nil {
		return
	}
	jsonDriverMu.Lock()
	currentJSONDriver = d
	jsonDriverMu.Unlock()
}

// UseDefaultJSONDriver restores the default encoding/json-backed driver.
func UseDefaultJSONDriver() {
	jsonDriverMu.Lock()
	currentJSONDriver = defaultJSONDriver{}
	jsonDriverMu.Unlock()
}

func getJSONDriver() JSONDriver {
	jsonDriverMu.RLock()
	d := currentJSONDriver
	jsonDriverMu.RUnlock()
	return d
}

// defaultJSONDriver wraps the encoding/json implementation.
type defaultJSONDriver struct{}

func (defaultJSONDriver) NewReader(r io.Reader) TokenSource { return jsonsrc.NewReader(r) }
func (defaultJSONDriver) NewBytes(b []byte) TokenSource     { return jsonsrc.NewBytes(b) }
func (defaultJSONDriver) Name() string                      { return "encoding/json" }

// Reader parses one document from its underlying source. A Reader owns its
// source for its entire lifetime and must not be shared across concurrent
// logical operations.
type Reader struct {
	src      eng.TokenSource
	format   Format
	consumed bool
}

// NewReader builds a hardened reader over a stream. For markup input the
// stream is drained up front so named character references can be rewritten
// before parsing.
func NewReader(r io.Reader, f Format, opts ...ReadOpt) (*Reader, error) {
	switch f {
	case FormatXML:
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, Issues{{Code: CodeIO, Message: composeMessage(CodeIO, err.Error()), Cause: err, Offset: -1}}
		}
		return NewReaderBytes(data, f, opts...)
	case FormatJSON:
		return newReader(getJSONDriver().NewReader(r), f, lastOpt(opts)), nil
	default:
		return nil, Issues{{Code: CodeSyntax, Message: "unknown format", Offset: -1}}
	}
}

// NewReaderBytes builds a hardened reader over a byte slice.
func NewReaderBytes(b []byte, f Format, opts ...ReadOpt) (*Reader, error) {
	return NewReaderString(string(b), f, opts...)
}

// NewReaderString builds a hardened reader over a string.
func NewReaderString(s string, f Format, opts ...ReadOpt) (*Reader, error) {
	opt := lastOpt(opts)
	switch f {
	case FormatXML:
		return newReader(xmlsrc.NewBytes([]byte(SanitizeEntities(s))), f, opt), nil
	case FormatJSON:
		return newReader(getJSONDriver().NewBytes([]byte(s)), f, opt), nil
	default:
		return nil, Issues{{Code: CodeSyntax, Message: "unknown format", Offset: -1}}
	}
}

func lastOpt(opts []ReadOpt) ReadOpt {
	if len(opts) > 0 {
		return opts[len(opts)-1]
	}
	return ReadOpt{}
}

func newReader(src eng.TokenSource, f Format, opt ReadOpt) *Reader {
	dup := eng.DupError
	if opt.AllowDuplicateKeys || f == FormatXML {
		dup = eng.DupIgnore
	}
	if dup != eng.DupIgnore || opt.MaxDepth > 0 || opt.MaxBytes > 0 {
		src = eng.WrapWithEnforcement(src, eng.EnforceOptions{
			OnDuplicate: dup,
			MaxDepth:    opt.MaxDepth,
			MaxBytes:    opt.MaxBytes,
		})
	}
	if !opt.KeepComments {
		src = eng.WithoutComments(src)
	}
	return &Reader{src: src, format: f}
}

// Format reports the wire form this reader was built for.
func (r *Reader) Format() Format { return r.format }

// ReadDocument parses the source to completion. On failure it returns a
// typed Issues error and no tree; a Reader can be consumed once.
func (r *Reader) ReadDocument() (*Document, error) {
	if r.consumed {
		return nil, Issues{{Code: CodeIO, Message: composeMessage(CodeIO, "reader already consumed"), Offset: -1}}
	}
	r.consumed = true
	root, err := eng.BuildDocument(r.src)
	if err != nil {
		return nil, toIssues(err)
	}
	return &Document{Root: root}, nil
}

// ReadDocumentString is a convenience for probe-then-parse call sites.
func ReadDocumentString(s string, f Format, opts ...ReadOpt) (*Document, error) {
	r, err := NewReaderString(s, f, opts...)
	if err != nil {
		return nil, err
	}
	return r.ReadDocument()
}

// toIssues translates low-level source errors into the public error model.
// Raw decoder errors never escape a Reader.
func toIssues(err error) Issues {
	if err == nil {
		return nil
	}
	if ii, ok := AsIssues(err); ok {
		return ii
	}
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return AppendIssues(nil, Issue{
			Code:    ie.Code,
			Path:    ie.Path,
			Message: composeMessage(ie.Code, ie.Message),
			Offset:  ie.Offset,
			Line:    ie.Line,
			Column:  ie.Column,
		})
	}
	return AppendIssues(nil, Issue{Code: CodeIO, Message: composeMessage(CodeIO, err.Error()), Cause: err, Offset: -1})
}
