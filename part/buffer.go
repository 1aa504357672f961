package part

import (
	"bytes"
	"errors"
	"math/rand"

	"github.com/mimeforge/mimetree/message/header"
)

// DefaultMultipartContentType is the Content-type Buffer assigns a
// multipart part that was never given one explicitly.
const DefaultMultipartContentType = "multipart/mixed"

// BufferMode records how a Buffer has been used so far.
type BufferMode int

const (
	// ModeUnset means neither Write nor Add has been called yet.
	ModeUnset BufferMode = iota

	// ModeSingle means the Buffer has been used as an io.Writer.
	ModeSingle

	// ModeMultipart means parts have been added via Add.
	ModeMultipart
)

var (
	// ErrPartsBuffer is the value Write panics with if Add was already
	// called.
	ErrPartsBuffer = errors.New("part: buffer is already in multipart mode")

	// ErrOpaqueBuffer is the value Add panics with if Write was already
	// called.
	ErrOpaqueBuffer = errors.New("part: buffer is already in single-content mode")

	// ErrModeUnset is returned by Build when called before anything has
	// been written to the Buffer.
	ErrModeUnset = errors.New("part: no content has been added to this buffer")
)

// Buffer constructs a new part from scratch: a header to fill in directly,
// plus either bytes written to it as an io.Writer (a leaf) or a sequence
// of already-built parts added to it (a multipart container). Exactly one
// of those two may be used on a given Buffer.
type Buffer struct {
	header.Header

	parts []Part
	buf   *bytes.Buffer
}

// Mode reports which of the two construction styles this Buffer has
// committed to, or ModeUnset if neither has been used yet.
func (b *Buffer) Mode() BufferMode {
	if b.parts != nil {
		return ModeMultipart
	}
	if b.buf != nil {
		return ModeSingle
	}
	return ModeUnset
}

func (b *Buffer) initBuffer() error {
	if b.parts != nil {
		return ErrPartsBuffer
	}
	if b.buf == nil {
		b.buf = &bytes.Buffer{}
	}
	return nil
}

func (b *Buffer) initParts(capacity int) error {
	if capacity == 0 {
		capacity = 4
	}
	if b.buf != nil {
		return ErrOpaqueBuffer
	}
	if b.parts == nil {
		b.parts = make([]Part, 0, capacity)
	}
	return nil
}

// Add appends one or more already-built parts, committing the Buffer to
// multipart mode. Panics if Write was already called on this Buffer.
func (b *Buffer) Add(parts ...Part) {
	if err := b.initParts(0); err != nil {
		panic(err)
	}
	b.parts = append(b.parts, parts...)
}

// Write implements io.Writer, committing the Buffer to single-content
// mode. Panics if Add was already called on this Buffer.
func (b *Buffer) Write(p []byte) (int, error) {
	if err := b.initBuffer(); err != nil {
		panic(err)
	}
	return b.buf.Write(p)
}

func (b *Buffer) prepareForMultipartOutput() {
	if _, err := b.GetMediaType(); errors.Is(err, header.ErrNoSuchField) {
		b.SetMediaType(DefaultMultipartContentType)
	}
	if _, err := b.GetBoundary(); errors.Is(err, header.ErrNoSuchFieldParameter) {
		_ = b.SetBoundary(generateBoundary())
	}
}

// Build returns the finished part: a leaf MimePart holding whatever was
// written to the Buffer as an io.Writer, or a multipart MimePart holding
// whatever was added via Add, with a Content-type/boundary filled in
// automatically if the caller never set one. After calling Build the
// Buffer should be discarded.
func (b *Buffer) Build() (Part, error) {
	switch b.Mode() {
	case ModeSingle:
		h := b.Header
		return NewMimePart(&h, NewOverrideStreamContainer(b.buf.Bytes())), nil

	case ModeMultipart:
		b.prepareForMultipartOutput()
		boundary, _ := b.GetBoundary()

		h := b.Header
		mp := NewMimePart(&h, NewOverrideStreamContainer(nil))
		mp.SetMultipart(true)
		mp.SetBoundary(boundary)

		ec := NewEagerChildren(mp)
		for _, p := range b.parts {
			p.setParent(mp)
		}
		ec.children = b.parts
		mp.SetChildren(ec)

		return mp, nil

	default:
		return nil, ErrModeUnset
	}
}

var boundaryLetters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")

// generateBoundary produces a random MIME boundary, unique enough for
// practical purposes without needing to scan the parts it will separate.
func generateBoundary() string {
	s := make([]rune, 30)
	for i := range s {
		s[i] = boundaryLetters[rand.Intn(len(boundaryLetters))]
	}
	return string(s)
}
