package part

import (
	"github.com/mimeforge/mimetree/message/header"
)

// Message is a MimePart that additionally marks the root of a tree, or,
// below the root, a part whose Content-type is message/rfc822. Such a part
// holds exactly one child, the nested message's own header and body, which
// the parser builds as an ordinary MimePart. Reusing Message for the
// message/rfc822 part avoids inventing a second "sub-message" type, so this
// package uses Message at any depth rather than only at the tree root.
type Message struct {
	MimePart
}

// NewMessage returns a Message with no children yet attached. Identical in
// shape to NewMimePart; kept as a distinct constructor so that callers (and
// the parser's factory) can express "this is a message" without relying on
// a naked type conversion.
func NewMessage(h *header.Header, stream *StreamContainer) *Message {
	m := &Message{}
	m.headers = h
	m.stream = stream
	m.children = NewEagerChildren(m)
	return m
}
