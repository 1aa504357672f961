package parser

import (
	"strings"

	"github.com/mimeforge/mimetree/message/header"
)

// kind is the kind of region a proxy's owning part occupies, independent of
// the concrete part.Part type PartBuilder ultimately chooses for it.
type kind int

const (
	// kindLeaf is a single opaque content region with no children.
	kindLeaf kind = iota

	// kindMultipart is a boundary-delimited sequence of children.
	kindMultipart

	// kindMessage is a message/rfc822 container: its content is exactly
	// one nested message, with no boundary syntax of its own.
	kindMessage
)

// classification is PartBuilder's verdict on one part's header block: what
// kind of region it occupies, and whether it should be represented as a
// NonMimePart (root only) instead of a MimePart/Message.
type classification struct {
	kind              kind
	innerBoundary     string
	isNonMime         bool
	malformedBoundary bool
}

// classify inspects h and decides what kind of part it describes, per
// spec.md §4.7's non-MIME/multipart/message-rfc822 detection rules and
// §4.8's factory dispatch table. depth is how many multipart/message
// containers already enclose this part; once it reaches o.maxDepth (unless
// negative, meaning unlimited), any multipart or message/rfc822 content is
// left unexpanded as an opaque leaf rather than recursed into.
func classify(h *header.Header, depth int, o *options) classification {
	if depth == 0 {
		_, ctErr := h.Get(header.ContentType)
		_, mvErr := h.Get("Mime-version")
		if ctErr != nil && mvErr != nil {
			return classification{kind: kindLeaf, isNonMime: true}
		}
	}

	mt, err := h.GetMediaType()
	if err != nil {
		return classification{kind: kindLeaf}
	}
	mt = strings.ToLower(mt)

	if mt == "message/rfc822" {
		if withinDepth(depth, o) {
			return classification{kind: kindMessage}
		}
		return classification{kind: kindLeaf}
	}

	if strings.HasPrefix(mt, "multipart/") {
		b, berr := h.GetBoundary()
		if berr != nil || b == "" {
			return classification{kind: kindLeaf, malformedBoundary: true}
		}
		if !withinDepth(depth, o) {
			return classification{kind: kindLeaf}
		}
		return classification{kind: kindMultipart, innerBoundary: b}
	}

	return classification{kind: kindLeaf}
}

func withinDepth(depth int, o *options) bool {
	if o.maxDepth < 0 {
		return true
	}
	return depth < o.maxDepth
}
