package parser

import (
	"errors"
	"io"

	"github.com/mimeforge/mimetree/part"
)

// preambleEpilogueSetter is satisfied by *part.MimePart and *part.Message
// (which embeds it); it lets proxy record preamble/epilogue bytes without
// needing to know which of the two concrete types it is holding.
type preambleEpilogueSetter interface {
	SetPreamble([]byte)
	SetEpilogue([]byte)
}

// proxy is the part.Expander bound to exactly one MimePart or Message that
// still has children left to discover. It is the engine behind the lazy
// streaming contract: every method it implements reads from the single
// ByteSource shared by the whole parse, advancing the cursor exactly as far
// as the caller's request requires and no further, trusting that the
// "drain previous sibling before reading next" protocol enforced by
// LazyChildren.parseNextPart keeps that cursor where this proxy expects it
// to be whenever it is asked to act.
type proxy struct {
	c     *core
	depth int
	kind  kind

	// innerBoundary is this part's own boundary (kindMultipart only).
	innerBoundary string

	// enclosingBoundary and isRootEnclosing describe where this part's own
	// content region ends: at a line matching "--enclosingBoundary" or
	// "--enclosingBoundary--" belonging to some ancestor multipart, or, if
	// isRootEnclosing, only at EOF.
	enclosingBoundary string
	isRootEnclosing   bool

	owner    part.Part
	resolved bool
	done     bool

	// child holds the single nested message for a kindMessage proxy,
	// between the call that parses it and the following call that
	// finalizes the owner's content end from it.
	child part.Part
}

func (px *proxy) bind(p part.Part) { px.owner = p }

// ResolveContent locates the start of this part's children, if any, without
// reading past it: for a multipart part, it scans the preamble up to (but
// not consuming) the first boundary line; for a message/rfc822 or leaf
// part, there is nothing to scan ahead of, so it only marks itself resolved.
func (px *proxy) ResolveContent() error {
	if px.resolved {
		return nil
	}
	px.resolved = true

	if px.kind != kindMultipart {
		return nil
	}

	preamble, found, err := scanPreamble(px.c.src, px.innerBoundary, px.enclosingBoundary, px.isRootEnclosing, px.c.opts.maxPartLen)
	if err != nil {
		return err
	}
	px.setPreamble(preamble)

	if !found {
		px.owner.SetMalformedBoundary()
		px.done = true
		px.owner.StreamContainer().SetContentEnd(px.c.src.Tell())
	}
	return nil
}

// ReadNextChild implements part.Expander. Its shape depends on what kind of
// region the owning part occupies:
//
//   - kindLeaf: there is never a child to produce; the first (and only)
//     call scans forward to this part's own content end and reports false.
//   - kindMessage: the first call parses the single embedded message; the
//     second call, made once that child has been fully drained by
//     LazyChildren's sibling-draining protocol, finalizes the owner's
//     content end from the child's own and reports false.
//   - kindMultipart: each call consumes one boundary line already left
//     unconsumed by ResolveContent or the previous call. A separator line
//     yields one more child; the terminator line ends the sequence, after
//     which the epilogue is scanned and the owner's content end finalized.
func (px *proxy) ReadNextChild(lc *part.LazyChildren) (bool, error) {
	if px.done {
		return false, nil
	}

	switch px.kind {
	case kindLeaf:
		return px.readLeafEnd()
	case kindMessage:
		return px.readMessageChild(lc)
	case kindMultipart:
		return px.readMultipartChild(lc)
	default:
		return false, nil
	}
}

func (px *proxy) readLeafEnd() (bool, error) {
	end, found, err := scanToBoundary(px.c.src, px.enclosingBoundary, px.isRootEnclosing, px.c.opts.maxPartLen)
	if err != nil {
		return false, err
	}
	if !found && !px.isRootEnclosing {
		px.owner.SetTruncated()
	}
	px.owner.StreamContainer().SetContentEnd(end)

	if px.c.opts.decode {
		if err := px.applyEagerDecode(); err != nil {
			return false, err
		}
	}

	px.done = true
	return false, nil
}

// applyEagerDecode replaces this leaf's stored content with its
// transfer-decoded form, mirroring the teacher's DecodeTransferEncoding
// option: the decoded bytes become the part's content, and WriteTo
// re-applies the transfer encoding on the way back out via the same
// override mechanism used by ordinary content mutation.
func (px *proxy) applyEagerDecode() error {
	r, err := px.owner.StreamContainer().ContentReader(px.owner.Headers(), "")
	if err != nil {
		return err
	}
	return px.owner.SetContentStream(r)
}

func (px *proxy) readMessageChild(lc *part.LazyChildren) (bool, error) {
	if px.child == nil {
		headerStart := px.owner.StreamContainer().ContentStart()
		child, err := px.c.buildPart(headerStart, px.depth+1, px.enclosingBoundary, px.isRootEnclosing)
		if err != nil {
			return false, err
		}
		px.child = child
		lc.AddParsedChild(child)
		return true, nil
	}

	px.owner.StreamContainer().SetContentEnd(px.child.StreamContainer().ContentEnd())
	if px.child.Truncated() {
		px.owner.SetTruncated()
	}
	px.done = true
	return false, nil
}

func (px *proxy) readMultipartChild(lc *part.LazyChildren) (bool, error) {
	line, err := px.c.src.ReadLine()
	if errors.Is(err, io.EOF) {
		// The terminator was never reached; ResolveContent already
		// confirmed the separator exists, so running out of input here
		// means the message was cut off mid-part.
		px.owner.SetTruncated()
		px.owner.StreamContainer().SetContentEnd(px.c.src.Tell())
		px.done = true
		return false, nil
	}
	if err != nil {
		return false, wrapIO(err)
	}

	t := trimBoundaryLine(line)
	term := "--" + px.innerBoundary + "--"
	if t == term {
		return false, px.finishMultipart()
	}

	childHeaderStart := px.c.src.Tell()
	child, err := px.c.buildPart(childHeaderStart, px.depth+1, px.innerBoundary, false)
	if err != nil {
		return false, err
	}
	lc.AddParsedChild(child)
	return true, nil
}

// finishMultipart scans and records the epilogue following the terminator
// line already consumed by readMultipartChild, and finalizes the owner's
// content end.
func (px *proxy) finishMultipart() error {
	epStart := px.c.src.Tell()
	epEnd, found, err := scanToBoundary(px.c.src, px.enclosingBoundary, px.isRootEnclosing, px.c.opts.maxPartLen)
	if err != nil {
		return err
	}
	if !found && !px.isRootEnclosing {
		px.owner.SetTruncated()
	}

	epilogue, err := readAll(px.c.src, epStart, epEnd)
	if err != nil {
		return err
	}
	px.setEpilogue(epilogue)
	px.owner.StreamContainer().SetContentEnd(epEnd)
	px.done = true
	return nil
}

func (px *proxy) setPreamble(b []byte) {
	if s, ok := px.owner.(preambleEpilogueSetter); ok {
		s.SetPreamble(b)
	}
}

func (px *proxy) setEpilogue(b []byte) {
	if s, ok := px.owner.(preambleEpilogueSetter); ok {
		s.SetEpilogue(b)
	}
}
