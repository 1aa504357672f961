// Package convenience holds thin, read-mostly helpers layered over
// part.ChildrenContainer's filtered traversal: finding the message's first
// text/plain or text/html body, counting and listing attachments, and
// recognizing a multipart/signed message and its signature part. None of
// this carries any parsing logic of its own; it is all expressed in terms
// of part.PartFilter and part.Part.Children, exactly the collaborators the
// core spec already exposes for this purpose.
package convenience

import (
	"errors"
	"strings"

	"github.com/mimeforge/mimetree/part"
)

// ErrNoSuchPart is returned by the Get*Part helpers when no part in the
// tree matches what was asked for.
var ErrNoSuchPart = errors.New("convenience: no matching part found")

// GetTextPart returns the first text/plain leaf found in a depth-first
// traversal of p's subtree (p included).
func GetTextPart(p part.Part) (part.Part, error) {
	return firstLeafOfType(p, "text/plain")
}

// GetHtmlPart returns the first text/html leaf found in a depth-first
// traversal of p's subtree (p included).
func GetHtmlPart(p part.Part) (part.Part, error) {
	return firstLeafOfType(p, "text/html")
}

func firstLeafOfType(p part.Part, mt string) (part.Part, error) {
	f := part.NewPartFilter().IncludeType(mt).IncludeMultipartContainers(false).AsFilter()
	found, err := p.Children().GetPart(0, f)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, ErrNoSuchPart
	}
	return found, nil
}

// SetTextPart replaces the content of the first text/plain leaf in p's
// subtree with body, re-encoded per that part's own Content-transfer-encoding
// on write. It returns ErrNoSuchPart if the tree has no text/plain leaf to
// replace.
func SetTextPart(p part.Part, body string) error {
	tp, err := GetTextPart(p)
	if err != nil {
		return err
	}
	return tp.SetContentStream(strings.NewReader(body))
}

// GetAllAttachmentParts returns every leaf part in p's subtree (p included)
// whose Content-disposition is "attachment", in depth-first order.
func GetAllAttachmentParts(p part.Part) ([]part.Part, error) {
	f := part.NewPartFilter().Attachment().IncludeMultipartContainers(false).AsFilter()
	return p.Children().GetAllParts(f)
}

// AttachmentCount reports how many attachment parts p's subtree contains.
func AttachmentCount(p part.Part) (int, error) {
	ps, err := GetAllAttachmentParts(p)
	if err != nil {
		return 0, err
	}
	return len(ps), nil
}

// IsSigned reports whether p's Content-type is multipart/signed.
func IsSigned(p part.Part) bool {
	mt, err := p.Headers().GetMediaType()
	if err != nil {
		return false
	}
	return strings.EqualFold(mt, "multipart/signed")
}

// GetSignaturePart returns the signature part of a multipart/signed p: its
// second direct child, per RFC 1847. The child's Content-type is not
// compared with the "protocol" parameter on p's own Content-type. Returns
// ErrNoSuchPart if p is not multipart/signed or has fewer than two children.
func GetSignaturePart(p part.Part) (part.Part, error) {
	if !IsSigned(p) {
		return nil, ErrNoSuchPart
	}

	sig, ok, err := p.Children().DirectChildAt(1)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoSuchPart
	}
	return sig, nil
}

// GetSignedContentPart returns the first, signed-over part of a
// multipart/signed p: its first direct child. Returns ErrNoSuchPart if p is
// not multipart/signed or has no children.
func GetSignedContentPart(p part.Part) (part.Part, error) {
	if !IsSigned(p) {
		return nil, ErrNoSuchPart
	}

	content, ok, err := p.Children().DirectChildAt(0)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoSuchPart
	}
	return content, nil
}
