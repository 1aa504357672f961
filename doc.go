// Package email represents a newly rewritten version of
// github.com/zostay/go-email. The original version was a largely a port from
// Perl libraries named Email::Simple and Email::MIME. This version takes all
// the information I've learned from Golang best practices, knowledge of email,
// code ported from those Perl modules, and tried to create a very go-ish
// implementation of the library.
//
// The message tree lives in package part. parser.Parse reads a message and
// returns its root: a *part.Message for a MIME message, or a
// *part.NonMimePart for a message with neither a Content-type nor a
// Mime-version header. Children are discovered lazily: the parser reads only
// as far into the input as the caller's traversal of the tree requires. A
// multipart part holds its children in a part.ChildrenContainer; a leaf part
// exposes its body through ContentReader, which applies transfer decoding
// and, on request, charset conversion.
//
// If you want to build new parts, a part.Buffer constructs either a leaf
// (written to as an io.Writer) or a multipart part (built-up parts added to
// it).
//
// If you want to transform messages, parse them with parser.Parse, change
// headers through each part's Headers, replace a leaf's body with
// SetContentStream, or add and remove children through the children
// container, then write the tree back out with package writer or the part's
// own WriteTo method.
//
// For dealing with messages headers, the high-level interface is provided via
// header.Header. Low-level access can be granted by using header.Header to
// work directly with field.Field objects, but typically, just working with
// fields as part of the header object is probably all most end users will need.
//
// In addition, I've attempted to incorporate some improvements from RFC 5322 to
// help ensure messages generated from this library are correct and using this
// library is convenient.
//
// Finally, as much as possible, I've tried to preserve the round-tripping
// capabilities from the previous library. If you modify some aspect of a
// message, the rest will remain byte-for-byte identical on output, insofaras I
// can manage to pull that off. As I use this as the basis for some mail
// filtering software, it is important that messages get written out the same as
// they started.
package email
