package parser

import "bufio"

// Constants related to Parse() options, grounded on the teacher's
// message/parse.go constants of the same name and meaning.
const (
	// DefaultMaxMultipartDepth is the default depth the parser will recurse
	// into a message.
	DefaultMaxMultipartDepth = 10

	// DefaultChunkSize is the default size of chunks ByteSource pulls from
	// the underlying io.Reader.
	DefaultChunkSize = 16_384

	// DefaultMaxHeaderLength is the default maximum byte length to scan
	// before giving up on finding the end of a part's header block.
	DefaultMaxHeaderLength = bufio.MaxScanTokenSize

	// DefaultMaxPartLength is the default maximum byte length to scan
	// before giving up on finding a part's terminating boundary.
	DefaultMaxPartLength = bufio.MaxScanTokenSize
)

type options struct {
	maxHeaderLen int
	maxPartLen   int
	maxDepth     int
	chunkSize    int
	decode       bool
}

func defaultOptions() options {
	return options{
		maxHeaderLen: DefaultMaxHeaderLength,
		maxPartLen:   DefaultMaxPartLength,
		maxDepth:     DefaultMaxMultipartDepth,
		chunkSize:    DefaultChunkSize,
		decode:       false,
	}
}

// ParseOption modifies how Parse behaves.
type ParseOption func(o *options)

// WithMaxHeaderLength caps the number of bytes a single part's header block
// may occupy before Parse fails with ErrLargeHeader. A value <= 0 removes
// the limit. Defaults to DefaultMaxHeaderLength.
func WithMaxHeaderLength(n int) ParseOption {
	return func(o *options) { o.maxHeaderLen = n }
}

// WithMaxPartLength caps the number of content bytes Parse will scan while
// looking for a part's terminating boundary before failing with
// ErrLargePart. Defaults to DefaultMaxPartLength.
func WithMaxPartLength(n int) ParseOption {
	return func(o *options) { o.maxPartLen = n }
}

// DecodeTransferEncoding enables eager decoding of Content-transfer-encoding
// on leaf parts' content as it is resolved, rather than leaving it to be
// decoded lazily by ContentReader. By default transfer encoding is left
// alone, which allows safer byte-exact round-tripping.
func DecodeTransferEncoding() ParseOption {
	return func(o *options) { o.decode = true }
}

// WithChunkSize controls how many bytes ByteSource pulls from the
// underlying io.Reader at a time. Defaults to DefaultChunkSize.
func WithChunkSize(n int) ParseOption {
	return func(o *options) { o.chunkSize = n }
}

// WithMaxDepth controls how many levels of multipart nesting Parse will
// expand into child parts before treating further nesting as opaque leaf
// content. Defaults to DefaultMaxMultipartDepth. A negative value removes
// the limit; see WithUnlimitedRecursion.
func WithMaxDepth(n int) ParseOption {
	return func(o *options) { o.maxDepth = n }
}

// WithoutMultipart disables multipart expansion entirely: every part is
// returned as a single opaque leaf, regardless of its Content-type.
func WithoutMultipart() ParseOption {
	return func(o *options) { o.maxDepth = 0 }
}

// WithoutRecursion allows exactly one level of multipart expansion: the
// root's children are parsed, but any multipart part below the root is
// left unexpanded as an opaque leaf.
func WithoutRecursion() ParseOption {
	return func(o *options) { o.maxDepth = 1 }
}

// WithUnlimitedRecursion removes the recursion depth limit altogether.
func WithUnlimitedRecursion() ParseOption {
	return func(o *options) { o.maxDepth = -1 }
}
