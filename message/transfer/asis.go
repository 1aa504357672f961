package transfer

import "io"

// NewAsIsEncoder returns w wrapped as an io.WriteCloser whose Close is a
// no-op, for the 7bit/8bit/binary/no-encoding transcodings that leave bytes
// untouched.
func NewAsIsEncoder(w io.Writer) io.WriteCloser {
	return closeGuard{w}
}

// NewAsIsDecoder returns r unmodified.
func NewAsIsDecoder(r io.Reader) io.Reader {
	return r
}
