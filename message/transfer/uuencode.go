package transfer

import (
	"bufio"
	"bytes"
	"io"
)

// uuEncode translates the low 6 bits of b into the traditional uuencode
// alphabet: 0 maps to a space character (or, in the stricter "historic"
// form, a backtick), and 1-63 map to '!'-'_'. We always emit the backtick
// form, which avoids the ambiguity of trailing spaces being stripped by
// mail transport.
func uuEncodeByte(b byte) byte {
	b &= 0x3f
	if b == 0 {
		return '`'
	}
	return b + 0x20
}

func uuDecodeByte(c byte) byte {
	if c == '`' || c == ' ' {
		return 0
	}
	return (c - 0x20) & 0x3f
}

// NewUUEncodeEncoder returns an io.WriteCloser that uuencodes bytes written
// to it (without the "begin"/"end" marker lines, which belong to the
// caller, since those carry the file mode and name rather than any data)
// and writes the result, 45 input bytes (60 output characters) per line, to
// w.
func NewUUEncodeEncoder(w io.Writer) io.WriteCloser {
	return &uuEncoder{w: w}
}

type uuEncoder struct {
	w   io.Writer
	buf []byte
}

const uuLineBytes = 45

func (e *uuEncoder) Write(p []byte) (int, error) {
	e.buf = append(e.buf, p...)
	for len(e.buf) >= uuLineBytes {
		if err := e.writeLine(e.buf[:uuLineBytes]); err != nil {
			return 0, err
		}
		e.buf = e.buf[uuLineBytes:]
	}
	return len(p), nil
}

func (e *uuEncoder) writeLine(chunk []byte) error {
	line := make([]byte, 1, 1+((len(chunk)+2)/3)*4+1)
	line[0] = uuEncodeByte(byte(len(chunk)))

	for i := 0; i < len(chunk); i += 3 {
		var b0, b1, b2 byte
		b0 = chunk[i]
		if i+1 < len(chunk) {
			b1 = chunk[i+1]
		}
		if i+2 < len(chunk) {
			b2 = chunk[i+2]
		}

		line = append(line,
			uuEncodeByte(b0>>2),
			uuEncodeByte(b0<<4|b1>>4),
			uuEncodeByte(b1<<2|b2>>6),
			uuEncodeByte(b2),
		)
	}

	line = append(line, '\n')
	_, err := e.w.Write(line)
	return err
}

func (e *uuEncoder) Close() error {
	if len(e.buf) > 0 {
		if err := e.writeLine(e.buf); err != nil {
			return err
		}
		e.buf = nil
	}
	_, err := e.w.Write([]byte("`\n"))
	return err
}

// NewUUEncodeDecoder returns an io.Reader that decodes uuencoded lines read
// from r back into binary data. It expects only the data lines themselves
// (no "begin"/"end" markers) and stops at the first zero-length line, per
// the format's own termination convention.
func NewUUEncodeDecoder(r io.Reader) io.Reader {
	return &uuDecoder{sc: bufio.NewScanner(r)}
}

type uuDecoder struct {
	sc   *bufio.Scanner
	buf  bytes.Buffer
	done bool
}

func (d *uuDecoder) Read(p []byte) (int, error) {
	for d.buf.Len() == 0 && !d.done {
		if !d.sc.Scan() {
			d.done = true
			break
		}
		line := d.sc.Bytes()
		if len(line) == 0 {
			continue
		}

		n := int(uuDecodeByte(line[0]))
		if n == 0 {
			d.done = true
			break
		}

		data := line[1:]
		for i := 0; i < len(data) && d.buf.Len() < n; i += 4 {
			var c [4]byte
			for j := 0; j < 4; j++ {
				if i+j < len(data) {
					c[j] = uuDecodeByte(data[i+j])
				}
			}
			d.buf.WriteByte(c[0]<<2 | c[1]>>4)
			d.buf.WriteByte(c[1]<<4 | c[2]>>2)
			d.buf.WriteByte(c[2]<<6 | c[3])
		}
		if d.buf.Len() > n {
			d.buf.Truncate(n)
		}
	}

	if d.buf.Len() == 0 {
		if err := d.sc.Err(); err != nil {
			return 0, err
		}
		return 0, io.EOF
	}

	return d.buf.Read(p)
}
