package writer_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mimeforge/mimetree/parser"
	"github.com/mimeforge/mimetree/writer"
)

const sample = "From: sterling@example.com\r\n" +
	"To: eve@example.com\r\n" +
	"Subject: Hello\r\n" +
	"Content-type: multipart/alternative; boundary=bound1\r\n" +
	"\r\n" +
	"--bound1\r\n" +
	"Content-type: text/plain\r\n" +
	"\r\n" +
	"plain body\r\n" +
	"--bound1\r\n" +
	"Content-type: text/html\r\n" +
	"\r\n" +
	"<p>html body</p>\r\n" +
	"--bound1--\r\n"

// TestWriteUntouchedTreeRoundTrips checks that a part never once traversed
// by the caller still produces complete, correct output: WriteTo must pull
// whatever it still needs from the underlying source itself.
func TestWriteUntouchedTreeRoundTrips(t *testing.T) {
	t.Parallel()

	root, err := parser.Parse(context.Background(), bytes.NewReader([]byte(sample)))
	require.NoError(t, err)

	got, err := writer.Bytes(root)
	require.NoError(t, err)
	assert.Equal(t, sample, string(got))
}

func TestWriteToFile(t *testing.T) {
	t.Parallel()

	root, err := parser.Parse(context.Background(), bytes.NewReader([]byte(sample)))
	require.NoError(t, err)

	dir := t.TempDir()
	path := dir + "/out.eml"

	n, err := writer.WriteToFile(root, path)
	require.NoError(t, err)
	assert.Equal(t, int64(len(sample)), n)
}
