package convenience_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mimeforge/mimetree/convenience"
	"github.com/mimeforge/mimetree/parser"
)

const alternativeWithAttachment = "From: sterling@example.com\r\n" +
	"To: eve@example.com\r\n" +
	"Content-type: multipart/mixed; boundary=outer\r\n" +
	"\r\n" +
	"--outer\r\n" +
	"Content-type: multipart/alternative; boundary=inner\r\n" +
	"\r\n" +
	"--inner\r\n" +
	"Content-type: text/plain\r\n" +
	"\r\n" +
	"plain body\r\n" +
	"--inner\r\n" +
	"Content-type: text/html\r\n" +
	"\r\n" +
	"<p>html body</p>\r\n" +
	"--inner--\r\n" +
	"--outer\r\n" +
	"Content-type: application/octet-stream\r\n" +
	"Content-disposition: attachment; filename=data.bin\r\n" +
	"\r\n" +
	"binary\r\n" +
	"--outer--\r\n"

const signedMessage = "From: sterling@example.com\r\n" +
	"To: eve@example.com\r\n" +
	"Content-type: multipart/signed; protocol=\"application/pgp-signature\"; boundary=sig\r\n" +
	"\r\n" +
	"--sig\r\n" +
	"Content-type: text/plain\r\n" +
	"\r\n" +
	"signed content\r\n" +
	"--sig\r\n" +
	"Content-type: application/pgp-signature\r\n" +
	"\r\n" +
	"-----BEGIN PGP SIGNATURE-----\r\n" +
	"-----END PGP SIGNATURE-----\r\n" +
	"--sig--\r\n"

func TestGetTextAndHtmlParts(t *testing.T) {
	t.Parallel()

	root, err := parser.Parse(context.Background(), bytes.NewReader([]byte(alternativeWithAttachment)))
	require.NoError(t, err)

	text, err := convenience.GetTextPart(root)
	require.NoError(t, err)
	r, err := text.ContentReader("")
	require.NoError(t, err)
	b, _ := io.ReadAll(r)
	assert.Equal(t, "plain body\r\n", string(b))

	html, err := convenience.GetHtmlPart(root)
	require.NoError(t, err)
	r, err = html.ContentReader("")
	require.NoError(t, err)
	b, _ = io.ReadAll(r)
	assert.Equal(t, "<p>html body</p>\r\n", string(b))
}

func TestAttachmentCount(t *testing.T) {
	t.Parallel()

	root, err := parser.Parse(context.Background(), bytes.NewReader([]byte(alternativeWithAttachment)))
	require.NoError(t, err)

	n, err := convenience.AttachmentCount(root)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestIsSignedAndSignatureParts(t *testing.T) {
	t.Parallel()

	root, err := parser.Parse(context.Background(), bytes.NewReader([]byte(signedMessage)))
	require.NoError(t, err)

	assert.True(t, convenience.IsSigned(root))

	content, err := convenience.GetSignedContentPart(root)
	require.NoError(t, err)
	mt, _ := content.Headers().GetMediaType()
	assert.Equal(t, "text/plain", mt)

	sig, err := convenience.GetSignaturePart(root)
	require.NoError(t, err)
	mt, _ = sig.Headers().GetMediaType()
	assert.Equal(t, "application/pgp-signature", mt)
}

func TestIsSignedFalseForOrdinaryMessage(t *testing.T) {
	t.Parallel()

	root, err := parser.Parse(context.Background(), bytes.NewReader([]byte(alternativeWithAttachment)))
	require.NoError(t, err)

	assert.False(t, convenience.IsSigned(root))

	_, err = convenience.GetSignaturePart(root)
	assert.ErrorIs(t, err, convenience.ErrNoSuchPart)
}
