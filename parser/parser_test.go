package parser_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mimeforge/mimetree/convenience"
	"github.com/mimeforge/mimetree/parser"
	"github.com/mimeforge/mimetree/part"
	"github.com/mimeforge/mimetree/writer"
)

const simpleText = "From: sterling@example.com\r\n" +
	"To: eve@example.com\r\n" +
	"Subject: Hello\r\n" +
	"Content-type: text/plain\r\n" +
	"\r\n" +
	"Hello World!\r\n"

const twoPartAlternative = "From: sterling@example.com\r\n" +
	"To: eve@example.com\r\n" +
	"Subject: Hello\r\n" +
	"Content-type: multipart/alternative; boundary=bound1\r\n" +
	"\r\n" +
	"preamble\r\n" +
	"--bound1\r\n" +
	"Content-type: text/plain\r\n" +
	"\r\n" +
	"plain body\r\n" +
	"--bound1\r\n" +
	"Content-type: text/html\r\n" +
	"\r\n" +
	"<p>html body</p>\r\n" +
	"--bound1--\r\n" +
	"epilogue\r\n"

const nestedMultipart = "From: sterling@example.com\r\n" +
	"To: eve@example.com\r\n" +
	"Subject: Nested\r\n" +
	"Content-type: multipart/mixed; boundary=outer\r\n" +
	"\r\n" +
	"--outer\r\n" +
	"Content-type: multipart/alternative; boundary=inner\r\n" +
	"\r\n" +
	"--inner\r\n" +
	"Content-type: text/plain\r\n" +
	"\r\n" +
	"plain\r\n" +
	"--inner\r\n" +
	"Content-type: text/html\r\n" +
	"\r\n" +
	"<p>html</p>\r\n" +
	"--inner--\r\n" +
	"--outer\r\n" +
	"Content-type: application/pdf\r\n" +
	"Content-disposition: attachment; filename=x.pdf\r\n" +
	"\r\n" +
	"%PDF-1\r\n" +
	"--outer--\r\n"

const uuencodedMessage = "From: sterling@example.com\r\n" +
	"To: eve@example.com\r\n" +
	"Subject: Uuencoded\r\n" +
	"\r\n" +
	"Here is a file:\r\n" +
	"\r\n" +
	"begin 644 hello.txt\r\n" +
	"+:&5L;&\\L(%=O<FQD(0\r\n" +
	"`\r\n" +
	"end\r\n" +
	"\r\n" +
	"Thanks!\r\n"

func mustParse(t *testing.T, s string, opts ...parser.ParseOption) part.Part {
	t.Helper()
	p, err := parser.Parse(context.Background(), bytes.NewReader([]byte(s)), opts...)
	require.NoError(t, err)
	return p
}

func TestParseSimpleTextMessage(t *testing.T) {
	t.Parallel()

	root := mustParse(t, simpleText)
	m, ok := root.(*part.Message)
	require.True(t, ok)
	assert.False(t, m.IsMultipart())

	subj, err := m.Headers().GetSubject()
	require.NoError(t, err)
	assert.Equal(t, "Hello", subj)

	r, err := m.ContentReader("")
	require.NoError(t, err)
	body, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Hello World!\r\n", string(body))
}

func TestParseTwoPartAlternative(t *testing.T) {
	t.Parallel()

	root := mustParse(t, twoPartAlternative)
	m, ok := root.(*part.Message)
	require.True(t, ok)
	assert.True(t, m.IsMultipart())

	children, err := m.Children().GetChildParts(nil)
	require.NoError(t, err)
	require.Len(t, children, 2)

	mt0, _ := children[0].Headers().GetMediaType()
	mt1, _ := children[1].Headers().GetMediaType()
	assert.Equal(t, "text/plain", mt0)
	assert.Equal(t, "text/html", mt1)

	r0, err := children[0].ContentReader("")
	require.NoError(t, err)
	b0, _ := io.ReadAll(r0)
	assert.Equal(t, "plain body\r\n", string(b0))

	r1, err := children[1].ContentReader("")
	require.NoError(t, err)
	b1, _ := io.ReadAll(r1)
	assert.Equal(t, "<p>html body</p>\r\n", string(b1))
}

// TestLazyExpansionEquivalence checks that asking for the second child
// directly, without ever visiting the first, yields the same part as
// first draining every child in order does. This is the heart of the
// lazy streaming contract: every traversal path must agree.
func TestLazyExpansionEquivalence(t *testing.T) {
	t.Parallel()

	lazyRoot := mustParse(t, twoPartAlternative)
	direct, ok, err := lazyRoot.Children().DirectChildAt(1)
	require.NoError(t, err)
	require.True(t, ok)
	directMT, _ := direct.Headers().GetMediaType()

	drainedRoot := mustParse(t, twoPartAlternative)
	all, err := drainedRoot.Children().GetAllParts(nil)
	require.NoError(t, err)

	var drainedSecond part.Part
	count := 0
	for _, p := range all {
		if p == drainedRoot {
			continue
		}
		if count == 1 {
			drainedSecond = p
			break
		}
		count++
	}
	require.NotNil(t, drainedSecond)
	drainedMT, _ := drainedSecond.Headers().GetMediaType()

	assert.Equal(t, drainedMT, directMT)
	assert.Equal(t, "text/html", directMT)
}

func TestParseNestedMultipart(t *testing.T) {
	t.Parallel()

	root := mustParse(t, nestedMultipart)

	outerChildren, err := root.Children().GetChildParts(nil)
	require.NoError(t, err)
	require.Len(t, outerChildren, 2)

	alt := outerChildren[0]
	assert.True(t, alt.IsMultipart())
	altChildren, err := alt.Children().GetChildParts(nil)
	require.NoError(t, err)
	require.Len(t, altChildren, 2)

	pdf := outerChildren[1]
	disp, err := pdf.Headers().GetContentDisposition()
	require.NoError(t, err)
	assert.Equal(t, "attachment", disp.Disposition())

	attachments, err := convenience.GetAllAttachmentParts(root)
	require.NoError(t, err)
	require.Len(t, attachments, 1)
	assert.Same(t, pdf, attachments[0])
}

func TestParseUuencodedNonMimePart(t *testing.T) {
	t.Parallel()

	root := mustParse(t, uuencodedMessage)
	np, ok := root.(*part.NonMimePart)
	require.True(t, ok)

	stanzas, err := np.Children().GetChildParts(nil)
	require.NoError(t, err)
	require.Len(t, stanzas, 1)

	uu, ok := stanzas[0].(*part.UUEncodedPart)
	require.True(t, ok)
	assert.Equal(t, "hello.txt", uu.Filename())
}

func TestMutationRoundTripViaSetTextPart(t *testing.T) {
	t.Parallel()

	root := mustParse(t, simpleText)

	err := convenience.SetTextPart(root, "new\r\n")
	require.NoError(t, err)

	var out bytes.Buffer
	_, err = writer.Write(root, &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "new\r\n")
	assert.NotContains(t, out.String(), "Hello World!")
}

func TestParseTruncatedMultipartSetsFlag(t *testing.T) {
	t.Parallel()

	truncated := "From: a@example.com\r\n" +
		"To: b@example.com\r\n" +
		"Content-type: multipart/mixed; boundary=bound1\r\n" +
		"\r\n" +
		"--bound1\r\n" +
		"Content-type: text/plain\r\n" +
		"\r\n" +
		"cut off here, no terminator"

	root := mustParse(t, truncated)
	require.NoError(t, root.Children().Drain())
	assert.True(t, root.Truncated())
}

func TestParseMissingBoundaryParameterSetsMalformedBoundary(t *testing.T) {
	t.Parallel()

	missing := "From: a@example.com\r\n" +
		"To: b@example.com\r\n" +
		"Content-type: multipart/mixed\r\n" +
		"\r\n" +
		"just a body\r\n"

	root := mustParse(t, missing)
	assert.False(t, root.IsMultipart())
	assert.True(t, root.MalformedBoundary())
}

func TestWithMaxDepthLimitsExpansion(t *testing.T) {
	t.Parallel()

	root := mustParse(t, nestedMultipart, parser.WithoutRecursion())
	children, err := root.Children().GetChildParts(nil)
	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.False(t, children[0].IsMultipart())
}
