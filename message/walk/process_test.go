package walk_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mimeforge/mimetree/message/walk"
	"github.com/mimeforge/mimetree/parser"
	"github.com/mimeforge/mimetree/part"
)

// special thanks to plinth:
// https://stackoverflow.com/questions/17279712/what-is-the-smallest-possible-valid-pdf
// (micro-PDF pulled from that link 2023-01-28)
const complexMsg = `To: sterling@example.com
From: sterling@example.com
Subject: Hello World
Content-type: multipart/mixed; boundary=__boundary-one__

--__boundary-one__
Content-type: multipart/alternate; boundary=__boundary-two__

--__boundary-two__
Content-type: text/html

Hello World!
--__boundary-two__
Content-type: text/plain

Hello World!
--__boundary-two__--
--__boundary-one__
Content-type: application/pdf
Content-disposition: attachment; filename=micro.pdf

%PDF-1.
trailer<</Root<</Pages<</Kids[<</MediaBox[0 0 3 3]>>]>>>>>>
--__boundary-one__--
`

func TestAndProcess(t *testing.T) {
	t.Parallel()

	m, err := parser.Parse(context.Background(), strings.NewReader(complexMsg))
	require.NoError(t, err)

	counts := make([]int, 10)
	err = walk.AndProcess(
		func(p part.Part, parents []part.Part) error {
			count := counts[len(parents)]
			switch {
			case len(parents) == 0 && count == 0:
				assert.True(t, p.IsMultipart())

				s, err := p.Headers().GetSubject()
				assert.NoError(t, err)
				assert.Equal(t, "Hello World", s)
			case len(parents) == 1 && count == 0:
				assert.True(t, p.IsMultipart())
			case len(parents) == 1 && count == 1:
				assert.False(t, p.IsMultipart())

				fn, err := p.Headers().GetFilename()
				assert.NoError(t, err)
				assert.Equal(t, "micro.pdf", fn)
			case len(parents) == 2 && count == 0:
				assert.False(t, p.IsMultipart())

				mt, err := p.Headers().GetMediaType()
				assert.NoError(t, err)
				assert.Equal(t, "text/html", mt)
			case len(parents) == 2 && count == 1:
				assert.False(t, p.IsMultipart())

				mt, err := p.Headers().GetMediaType()
				assert.NoError(t, err)
				assert.Equal(t, "text/plain", mt)
			default:
				assert.Fail(t, "Unexpected part processed")
			}

			counts[len(parents)]++
			return nil
		}, m,
	)

	assert.NoError(t, err)
	assert.Equal(t, []int{1, 2, 2, 0, 0, 0, 0, 0, 0, 0}, counts)
}

type testError struct{}

func (testError) Error() string { return "I'm a little teapot." }

func TestAndProcessError(t *testing.T) {
	t.Parallel()

	m, err := parser.Parse(context.Background(), strings.NewReader(complexMsg))
	require.NoError(t, err)

	runs := 0
	err = walk.AndProcess(
		func(p part.Part, parents []part.Part) error {
			runs++
			return testError{}
		},
		m,
	)

	assert.ErrorIs(t, err, testError{})
	assert.Equal(t, 1, runs)
}
