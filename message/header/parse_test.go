package header_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mimeforge/mimetree/message/header"
	"github.com/mimeforge/mimetree/message/header/field"
)

func TestParseBadStartIsPreservedOnSentinelField(t *testing.T) {
	t.Parallel()

	raw := []byte("this is not a header line\r\n" +
		"neither is this\r\n" +
		"Subject: Hello\r\n")

	h, err := header.Parse(raw, header.CRLF)
	require.NotNil(t, h)

	var badStart *field.BadStartError
	require.True(t, errors.As(err, &badStart))

	subj, err := h.Get("Subject")
	require.NoError(t, err)
	assert.Equal(t, "Hello", subj)

	junk, err := h.Get("")
	require.NoError(t, err)
	assert.Equal(t, "this is not a header line\r\nneither is this", junk)
}
