package collector

import (
	"bytes"
	"encoding/json"
	"net/mail"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAppendRecord_CreatesAndAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "emails.json")
	c := NewSMTPCollector("127.0.0.1:0", path, 1024, zap.NewNop())

	require.NoError(t, c.appendRecord(collectedEmail{
		ID: "1", Subject: "first", From: "a@x.com", To: []string{"b@x.com"},
	}))
	require.NoError(t, c.appendRecord(collectedEmail{
		ID: "2", Subject: "second", From: "b@x.com", To: []string{"a@x.com"},
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var records []collectedEmail
	require.NoError(t, json.Unmarshal(data, &records))
	require.Len(t, records, 2)
	assert.Equal(t, "first", records[0].Subject)
	assert.Equal(t, "second", records[1].Subject)
}

func TestAppendRecord_RejectsInvalidCorpus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "emails.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"not": "a list"}`), 0644))

	c := NewSMTPCollector("127.0.0.1:0", path, 1024, zap.NewNop())
	err := c.appendRecord(collectedEmail{ID: "1"})
	assert.Error(t, err)
}

func TestExtractTextFromMessage_Plain(t *testing.T) {
	raw := "From: a@x.com\r\nSubject: hi\r\n\r\nplain body"
	msg, err := mail.ReadMessage(bytes.NewReader([]byte(raw)))
	require.NoError(t, err)

	text, err := extractTextFromMessage(msg)
	require.NoError(t, err)
	assert.Equal(t, "plain body", text)
}

func TestExtractTextFromMessage_MultipartPrefersTextPlain(t *testing.T) {
	raw := "From: a@x.com\r\n" +
		"Content-Type: multipart/alternative; boundary=BOUND\r\n" +
		"\r\n" +
		"--BOUND\r\n" +
		"Content-Type: text/plain\r\n" +
		"\r\n" +
		"the text part\r\n" +
		"--BOUND\r\n" +
		"Content-Type: text/html\r\n" +
		"\r\n" +
		"<p>the html part</p>\r\n" +
		"--BOUND--\r\n"
	msg, err := mail.ReadMessage(bytes.NewReader([]byte(raw)))
	require.NoError(t, err)

	text, err := extractTextFromMessage(msg)
	require.NoError(t, err)
	assert.Contains(t, text, "the text part")
	assert.NotContains(t, text, "html part")
}

func TestDecodeEncodedHeader(t *testing.T) {
	decoded, err := decodeEncodedHeader("=?UTF-8?Q?Budget_=C3=BCbersicht?=")
	require.NoError(t, err)
	assert.Equal(t, "Budget übersicht", decoded)
}
