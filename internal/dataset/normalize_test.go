package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText_StripsTags(t *testing.T) {
	normalized := NormalizeText("Hello <b>world</b>, see <a href=\"x\">link</a>")
	assert.Equal(t, "Hello world, see link", normalized)
}

func TestNormalizeText_CutsSignature(t *testing.T) {
	text := "Main content here\n--\nJane Doe\nVP of Everything"
	assert.Equal(t, "Main content here", NormalizeText(text))

	// Trailing whitespace on the delimiter line still counts
	text = "Body\n-- \nsig"
	assert.Equal(t, "Body", NormalizeText(text))

	// So does leading whitespace
	text = "Body\n  --\nsig"
	assert.Equal(t, "Body", NormalizeText(text))
}

func TestNormalizeText_CollapsesNewlines(t *testing.T) {
	text := "para one\n\n\n\npara two"
	assert.Equal(t, "para one\n\npara two", NormalizeText(text))
}

func TestNormalizeText_Idempotent(t *testing.T) {
	inputs := []string{
		"Hello <b>world</b>",
		"a\n\n\n\nb\n--\nsig",
		"  padded  ",
		"x<div>\n\n\n</div>y\n\n\n\nz",
		"",
		"--\nonly a signature",
		"  --\nBill",
		"<b></b>  --\nBill",
	}
	for _, in := range inputs {
		once := NormalizeText(in)
		twice := NormalizeText(once)
		assert.Equal(t, once, twice, "normalization must be idempotent for %q", in)
	}
}

func TestNormalizeText_KeepsInlineDashes(t *testing.T) {
	// A "--" that is not alone on its line is not a signature delimiter
	text := "range 1--5 applies"
	assert.Equal(t, "range 1--5 applies", NormalizeText(text))
}
