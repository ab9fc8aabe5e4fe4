package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestOpRoundTrip checks every operator's surface form round-trips through
// OpFromText, mirroring the teacher's TestLookup round-trip over its
// keyword table.
func TestOpRoundTrip(t *testing.T) {
	for op, text := range opText {
		got, ok := OpFromText(text)
		assert.True(t, ok, "OpFromText(%q) should succeed", text)
		assert.Equal(t, op, got)
		assert.Equal(t, text, op.Text())
	}
	assert.Len(t, opText, OpCount)
}

func TestKeywordRoundTrip(t *testing.T) {
	for kw, text := range keywordText {
		got, ok := KeywordFromText(text)
		assert.True(t, ok, "KeywordFromText(%q) should succeed", text)
		assert.Equal(t, kw, got)
		assert.Equal(t, text, kw.Text())
	}
	assert.Len(t, keywordText, KeywordCount)
}

func TestOpFromTextUnknown(t *testing.T) {
	_, ok := OpFromText("~")
	assert.False(t, ok)
}

func TestKeywordFromTextUnknown(t *testing.T) {
	_, ok := KeywordFromText("banana")
	assert.False(t, ok)
}

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		Whitespace: "WHITESPACE",
		Int:        "INTEGER",
		String:     "STRING",
		Op:         "OPERATOR",
		Keyword:    "KEYWORD",
	}
	for kind, want := range cases {
		assert.Equal(t, want, kind.String())
	}
}

func TestKindStringPanicsOnUnknown(t *testing.T) {
	assert.Panics(t, func() {
		_ = Kind(99).String()
	})
}

func TestNewTokenPartnerUnset(t *testing.T) {
	tok := New(Int, "42", Position{Line: 1, Col: 1})
	assert.Equal(t, -1, tok.Partner)
	assert.Equal(t, "42", tok.Text)
}
