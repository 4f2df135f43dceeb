package dedup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey_InvariantUnderCaseAndPunctuation(t *testing.T) {
	tests := []struct {
		name        string
		titleA, coA string
		titleB, coB string
	}{
		{"punctuation in title", "Sr. Engineer!", "Acme", "sr engineer", "Acme"},
		{"case in company", "Engineer", "ACME Corp.", "engineer", "acme corp"},
		{"surrounding whitespace", "  Data Scientist ", "Acme", "Data Scientist", "acme"},
		{"trailing punctuation token", "Engineer .", "Acme", "Engineer", "Acme"},
		{"composed vs decomposed", "Cafe\u0301 Manager", "Acme", "Caf\u00e9 Manager", "Acme"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, Key(tt.titleA, tt.coA), Key(tt.titleB, tt.coB))
		})
	}
}

func TestKey_DistinguishesDifferentJobs(t *testing.T) {
	assert.NotEqual(t, Key("Engineer", "Acme"), Key("Engineer", "Globex"))
	assert.NotEqual(t, Key("Engineer", "Acme"), Key("Senior Engineer", "Acme"))
	assert.Equal(t, "acme||engineer", Key("Engineer", "Acme"))
}

func TestKey_KeepsInnerWhitespace(t *testing.T) {
	assert.Equal(t, "acme||engineer  backend", Key("Engineer - Backend", "Acme"))
	assert.NotEqual(t, Key("Engineer - Backend", "Acme"), Key("Engineer Backend", "Acme"))
	assert.NotEqual(t, Key("Backend   Developer", "Acme"), Key("Backend Developer", "Acme"))
}

func TestKey_SeparatorCannotBeForged(t *testing.T) {
	// "a||b" as a title must not collide with a different company/title split.
	assert.NotEqual(t, Key("b", "a"), Key("a||b", ""))
}

func TestFingerprint(t *testing.T) {
	id := Fingerprint("Engineer", "Acme")
	assert.Len(t, id, 12)
	assert.Equal(t, id, Fingerprint("ENGINEER", "acme"), "case must not matter")
	assert.NotEqual(t, id, Fingerprint("Engineer", "Globex"))
}
