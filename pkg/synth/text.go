package synth

import (
	"strings"

	"github.com/goliatone/go-formfill/pkg/model"
)

var loremWords = []string{
	"lorem", "ipsum", "dolor", "sit", "amet", "consectetur", "adipiscing",
	"elit", "sed", "do", "eiusmod", "tempor", "incididunt", "ut", "labore",
	"et", "dolore", "magna", "aliqua", "enim", "ad", "minim", "veniam",
	"quis", "nostrud", "exercitation", "ullamco", "laboris", "nisi",
	"aliquip", "ex", "ea", "commodo", "consequat", "duis", "aute", "irure",
	"in", "reprehenderit", "voluptate", "velit", "esse", "cillum", "fugiat",
	"nulla", "pariatur", "excepteur", "sint", "occaecat", "cupidatat", "non",
	"proident", "sunt", "culpa", "qui", "officia", "deserunt", "mollit",
	"anim", "id", "est", "laborum", "a",
}

// padWords are tried longest first when a whole-word cut lands below the
// minimum length.
var padWords = []string{"sed", "ut", "a"}

// LoremWords returns the vocabulary used for free text.
func LoremWords() []string {
	return append([]string(nil), loremWords...)
}

func genericText(src Source, c model.Constraints) string {
	min := c.MinLengthOr(src.Defaults.TextMinLength)
	max := c.MaxLengthOr(src.Defaults.TextMaxLength)
	return Lorem(func() string { return src.Faker.RandomString(loremWords) }, min, max)
}

// Lorem builds text from next() words so that min <= len <= max whenever
// min <= max. When min > max the maximum wins. Words are only split when a
// single word is longer than max.
func Lorem(next func() string, min, max int) string {
	if max <= 0 {
		return ""
	}
	if min < 0 {
		min = 0
	}
	if min > max {
		min = max
	}

	var b strings.Builder
	for b.Len() == 0 || b.Len() < min {
		word := next()
		if word == "" {
			word = loremWords[0]
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(word)
	}

	text := b.String()
	if len(text) > max {
		text = cutAtWord(text, max)
	}

	for len(text) < min {
		padded := false
		for _, word := range padWords {
			if len(text)+1+len(word) <= max {
				text += " " + word
				padded = true
				break
			}
		}
		if !padded {
			text += "."
		}
	}
	return text
}

// cutAtWord truncates text to at most max bytes at the last whole word
// boundary, splitting only when the first word alone exceeds max.
func cutAtWord(text string, max int) string {
	if len(text) <= max {
		return text
	}
	if text[max] == ' ' {
		return text[:max]
	}
	if idx := strings.LastIndexByte(text[:max], ' '); idx > 0 {
		return text[:idx]
	}
	return text[:max]
}
