package synth

import (
	"strings"
	"testing"

	"github.com/goliatone/go-formfill/pkg/model"
)

func vocabulary() map[string]bool {
	out := make(map[string]bool)
	for _, word := range loremWords {
		out[word] = true
	}
	for _, word := range padWords {
		out[word] = true
	}
	return out
}

func TestGenericText_BoundsWithoutSplitWords(t *testing.T) {
	s := newTestSynth()
	vocab := vocabulary()
	c := model.Constraints{MinLength: model.IntPtr(50), MaxLength: model.IntPtr(60)}

	for i := 0; i < 200; i++ {
		text := mustSynth(t, s, model.KindGenericText, c)
		if len(text) < 50 || len(text) > 60 {
			t.Fatalf("length %d outside [50,60]: %q", len(text), text)
		}
		for _, word := range strings.Fields(strings.TrimRight(text, ".")) {
			if !vocab[word] {
				t.Fatalf("split or unknown word %q in %q", word, text)
			}
		}
	}
}

func TestGenericText_Defaults(t *testing.T) {
	s := newTestSynth()
	for i := 0; i < 50; i++ {
		text := mustSynth(t, s, model.KindGenericText, model.Constraints{})
		if len(text) < 5 || len(text) > 200 {
			t.Fatalf("length %d outside default bounds", len(text))
		}
	}
}

func TestLorem_EdgeCases(t *testing.T) {
	words := func(list ...string) func() string {
		idx := 0
		return func() string {
			w := list[idx%len(list)]
			idx++
			return w
		}
	}

	tests := []struct {
		name string
		next func() string
		min  int
		max  int
		want string
	}{
		{name: "single long word split", next: words("exercitation"), min: 0, max: 5, want: "exerc"},
		{name: "cut at word boundary then pad", next: words("lorem", "ipsum", "dolor"), min: 12, max: 14, want: "lorem ipsum ut"},
		{name: "exact boundary kept", next: words("lorem", "ipsum", "dolor"), min: 11, max: 11, want: "lorem ipsum"},
		{name: "pad after cut", next: words("lorem", "consectetur"), min: 8, max: 10, want: "lorem sed"},
		{name: "min above max uses max", next: words("lorem"), min: 20, max: 5, want: "lorem"},
		{name: "zero max", next: words("lorem"), min: 0, max: 0, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Lorem(tt.next, tt.min, tt.max)
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
			if tt.max > 0 && (len(got) > tt.max) {
				t.Fatalf("length %d above max %d", len(got), tt.max)
			}
		})
	}
}
