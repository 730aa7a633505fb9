package textnorm

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFold(t *testing.T) {
	cases := map[string]string{
		"São Paulo":     "sao paulo",
		"  GOIÂNIA ":    "goiania",
		"Florianópolis": "florianopolis",
		"":              "",
		"cidade_uf":     "cidade_uf",
	}
	for in, want := range cases {
		if got := Fold(in); got != want {
			t.Fatalf("Fold(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestDigits(t *testing.T) {
	if got := Digits("01310-100"); got != "01310100" {
		t.Fatalf("unexpected digits: %q", got)
	}
	if got := Digits("abc"); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestSegments(t *testing.T) {
	got := Segments("endereco[0].numero_casa-2")
	want := []string{"endereco", "0", "numero", "casa", "2"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("segments mismatch (-want +got):\n%s", diff)
	}
}

func TestHasSegment(t *testing.T) {
	tests := []struct {
		token, word string
		want        bool
	}{
		{"cidade_uf", "uf", true},
		{"uf", "uf", true},
		{"mensagem", "age", false},
		{"user_age", "age", true},
		{"plano", "ano", false},
		{"ano-fabricacao", "ano", true},
		{"hotel", "tel", false},
		{"tel.contato", "tel", true},
		{"cidade", "", false},
	}
	for _, tt := range tests {
		if got := HasSegment(tt.token, tt.word); got != tt.want {
			t.Fatalf("HasSegment(%q, %q): expected %v, got %v", tt.token, tt.word, tt.want, got)
		}
	}
}
