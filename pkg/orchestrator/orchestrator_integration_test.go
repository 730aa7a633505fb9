package orchestrator_test

import (
	"strconv"
	"testing"
	"time"

	"github.com/goliatone/go-formfill/components/geo"
	"github.com/goliatone/go-formfill/pkg/dom/htmldoc"
	"github.com/goliatone/go-formfill/pkg/model"
	"github.com/goliatone/go-formfill/pkg/orchestrator"
	"github.com/goliatone/go-formfill/pkg/synth"
	"github.com/goliatone/go-formfill/pkg/testsupport"
	"github.com/goliatone/go-formfill/pkg/validation"
)

const cadastroFixture = "testdata/cadastro.html"

func fillCadastro(t *testing.T, seed int64) (*htmldoc.Document, orchestrator.Report) {
	t.Helper()

	dataset, err := geo.DefaultDataset()
	if err != nil {
		t.Fatalf("load dataset: %v", err)
	}
	doc := testsupport.LoadHTML(t, cadastroFixture)
	form, err := doc.Form(0)
	if err != nil {
		t.Fatalf("form: %v", err)
	}

	clock := testsupport.FixedClock()
	s := synth.New(synth.WithSeed(seed), synth.WithClock(clock), synth.WithLookup(dataset))
	o := orchestrator.New(orchestrator.WithSynthesizer(s), orchestrator.WithClock(clock))

	report, err := o.Fill(testsupport.Context(), form)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	return doc, report
}

func TestFill_CadastroFixture(t *testing.T) {
	doc, report := fillCadastro(t, 3)

	filled := map[string]string{}
	skipped := map[string]string{}
	for _, r := range report.Results {
		if r.Err != nil || r.Error != "" {
			t.Fatalf("unexpected failure on %s: %v", r.NameToken, r.Err)
		}
		if r.Skipped {
			skipped[r.NameToken] = r.Reason
			continue
		}
		filled[r.NameToken] = r.KindName
	}

	wantFilled := map[string]string{
		"nome_completo":   "person-name",
		"cpf":             "tax-id",
		"cnpj":            "company-tax-id",
		"email":           "email",
		"celular":         "phone",
		"cep":             "postal-code",
		"cidade":          "city",
		"uf":              "region-code",
		"numero_endereco": "integer",
		"nascimento":      "adult-date",
		"placa":           "license-plate",
		"observacoes":     "text",
		"mensagem":        "text",
		"aceite_termos":   "none",
	}
	if diff := testsupport.Diff(wantFilled, filled); diff != "" {
		t.Fatalf("filled kinds mismatch (-want +got):\n%s", diff)
	}
	wantSkipped := map[string]string{
		"csrf":       "not fillable",
		"codigo":     "has value",
		"newsletter": "not affirmative",
	}
	if diff := testsupport.Diff(wantSkipped, skipped); diff != "" {
		t.Fatalf("skipped fields mismatch (-want +got):\n%s", diff)
	}
	if report.Filled != 14 || report.Skipped != 3 || report.Failed != 0 {
		t.Fatalf("unexpected counters %d/%d/%d", report.Filled, report.Skipped, report.Failed)
	}

	if got, want := len(doc.Events()), 2*report.Filled; got != want {
		t.Fatalf("expected %d events (input and change per fill), got %d", want, got)
	}
}

func TestFill_CadastroValuesValidate(t *testing.T) {
	_, report := fillCadastro(t, 8)
	dataset, _ := geo.DefaultDataset()
	v := validation.New(validation.WithLookup(dataset), validation.WithClock(testsupport.FixedClock()))

	for _, name := range []string{"cpf", "cnpj", "email", "celular", "cep", "cidade", "uf", "placa"} {
		r, ok := report.Result(name)
		if !ok {
			t.Fatalf("missing result for %s", name)
		}
		if result := v.Validate(r.Kind, r.Value); !result.Valid {
			t.Fatalf("%s: %q does not validate as %s: %+v", name, r.Value, r.Kind, result.Issues)
		}
	}

	r, _ := report.Result("nascimento")
	born, err := time.Parse("2006-01-02", r.Value)
	if err != nil {
		t.Fatalf("expected an ISO date, got %q", r.Value)
	}
	if born.Before(time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC)) || born.After(time.Date(2005, 12, 31, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected a date within the min/max attributes, got %s", r.Value)
	}
	if r.Kind != model.KindAdultDate {
		t.Fatalf("expected the birth date hint to survive the native date type, got %s", r.Kind)
	}

	r, _ = report.Result("numero_endereco")
	if n, err := strconv.Atoi(r.Value); err != nil || n < 1 || n > 9999 {
		t.Fatalf("expected a house number in [1, 9999], got %q", r.Value)
	}

	r, _ = report.Result("observacoes")
	if n := len(r.Value); n < 5 || n > 200 {
		t.Fatalf("expected 5..200 characters of lorem, got %d", n)
	}
	if r.Kind != model.KindGenericText {
		t.Fatalf("expected generic text, got %s", r.Kind)
	}
}

func TestFill_CadastroIsReproducible(t *testing.T) {
	first, _ := fillCadastro(t, 5)
	second, _ := fillCadastro(t, 5)
	if diff := testsupport.Diff(first.String(), second.String()); diff != "" {
		t.Fatalf("same seed produced different documents:\n%s", diff)
	}

	_, a := fillCadastro(t, 5)
	_, b := fillCadastro(t, 6)
	ra, _ := a.Result("cpf")
	rb, _ := b.Result("cpf")
	if ra.Value == rb.Value {
		t.Fatalf("expected different seeds to differ, both gave %q", ra.Value)
	}
}
