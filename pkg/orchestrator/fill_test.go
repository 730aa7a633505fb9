package orchestrator

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfill/pkg/dom"
	"github.com/goliatone/go-formfill/pkg/dom/domtest"
	"github.com/goliatone/go-formfill/pkg/model"
	"github.com/goliatone/go-formfill/pkg/synth"
)

var fixedNow = func() time.Time { return time.Date(2024, time.June, 15, 13, 30, 0, 0, time.UTC) }

func newTestOrchestrator(t *testing.T, overrides map[model.Kind]string) *Orchestrator {
	t.Helper()
	s := synth.New(synth.WithSeed(11), synth.WithClock(fixedNow))
	for kind, value := range overrides {
		value := value
		if err := s.Register(kind, synth.GeneratorFunc(func(synth.Source, model.Constraints) string { return value })); err != nil {
			t.Fatalf("register override: %v", err)
		}
	}
	return New(WithSynthesizer(s), WithClock(fixedNow))
}

func TestFill_NonEmptyFormIsUntouched(t *testing.T) {
	checkedRadio := domtest.Radio("plano", "basico")
	checkedRadio.IsChecked = true
	checkedBox := domtest.Checkbox("aceite_termos")
	checkedBox.IsChecked = true
	form := domtest.NewForm(
		domtest.Input("text", "cpf").WithValue("529.982.247-25"),
		domtest.Input("email", "email").WithValue("a@b.com"),
		domtest.Textarea("obs").WithValue("ok"),
		domtest.Select("uf", domtest.Opt("", "--"), dom.SelectOption{Value: "SP", Label: "SP", Selected: true}),
		checkedRadio,
		domtest.Radio("plano", "premium"),
		checkedBox,
	)

	report, err := newTestOrchestrator(t, nil).Fill(context.Background(), form)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if report.Filled != 0 || report.Skipped != len(form.Items) {
		t.Fatalf("expected nothing filled, got filled=%d skipped=%d", report.Filled, report.Skipped)
	}
	for _, item := range form.Items {
		if item.Touched() {
			t.Fatalf("expected %s untouched, got log %v", item.NameAttr, item.Log)
		}
	}
}

func TestFill_EmailAndAffirmativeCheckbox(t *testing.T) {
	form := domtest.NewForm(
		domtest.Input("email", "email"),
		domtest.Checkbox("aceite_termos"),
		domtest.Checkbox("newsletter"),
	)

	report, err := newTestOrchestrator(t, nil).Fill(context.Background(), form)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}

	emailRe := regexp.MustCompile(`^[a-z]+\d{1,4}@[a-z]+\.com$`)
	if v := form.Find("email").Val; !emailRe.MatchString(v) {
		t.Fatalf("expected email value, got %q", v)
	}
	if !form.Find("aceite_termos").IsChecked {
		t.Fatalf("expected aceite_termos to be checked")
	}
	if form.Find("newsletter").Touched() {
		t.Fatalf("expected newsletter untouched")
	}
	if report.Filled != 2 || report.Skipped != 1 {
		t.Fatalf("expected filled=2 skipped=1, got %d/%d", report.Filled, report.Skipped)
	}
	result, ok := report.Result("email")
	if !ok || result.Kind != model.KindEmail || result.Action != ActionSet {
		t.Fatalf("unexpected email result %#v", result)
	}
}

func TestFill_SelectFiresOneInputAndOneChange(t *testing.T) {
	sel := domtest.Select("uf",
		domtest.Opt("", "Selecione"),
		domtest.Opt("RJ", "Rio de Janeiro"),
		domtest.Opt("SP", "São Paulo"),
	)
	form := domtest.NewForm(sel)

	_, err := newTestOrchestrator(t, map[model.Kind]string{model.KindRegionCode: "SP"}).Fill(context.Background(), form)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if sel.Value() != "SP" {
		t.Fatalf("expected SP selected, got %q", sel.Value())
	}
	if sel.EventCount(dom.EventInput) != 1 || sel.EventCount(dom.EventChange) != 1 {
		t.Fatalf("expected exactly one input and one change event, got %#v", sel.Events)
	}
	if diff := cmp.Diff([]string{"selected=2", "event=input", "event=change"}, sel.Log); diff != "" {
		t.Fatalf("log mismatch (-want +got):\n%s", diff)
	}
}

func TestMatchOption(t *testing.T) {
	options := []dom.SelectOption{
		{Value: "", Label: "Selecione"},
		{Value: "1", Label: "Minas Gerais"},
		{Value: "2", Label: "São Paulo"},
		{Value: "3", Label: "SP"},
	}
	tests := []struct {
		name      string
		options   []dom.SelectOption
		candidate string
		want      int
	}{
		{name: "label substring accent insensitive", options: options, candidate: "sao paulo", want: 2},
		{name: "two letter exact", options: []dom.SelectOption{{Value: "a", Label: "Xy"}, {Value: "b", Label: "MG"}}, candidate: "mg", want: 1},
		{name: "fallback to index 1", options: options, candidate: "Recife", want: 1},
		{name: "single option unchanged", options: options[:1], candidate: "x", want: -1},
		{name: "empty options", options: nil, candidate: "x", want: -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchOption(tt.options, tt.candidate); got != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestFill_RadioGroupChecksFirstOnly(t *testing.T) {
	first := domtest.Radio("concordo", "s")
	second := domtest.Radio("concordo", "n")
	other := domtest.Radio("plano", "a")
	form := domtest.NewForm(first, second, other)

	if _, err := newTestOrchestrator(t, nil).Fill(context.Background(), form); err != nil {
		t.Fatalf("fill: %v", err)
	}
	if !first.IsChecked || second.IsChecked {
		t.Fatalf("expected only the first radio checked, got %v/%v", first.IsChecked, second.IsChecked)
	}
	if second.Touched() {
		t.Fatalf("expected second radio untouched, got %v", second.Log)
	}
	if other.IsChecked {
		t.Fatalf("expected non-affirmative radio group unchecked")
	}
}

func TestFill_ShortAffirmativeWordsMatchWholeSegments(t *testing.T) {
	yes := domtest.Checkbox("resposta_sim")
	sim := domtest.Checkbox("simulacao")
	form := domtest.NewForm(yes, sim)

	if _, err := newTestOrchestrator(t, nil).Fill(context.Background(), form); err != nil {
		t.Fatalf("fill: %v", err)
	}
	if !yes.IsChecked {
		t.Fatalf("expected resposta_sim checked")
	}
	if sim.IsChecked {
		t.Fatalf("expected simulacao left alone")
	}
}

func TestFill_SkipsDisabledReadOnlyAndNonData(t *testing.T) {
	disabled := domtest.Input("text", "nome")
	disabled.IsDisabled = true
	readOnly := domtest.Input("text", "cpf")
	readOnly.IsReadOnly = true
	form := domtest.NewForm(
		disabled,
		readOnly,
		domtest.Input("hidden", "cpf_hidden"),
		domtest.Input("submit", "enviar"),
		domtest.Input("file", "anexo"),
		domtest.Input("color", "cor"),
	)

	report, err := newTestOrchestrator(t, nil).Fill(context.Background(), form)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	for _, item := range form.Items {
		if item.Touched() {
			t.Fatalf("expected %s untouched, got %v", item.NameAttr, item.Log)
		}
	}
	if report.Filled != 0 {
		t.Fatalf("expected nothing filled, got %d", report.Filled)
	}
}

func TestFill_AdaptsTextInputs(t *testing.T) {
	short := domtest.Input("text", "nome").WithAttr("maxlength", "4")
	money := domtest.Input("number", "valor")
	date := domtest.Input("date", "data_inicio").WithAttr("min", "2024-01-01").WithAttr("max", "2024-01-31")
	clock := domtest.Input("time", "hora").WithAttr("min", "09:00").WithAttr("max", "10:00")
	form := domtest.NewForm(short, money, date, clock)

	o := newTestOrchestrator(t, map[model.Kind]string{model.KindInteger: "1.234"})
	if _, err := o.Fill(context.Background(), form); err != nil {
		t.Fatalf("fill: %v", err)
	}

	if n := len([]rune(short.Val)); n == 0 || n > 4 {
		t.Fatalf("expected value truncated to 4 runes, got %q", short.Val)
	}
	if money.Val != "1234" {
		t.Fatalf("expected renormalized number, got %q", money.Val)
	}
	if _, err := strconv.ParseFloat(money.Val, 64); err != nil {
		t.Fatalf("expected parseable number, got %q", money.Val)
	}
	got, err := time.Parse("2006-01-02", date.Val)
	if err != nil {
		t.Fatalf("expected ISO date, got %q", date.Val)
	}
	if got.Before(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) || got.After(time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("date %s outside bounds", date.Val)
	}
	if clock.Val < "09:00" || clock.Val > "10:00" || len(clock.Val) != 5 {
		t.Fatalf("time %q outside bounds", clock.Val)
	}
}

func TestFill_NativeTypeOverridesNameToken(t *testing.T) {
	plate := domtest.Input("number", "placa")
	house := domtest.Input("number", "numero_endereco")
	phone := domtest.Input("tel", "cpf")
	message := domtest.Textarea("mensagem")
	form := domtest.NewForm(plate, house, phone, message)

	report, err := newTestOrchestrator(t, nil).Fill(context.Background(), form)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if report.Filled != 4 {
		t.Fatalf("expected every control filled, got %+v", report.Results)
	}

	want := map[string]model.Kind{
		"placa":           model.KindInteger,
		"numero_endereco": model.KindInteger,
		"cpf":             model.KindPhone,
		"mensagem":        model.KindGenericText,
	}
	for name, kind := range want {
		result, _ := report.Result(name)
		if result.Kind != kind {
			t.Fatalf("%s: expected %s, got %s", name, kind, result.Kind)
		}
	}
	for _, ctrl := range []*domtest.Control{plate, house} {
		if _, err := strconv.Atoi(ctrl.Val); err != nil {
			t.Fatalf("%s: expected an integer, got %q", ctrl.NameAttr, ctrl.Val)
		}
	}
	if !strings.HasPrefix(phone.Val, "(") {
		t.Fatalf("expected a phone number, got %q", phone.Val)
	}
}

func TestFill_NumberRejectsNonNumericValue(t *testing.T) {
	amount := domtest.Input("number", "quantidade")
	form := domtest.NewForm(amount)

	report, err := newTestOrchestrator(t, map[model.Kind]string{model.KindInteger: "n/a"}).Fill(context.Background(), form)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if amount.Touched() {
		t.Fatalf("expected number input untouched, got %v", amount.Log)
	}
	if result, _ := report.Result("quantidade"); result.Reason != "value is not numeric" {
		t.Fatalf("unexpected result %#v", result)
	}
}

func TestFill_TextGoesThroughInsertion(t *testing.T) {
	name := domtest.Input("text", "nome")
	form := domtest.NewForm(name)

	if _, err := newTestOrchestrator(t, map[model.Kind]string{model.KindPersonName: "Ana"}).Fill(context.Background(), form); err != nil {
		t.Fatalf("fill: %v", err)
	}
	want := []string{"value=Ana", "caret=3,3", "event=input", "event=change"}
	if diff := cmp.Diff(want, name.Log); diff != "" {
		t.Fatalf("insertion log mismatch (-want +got):\n%s", diff)
	}
}

func TestFill_RecoversPerFieldPanics(t *testing.T) {
	broken := domtest.Input("text", "nome")
	broken.PanicOnSet = true
	healthy := domtest.Input("text", "cpf")
	form := domtest.NewForm(broken, healthy)

	report, err := newTestOrchestrator(t, nil).Fill(context.Background(), form)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if report.Failed != 1 || report.Filled != 1 {
		t.Fatalf("expected one failure and one fill, got failed=%d filled=%d", report.Failed, report.Filled)
	}
	if healthy.Val == "" {
		t.Fatalf("expected healthy control filled after a panic")
	}
	if result, _ := report.Result("nome"); result.Err == nil || result.Error == "" {
		t.Fatalf("expected recorded error, got %#v", result)
	}
}

func TestFill_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	nome := domtest.Input("text", "nome")

	_, err := newTestOrchestrator(t, nil).Fill(ctx, domtest.NewForm(nome))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if nome.Touched() {
		t.Fatalf("expected control untouched")
	}
}

func TestFill_NilForm(t *testing.T) {
	if _, err := New().Fill(context.Background(), nil); !errors.Is(err, ErrNoForm) {
		t.Fatalf("expected ErrNoForm, got %v", err)
	}
}

func TestFill_ReportIdentity(t *testing.T) {
	report, err := newTestOrchestrator(t, nil).Fill(context.Background(), domtest.NewForm())
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if len(report.ID) != 36 {
		t.Fatalf("expected uuid report id, got %q", report.ID)
	}
	if !report.StartedAt.Equal(fixedNow()) {
		t.Fatalf("expected clock stamp, got %s", report.StartedAt)
	}
}
