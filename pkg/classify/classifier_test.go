package classify

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfill/pkg/model"
)

func text(name string) model.FieldDescriptor {
	return model.FieldDescriptor{Tag: model.TagText, NameToken: name}
}

func typed(typ, name string) model.FieldDescriptor {
	return model.FieldDescriptor{Tag: model.TagTyped, Type: typ, NameToken: name}
}

func TestClassify_Precedence(t *testing.T) {
	c := New()

	tests := []struct {
		name  string
		field model.FieldDescriptor
		want  model.Kind
	}{
		{name: "cpf", field: text("cpf_titular"), want: model.KindTaxID},
		{name: "cnpj", field: text("cnpj"), want: model.KindCompanyTaxID},
		{name: "cpf before cnpj", field: text("cpf_cnpj"), want: model.KindTaxID},
		{name: "ibge with uf", field: text("ibge_uf"), want: model.KindRegionMunicipalCode},
		{name: "cod_uf", field: text("cod_uf"), want: model.KindRegionMunicipalCode},
		{name: "ibge municipal", field: text("codigo_ibge"), want: model.KindMunicipalCode},
		{name: "codigo_municipio", field: text("codigo_municipio"), want: model.KindMunicipalCode},
		{name: "ddd", field: text("ddd"), want: model.KindAreaCode},
		{name: "email token", field: text("email_contato"), want: model.KindEmail},
		{name: "email type", field: typed("email", "contato"), want: model.KindEmail},
		{name: "tel type beats token", field: typed("tel", "foo"), want: model.KindPhone},
		{name: "phone token", field: text("celular"), want: model.KindPhone},
		{name: "username before name", field: text("nome_usuario"), want: model.KindUsername},
		{name: "login", field: text("login"), want: model.KindUsername},
		{name: "person name", field: text("nome_completo"), want: model.KindPersonName},
		{name: "city and region", field: text("cidade_uf"), want: model.KindCityAndRegion},
		{name: "city", field: text("cidade"), want: model.KindCityName},
		{name: "municipio", field: text("municipio"), want: model.KindCityName},
		{name: "estado with maxlength 2", field: model.FieldDescriptor{
			Tag: model.TagText, NameToken: "estado", Constraints: model.Constraints{MaxLength: model.IntPtr(2)},
		}, want: model.KindRegionCode},
		{name: "estado", field: text("estado"), want: model.KindRegionName},
		{name: "uf alone", field: text("uf"), want: model.KindRegionCode},
		{name: "cep", field: text("cep"), want: model.KindPostalCode},
		{name: "zip", field: text("zip_code"), want: model.KindPostalCode},
		{name: "cnh", field: text("cnh"), want: model.KindDriverLicense},
		{name: "old plate before plate", field: text("placa_antiga"), want: model.KindLicensePlateOld},
		{name: "plate", field: text("placa"), want: model.KindLicensePlateNew},
		{name: "datetime-local type", field: typed("datetime-local", "quando"), want: model.KindDateTime},
		{name: "date type", field: typed("date", "quando"), want: model.KindDate},
		{name: "time type", field: typed("time", "quando"), want: model.KindTime},
		{name: "datetime token before date", field: text("data_hora"), want: model.KindDateTime},
		{name: "birth date", field: text("data_nascimento"), want: model.KindAdultDate},
		{name: "birth before minor", field: text("nascimento_menor"), want: model.KindAdultDate},
		{name: "minor", field: text("data_menor"), want: model.KindMinorDate},
		{name: "date token", field: text("dt_inicio"), want: model.KindDate},
		{name: "time token", field: text("hora_inicio"), want: model.KindTime},
		{name: "url type", field: typed("url", "perfil"), want: model.KindURL},
		{name: "website", field: text("website"), want: model.KindURL},
		{name: "number type", field: typed("number", "qualquer"), want: model.KindInteger},
		{name: "range type", field: typed("range", "nivel"), want: model.KindInteger},
		{name: "quantity", field: text("qtd_itens"), want: model.KindInteger},
		{name: "money", field: text("valor"), want: model.KindMoney},
		{name: "percent", field: text("taxa"), want: model.KindPercent},
		{name: "signed percent", field: text("variacao"), want: model.KindSignedPercent},
		{name: "decimal", field: text("peso"), want: model.KindDecimal},
		{name: "free text", field: text("observacoes"), want: model.KindGenericText},
		{name: "textarea", field: model.FieldDescriptor{Tag: model.TagTextarea, NameToken: "comentario"}, want: model.KindGenericText},
		{name: "search input", field: typed("search", "busca"), want: model.KindGenericText},
		{name: "unnamed text", field: text(""), want: model.KindGenericText},
		{name: "color input", field: typed("color", "cor"), want: model.KindNone},
		{name: "hidden never fills", field: typed("hidden", "cpf"), want: model.KindNone},
		{name: "checkbox by token", field: model.FieldDescriptor{Tag: model.TagCheckbox, NameToken: "email_optin"}, want: model.KindEmail},
		{name: "checkbox never free text", field: model.FieldDescriptor{Tag: model.TagCheckbox, NameToken: "aceite"}, want: model.KindNone},
		{name: "radio never free text", field: model.FieldDescriptor{Tag: model.TagRadio, NameToken: "opcao"}, want: model.KindNone},
		{name: "accented token", field: text("Endereço"), want: model.KindPersonName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Classify(tt.field); got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

// Address-like names resolve to person names. Kept deliberately; if this
// changes, the orchestrator fixtures need new expectations.
func TestClassify_AddressTokensResolveToPersonName(t *testing.T) {
	c := New()
	for _, name := range []string{"endereco", "logradouro", "bairro", "address"} {
		kind, rule := c.Explain(text(name))
		if kind != model.KindPersonName || rule != RuleAddressAsName {
			t.Fatalf("%s: expected person-name via %s, got %s via %s", name, RuleAddressAsName, kind, rule)
		}
	}
}

func TestClassify_NativeTypeWinsOverTokens(t *testing.T) {
	c := New()
	tests := []struct {
		field    model.FieldDescriptor
		want     model.Kind
		wantRule string
	}{
		{field: typed("tel", "cpf"), want: model.KindPhone, wantRule: RulePhoneType},
		{field: typed("tel", "ddd"), want: model.KindPhone, wantRule: RulePhoneType},
		{field: typed("number", "numero_endereco"), want: model.KindInteger, wantRule: RuleIntegerType},
		{field: typed("number", "placa"), want: model.KindInteger, wantRule: RuleIntegerType},
		{field: typed("range", "nome"), want: model.KindInteger, wantRule: RuleIntegerType},
		{field: typed("number", "valor"), want: model.KindInteger, wantRule: RuleIntegerType},
		{field: typed("number", "codigo_ibge"), want: model.KindMunicipalCode, wantRule: RuleMunicipalCode},
		{field: typed("email", "nome_contato"), want: model.KindEmail, wantRule: RuleEmail},
		{field: typed("url", "nome_site"), want: model.KindURL, wantRule: RuleURL},
		{field: typed("date", "data_nascimento"), want: model.KindAdultDate, wantRule: RuleAdultDate},
		{field: typed("date", "nascimento_menor"), want: model.KindAdultDate, wantRule: RuleAdultDate},
		{field: typed("date", "dt_menor"), want: model.KindMinorDate, wantRule: RuleMinorDate},
		{field: typed("date", "hora_chegada"), want: model.KindDate, wantRule: RuleDateType},
		{field: typed("date", "cidade"), want: model.KindDate, wantRule: RuleDateType},
		{field: typed("time", "data_inicio"), want: model.KindTime, wantRule: RuleTimeType},
		{field: typed("datetime-local", "data_hora"), want: model.KindDateTime, wantRule: RuleDateTime},
		{field: typed("datetime-local", "data_evento"), want: model.KindDate, wantRule: RuleDate},
	}
	for _, tt := range tests {
		t.Run(tt.field.Type+"/"+tt.field.NameToken, func(t *testing.T) {
			kind, rule := c.Explain(tt.field)
			if kind != tt.want || rule != tt.wantRule {
				t.Fatalf("expected %s via %s, got %s via %s", tt.want, tt.wantRule, kind, rule)
			}
		})
	}
}

func TestClassify_ShortTokensMatchWholeSegments(t *testing.T) {
	c := New()
	tests := []struct {
		name string
		want model.Kind
	}{
		{name: "mensagem", want: model.KindGenericText},
		{name: "imagem_legenda", want: model.KindGenericText},
		{name: "plano", want: model.KindGenericText},
		{name: "hotel", want: model.KindGenericText},
		{name: "ufanismo", want: model.KindGenericText},
		{name: "user_age", want: model.KindUsername},
		{name: "faixa_age", want: model.KindInteger},
		{name: "ano_fabricacao", want: model.KindInteger},
		{name: "tel_contato", want: model.KindPhone},
		{name: "endereco.uf", want: model.KindPersonName},
		{name: "sigla-uf", want: model.KindRegionCode},
		{name: "cidade_uf", want: model.KindCityAndRegion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Classify(text(tt.name)); got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestRepresentable(t *testing.T) {
	if !Representable(text("cpf"), model.KindTaxID) {
		t.Fatalf("expected untyped controls to hold any kind")
	}
	if !Representable(typed("color", "x"), model.KindTaxID) {
		t.Fatalf("expected unconstrained types to hold any kind")
	}
	if Representable(typed("tel", "cpf"), model.KindTaxID) {
		t.Fatalf("expected tel to reject tax ids")
	}
	if !Representable(typed("number", "x"), model.KindMoney) {
		t.Fatalf("expected number to hold money")
	}
}

func TestExplain_ReportsRuleName(t *testing.T) {
	c := New()
	kind, rule := c.Explain(typed("tel", "foo"))
	if kind != model.KindPhone || rule != RulePhoneType {
		t.Fatalf("expected phone via %s, got %s via %s", RulePhoneType, kind, rule)
	}
	kind, rule = c.Explain(typed("color", "cor"))
	if kind != model.KindNone || rule != "" {
		t.Fatalf("expected no match, got %s via %q", kind, rule)
	}
}

func TestRules_Order(t *testing.T) {
	rules := New().Rules()
	head := rules[:5]
	want := []string{RuleTaxID, RuleCompanyTaxID, RuleRegionMunicipalCode, RuleMunicipalCode, RuleAreaCode}
	if diff := cmp.Diff(want, head); diff != "" {
		t.Fatalf("rule order mismatch (-want +got):\n%s", diff)
	}
	if last := rules[len(rules)-1]; last != RuleFreeText {
		t.Fatalf("expected %s last, got %s", RuleFreeText, last)
	}
}

func TestRegister_PriorityAndOrder(t *testing.T) {
	c := New()
	c.Register("matricula", 10_000, Tokens("matricula"), model.KindInteger)
	if got := c.Classify(text("matricula_cpf")); got != model.KindInteger {
		t.Fatalf("expected custom rule to win, got %s", got)
	}
	if got := c.Rules()[0]; got != "matricula" {
		t.Fatalf("expected custom rule first, got %s", got)
	}

	c.Register("", 1, Tokens("x"), model.KindURL)
	c.Register("nil-matcher", 1, nil, model.KindURL)
	if got := len(c.Rules()); got != len(New().Rules())+1 {
		t.Fatalf("expected invalid registrations to be ignored, got %d rules", got)
	}
}

func TestEmptyClassifier(t *testing.T) {
	if got := Empty().Classify(text("cpf")); got != model.KindNone {
		t.Fatalf("expected none, got %s", got)
	}
	var nilClassifier *Classifier
	if got := nilClassifier.Classify(text("cpf")); got != model.KindNone {
		t.Fatalf("expected none from nil classifier, got %s", got)
	}
}
