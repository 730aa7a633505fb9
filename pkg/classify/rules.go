package classify

import (
	"github.com/goliatone/go-formfill/pkg/model"
)

// Built-in rule names, in evaluation order.
const (
	RuleTaxID               = "tax-id"
	RuleCompanyTaxID        = "company-tax-id"
	RuleRegionMunicipalCode = "region-municipal-code"
	RuleMunicipalCode       = "municipal-code"
	RuleAreaCode            = "area-code"
	RuleEmail               = "email"
	RulePhoneType           = "phone-type"
	RulePhone               = "phone"
	RuleUsername            = "username"
	RulePersonName          = "person-name"
	RuleAddressAsName       = "address-as-name"
	RuleCityAndRegion       = "city-region"
	RuleCity                = "city"
	RuleRegion              = "region"
	RulePostalCode          = "postal-code"
	RuleDriverLicense       = "driver-license"
	RulePlateOld            = "license-plate-old"
	RulePlate               = "license-plate"
	RuleDateTime            = "datetime"
	RuleAdultDate           = "adult-date"
	RuleMinorDate           = "minor-date"
	RuleDate                = "date"
	RuleTime                = "time"
	RuleDateTimeType        = "datetime-type"
	RuleDateType            = "date-type"
	RuleTimeType            = "time-type"
	RuleURL                 = "url"
	RuleIntegerType         = "integer-type"
	RuleInteger             = "integer"
	RuleMoney               = "money"
	RulePercent             = "percent"
	RuleSignedPercent       = "signed-percent"
	RuleDecimal             = "decimal"
	RuleFreeText            = "free-text"
)

var (
	cityTokens = []string{"cidade", "city", "municipio"}

	// short fragments only match whole segments: "uf" but not "ufanismo"
	regionMatch = Either(Tokens("estado", "state"), Words("uf"))

	numericKinds = []model.Kind{
		model.KindInteger, model.KindMoney, model.KindDecimal, model.KindPercent,
		model.KindSignedPercent, model.KindAreaCode, model.KindMunicipalCode,
		model.KindRegionMunicipalCode,
	}
	birthKinds = []model.Kind{model.KindAdultDate, model.KindMinorDate}

	// nativeKinds lists the kinds a constrained input type can hold. A token
	// rule resolving to anything else is passed over for that control.
	nativeKinds = map[string][]model.Kind{
		"tel":            {model.KindPhone},
		"email":          {model.KindEmail},
		"url":            {model.KindURL},
		"number":         numericKinds,
		"range":          numericKinds,
		"date":           append([]model.Kind{model.KindDate}, birthKinds...),
		"datetime-local": append([]model.Kind{model.KindDateTime, model.KindDate}, birthKinds...),
		"time":           {model.KindTime},
	}

	skippedTypes = map[string]struct{}{
		"hidden": {}, "submit": {}, "button": {}, "file": {}, "reset": {}, "image": {},
	}
	freeTextTypes = map[string]struct{}{
		"": {}, "text": {}, "search": {}, "password": {},
	}
)

// Fillable reports whether a control can receive a synthesized value at all.
func Fillable(field model.FieldDescriptor) bool {
	if field.Tag != model.TagTyped && field.Tag != model.TagText {
		return true
	}
	_, skipped := skippedTypes[field.Type]
	return !skipped
}

// Representable reports whether a control of field's native type can hold a
// value of kind. Untyped controls and unconstrained types hold anything.
func Representable(field model.FieldDescriptor, kind model.Kind) bool {
	if field.Tag != model.TagTyped {
		return true
	}
	allowed, constrained := nativeKinds[field.Type]
	if !constrained {
		return true
	}
	for _, k := range allowed {
		if k == kind {
			return true
		}
	}
	return false
}

// FreeText reports whether the control accepts arbitrary text.
func FreeText(field model.FieldDescriptor) bool {
	switch field.Tag {
	case model.TagTextarea, model.TagSelect:
		return true
	case model.TagText, model.TagTyped:
		_, ok := freeTextTypes[field.Type]
		return ok
	default:
		return false
	}
}

func resolveRegion(field model.FieldDescriptor) model.Kind {
	if field.Constraints.MaxLength != nil && *field.Constraints.MaxLength == 2 {
		return model.KindRegionCode
	}
	if HasWord(field.NameToken, "uf") && !HasAny(field.NameToken, "estado", "state") {
		return model.KindRegionCode
	}
	return model.KindRegionName
}

func (c *Classifier) registerBuiltins() {
	type entry struct {
		name    string
		match   Matcher
		resolve Resolver
	}
	fixed := func(kind model.Kind) Resolver {
		return func(model.FieldDescriptor) model.Kind { return kind }
	}

	table := []entry{
		// documents
		{RuleTaxID, Tokens("cpf"), fixed(model.KindTaxID)},
		{RuleCompanyTaxID, Tokens("cnpj"), fixed(model.KindCompanyTaxID)},
		{RuleRegionMunicipalCode, Either(Both(Tokens("ibge"), Either(Words("uf"), Tokens("estado"))), Tokens("cod_uf")), fixed(model.KindRegionMunicipalCode)},
		{RuleMunicipalCode, Tokens("ibge", "cod_mun", "codigo_municipio"), fixed(model.KindMunicipalCode)},
		{RuleAreaCode, Tokens("ddd"), fixed(model.KindAreaCode)},

		// contact
		{RuleEmail, Either(Types("email"), Tokens("email", "e-mail")), fixed(model.KindEmail)},
		{RulePhoneType, Types("tel"), fixed(model.KindPhone)},
		{RulePhone, Either(Tokens("telefone", "phone", "celular", "fone", "whatsapp"), Words("tel")), fixed(model.KindPhone)},

		// identity; address-like tokens land on person names on purpose
		{RuleUsername, Tokens("usuario", "username", "login", "user"), fixed(model.KindUsername)},
		{RulePersonName, Tokens("nome", "name"), fixed(model.KindPersonName)},
		{RuleAddressAsName, Tokens("endereco", "logradouro", "bairro", "address"), fixed(model.KindPersonName)},

		// geography
		{RuleCityAndRegion, Both(Tokens(cityTokens...), regionMatch), fixed(model.KindCityAndRegion)},
		{RuleCity, Tokens(cityTokens...), fixed(model.KindCityName)},
		{RuleRegion, regionMatch, resolveRegion},

		// postal code, license, plates
		{RulePostalCode, Tokens("cep", "zip", "postal"), fixed(model.KindPostalCode)},
		{RuleDriverLicense, Tokens("cnh"), fixed(model.KindDriverLicense)},
		{RulePlateOld, Tokens("placa_antiga", "plate_old"), fixed(model.KindLicensePlateOld)},
		{RulePlate, Tokens("placa", "plate"), fixed(model.KindLicensePlateNew)},

		// dates and times; native types catch what the tokens leave
		{RuleDateTime, Tokens("datahora", "datetime", "data_hora"), fixed(model.KindDateTime)},
		{RuleAdultDate, Tokens("nascimento", "birth"), fixed(model.KindAdultDate)},
		{RuleMinorDate, Tokens("menor", "minor"), fixed(model.KindMinorDate)},
		{RuleDate, Tokens("data", "date", "dt_"), fixed(model.KindDate)},
		{RuleTime, Tokens("hora", "time"), fixed(model.KindTime)},
		{RuleDateTimeType, Types("datetime-local"), fixed(model.KindDateTime)},
		{RuleDateType, Types("date"), fixed(model.KindDate)},
		{RuleTimeType, Types("time"), fixed(model.KindTime)},

		{RuleURL, Either(Types("url"), Tokens("url", "site", "website", "link")), fixed(model.KindURL)},

		{RuleIntegerType, Types("number", "range"), fixed(model.KindInteger)},
		{RuleInteger, Either(Tokens("numero", "number", "qtd", "quantidade", "idade", "count"), Words("age", "ano")), fixed(model.KindInteger)},

		{RuleMoney, Tokens("valor", "preco", "price", "salario", "money", "total", "custo"), fixed(model.KindMoney)},
		{RulePercent, Tokens("percentual", "percent", "taxa", "juros"), fixed(model.KindPercent)},
		{RuleSignedPercent, Tokens("variacao", "variation"), fixed(model.KindSignedPercent)},
		{RuleDecimal, Tokens("peso", "weight", "altura", "height", "largura", "width", "comprimento", "length", "decimal"), fixed(model.KindDecimal)},

		{RuleFreeText, FreeText, fixed(model.KindGenericText)},
	}

	priority := len(table) * 10
	for _, e := range table {
		c.RegisterResolver(e.name, priority, e.match, e.resolve)
		priority -= 10
	}
}
