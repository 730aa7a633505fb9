// Package actions maps opaque action identifiers, as delivered by a host
// menu, to single-field insertions or a whole-form fill.
package actions

import (
	"sort"

	"github.com/goliatone/go-formfill/pkg/model"
)

// Action is a trigger identifier.
type Action string

const (
	InsertCpf           Action = "insertCpf"
	InsertCnpj          Action = "insertCnpj"
	InsertCnh           Action = "insertCnh"
	InsertEmail         Action = "insertEmail"
	InsertPhone         Action = "insertPhone"
	InsertName          Action = "insertName"
	InsertUsername      Action = "insertUsername"
	InsertPlate         Action = "insertPlate"
	InsertPlateOld      Action = "insertPlateOld"
	InsertCep           Action = "insertCep"
	InsertCity          Action = "insertCity"
	InsertState         Action = "insertState"
	InsertUf            Action = "insertUf"
	InsertDate          Action = "insertDate"
	InsertDateTime      Action = "insertDateTime"
	InsertTime          Action = "insertTime"
	InsertAdultDate     Action = "insertAdultDate"
	InsertMinorDate     Action = "insertMinorDate"
	InsertURL           Action = "insertUrl"
	InsertInteger       Action = "insertInteger"
	InsertMoney         Action = "insertMoney"
	InsertDecimal       Action = "insertDecimal"
	InsertPercent       Action = "insertPercent"
	InsertSignedPercent Action = "insertSignedPercent"
	InsertLorem         Action = "insertLorem"
	InsertCityByCep     Action = "insertCityByCep"
	InsertCityByName    Action = "insertCityByName"
	FillForm            Action = "fillForm"
)

// Definition describes one entry of the host menu.
type Definition struct {
	Action   Action     `json:"action"`
	MenuID   string     `json:"menuId"`
	Title    string     `json:"title"`
	Kind     model.Kind `json:"-"`
	Prompted bool       `json:"prompted,omitempty"`
}

var definitions = []Definition{
	{Action: InsertCpf, MenuID: "insert-cpf", Title: "Inserir CPF válido", Kind: model.KindTaxID},
	{Action: InsertCnpj, MenuID: "insert-cnpj", Title: "Inserir CNPJ válido", Kind: model.KindCompanyTaxID},
	{Action: InsertCnh, MenuID: "insert-cnh", Title: "Inserir CNH válida", Kind: model.KindDriverLicense},
	{Action: InsertEmail, MenuID: "insert-email", Title: "Inserir Email", Kind: model.KindEmail},
	{Action: InsertPhone, MenuID: "insert-phone", Title: "Inserir Telefone com DDD", Kind: model.KindPhone},
	{Action: InsertName, MenuID: "insert-name", Title: "Inserir Nome", Kind: model.KindPersonName},
	{Action: InsertUsername, MenuID: "insert-username", Title: "Inserir Nome de Usuário", Kind: model.KindUsername},
	{Action: InsertPlate, MenuID: "insert-plate", Title: "Inserir Placa Mercosul", Kind: model.KindLicensePlateNew},
	{Action: InsertPlateOld, MenuID: "insert-plate-old", Title: "Inserir Placa Antiga", Kind: model.KindLicensePlateOld},
	{Action: InsertCep, MenuID: "insert-cep", Title: "Inserir CEP", Kind: model.KindPostalCode},
	{Action: InsertCity, MenuID: "insert-city", Title: "Inserir Cidade", Kind: model.KindCityName},
	{Action: InsertState, MenuID: "insert-state", Title: "Inserir Estado", Kind: model.KindRegionName},
	{Action: InsertUf, MenuID: "insert-uf", Title: "Inserir UF", Kind: model.KindRegionCode},
	{Action: InsertDate, MenuID: "insert-date", Title: "Inserir Data", Kind: model.KindDate},
	{Action: InsertDateTime, MenuID: "insert-datetime", Title: "Inserir Data e Hora", Kind: model.KindDateTime},
	{Action: InsertTime, MenuID: "insert-time", Title: "Inserir Hora", Kind: model.KindTime},
	{Action: InsertAdultDate, MenuID: "insert-adult-date", Title: "Inserir Data de Nascimento (maior de idade)", Kind: model.KindAdultDate},
	{Action: InsertMinorDate, MenuID: "insert-minor-date", Title: "Inserir Data de Nascimento (menor de idade)", Kind: model.KindMinorDate},
	{Action: InsertURL, MenuID: "insert-url", Title: "Inserir URL", Kind: model.KindURL},
	{Action: InsertInteger, MenuID: "insert-integer", Title: "Inserir Número Inteiro", Kind: model.KindInteger},
	{Action: InsertMoney, MenuID: "insert-money", Title: "Inserir Valor Monetário", Kind: model.KindMoney},
	{Action: InsertDecimal, MenuID: "insert-decimal", Title: "Inserir Número Decimal", Kind: model.KindDecimal},
	{Action: InsertPercent, MenuID: "insert-percent", Title: "Inserir Percentual", Kind: model.KindPercent},
	{Action: InsertSignedPercent, MenuID: "insert-signed-percent", Title: "Inserir Percentual com Sinal", Kind: model.KindSignedPercent},
	{Action: InsertLorem, MenuID: "insert-lorem", Title: "Inserir Lorem Ipsum", Kind: model.KindGenericText},
	{Action: InsertCityByCep, MenuID: "insert-city-by-cep", Title: "Inserir Cidade pelo CEP", Prompted: true},
	{Action: InsertCityByName, MenuID: "insert-city-by-name", Title: "Inserir Cidade pelo Nome", Prompted: true},
	{Action: FillForm, MenuID: "fill-form", Title: "Preencher Formulário"},
}

var (
	byAction = make(map[Action]Definition, len(definitions))
	byMenu   = make(map[string]Definition, len(definitions))
)

func init() {
	for _, def := range definitions {
		byAction[def.Action] = def
		byMenu[def.MenuID] = def
	}
}

// Menu returns every definition in menu order.
func Menu() []Definition {
	return append([]Definition(nil), definitions...)
}

// Lookup returns the definition of action.
func Lookup(action Action) (Definition, bool) {
	def, ok := byAction[action]
	return def, ok
}

// ActionForMenu maps a host menu id ("insert-cpf") to its action.
func ActionForMenu(menuID string) (Action, bool) {
	def, ok := byMenu[menuID]
	if !ok {
		return "", false
	}
	return def.Action, true
}

// Parse accepts either an action id or a menu id.
func Parse(raw string) (Action, bool) {
	if def, ok := byAction[Action(raw)]; ok {
		return def.Action, true
	}
	return ActionForMenu(raw)
}

// Actions returns every action id sorted alphabetically.
func Actions() []Action {
	out := make([]Action, 0, len(definitions))
	for _, def := range definitions {
		out = append(out, def.Action)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
