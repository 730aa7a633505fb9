package synth

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/goliatone/go-formfill/pkg/model"
)

var (
	emailUsers   = []string{"usuario", "teste", "dev", "admin", "user", "cliente", "contato"}
	emailDomains = []string{"gmail.com", "hotmail.com", "yahoo.com", "outlook.com", "teste.com", "exemplo.com"}

	// DefaultAreaCodes backs phone numbers when the dataset is unavailable.
	DefaultAreaCodes = []string{"11", "21", "31", "41", "47", "48", "51", "61", "71", "81", "85"}

	firstNames = []string{
		"Ana", "Beatriz", "Bruno", "Camila", "Carlos", "Daniela", "Eduardo",
		"Fernanda", "Gabriel", "Helena", "Igor", "Juliana", "Lucas", "Mariana",
		"Mateus", "Natália", "Paulo", "Rafael", "Sofia", "Thiago", "Vitória",
	}
	lastNames = []string{
		"Almeida", "Barbosa", "Cardoso", "Costa", "Ferreira", "Gomes",
		"Lima", "Martins", "Oliveira", "Pereira", "Ribeiro", "Rodrigues",
		"Santos", "Silva", "Souza",
	}
)

func email(src Source, _ model.Constraints) string {
	return fmt.Sprintf("%s%d@%s",
		src.Faker.RandomString(emailUsers),
		src.Rand.Intn(10000),
		src.Faker.RandomString(emailDomains),
	)
}

// phone renders "(DD) NNNNN-NNNN" from a nine digit subscriber number.
func phone(src Source, _ model.Constraints) string {
	codes := DefaultAreaCodes
	if src.Lookup != nil {
		if fromData := src.Lookup.AreaCodes(); len(fromData) > 0 {
			codes = fromData
		}
	}
	number := fmt.Sprintf("%09d", 100000000+src.Rand.Intn(900000000))
	return fmt.Sprintf("(%s) %s-%s", src.Faker.RandomString(codes), number[:5], number[5:])
}

// username lowercases the faker handle and keeps only letters and digits.
func username(src Source, _ model.Constraints) string {
	raw := src.Faker.Username()
	var b strings.Builder
	for _, ch := range strings.ToLower(raw) {
		if ch < unicode.MaxASCII && (unicode.IsLetter(ch) || unicode.IsDigit(ch)) {
			b.WriteRune(ch)
		}
	}
	if b.Len() == 0 {
		return fmt.Sprintf("%s%d", src.Faker.RandomString(emailUsers), src.Rand.Intn(10000))
	}
	return b.String()
}

func personName(src Source, _ model.Constraints) string {
	return src.Faker.RandomString(firstNames) + " " + src.Faker.RandomString(lastNames)
}
