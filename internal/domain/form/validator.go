package form

import (
	"strings"
)

const (
	CNPLength      = 13
	MinPhoneLength = 10
)

// Validator проверяет заявку до любого обращения к хранилищу
type Validator interface {
	Validate(f Form) error
}

type SubmissionValidator struct{}

func NewValidator() *SubmissionValidator {
	return &SubmissionValidator{}
}

// Validate возвращает *ValidationError со всеми найденными ошибками
func (v *SubmissionValidator) Validate(f Form) error {
	var errs []FieldError
	add := func(field, msg string) {
		errs = append(errs, FieldError{Field: field, Message: msg})
	}

	required := []struct {
		field string
		value string
		msg   string
	}{
		{"lastName", f.LastName, "Numele de familie este obligatoriu"},
		{"firstName", f.FirstName, "Prenumele este obligatoriu"},
		{"cnp", f.CNP, "CNP-ul este obligatoriu"},
		{"email", f.Email, "Email-ul este obligatoriu"},
		{"phone", f.Phone, "Telefonul este obligatoriu"},
		{"street", f.Street, "Strada este obligatorie"},
		{"number", f.Number, "Numărul este obligatoriu"},
		{"county", f.County, "Județul este obligatoriu"},
		{"city", f.City, "Localitatea este obligatorie"},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			add(r.field, r.msg)
		}
	}

	if f.CNP != "" && len(f.CNP) != CNPLength {
		add("cnp", "CNP-ul trebuie să aibă exact 13 cifre")
	}
	if f.Email != "" && !strings.Contains(f.Email, "@") {
		add("email", "Email-ul nu este valid")
	}
	if f.Phone != "" && len(f.Phone) < MinPhoneLength {
		add("phone", "Numărul de telefon nu este valid")
	}
	if f.DistributionPeriod != "" {
		if err := f.DistributionPeriod.Validate(); err != nil {
			add("distributionPeriod", "Perioada de distribuire trebuie să fie 1 sau 2 ani")
		}
	}

	if !f.TermsAgreed {
		add("termsAgreed", "Trebuie să acceptați termenii și condițiile")
	}
	if !f.DataSharing {
		add("dataSharing", "Trebuie să acceptați partajarea datelor")
	}

	if f.Signature == "" {
		add("signature", "Semnătura este obligatorie")
	}
	if f.WantsAuthorization && f.AuthorizationSignature == "" {
		add("authorizationSignature", "Semnătura pentru împuternicire este obligatorie")
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: dedupe(errs)}
	}
	return nil
}

// dedupe оставляет последнее сообщение для поля, как форма в браузере
func dedupe(errs []FieldError) []FieldError {
	idx := make(map[string]int, len(errs))
	out := make([]FieldError, 0, len(errs))
	for _, e := range errs {
		if i, ok := idx[e.Field]; ok {
			out[i] = e
			continue
		}
		idx[e.Field] = len(out)
		out = append(out, e)
	}
	return out
}
