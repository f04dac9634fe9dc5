package form

import (
	"fmt"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

// Period - срок перенаправления налога в годах
type Period string

const (
	PeriodOneYear  Period = "1"
	PeriodTwoYears Period = "2"

	DefaultPeriod = PeriodTwoYears
)

func (Period) Schema(_ huma.Registry) *huma.Schema {
	return &huma.Schema{
		Type:        "string",
		Enum:        []any{string(PeriodOneYear), string(PeriodTwoYears)},
		Description: "Perioada de redirecționare: 1 sau 2 ani",
		Examples:    []any{string(PeriodTwoYears)},
	}
}

// Validate проверяет допустимость значения
func (p Period) Validate() error {
	switch p {
	case PeriodOneYear, PeriodTwoYears:
		return nil
	}
	return fmt.Errorf("perioadă de distribuire invalidă: %q", string(p))
}

// Form - одна заявка. Имена JSON полей совпадают с форматом data/forms.json.
type Form struct {
	ID                     int64     `json:"id"`
	LastName               string    `json:"lastName"`
	FirstName              string    `json:"firstName"`
	CNP                    string    `json:"cnp"`
	Email                  string    `json:"email"`
	Phone                  string    `json:"phone"`
	Street                 string    `json:"street"`
	Number                 string    `json:"number"`
	Block                  string    `json:"block,omitempty"`
	Entrance               string    `json:"entrance,omitempty"`
	Floor                  string    `json:"floor,omitempty"`
	Apartment              string    `json:"apartment,omitempty"`
	County                 string    `json:"county"`
	City                   string    `json:"city"`
	DistributionPeriod     Period    `json:"distributionPeriod"`
	TermsAgreed            bool      `json:"termsAgreed"`
	DataSharing            bool      `json:"dataSharing"`
	Signature              string    `json:"signature,omitempty"`
	AuthorizationSignature string    `json:"authorizationSignature,omitempty"`
	WantsAuthorization     bool      `json:"wantsAuthorization"`
	CreatedAt              time.Time `json:"createdAt"`
}

// FullName - "Nume Prenume", как в разделе I формуляра
func (f Form) FullName() string {
	return strings.TrimSpace(f.LastName + " " + f.FirstName)
}

// Address собирает адрес из необязательных частей
func (f Form) Address() string {
	var b strings.Builder
	b.WriteString(f.Street)
	if f.Number != "" {
		b.WriteString(" nr. " + f.Number)
	}
	if f.Block != "" {
		b.WriteString(", bl. " + f.Block)
	}
	if f.Entrance != "" {
		b.WriteString(", sc. " + f.Entrance)
	}
	if f.Floor != "" {
		b.WriteString(", et. " + f.Floor)
	}
	if f.Apartment != "" {
		b.WriteString(", ap. " + f.Apartment)
	}
	if f.City != "" {
		b.WriteString(", " + f.City)
	}
	if f.County != "" {
		b.WriteString(", jud. " + f.County)
	}
	return b.String()
}

// Pages - сколько страниц займет заявка в PDF
func (f Form) Pages() int {
	if f.WantsAuthorization {
		return 2
	}
	return 1
}
