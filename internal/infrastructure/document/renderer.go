package document

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/slog"

	"formular230/internal/domain/form"
)

const (
	leftMargin = 20.0
	fieldWidth = 170.0
	lineHeight = 8.0

	dateLayout = "02.01.2006"
)

var ErrNoForms = errors.New("no forms to export")

// Entity - организация, в пользу которой перенаправляется налог
type Entity struct {
	Name           string
	CIF            string
	IBAN           string
	Address        [2]string
	Seat           string
	Representative string
	Website        string
}

func DefaultEntity() Entity {
	return Entity{
		Name: `Asociatia "Initiativa Valcea Inoveaza"`,
		CIF:  "44291122",
		IBAN: "RO86BTRLRONCRT0596202401",
		Address: [2]string{
			"Jud. Valcea, Mun. Ramnicu Valcea, Str. Calea lui Traian nr. 79,",
			"bl. S24, sc. A, et. 4, ap. 19",
		},
		Seat:           "Mun. Ramnicu Valcea, Str. Calea lui Traian nr. 79, bl. S24, sc. A, et. 4, ap. 19, jud. Valcea",
		Representative: "Vasile Catalin",
		Website:        "www.projectivi.ro",
	}
}

type Renderer struct {
	entity Entity
	now    func() time.Time
	log    *slog.Logger
}

func NewRenderer(entity Entity, log *slog.Logger) *Renderer {
	return &Renderer{
		entity: entity,
		now:    time.Now,
		log:    log.With("component", "pdf_renderer"),
	}
}

// Render рисует одну заявку: одна страница, вторая только для împuternicire
func (r *Renderer) Render(f form.Form) (*Document, error) {
	d := newDocument()
	r.draw(d, f, r.now().Format(dateLayout))
	if err := d.err(); err != nil {
		return nil, fmt.Errorf("render form %d: %w", f.ID, err)
	}
	return d, nil
}

// RenderBulk склеивает заявки в один документ в порядке входного списка
func (r *Renderer) RenderBulk(forms []form.Form) (*Document, error) {
	if len(forms) == 0 {
		return nil, ErrNoForms
	}

	d := newDocument()
	date := r.now().Format(dateLayout)
	for _, f := range forms {
		r.draw(d, f, date)
	}
	if err := d.err(); err != nil {
		return nil, fmt.Errorf("render %d forms: %w", len(forms), err)
	}
	return d, nil
}

func (r *Renderer) draw(d *Document, f form.Form, date string) {
	r.drawForm(d, f, date)
	if f.WantsAuthorization {
		r.drawAuthorization(d, f, date)
	}
}

func (r *Renderer) drawForm(d *Document, f form.Form, date string) {
	d.addPage()

	// Логотип
	d.pdf.SetFillColor(107, 70, 193)
	d.pdf.Rect(15, 10, 25, 15, "F")
	d.color(255, 255, 255)
	d.font("B", 10)
	d.text(27.5, 16, "Project", alignCenter)
	d.text(27.5, 21, "IVI", alignCenter)

	d.color(0, 0, 0)
	d.font("B", 16)
	d.text(105, 25, "Formular 230", alignCenter)

	d.font("", 11)
	d.text(105, 33, "Cerere privind destinatia sumei reprezentand pana la 3,5%", alignCenter)
	d.text(105, 40, "din impozitul anual datorat", alignCenter)

	y := 55.0

	// I. Date de identificare
	d.font("B", 11)
	d.text(leftMargin, y, "I. DATE DE IDENTIFICARE A CONTRIBUABILULUI", alignLeft)
	y += 12

	d.font("", 10)
	d.text(leftMargin, y, fmt.Sprintf("Nume si prenume: %s %s", f.LastName, f.FirstName), alignLeft)
	y += lineHeight
	d.text(leftMargin, y, "CNP: "+f.CNP, alignLeft)
	y += lineHeight
	for _, line := range d.wrap("Adresa: "+f.Address(), fieldWidth) {
		d.text(leftMargin, y, line, alignLeft)
		y += lineHeight
	}
	d.text(leftMargin, y, "Telefon: "+f.Phone, alignLeft)
	y += lineHeight
	d.text(leftMargin, y, "E-mail: "+f.Email, alignLeft)
	y += 15

	// II. Destinatia sumei
	d.font("B", 10)
	d.text(leftMargin, y, "II. DESTINATIA SUMEI DE PANA LA 3,5% DIN IMPOZITUL ANUAL", alignLeft)
	y += 12

	d.font("", 10)
	destination := "Solicit redirectionarea sumei reprezentand pana la 3,5% din impozitul anual datorat, " +
		"conform prevederilor art. 123^1 din Legea nr. 227/2015, catre urmatoarea entitate nonprofit:"
	for _, line := range d.wrap(destination, fieldWidth) {
		d.text(leftMargin, y, line, alignLeft)
		y += 6
	}
	y += 8

	d.text(leftMargin, y, "Denumire entitate nonprofit: "+r.entity.Name, alignLeft)
	y += lineHeight
	d.text(leftMargin, y, "Cod de identificare fiscala: "+r.entity.CIF, alignLeft)
	y += lineHeight
	d.text(leftMargin, y, "Cont bancar (IBAN): "+r.entity.IBAN, alignLeft)
	y += lineHeight
	d.text(leftMargin, y, "Adresa: "+r.entity.Address[0], alignLeft)
	y += lineHeight
	d.text(leftMargin, y, r.entity.Address[1], alignLeft)
	y += 15

	// III. Semnatura
	d.font("B", 10)
	d.text(leftMargin, y, "III. SEMNATURA CONTRIBUABIL", alignLeft)
	y += 12

	d.font("", 10)
	r.drawSignature(d, f.ID, f.Signature, y)
	d.text(140, y, "Data: "+date, alignLeft)
	y += 25

	d.font("", 9)
	info := []string{
		"Formularul se completeaza de catre contribuabil si poate fi depus personal, prin imputernicit, " +
			"prin posta sau prin mijloace electronice de transmitere la distanta.",
		"Redirectionarea celor 3,5% nu reprezinta o donatie si nu implica niciun cost - este vorba de o parte " +
			"din impozitul deja retinut de stat pentru veniturile din anul trecut.",
	}
	for i, text := range info {
		if i > 0 {
			y += 3
		}
		for _, line := range d.wrap(text, fieldWidth) {
			d.text(leftMargin, y, line, alignLeft)
			y += 5
		}
	}

	d.font("", 8)
	d.color(107, 70, 193)
	d.text(190, 285, r.entity.Website, alignRight)
}

func (r *Renderer) drawAuthorization(d *Document, f form.Form, date string) {
	d.addPage()

	d.color(0, 0, 0)
	d.font("B", 14)
	d.text(105, 30, "IMPUTERNICIRE", alignCenter)

	y := 50.0
	d.font("", 10)
	authorization := fmt.Sprintf("Subsemnatul/a %s %s, identificat/a cu CNP %s, domiciliat/a in %s, "+
		"imputernicesc %s, CIF %s, cu sediul in %s, reprezentata legal prin %s, sa depuna in numele meu "+
		"Formularul 230 privind redirectionarea a pana la 3,5%% din impozitul pe venitul meu anual datorat "+
		"catre aceasta entitate nonprofit.",
		f.FirstName, f.LastName, f.CNP, f.Address(),
		r.entity.Name, r.entity.CIF, r.entity.Seat, r.entity.Representative)
	for _, line := range d.wrap(authorization, fieldWidth) {
		d.text(leftMargin, y, line, alignLeft)
		y += 6
	}

	y += 10
	d.text(leftMargin, y, "Prezenta imputernicire este valabila exclusiv pentru acest scop.", alignLeft)
	y += 20

	r.drawSignature(d, f.ID, f.AuthorizationSignature, y)
	d.text(140, y, "Data: "+date, alignLeft)

	d.font("", 8)
	d.color(128, 128, 128)
	d.text(105, 270, "Acest document a fost generat automat de platforma "+r.entity.Name, alignCenter)
	d.text(105, 275, "pentru redirectionarea a 3.5% din impozitul pe venit", alignCenter)
	d.color(0, 0, 0)
}

func (r *Renderer) drawSignature(d *Document, formID int64, signature string, y float64) {
	d.text(leftMargin, y, "Semnatura:", alignLeft)
	if signature == "" {
		return
	}
	if err := d.image(signature, leftMargin+25, y-5, 50, 15); err != nil {
		r.log.Warn("signature skipped", "form_id", formID, "error", err)
	}
}
