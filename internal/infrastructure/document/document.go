package document

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	"image/png"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
)

type align int

const (
	alignLeft align = iota
	alignCenter
	alignRight
)

var ErrBadImage = errors.New("invalid signature image")

// Document - PDF в процессе отрисовки. Запоминает выведенный текст по страницам.
type Document struct {
	pdf    *fpdf.Fpdf
	tr     func(string) string
	pages  [][]string
	images int
}

func newDocument() *Document {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("formular230", false)

	return &Document{
		pdf: pdf,
		tr:  pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

// Pages - количество страниц
func (d *Document) Pages() int {
	return len(d.pages)
}

// PageText возвращает строки, выведенные на странице n (с единицы)
func (d *Document) PageText(n int) []string {
	if n < 1 || n > len(d.pages) {
		return nil
	}
	return d.pages[n-1]
}

// WriteTo закрывает документ, повторный вызов ничего не запишет
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	if err := d.pdf.Output(cw); err != nil {
		return cw.n, fmt.Errorf("write pdf: %w", err)
	}
	return cw.n, nil
}

// Bytes - готовый PDF целиком
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := d.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (d *Document) err() error {
	if d.pdf.Err() {
		return d.pdf.Error()
	}
	return nil
}

func (d *Document) addPage() {
	d.pdf.AddPage()
	d.pages = append(d.pages, nil)
}

func (d *Document) font(style string, size float64) {
	d.pdf.SetFont("Helvetica", style, size)
}

func (d *Document) color(r, g, b int) {
	d.pdf.SetTextColor(r, g, b)
}

func (d *Document) text(x, y float64, s string, a align) {
	s = Transliterate(s)
	d.pages[len(d.pages)-1] = append(d.pages[len(d.pages)-1], s)

	encoded := d.tr(s)
	switch a {
	case alignCenter:
		x -= d.pdf.GetStringWidth(encoded) / 2
	case alignRight:
		x -= d.pdf.GetStringWidth(encoded)
	}
	d.pdf.Text(x, y, encoded)
}

// wrap разбивает текст на строки шириной не больше width при текущем шрифте
func (d *Document) wrap(s string, width float64) []string {
	return d.pdf.SplitText(Transliterate(s), width)
}

// image вставляет картинку из data URL. Битое изображение не портит документ.
func (d *Document) image(dataURL string, x, y, w, h float64) error {
	raw, err := decodeImage(dataURL)
	if err != nil {
		return err
	}

	d.images++
	name := fmt.Sprintf("signature-%d", d.images)
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	d.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(raw))
	d.pdf.ImageOptions(name, x, y, w, h, false, opts, 0, "")
	return d.err()
}

// decodeImage разбирает data URL и перекодирует картинку в 8-битный PNG,
// который fpdf гарантированно умеет читать
func decodeImage(dataURL string) ([]byte, error) {
	payload, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return nil, fmt.Errorf("%w: not a data url", ErrBadImage)
	}
	meta, data, ok := strings.Cut(payload, ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return nil, fmt.Errorf("%w: expected base64 data url", ErrBadImage)
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadImage, err)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadImage, err)
	}

	nrgba := image.NewNRGBA(img.Bounds())
	draw.Draw(nrgba, nrgba.Bounds(), img, img.Bounds().Min, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, nrgba); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadImage, err)
	}
	return buf.Bytes(), nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
