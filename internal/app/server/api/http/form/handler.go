package form

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"formular230/internal/domain/form"
	"formular230/internal/infrastructure/document"
)

const (
	contentTypePDF  = "application/pdf"
	contentTypeJSON = "application/json"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Exporter рисует PDF для одной заявки или для списка
type Exporter interface {
	Render(f form.Form) (*document.Document, error)
	RenderBulk(forms []form.Form) (*document.Document, error)
}

type Handler struct {
	service  form.Servicer
	exporter Exporter
	now      func() time.Time
	log      *slog.Logger
	public   huma.Middlewares
	admin    huma.Middlewares
}

func NewHandler(service form.Servicer, exporter Exporter, log *slog.Logger, public, admin huma.Middlewares) *Handler {
	return &Handler{
		service:  service,
		exporter: exporter,
		now:      time.Now,
		log:      log.With("component", "form_handler"),
		public:   public,
		admin:    admin,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.submitOp(), h.submit)

	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.exportPDFOp(), h.exportPDF)
	huma.Register(api, h.exportXLSXOp(), h.exportXLSX)
	huma.Register(api, h.deleteOp(), h.delete)
	huma.Register(api, h.pdfOp(), h.downloadPDF)
	huma.Register(api, h.jsonOp(), h.downloadJSON)
}

func (h *Handler) submit(ctx context.Context, input *submitInput) (*submitOutput, error) {
	saved, err := h.service.Submit(ctx, input.Body.toForm())
	if err != nil {
		return nil, submitError(err)
	}

	return &submitOutput{
		Body: submitResponse{
			Status:  "Ok",
			ID:      saved.ID,
			Message: "Formularul a fost trimis cu succes!",
		},
	}, nil
}

func (h *Handler) list(ctx context.Context, input *listInput) (*listOutput, error) {
	res := h.service.List(ctx, input.Query)

	return &listOutput{
		Body: listResponse{
			Available: res.Available,
			Total:     len(res.Data),
			Forms:     res.Data,
		},
	}, nil
}

func (h *Handler) delete(ctx context.Context, input *idInput) (*deleteOutput, error) {
	err := h.service.Delete(ctx, input.ID)
	switch {
	case err == nil:
		return &deleteOutput{Body: statusResponse{Status: "Ok"}}, nil
	case errors.Is(err, form.ErrStoreMissing):
		return nil, huma.Error404NotFound("Fișierul cu formulare nu există")
	case errors.Is(err, form.ErrConflict):
		return nil, huma.Error409Conflict("Formularele au fost modificate între timp, reîncercați")
	default:
		return nil, huma.Error502BadGateway("Formularul nu a putut fi șters")
	}
}

func (h *Handler) downloadPDF(ctx context.Context, input *idInput) (*fileOutput, error) {
	f, err := h.find(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	doc, err := h.exporter.Render(f)
	if err != nil {
		h.log.Error("failed to render pdf", "form_id", f.ID, "error", err)
		return nil, huma.Error500InternalServerError("PDF-ul nu a putut fi generat")
	}
	return h.pdfFile(document.PDFFileName(f), doc)
}

func (h *Handler) downloadJSON(ctx context.Context, input *idInput) (*fileOutput, error) {
	f, err := h.find(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, huma.Error500InternalServerError("JSON-ul nu a putut fi generat")
	}
	return attachment(document.JSONFileName(f), contentTypeJSON, data), nil
}

func (h *Handler) exportPDF(ctx context.Context, input *exportInput) (*fileOutput, error) {
	forms, err := h.listAvailable(ctx, input.Query)
	if err != nil {
		return nil, err
	}

	doc, err := h.exporter.RenderBulk(forms)
	if errors.Is(err, document.ErrNoForms) {
		return nil, huma.Error404NotFound("Nu există formulare pentru export")
	}
	if err != nil {
		h.log.Error("failed to render bulk pdf", "count", len(forms), "error", err)
		return nil, huma.Error500InternalServerError("PDF-ul nu a putut fi generat")
	}
	return h.pdfFile(document.BulkFileName(h.now()), doc)
}

func (h *Handler) exportXLSX(ctx context.Context, input *exportInput) (*fileOutput, error) {
	forms, err := h.listAvailable(ctx, input.Query)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := document.WriteSpreadsheet(&buf, forms); err != nil {
		h.log.Error("failed to write spreadsheet", "count", len(forms), "error", err)
		return nil, huma.Error500InternalServerError("Fișierul Excel nu a putut fi generat")
	}
	return attachment(document.SpreadsheetFileName(h.now()), contentTypeXLSX, buf.Bytes()), nil
}

func (h *Handler) find(ctx context.Context, id int64) (form.Form, error) {
	f, err := h.service.Find(ctx, id)
	switch {
	case err == nil:
		return f, nil
	case errors.Is(err, form.ErrNotFound):
		return form.Form{}, huma.Error404NotFound("Formularul nu a fost găsit")
	default:
		return form.Form{}, huma.Error502BadGateway("Formularele nu pot fi citite momentan")
	}
}

// listAvailable не отдает пустую выгрузку, если хранилище недоступно
func (h *Handler) listAvailable(ctx context.Context, query string) ([]form.Form, error) {
	res := h.service.List(ctx, query)
	if !res.Available {
		return nil, huma.Error502BadGateway("Formularele nu pot fi citite momentan")
	}
	return res.Data, nil
}

func (h *Handler) pdfFile(name string, doc *document.Document) (*fileOutput, error) {
	data, err := doc.Bytes()
	if err != nil {
		h.log.Error("failed to write pdf", "file", name, "error", err)
		return nil, huma.Error500InternalServerError("PDF-ul nu a putut fi generat")
	}
	return attachment(name, contentTypePDF, data), nil
}

func submitError(err error) error {
	var verr *form.ValidationError
	switch {
	case errors.As(err, &verr):
		details := make([]error, 0, len(verr.Fields))
		for _, f := range verr.Fields {
			details = append(details, &huma.ErrorDetail{
				Message:  f.Message,
				Location: "body." + f.Field,
			})
		}
		return huma.Error422UnprocessableEntity("Vă rugăm să corectați erorile din formular", details...)
	case errors.Is(err, form.ErrConflict):
		return huma.Error409Conflict("Formularul nu a putut fi salvat, vă rugăm să încercați din nou")
	default:
		return huma.Error502BadGateway("A apărut o eroare la trimiterea formularului. Vă rugăm să încercați din nou.")
	}
}
