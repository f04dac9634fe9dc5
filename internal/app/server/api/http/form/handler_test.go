package form

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/exp/slog"

	"formular230/internal/domain/form"
	"formular230/internal/domain/result"
	"formular230/internal/infrastructure/document"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Submit(ctx context.Context, f form.Form) (form.Form, error) {
	args := m.Called(ctx, f)
	return args.Get(0).(form.Form), args.Error(1)
}

func (m *MockService) List(ctx context.Context, query string) result.Result[[]form.Form] {
	args := m.Called(ctx, query)
	return args.Get(0).(result.Result[[]form.Form])
}

func (m *MockService) Find(ctx context.Context, id int64) (form.Form, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(form.Form), args.Error(1)
}

func (m *MockService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func setup(t *testing.T) (*MockService, humatest.TestAPI) {
	svc := new(MockService)
	_, api := humatest.New(t)

	h := NewHandler(svc, document.NewRenderer(document.DefaultEntity(), slog.Default()), slog.Default(), nil, nil)
	h.now = func() time.Time { return time.Date(2025, 5, 2, 12, 0, 0, 0, time.UTC) }
	h.SetupRoutes(api)

	return svc, api
}

func storedForm(id int64, last, first string) form.Form {
	return form.Form{
		ID: id, LastName: last, FirstName: first, CNP: "2900101123456",
		Email: "x@example.ro", Phone: "0740123456", Street: "Str. Mare", Number: "1",
		County: "Valcea", City: "Ramnicu Valcea", DistributionPeriod: form.PeriodTwoYears,
		TermsAgreed: true, DataSharing: true,
		CreatedAt: time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestHandler_Submit(t *testing.T) {
	svc, api := setup(t)

	svc.On("Submit", mock.Anything, mock.MatchedBy(func(f form.Form) bool {
		return f.LastName == "Popescu" && f.DistributionPeriod == "" && f.TermsAgreed
	})).Return(form.Form{ID: 1746176400000}, nil)

	resp := api.Post("/api/forms", map[string]any{
		"lastName":    "Popescu",
		"firstName":   "Ioana",
		"termsAgreed": true,
	})

	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	assert.Contains(t, resp.Body.String(), `"id":1746176400000`)
	svc.AssertExpectations(t)
}

func TestHandler_Submit_ValidationErrors(t *testing.T) {
	svc, api := setup(t)

	svc.On("Submit", mock.Anything, mock.Anything).Return(form.Form{}, &form.ValidationError{
		Fields: []form.FieldError{
			{Field: "cnp", Message: "CNP-ul trebuie să aibă exact 13 cifre"},
			{Field: "signature", Message: "Semnătura este obligatorie"},
		},
	})

	resp := api.Post("/api/forms", map[string]any{"cnp": "123"})

	require.Equal(t, http.StatusUnprocessableEntity, resp.Code)

	var body struct {
		Errors []struct {
			Message  string `json:"message"`
			Location string `json:"location"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body.Errors, 2)
	assert.Equal(t, "body.cnp", body.Errors[0].Location)
	assert.Equal(t, "CNP-ul trebuie să aibă exact 13 cifre", body.Errors[0].Message)
}

func TestHandler_Submit_StoreErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "save failed", err: form.ErrSaveFailed, status: http.StatusBadGateway},
		{name: "conflict", err: form.ErrConflict, status: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, api := setup(t)
			svc.On("Submit", mock.Anything, mock.Anything).Return(form.Form{}, tt.err)

			resp := api.Post("/api/forms", map[string]any{"lastName": "Popescu"})
			assert.Equal(t, tt.status, resp.Code)
		})
	}
}

func TestHandler_List(t *testing.T) {
	svc, api := setup(t)
	svc.On("List", mock.Anything, "pop").Return(result.Ok([]form.Form{storedForm(1, "Popescu", "Ioana")}))

	resp := api.Get("/api/admin/forms?q=pop")

	require.Equal(t, http.StatusOK, resp.Code)
	var body listResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.True(t, body.Available)
	assert.Equal(t, 1, body.Total)
	assert.Equal(t, "Popescu", body.Forms[0].LastName)
}

func TestHandler_List_Unavailable(t *testing.T) {
	svc, api := setup(t)
	svc.On("List", mock.Anything, "").Return(result.Unavailable([]form.Form{}, errors.New("down")))

	resp := api.Get("/api/admin/forms")

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"available":false`)
	assert.Contains(t, resp.Body.String(), `"forms":[]`)
}

func TestHandler_Delete(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "ok", err: nil, status: http.StatusOK},
		{name: "store missing", err: form.ErrStoreMissing, status: http.StatusNotFound},
		{name: "conflict", err: form.ErrConflict, status: http.StatusConflict},
		{name: "failure", err: form.ErrDeleteFailed, status: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, api := setup(t)
			svc.On("Delete", mock.Anything, int64(42)).Return(tt.err)

			resp := api.Delete("/api/admin/forms/42")
			assert.Equal(t, tt.status, resp.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandler_DownloadPDF(t *testing.T) {
	svc, api := setup(t)
	svc.On("Find", mock.Anything, int64(7)).Return(storedForm(7, "Popescu", "Ioana"), nil)

	resp := api.Get("/api/admin/forms/7/pdf")

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "application/pdf", resp.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Formular_230_Popescu_Ioana.pdf"`, resp.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(resp.Body.String(), "%PDF-"))
}

func TestHandler_DownloadPDF_Errors(t *testing.T) {
	svc, api := setup(t)
	svc.On("Find", mock.Anything, int64(1)).Return(form.Form{}, form.ErrNotFound)
	svc.On("Find", mock.Anything, int64(2)).Return(form.Form{}, form.ErrUnavailable)

	assert.Equal(t, http.StatusNotFound, api.Get("/api/admin/forms/1/pdf").Code)
	assert.Equal(t, http.StatusBadGateway, api.Get("/api/admin/forms/2/pdf").Code)
}

func TestHandler_DownloadJSON(t *testing.T) {
	svc, api := setup(t)
	stored := storedForm(7, "Popescu", "Ioana")
	svc.On("Find", mock.Anything, int64(7)).Return(stored, nil)

	resp := api.Get("/api/admin/forms/7/json")

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, `attachment; filename="formular_Popescu_Ioana.json"`, resp.Header().Get("Content-Disposition"))

	var got form.Form
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	assert.Equal(t, stored, got)
	assert.Contains(t, resp.Body.String(), "\n  \"lastName\": \"Popescu\"")
}

func TestHandler_ExportPDF(t *testing.T) {
	svc, api := setup(t)
	second := storedForm(2, "Ionescu", "Mihai")
	second.WantsAuthorization = true
	svc.On("List", mock.Anything, "").Return(result.Ok([]form.Form{storedForm(1, "Popescu", "Ioana"), second}))

	resp := api.Get("/api/admin/forms/export/pdf")

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, `attachment; filename="Formulare_230_Bulk_2025-05-02.pdf"`, resp.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(resp.Body.String(), "%PDF-"))
}

func TestHandler_ExportPDF_Empty(t *testing.T) {
	svc, api := setup(t)
	svc.On("List", mock.Anything, "zzz").Return(result.Ok([]form.Form{}))

	resp := api.Get("/api/admin/forms/export/pdf?q=zzz")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHandler_ExportPDF_Unavailable(t *testing.T) {
	svc, api := setup(t)
	svc.On("List", mock.Anything, "").Return(result.Unavailable([]form.Form{}, errors.New("down")))

	resp := api.Get("/api/admin/forms/export/pdf")
	assert.Equal(t, http.StatusBadGateway, resp.Code)
}

func TestHandler_ExportXLSX(t *testing.T) {
	svc, api := setup(t)
	svc.On("List", mock.Anything, "").Return(result.Ok([]form.Form{storedForm(1, "Popescu", "Ioana")}))

	resp := api.Get("/api/admin/forms/export/xlsx")

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, contentTypeXLSX, resp.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Formulare_230_2025-05-02.xlsx"`, resp.Header().Get("Content-Disposition"))

	f, err := excelize.OpenReader(resp.Body)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Formulare")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}
