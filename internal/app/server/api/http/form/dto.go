package form

import (
	"formular230/internal/domain/form"
)

// submitRequest - все поля необязательны для huma, проверку делает form.Validator,
// чтобы пользователь получил сообщения на румынском
type submitRequest struct {
	LastName               string `json:"lastName,omitempty" doc:"Фамилия" example:"Popescu"`
	FirstName              string `json:"firstName,omitempty" doc:"Имя" example:"Ioana"`
	CNP                    string `json:"cnp,omitempty" doc:"Персональный код (CNP), 13 символов" example:"2900101123456"`
	Email                  string `json:"email,omitempty" example:"ioana@example.ro"`
	Phone                  string `json:"phone,omitempty" example:"0740123456"`
	Street                 string `json:"street,omitempty"`
	Number                 string `json:"number,omitempty"`
	Block                  string `json:"block,omitempty"`
	Entrance               string `json:"entrance,omitempty"`
	Floor                  string `json:"floor,omitempty"`
	Apartment              string `json:"apartment,omitempty"`
	County                 string `json:"county,omitempty"`
	City                   string `json:"city,omitempty"`
	DistributionPeriod     string `json:"distributionPeriod,omitempty" doc:"Срок перенаправления: 1 или 2 года, по умолчанию 2" example:"2"`
	TermsAgreed            bool   `json:"termsAgreed,omitempty"`
	DataSharing            bool   `json:"dataSharing,omitempty"`
	Signature              string `json:"signature,omitempty" doc:"Подпись, data URL с PNG или JPEG"`
	AuthorizationSignature string `json:"authorizationSignature,omitempty" doc:"Подпись под доверенностью"`
	WantsAuthorization     bool   `json:"wantsAuthorization,omitempty"`
}

func (r submitRequest) toForm() form.Form {
	return form.Form{
		LastName:               r.LastName,
		FirstName:              r.FirstName,
		CNP:                    r.CNP,
		Email:                  r.Email,
		Phone:                  r.Phone,
		Street:                 r.Street,
		Number:                 r.Number,
		Block:                  r.Block,
		Entrance:               r.Entrance,
		Floor:                  r.Floor,
		Apartment:              r.Apartment,
		County:                 r.County,
		City:                   r.City,
		DistributionPeriod:     form.Period(r.DistributionPeriod),
		TermsAgreed:            r.TermsAgreed,
		DataSharing:            r.DataSharing,
		Signature:              r.Signature,
		AuthorizationSignature: r.AuthorizationSignature,
		WantsAuthorization:     r.WantsAuthorization,
	}
}

type submitInput struct {
	Body submitRequest
}

type submitOutput struct {
	Body submitResponse
}

type submitResponse struct {
	Status  string `json:"status" example:"Ok"`
	ID      int64  `json:"id" example:"1718000000000"`
	Message string `json:"message"`
}

type listInput struct {
	Query string `query:"q" doc:"Поиск по фамилии, имени, email или CNP"`
}

type listOutput struct {
	Body listResponse
}

type listResponse struct {
	Available bool        `json:"available" doc:"false, если хранилище недоступно и список пуст"`
	Total     int         `json:"total"`
	Forms     []form.Form `json:"forms"`
}

type idInput struct {
	ID int64 `path:"id" example:"1718000000000" doc:"ID заявки"`
}

type deleteOutput struct {
	Body statusResponse
}

type statusResponse struct {
	Status string `json:"status" example:"Ok"`
}

type exportInput struct {
	Query string `query:"q" doc:"Экспортировать только заявки, подходящие под поиск"`
}

// fileOutput - бинарный ответ с именем файла для скачивания
type fileOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

func attachment(name, contentType string, body []byte) *fileOutput {
	return &fileOutput{
		ContentType:        contentType,
		ContentDisposition: `attachment; filename="` + name + `"`,
		Body:               body,
	}
}
