package admin

import "time"

type loginInput struct {
	Body struct {
		Password string `json:"password" doc:"Пароль администратора"`
	}
}

type loginOutput struct {
	Body loginResponse
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type logoutOutput struct {
	Body ackResponse
}

type ackResponse struct {
	Status string `json:"status"`
}

type settingsOutput struct {
	Body settingsResponse
}

// settingsResponse - пароль наружу не отдается
type settingsResponse struct {
	Email     string `json:"email"`
	Available bool   `json:"available" doc:"false, если хранилище недоступно и показаны значения по умолчанию"`
}

type updateSettingsInput struct {
	Body struct {
		Email    string `json:"email" doc:"Email для уведомлений"`
		Password string `json:"password" doc:"Новый пароль администратора"`
	}
}

type updateSettingsOutput struct {
	Body ackResponse
}
