package settings

const (
	DefaultEmail    = "codrut@soundfeedapp.com"
	DefaultPassword = "1234"
)

// Settings - настройки админки. Пароль хранится так, как был записан.
type Settings struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Default - значения, которыми заполняется новый репозиторий
func Default() Settings {
	return Settings{Email: DefaultEmail, Password: DefaultPassword}
}
