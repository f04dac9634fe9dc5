package storage

// Пути JSON документов в репозитории-хранилище
const (
	FormsPath    = "data/forms.json"
	SettingsPath = "data/admin-settings.json"
)
