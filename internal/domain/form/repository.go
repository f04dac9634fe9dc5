package form

import (
	"context"

	"formular230/internal/domain/result"
)

// Repository - хранилище заявок. Валидацию не выполняет.
type Repository interface {
	// Append присваивает id и createdAt и дописывает заявку в конец списка
	Append(ctx context.Context, f Form) (Form, error)
	// List никогда не возвращает ошибку: при сбое Available == false и список пуст
	List(ctx context.Context) result.Result[[]Form]
	// Delete удаляет заявку по id, отсутствие id не является ошибкой
	Delete(ctx context.Context, id int64) error
}
