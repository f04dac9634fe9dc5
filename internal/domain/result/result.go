package result

// Result - результат чтения, который не скрывает недоступность хранилища.
// При Available == false в Data лежит значение по умолчанию.
type Result[T any] struct {
	Data      T
	Available bool
	Err       error
}

// Ok оборачивает успешно прочитанные данные
func Ok[T any](data T) Result[T] {
	return Result[T]{Data: data, Available: true}
}

// Unavailable возвращает значение по умолчанию вместе с причиной
func Unavailable[T any](fallback T, err error) Result[T] {
	return Result[T]{Data: fallback, Err: err}
}
