package forms

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// FormsCmd - родительская команда для операций с заявками
var FormsCmd = &cobra.Command{
	Use:   "forms",
	Short: "Заявки Formular 230",
	Long:  `Поиск, удаление и выгрузка заявок.`,
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("некорректный id заявки: %q", arg)
	}
	return id, nil
}
