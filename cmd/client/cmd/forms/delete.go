package forms

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"formular230/cmd/client/cmd/types"
)

var forceDelete bool

var DeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Удалить заявку",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		if !forceDelete {
			fmt.Printf("Ștergeți formularul %d? [y/N]: ", id)
			answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			if strings.ToLower(strings.TrimSpace(answer)) != "y" {
				fmt.Println("Anulat")
				return nil
			}
		}

		ctx, cancel := types.WithTimeout(cmd)
		defer cancel()

		if err := app.DeleteForm(ctx, id); err != nil {
			return fmt.Errorf("ошибка удаления заявки: %w", err)
		}

		fmt.Println(types.Success(fmt.Sprintf("✓ Formularul %d a fost șters", id)))
		return nil
	},
}

func init() {
	DeleteCmd.Flags().BoolVarP(&forceDelete, "force", "f", false, "не спрашивать подтверждение")
}
