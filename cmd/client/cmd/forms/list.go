package forms

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"formular230/cmd/client/cmd/types"
	"formular230/internal/domain/form"
)

var (
	listQuery  string
	listFormat string
)

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Список заявок",
	Long: `Список заявок, новые сверху.

Флаг --query ищет по фамилии, имени и email без учета регистра.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		ctx, cancel := types.WithTimeout(cmd)
		defer cancel()

		list, err := app.ListForms(ctx, listQuery)
		if err != nil {
			return fmt.Errorf("ошибка получения списка заявок: %w", err)
		}
		if !list.Available {
			fmt.Fprintln(os.Stderr, types.Warning("⚠ Stocarea nu este disponibilă, lista poate fi incompletă"))
		}

		out := cmd.OutOrStdout()
		switch listFormat {
		case "json":
			return printFormsJSON(out, list.Forms)
		case "csv":
			return printFormsCSV(out, list.Forms)
		default:
			return printFormsTable(out, list.Forms)
		}
	},
}

func printFormsTable(out io.Writer, forms []form.Form) error {
	if len(forms) == 0 {
		fmt.Fprintln(out, "Nu există formulare")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t\n",
		types.Bold("ID"), types.Bold("Nume"), types.Bold("Email"), types.Bold("Localitate"), types.Bold("Ani"), types.Bold("Data"))

	for _, f := range forms {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t\n",
			f.ID,
			truncate(f.FullName(), 30),
			truncate(f.Email, 30),
			f.City,
			f.DistributionPeriod,
			f.CreatedAt.Local().Format("02.01.2006 15:04"),
		)
	}

	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\nTotal: %d\n", len(forms))
	return nil
}

// printFormsJSON не выводит подписи, они занимают сотни килобайт
func printFormsJSON(out io.Writer, forms []form.Form) error {
	for i := range forms {
		forms[i].Signature = ""
		forms[i].AuthorizationSignature = ""
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(forms)
}

func printFormsCSV(out io.Writer, forms []form.Form) error {
	w := csv.NewWriter(out)
	_ = w.Write([]string{"id", "lastName", "firstName", "email", "phone", "city", "county", "distributionPeriod", "createdAt"})
	for _, f := range forms {
		_ = w.Write([]string{
			strconv.FormatInt(f.ID, 10),
			f.LastName,
			f.FirstName,
			f.Email,
			f.Phone,
			f.City,
			f.County,
			string(f.DistributionPeriod),
			f.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	w.Flush()
	return w.Error()
}

func truncate(s string, length int) string {
	r := []rune(s)
	if len(r) <= length {
		return s
	}
	return string(r[:length-3]) + "..."
}

func init() {
	ListCmd.Flags().StringVarP(&listQuery, "query", "q", "", "поиск по фамилии, имени, email")
	ListCmd.Flags().StringVarP(&listFormat, "format", "f", "table", "формат вывода (table, json, csv)")
}
