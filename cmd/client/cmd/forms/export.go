package forms

import (
	"fmt"

	"github.com/spf13/cobra"

	"formular230/cmd/client/cmd/types"
)

var (
	outDir       string
	exportQuery  string
	downloadType string
)

var DownloadCmd = &cobra.Command{
	Use:   "download <id>",
	Short: "Скачать одну заявку в PDF или JSON",
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
		if downloadType != "pdf" && downloadType != "json" {
			return fmt.Errorf("неизвестный формат %q, ожидается pdf или json", downloadType)
		}

		ctx, cancel := types.WithTimeout(cmd)
		defer cancel()

		path, err := app.DownloadForm(ctx, id, downloadType, outDir)
		if err != nil {
			return fmt.Errorf("ошибка скачивания заявки: %w", err)
		}

		fmt.Println(types.Success("✓ Salvat: ") + path)
		return nil
	},
}

var ExportCmd = &cobra.Command{
	Use:   "export <pdf|xlsx>",
	Short: "Выгрузить все найденные заявки",
	Long: `Выгружает заявки одним файлом: общий PDF или таблицу Excel.

С флагом --query выгружаются только найденные заявки.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"pdf", "xlsx"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		format := args[0]
		if format != "pdf" && format != "xlsx" {
			return fmt.Errorf("неизвестный формат %q, ожидается pdf или xlsx", format)
		}

		ctx, cancel := types.WithTimeout(cmd)
		defer cancel()

		path, err := app.Export(ctx, format, exportQuery, outDir)
		if err != nil {
			return fmt.Errorf("ошибка выгрузки: %w", err)
		}

		fmt.Println(types.Success("✓ Salvat: ") + path)
		return nil
	},
}

func init() {
	DownloadCmd.Flags().StringVarP(&downloadType, "type", "t", "pdf", "формат файла (pdf, json)")
	DownloadCmd.Flags().StringVarP(&outDir, "out", "o", "", "каталог для сохранения")

	ExportCmd.Flags().StringVarP(&exportQuery, "query", "q", "", "поиск по фамилии, имени, email")
	ExportCmd.Flags().StringVarP(&outDir, "out", "o", "", "каталог для сохранения")
}
