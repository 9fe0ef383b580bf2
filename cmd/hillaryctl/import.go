package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/foxred/hillary/internal/application/usecase"
	"github.com/foxred/hillary/internal/infrastructure/csvimport"
	"github.com/foxred/hillary/internal/infrastructure/storage"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Importa datos desde archivos",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var importCompaniesCmd = &cobra.Command{
	Use:   "companies FILE.csv",
	Short: "Crea empresas desde un CSV name,tax_id,address,phone,email",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		latin1, _ := cmd.Flags().GetBool("latin1")
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("abrir CSV: %w", err)
		}
		defer f.Close()

		rows, err := csvimport.ReadCompanies(f, latin1)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		repos, err := storage.Open(ctx, cfg.DB)
		if err != nil {
			return err
		}
		defer repos.Close()

		res, err := csvimport.ImportCompanies(ctx, usecase.NewCompanyUseCase(repos.Companies), rows)
		if err != nil {
			return err
		}
		for _, fail := range res.Failures {
			fmt.Fprintf(cmd.ErrOrStderr(), "línea %d: %v\n", fail.Line, fail.Err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Empresas creadas: %d, con error: %d\n", res.Created, len(res.Failures))
		log.Info().Str("file", args[0]).Int("created", res.Created).Int("failed", len(res.Failures)).Msg("importación terminada")
		if len(res.Failures) > 0 {
			return fmt.Errorf("%d filas no se importaron", len(res.Failures))
		}
		return nil
	},
}

func init() {
	importCompaniesCmd.Flags().Bool("latin1", false, "El archivo está en ISO-8859-1 (exportación de Excel)")
	importCmd.AddCommand(importCompaniesCmd)
	rootCmd.AddCommand(importCmd)
}
