package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/foxred/hillary/internal/application/dto"
	"github.com/foxred/hillary/internal/application/usecase"
	"github.com/foxred/hillary/internal/infrastructure/storage"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Crea una empresa y su primer Gerente en una sola transacción",
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		company, _ := flags.GetString("company")
		manager, _ := flags.GetString("manager")
		email, _ := flags.GetString("email")
		password, _ := flags.GetString("password")

		ctx := cmd.Context()
		repos, err := storage.Open(ctx, cfg.DB)
		if err != nil {
			return err
		}
		defer repos.Close()
		if cfg.DB.Driver == storage.DriverMemory {
			log.Warn().Msg("DB_DRIVER=memory: los datos se pierden al terminar")
		}

		out, err := usecase.NewBootstrapUseCase(repos.Tx, cfg.Users.EmailFormat).Bootstrap(ctx, dto.BootstrapRequest{
			Company:  dto.CreateCompanyRequest{Name: company},
			Manager:  manager,
			Email:    email,
			Password: password,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Empresa %d creada. Gerente %d: %s\n", out.CompanyID, out.UserID, out.Email)
		return nil
	},
}

func init() {
	seedCmd.Flags().String("company", "", "Nombre de la empresa")
	seedCmd.Flags().String("manager", "", "Nombre del Gerente")
	seedCmd.Flags().String("email", "", "Email del Gerente (vacío = se genera)")
	seedCmd.Flags().String("password", "", "Contraseña del Gerente")
	_ = seedCmd.MarkFlagRequired("company")
	_ = seedCmd.MarkFlagRequired("manager")
	_ = seedCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(seedCmd)
}
