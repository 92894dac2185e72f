package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/clinic-scheduler/internal/db"
	"github.com/BruksfildServices01/clinic-scheduler/internal/logging"
	"github.com/BruksfildServices01/clinic-scheduler/internal/seed"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "clinicctl",
		Short:        "Ferramentas administrativas do clinic-scheduler",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migrações do banco",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Aplica as migrações pendentes",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, logger, err := open()
			if err != nil {
				return err
			}
			return dbpkg.Migrate(cmd.Context(), db, logger)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Mostra a versão atual do schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := open()
			if err != nil {
				return err
			}
			version, err := dbpkg.Version(cmd.Context(), db)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema version: %d\n", version)
			return nil
		},
	})

	return cmd
}

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Carrega locais, serviços e profissionais de um YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("file")
			migrate, _ := cmd.Flags().GetBool("migrate")

			file, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open seed file: %w", err)
			}
			defer file.Close()

			fixture, err := seed.Parse(file)
			if err != nil {
				return err
			}

			db, logger, err := open()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if migrate {
				if err := dbpkg.Migrate(ctx, db, logger); err != nil {
					return err
				}
			}

			res, err := seed.Apply(ctx, db, fixture)
			if err != nil {
				return err
			}

			logger.Info().
				Int("locations", res.Locations).
				Int("services", res.Services).
				Int("professionals", res.Professionals).
				Int("capabilities", res.Capabilities).
				Msg("seed applied")
			return nil
		},
	}
	cmd.Flags().String("file", "cmd/clinicctl/seed.yaml", "Arquivo YAML com o cadastro inicial")
	cmd.Flags().Bool("migrate", true, "Aplica as migrações antes do seed")

	return cmd
}

func open() (*gorm.DB, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	logger := logging.New(cfg.Env, cfg.LogLevel)

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return nil, logger, err
	}
	return db, logger, nil
}

