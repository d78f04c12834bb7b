// volunteerctl 是維運用的命令列工具：執行 migration、建立第一個管理員帳號
package main

import (
	"fmt"
	"os"

	"volunteer-hub/internal/config"
	"volunteer-hub/internal/database"

	"github.com/spf13/cobra"
)

var (
	loadConfig    = config.LoadDatabase
	newPgxPool    = database.NewPgxPool
	runMigrations = database.RunMigrations
	rollbackAll   = database.RollbackAll
	exitFunc      = os.Exit
)

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "volunteerctl",
		Short:         "Volunteer Hub 維運工具",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "設定檔路徑，未指定時讀取 CONFIG_FILE")

	root.AddCommand(migrateCmd(&configPath))
	root.AddCommand(createAdminCmd(&configPath))
	return root
}

func migrateCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "管理資料庫 schema",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "套用所有尚未執行的 migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if err := runMigrations(cfg.DatabaseURL); err != nil {
				return fmt.Errorf("migrate up: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "退回所有 migration (會刪除全部資料)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if err := rollbackAll(cfg.DatabaseURL); err != nil {
				return fmt.Errorf("migrate down: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations rolled back")
			return nil
		},
	})
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		exitFunc(1)
	}
}
