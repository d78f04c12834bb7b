package main

import (
	"fmt"
	"strings"

	"volunteer-hub/internal/model"
	"volunteer-hub/internal/service"
	"volunteer-hub/internal/store"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
)

var (
	hashPassword = service.HashPassword
	createUser   = store.CreateUser
	validate     = validator.New()
)

type adminInput struct {
	Username string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

// createAdminCmd 建立管理員帳號；API 只允許管理員建立管理員，第一個帳號由此產生
func createAdminCmd(configPath *string) *cobra.Command {
	var in adminInput

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "建立管理員帳號",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Username = strings.TrimSpace(in.Username)
			in.Email = strings.ToLower(strings.TrimSpace(in.Email))
			if err := validate.Struct(in); err != nil {
				return fmt.Errorf("invalid input: %w", err)
			}

			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			db, err := newPgxPool(ctx, cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("DB 連線失敗: %w", err)
			}
			defer db.Close()

			hash, err := hashPassword(in.Password)
			if err != nil {
				return err
			}
			user, err := createUser(ctx, db, &model.User{
				Username:     in.Username,
				Email:        in.Email,
				PasswordHash: hash,
				Role:         model.RoleAdmin,
			})
			if err != nil {
				if store.IsUniqueViolation(err) {
					return fmt.Errorf("username or email already exists")
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "admin %q created (user_id=%d)\n", user.Username, user.UserID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&in.Username, "username", "u", "", "帳號")
	cmd.Flags().StringVar(&in.Email, "email", "", "電子郵件")
	cmd.Flags().StringVarP(&in.Password, "password", "p", "", "密碼 (至少 8 字元)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
