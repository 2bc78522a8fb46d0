// cmd/client/cmd/auth/login.go
package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"payanam/cmd/client/cmd/types"
	"payanam/internal/domain/user"
)

var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Войти в систему Payanam",
	Long: `Аутентификация на сервере Payanam.

После входа токен сохраняется локально для последующих операций.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		fmt.Println("=== Вход в систему ===")
		fmt.Println()

		email, err := prompt("Email: ")
		if err != nil {
			return err
		}
		password, err := promptPassword("Пароль: ")
		if err != nil {
			return err
		}

		fmt.Println("Аутентификация...")
		profile, err := app.Login(cmd.Context(), user.LoginRequest{
			Email:    email,
			Password: password,
		})
		if err != nil {
			return fmt.Errorf("ошибка аутентификации: %w", err)
		}

		fmt.Println()
		fmt.Printf("✅ Вход выполнен, %s!\n", profile.Name)

		fmt.Println("Загрузка поездок...")
		if err := app.Sync(cmd.Context()); err != nil {
			fmt.Printf("⚠️  Предупреждение: ошибка загрузки: %v\n", err)
			return nil
		}
		fmt.Printf("✓ Загружено поездок: %d\n", len(app.Trips()))
		return nil
	},
}

var LogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Выйти из системы",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		if err := app.Logout(); err != nil {
			return err
		}
		fmt.Println("✓ Выход выполнен")
		return nil
	},
}

var StatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Показать текущего пользователя",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		profile, ok := app.Profile()
		if types.JSONOutput(cmd) {
			return types.PrintJSON(cmd.OutOrStdout(), map[string]any{
				"authenticated": ok,
				"user":          profile,
			})
		}
		if !ok {
			fmt.Println("Вход не выполнен")
			return nil
		}
		fmt.Printf("%s <%s>\n", profile.Name, profile.Email)
		return nil
	},
}
