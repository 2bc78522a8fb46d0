// cmd/client/cmd/auth/register.go
package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"payanam/cmd/client/cmd/types"
	"payanam/internal/domain/user"
)

var RegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Зарегистрировать нового пользователя",
	Long: `Регистрация нового пользователя на сервере Payanam.

После регистрации вход выполняется автоматически.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		fmt.Println("=== Регистрация нового пользователя ===")
		fmt.Println()

		name, err := prompt("Имя: ")
		if err != nil {
			return err
		}
		email, err := prompt("Email: ")
		if err != nil {
			return err
		}

		password, err := promptPassword("Пароль: ")
		if err != nil {
			return err
		}
		passwordConfirm, err := promptPassword("Повторите пароль: ")
		if err != nil {
			return err
		}
		if password != passwordConfirm {
			return fmt.Errorf("пароли не совпадают")
		}

		fmt.Println("Регистрация...")
		profile, err := app.Register(cmd.Context(), user.SignupRequest{
			Name:     name,
			Email:    email,
			Password: password,
		})
		if err != nil {
			return fmt.Errorf("ошибка регистрации: %w", err)
		}

		fmt.Println()
		fmt.Printf("✅ Регистрация успешно завершена, %s!\n", profile.Name)
		fmt.Println("Создайте первую поездку: payanam trip create")
		return nil
	},
}
