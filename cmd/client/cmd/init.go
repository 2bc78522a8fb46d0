// cmd/client/cmd/init.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"payanam/cmd/client/cmd/activity"
	"payanam/cmd/client/cmd/auth"
	"payanam/cmd/client/cmd/trip"
	"payanam/cmd/client/cmd/types"
	"payanam/internal/domain/currency"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Проверить настройки клиента Payanam",
	Long: `Команда init выполняет первоначальную проверку клиента:
	1. Создает директорию для токена, состояния и локального кэша
	2. Проверяет соединение с сервером`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		fmt.Println("=== Инициализация Payanam ===")
		fmt.Printf("Директория конфигурации: %s\n", cfg.ConfigDir)
		fmt.Printf("Сервер: %s\n", cfg.ServerAddress)

		fmt.Println("Проверка соединения с сервером...")
		if err := app.CheckConnection(cmd.Context()); err != nil {
			fmt.Printf("⚠️  Предупреждение: не удалось подключиться к серверу: %v\n", err)
			fmt.Println("Просмотр сохраненных поездок доступен: payanam trip list --offline")
		} else {
			fmt.Println("✓ Соединение с сервером установлено")
		}

		fmt.Println()
		fmt.Println("Что дальше:")
		fmt.Println("1. Зарегистрируйтесь: payanam auth register")
		fmt.Println("2. Или войдите: payanam auth login")
		fmt.Println("3. Создайте первую поездку: payanam trip create")
		return nil
	},
}

var currencyCmd = &cobra.Command{
	Use:   "currency [CODE]",
	Short: "Показать или сменить валюту отображения",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		if len(args) == 1 {
			if err := app.SetCurrency(currency.ParseCode(args[0])); err != nil {
				return err
			}
		}
		fmt.Printf("Валюта отображения: %s\n", app.Currency())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(currencyCmd)

	rootCmd.AddCommand(auth.AuthCmd)
	auth.AuthCmd.AddCommand(auth.RegisterCmd)
	auth.AuthCmd.AddCommand(auth.LoginCmd)
	auth.AuthCmd.AddCommand(auth.LogoutCmd)
	auth.AuthCmd.AddCommand(auth.StatusCmd)

	rootCmd.AddCommand(trip.TripCmd)
	trip.TripCmd.AddCommand(trip.ListCmd)
	trip.TripCmd.AddCommand(trip.ShowCmd)
	trip.TripCmd.AddCommand(trip.CreateCmd)
	trip.TripCmd.AddCommand(trip.UpdateCmd)
	trip.TripCmd.AddCommand(trip.DeleteCmd)
	trip.TripCmd.AddCommand(trip.SelectCmd)

	rootCmd.AddCommand(activity.ActivityCmd)
	activity.ActivityCmd.AddCommand(activity.AddCmd)
	activity.ActivityCmd.AddCommand(activity.RemoveCmd)
}
