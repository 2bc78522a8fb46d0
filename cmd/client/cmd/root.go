// cmd/client/cmd/root.go
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"payanam/cmd/client/cmd/types"
	"payanam/internal/app/client"
	"payanam/internal/app/client/config"
	"payanam/internal/domain/currency"
	"payanam/internal/utils/logger"
)

var (
	cfgFile      string
	cfg          *config.Config
	log          *slog.Logger
	app          *client.App
	debug        bool
	jsonOutput   bool
	serverURL    string
	currencyCode string
)

var rootCmd = &cobra.Command{
	Use:   "payanam",
	Short: "Payanam - планировщик поездок",
	Long: `Payanam - клиент планировщика поездок.

Поездки и дневные планы хранятся на сервере. Изменения применяются локально
сразу и подтверждаются сервером; при отказе сервера клиент перезагружает
актуальное состояние.`,
	PersistentPreRunE:  setupApp,
	PersistentPostRunE: closeApp,
	SilenceUsage:       true,
	SilenceErrors:      true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.LoadFrom(cfgFile)
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	// Переопределяем настройки из флагов командной строки
	if serverURL != "" {
		cfg.ServerAddress = serverURL
	}

	env := cfg.Env
	if debug {
		env = logger.EnvLocal
	}
	log = logger.New(env)

	app, err = client.New(cfg, log)
	if err != nil {
		return fmt.Errorf("ошибка инициализации приложения: %w", err)
	}

	if currencyCode != "" {
		if err := app.UseCurrency(currency.ParseCode(currencyCode)); err != nil {
			return err
		}
	}

	ctx := context.WithValue(cmd.Context(), types.ClientAppKey, app)
	ctx = context.WithValue(ctx, types.JSONKey, jsonOutput)
	cmd.SetContext(ctx)
	return nil
}

func closeApp(_ *cobra.Command, _ []string) error {
	if app == nil {
		return nil
	}
	return app.Close()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "конфигурационный файл")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "включить отладочный режим")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "вывод в формате JSON")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "адрес сервера Payanam")
	rootCmd.PersistentFlags().StringVar(&currencyCode, "currency", "", "валюта отображения (INR, USD, EUR)")
}
