// Package types содержит общие для подкоманд ключи контекста и помощники вывода.
package types

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"payanam/internal/app/client"
)

type contextKey string

const (
	ClientAppKey contextKey = "app"
	JSONKey      contextKey = "json"
)

// App достает клиент, созданный в PersistentPreRunE корневой команды
func App(cmd *cobra.Command) (*client.App, error) {
	app, ok := cmd.Context().Value(ClientAppKey).(*client.App)
	if !ok || app == nil {
		return nil, fmt.Errorf("приложение не инициализировано")
	}
	return app, nil
}

// LoadedApp дополнительно загружает поездки пользователя с сервера
func LoadedApp(cmd *cobra.Command) (*client.App, error) {
	app, err := App(cmd)
	if err != nil {
		return nil, err
	}
	if !app.IsAuthenticated() {
		return nil, fmt.Errorf("требуется аутентификация. Выполните: payanam auth login")
	}
	if err := app.Sync(cmd.Context()); err != nil {
		return nil, fmt.Errorf("ошибка загрузки поездок: %w", err)
	}
	return app, nil
}

func JSONOutput(cmd *cobra.Command) bool {
	v, _ := cmd.Context().Value(JSONKey).(bool)
	return v
}

func PrintJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// PrintMutation сообщает итог оптимистичного изменения
func PrintMutation(w io.Writer, m client.Mutation) {
	switch m.Status {
	case client.MutationConfirmed, client.MutationApplied:
		fmt.Fprintf(w, "%s %s\n", color.GreenString("✓"), m.TripID)
	case client.MutationSkipped:
		fmt.Fprintf(w, "%s %s: изменений нет\n", color.YellowString("•"), m.TripID)
	case client.MutationRolledBack:
		fmt.Fprintf(w, "%s %s: сервер отклонил изменение, данные перезагружены", color.RedString("✗"), m.TripID)
		if m.Cause != nil {
			fmt.Fprintf(w, " (%v)", m.Cause)
		}
		fmt.Fprintln(w)
	}
}

func Truncate(s string, length int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= length {
		return string(r)
	}
	return string(r[:length-3]) + "..."
}
