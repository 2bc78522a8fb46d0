package activity

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"payanam/cmd/client/cmd/types"
	"payanam/internal/app/client"
	"payanam/internal/domain/trip"
)

var (
	tripID     string
	date       string
	at         string
	title      string
	category   string
	cost       float64
	activityID string
)

// ActivityCmd - родительская команда для работы с планом поездки
var ActivityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Управление планом поездки",
	Long: `Добавление и удаление активностей в дневном плане.

Без --trip используется выбранная поездка.`,
}

var AddCmd = &cobra.Command{
	Use:     "add",
	Short:   "Добавить активность",
	Example: `  payanam activity add --date 2024-05-02 --time 13:00 --title "Lunch" --type food --cost 10`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.LoadedApp(cmd)
		if err != nil {
			return err
		}
		id, err := targetTrip(app)
		if err != nil {
			return err
		}

		normalized, err := trip.NormalizeTime(at)
		if err != nil {
			return err
		}
		base, err := app.ToBase(cost)
		if err != nil {
			return err
		}
		a, err := trip.NewActivity(title, normalized, trip.Category(strings.ToLower(category)), base)
		if err != nil {
			return err
		}

		m, err := app.AddActivity(cmd.Context(), id, date, a)
		if err != nil {
			return err
		}
		if types.JSONOutput(cmd) {
			return types.PrintJSON(cmd.OutOrStdout(), map[string]any{"activity": a, "status": m.Status})
		}
		types.PrintMutation(cmd.OutOrStdout(), m)
		return nil
	},
}

var RemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Удалить активность",
	Long:  `Удаляет активность из дня. Опустевший день сохраняется, если это первый день поездки.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.LoadedApp(cmd)
		if err != nil {
			return err
		}
		id, err := targetTrip(app)
		if err != nil {
			return err
		}

		m, err := app.RemoveActivity(cmd.Context(), id, date, activityID)
		if err != nil {
			return err
		}
		types.PrintMutation(cmd.OutOrStdout(), m)
		return nil
	},
}

func targetTrip(app *client.App) (string, error) {
	if tripID != "" {
		return tripID, nil
	}
	if current, ok := app.Current(); ok {
		return current.ID, nil
	}
	return "", fmt.Errorf("поездка не выбрана. Укажите --trip или выполните: payanam trip select ID")
}

func init() {
	for _, c := range []*cobra.Command{AddCmd, RemoveCmd} {
		c.Flags().StringVar(&tripID, "trip", "", "id поездки (по умолчанию выбранная)")
		c.Flags().StringVar(&date, "date", "", "дата дня, YYYY-MM-DD")
		_ = c.MarkFlagRequired("date")
	}

	AddCmd.Flags().StringVar(&at, "time", "", "время, HH:MM")
	AddCmd.Flags().StringVar(&title, "title", "", "название")
	AddCmd.Flags().StringVar(&category, "type", string(trip.CategoryOther), "категория: sightseeing, food, culture, transport, other")
	AddCmd.Flags().Float64Var(&cost, "cost", 0, "стоимость в валюте отображения")
	_ = AddCmd.MarkFlagRequired("time")
	_ = AddCmd.MarkFlagRequired("title")

	RemoveCmd.Flags().StringVar(&activityID, "id", "", "id активности")
	_ = RemoveCmd.MarkFlagRequired("id")
}
