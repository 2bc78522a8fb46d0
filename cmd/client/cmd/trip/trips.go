package trip

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"payanam/cmd/client/cmd/types"
	"payanam/internal/app/client"
	"payanam/internal/domain/trip"
)

// TripCmd - родительская команда для всех операций с поездками
var TripCmd = &cobra.Command{
	Use:   "trip",
	Short: "Управление поездками",
	Long:  `Создание, просмотр, обновление, выбор и удаление поездок.`,
}

// resolveID возвращает id из аргументов или выбранную поездку
func resolveID(app *client.App, args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if current, ok := app.Current(); ok {
		return current.ID, nil
	}
	return "", fmt.Errorf("поездка не выбрана. Укажите id или выполните: payanam trip select ID")
}

func printTripsTable(w io.Writer, app *client.App, trips []trip.Trip) {
	if len(trips) == 0 {
		fmt.Fprintln(w, "Поездки не найдены")
		return
	}

	currentID := ""
	if current, ok := app.Current(); ok {
		currentID = current.ID
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, " \tID\tНазвание\tНаправление\tДаты\tБюджет\tДней\t\n")
	for _, t := range trips {
		mark := " "
		if t.ID == currentID {
			mark = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s..%s\t%s\t%d\t\n",
			mark,
			t.ID,
			types.Truncate(t.Title, 30),
			types.Truncate(t.Destination, 24),
			t.StartDate,
			t.EndDate,
			app.FormatAmount(t.Budget),
			len(t.Itinerary),
		)
	}
	tw.Flush()
	fmt.Fprintf(w, "\nВсего поездок: %d\n", len(trips))
}

func printTrip(w io.Writer, app *client.App, t trip.Trip) {
	bold := color.New(color.Bold)
	bold.Fprintf(w, "%s\n", t.Title)
	fmt.Fprintf(w, "ID:          %s\n", t.ID)
	fmt.Fprintf(w, "Направление: %s\n", t.Destination)
	fmt.Fprintf(w, "Даты:        %s .. %s\n", t.StartDate, t.EndDate)
	fmt.Fprintf(w, "Бюджет:      %s\n", app.FormatAmount(t.Budget))
	fmt.Fprintf(w, "Путешественников: %d\n", t.Travelers)
	if t.Description != "" {
		fmt.Fprintf(w, "Описание:    %s\n", t.Description)
	}

	if len(t.Itinerary) == 0 {
		fmt.Fprintln(w, "\nПлан пуст")
		return
	}

	var total float64
	for _, day := range t.Itinerary {
		fmt.Fprintf(w, "\n%s\n", color.CyanString(day.Date))
		if len(day.Activities) == 0 {
			fmt.Fprintln(w, "  (нет активностей)")
		}
		for _, a := range day.Activities {
			total += a.Cost
			fmt.Fprintf(w, "  %s  %-30s %-12s %s  [%s]\n",
				a.Time, types.Truncate(a.Title, 30), a.Category, app.FormatAmount(a.Cost), a.ID)
		}
	}
	fmt.Fprintf(w, "\nСтоимость активностей: %s\n", app.FormatAmount(total))
}
