package trip

import (
	"fmt"

	"github.com/spf13/cobra"

	"payanam/cmd/client/cmd/types"
	"payanam/internal/app/client"
	"payanam/internal/domain/currency"
	"payanam/internal/domain/trip"
)

var (
	draft          trip.Draft
	budgetCurrency string
	scaffold       bool
	selectCreated  bool
)

var CreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Создать поездку",
	Long: `Создает поездку на сервере.

Бюджет указывается в валюте отображения (или --budget-currency) и хранится
в базовой валюте. Флаг --scaffold добавляет пустой день на каждую дату поездки.`,
	Example: `  payanam trip create --title "Goa" --destination "Goa, India" \
    --start 2024-05-01 --end 2024-05-03 --budget 25000 --scaffold`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.LoadedApp(cmd)
		if err != nil {
			return err
		}

		req := client.CreateTripRequest{Draft: draft, Scaffold: scaffold}
		if budgetCurrency != "" {
			req.BudgetCurrency = currency.ParseCode(budgetCurrency)
		}

		created, err := app.CreateTrip(cmd.Context(), req)
		if err != nil {
			return fmt.Errorf("ошибка создания поездки: %w", err)
		}

		if selectCreated {
			if _, err := app.Select(created.ID); err != nil {
				return err
			}
		}

		if types.JSONOutput(cmd) {
			return types.PrintJSON(cmd.OutOrStdout(), created)
		}
		cmd.Printf("✅ Поездка создана: %s (%s)\n", created.Title, created.ID)
		return nil
	},
}

func init() {
	f := CreateCmd.Flags()
	f.StringVar(&draft.Title, "title", "", "название поездки")
	f.StringVar(&draft.Destination, "destination", "", "направление")
	f.StringVar(&draft.StartDate, "start", "", "дата начала, YYYY-MM-DD")
	f.StringVar(&draft.EndDate, "end", "", "дата окончания, YYYY-MM-DD")
	f.Float64Var(&draft.Budget, "budget", 0, "бюджет в валюте отображения")
	f.StringVar(&budgetCurrency, "budget-currency", "", "валюта, в которой указан бюджет")
	f.IntVar(&draft.Travelers, "travelers", 1, "количество путешественников")
	f.StringVar(&draft.Description, "description", "", "описание")
	f.StringVar(&draft.Image, "image", "", "ссылка на изображение")
	f.BoolVar(&scaffold, "scaffold", false, "создать пустой день на каждую дату")
	f.BoolVar(&selectCreated, "select", true, "сделать созданную поездку текущей")

	_ = CreateCmd.MarkFlagRequired("title")
	_ = CreateCmd.MarkFlagRequired("destination")
	_ = CreateCmd.MarkFlagRequired("start")
	_ = CreateCmd.MarkFlagRequired("end")
}
