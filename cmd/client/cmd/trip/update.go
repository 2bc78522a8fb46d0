package trip

import (
	"fmt"

	"github.com/spf13/cobra"

	"payanam/cmd/client/cmd/types"
	"payanam/internal/domain/trip"
)

var (
	updTitle       string
	updStart       string
	updEnd         string
	updBudget      float64
	updTravelers   int
	updDescription string
	updImage       string
)

var UpdateCmd = &cobra.Command{
	Use:   "update [ID]",
	Short: "Изменить поездку",
	Long: `Меняет только переданные поля. Без ID меняется выбранная поездка.
Бюджет указывается в валюте отображения.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.LoadedApp(cmd)
		if err != nil {
			return err
		}

		id, err := resolveID(app, args)
		if err != nil {
			return err
		}

		var p trip.Patch
		f := cmd.Flags()
		if f.Changed("title") {
			p.Title = &updTitle
		}
		if f.Changed("start") {
			p.StartDate = &updStart
		}
		if f.Changed("end") {
			p.EndDate = &updEnd
		}
		if f.Changed("budget") {
			base, err := app.ToBase(updBudget)
			if err != nil {
				return err
			}
			p.Budget = &base
		}
		if f.Changed("travelers") {
			p.Travelers = &updTravelers
		}
		if f.Changed("description") {
			p.Description = &updDescription
		}
		if f.Changed("image") {
			p.Image = &updImage
		}
		if p.IsEmpty() {
			return fmt.Errorf("не указано ни одного поля для изменения")
		}

		m, err := app.UpdateTrip(cmd.Context(), id, p)
		if err != nil {
			return err
		}
		types.PrintMutation(cmd.OutOrStdout(), m)
		return nil
	},
}

var DeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Удалить поездку",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.LoadedApp(cmd)
		if err != nil {
			return err
		}

		m, err := app.DeleteTrip(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		types.PrintMutation(cmd.OutOrStdout(), m)
		return nil
	},
}

func init() {
	f := UpdateCmd.Flags()
	f.StringVar(&updTitle, "title", "", "название поездки")
	f.StringVar(&updStart, "start", "", "дата начала, YYYY-MM-DD")
	f.StringVar(&updEnd, "end", "", "дата окончания, YYYY-MM-DD")
	f.Float64Var(&updBudget, "budget", 0, "бюджет в валюте отображения")
	f.IntVar(&updTravelers, "travelers", 1, "количество путешественников")
	f.StringVar(&updDescription, "description", "", "описание")
	f.StringVar(&updImage, "image", "", "ссылка на изображение")
}
