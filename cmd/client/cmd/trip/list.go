package trip

import (
	"github.com/spf13/cobra"

	"payanam/cmd/client/cmd/types"
	"payanam/internal/domain/trip"
)

var offline bool

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Список поездок",
	Long: `Список поездок пользователя, новые первыми.

С флагом --offline выводится последний сохраненный снимок без обращения к серверу.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		var trips []trip.Trip

		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		if offline {
			trips, err = app.OfflineTrips()
			if err != nil {
				return err
			}
		} else {
			if app, err = types.LoadedApp(cmd); err != nil {
				return err
			}
			trips = app.Trips()
		}

		if types.JSONOutput(cmd) {
			return types.PrintJSON(cmd.OutOrStdout(), trips)
		}
		printTripsTable(cmd.OutOrStdout(), app, trips)
		return nil
	},
}

var ShowCmd = &cobra.Command{
	Use:   "show [ID]",
	Short: "Показать поездку и ее план",
	Long:  `Без аргумента показывает выбранную поездку.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.LoadedApp(cmd)
		if err != nil {
			return err
		}

		id, err := resolveID(app, args)
		if err != nil {
			return err
		}
		t, ok := app.Trip(id)
		if !ok {
			return trip.ErrNotFound
		}

		if types.JSONOutput(cmd) {
			return types.PrintJSON(cmd.OutOrStdout(), t)
		}
		printTrip(cmd.OutOrStdout(), app, t)
		return nil
	},
}

var SelectCmd = &cobra.Command{
	Use:   "select ID",
	Short: "Сделать поездку текущей",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.LoadedApp(cmd)
		if err != nil {
			return err
		}

		t, err := app.Select(args[0])
		if err != nil {
			return err
		}
		cmd.Printf("✓ Текущая поездка: %s (%s)\n", t.Title, t.ID)
		return nil
	},
}

func init() {
	ListCmd.Flags().BoolVar(&offline, "offline", false, "показать сохраненный снимок без обращения к серверу")
}
