package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/kvitko/internal/cli/formatter"
	"github.com/alexanderramin/kvitko/internal/domain"
	"github.com/spf13/cobra"
)

func newRoomCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "room",
		Short: "Manage rooms",
	}

	cmd.AddCommand(
		newRoomAddCmd(app),
		newRoomListCmd(app),
		newRoomEditCmd(app),
		newRoomRemoveCmd(app),
		newRoomAssignCmd(app),
	)

	return cmd
}

func newRoomAddCmd(app *App) *cobra.Command {
	var (
		roomType string
		window   int
	)

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := &domain.Room{
				Name:             args[0],
				Type:             domain.RoomType(roomType),
				CompassDirection: window,
			}
			if err := app.Rooms.Create(context.Background(), r); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added room %s (%s, window %s).\n",
				formatter.Bold(r.Name), formatter.RoomTypeLabel(r.Type), r.CompassPoint())
			return nil
		},
	}

	cmd.Flags().StringVar(&roomType, "type", string(domain.RoomLivingRoom), "living_room, bedroom, kitchen, bathroom or hallway")
	cmd.Flags().IntVar(&window, "window", 0, "Window direction in degrees (0 = north)")

	return cmd
}

func newRoomListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List rooms",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			rooms, err := app.Rooms.List(ctx)
			if err != nil {
				return err
			}
			if len(rooms) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No rooms yet.")
				return nil
			}

			plants, err := app.Plants.List(ctx, domain.SortCustom)
			if err != nil {
				return err
			}
			counts := make(map[string]int)
			for _, p := range plants {
				if p.RoomID != nil {
					counts[*p.RoomID]++
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatRoomList(rooms, counts))
			return nil
		},
	}
}

func newRoomEditCmd(app *App) *cobra.Command {
	var (
		name, roomType string
		window         int
	)

	cmd := &cobra.Command{
		Use:   "edit ROOM",
		Short: "Rename a room or change its type or window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveRoomID(ctx, app, args[0])
			if err != nil {
				return err
			}
			r, err := app.Rooms.Get(ctx, id)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("name") {
				r.Name = name
			}
			if flags.Changed("type") {
				r.Type = domain.RoomType(roomType)
			}
			if flags.Changed("window") {
				r.CompassDirection = window
			}
			if err := app.Rooms.Update(ctx, r); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated room %s.\n", formatter.Bold(r.Name))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&roomType, "type", "", "Room type")
	cmd.Flags().IntVar(&window, "window", 0, "Window direction in degrees")

	return cmd
}

func newRoomRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ROOM",
		Short: "Delete a room; its plants stay without a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveRoomID(ctx, app, args[0])
			if err != nil {
				return err
			}
			r, err := app.Rooms.Get(ctx, id)
			if err != nil {
				return err
			}
			if err := app.Rooms.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed room %s.\n", formatter.Bold(r.Name))
			return nil
		},
	}
}

func newRoomAssignCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "assign PLANT ROOM",
		Short: "Put a plant in a room",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			plantID, err := resolvePlantID(ctx, app, args[0])
			if err != nil {
				return err
			}
			roomID, err := resolveRoomID(ctx, app, args[1])
			if err != nil {
				return err
			}
			p, err := app.Plants.Edit(ctx, plantID, domain.PlantPatch{RoomID: &roomID})
			if err != nil {
				return err
			}
			r, err := app.Rooms.Get(ctx, roomID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now in %s.\n", formatter.Bold(p.DisplayName()), r.Name)
			return nil
		},
	}
}
