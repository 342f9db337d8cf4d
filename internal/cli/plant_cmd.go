package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/kvitko/internal/cli/formatter"
	"github.com/alexanderramin/kvitko/internal/domain"
	"github.com/alexanderramin/kvitko/internal/ordering"
	"github.com/alexanderramin/kvitko/internal/service"
	"github.com/spf13/cobra"
)

func newPlantCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plant",
		Short: "Manage plants",
	}

	cmd.AddCommand(
		newPlantAddCmd(app),
		newPlantListCmd(app),
		newPlantShowCmd(app),
		newPlantEditCmd(app),
		newPlantWaterCmd(app),
		newPlantRetireCmd(app),
		newPlantRemoveCmd(app),
		newPlantMoveCmd(app),
		newPlantGraveyardCmd(app),
		newPlantRescheduleCmd(app),
	)

	return cmd
}

// warnNotify reports a reminder failure without failing the command; the
// plant change itself was saved.
func warnNotify(cmd *cobra.Command, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, service.ErrNotifyFailed) {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
		return nil
	}
	return err
}

func newPlantAddCmd(app *App) *cobra.Command {
	var (
		species, name, room, lastWatered string
		height, potSize                  float64
		care                             careFlags
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a plant",
		Long:  "Add a plant. Without --species on an interactive terminal, a form asks for the details.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			now := app.now()

			var p *domain.Plant
			if species == "" {
				if !app.interactive() {
					return fmt.Errorf("--species is required")
				}
				rooms, err := app.Rooms.List(ctx)
				if err != nil {
					return err
				}
				values := newPlantFormValues()
				if err := plantAddForm(values, app.Catalog.List(ctx), rooms).Run(); err != nil {
					return err
				}
				p = values.plant(now)
			} else {
				c, err := care.apply(domain.DefaultCare())
				if err != nil {
					return err
				}
				p = &domain.Plant{SpeciesKey: species, CustomName: name, Care: c, HeightCm: height, PotSizeCm: potSize}
				if lastWatered != "" {
					if p.LastWatered, err = parseWhen(lastWatered, now); err != nil {
						return err
					}
				}
				if room != "" {
					roomID, err := resolveRoomID(ctx, app, room)
					if err != nil {
						return err
					}
					p.RoomID = &roomID
				}
			}

			err := app.Plants.Create(ctx, p)
			if err != nil && !errors.Is(err, service.ErrNotifyFailed) {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s at position %d.\n", formatter.Bold(p.DisplayName()), p.OrderIndex)
			if p.NextWatering != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Next watering %s.\n", formatter.HumanDate(*p.NextWatering, now))
			}
			return warnNotify(cmd, err)
		},
	}

	cmd.Flags().StringVar(&species, "species", "", "Species key from the rule table")
	cmd.Flags().StringVar(&name, "name", "", "Custom name")
	cmd.Flags().StringVar(&room, "room", "", "Room name or ID")
	cmd.Flags().StringVar(&lastWatered, "last-watered", "", "When it was last watered (YYYY-MM-DD, default now)")
	cmd.Flags().Float64Var(&height, "height", 0, "Height in cm")
	cmd.Flags().Float64Var(&potSize, "pot-size", 0, "Pot diameter in cm")
	care.register(cmd)

	return cmd
}

func newPlantListCmd(app *App) *cobra.Command {
	var sortBy, room string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List active plants",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			opt, err := domain.ParseSortOption(sortBy)
			if err != nil {
				return err
			}

			plants, err := app.Plants.List(ctx, opt)
			if err != nil {
				return err
			}
			if room != "" {
				roomID, err := resolveRoomID(ctx, app, room)
				if err != nil {
					return err
				}
				var inRoom []*domain.Plant
				for _, p := range plants {
					if p.RoomID != nil && *p.RoomID == roomID {
						inRoom = append(inRoom, p)
					}
				}
				plants = inRoom
			}

			if len(plants) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No plants found.")
				return nil
			}

			names, err := roomNames(ctx, app)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPlantList(plants, names, app.now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&sortBy, "sort", "custom", "Order: custom, alphabetical, species")
	cmd.Flags().StringVar(&room, "room", "", "Only plants in this room")

	return cmd
}

func newPlantShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show PLANT",
		Short: "Show plant details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolvePlantID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Plants.Get(ctx, id)
			if err != nil {
				return err
			}

			room := ""
			if p.RoomID != nil {
				if r, err := app.Rooms.Get(ctx, *p.RoomID); err == nil {
					room = r.Name
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPlantDetail(p, room, app.now()))
			return nil
		},
	}
}

func newPlantEditCmd(app *App) *cobra.Command {
	var (
		species, name, room, lastWatered, lastFertilized string
		height, potSize                                  float64
		noRoom                                           bool
		care                                             careFlags
	)

	cmd := &cobra.Command{
		Use:   "edit PLANT",
		Short: "Change plant attributes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			now := app.now()
			id, err := resolvePlantID(ctx, app, args[0])
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.NFlag() == 0 && !care.any() {
				return fmt.Errorf("nothing to change; pass at least one flag")
			}

			var patch domain.PlantPatch
			if flags.Changed("species") {
				patch.SpeciesKey = &species
			}
			if flags.Changed("name") {
				patch.CustomName = &name
			}
			if flags.Changed("height") {
				patch.HeightCm = &height
			}
			if flags.Changed("pot-size") {
				patch.PotSizeCm = &potSize
			}
			if noRoom {
				patch.ClearRoom = true
			} else if room != "" {
				roomID, err := resolveRoomID(ctx, app, room)
				if err != nil {
					return err
				}
				patch.RoomID = &roomID
			}
			if lastWatered != "" {
				t, err := parseWhen(lastWatered, now)
				if err != nil {
					return err
				}
				patch.LastWatered = &t
			}
			if lastFertilized != "" {
				t, err := parseWhen(lastFertilized, now)
				if err != nil {
					return err
				}
				patch.LastFertilized = &t
			}
			if err := care.patch(&patch); err != nil {
				return err
			}

			p, err := app.Plants.Edit(ctx, id, patch)
			if err != nil && !errors.Is(err, service.ErrNotifyFailed) {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s.\n", formatter.Bold(p.DisplayName()))
			if p.NextWatering != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Next watering %s.\n", formatter.HumanDate(*p.NextWatering, now))
			}
			return warnNotify(cmd, err)
		},
	}

	cmd.Flags().StringVar(&species, "species", "", "Species key from the rule table")
	cmd.Flags().StringVar(&name, "name", "", "Custom name (empty to clear)")
	cmd.Flags().StringVar(&room, "room", "", "Room name or ID")
	cmd.Flags().BoolVar(&noRoom, "no-room", false, "Remove the plant from its room")
	cmd.Flags().StringVar(&lastWatered, "last-watered", "", "Correct the last watering date")
	cmd.Flags().StringVar(&lastFertilized, "fertilized", "", "When it was last fertilized")
	cmd.Flags().Float64Var(&height, "height", 0, "Height in cm")
	cmd.Flags().Float64Var(&potSize, "pot-size", 0, "Pot diameter in cm")
	cmd.MarkFlagsMutuallyExclusive("room", "no-room")
	care.register(cmd)

	return cmd
}

func newPlantWaterCmd(app *App) *cobra.Command {
	var when string

	cmd := &cobra.Command{
		Use:   "water PLANT...",
		Short: "Mark plants as watered",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			now := app.now()
			at, err := parseWhen(when, now)
			if err != nil {
				return err
			}

			var warnings []error
			for _, arg := range args {
				id, err := resolvePlantID(ctx, app, arg)
				if err != nil {
					return err
				}
				p, err := app.Plants.MarkWatered(ctx, id, at)
				if err != nil && !errors.Is(err, service.ErrNotifyFailed) {
					return err
				}
				if err != nil {
					warnings = append(warnings, err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatWatered(p, now))
			}
			return warnNotify(cmd, errors.Join(warnings...))
		},
	}

	cmd.Flags().StringVar(&when, "at", "", "When it was watered (YYYY-MM-DD or YYYY-MM-DDTHH:MM, default now)")

	return cmd
}

func newPlantRetireCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "retire PLANT",
		Short: "Move a plant to the graveyard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolvePlantID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Plants.Retire(ctx, id)
			if err != nil && !errors.Is(err, service.ErrNotifyFailed) {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Retired %s.\n", formatter.Bold(p.DisplayName()))
			return warnNotify(cmd, err)
		},
	}
}

func newPlantRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove PLANT",
		Short: "Delete a plant permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolvePlantID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Plants.Get(ctx, id)
			if err != nil {
				return err
			}
			if err := warnNotify(cmd, app.Plants.Delete(ctx, id)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s.\n", formatter.Bold(p.DisplayName()))
			return nil
		},
	}
}

// parsePosition accepts a position in the manual order or a plant
// reference, which is resolved to that plant's current position.
// parsePosition reads the FROM argument of plant move. "#N" is always a
// position. A bare number is a position unless an active plant has exactly
// that name or ID. Anything else is a plant reference.
func parsePosition(ctx context.Context, app *App, arg string) (int, error) {
	if rest, ok := strings.CutPrefix(arg, "#"); ok {
		n, err := strconv.Atoi(rest)
		if err != nil {
			return 0, fmt.Errorf("invalid position %q", arg)
		}
		return n, nil
	}
	if n, err := strconv.Atoi(arg); err == nil {
		p, err := exactActivePlant(ctx, app, arg)
		if err != nil {
			return 0, err
		}
		if p == nil {
			return n, nil
		}
		return p.OrderIndex, nil
	}
	id, err := resolvePlantID(ctx, app, arg)
	if err != nil {
		return 0, err
	}
	p, err := app.Plants.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	if p.Retired {
		return 0, fmt.Errorf("%s is retired and has no position", p.DisplayName())
	}
	return p.OrderIndex, nil
}

// exactActivePlant returns the active plant whose ID or display name is
// exactly ref, or nil when there is none. Prefix matches are not considered.
func exactActivePlant(ctx context.Context, app *App, ref string) (*domain.Plant, error) {
	active, err := app.Plants.List(ctx, domain.SortCustom)
	if err != nil {
		return nil, err
	}
	var named []*domain.Plant
	for _, p := range active {
		if p.ID == ref {
			return p, nil
		}
		if strings.EqualFold(p.DisplayName(), ref) {
			named = append(named, p)
		}
	}
	switch len(named) {
	case 0:
		return nil, nil
	case 1:
		return named[0], nil
	default:
		return nil, fmt.Errorf("plant name %q is ambiguous (%d matches), use the ID or #%s for the position", ref, len(named), ref)
	}
}

func newPlantMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move FROM TO",
		Short: "Move a plant to another position in the manual order",
		Long: "Move a plant to another position. FROM is a plant or a position; TO is the target position (0 is first).\n" +
			"A number in FROM means the plant with that name if there is one, otherwise the position. Use #N to always mean position N.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			from, err := parsePosition(ctx, app, args[0])
			if err != nil {
				return err
			}
			to, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid target position %q", args[1])
			}

			seq, err := app.Plants.Reorder(ctx, from, to)
			if err != nil {
				return err
			}
			names, err := roomNames(ctx, app)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPlantList(seq, names, app.now()))
			return nil
		},
	}
}

func newPlantGraveyardCmd(app *App) *cobra.Command {
	var recent bool

	cmd := &cobra.Command{
		Use:   "graveyard",
		Short: "List retired plants by name",
		RunE: func(cmd *cobra.Command, args []string) error {
			plants, err := app.Plants.ListRetired(context.Background())
			if err != nil {
				return err
			}
			if len(plants) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "The graveyard is empty.")
				return nil
			}
			if recent {
				plants = ordering.RecentlyRetired(plants)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatGraveyard(plants, app.now()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&recent, "recent", false, "Most recently retired first")

	return cmd
}

func newPlantRescheduleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reschedule",
		Short: "Recompute every due date for the current season and rule table",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Plants.RescheduleAll(context.Background())
			if err != nil && !errors.Is(err, service.ErrNotifyFailed) {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Rescheduled %d plant(s).\n", len(res.Updated))
			for _, p := range res.UnknownSpecies {
				fmt.Fprintf(out, "%s %s: species %q is not in the rule table\n",
					formatter.StyleYellow.Render("▲"), p.DisplayName(), p.SpeciesKey)
			}
			return warnNotify(cmd, err)
		},
	}
}
