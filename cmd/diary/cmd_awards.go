package main

import (
	"errors"
	"fmt"
	"strconv"

	"achievediary/cmd/diary/ui"
	"achievediary/internal/achievement"
	"achievediary/internal/api"
	"achievediary/internal/panel"
	"achievediary/internal/router"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var whoamiRegister bool

// awardsCmd prints level, stats and awards
var awardsCmd = &cobra.Command{
	Use:   "awards",
	Short: "Show your level, statistics and awards",
	Args:  cobra.NoArgs,
	RunE:  showAwards,
}

// whoamiCmd shows the resolved identity
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the session user and whether the backend knows it",
	Args:  cobra.NoArgs,
	RunE:  showIdentity,
}

// routesCmd lists the locations accepted by --route
var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List the locations accepted by --route",
	Args:  cobra.NoArgs,
	RunE:  listRoutes,
}

func init() {
	whoamiCmd.Flags().BoolVar(&whoamiRegister, "register", false, "Register or refresh the user with the backend")
}

// showAwards prints the awards summary
func showAwards(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	uid, err := s.userID()
	if err != nil {
		return err
	}

	prog, err := api.LoadProgress(ctx, s.client, uid)
	if err != nil {
		logger.Debug("progress load failed", zap.Error(err))
		return errors.New(panel.MsgLoadProgress)
	}

	out := cmd.OutOrStdout()
	styles := s.styles()
	fmt.Fprintf(out, "Level %d/%d\n\n", prog.Level, api.MaxLevel)

	most := "-"
	if prog.Stats.MostActiveCategory != "" {
		most = prog.Stats.MostActiveCategory.Label()
	}
	stats := ui.NewSimpleTable("", []string{"Achievements", "Most active", "Awards"})
	stats.AddRow(strconv.Itoa(prog.Stats.AchievementsCount), most, strconv.Itoa(prog.Stats.AwardsCount))
	fmt.Fprintln(out, stats.View(styles))

	if len(prog.Awards) == 0 {
		fmt.Fprintln(out, "No awards yet. Add achievements to earn your first one.")
		return nil
	}
	awards := ui.NewSimpleTable("Awards", []string{"Award", "Category", "Date"})
	for _, a := range prog.Awards {
		awards.AddRow(a.Title, a.Category.Label(), achievement.DisplayDate(a.Date))
	}
	fmt.Fprint(out, awards.View(styles))
	return nil
}

// showIdentity prints the resolved identity and its backend status
func showIdentity(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if s.identity == nil {
		fmt.Fprintln(out, panel.MsgNoIdentity)
		return nil
	}

	id := s.identity
	name := id.DisplayName()
	if name == "" {
		name = "(no name)"
	}
	fmt.Fprintf(out, "User %d: %s, %s\n", id.ID, name, id.CityOrDefault())

	if whoamiRegister {
		if err := s.client.UpsertUser(ctx, id); err != nil {
			return fmt.Errorf("register user: %w", err)
		}
		fmt.Fprintln(out, "Registered with the backend")
		return nil
	}

	exists, err := s.client.UserExists(ctx, id.ID)
	if err != nil {
		return fmt.Errorf("check user: %w", err)
	}
	if exists {
		fmt.Fprintln(out, "Known to the backend")
	} else {
		fmt.Fprintln(out, "Not registered yet (run with --register)")
	}
	return nil
}

// listRoutes prints the route table
func listRoutes(cmd *cobra.Command, args []string) error {
	tbl := ui.NewSimpleTable("", []string{"Route", "Panel"})
	for _, r := range router.Routes {
		tbl.AddRow(r.Pattern, r.Panel.String())
	}
	fmt.Fprint(cmd.OutOrStdout(), tbl.View(ui.NewStyles(ui.LightTheme())))
	return nil
}
