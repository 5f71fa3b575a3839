package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"achievediary/cmd/diary/ui"
	"achievediary/internal/achievement"
	"achievediary/internal/api"
	"achievediary/internal/panel"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	listCategory string
	listPage     int
	listSize     int

	formTitle       string
	formCategory    string
	formDate        string
	formDescription string

	deleteConfirmed bool

	// now is replaced in tests.
	now = time.Now
)

// listCmd prints one page of achievements
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List your achievements",
	Long: `Prints one page of your achievements, optionally filtered by category.

Categories: ` + strings.Join(achievement.FilterOptions(), ", "),
	Args: cobra.NoArgs,
	RunE: listAchievements,
}

// showCmd prints a single achievement
var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one achievement",
	Args:  cobra.ExactArgs(1),
	RunE:  showAchievement,
}

// createCmd records a new achievement
var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Record a new achievement",
	Long: `Records a new achievement. The same rules as the interactive form apply:
title, category and description are required and the date may not be in the
future. The date defaults to today.

Example:
  diary create --title "First 10k" --category sport --description "Under an hour"`,
	Args: cobra.NoArgs,
	RunE: createAchievement,
}

// editCmd changes an existing achievement
var editCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Edit an achievement; only the given fields change",
	Args:  cobra.ExactArgs(1),
	RunE:  editAchievement,
}

// deleteCmd removes an achievement
var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete an achievement",
	Args:  cobra.ExactArgs(1),
	RunE:  deleteAchievement,
}

func init() {
	listCmd.Flags().StringVar(&listCategory, "category", achievement.FilterAll, "Category filter")
	listCmd.Flags().IntVar(&listPage, "page", 1, "Page number, starting at 1")
	listCmd.Flags().IntVar(&listSize, "size", 0, "Page size (default from config)")

	for _, c := range []*cobra.Command{createCmd, editCmd} {
		c.Flags().StringVar(&formTitle, "title", "", "Title")
		c.Flags().StringVar(&formCategory, "category", "", "Category")
		c.Flags().StringVar(&formDate, "date", "", "Date as "+achievement.DateLayout)
		c.Flags().StringVar(&formDescription, "description", "", "Description")
	}

	deleteCmd.Flags().BoolVarP(&deleteConfirmed, "yes", "y", false, "Confirm deletion")
}

// parseID parses an achievement id argument.
func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New(panel.MsgBadID)
	}
	return id, nil
}

func validFilter(filter string) bool {
	if filter == achievement.FilterAll {
		return true
	}
	_, ok := achievement.ParseCategory(filter)
	return ok
}

// listAchievements prints a page of achievements
func listAchievements(cmd *cobra.Command, args []string) error {
	if !validFilter(listCategory) {
		return fmt.Errorf("unknown category %q (valid: %s)", listCategory, strings.Join(achievement.FilterOptions(), ", "))
	}
	if listPage < 1 {
		return fmt.Errorf("invalid page %d", listPage)
	}

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

	size := listSize
	if size <= 0 {
		size = s.cfg.UI.PageSize
	}
	q := api.ListQuery{UserID: uid, Category: listCategory, Page: listPage - 1, Size: size}
	logger.Debug("listing achievements", zap.String("category", q.Category), zap.Int("page", q.Page))

	page, err := s.client.ListAchievements(ctx, q)
	if err != nil {
		return fmt.Errorf("list achievements: %w", err)
	}

	out := cmd.OutOrStdout()
	if page.Empty() {
		if listCategory == achievement.FilterAll {
			fmt.Fprintln(out, "You have no achievements yet")
		} else {
			fmt.Fprintf(out, "No achievements in %q yet\n", achievement.FilterLabel(listCategory))
		}
		return nil
	}

	tbl := ui.NewSimpleTable("", []string{"ID", "Title", "Category", "Date"})
	for _, a := range page.Content {
		tbl.AddRow(strconv.FormatInt(a.ID, 10), a.Title, a.Category.Label(), achievement.DisplayDate(a.Date))
	}
	fmt.Fprint(out, tbl.View(s.styles()))
	pg := panel.Pager{Page: q.Page, TotalPages: page.TotalPages}
	fmt.Fprintf(out, "%s · %d total\n", pg.Label(), page.TotalElements)
	return nil
}

// showAchievement prints one achievement
func showAchievement(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
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

	a, err := s.client.GetAchievement(ctx, id, uid)
	if err != nil {
		return fmt.Errorf("get achievement %d: %w", id, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "#%d %s\n", a.ID, a.Title)
	fmt.Fprintf(out, "%s · %s\n\n", a.Category.Label(), achievement.DisplayDate(a.Date))
	if s.cfg.UI.Markdown {
		md := ui.NewMarkdown(80, s.styles().Theme.IsDark)
		fmt.Fprintln(out, md.Render(a.Description))
	} else {
		fmt.Fprintln(out, a.Description)
	}
	return nil
}

// applyFormFlags copies the form flags the user set into f.
func applyFormFlags(cmd *cobra.Command, f *achievement.Fields) {
	flags := cmd.Flags()
	if flags.Changed("title") {
		f.Title = formTitle
	}
	if flags.Changed("category") {
		f.Category = achievement.Category(strings.ToLower(strings.TrimSpace(formCategory)))
	}
	if flags.Changed("date") {
		f.Date = formDate
	}
	if flags.Changed("description") {
		f.Description = formDescription
	}
}

// createAchievement validates the flags like the create form and saves
func createAchievement(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}

	form := achievement.NewForm(now())
	applyFormFlags(cmd, &form.Fields)
	uid := int64(0)
	if s.identity != nil {
		uid = s.identity.ID
	}
	fields, ok := form.Submit(uid, now())
	if !ok {
		return form.Err
	}

	a, err := s.client.CreateAchievement(ctx, uid, fields)
	if err != nil {
		return fmt.Errorf("create achievement: %s", panel.SubmitMessage(err))
	}
	if a == nil {
		logger.Info("achievement created without a body")
		fmt.Fprintf(cmd.OutOrStdout(), "Created achievement: %s\n", fields.Title)
		return nil
	}
	logger.Info("achievement created", zap.Int64("id", a.ID))
	fmt.Fprintf(cmd.OutOrStdout(), "Created achievement #%d: %s\n", a.ID, a.Title)
	return nil
}

// editAchievement loads the record, applies the given flags and saves
func editAchievement(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
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

	current, err := s.client.GetAchievement(ctx, id, uid)
	if err != nil {
		return fmt.Errorf("get achievement %d: %w", id, err)
	}
	form := achievement.FormFor(*current)
	applyFormFlags(cmd, &form.Fields)
	fields, ok := form.Submit(uid, now())
	if !ok {
		return form.Err
	}

	a, err := s.client.UpdateAchievement(ctx, id, uid, fields)
	if err != nil {
		return fmt.Errorf("update achievement %d: %s", id, panel.SubmitMessage(err))
	}
	title := fields.Title
	if a != nil {
		title = a.Title
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated achievement #%d: %s\n", id, title)
	return nil
}

// deleteAchievement removes a record after explicit confirmation
func deleteAchievement(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if !deleteConfirmed {
		return fmt.Errorf("refusing to delete achievement %d without --yes", id)
	}
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

	if err := s.client.DeleteAchievement(ctx, id, uid); err != nil {
		return fmt.Errorf("delete achievement %d: %w", id, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted achievement #%d\n", id)
	return nil
}
