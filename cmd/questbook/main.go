package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"questbook/internal/bootstrap"
	bookdomain "questbook/internal/modules/book/domain"
	editdto "questbook/internal/modules/edit/dto"
	"questbook/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataPath, user string

	root := &cobra.Command{
		Use:           "questbook",
		Short:         "Quest book catalog and editor",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataPath, "data", ".", "quest data directory")
	root.PersistentFlags().StringVar(&user, "user", "", "acting user (defaults to $USER)")

	root.AddCommand(newOpenCmd(&dataPath, &user))
	root.AddCommand(newCreateCmd(&dataPath, &user))
	root.AddCommand(newEditCmd(&dataPath, &user))
	root.AddCommand(newDeleteCmd(&dataPath, &user))
	root.AddCommand(newListCmd(&dataPath, &user))
	root.AddCommand(newShowCmd(&dataPath, &user))
	root.AddCommand(newReindexCmd(&dataPath, &user))
	root.AddCommand(newPluginCmd(&dataPath, &user))
	return root
}

// listQuestIDs powers shell completion over the live record list. Failures
// degrade to no suggestions rather than an error.
func listQuestIDs(dataPath, user string) []string {
	_, app, err := loadApp(dataPath, user)
	if err != nil {
		return nil
	}
	quests, err := app.QuestCLI.List(context.Background())
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(quests))
	for _, q := range quests {
		ids = append(ids, q.ID)
	}
	return ids
}

func questIDArg(dataPath, user *string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return listQuestIDs(*dataPath, *user), cobra.ShellCompDirectiveNoFileComp
	}
}

func loadApp(dataPath, user string) (config.Config, *bootstrap.App, error) {
	cfg, err := config.New(dataPath, user)
	if err != nil {
		return config.Config{}, nil, err
	}
	app, err := bootstrap.New(cfg)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, app, nil
}

func newOpenCmd(dataPath, user *string) *cobra.Command {
	return &cobra.Command{
		Use:   "open",
		Short: "Open the quest book terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, app, err := loadApp(*dataPath, *user)
			if err != nil {
				return err
			}
			if !app.Perms.Has(cfg.User, bookdomain.PermOpen) {
				return fmt.Errorf("user %s lacks %s", cfg.User, bookdomain.PermOpen)
			}
			return bootstrap.RunTUI(cfg, app)
		},
	}
}

func newCreateCmd(dataPath, user *string) *cobra.Command {
	var icon, author string
	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a quest record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, app, err := loadApp(*dataPath, *user)
			if err != nil {
				return err
			}
			if !app.Perms.Has(cfg.User, bookdomain.PermCreate) {
				return fmt.Errorf("user %s lacks %s", cfg.User, bookdomain.PermCreate)
			}
			if author == "" {
				author = cfg.User
			}
			out, err := app.QuestCLI.Create(context.Background(), args[0], author, icon)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s)\n", out.DisplayName, out.ID)
			return nil
		},
	}
	create.Flags().StringVar(&icon, "icon", "", "display icon")
	create.Flags().StringVar(&author, "author", "", "quest author (defaults to acting user)")
	return create
}

func newEditCmd(dataPath, user *string) *cobra.Command {
	edit := &cobra.Command{Use: "edit", Short: "Edit quest record fields"}

	set := &cobra.Command{
		Use:   "set <id> <field> <value...>",
		Short: "Set a quest field (displayname|author|difficulty|description)",
		Args:  cobra.MinimumNArgs(3),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			switch len(args) {
			case 0:
				return listQuestIDs(*dataPath, *user), cobra.ShellCompDirectiveNoFileComp
			case 1:
				return []string{"displayname", "author", "difficulty", "description"}, cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, app, err := loadApp(*dataPath, *user)
			if err != nil {
				return err
			}
			if !app.Perms.Has(cfg.User, bookdomain.PermEdit) {
				return fmt.Errorf("user %s lacks %s", cfg.User, bookdomain.PermEdit)
			}
			out, err := app.QuestCLI.UpdateField(context.Background(), args[0], args[1], strings.Join(args[2:], " "))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "updated %s %s\n", out.ID, args[1])
			return nil
		},
	}

	var icon string
	iconCmd := &cobra.Command{
		Use:               "icon <id>",
		Short:             "Set the quest display icon",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: questIDArg(dataPath, user),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, app, err := loadApp(*dataPath, *user)
			if err != nil {
				return err
			}
			if !app.Perms.Has(cfg.User, bookdomain.PermEdit) {
				return fmt.Errorf("user %s lacks %s", cfg.User, bookdomain.PermEdit)
			}
			out, err := app.QuestCLI.SetIcon(context.Background(), args[0], icon)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "updated %s icon\n", out.ID)
			return nil
		},
	}
	iconCmd.Flags().StringVar(&icon, "icon", "", "display icon")

	pages := &cobra.Command{
		Use:               "pages <id>",
		Short:             "Rewrite quest pages from stdin (pages separated by a line of ---)",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: questIDArg(dataPath, user),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, app, err := loadApp(*dataPath, *user)
			if err != nil {
				return err
			}
			if !app.Perms.Has(cfg.User, bookdomain.PermEdit) {
				return fmt.Errorf("user %s lacks %s", cfg.User, bookdomain.PermEdit)
			}
			body, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return err
			}
			ctx := context.Background()
			draft, err := app.EditCLI.Issue(ctx, cfg.User, args[0])
			if err != nil {
				return err
			}
			var pages []editdto.PageInput
			for _, page := range strings.Split(string(body), "\n---\n") {
				pages = append(pages, editdto.PageInput{Kind: "text", Text: page})
			}
			out, err := app.EditCLI.Saved(ctx, editdto.SavedInput{
				User:          cfg.User,
				OldArtifactID: draft.ArtifactID,
				NewArtifactID: app.IDs.New("draft"),
				Pages:         pages,
				Signing:       true,
			})
			if err != nil {
				return err
			}
			if !out.Handled {
				return fmt.Errorf("edit session for %s was not accepted", args[0])
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "updated %s pages=%d\n", args[0], len(pages))
			return nil
		},
	}

	edit.AddCommand(set, iconCmd, pages)
	return edit
}

func newDeleteCmd(dataPath, user *string) *cobra.Command {
	return &cobra.Command{
		Use:               "delete <id>",
		Short:             "Delete a quest record",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: questIDArg(dataPath, user),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, app, err := loadApp(*dataPath, *user)
			if err != nil {
				return err
			}
			if !app.Perms.Has(cfg.User, bookdomain.PermDelete) {
				return fmt.Errorf("user %s lacks %s", cfg.User, bookdomain.PermDelete)
			}
			removed, err := app.QuestCLI.Delete(context.Background(), args[0])
			if err != nil {
				return err
			}
			if !removed {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "no quest %s\n", args[0])
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}

func newListCmd(dataPath, user *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List quest records",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, app, err := loadApp(*dataPath, *user)
			if err != nil {
				return err
			}
			quests, err := app.QuestCLI.List(context.Background())
			if err != nil {
				return err
			}
			if len(quests) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no quests")
				return nil
			}
			for _, q := range quests {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\tpages=%d\n", q.ID, q.DisplayName, q.Author, q.Difficulty, len(q.Pages))
			}
			return nil
		},
	}
}

func newShowCmd(dataPath, user *string) *cobra.Command {
	return &cobra.Command{
		Use:               "show <id>",
		Short:             "Show quest record details",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: questIDArg(dataPath, user),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, app, err := loadApp(*dataPath, *user)
			if err != nil {
				return err
			}
			q, err := app.QuestCLI.Get(context.Background(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "id: %s\nname: %s\nauthor: %s\ndifficulty: %s\ndescription: %s\nicon: %s\npages: %d\nupdated: %s\n",
				q.ID, q.DisplayName, q.Author, q.Difficulty, q.Description, q.Icon, len(q.Pages), q.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"))
			for i, page := range q.Pages {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "--- page %d ---\n%s\n", i+1, page)
			}
			return nil
		},
	}
}

func newReindexCmd(dataPath, user *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the SQLite index from the quest store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, app, err := loadApp(*dataPath, *user)
			if err != nil {
				return err
			}
			if err := app.QuestCLI.Reindex(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "reindex completed")
			return nil
		},
	}
}

func newPluginCmd(dataPath, user *string) *cobra.Command {
	plugin := &cobra.Command{Use: "plugin", Short: "Placeholder plugin operations"}

	plugin.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List plugin manifests",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, app, err := loadApp(*dataPath, *user)
			if err != nil {
				return err
			}
			plugins, err := app.PluginCLI.List(context.Background())
			if err != nil {
				return err
			}
			if len(plugins) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no plugins configured")
				return nil
			}
			for _, p := range plugins {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s@%s enabled=%t binary=%s\n", p.Name, p.Version, p.Enabled, p.Binary)
			}
			return nil
		},
	})

	plugin.AddCommand(&cobra.Command{
		Use:   "doctor",
		Short: "Validate plugin checksums and lifecycle",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, app, err := loadApp(*dataPath, *user)
			if err != nil {
				return err
			}
			results, err := app.PluginCLI.Doctor(context.Background())
			if err != nil {
				return err
			}
			if len(results) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no plugins configured")
				return nil
			}
			for _, r := range results {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s checksum=%t binary=%t lifecycle=%t", r.Name, r.ChecksumValid, r.BinaryReachable, r.LifecycleOK)
				if r.Error != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), " error=%q", r.Error)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	})

	return plugin
}
