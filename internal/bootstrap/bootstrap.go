package bootstrap

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	hclog "github.com/hashicorp/go-hclog"

	bookinadapter "questbook/internal/modules/book/adapter/in"
	bookoutadapter "questbook/internal/modules/book/adapter/out"
	bookout "questbook/internal/modules/book/port/out"
	bookservice "questbook/internal/modules/book/service"
	bookusecase "questbook/internal/modules/book/usecase"
	editinadapter "questbook/internal/modules/edit/adapter/in"
	editoutadapter "questbook/internal/modules/edit/adapter/out"
	editservice "questbook/internal/modules/edit/service"
	editusecase "questbook/internal/modules/edit/usecase"
	placeholderinadapter "questbook/internal/modules/placeholder/adapter/in"
	placeholderoutadapter "questbook/internal/modules/placeholder/adapter/out"
	placeholderservice "questbook/internal/modules/placeholder/service"
	placeholderusecase "questbook/internal/modules/placeholder/usecase"
	questinadapter "questbook/internal/modules/quest/adapter/in"
	questoutadapter "questbook/internal/modules/quest/adapter/out"
	questservice "questbook/internal/modules/quest/service"
	questusecase "questbook/internal/modules/quest/usecase"
	"questbook/internal/platform/clock"
	"questbook/internal/platform/config"
	"questbook/internal/platform/id"
	"questbook/internal/platform/tx"
	uiapp "questbook/internal/ui/app"
)

type App struct {
	QuestCLI   questinadapter.CLIHandler
	BookTUI    bookinadapter.TUIHandler
	EditCLI    editinadapter.EditHandler
	PluginCLI  placeholderinadapter.CLIHandler
	Perms      bookout.Permissions
	Presenter  *uiapp.Presenter
	Possession *editoutadapter.MemoryPossession
	IDs        id.Generator
	Log        hclog.Logger
}

func New(cfg config.Config) (*App, error) {
	log := hclog.New(&hclog.LoggerOptions{
		Name:   "questbook",
		Level:  hclog.Info,
		Output: os.Stderr,
	})
	clk := clock.SystemClock{}
	ids := id.RandomHex{}

	projector, err := questoutadapter.NewSQLiteIndexProjector(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new index projector: %w", err)
	}
	questSvc := questservice.NewQuestService(
		clk,
		questoutadapter.NewYAMLRecordStore(cfg.StorePath),
		projector,
		tx.NoopManager{},
		log.Named("quest"),
	)
	questUC := questusecase.NewInteractor(questSvc)

	placeholderUC := placeholderusecase.NewInteractor(placeholderservice.NewPlaceholderService(
		placeholderoutadapter.NewFileManifestStore(cfg.PluginsPath),
		placeholderoutadapter.NewGRPCHost(),
	))

	perms, err := bookoutadapter.NewYAMLPermissions(cfg.PermissionsPath)
	if err != nil {
		return nil, fmt.Errorf("load permissions: %w", err)
	}

	presenter := uiapp.NewPresenter()
	tracker := bookservice.NewViewTracker(
		bookoutadapter.NewQuestCatalogAdapter(questUC),
		perms,
		presenter,
		bookoutadapter.NewPlaceholderAdapter(placeholderUC),
		ids,
		log.Named("book"),
	)
	bookUC := bookusecase.NewInteractor(tracker)

	possession := editoutadapter.NewMemoryPossession(0)
	binder := editservice.NewBinder(
		ids,
		editoutadapter.NewQuestWriterAdapter(questUC),
		possession,
		log.Named("edit"),
	)
	editUC := editusecase.NewInteractor(binder)

	return &App{
		QuestCLI:   questinadapter.NewCLIHandler(questUC),
		BookTUI:    bookinadapter.NewTUIHandler(bookUC),
		EditCLI:    editinadapter.NewEditHandler(editUC),
		PluginCLI:  placeholderinadapter.NewCLIHandler(placeholderUC),
		Perms:      perms,
		Presenter:  presenter,
		Possession: possession,
		IDs:        ids,
		Log:        log,
	}, nil
}

// Shutdown force-closes every open view and drops in-flight edit sessions.
func (a *App) Shutdown(ctx context.Context) {
	if err := a.BookTUI.CloseAll(ctx); err != nil {
		a.Log.Warn("close views on shutdown", "error", err)
	}
	if err := a.EditCLI.DropAll(ctx); err != nil {
		a.Log.Warn("drop edit sessions on shutdown", "error", err)
	}
}

func RunTUI(cfg config.Config, app *App) error {
	model := uiapp.NewModel(
		cfg.User,
		app.BookTUI,
		app.EditCLI,
		app.QuestCLI,
		app.Perms,
		app.Possession,
		app.IDs,
		app.PluginCLI,
	)
	program := tea.NewProgram(model, tea.WithAltScreen())
	app.Presenter.Attach(program)
	_, err := program.Run()
	app.Shutdown(context.Background())
	return err
}
