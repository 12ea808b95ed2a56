package cli

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Makepad-fr/contactbook/internal/app"
	"github.com/Makepad-fr/contactbook/internal/auth"
	"github.com/Makepad-fr/contactbook/internal/contacts"
	"github.com/Makepad-fr/contactbook/internal/content"
	"github.com/Makepad-fr/contactbook/internal/guard"
	"github.com/Makepad-fr/contactbook/internal/logging"
	"github.com/Makepad-fr/contactbook/internal/router"
	"github.com/Makepad-fr/contactbook/internal/store"
	"github.com/Makepad-fr/contactbook/internal/tasks"
	"github.com/Makepad-fr/contactbook/internal/ui"
	"github.com/Makepad-fr/contactbook/internal/validation"
	"github.com/Makepad-fr/contactbook/internal/view"
)

// buildApp wires the stores, router and shell from the loaded config.
// changes may be nil.
func (e *env) buildApp(changes <-chan string) (*app.Model, error) {
	contactsD, err := e.durable(ScopeContacts)
	if err != nil {
		return nil, err
	}
	tasksD, err := e.durable(ScopeTasks)
	if err != nil {
		return nil, err
	}
	timeout, err := e.cfg.FetchTimeout()
	if err != nil {
		return nil, err
	}

	session := store.NewMemory()
	provider := content.NewProvider(e.cfg.Content.Dir)
	r := router.New(router.Config{
		Guard:    guard.New(session),
		Resolver: view.NewResolver(),
		Content:  provider,
		Deps: view.Deps{
			Session:  session,
			Contacts: contacts.New(contactsD, time.Now, e.log.Named(logging.Store)),
			Tasks:    tasks.New(tasksD, time.Now),
			Auth:     auth.NewAuthenticator(auth.FileSource{Path: e.cfg.UsersFile}, e.log.Named(logging.Auth)),
			Validate: validation.New(),
			Log:      e.log.Named(logging.View),
		},
		Timeout: timeout,
		Log:     e.log.Named(logging.Router),
	})
	return app.New(app.Options{
		Router:   r,
		Session:  session,
		Content:  provider,
		Renderer: content.NewRenderer(ui.Current().Markdown),
		Start:    e.cfg.Start(),
		Log:      e.log,
		Changes:  changes,
	}), nil
}

func (e *env) runTUI(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var changes <-chan string
	if dir := e.cfg.Content.Dir; dir != "" {
		w, err := content.NewWatcher(dir, content.DefaultDebounce, e.log.Named(logging.Content))
		if err != nil {
			e.log.Warn("template watch disabled", zap.String("dir", dir), zap.Error(err))
		} else {
			go w.Run(ctx)
			changes = w.Changes()
		}
	}

	m, err := e.buildApp(changes)
	if err != nil {
		return err
	}
	e.log.Info("start", zap.String("route", e.cfg.StartRoute), zap.String("store", e.cfg.Store))
	return app.Run(ctx, m)
}
