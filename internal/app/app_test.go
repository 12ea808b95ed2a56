package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/Makepad-fr/contactbook/internal/auth"
	"github.com/Makepad-fr/contactbook/internal/contacts"
	"github.com/Makepad-fr/contactbook/internal/content"
	"github.com/Makepad-fr/contactbook/internal/guard"
	"github.com/Makepad-fr/contactbook/internal/route"
	"github.com/Makepad-fr/contactbook/internal/router"
	"github.com/Makepad-fr/contactbook/internal/store"
	"github.com/Makepad-fr/contactbook/internal/tasks"
	"github.com/Makepad-fr/contactbook/internal/validation"
	"github.com/Makepad-fr/contactbook/internal/view"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type harness struct {
	m       *Model
	session *store.Memory
	quit    bool
}

func newHarness(t *testing.T, start route.Route) *harness {
	return newHarnessDir(t, start, "")
}

func newHarnessDir(t *testing.T, start route.Route, dir string) *harness {
	t.Helper()
	log := zaptest.NewLogger(t)
	session := store.NewMemory()
	provider := content.NewProvider(dir)
	r := router.New(router.Config{
		Guard:    guard.New(session),
		Resolver: view.NewResolver(),
		Content:  provider,
		Deps: view.Deps{
			Session:  session,
			Contacts: contacts.New(store.NewMemory().Durable(), time.Now, log),
			Tasks:    tasks.New(store.NewMemory().Durable(), time.Now),
			Auth: auth.NewAuthenticator(auth.StaticSource{
				{DisplayName: "Jane", Username: "jane", Password: "password"},
			}, log),
			Validate: validation.New(),
			Log:      log,
		},
		Log: log,
	})
	h := &harness{
		m: New(Options{
			Router:   r,
			Session:  session,
			Content:  provider,
			Renderer: content.NewRenderer("notty"),
			Start:    start,
			Log:      log,
		}),
		session: session,
	}
	h.run(h.m.Init())
	return h
}

// run executes cmd and the commands it leads to, like the Bubble Tea loop.
func (h *harness) run(cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil:
		case tea.QuitMsg:
			h.quit = true
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			_, next := h.m.Update(msg)
			queue = append(queue, next)
		}
	}
}

func (h *harness) key(msg tea.KeyMsg) {
	_, cmd := h.m.Update(msg)
	h.run(cmd)
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func (h *harness) state() route.Route { return h.m.r.State().Route }

func TestInitLoadsStartRoute(t *testing.T) {
	h := newHarness(t, route.Home)
	assert.Equal(t, route.Home, h.state())
	assert.Equal(t, "Home", h.m.Title())

	v := h.m.View()
	assert.Contains(t, v, "Welcome")
	assert.Contains(t, v, "1 Home")
	assert.Contains(t, v, "L Login")
	assert.Contains(t, v, "© contactbook")
	assert.NotContains(t, v, "Contact-list")
}

func TestProtectedStartRouteRedirects(t *testing.T) {
	h := newHarness(t, route.TaskList)
	assert.Equal(t, route.Login, h.state())
	assert.Equal(t, "Login", h.m.Title())
}

func TestDigitNavigation(t *testing.T) {
	h := newHarness(t, route.Home)
	h.key(runes("2"))
	assert.Equal(t, route.About, h.state())
	assert.Contains(t, h.m.View(), "About Us")

	h.key(runes("9"))
	assert.Equal(t, route.About, h.state())

	h.key(runes("["))
	assert.Equal(t, route.Home, h.state())
	h.key(runes("]"))
	assert.Equal(t, route.About, h.state())
}

func TestLoginShowsSecureLinks(t *testing.T) {
	h := newHarness(t, route.Home)
	h.key(runes("L"))
	require.Equal(t, route.Login, h.state())

	// the login form captures plain keys
	h.key(runes("jane"))
	assert.Equal(t, route.Login, h.state())
	h.key(tea.KeyMsg{Type: tea.KeyTab})
	h.key(runes("password"))
	h.key(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, route.ContactList, h.state())
	assert.Len(t, h.m.Links(), 7)
	v := h.m.View()
	assert.Contains(t, v, "Logout (Jane)")
	assert.Contains(t, v, "7 Task-list")

	h.key(runes("7"))
	assert.Equal(t, route.TaskList, h.state())

	h.key(runes("L"))
	assert.Equal(t, route.Login, h.state())
	_, ok := auth.Current(h.session)
	assert.False(t, ok)
	assert.Len(t, h.m.Links(), 5)
}

func TestAltKeysWhileCapturing(t *testing.T) {
	h := newHarness(t, route.Login)
	h.key(runes("q"))
	assert.False(t, h.quit)

	h.key(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("3"), Alt: true})
	assert.Equal(t, route.Products, h.state())

	h.key(tea.KeyMsg{Type: tea.KeyLeft, Alt: true})
	assert.Equal(t, route.Login, h.state())
}

func TestQuit(t *testing.T) {
	h := newHarness(t, route.Home)
	h.key(runes("q"))
	assert.True(t, h.quit)

	h = newHarness(t, route.Login)
	h.key(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, h.quit)
}

func TestWindowResizeRerenders(t *testing.T) {
	h := newHarness(t, route.About)
	before := h.m.body
	_, cmd := h.m.Update(tea.WindowSizeMsg{Width: 40, Height: 20})
	h.run(cmd)
	assert.Equal(t, 36, h.m.bodyWidth)
	assert.NotEmpty(t, h.m.body)
	assert.NotEqual(t, before, h.m.body)
}

func TestTemplateChangeReloadsCurrentView(t *testing.T) {
	dir := t.TempDir()
	for _, sub := range []string{"content", "components"} {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, sub), 0o755))
	}
	about := filepath.Join(dir, "content", "about.md")
	require.NoError(t, os.WriteFile(about, []byte("# First draft"), 0o644))
	h := newHarnessDir(t, route.About, dir)
	assert.Contains(t, h.m.View(), "First draft")

	require.NoError(t, os.WriteFile(about, []byte("# Second draft"), 0o644))
	_, cmd := h.m.Update(templateChanged{locator: content.Locator("about")})
	h.run(cmd)
	assert.Contains(t, h.m.View(), "Second draft")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "components", "footer.md"), []byte("custom footer"), 0o644))
	_, cmd = h.m.Update(templateChanged{locator: content.Component("footer")})
	h.run(cmd)
	assert.Contains(t, h.m.View(), "custom footer")

	gen := h.m.r.Generation()
	_, cmd = h.m.Update(templateChanged{locator: content.Locator("home")})
	h.run(cmd)
	assert.Equal(t, gen, h.m.r.Generation(), "other views are not reloaded")
}

func TestWaitForChange(t *testing.T) {
	ch := make(chan string, 1)
	m := New(Options{Changes: ch})
	ch <- content.Locator("home")
	assert.Equal(t, templateChanged{locator: content.Locator("home")}, m.waitForChange()())
	close(ch)
	assert.Nil(t, m.waitForChange()())

	assert.Nil(t, New(Options{}).waitForChange())
}
