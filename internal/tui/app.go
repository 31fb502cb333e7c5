package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/emberforge/lifequest/internal/quest"
	"github.com/emberforge/lifequest/internal/session"
	"github.com/emberforge/lifequest/pkg/client"
	"github.com/emberforge/lifequest/pkg/domain"
)

type view int

const (
	viewAuth view = iota
	viewAvatar
	viewDashboard
	viewQuests
	viewProfile
	viewBoard
	viewShop
)

// Deps bundles what every view needs.
type Deps struct {
	Client  *client.Client
	Session *session.Store
	Ctrl    *quest.Controller
	Log     *zap.Logger
}

// sessionInitMsg carries the resolved session status at startup.
type sessionInitMsg struct {
	status session.Status
}

// authSuccessMsg is emitted after login/register stores the session.
type authSuccessMsg struct {
	user *domain.User
}

// avatarChosenMsg is emitted after the avatar mutation round-trips.
type avatarChosenMsg struct {
	err error
}

// completionMsg carries a quest completion result to whichever view
// triggered it. Reward toasts are produced at the app level so both
// dashboard and quest board completions behave identically.
type completionMsg struct {
	questID string
	result  *quest.CompletionResult
	err     error
}

// flashMsg shows transient status lines; flashClearMsg hides them.
type flashMsg struct {
	lines []string
	isErr bool
}

type flashClearMsg struct{}

func flashCmd(isErr bool, lines ...string) tea.Cmd {
	return func() tea.Msg { return flashMsg{lines: lines, isErr: isErr} }
}

func flashClearCmd() tea.Cmd {
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return flashClearMsg{}
	})
}

// App is the root Bubbletea model.
type App struct {
	deps *Deps
	view view

	auth      authModel
	avatar    avatarModel
	dashboard dashboardModel
	quests    questsModel
	profile   profileModel
	board     boardModel
	shop      shopModel

	flash    []string
	flashErr bool
	width    int
	height   int
	frame    int // logo shimmer animation frame
	version  string
}

// NewApp creates the TUI application.
func NewApp(deps *Deps, version string) App {
	return App{
		deps:      deps,
		auth:      newAuthModel(deps),
		avatar:    newAvatarModel(deps),
		dashboard: newDashboardModel(deps),
		quests:    newQuestsModel(deps),
		profile:   newProfileModel(deps),
		board:     newBoardModel(deps),
		shop:      newShopModel(deps),
		version:   version,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(shimmerTickCmd(), a.initSession())
}

func (a App) initSession() tea.Cmd {
	store := a.deps.Session
	return func() tea.Msg {
		status := store.Initialize(context.Background())
		return sessionInitMsg{status: status}
	}
}

// routeAfterAuth decides the landing view for an authenticated user:
// avatar selection until an avatar exists, dashboard afterwards.
func (a App) routeAfterAuth() (App, tea.Cmd) {
	user := a.deps.Session.User()
	if !user.HasAvatar() {
		a.view = viewAvatar
		return a, nil
	}
	a.view = viewDashboard
	return a, a.dashboard.Init()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(2) + tabs(1) + flash(1) + help(1) = 5 lines
		bodyMsg := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 5}
		a.auth, _ = a.auth.Update(bodyMsg)
		a.avatar, _ = a.avatar.Update(bodyMsg)
		a.dashboard, _ = a.dashboard.Update(bodyMsg)
		a.quests, _ = a.quests.Update(bodyMsg)
		a.profile, _ = a.profile.Update(bodyMsg)
		a.board, _ = a.board.Update(bodyMsg)
		a.shop, _ = a.shop.Update(bodyMsg)
		return a, nil

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case sessionInitMsg:
		if msg.status == session.StatusAuthenticated {
			return a.routeAfterAuth()
		}
		a.view = viewAuth
		return a, nil

	case authSuccessMsg:
		app, cmd := a.routeAfterAuth()
		welcome := flashCmd(false, fmt.Sprintf("Welcome, %s!", msg.user.Username))
		return app, tea.Batch(cmd, welcome, flashClearCmd())

	case avatarChosenMsg:
		if msg.err != nil {
			// The avatar model must see the failure too, or its
			// in-flight flag would swallow every later keypress.
			a.avatar, _ = a.avatar.Update(msg)
			return a, tea.Batch(flashCmd(true, client.Message(msg.err)), flashClearCmd())
		}
		a.view = viewDashboard
		return a, tea.Batch(a.dashboard.Init(), flashCmd(false, "Your adventure begins."), flashClearCmd())

	case completionMsg:
		return a.handleCompletion(msg)

	case flashMsg:
		a.flash = msg.lines
		a.flashErr = msg.isErr
		return a, nil

	case flashClearMsg:
		a.flash = nil
		return a, nil

	case tea.KeyMsg:
		if next, cmd, handled := a.handleGlobalKey(msg); handled {
			return next, cmd
		}
	}

	return a.routeToView(msg)
}

// handleCompletion flashes the reward (and the level-up, when one
// happened) and pushes the reconciled snapshots into the open views.
func (a App) handleCompletion(msg completionMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.dashboard.completing = false
		a.quests.completing = false
		return a, tea.Batch(flashCmd(true, client.Message(msg.err)), flashClearCmd())
	}

	reward := msg.result.Reward
	lines := []string{fmt.Sprintf("Quest completed! +%d XP, +%d Gold", reward.XPGained, reward.GoldGained)}
	if reward.NewStreak > 0 {
		lines[0] += fmt.Sprintf("  (%d day streak)", reward.NewStreak)
	}
	if reward.LevelUp {
		lines = append(lines, fmt.Sprintf("Level up! You are now level %d", reward.NewLevel))
	}

	var cmds []tea.Cmd
	cmds = append(cmds, flashCmd(false, lines...), flashClearCmd())

	// The completed quest left the active set server-side; re-pull it.
	a.dashboard, _ = a.dashboard.Update(msg)
	a.quests, _ = a.quests.Update(msg)
	cmds = append(cmds, a.dashboard.load(), a.quests.load())
	return a, tea.Batch(cmds...)
}

func (a App) handleGlobalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	if a.isEditing() {
		return a, nil, false
	}
	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit, true
	}
	// Tab switching only once signed in and past avatar selection.
	if a.view == viewAuth || a.view == viewAvatar {
		return a, nil, false
	}
	switch msg.String() {
	case "1":
		if a.view != viewDashboard {
			a.view = viewDashboard
			return a, a.dashboard.Init(), true
		}
	case "2":
		if a.view != viewQuests {
			a.view = viewQuests
			return a, a.quests.Init(), true
		}
	case "3":
		if a.view != viewProfile {
			a.view = viewProfile
			return a, a.profile.Init(), true
		}
	case "4":
		if a.view != viewBoard {
			a.view = viewBoard
			return a, a.board.Init(), true
		}
	case "5":
		if a.view != viewShop {
			a.view = viewShop
			return a, a.shop.Init(), true
		}
	}
	return a, nil, false
}

func (a App) isEditing() bool {
	switch a.view {
	case viewAuth:
		return true
	case viewQuests:
		return a.quests.editing()
	}
	return false
}

func (a App) routeToView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.view {
	case viewAuth:
		a.auth, cmd = a.auth.Update(msg)
	case viewAvatar:
		a.avatar, cmd = a.avatar.Update(msg)
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.Update(msg)
	case viewQuests:
		a.quests, cmd = a.quests.Update(msg)
	case viewProfile:
		a.profile, cmd = a.profile.Update(msg)
	case viewBoard:
		a.board, cmd = a.board.Update(msg)
	case viewShop:
		a.shop, cmd = a.shop.Update(msg)
	}
	return a, cmd
}

func (a App) View() string {
	// Header: centered shimmer logo
	logo := renderShimmerLogo(a.frame)

	// Stats line below logo
	statsLine := ""
	if user := a.deps.Session.User(); user != nil {
		parts := []string{
			fmt.Sprintf("Lv %d", user.Level),
			goldStyle.Render(fmt.Sprintf("%d gold", user.Gold)),
		}
		if user.Streak > 0 {
			parts = append(parts, streakStyle.Render(fmt.Sprintf("%d day streak", user.Streak)))
		}
		if user.Avatar != nil {
			parts = append(parts, dimStyle.Render(user.Avatar.Name))
		}
		statsLine = metaStyle.Render(user.Username) + "  " + strings.Join(parts, metaStyle.Render(" · "))
	}

	header := centerLine(logo, a.width)
	if statsLine != "" {
		header += "\n" + centerLine(statsLine, a.width)
	} else {
		header += "\n"
	}

	tabBar := a.renderTabs()

	var body, help string
	switch a.view {
	case viewAuth:
		body = a.auth.View()
		help = " " + a.auth.helpKeys()
	case viewAvatar:
		body = a.avatar.View()
		help = " " + a.avatar.helpKeys()
	case viewDashboard:
		body = a.dashboard.View()
		help = " " + helpEntry("1-5", "tabs") + "  " + a.dashboard.helpKeys()
	case viewQuests:
		body = a.quests.View()
		help = " " + helpEntry("1-5", "tabs") + "  " + a.quests.helpKeys()
	case viewProfile:
		body = a.profile.View()
		help = " " + helpEntry("1-5", "tabs") + "  " + a.profile.helpKeys()
	case viewBoard:
		body = a.board.View()
		help = " " + helpEntry("1-5", "tabs") + "  " + a.board.helpKeys()
	case viewShop:
		body = a.shop.View()
		help = " " + helpEntry("1-5", "tabs") + "  " + a.shop.helpKeys()
	}

	// Flash line (transient toasts)
	flashLine := ""
	if len(a.flash) > 0 {
		style := successStyle
		if a.flashErr {
			style = errorStyle
		}
		flashLine = " " + style.Render(strings.Join(a.flash, "   "))
	}

	chrome := 5
	body = strings.TrimRight(truncateToHeight(body, a.height-chrome), "\n")

	return fmt.Sprintf("%s\n%s\n%s\n%s\n%s", header, tabBar, body, flashLine, help)
}

func (a App) renderTabs() string {
	if a.view == viewAuth || a.view == viewAvatar {
		return ""
	}

	type tabEntry struct {
		key  string
		name string
		v    view
	}
	tabs := []tabEntry{
		{"1", "Dashboard", viewDashboard},
		{"2", "Quests", viewQuests},
		{"3", "Profile", viewProfile},
		{"4", "Board", viewBoard},
		{"5", "Shop", viewShop},
	}

	// Equal-width columns spread across the terminal
	colWidth := a.width / len(tabs)
	var tabBar strings.Builder
	for _, t := range tabs {
		var label string
		if t.v == a.view {
			label = accentStyle.Render(t.key) + " " + selectedStyle.Underline(true).Render(t.name)
		} else {
			label = metaStyle.Render(t.key) + " " + dimStyle.Render(t.name)
		}
		labelWidth := lipgloss.Width(label)
		leftPad := (colWidth - labelWidth) / 2
		if leftPad < 0 {
			leftPad = 0
		}
		rightPad := colWidth - labelWidth - leftPad
		if rightPad < 0 {
			rightPad = 0
		}
		tabBar.WriteString(strings.Repeat(" ", leftPad) + label + strings.Repeat(" ", rightPad))
	}
	return tabBar.String()
}

func centerLine(s string, width int) string {
	pad := (width - lipgloss.Width(s)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + s
}
