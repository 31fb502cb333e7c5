package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/emberforge/lifequest/internal/config"
	"github.com/emberforge/lifequest/internal/quest"
	"github.com/emberforge/lifequest/internal/session"
	"github.com/emberforge/lifequest/internal/tui"
	"github.com/emberforge/lifequest/pkg/client"
)

// env holds everything a command needs, assembled once per invocation.
type env struct {
	cfg     *config.Config
	log     *zap.Logger
	client  *client.Client
	session *session.Store
	ctrl    *quest.Controller
}

// debugFlag force-enables file-backed diagnostics regardless of config.
var debugFlag bool

func buildEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log, err := config.NewLogger(cfg.Debug || debugFlag)
	if err != nil {
		return nil, err
	}
	tokenPath, err := config.TokenPath()
	if err != nil {
		return nil, err
	}

	c := client.New(cfg.APIURL, "")
	store := session.NewStore(c, tokenPath, log)
	return &env{
		cfg:     cfg,
		log:     log,
		client:  c,
		session: store,
		ctrl:    quest.NewController(c, store, log),
	}, nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "lifequest",
		Short:         "Turn your life into an RPG from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := buildEnv()
			if err != nil {
				return err
			}
			defer e.log.Sync() //nolint:errcheck

			app := tui.NewApp(&tui.Deps{
				Client:  e.client,
				Session: e.session,
				Ctrl:    e.ctrl,
				Log:     e.log,
			}, version)

			p := tea.NewProgram(app, tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("tui error: %w", err)
			}
			return nil
		},
	}

	root.PersistentFlags().BoolVar(&debugFlag, "debug", false, "write diagnostics to ~/.lifequest/debug.log")

	root.AddCommand(
		newLoginCmd(),
		newRegisterCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newVersionCmd(),
	)
	return root
}

func newLoginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := buildEnv()
			if err != nil {
				return err
			}
			auth, err := e.client.Login(context.Background(), email, password)
			if err != nil {
				return fmt.Errorf("login failed: %s", client.Message(err))
			}
			user := auth.User
			if err := e.session.Login(auth.Token, &user); err != nil {
				return err
			}
			fmt.Printf("Welcome back, %s (level %d)\n", user.Username, user.Level)
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	cmd.MarkFlagRequired("email")    //nolint:errcheck
	cmd.MarkFlagRequired("password") //nolint:errcheck
	return cmd
}

func newRegisterCmd() *cobra.Command {
	var email, password, username string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := buildEnv()
			if err != nil {
				return err
			}
			auth, err := e.client.Register(context.Background(), email, password, username)
			if err != nil {
				return fmt.Errorf("registration failed: %s", client.Message(err))
			}
			user := auth.User
			if err := e.session.Login(auth.Token, &user); err != nil {
				return err
			}
			fmt.Printf("Welcome to LifeQuest, %s! Run lifequest to begin.\n", user.Username)
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	cmd.Flags().StringVarP(&username, "username", "u", "", "hero name")
	cmd.MarkFlagRequired("email")    //nolint:errcheck
	cmd.MarkFlagRequired("password") //nolint:errcheck
	cmd.MarkFlagRequired("username") //nolint:errcheck
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := buildEnv()
			if err != nil {
				return err
			}
			e.session.Logout()
			fmt.Println("Logged out.")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in hero",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := buildEnv()
			if err != nil {
				return err
			}
			if e.session.Initialize(context.Background()) != session.StatusAuthenticated {
				fmt.Println("Not signed in. Run lifequest login.")
				return nil
			}
			u := e.session.User()
			fmt.Printf("%s · level %d · %d gold · %d day streak\n", u.Username, u.Level, u.Gold, u.Streak)
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the client version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("lifequest " + version)
		},
	}
}
