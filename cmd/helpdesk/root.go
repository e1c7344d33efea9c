// Command helpdesk is the terminal portal for the hospitalcm ticket system.
// Every invocation authenticates against the backend, either with the
// --correo/--contrasena flags or with the sealed credentials saved by
// "login --recordar".
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/azauting/hospitalcm/internal/api"
	"github.com/azauting/hospitalcm/internal/config"
	"github.com/azauting/hospitalcm/internal/credstore"
	"github.com/azauting/hospitalcm/internal/domain"
	"github.com/azauting/hospitalcm/internal/observability"
	"github.com/azauting/hospitalcm/internal/session"
	"github.com/azauting/hospitalcm/pkg/util"
)

// portal bundles the dependencies every subcommand shares.
type portal struct {
	cfg     *config.Config
	log     *zap.Logger
	api     *api.Client
	session *session.Store
	creds   *credstore.Store

	email    string
	password string
}

func (p *portal) init() error {
	if p.cfg != nil {
		return nil
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	client, err := api.New(cfg.API, logger)
	if err != nil {
		return fmt.Errorf("failed to build api client: %w", err)
	}
	p.cfg = cfg
	p.log = logger
	p.api = client
	p.session = session.NewStore()
	p.creds = credstore.NewStore(cfg.CredStore.Dir)
	return nil
}

// ensureSession returns the authenticated user, logging in first when
// needed. Flag credentials win over the sealed remember-me pair.
func (p *portal) ensureSession(ctx context.Context) (*domain.User, error) {
	if user := p.session.Current(); user != nil {
		return user, nil
	}
	email, password := p.email, p.password
	if email == "" || password == "" {
		creds, ok, err := p.creds.Load()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, util.NewValidationError("no hay sesión activa: use 'helpdesk login --recordar' o las banderas --correo y --contrasena")
		}
		email, password = creds.Email, creds.Password
	}
	user, err := p.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	p.session.Set(user)
	return user, nil
}

func newRootCommand(p *portal) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "helpdesk",
		Short:         "Portal de mesa de ayuda del hospital",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return p.init()
		},
	}

	cmd.PersistentFlags().StringVar(&p.email, "correo", "", "correo de inicio de sesión")
	cmd.PersistentFlags().StringVar(&p.password, "contrasena", "", "contraseña de inicio de sesión")

	cmd.AddCommand(newLoginCommand(p))
	cmd.AddCommand(newLogoutCommand(p))
	cmd.AddCommand(newMeCommand(p))
	cmd.AddCommand(newTicketsCommand(p))
	cmd.AddCommand(newReviewCommand(p))
	cmd.AddCommand(newFeedCommand(p))
	cmd.AddCommand(newDashboardCommand(p))
	cmd.AddCommand(newTypesCommand(p))
	cmd.AddCommand(newUsersCommand(p))

	return cmd
}

// Execute runs the portal command tree.
func Execute(ctx context.Context) {
	p := &portal{}
	root := newRootCommand(p)
	if err := root.ExecuteContext(ctx); err != nil {
		if ce := util.ToClientError(err); ce != nil {
			fmt.Fprintln(os.Stderr, ce.Message)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		if p.log != nil {
			_ = p.log.Sync()
		}
		os.Exit(1)
	}
	if p.log != nil {
		_ = p.log.Sync()
	}
}
