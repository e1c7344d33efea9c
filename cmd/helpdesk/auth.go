package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/azauting/hospitalcm/internal/credstore"
)

func newLoginCommand(p *portal) *cobra.Command {
	var remember bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Iniciar sesión en el portal",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := p.api.Login(cmd.Context(), p.email, p.password)
			if err != nil {
				return err
			}
			p.session.Set(user)

			if remember {
				if err := p.creds.Save(credstore.Credentials{Email: p.email, Password: p.password}); err != nil {
					p.log.Warn("could not persist credentials", zap.Error(err))
				}
			}

			fmt.Printf("Bienvenido %s (%s)\n", user.FullName, user.Role)
			return nil
		},
	}

	cmd.Flags().BoolVar(&remember, "recordar", false, "guardar las credenciales selladas para próximas invocaciones")

	return cmd
}

func newLogoutCommand(p *portal) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Cerrar sesión y olvidar las credenciales guardadas",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Best effort against the server; the local state is cleared
			// regardless.
			if _, err := p.ensureSession(cmd.Context()); err == nil {
				if err := p.api.Logout(cmd.Context()); err != nil {
					p.log.Warn("server logout failed", zap.Error(err))
				}
			}
			p.session.Clear()
			if err := p.creds.Clear(); err != nil {
				return err
			}
			fmt.Println("Sesión cerrada")
			return nil
		},
	}
}

func newMeCommand(p *portal) *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Mostrar el usuario de la sesión actual",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := p.ensureSession(cmd.Context()); err != nil {
				return err
			}
			user, err := p.api.Me(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Usuario:  %s\n", user.FullName)
			fmt.Printf("Correo:   %s\n", user.Email)
			fmt.Printf("Rol:      %s\n", user.Role)
			if user.Unit != "" {
				fmt.Printf("Unidad:   %s\n", user.Unit)
			}
			return nil
		},
	}
}
