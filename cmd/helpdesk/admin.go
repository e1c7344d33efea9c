package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/azauting/hospitalcm/internal/domain"
	"github.com/azauting/hospitalcm/pkg/util"
)

func newDashboardCommand(p *portal) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Indicadores del día y series mensuales",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := p.ensureSession(cmd.Context()); err != nil {
				return err
			}
			ctx := cmd.Context()

			created, err := p.api.TicketsCreatedToday(ctx)
			if err != nil {
				return err
			}
			closed, err := p.api.TicketsClosedToday(ctx)
			if err != nil {
				return err
			}
			open, err := p.api.TicketsOpen(ctx)
			if err != nil {
				return err
			}
			inProcess, err := p.api.TicketsInProcess(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("Creados hoy:   %d\n", created)
			fmt.Printf("Cerrados hoy:  %d\n", closed)
			fmt.Printf("Abiertos:      %d\n", open)
			fmt.Printf("En proceso:    %d\n", inProcess)

			resolved, err := p.api.ResolvedPerMonth(ctx)
			if err != nil {
				return err
			}
			if len(resolved) > 0 {
				fmt.Println("\nResueltos por mes:")
				for _, month := range resolved {
					fmt.Printf("  %s: %d\n", month.Month, month.Resolved)
				}
			}

			mttr, err := p.api.MonthlyMTTR(ctx)
			if err != nil {
				return err
			}
			if len(mttr) > 0 {
				fmt.Println("\nMTTR mensual (horas):")
				for _, month := range mttr {
					fmt.Printf("  %s: %s\n", month.Month, month.MTTRHours)
				}
			}

			treemap, err := p.api.LocationsTreemap(ctx)
			if err != nil {
				return err
			}
			if len(treemap) > 0 {
				fmt.Println("\nTickets por ubicación:")
				for _, area := range treemap {
					fmt.Printf("  %s\n", area.Name)
					for _, loc := range area.Data {
						fmt.Printf("    %s: %d\n", loc.Location, loc.Tickets)
					}
				}
			}
			return nil
		},
	}
}

func newTypesCommand(p *portal) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "types",
		Short: "Catálogos de clasificación",
	}
	cmd.AddCommand(newTypesListCommand(p))
	cmd.AddCommand(newTypesCreateCommand(p))
	cmd.AddCommand(newTypesUpdateCommand(p))
	return cmd
}

func newTypesListCommand(p *portal) *cobra.Command {
	return &cobra.Command{
		Use:       "list <catalogo>",
		Short:     "Listar un catálogo: ubicacion, area, evento, unidad, estado, prioridad u origen",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"ubicacion", "area", "evento", "unidad", "estado", "prioridad", "origen"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := p.ensureSession(cmd.Context()); err != nil {
				return err
			}
			ctx := cmd.Context()
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			defer w.Flush()

			switch args[0] {
			case "ubicacion":
				locations, err := p.api.Locations(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(w, "ID\tUBICACION\tAREA")
				for _, loc := range locations {
					area := "-"
					if loc.AreaName != nil {
						area = *loc.AreaName
					}
					fmt.Fprintf(w, "%d\t%s\t%s\n", loc.LocationID, loc.Name, area)
				}
			case "area":
				areas, err := p.api.Areas(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(w, "ID\tAREA")
				for _, area := range areas {
					fmt.Fprintf(w, "%d\t%s\n", area.AreaID, area.Name)
				}
			case "evento":
				events, err := p.api.Events(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(w, "ID\tEVENTO")
				for _, event := range events {
					fmt.Fprintf(w, "%d\t%s\n", event.EventID, event.Name)
				}
			case "unidad":
				units, err := p.api.Units(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(w, "ID\tUNIDAD")
				for _, unit := range units {
					fmt.Fprintf(w, "%d\t%s\n", unit.UnitID, unit.Name)
				}
			case "estado":
				statuses, err := p.api.Statuses(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(w, "ID\tESTADO")
				for _, status := range statuses {
					fmt.Fprintf(w, "%d\t%s\n", status.StatusID, status.Name)
				}
			case "prioridad":
				priorities, err := p.api.Priorities(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(w, "ID\tPRIORIDAD")
				for _, priority := range priorities {
					fmt.Fprintf(w, "%d\t%s\n", priority.PriorityID, priority.Name)
				}
			case "origen":
				origins, err := p.api.Origins(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(w, "ID\tORIGEN")
				for _, origin := range origins {
					fmt.Fprintf(w, "%d\t%s\n", origin.OriginID, origin.Name)
				}
			default:
				return util.NewValidationError("catálogo desconocido: " + args[0])
			}
			return nil
		},
	}
}

func newTypesCreateCommand(p *portal) *cobra.Command {
	var name string
	var areaID int

	cmd := &cobra.Command{
		Use:       "create <catalogo>",
		Short:     "Crear una entrada en ubicacion, area o evento",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"ubicacion", "area", "evento"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := p.ensureSession(cmd.Context()); err != nil {
				return err
			}
			ctx := cmd.Context()
			switch args[0] {
			case "ubicacion":
				if err := p.api.CreateLocation(ctx, name, areaID); err != nil {
					return err
				}
			case "area":
				if err := p.api.CreateArea(ctx, name); err != nil {
					return err
				}
			case "evento":
				if err := p.api.CreateEvent(ctx, name); err != nil {
					return err
				}
			default:
				return util.NewValidationError("catálogo desconocido: " + args[0])
			}
			fmt.Println("Entrada creada")
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "nombre", "", "nombre de la entrada")
	cmd.Flags().IntVar(&areaID, "area", 0, "id del área (solo para ubicaciones)")

	return cmd
}

func newTypesUpdateCommand(p *portal) *cobra.Command {
	var id, areaID int
	var name string

	cmd := &cobra.Command{
		Use:       "update <catalogo>",
		Short:     "Renombrar una entrada de ubicacion, area o evento",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"ubicacion", "area", "evento"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := p.ensureSession(cmd.Context()); err != nil {
				return err
			}
			if id <= 0 {
				return util.NewValidationError("debe indicar --id")
			}
			ctx := cmd.Context()
			switch args[0] {
			case "ubicacion":
				if err := p.api.UpdateLocation(ctx, id, name, areaID); err != nil {
					return err
				}
			case "area":
				if err := p.api.UpdateArea(ctx, id, name); err != nil {
					return err
				}
			case "evento":
				if err := p.api.UpdateEvent(ctx, id, name); err != nil {
					return err
				}
			default:
				return util.NewValidationError("catálogo desconocido: " + args[0])
			}
			fmt.Println("Entrada actualizada")
			return nil
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "id de la entrada")
	cmd.Flags().StringVar(&name, "nombre", "", "nuevo nombre")
	cmd.Flags().IntVar(&areaID, "area", 0, "id del área (solo para ubicaciones)")

	return cmd
}

func newUsersCommand(p *portal) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Administrar cuentas de usuario",
	}
	cmd.AddCommand(newUsersListCommand(p))
	cmd.AddCommand(newUsersCreateCommand(p))
	cmd.AddCommand(newUsersUpdateCommand(p))
	return cmd
}

func newUsersListCommand(p *portal) *cobra.Command {
	return &cobra.Command{
		Use:       "list <grupo>",
		Short:     "Listar solicitantes, soportes o soportes disponibles",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"solicitantes", "soportes", "disponibles"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := p.ensureSession(cmd.Context()); err != nil {
				return err
			}

			var users []domain.User
			var err error
			switch args[0] {
			case "solicitantes":
				users, err = p.api.Requesters(cmd.Context())
			case "soportes":
				users, err = p.api.Supports(cmd.Context())
			case "disponibles":
				users, err = p.api.AvailableSupports(cmd.Context())
			default:
				return util.NewValidationError("grupo desconocido: " + args[0])
			}
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNOMBRE\tCORREO\tROL\tUNIDAD\tACTIVO")
			for _, user := range users {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d\n",
					user.UserID, user.FullName, user.Email, user.Role, orDash(user.Unit), user.Active)
			}
			return w.Flush()
		},
	}
}

func newUsersCreateCommand(p *portal) *cobra.Command {
	var input domain.UserCreateInput
	var unitID int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Registrar una cuenta nueva",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := p.ensureSession(cmd.Context()); err != nil {
				return err
			}
			if unitID > 0 {
				input.UnitID = &unitID
			}
			if err := p.api.CreateUser(cmd.Context(), input); err != nil {
				return err
			}
			fmt.Println("Usuario creado")
			return nil
		},
	}

	cmd.Flags().StringVar(&input.FullName, "nombre", "", "nombre completo")
	cmd.Flags().StringVar(&input.Email, "email", "", "correo de la cuenta")
	cmd.Flags().StringVar(&input.Password, "clave", "", "contraseña inicial")
	cmd.Flags().IntVar(&input.RoleID, "rol", 3, "rol: 1 administrador, 2 soporte, 3 solicitante")
	cmd.Flags().IntVar(&unitID, "unidad", 0, "id de la unidad (opcional)")

	return cmd
}

func newUsersUpdateCommand(p *portal) *cobra.Command {
	var (
		password string
		roleID   int
		unitID   int
		active   int
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Actualizar una cuenta existente",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				return util.NewValidationError("id de usuario inválido: " + args[0])
			}
			if _, err := p.ensureSession(cmd.Context()); err != nil {
				return err
			}

			var input domain.UserUpdateInput
			if cmd.Flags().Changed("clave") {
				input.Password = &password
			}
			if cmd.Flags().Changed("rol") {
				input.RoleID = &roleID
			}
			if cmd.Flags().Changed("unidad") {
				input.UnitID = &unitID
			}
			if cmd.Flags().Changed("activo") {
				input.Active = &active
			}
			if err := p.api.UpdateUser(cmd.Context(), id, input); err != nil {
				return err
			}
			fmt.Println("Usuario actualizado")
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "clave", "", "nueva contraseña")
	cmd.Flags().IntVar(&roleID, "rol", 0, "nuevo rol: 1 administrador, 2 soporte, 3 solicitante")
	cmd.Flags().IntVar(&unitID, "unidad", 0, "nueva unidad")
	cmd.Flags().IntVar(&active, "activo", 1, "1 activo, 0 inactivo")

	return cmd
}
