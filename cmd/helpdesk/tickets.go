package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/azauting/hospitalcm/internal/domain"
	"github.com/azauting/hospitalcm/internal/listview"
	"github.com/azauting/hospitalcm/pkg/util"
)

const dateLayout = "2006-01-02"

func newTicketsCommand(p *portal) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tickets",
		Short: "Consultar y gestionar tickets",
	}

	cmd.AddCommand(newTicketsListCommand(p))
	cmd.AddCommand(newTicketsShowCommand(p))
	cmd.AddCommand(newTicketsCreateCommand(p))
	cmd.AddCommand(newTicketsCloseCommand(p))
	cmd.AddCommand(newTicketsCancelCommand(p))
	cmd.AddCommand(newTicketsObserveCommand(p))
	cmd.AddCommand(newTicketsMemberCommand(p))

	return cmd
}

// screenFetchers maps each list screen to its endpoint.
func screenFetchers(p *portal) map[string]func(context.Context) ([]domain.TicketSummary, error) {
	return map[string]func(context.Context) ([]domain.TicketSummary, error){
		"mis-tickets": p.api.MyTickets,
		"sin-revisar": p.api.UnreviewedTickets,
		"revisados":   p.api.ReviewedTickets,
		"cerrados":    p.api.ClosedTickets,
		"asignados":   p.api.AssignedTickets,
	}
}

func newTicketsListCommand(p *portal) *cobra.Command {
	var (
		screen   string
		search   string
		origin   string
		event    string
		priority string
		status   string
		from     string
		to       string
		page     int
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Listar tickets con filtros y paginación",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := p.ensureSession(cmd.Context()); err != nil {
				return err
			}
			fetch, ok := screenFetchers(p)[screen]
			if !ok {
				return util.NewValidationError("pantalla desconocida: " + screen)
			}
			items, err := fetch(cmd.Context())
			if err != nil {
				return err
			}

			spec := listview.FilterSpec{
				Search:   search,
				Origin:   origin,
				Event:    event,
				Priority: priority,
				Status:   status,
			}
			if spec.From, err = parseDate(from); err != nil {
				return err
			}
			if spec.To, err = parseDate(to); err != nil {
				return err
			}

			view := listview.NewView(listview.TicketAccessors())
			view.SetItems(items)
			view.SetFilter(spec)
			view.SetPageSize(pageSize)
			view.GoTo(page)

			rows, totalPages := view.VisiblePage()
			printTicketTable(rows)
			fmt.Printf("\n%d tickets · página %s\n", view.FilteredCount(), renderPager(totalPages, view.Page()))
			return nil
		},
	}

	cmd.Flags().StringVar(&screen, "pantalla", "mis-tickets", "mis-tickets|sin-revisar|revisados|cerrados|asignados")
	cmd.Flags().StringVar(&search, "buscar", "", "búsqueda por asunto, solicitante o id")
	cmd.Flags().StringVar(&origin, "origen", "", "filtrar por origen")
	cmd.Flags().StringVar(&event, "evento", "", "filtrar por evento")
	cmd.Flags().StringVar(&priority, "prioridad", "", "filtrar por prioridad")
	cmd.Flags().StringVar(&status, "estado", "", "filtrar por estado")
	cmd.Flags().StringVar(&from, "desde", "", "fecha inicial (AAAA-MM-DD)")
	cmd.Flags().StringVar(&to, "hasta", "", "fecha final (AAAA-MM-DD)")
	cmd.Flags().IntVar(&page, "pagina", 1, "página a mostrar")
	cmd.Flags().IntVar(&pageSize, "por-pagina", listview.DefaultPageSize, "filas por página")

	return cmd
}

func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	parsed, err := time.ParseInLocation(dateLayout, value, time.Local)
	if err != nil {
		return time.Time{}, util.NewValidationError("fecha inválida: " + value)
	}
	return parsed, nil
}

func printTicketTable(rows []domain.TicketSummary) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tASUNTO\tSOLICITANTE\tESTADO\tPRIORIDAD\tCREADO")
	for _, row := range rows {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			row.TicketID, row.Subject, row.RequesterName, row.Status,
			orDash(row.Priority), row.CreatedAt.Format("2006-01-02 15:04"))
	}
	w.Flush()
}

// renderPager formats the compressed page strip, e.g. "[1] 2 3 … 10".
func renderPager(totalPages, current int) string {
	parts := make([]string, 0, 9)
	for _, page := range listview.PageNumbers(totalPages, current) {
		switch {
		case page == listview.Ellipsis:
			parts = append(parts, "…")
		case page == current:
			parts = append(parts, "["+strconv.Itoa(page)+"]")
		default:
			parts = append(parts, strconv.Itoa(page))
		}
	}
	return strings.Join(parts, " ")
}

func orDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func ticketIDArg(args []string) (int, error) {
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return 0, util.NewValidationError("id de ticket inválido: " + args[0])
	}
	return id, nil
}

func newTicketsShowCommand(p *portal) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Mostrar el detalle completo de un ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := ticketIDArg(args)
			if err != nil {
				return err
			}
			if _, err := p.ensureSession(cmd.Context()); err != nil {
				return err
			}
			bundle, err := p.api.GetTicket(cmd.Context(), id)
			if err != nil {
				return err
			}
			printTicketBundle(bundle)
			return nil
		},
	}
}

func printTicketBundle(bundle *domain.TicketBundle) {
	t := bundle.Ticket
	fmt.Printf("Ticket #%d · %s\n", t.TicketID, t.Subject)
	fmt.Printf("Estado:      %s\n", t.Status)
	fmt.Printf("Prioridad:   %s\n", orDash(t.Priority))
	fmt.Printf("Unidad:      %s\n", orDash(t.Unit))
	fmt.Printf("Origen:      %s\n", orDash(t.Origin))
	fmt.Printf("Evento:      %s\n", orDash(t.Event))
	fmt.Printf("Solicitante: %s\n", t.RequesterName)
	fmt.Printf("Creado:      %s\n", t.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Printf("\n%s\n", t.Description)
	if t.FinalResponse != nil && *t.FinalResponse != "" {
		fmt.Printf("\nRespuesta final: %s\n", *t.FinalResponse)
	}
	if bundle.Detail != nil && bundle.Detail.SupportName != nil {
		fmt.Printf("\nSoporte asignado: %s\n", *bundle.Detail.SupportName)
	}
	if len(bundle.Members) > 0 {
		fmt.Println("\nIntegrantes:")
		for _, member := range bundle.Members {
			fmt.Printf("  - %s\n", member.FullName)
		}
	}
	if len(bundle.Observations) > 0 {
		fmt.Println("\nObservaciones:")
		for _, obs := range bundle.Observations {
			fmt.Printf("  [%s] %s: %s\n", obs.CreatedAt.Format("2006-01-02 15:04"), obs.AuthorName, obs.Text)
		}
	}
}

func newTicketsCreateCommand(p *portal) *cobra.Command {
	var input domain.TicketCreateInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Crear un ticket nuevo",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := p.ensureSession(cmd.Context())
			if err != nil {
				return err
			}
			if input.RequesterName == "" {
				input.RequesterName = user.FullName
			}
			if input.ManualIP == "" {
				if ip, err := p.api.MyIP(cmd.Context()); err == nil {
					input.ManualIP = ip
				}
			}
			if err := p.api.CreateTicket(cmd.Context(), input); err != nil {
				return err
			}
			fmt.Println("Ticket creado")
			return nil
		},
	}

	cmd.Flags().StringVar(&input.Subject, "asunto", "", "asunto del ticket")
	cmd.Flags().StringVar(&input.Description, "descripcion", "", "descripción del problema")
	cmd.Flags().StringVar(&input.Phone, "telefono", "", "teléfono de contacto")
	cmd.Flags().StringVar(&input.RequesterName, "autor", "", "quién reporta el problema")
	cmd.Flags().StringVar(&input.Event, "evento", "", "tipo de evento")
	cmd.Flags().IntVar(&input.LocationID, "ubicacion", 0, "id de la ubicación")

	return cmd
}

func newTicketsCloseCommand(p *portal) *cobra.Command {
	var response string

	cmd := &cobra.Command{
		Use:   "close <id>",
		Short: "Cerrar un ticket con su respuesta final",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := ticketIDArg(args)
			if err != nil {
				return err
			}
			if _, err := p.ensureSession(cmd.Context()); err != nil {
				return err
			}
			if err := p.api.CloseTicket(cmd.Context(), id, response); err != nil {
				return err
			}
			fmt.Println("Ticket cerrado")
			return nil
		},
	}

	cmd.Flags().StringVar(&response, "respuesta", "", "respuesta final para el solicitante")

	return cmd
}

func newTicketsCancelCommand(p *portal) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancelar un ticket propio",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := ticketIDArg(args)
			if err != nil {
				return err
			}
			if _, err := p.ensureSession(cmd.Context()); err != nil {
				return err
			}
			if err := p.api.CancelTicket(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Println("Ticket cancelado")
			return nil
		},
	}
}

func newTicketsObserveCommand(p *portal) *cobra.Command {
	var text string

	cmd := &cobra.Command{
		Use:   "observe <id>",
		Short: "Agregar una observación al ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := ticketIDArg(args)
			if err != nil {
				return err
			}
			if _, err := p.ensureSession(cmd.Context()); err != nil {
				return err
			}
			if err := p.api.AddObservation(cmd.Context(), id, text); err != nil {
				return err
			}
			fmt.Println("Observación agregada")
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "texto", "", "contenido de la observación")

	return cmd
}

func newTicketsMemberCommand(p *portal) *cobra.Command {
	var userID int

	cmd := &cobra.Command{
		Use:   "member <id>",
		Short: "Agregar un integrante de soporte al ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := ticketIDArg(args)
			if err != nil {
				return err
			}
			if _, err := p.ensureSession(cmd.Context()); err != nil {
				return err
			}
			if userID <= 0 {
				return util.NewValidationError("debe indicar --usuario")
			}
			if err := p.api.AddMember(cmd.Context(), id, userID); err != nil {
				return err
			}
			fmt.Println("Integrante agregado")
			return nil
		},
	}

	cmd.Flags().IntVar(&userID, "usuario", 0, "id del usuario de soporte")

	return cmd
}
