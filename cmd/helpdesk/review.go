package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/azauting/hospitalcm/internal/review"
)

func newReviewCommand(p *portal) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Revisar tickets: clasificar, asignar soporte y finalizar",
	}

	cmd.AddCommand(newReviewClassifyCommand(p))
	cmd.AddCommand(newReviewAssignCommand(p))
	cmd.AddCommand(newReviewFinishCommand(p))

	return cmd
}

func (p *portal) loadWorkflow(cmd *cobra.Command, id int, onFinalized func()) (*review.Workflow, error) {
	if _, err := p.ensureSession(cmd.Context()); err != nil {
		return nil, err
	}
	wf := review.New(p.api, p.log, nil, onFinalized)
	if err := wf.Load(cmd.Context(), id); err != nil {
		return nil, err
	}
	return wf, nil
}

func newReviewClassifyCommand(p *portal) *cobra.Command {
	var unitID, priorityID int

	cmd := &cobra.Command{
		Use:   "classify <id>",
		Short: "Guardar unidad y prioridad del ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := ticketIDArg(args)
			if err != nil {
				return err
			}
			wf, err := p.loadWorkflow(cmd, id, nil)
			if err != nil {
				return err
			}
			if err := wf.SaveClassification(cmd.Context(), unitID, priorityID); err != nil {
				return err
			}
			fmt.Printf("Ticket #%d clasificado: ahora puede asignar soporte o finalizar la revisión\n", id)
			return nil
		},
	}

	cmd.Flags().IntVar(&unitID, "unidad", 0, "id de la unidad responsable")
	cmd.Flags().IntVar(&priorityID, "prioridad", 0, "id de la prioridad")

	return cmd
}

func newReviewAssignCommand(p *portal) *cobra.Command {
	var supportID int

	cmd := &cobra.Command{
		Use:   "assign <id>",
		Short: "Asignar un soporte al ticket clasificado",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := ticketIDArg(args)
			if err != nil {
				return err
			}
			wf, err := p.loadWorkflow(cmd, id, nil)
			if err != nil {
				return err
			}
			if err := wf.AssignSupport(cmd.Context(), supportID); err != nil {
				return err
			}
			fmt.Printf("Soporte %d asignado al ticket #%d\n", supportID, id)
			return nil
		},
	}

	cmd.Flags().IntVar(&supportID, "soporte", 0, "id del usuario de soporte")

	return cmd
}

func newReviewFinishCommand(p *portal) *cobra.Command {
	return &cobra.Command{
		Use:   "finish <id>",
		Short: "Finalizar la revisión del ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := ticketIDArg(args)
			if err != nil {
				return err
			}

			done := make(chan struct{})
			wf, err := p.loadWorkflow(cmd, id, func() { close(done) })
			if err != nil {
				return err
			}
			defer wf.Stop()

			advisory, err := wf.FinalizeReview(cmd.Context())
			if err != nil {
				return err
			}
			if advisory != "" {
				fmt.Println("Aviso:", advisory)
			}
			fmt.Printf("Revisión del ticket #%d finalizada\n", id)

			// The confirmation stays on screen for the redirect delay.
			select {
			case <-done:
			case <-time.After(2 * review.RedirectDelay):
			case <-cmd.Context().Done():
			}
			return nil
		},
	}
}
