package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/azauting/hospitalcm/internal/feed"
)

func newFeedCommand(p *portal) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Actividad reciente del sistema",
	}
	cmd.AddCommand(newFeedWatchCommand(p))
	return cmd
}

func newFeedWatchCommand(p *portal) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Seguir los movimientos recientes hasta interrumpir con Ctrl-C",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := p.ensureSession(cmd.Context()); err != nil {
				return err
			}

			poller := feed.NewPoller(p.api, p.log, p.cfg.Feed.PollInterval())
			render := func() {
				for _, m := range poller.Movements() {
					fmt.Printf("[%s] ticket #%d · %s · %s\n",
						m.At.Format("15:04:05"), m.TicketID, m.Kind, m.ActorName)
				}
				fmt.Println("---")
			}

			if poller.Poll(cmd.Context()) {
				render()
			}
			runFeedLoop(cmd, poller, p.cfg.Feed.PollInterval(), render)

			if poller.SessionExpired() {
				fmt.Println("La sesión expiró; vuelva a iniciar sesión.")
			}
			return nil
		},
	}
}

// runFeedLoop mirrors Poller.Run but re-renders whenever a poll replaces the
// held list.
func runFeedLoop(cmd *cobra.Command, poller *feed.Poller, interval time.Duration, render func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-cmd.Context().Done():
			return
		case <-ticker.C:
			if poller.Poll(cmd.Context()) {
				render()
			}
			if poller.SessionExpired() {
				return
			}
		}
	}
}
