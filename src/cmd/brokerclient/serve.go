package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jiaming2012/broker-client/src/render"
	"github.com/jiaming2012/broker-client/src/webapp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the login and order pages",
	Run: func(cmd *cobra.Command, args []string) {
		renderer, err := render.NewHTMLRenderer()
		if err != nil {
			log.Fatalf("error creating renderer: %v", err)
		}

		sessions := webapp.NewSessionStore(app.Config.Server.SessionTTL)
		srv := webapp.NewServer(app.Controller, renderer, sessions)

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		// Create channel for shutdown signals.
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt)
		signal.Notify(stop, syscall.SIGTERM)

		go func() {
			<-stop
			cancel()
		}()

		if err := srv.Run(ctx, app.Config.Server.Addr); err != nil {
			log.Fatalf("error running server: %v", err)
		}
	},
}
