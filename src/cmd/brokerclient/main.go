package main

import (
	"context"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jiaming2012/broker-client/src/config"
	"github.com/jiaming2012/broker-client/src/eventpubsub"
	"github.com/jiaming2012/broker-client/src/eventservices"
	"github.com/jiaming2012/broker-client/src/formclient"
	"github.com/jiaming2012/broker-client/src/logger"
	"github.com/jiaming2012/broker-client/src/telemetry"
)

const publisherName = "brokerclient"

type App struct {
	Config     config.Config
	Controller *formclient.Controller
	Dispatcher *eventpubsub.Dispatcher
	shutdown   func(context.Context) error
}

func (a *App) Close() {
	if a.shutdown == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.shutdown(ctx); err != nil {
		log.Warnf("telemetry shutdown: %v", err)
	}
}

var app *App

// setupApp loads the environment and config, then wires the api client and controller to a dispatcher.
func setupApp(cmd *cobra.Command) (*App, error) {
	goEnv, err := cmd.Flags().GetString("go-env")
	if err != nil {
		return nil, err
	}

	envDir, err := cmd.Flags().GetString("env-dir")
	if err != nil {
		return nil, err
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	if err := config.InitEnvironmentVariables(envDir, goEnv); err != nil {
		return nil, err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if err := logger.Setup(os.Stderr, cfg.Logging.Level, cfg.Logging.Format); err != nil {
		return nil, err
	}

	a := &App{Config: cfg}

	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.Setup(cmd.Context(), cfg.Telemetry.ServiceName)
		if err != nil {
			return nil, err
		}
		a.shutdown = shutdown
	}

	api, err := eventservices.NewBrokerApiClient(cfg.Api.BaseURL, cfg.Api.Timeout, eventservices.WithRetries(cfg.Api.Retries))
	if err != nil {
		return nil, err
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	a.Controller = formclient.NewController(api, formclient.WithLocation(loc))
	a.Dispatcher = eventpubsub.NewDispatcher()
	if err := a.Controller.Bind(a.Dispatcher); err != nil {
		return nil, err
	}

	return a, nil
}

var rootCmd = &cobra.Command{
	Use:   "brokerclient",
	Short: "Log in to broker accounts and schedule orders",
	Long:  `This program talks to the broker order scheduling api, either as a web front end (serve) or from the command line.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		var err error
		if app, err = setupApp(cmd); err != nil {
			log.Fatalf("error setting up: %v", err)
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if app != nil {
			app.Close()
		}
	},
}

func main() {
	rootCmd.PersistentFlags().String("config", "", "Path to a yaml config file. Environment variables override its values.")
	rootCmd.PersistentFlags().String("env-dir", ".", "Directory holding the .env.<go-env> file.")
	rootCmd.PersistentFlags().String("go-env", "development", "The go environment to run the command in.")

	rootCmd.AddCommand(serveCmd, loginCmd, accountsCmd, stocksCmd, orderCmd, totalCmd, balanceCmd)

	cobra.CheckErr(rootCmd.Execute())
}
