package main

import (
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jiaming2012/broker-client/src/eventpubsub"
	"github.com/jiaming2012/broker-client/src/export"
	"github.com/jiaming2012/broker-client/src/models"
	"github.com/jiaming2012/broker-client/src/prompt"
	"github.com/jiaming2012/broker-client/src/render"
	"github.com/jiaming2012/broker-client/src/view"
)

func exitOnError(m view.Message) {
	render.WriteMessage(os.Stdout, m)
	if m.IsError() {
		os.Exit(1)
	}
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to a broker account. Missing fields are prompted for.",
	Run: func(cmd *cobra.Command, args []string) {
		username, _ := cmd.Flags().GetString("username")
		password, _ := cmd.Flags().GetString("password")
		broker, _ := cmd.Flags().GetString("broker")

		form, err := prompt.AskLoginForm(cmd.Context(), prompt.NewSurveyPrompter(), models.LoginForm{
			Username: username,
			Password: password,
			Broker:   broker,
		})
		if err != nil {
			log.Fatalf("error reading login: %v", err)
		}

		page := view.NewLoginPage()
		if err := app.Dispatcher.Publish(publisherName, eventpubsub.LoginSubmitted, cmd.Context(), page, form); err != nil {
			log.Fatalf("error publishing login: %v", err)
		}

		exitOnError(page.Message)
	},
}

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "List the logged in accounts",
	Run: func(cmd *cobra.Command, args []string) {
		page := view.NewOrderPage()
		if err := app.Dispatcher.Publish(publisherName, eventpubsub.OrderPageReady, cmd.Context(), page); err != nil {
			log.Fatalf("error publishing accounts: %v", err)
		}

		if page.Message.IsError() {
			exitOnError(page.Message)
		}

		render.WriteAccounts(os.Stdout, page.Accounts)
	},
}

var stocksCmd = &cobra.Command{
	Use:   "stocks",
	Short: "Search stocks by label",
	Run: func(cmd *cobra.Command, args []string) {
		label, _ := cmd.Flags().GetString("label")
		outDir, _ := cmd.Flags().GetString("out")

		page := view.NewOrderPage()
		if err := app.Dispatcher.Publish(publisherName, eventpubsub.StockSearch, cmd.Context(), page, models.StockQuery{Label: label}); err != nil {
			log.Fatalf("error publishing stock search: %v", err)
		}

		if page.Message.IsError() {
			exitOnError(page.Message)
		}

		if err := render.WriteStockRows(os.Stdout, page.Rows); err != nil {
			log.Fatalf("error writing stocks: %v", err)
		}

		if outDir != "" {
			path, err := export.StocksToCsv(outDir, page.Results(), "stocks", time.Now())
			if err != nil {
				log.Fatalf("error exporting stocks: %v", err)
			}

			log.Infof("exported %d stocks to %s", len(page.Rows), path)
		}
	},
}

func orderFormFromFlags(cmd *cobra.Command) models.OrderForm {
	account, _ := cmd.Flags().GetString("account")
	isin, _ := cmd.Flags().GetString("isin")
	price, _ := cmd.Flags().GetString("price")
	count, _ := cmd.Flags().GetString("count")
	deadline, _ := cmd.Flags().GetString("deadline")

	return models.OrderForm{
		Account:  account,
		Isin:     isin,
		Price:    price,
		Count:    count,
		Deadline: deadline,
	}
}

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Schedule an order",
	Run: func(cmd *cobra.Command, args []string) {
		page := view.NewOrderPage()
		if err := app.Dispatcher.Publish(publisherName, eventpubsub.OrderSubmitted, cmd.Context(), page, orderFormFromFlags(cmd)); err != nil {
			log.Fatalf("error publishing order: %v", err)
		}

		log.Infof("total price: %s", page.TotalPrice)
		exitOnError(page.Message)
	},
}

var totalCmd = &cobra.Command{
	Use:   "total",
	Short: "Print price × count",
	Run: func(cmd *cobra.Command, args []string) {
		page := view.NewOrderPage()
		if err := app.Dispatcher.Publish(publisherName, eventpubsub.OrderTotal, page, orderFormFromFlags(cmd)); err != nil {
			log.Fatalf("error publishing total: %v", err)
		}

		os.Stdout.WriteString(page.TotalPrice + "\n")
	},
}

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Print the balance of an account",
	Run: func(cmd *cobra.Command, args []string) {
		account, _ := cmd.Flags().GetString("account")
		if account == "" {
			exitOnError(view.MessageFor(models.NewValidationError(models.AccountRequiredErr)))
		}

		page := view.NewOrderPage()
		if err := app.Dispatcher.Publish(publisherName, eventpubsub.AccountBalance, cmd.Context(), page, account); err != nil {
			log.Fatalf("error publishing balance: %v", err)
		}

		if page.Message.IsError() {
			exitOnError(page.Message)
		}

		os.Stdout.WriteString(page.Balance + "\n")
	},
}

func init() {
	loginCmd.Flags().StringP("username", "u", "", "Account username.")
	loginCmd.Flags().StringP("password", "p", "", "Account password. Prompted for when empty.")
	loginCmd.Flags().StringP("broker", "b", "", "Broker name, e.g. TAVANA.")

	stocksCmd.Flags().StringP("label", "l", "", "Stock label to search for. This flag is required.")
	stocksCmd.Flags().StringP("out", "o", "", "Directory to export the results to as csv.")
	stocksCmd.MarkFlagRequired("label")

	for _, cmd := range []*cobra.Command{orderCmd, totalCmd} {
		cmd.Flags().String("price", "", "Price per share.")
		cmd.Flags().String("count", "", "Number of shares.")
	}

	orderCmd.Flags().StringP("account", "a", "", "Username of the account placing the order. This flag is required.")
	orderCmd.Flags().String("isin", "", "ISIN of the stock. This flag is required.")
	orderCmd.Flags().StringP("deadline", "d", "", "Deadline, e.g. '2024-05-01T09:30' in the configured timezone, or RFC 3339.")

	balanceCmd.Flags().StringP("account", "a", "", "Username of the account. This flag is required.")
}
