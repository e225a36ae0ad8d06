package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/nikeshboopath-jpg/julius-baer-side-quest/internal/adapter/bankapi"
	"github.com/nikeshboopath-jpg/julius-baer-side-quest/internal/domain"
	"github.com/nikeshboopath-jpg/julius-baer-side-quest/internal/infrastructure/config"
	"github.com/nikeshboopath-jpg/julius-baer-side-quest/internal/infrastructure/logger"
	"github.com/nikeshboopath-jpg/julius-baer-side-quest/internal/usecase"
)

var (
	baseURL string
	timeout time.Duration
	dryRun  bool
	token   string
	retry   bool
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log.Logger = logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	rootCmd := &cobra.Command{
		Use:   "transfer",
		Short: "Money transfer client",
		Long:  `A command line client for the remote account service: validate accounts, check balances and submit transfers.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", cfg.Endpoint, "Base URL of the account service")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", cfg.Timeout, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "Bearer token for outgoing requests")
	rootCmd.PersistentFlags().BoolVar(&retry, "retry", cfg.RetryEnabled, "Retry transient failures on idempotent lookups")

	rootCmd.AddCommand(sendCmd(cfg))
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(balanceCmd())
	rootCmd.AddCommand(tokenCmd(cfg))

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func sendCmd(cfg *config.Config) *cobra.Command {
	var (
		from   string
		to     string
		amount string
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Submit a transfer between two accounts",
		Run: func(cmd *cobra.Command, args []string) {
			if err := runSend(cfg, from, to, amount); err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
		},
	}

	// Demo defaults for a quick manual run.
	cmd.Flags().StringVar(&from, "from", "ACC1000", "Source account")
	cmd.Flags().StringVar(&to, "to", "ACC1001", "Destination account")
	cmd.Flags().StringVar(&amount, "amount", "100.0", "Amount to transfer")
	cmd.Flags().BoolVar(&dryRun, "dry-run", cfg.DryRun, "Log the payload instead of calling the service")

	return cmd
}

// transferFn runs the orchestration against a freshly built client.
// Swapped in tests.
var transferFn = func(cfg *config.Config, input usecase.TransferInput) *domain.TransferResult {
	uc := usecase.NewTransferUseCase(buildClient(cfg), log.Logger, nil)
	return uc.Transfer(context.Background(), input)
}

// runSend executes the send command. The dry-run branch returns before
// any client is constructed, so it issues no network calls at all.
func runSend(cfg *config.Config, from, to, amount string) error {
	amt, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", amount, err)
	}

	log.Info().
		Str("endpoint", baseURL).
		Bool("dry_run", dryRun).
		Dur("timeout", timeout).
		Msg("configuration")

	if dryRun {
		payload := map[string]any{"fromAccount": from, "toAccount": to, "amount": amt}
		log.Info().Interface("payload", payload).Msg("dry-run enabled, no network call will be made")
		fmt.Println("Simulated transfer result:")
		printJSON(map[string]any{"status": "dry-run", "from": from, "to": to, "amount": amt})
		return nil
	}

	result := transferFn(cfg, usecase.TransferInput{
		FromAccount: from,
		ToAccount:   to,
		Amount:      amt,
	})

	switch {
	case result == nil:
		return errors.New("transfer did not happen, see log output for the cause")
	case result.Insufficient != nil:
		fmt.Println("Transfer rejected:")
		printJSON(result.Insufficient)
	default:
		fmt.Println("Transfer result:")
		printJSON(result.Payload)
	}

	return nil
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <account>",
		Short: "Check whether an account is valid",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			client := newClient()
			if err := client.ValidateAccount(context.Background(), args[0]); err != nil {
				fmt.Printf("Account %s is INVALID: %v\n", args[0], err)
				os.Exit(1)
			}
			fmt.Printf("Account %s is valid\n", args[0])
		},
	}
}

func balanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance <account>",
		Short: "Fetch an account balance",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			client := newClient()
			balance, err := client.AccountBalance(context.Background(), args[0])
			if err != nil {
				fmt.Printf("Error fetching balance: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Balance of %s: %s\n", args[0], balance)
		},
	}
}

func tokenCmd(cfg *config.Config) *cobra.Command {
	var (
		username string
		password string
		claim    string
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Obtain a bearer token from the account service",
		Run: func(cmd *cobra.Command, args []string) {
			client := newClient()
			tok, err := client.AuthToken(context.Background(), username, password, claim)
			if err != nil {
				fmt.Printf("Failed to obtain token: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(tok)
		},
	}

	cmd.Flags().StringVar(&username, "username", cfg.AuthUsername, "Username")
	cmd.Flags().StringVar(&password, "password", cfg.AuthPassword, "Password")
	cmd.Flags().StringVar(&claim, "claim", cfg.AuthClaim, "Token claim scope")

	return cmd
}

// buildClient resolves the bearer token for transfer runs: an explicit
// --token wins; otherwise, with credentials configured, one is fetched
// from the auth endpoint. A failed fetch is logged and the run proceeds
// without a token.
func buildClient(cfg *config.Config) *bankapi.Client {
	bearer := token
	if bearer == "" && cfg.AuthUsername != "" {
		fetched, err := newClient().AuthToken(context.Background(), cfg.AuthUsername, cfg.AuthPassword, cfg.AuthClaim)
		if err != nil {
			log.Error().Err(err).Msg("failed to obtain auth token, proceeding without one")
		} else {
			bearer = fetched
		}
	}

	opts := clientOptions()
	if bearer != "" {
		opts = append(opts, bankapi.WithBearerToken(bearer))
	}

	return bankapi.New(baseURL, timeout, opts...)
}

func newClient() *bankapi.Client {
	opts := clientOptions()
	if token != "" {
		opts = append(opts, bankapi.WithBearerToken(token))
	}
	return bankapi.New(baseURL, timeout, opts...)
}

func clientOptions() []bankapi.Option {
	opts := []bankapi.Option{bankapi.WithLogger(log.Logger)}
	if retry {
		opts = append(opts, bankapi.WithRetrier(bankapi.NewRetrier(log.Logger, nil)))
	}
	return opts
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%+v\n", v)
		return
	}
	fmt.Println(string(data))
}
