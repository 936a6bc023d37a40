package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/romashorodok/salon-platform/internal/client"
	"github.com/romashorodok/salon-platform/internal/salon"
	"github.com/spf13/cobra"
)

type app struct {
	cfg    client.Config
	api    *client.API
	store  *salon.Store
	logger *slog.Logger
}

func (a *app) load(cmd *cobra.Command, _ []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	cfg, err := client.LoadConfig(a.logger)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg
	a.api = client.NewAPI(cfg.TokenServerURL)

	a.store = salon.NewStore(a.logger)
	a.store.Seed()
	return nil
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:               "salonctl",
		Short:             "Browse salons and their live participant counts",
		SilenceUsage:      true,
		PersistentPreRunE: a.load,
	}
	root.PersistentFlags().BoolP("verbose", "v", false, "debug logging")

	root.AddCommand(
		newListCmd(a),
		newLobbyCmd(a),
		newTokenCmd(a),
		newWatchCmd(a),
	)
	return root
}

func newListCmd(a *app) *cobra.Command {
	var follow bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List active salons with provider counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			poller := client.NewListPoller(a.store, a.api, a.cfg.ListInterval, a.logger)
			if !follow {
				if _, err := poller.Poll(cmd.Context()); err != nil {
					return err
				}
				return client.RenderSalonList(cmd.OutOrStdout(), a.store)
			}

			a.store.OnChange(func() {
				if err := client.RenderSalonList(cmd.OutOrStdout(), a.store); err != nil {
					a.logger.Error("render salon list", slog.String("err", err.Error()))
				}
			})
			if err := client.RenderSalonList(cmd.OutOrStdout(), a.store); err != nil {
				return err
			}
			poller.Run(cmd.Context())
			return nil
		},
	}
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "keep polling and re-render on change")
	return cmd
}

func newLobbyCmd(a *app) *cobra.Command {
	var follow bool
	cmd := &cobra.Command{
		Use:   "lobby <salon-id>",
		Short: "Show who is chatting in a salon before joining",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			salonID := args[0]
			if _, ok := a.store.Salon(salonID); !ok {
				return fmt.Errorf("%w: %s", salon.ErrSalonNotFound, salonID)
			}

			render := func(count int) {
				if err := client.RenderLobby(cmd.OutOrStdout(), a.store, salonID, count); err != nil {
					a.logger.Error("render lobby", slog.String("err", err.Error()))
				}
			}
			poller := client.NewLobbyPoller(client.NewLobbyPollerParams{
				Store:    a.store,
				Source:   a.api,
				SalonID:  salonID,
				Interval: a.cfg.LobbyInterval,
				OnCount:  render,
				Logger:   a.logger,
			})

			if !follow {
				_, err := poller.Poll(cmd.Context())
				return err
			}
			poller.Run(cmd.Context())
			return nil
		},
	}
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "keep polling")
	return cmd
}

func newTokenCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "token <salon-id> <participant-name>",
		Short: "Fetch a join token for a salon",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := a.api.Token(cmd.Context(), salon.RoomName(args[0]), args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
}

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print salon change notifications from the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := a.api.Watch(cmd.Context(), func() {
				fmt.Fprintln(cmd.OutOrStdout(), "update-salons")
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
