package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"themekit/internal/events"
)

func newEventsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "Print theme change events from Valkey as JSON lines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			if !cfg.EventsEnabled() {
				return errors.New("VALKEY_HOST is not set")
			}

			client, err := events.ConnectValkey(cmd.Context(), cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
			if err != nil {
				return err
			}
			defer client.Close()

			sub := events.NewValkeyPublisher(client, cfg.EventsChannel)
			err = sub.Subscribe(cmd.Context(), printEvent(cmd.OutOrStdout()))
			if cmd.Context().Err() != nil {
				return nil
			}
			return err
		},
	}
}

// printEvent returns a callback writing each event as one JSON line.
func printEvent(w io.Writer) func(events.Event) {
	enc := json.NewEncoder(w)
	return func(e events.Event) {
		if err := enc.Encode(e); err != nil {
			fmt.Fprintln(w, "encode event:", err)
		}
	}
}
