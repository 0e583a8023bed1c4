package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Protocol-Lattice/docassist/pkg/credentials"
)

func keyCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage provider API keys (slots: text, image)",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <text|image> <value>",
		Short: "Store a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !credentials.ValidSlot(args[0]) {
				return fmt.Errorf("%w: %s", credentials.ErrUnknownSlot, args[0])
			}
			a, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.store.Set(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s key saved: %s\n", args[0], credentials.Mask(args[1]))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear <text|image>",
		Short: "Remove a stored key",
		Long: `Remove a stored key.

With credentials.use_env enabled (the default) a cleared slot still resolves
from DEEPSEEK_API_KEY or GEMINI_API_KEY when that variable is set.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !credentials.ValidSlot(args[0]) {
				return fmt.Errorf("%w: %s", credentials.ErrUnknownSlot, args[0])
			}
			a, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.store.Clear(cmd.Context(), args[0]); err != nil {
				return err
			}
			origin, err := keyOrigin(cmd.Context(), a.store, args[0])
			if err != nil {
				return err
			}
			if origin != "" && origin != "store" {
				fmt.Fprintf(cmd.OutOrStdout(), "%s key cleared (still set by %s)\n", args[0], origin)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s key cleared\n", args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show [text|image]",
		Short: "Show masked keys",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slots := credentials.Slots()
			if len(args) == 1 {
				if !credentials.ValidSlot(args[0]) {
					return fmt.Errorf("%w: %s", credentials.ErrUnknownSlot, args[0])
				}
				slots = args
			}
			a, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer a.close()

			for _, slot := range slots {
				v, err := a.store.Get(cmd.Context(), slot)
				if err != nil {
					return err
				}
				origin, err := keyOrigin(cmd.Context(), a.store, slot)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatKeyLine(slot, v, origin))
			}
			return nil
		},
	})

	return cmd
}

// keyOrigin reports where a slot's value comes from. Stores without an env
// fallback only ever hold stored values.
func keyOrigin(ctx context.Context, store credentials.Store, slot string) (string, error) {
	if es, ok := store.(*credentials.EnvStore); ok {
		return es.Origin(ctx, slot)
	}
	v, err := store.Get(ctx, slot)
	if err != nil || v == "" {
		return "", err
	}
	return "store", nil
}

func formatKeyLine(slot, value, origin string) string {
	masked := credentials.Mask(value)
	switch {
	case masked == "":
		return fmt.Sprintf("%-6s (not set)", slot)
	case origin != "" && origin != "store":
		return fmt.Sprintf("%-6s %s (from %s)", slot, masked, origin)
	default:
		return fmt.Sprintf("%-6s %s", slot, masked)
	}
}
