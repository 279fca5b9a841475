package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"

	"wallet-state/core/config"
	"wallet-state/core/logger"
	"wallet-state/feature/snapshot"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var cookieFlag bool

// snapshotCmd represents the snapshot command
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Inspect and convert persisted wallet snapshots",
	Long:  `Decodes, encodes and migrates wallet snapshots in the compact and legacy formats.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// snapshotDecodeCmd represents the snapshot decode command
var snapshotDecodeCmd = &cobra.Command{
	Use:   "decode [value]",
	Short: "Decode a snapshot value",
	Long:  `Decodes a stored snapshot (from the argument or stdin) and prints it as JSON with its detected format. Use --cookie for URL-encoded cookie values.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := readInput(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}

		snap, format := snapshot.Decode(raw)
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"format":   format,
			"bytes":    len(raw),
			"snapshot": snap,
		})
	},
}

// snapshotEncodeCmd represents the snapshot encode command
var snapshotEncodeCmd = &cobra.Command{
	Use:   "encode [json]",
	Short: "Encode a snapshot in the compact format",
	Long:  `Reads a snapshot as JSON (the output of decode) and prints its compact encoding. Use --cookie to URL-encode the result.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := readInput(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}

		snap := snapshot.Default()
		if err := json.Unmarshal([]byte(raw), &snap); err != nil {
			return fmt.Errorf("failed to parse snapshot: %w", err)
		}

		encoded, err := snapshot.Encode(snap)
		if err != nil {
			return err
		}
		if len(encoded) > snapshot.DefaultBudget {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: snapshot is %d bytes, budget is %d\n", len(encoded), snapshot.DefaultBudget)
		}
		if cookieFlag {
			encoded = url.PathEscape(encoded)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), encoded)
		return err
	},
}

// snapshotMigrateCmd represents the snapshot migrate command
var snapshotMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Rewrite the stored snapshot in the compact format",
	Long:  `Loads the snapshot from the configured storage medium. Legacy values are rewritten in the compact format.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		cfg, err := config.LoadConfig(configDir)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer logg.Sync()

		medium, err := openMedium(ctx, cfg, logg)
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}

		store := snapshot.NewStore(ctx, medium, snapshot.StoreOptions{
			Key:    cfg.Hydration.StorageKey,
			Budget: cfg.Hydration.SnapshotBudget,
			Logger: logg,
		})
		defer store.Close()

		snap := store.Snapshot()
		logg.Info("Snapshot checked",
			zap.String("key", cfg.Hydration.StorageKey),
			zap.String("format", string(store.Format())),
			zap.Int("wallets", len(snap.Wallets)),
			zap.Int("accounts", len(snap.Accounts)),
		)
		return nil
	},
}

func readInput(stdin io.Reader, args []string) (string, error) {
	var raw string
	if len(args) == 1 {
		raw = args[0]
	} else {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		raw = string(data)
	}
	raw = strings.TrimSpace(raw)

	if cookieFlag {
		decoded, err := url.PathUnescape(raw)
		if err != nil {
			return "", fmt.Errorf("failed to decode cookie value: %w", err)
		}
		raw = decoded
	}
	return raw, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func init() {
	RootCmd.AddCommand(snapshotCmd)
	snapshotCmd.AddCommand(snapshotDecodeCmd)
	snapshotCmd.AddCommand(snapshotEncodeCmd)
	snapshotCmd.AddCommand(snapshotMigrateCmd)

	snapshotCmd.PersistentFlags().BoolVar(&cookieFlag, "cookie", false, "Treat values as URL-encoded cookie values")
}
