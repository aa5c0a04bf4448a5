// If you are AI: This file wires the cobra/pflag/viper CLI surface for
// wsmedia-dump, grounded on jmylchreest-tvarr's cmd/*/cmd/root.go shape
// (root-command flags bound through viper, a single root command with no
// subcommands since this tool has exactly one job).
package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"wsmedia/internal/config"
	"wsmedia/internal/transport"
	"wsmedia/internal/transport/registerall"
	"wsmedia/internal/xlog"
)

var v = viper.New()

var rootCmd = &cobra.Command{
	Use:   "wsmedia-dump",
	Short: "Connect to a WebSocket FLV/fMP4 stream and log each record",
	Long: `wsmedia-dump connects to a ws:// or wss:// stream URL, selects the
matching transport (plain FLV, plain fMP4, or reactive fMP4), and logs
one line per record received until interrupted or --max-records is hit.`,
	RunE: runDump,
}

// init registers the command's flags and binds them into viper.
func init() {
	rootCmd.Flags().String("url", "", "stream URL (ws://... or wss://...)")
	rootCmd.Flags().String("config", "", "optional YAML config path")
	rootCmd.Flags().Bool("insecure-tls", false, "accept self-signed/expired wss certificates")
	rootCmd.Flags().Int("max-records", 0, "stop after N records (0 = unbounded)")

	_ = v.BindPFlag("url", rootCmd.Flags().Lookup("url"))
	_ = v.BindPFlag("insecure_tls", rootCmd.Flags().Lookup("insecure-tls"))
	_ = v.BindPFlag("max_records", rootCmd.Flags().Lookup("max-records"))
	v.SetEnvPrefix("WSMEDIA")
	v.AutomaticEnv()
}

// logExplicitFlags reports which flags the user actually set on the
// command line, as opposed to ones left at their default value, useful
// when debugging why a run picked up an unexpected URL or policy.
func logExplicitFlags(fs *pflag.FlagSet) []string {
	var set []string
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			set = append(set, f.Name)
		}
	})
	return set
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// runDump resolves the effective TLS policy and session config from
// flags and optional YAML config, then hands off to dumpLoop.
func runDump(cmd *cobra.Command, args []string) error {
	url := v.GetString("url")
	if url == "" {
		return fmt.Errorf("--url is required")
	}

	policy := transport.DefaultTLSPolicy()
	sessionCfg := config.SessionConfig{ReconnectAttempts: 3, ReconnectDelayMS: 1000}
	logLevel := "info"
	configPath, _ := cmd.Flags().GetString("config")
	if configPath != "" {
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		policy = cfg.TLSPolicy()
		sessionCfg = cfg.Session
		logLevel = cfg.LogLevel
	}
	if v.GetBool("insecure_tls") {
		policy = transport.InsecureTLSPolicy()
	}

	sess := xlog.NewSessionWithLevel(logLevel)
	sess.Printf("connecting to %s (flags set: %v)", url, logExplicitFlags(cmd.Flags()))

	registry := transport.NewRegistry()
	registerall.Register(registry, policy)

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	maxRecords := v.GetInt("max_records")
	return dumpLoop(ctx, sess, registry, url, maxRecords, sessionCfg)
}

// dumpLoop is defined in dump.go to keep cobra wiring and session
// driving in separate files: flag parsing here, business logic there.
