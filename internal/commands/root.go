// Package commands provides CLI commands for coinchat.
package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diogo/coinchat/internal/config"
	apierrors "github.com/diogo/coinchat/internal/errors"
	"github.com/diogo/coinchat/internal/logger"
)

var (
	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// errAnalysisFailed reports a non-success outcome that was already shown
var errAnalysisFailed = errors.New("analysis failed")

// globalFlags override the config file for a single run
type globalFlags struct {
	server   string
	interval string
	lookback int
	timeout  int
	proxy    string
}

// overrides maps persistent flag names to config keys
var overrides = []struct {
	flag string
	key  string
}{
	{"server", "server_url"},
	{"interval", "interval"},
	{"lookback", "lookback_period"},
	{"timeout", "timeout_seconds"},
	{"proxy", "proxy"},
}

// loadConfig returns the effective config: file, then environment, then flags
func (g *globalFlags) loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v, using defaults\n", err)
		logger.Warn("config load failed", "err", err)
	}

	values := map[string]string{
		"server":   g.server,
		"interval": g.interval,
		"lookback": strconv.Itoa(g.lookback),
		"timeout":  strconv.Itoa(g.timeout),
		"proxy":    g.proxy,
	}
	for _, o := range overrides {
		if !cmd.Flags().Changed(o.flag) {
			continue
		}
		if err := config.Set(&cfg, o.key, values[o.flag]); err != nil {
			return cfg, fmt.Errorf("--%s: %w", o.flag, err)
		}
	}

	return cfg, nil
}

// NewRootCmd creates the coinchat command tree
func NewRootCmd(deps *Dependencies) *cobra.Command {
	g := &globalFlags{}
	q := &queryFlags{}

	cmd := &cobra.Command{
		Use:   "coinchat [symbol]",
		Short: "Chat with a market analysis service",
		Long: `coinchat asks a market analysis service for a prediction on a coin pair
and shows the exchange as chat bubbles.

Examples:
  coinchat chat                         Start interactive chat
  coinchat BTCUSDT                      Analyze a single pair
  echo ethusdt | coinchat               Read the pair from stdin
  coinchat BTCUSDT --raw                Print only the bot reply
  coinchat BTCUSDT -o prediction.txt    Save the reply to file
  coinchat config set server_url http://localhost:8000`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Fprintf(cmd.OutOrStdout(), "coinchat %s (built %s)\n", Version, BuildTime)
				return nil
			}

			if len(args) > 0 {
				return runQuery(cmd, deps, g, q, args[0])
			}

			symbol, ok, err := readStdin(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			if ok {
				return runQuery(cmd, deps, g, q, symbol)
			}

			// No input - show help
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&g.server, "server", "", "Analysis server URL (default from config)")
	cmd.PersistentFlags().StringVar(&g.interval, "interval", "", "Candle interval sent with each request (e.g. 1m, 1h)")
	cmd.PersistentFlags().IntVar(&g.lookback, "lookback", 0, "Number of candles the server should look back")
	cmd.PersistentFlags().IntVar(&g.timeout, "timeout", 0, "Request timeout in seconds (0 waits forever)")
	cmd.PersistentFlags().StringVar(&g.proxy, "proxy", "", "HTTP proxy URL")
	cmd.Flags().BoolVar(&q.raw, "raw", false, "Print only the bot reply")
	cmd.Flags().StringVarP(&q.output, "output", "o", "", "Save the prediction to file")
	cmd.Flags().BoolVar(&q.copy, "copy", false, "Copy the prediction to the clipboard")
	cmd.Flags().BoolP("version", "v", false, "Show version and exit")

	cmd.AddCommand(NewChatCmd(deps, g))
	cmd.AddCommand(NewConfigCmd(deps))

	return cmd
}

// readStdin returns the first line of piped input. ok is false when stdin
// is a terminal or empty.
func readStdin(in io.Reader) (string, bool, error) {
	if f, isFile := in.(*os.File); isFile {
		stat, err := f.Stat()
		if err != nil || (stat.Mode()&os.ModeCharDevice) != 0 {
			return "", false, nil
		}
	}

	data, err := io.ReadAll(io.LimitReader(in, 4096))
	if err != nil {
		return "", false, err
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", false, nil
	}
	line, _, _ := strings.Cut(text, "\n")
	return line, true, nil
}

// rootCmd represents the base command
var rootCmd = NewRootCmd(NewDependencies())

// Execute runs the root command
func Execute() {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errAnalysisFailed) && !errors.Is(err, apierrors.ErrEmptySymbol) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	logger.Close()
	if err != nil {
		os.Exit(1)
	}
}
