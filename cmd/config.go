package cmd

import (
	"fmt"
	"strconv"
	"strings"

	cfgpkg "github.com/KaramelBytes/csvstar/internal/config"
	"github.com/KaramelBytes/csvstar/internal/csvio"
	"github.com/KaramelBytes/csvstar/internal/logging"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set csvstar configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := activeConfig()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "delimiter: %s\n", c.Delimiter)
		fmt.Fprintf(out, "quote_char: %s\n", c.QuoteChar)
		if c.EscapeChar != "" {
			fmt.Fprintf(out, "escape_char: %s\n", c.EscapeChar)
		}
		if c.CommentChar != "" {
			fmt.Fprintf(out, "comment_char: %s\n", c.CommentChar)
		}
		fmt.Fprintf(out, "encoding: %s\n", c.Encoding)
		fmt.Fprintf(out, "trim_fields: %t\n", c.TrimFields)
		fmt.Fprintf(out, "flexible: %t\n", c.Flexible)
		fmt.Fprintf(out, "top_k: %d\n", c.TopK)
		fmt.Fprintf(out, "stat_format: %s\n", c.StatFormat)
		fmt.Fprintf(out, "log_level: %s\n", c.LogLevel)
		fmt.Fprintf(out, "log_format: %s\n", c.LogFormat)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		if err := setConfigValue(cfg, key, val); err != nil {
			return err
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func setConfigValue(c *cfgpkg.Global, key, val string) error {
	switch key {
	case "delimiter", "quote_char", "escape_char", "comment_char":
		if _, err := csvio.ParseChar(val); err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
		switch key {
		case "delimiter":
			c.Delimiter = val
		case "quote_char":
			c.QuoteChar = val
		case "escape_char":
			c.EscapeChar = val
		default:
			c.CommentChar = val
		}
	case "encoding":
		if err := csvio.CheckEncoding(val); err != nil {
			return err
		}
		c.Encoding = val
	case "trim_fields", "flexible":
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("invalid bool for %s: %v", key, val)
		}
		if key == "flexible" {
			c.Flexible = b
		} else {
			c.TrimFields = b
		}
	case "top_k":
		i, err := strconv.Atoi(val)
		if err != nil || i < 0 {
			return fmt.Errorf("invalid int for top_k: %v", val)
		}
		c.TopK = i
	case "stat_format":
		f := strings.ToLower(val)
		if !validStatFormat(f) {
			return fmt.Errorf("invalid stat_format: %s (use %s)", val, strings.Join(statFormats, "|"))
		}
		c.StatFormat = f
	case "log_level":
		switch strings.ToLower(val) {
		case "debug", "info", "warn", "error":
			c.LogLevel = strings.ToLower(val)
		default:
			return fmt.Errorf("invalid log_level: %s (use debug|info|warn|error)", val)
		}
	case "log_format":
		switch strings.ToLower(val) {
		case "text", "json":
			c.LogFormat = strings.ToLower(val)
		default:
			return fmt.Errorf("invalid log_format: %s (use text or json)", val)
		}
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	logging.WithFields("cmd", "config").Debug("config value set", "key", key)
	return nil
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
