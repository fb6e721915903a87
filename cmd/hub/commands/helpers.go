package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/fivetwenty-io/hubapi/internal/constants"
	"github.com/fivetwenty-io/hubapi/pkg/hub"
	"github.com/fivetwenty-io/hubapi/pkg/hubclient"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Output format constants.
const (
	OutputFormatJSON  = "json"
	OutputFormatYAML  = "yaml"
	OutputFormatTable = "table"
)

// createClient builds a Hub client from viper-resolved flags and config.
func createClient(ctx context.Context) (hub.Client, error) {
	server := viper.GetString("server")
	if server == "" {
		return nil, constants.ErrNoServerConfigured
	}

	token := viper.GetString("token")
	bearer := viper.GetString("bearer_token")

	if token == "" && bearer == "" {
		return nil, constants.ErrNoTokenConfigured
	}

	config := &hub.Config{
		ServerURL:     server,
		APIToken:      token,
		BearerToken:   bearer,
		SkipTLSVerify: viper.GetBool("insecure"),
		Debug:         viper.GetBool("verbose"),
	}

	if config.Debug {
		config.Logger = NewCLILogger()
	}

	return hubclient.New(ctx, config)
}

// renderStructured writes v as JSON or YAML to stdout. Table formats are
// handled per command.
func renderStructured(v interface{}) error {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")

		err := encoder.Encode(v)
		if err != nil {
			return fmt.Errorf("encoding to JSON: %w", err)
		}

		return nil
	case OutputFormatYAML:
		encoder := yaml.NewEncoder(os.Stdout)

		err := encoder.Encode(v)
		if err != nil {
			return fmt.Errorf("encoding to YAML: %w", err)
		}

		return nil
	default:
		return nil
	}
}

// isTableOutput reports whether the table renderer should run.
func isTableOutput() bool {
	format := viper.GetString("output")

	return format != OutputFormatJSON && format != OutputFormatYAML
}

// parsePeriod parses durations like "7d" or "36h" into a time.Duration.
func parsePeriod(period string) (time.Duration, error) {
	if len(period) < 2 {
		return 0, fmt.Errorf("%w: %q", constants.ErrInvalidPeriod, period)
	}

	value, err := strconv.Atoi(period[:len(period)-1])
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%w: %q", constants.ErrInvalidPeriod, period)
	}

	switch period[len(period)-1] {
	case 'd':
		return time.Duration(value) * 24 * time.Hour, nil
	case 'h':
		return time.Duration(value) * time.Hour, nil
	default:
		return 0, fmt.Errorf("%w: %q", constants.ErrInvalidPeriod, period)
	}
}

// flattenText collapses newlines so multi-line values fit CSV and table cells.
func flattenText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", " ")
	text = strings.ReplaceAll(text, "\n", " ")

	return strings.TrimSpace(text)
}

// formatTime renders a timestamp for display, tolerating nil.
func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}

	return t.UTC().Format(constants.TimestampLayout)
}

// sortedKeys returns a map's keys in stable order.
func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

// CLILogger writes structured log lines to stderr.
type CLILogger struct{}

// NewCLILogger creates a logger for CLI verbose output.
func NewCLILogger() *CLILogger {
	return &CLILogger{}
}

func (l *CLILogger) log(level, msg string, fields map[string]interface{}) {
	line := level + " " + msg

	for _, key := range sortedKeys(fields) {
		line += fmt.Sprintf(" %s=%v", key, fields[key])
	}

	fmt.Fprintln(os.Stderr, line)
}

// Debug logs at debug level.
func (l *CLILogger) Debug(msg string, fields map[string]interface{}) {
	l.log("DEBUG", msg, fields)
}

// Info logs at info level.
func (l *CLILogger) Info(msg string, fields map[string]interface{}) {
	l.log("INFO", msg, fields)
}

// Warn logs at warn level.
func (l *CLILogger) Warn(msg string, fields map[string]interface{}) {
	l.log("WARN", msg, fields)
}

// Error logs at error level.
func (l *CLILogger) Error(msg string, fields map[string]interface{}) {
	l.log("ERROR", msg, fields)
}
