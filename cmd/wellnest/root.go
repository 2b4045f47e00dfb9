package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"wellnest/tracker-api/internal/client"
)

var (
	serverURL   string
	sessionPath string
)

var rootCmd = &cobra.Command{
	Use:           "wellnest",
	Short:         "wellnest shows your WellNest tracker from the terminal",
	Long:          "wellnest logs in to a WellNest tracker server and shows weekly dashboards, watches them live and manages your log entries.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", envOr("WELLNEST_SERVER", "http://localhost:8080"), "Tracker server base URL")
	rootCmd.PersistentFlags().StringVar(&sessionPath, "session", "", "Path to the session file (default: user config dir)")
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func resolveSessionPath() (string, error) {
	if strings.TrimSpace(sessionPath) != "" {
		return sessionPath, nil
	}
	return client.DefaultSessionPath()
}

// authedClient builds an API client from the saved session. An explicit
// --server flag wins over the server stored at login.
func authedClient(cmd *cobra.Command) (*client.Client, error) {
	path, err := resolveSessionPath()
	if err != nil {
		return nil, err
	}
	session, err := client.LoadSession(path)
	if err != nil {
		return nil, err
	}
	base := session.Server
	if cmd.Flags().Changed("server") || base == "" {
		base = serverURL
	}
	return client.New(base, session.Token), nil
}
