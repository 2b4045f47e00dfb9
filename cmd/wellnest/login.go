package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"wellnest/tracker-api/internal/client"
)

var (
	loginEmail    string
	loginPassword string
	signupName    string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and remember the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := passwordOrEnv()
		if err != nil {
			return err
		}
		c := client.New(serverURL, "")
		res, err := c.Login(cmd.Context(), loginEmail, password)
		if err != nil {
			return err
		}
		return saveSession(cmd, res)
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account and log in",
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := passwordOrEnv()
		if err != nil {
			return err
		}
		if strings.TrimSpace(signupName) == "" {
			return fmt.Errorf("--name is required")
		}
		c := client.New(serverURL, "")
		res, err := c.Signup(cmd.Context(), signupName, loginEmail, password)
		if err != nil {
			return err
		}
		return saveSession(cmd, res)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the saved session",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveSessionPath()
		if err != nil {
			return err
		}
		if err := client.ClearSession(path); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{loginCmd, signupCmd} {
		c.Flags().StringVar(&loginEmail, "email", "", "Account email")
		c.Flags().StringVar(&loginPassword, "password", "", "Account password (or WELLNEST_PASSWORD)")
		_ = c.MarkFlagRequired("email")
		rootCmd.AddCommand(c)
	}
	signupCmd.Flags().StringVar(&signupName, "name", "", "Full name")
	rootCmd.AddCommand(logoutCmd)
}

func passwordOrEnv() (string, error) {
	if loginPassword != "" {
		return loginPassword, nil
	}
	if p := envOr("WELLNEST_PASSWORD", ""); p != "" {
		return p, nil
	}
	return "", fmt.Errorf("--password or WELLNEST_PASSWORD is required")
}

func saveSession(cmd *cobra.Command, res *client.AuthResult) error {
	path, err := resolveSessionPath()
	if err != nil {
		return err
	}
	session := &client.Session{Server: serverURL, Email: res.Email, FullName: res.FullName, Token: res.Token}
	if err := client.SaveSession(path, session); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", res.FullName, res.Email)
	return nil
}
