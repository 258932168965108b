package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Itecs-company/Obed-micro/internal/api"
	"github.com/Itecs-company/Obed-micro/internal/config"
)

var (
	loginUsername string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate against the ledger service",
	Args:  cobra.NoArgs,
	RunE:  runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&loginUsername, "username", "", "Login name (default from config)")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Password (prompted when omitted)")
}

func runLogin(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	username := loginUsername
	if username == "" {
		username = cfg.Server.Username
	}

	password := loginPassword
	if password == "" {
		fmt.Fprintf(os.Stderr, "Password for %s: ", username)
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			fmt.Fprintln(os.Stderr, "reading password:", err)
			os.Exit(2)
		}
		password = strings.TrimRight(line, "\r\n")
	}

	ctx := context.Background()
	timeout := time.Duration(cfg.Server.TimeoutSeconds) * time.Second
	tok, err := api.Login(ctx, cfg.Server.URL, username, password, timeout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := api.SaveToken(tok); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	fmt.Printf("Logged in to %s as %s\n", cfg.Server.URL, username)
	return nil
}
