package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wsargent/toodledo/internal/config"
)

func newSetupCmd(a *app) *cobra.Command {
	var userID, password, appID, baseURL string
	var proxyHost, proxyUser, proxyPassword string
	var proxyPort int

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Store connection credentials",
		Long:  "setup writes the user id, password and optional proxy settings to the config file. Find your user id on the Toodledo account settings page.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg
			if userID != "" {
				cfg.Connection.UserID = userID
			}
			if password != "" {
				cfg.Connection.Password = password
			}
			if appID != "" {
				cfg.Connection.AppID = appID
			}
			if baseURL != "" {
				cfg.Connection.BaseURL = baseURL
			}
			if proxyHost != "" {
				cfg.Proxy = &config.Proxy{
					Host:     proxyHost,
					Port:     proxyPort,
					User:     proxyUser,
					Password: proxyPassword,
				}
			}

			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := cfg.Save(); err != nil {
				return err
			}

			dir, err := config.Dir()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Configuration saved under %s\n", dir)
			return err
		},
	}

	cmd.Flags().StringVar(&userID, "user-id", "", "Toodledo user id")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	cmd.Flags().StringVar(&appID, "app-id", "", "Optional application id sent with token requests")
	cmd.Flags().StringVar(&baseURL, "url", "", "Service endpoint (default: "+config.DefaultBaseURL+")")
	cmd.Flags().StringVar(&proxyHost, "proxy-host", "", "HTTP proxy host")
	cmd.Flags().IntVar(&proxyPort, "proxy-port", 0, "HTTP proxy port")
	cmd.Flags().StringVar(&proxyUser, "proxy-user", "", "HTTP proxy username")
	cmd.Flags().StringVar(&proxyPassword, "proxy-password", "", "HTTP proxy password")

	return cmd
}
