package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/orgbase/orgcore/config"
	"github.com/orgbase/orgcore/logging"
	"github.com/orgbase/orgcore/schema"
	"github.com/orgbase/orgcore/transport"
)

// setup builds the config, logger, transport client and schema registry
// shared by the commands. Flag and environment overrides win over the
// config file.
func setup(cmd *cobra.Command) (*transport.Client, *schema.Registry, func(), error) {
	path, _ := cmd.Flags().GetString("config")

	var cfg *config.Config
	var err error
	if path != "" {
		cfg, err = config.Load(path)
		if err != nil {
			return nil, nil, nil, err
		}
	} else {
		cfg = config.Default()
	}

	if v := viper.GetString("api.base_url"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := viper.GetString("api.org_code"); v != "" {
		cfg.API.OrgCode = v
	}
	if v := viper.GetString("api.client_key"); v != "" {
		cfg.API.ClientKey = v
	}
	if v := viper.GetString("api.session_token"); v != "" {
		cfg.API.SessionToken = v
	}

	log, cleanup, err := logging.New(&logging.Config{
		Level:     cfg.Logger.Level,
		Format:    cfg.Logger.Format,
		SentryDSN: cfg.Logger.SentryDSN,
	})
	if err != nil {
		return nil, nil, nil, err
	}

	client, err := transport.NewClient(cfg, log)
	if err != nil {
		cleanup()
		return nil, nil, nil, err
	}
	return client, schema.NewRegistry(client), cleanup, nil
}
