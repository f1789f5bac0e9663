package config

import (
	"github.com/spf13/cobra"
)

// BindFlags registers the configuration flags as persistent flags of cmd
// and returns the config they write into. Pass it to [Load] once cobra has
// parsed the command line.
//
// Flags:
//
//	-k/--publishable-key   publishable key
//	--proxy-url            Frontend API origin used verbatim
//	--domain               Frontend API domain override
//	--kind                 native or browser
//	--request-timeout      per request timeout (e.g. 15s)
//	--store                memory, file, sqlite or postgres
//	--store-dsn            file path or connection string
//	--store-prefix         key prefix
//	--store-passphrase     passphrase sealing a file store
//	--poll-interval        refresh period of `watch`
//	--log-file             JSON log destination
//	--debug                debug logs
//	--dev                  run against an in-process fake Frontend API
//	-c/--config            JSON config file path
func BindFlags(cmd *cobra.Command) *StructuredConfig {
	cfg := &StructuredConfig{}
	fs := cmd.PersistentFlags()

	fs.StringVarP(&cfg.FAPI.PublishableKey, "publishable-key", "k", "", "Publishable key")
	fs.StringVar(&cfg.FAPI.ProxyURL, "proxy-url", "", "Frontend API origin, used verbatim")
	fs.StringVar(&cfg.FAPI.Domain, "domain", "", "Frontend API domain override")
	fs.StringVar(&cfg.FAPI.Kind, "kind", "", "Client kind: native or browser")
	fs.DurationVar(&cfg.FAPI.RequestTimeout, "request-timeout", 0, "Request timeout (e.g., 15s)")

	fs.StringVar(&cfg.Storage.Kind, "store", "", "Store: memory, file, sqlite or postgres")
	fs.StringVar(&cfg.Storage.DSN, "store-dsn", "", "Store file path or connection string")
	fs.StringVar(&cfg.Storage.Prefix, "store-prefix", "", "Store key prefix")
	fs.StringVar(&cfg.Storage.Passphrase, "store-passphrase", "", "Passphrase sealing a file store")

	fs.DurationVar(&cfg.Workers.PollInterval, "poll-interval", 0, "Refresh period of watch (e.g., 30s)")

	fs.StringVar(&cfg.Log.File, "log-file", "", "JSON log file")
	fs.BoolVar(&cfg.Log.Debug, "debug", false, "Debug logs")
	fs.BoolVar(&cfg.Dev, "dev", false, "Use an in-process fake Frontend API")

	fs.StringVarP(&cfg.JSONFilePath, "config", "c", "", "JSON config file path")

	return cfg
}
