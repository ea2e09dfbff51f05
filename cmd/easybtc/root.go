package main

import (
	"errors"

	"github.com/regnull/easybtc"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	v          = viper.New()
	cfg        = &Config{Output: outputTable}
	configFile string
)

// errVerifyFailed is returned by verify when the signature does not check out.
var errVerifyFailed = errors.New("signature verification failed")

var rootCmd = &cobra.Command{
	Use:   "easybtc",
	Short: "Bitcoin key toolkit",
	Long: `Inspect secp256k1 key files, sign and verify files, and search for
vanity P2PKH addresses.

Examples:
  easybtc hash256 message.txt
  easybtc pubkey ec-priv.pem
  easybtc prvkey ec-priv.pem
  easybtc sign ec-priv.pem message.txt
  easybtc verify ec-priv.pem 02f6755a... 3045022100...
  easybtc vanity AB --workers 8`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := loadConfig(v, configFile)
		if err != nil {
			return err
		}
		cfg = loaded
		return setupLogger(cfg.Log)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file (default ./easybtc.yaml or ~/.easybtc/easybtc.yaml)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "text", "log format (text, json)")
	flags.StringP("output", "o", outputTable, "output format (table, json)")
	flags.String("passphrase", "", "passphrase of an encrypted JWK key file")

	v.BindPFlag("log.level", flags.Lookup("log-level"))
	v.BindPFlag("log.format", flags.Lookup("log-format"))
	v.BindPFlag("output", flags.Lookup("output"))
	v.BindPFlag("key.passphrase", flags.Lookup("passphrase"))
}

// exitCode maps an error to the process exit status, so scripts can tell
// the error classes apart.
func exitCode(err error) int {
	switch {
	case errors.Is(err, errVerifyFailed):
		return 1
	case easybtc.IsValidationError(err):
		return 2
	case errors.Is(err, easybtc.ErrNotFound):
		return 3
	case errors.Is(err, easybtc.ErrInvalidFormat):
		return 4
	case errors.Is(err, easybtc.ErrSearchExhausted):
		return 5
	}
	return 1
}
