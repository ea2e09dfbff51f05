// Command easybtc inspects secp256k1 key files, signs and verifies files, and
// searches for vanity P2PKH addresses.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}
