package main

import (
	"context"
	"encoding/hex"
	"os"
	"os/signal"

	"github.com/regnull/easybtc"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var hash256Cmd = &cobra.Command{
	Use:   "hash256 <file>",
	Short: "Print the double SHA-256 of a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := easybtc.Hash256File(args[0])
		if err != nil {
			return err
		}
		return printValue(cmd.OutOrStdout(), "hash256", hex.EncodeToString(h))
	},
}

var hash160Cmd = &cobra.Command{
	Use:   "hash160 <file>",
	Short: "Print the RIPEMD-160 of the SHA-256 of a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := easybtc.Hash160File(args[0])
		if err != nil {
			return err
		}
		return printValue(cmd.OutOrStdout(), "hash160", hex.EncodeToString(h))
	},
}

var pubkeyCmd = &cobra.Command{
	Use:   "pubkey <keyfile>",
	Short: "Print the public key and P2PKH address of a private key file",
	Args:  cobra.ExactArgs(1),
	RunE:  runPubkey,
}

var prvkeyCmd = &cobra.Command{
	Use:   "prvkey <keyfile>",
	Short: "Print the encodings of a private key file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		privateKey, err := easybtc.LoadPrivateKeyWithPassphrase(args[0], cfg.Key.Passphrase)
		if err != nil {
			return err
		}
		return printRecord(cmd.OutOrStdout(), privateKey.Encode())
	},
}

var signCmd = &cobra.Command{
	Use:   "sign <keyfile> <file>",
	Short: "Sign the double SHA-256 of a file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := easybtc.SignFile(args[0], args[1])
		if err != nil {
			return err
		}
		return printRecord(cmd.OutOrStdout(), result)
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify <keyfile> <pubkeyhex> <signaturehex>",
	Short: "Verify a signature",
	Long: `Verify a DER signature, given in hex. The key held by <keyfile> must
match <pubkeyhex>. Without --message the signed data is the key file itself.
With --message the signed data is the message file.

The exit status is 1 if the signature does not verify.`,
	Args: cobra.ExactArgs(3),
	RunE: runVerify,
}

var vanityCmd = &cobra.Command{
	Use:   "vanity <prefix>",
	Short: "Search for a key whose P2PKH address starts with 1<prefix>",
	Args:  cobra.ExactArgs(1),
	RunE:  runVanity,
}

var addressCmd = &cobra.Command{
	Use:   "address <pubkeyhex>",
	Short: "Print the P2PKH address of a serialized public key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		address, err := easybtc.AddressFromPublicKeyHex(args[0])
		if err != nil {
			return err
		}
		return printValue(cmd.OutOrStdout(), "p2pkh", address)
	},
}

var wifCmd = &cobra.Command{
	Use:   "wif <wif>",
	Short: "Decode a private key in Wallet Import Format",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		privateKey, err := easybtc.DecodeWIF(args[0])
		if err != nil {
			return err
		}
		return printRecord(cmd.OutOrStdout(), &wifRecord{
			EncodedPrivateKey: privateKey.Encode(),
			P2PKH:             privateKey.PublicKey().BitcoinAddress(),
		})
	},
}

func init() {
	pubkeyCmd.Flags().Bool("eth", false, "also print the Ethereum address")

	verifyCmd.Flags().String("message", "", "file holding the signed data")

	vanityCmd.Flags().IntP("workers", "w", 0, "number of workers (default: number of CPUs)")
	vanityCmd.Flags().Uint64("max-attempts", 0, "give up after this many candidates (0: no limit)")
	vanityCmd.Flags().Duration("timeout", 0, "give up after this long (0: no limit)")
	v.BindPFlag("vanity.workers", vanityCmd.Flags().Lookup("workers"))
	v.BindPFlag("vanity.max_attempts", vanityCmd.Flags().Lookup("max-attempts"))
	v.BindPFlag("vanity.timeout", vanityCmd.Flags().Lookup("timeout"))

	rootCmd.AddCommand(hash256Cmd)
	rootCmd.AddCommand(hash160Cmd)
	rootCmd.AddCommand(pubkeyCmd)
	rootCmd.AddCommand(prvkeyCmd)
	rootCmd.AddCommand(signCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(vanityCmd)
	rootCmd.AddCommand(addressCmd)
	rootCmd.AddCommand(wifCmd)
}

func runPubkey(cmd *cobra.Command, args []string) error {
	privateKey, err := easybtc.LoadPrivateKeyWithPassphrase(args[0], cfg.Key.Passphrase)
	if err != nil {
		return err
	}
	publicKey := privateKey.PublicKey()
	record := &publicKeyRecord{EncodedPublicKey: publicKey.Encode()}
	if eth, _ := cmd.Flags().GetBool("eth"); eth {
		record.EthAddress = publicKey.EthereumAddress()
	}
	return printRecord(cmd.OutOrStdout(), record)
}

func runVerify(cmd *cobra.Command, args []string) error {
	keyFile, publicKeyHex, signatureHex := args[0], args[1], args[2]

	var ok bool
	var err error
	if message, _ := cmd.Flags().GetString("message"); message != "" {
		ok, err = verifyMessage(keyFile, message, publicKeyHex, signatureHex)
	} else {
		ok, err = easybtc.VerifyFileWithPassphrase(keyFile, cfg.Key.Passphrase, publicKeyHex, signatureHex)
	}
	if err != nil {
		return err
	}

	logrus.WithField("verified", ok).Debug("Signature checked")
	if err := printRecord(cmd.OutOrStdout(), &verifyRecord{Verified: ok}); err != nil {
		return err
	}
	if !ok {
		return errVerifyFailed
	}
	return nil
}

// verifyMessage checks a signature over messageFile. The key in keyFile must
// be the one given as publicKeyHex.
func verifyMessage(keyFile, messageFile, publicKeyHex, signatureHex string) (bool, error) {
	publicKey, err := easybtc.LoadPublicKeyWithPassphrase(keyFile, cfg.Key.Passphrase)
	if err != nil {
		return false, err
	}
	expected, err := easybtc.NewPublicKeyFromHex(publicKeyHex)
	if err != nil || !publicKey.Equal(expected) {
		return false, nil
	}
	return easybtc.VerifyMessageFile(messageFile, publicKeyHex, signatureHex)
}

func runVanity(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	if cfg.Vanity.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Vanity.Timeout)
		defer cancel()
	}

	result, err := easybtc.SearchVanity(ctx, args[0], easybtc.VanityOptions{
		Workers:     cfg.Vanity.Workers,
		MaxAttempts: cfg.Vanity.MaxAttempts,
		Logger:      logrus.StandardLogger(),
	})
	if err != nil {
		return err
	}
	return printRecord(cmd.OutOrStdout(), result)
}
