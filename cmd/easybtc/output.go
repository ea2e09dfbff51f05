package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/regnull/easybtc"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

// record is a result that can be printed as a two-column table.
type record interface {
	Fields() [][2]string
}

func printRecord(w io.Writer, r record) error {
	if cfg.Output == outputJSON {
		return printJSON(w, r)
	}
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, f := range r.Fields() {
		table.Append([]string{f[0], f[1]})
	}
	table.Render()
	return nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// publicKeyRecord is the output of pubkey.
type publicKeyRecord struct {
	*easybtc.EncodedPublicKey
	EthAddress string `json:"eth_address,omitempty"`
}

func (r *publicKeyRecord) Fields() [][2]string {
	f := r.EncodedPublicKey.Fields()
	if r.EthAddress != "" {
		f = append(f, [2]string{"ETH address", r.EthAddress})
	}
	return f
}

// wifRecord is the output of wif.
type wifRecord struct {
	*easybtc.EncodedPrivateKey
	P2PKH string `json:"p2pkh"`
}

func (r *wifRecord) Fields() [][2]string {
	return append(r.EncodedPrivateKey.Fields(), [2]string{"BTC p2pkh", r.P2PKH})
}

// verifyRecord is the output of verify.
type verifyRecord struct {
	Verified bool `json:"verified"`
}

func (r *verifyRecord) Fields() [][2]string {
	return [][2]string{{"verified", strconv.FormatBool(r.Verified)}}
}

func printValue(w io.Writer, name, value string) error {
	if cfg.Output == outputJSON {
		return printJSON(w, map[string]string{name: value})
	}
	_, err := fmt.Fprintln(w, value)
	return err
}
