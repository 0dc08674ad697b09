// stealthaddr creates, decodes and scans for stealth addresses.
package main

import (
	"os"

	"github.com/jessevdk/go-flags"
)

func main() {
	parser := flags.NewParser(&cfg, flags.Default)
	parser.CommandHandler = func(cmd flags.Commander, args []string) error {
		if err := loadConfig(); err != nil {
			return err
		}
		return cmd.Execute(args)
	}

	parser.AddCommand("new", "Create a stealth address",
		"Generate fresh scan and spend keys and print the new address "+
			"along with its secret keys.", &newCommand{})
	parser.AddCommand("decode", "Decode a stealth address",
		"Print the components of a stealth address.", &decodeCommand{})
	parser.AddCommand("scan", "Scan transactions for payments",
		"Scan hex encoded raw transactions for payments to an address.",
		&scanCommand{})

	if _, err := parser.Parse(); err != nil {
		os.Exit(1)
	}
}
