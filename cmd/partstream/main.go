package main

import (
	"github.com/spf13/cobra"

	"github.com/zostay/go-partstream/cmd/partstream/cmd"
)

func main() {
	err := cmd.Execute()
	cobra.CheckErr(err)
}
