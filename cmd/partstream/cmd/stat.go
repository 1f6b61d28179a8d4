package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zostay/go-partstream/message"
	"github.com/zostay/go-partstream/message/walk"
)

var statCmd = &cobra.Command{
	Use:   "stat document",
	Short: "Show locator and size details for each windowed part",
	Args:  cobra.ExactArgs(1),
	RunE:  RunStat,
}

func init() {
	rootCmd.AddCommand(statCmd)
}

func RunStat(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	m, err := buildMessage(f)
	if err != nil {
		return err
	}
	defer func() { _ = m.Close() }()

	return walk.AndProcess(func(part *message.Part, parents []*message.Part) error {
		loc, ok := part.Window()
		if !ok {
			return nil
		}

		s, err := part.OpenWindow(m.Registry())
		if err != nil {
			return err
		}

		fi, err := s.Stat()
		if err != nil {
			return err
		}

		fmt.Printf("%s\n", loc.URI())
		fmt.Printf("  window  = %d bytes\n", fi.Size())
		fmt.Printf("  source  = %s (%s)\n", fi.Name(), fi.ModTime().Format("2006-01-02 15:04:05"))
		return nil
	}, &m.Part)
}
