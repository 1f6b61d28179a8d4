package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zostay/go-partstream/message"
	"github.com/zostay/go-partstream/message/walk"
)

var lsCmd = &cobra.Command{
	Use:   "ls document",
	Short: "List the part tree built over a document",
	Args:  cobra.ExactArgs(1),
	RunE:  RunLs,
}

func init() {
	rootCmd.AddCommand(lsCmd)
}

func RunLs(cmd *cobra.Command, args []string) error {
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

	attachment := message.Attachment()
	return walk.AndProcess(func(part *message.Part, parents []*message.Part) error {
		mt, err := part.GetMediaType()
		if err != nil {
			mt = "(untyped)"
		}

		detail := ""
		if loc, ok := part.Window(); ok {
			detail = fmt.Sprintf(" [%d, %d)", loc.Start, loc.End)
		}
		if attachment.Match(part) {
			detail += " attachment"
		}

		fmt.Printf("%s%s%s\n", strings.Repeat("  ", len(parents)), mt, detail)
		return nil
	}, &m.Part)
}
