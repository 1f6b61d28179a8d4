package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/zostay/go-partstream/message"
)

var (
	catIndex int
	catType  string

	catCmd = &cobra.Command{
		Use:   "cat document",
		Short: "Write one part's content to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  RunCat,
	}
)

func init() {
	catCmd.Flags().IntVarP(&catIndex, "index", "i", 0,
		"which matching part to print, in document order")
	catCmd.Flags().StringVarP(&catType, "type", "t", "",
		"only consider parts with this media type")
	rootCmd.AddCommand(catCmd)
}

func RunCat(cmd *cobra.Command, args []string) error {
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

	pred := message.NoContainer()
	if catType != "" {
		pred = message.And(pred, message.MediaType(catType))
	}

	p := m.GetPart(catIndex, pred)
	if p == nil {
		return fmt.Errorf("no part at index %d", catIndex)
	}

	r, err := p.Reader(m.Registry())
	if err != nil {
		return err
	}

	n, err := io.Copy(os.Stdout, r)
	if err != nil {
		return err
	}
	logger.Debug("copied part content", "bytes", n)
	return nil
}
