package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/zostay/go-partstream/message"
	"github.com/zostay/go-partstream/message/header"
	"github.com/zostay/go-partstream/registry"
	"github.com/zostay/go-partstream/window"
)

var rootCmd = &cobra.Command{
	Use:   "partstream",
	Short: "Inspect byte-range part windows over a raw document",
	Long: `partstream registers a raw document file and builds a part tree over
it from --part definitions, each naming a media type and the [start, end)
byte range of the part's body inside the file. The subcommands then read,
list, and stat the parts through windows, without ever copying the
document's bytes.`,
}

var (
	verbose   bool
	partSpecs []string

	logger = hclog.NewNullLogger()
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"log window activity")
	rootCmd.PersistentFlags().StringArrayVarP(&partSpecs, "part", "p", nil,
		"part definition, media-type:start:end[:disposition] (repeatable)")

	cobra.OnInitialize(func() {
		level := hclog.Warn
		if verbose {
			level = hclog.Debug
		}
		logger = hclog.New(&hclog.LoggerOptions{
			Name:  "partstream",
			Level: level,
		})
	})
}

func Execute() error {
	return rootCmd.Execute()
}

// buildMessage registers the given document handle and assembles the
// part tree the --part flags describe. The caller owns the handle and
// closes the message to release the registration.
func buildMessage(h registry.Handle) (*message.Message, error) {
	reg := registry.New()
	id := reg.Register(h)
	logger.Debug("registered document", "id", id)

	m := message.NewForDocument(reg, id)
	m.SetMediaType(message.MultipartMixed)
	if err := m.SetBoundary(message.GenerateBoundary()); err != nil {
		return nil, err
	}

	for _, spec := range partSpecs {
		p, err := parsePartSpec(id, spec)
		if err != nil {
			return nil, err
		}
		m.AddPart(p)
	}

	return m, nil
}

// parsePartSpec turns a media-type:start:end[:disposition] flag value
// into a window-backed part.
func parsePartSpec(id registry.DocumentID, spec string) (*message.Part, error) {
	fields := strings.Split(spec, ":")
	if len(fields) < 3 || len(fields) > 4 {
		return nil, fmt.Errorf("part %q: want media-type:start:end[:disposition]", spec)
	}

	start, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("part %q: bad start: %w", spec, err)
	}
	end, err := strconv.ParseUint(fields[2], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("part %q: bad end: %w", spec, err)
	}
	if end < start {
		return nil, fmt.Errorf("part %q: end is before start", spec)
	}

	h := &header.Header{}
	h.SetMediaType(fields[0])
	if len(fields) == 4 {
		h.SetPresentation(fields[3])
	}

	loc := window.Locator{DocumentID: id, Start: start, End: end}
	logger.Debug("built part", "uri", loc.URI(), "media-type", fields[0])
	return message.NewWindowPart(h, loc), nil
}
