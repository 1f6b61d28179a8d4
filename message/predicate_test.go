package message_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zostay/go-partstream/message"
)

func TestPredicates(t *testing.T) {
	t.Parallel()

	_, m := makeTree(t)
	root := &m.Part
	text := m.Parts()[0]
	image := m.Parts()[2]

	for name, tt := range map[string]struct {
		pred  message.Predicate
		part  *message.Part
		match bool
	}{
		"anything":               {message.Anything(), image, true},
		"media type":             {message.MediaType(message.TextPlain), text, true},
		"media type mismatch":    {message.MediaType(message.TextHTML), text, false},
		"media type fold":        {message.MediaType("TEXT/Plain"), text, true},
		"media type no header":   {message.MediaType(message.TextPlain), message.NewContentPart(nil, nil), false},
		"prefix":                 {message.MediaTypePrefix("text/"), text, true},
		"prefix mismatch":        {message.MediaTypePrefix("text/"), image, false},
		"disposition":            {message.Disposition(message.DispositionInline), text, true},
		"disposition fold":       {message.Disposition("INLINE"), text, true},
		"disposition mismatch":   {message.Disposition(message.DispositionInline), image, false},
		"disposition missing":    {message.Disposition(message.DispositionInline), message.NewContentPart(nil, nil), false},
		"container":              {message.Container(), root, true},
		"container on leaf":      {message.Container(), text, false},
		"no container":           {message.NoContainer(), text, true},
		"no container on root":   {message.NoContainer(), root, false},
		"and":                    {message.And(message.NoContainer(), message.MediaType(message.TextPlain)), text, true},
		"and short":              {message.And(message.Container(), message.MediaType(message.TextPlain)), text, false},
		"or":                     {message.Or(message.MediaType(message.TextHTML), message.MediaType(message.TextPlain)), text, true},
		"or none":                {message.Or(message.MediaType(message.TextHTML), message.Container()), text, false},
		"not":                    {message.Not(message.Container()), text, true},
		"empty and is anything":  {message.And(), image, true},
		"empty or is nothing":    {message.Or(), image, false},
		"attachment image":       {message.Attachment(), image, true},
		"attachment inline text": {message.Attachment(), text, false},
		"attachment container":   {message.Attachment(), root, false},
	} {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.match, tt.pred.Match(tt.part))
		})
	}
}

func TestAttachmentClassification(t *testing.T) {
	t.Parallel()

	pred := message.Attachment()

	// a text part explicitly marked attachment is an attachment
	marked := message.NewContentPart(
		leafHeader(message.TextPlain, message.DispositionAttachment),
		[]byte("notes.txt"),
	)
	assert.True(t, pred.Match(marked))

	// a text part with no disposition at all is an attachment too; only
	// an explicit inline disposition marks text as body content
	bare := message.NewContentPart(leafHeader(message.TextPlain, ""), []byte("x"))
	assert.True(t, pred.Match(bare))

	inlineHTML := message.NewContentPart(
		leafHeader(message.TextHTML, message.DispositionInline),
		[]byte("<p>hi</p>"),
	)
	assert.False(t, pred.Match(inlineHTML))

	// non-text leaves are attachments regardless of disposition
	inlineImage := message.NewContentPart(
		leafHeader("image/jpeg", message.DispositionInline),
		[]byte{0xff, 0xd8},
	)
	assert.True(t, pred.Match(inlineImage))
}
