package printer_test

import (
	"bytes"
	"testing"

	"restopos/pkg/printer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentLayout(t *testing.T) {
	doc := printer.NewDocument(20)
	doc.KeyValue("Total", "12.50").ItemLine(2, "Tea", "5.00").Separator('-').Cut()

	out := doc.Bytes()
	assert.True(t, bytes.HasPrefix(out, []byte{printer.ESC, '@'}))
	assert.Contains(t, string(out), "Total          12.50\n")
	assert.Contains(t, string(out), "2x Tea          5.00\n")
	assert.Contains(t, string(out), "--------------------\n")
	assert.True(t, bytes.HasSuffix(out, []byte{printer.GS, 'V', 0x01}))
}

func TestDocumentKeepsOneSpaceWhenTooLong(t *testing.T) {
	doc := printer.NewDocument(8)
	doc.KeyValue("Subtotal", "100.00")
	assert.Contains(t, string(doc.Bytes()), "Subtotal 100.00\n")
}

func TestFromConfig(t *testing.T) {
	p, err := printer.FromConfig("none", "")
	require.NoError(t, err)
	assert.NoError(t, p.Print([]byte("x")))
	assert.False(t, p.IsConnected())

	_, err = printer.FromConfig("network", "")
	assert.Error(t, err)

	_, err = printer.FromConfig("usb", "")
	assert.Error(t, err)
}
