//go:build windows

package presenter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSystemDialog(t *testing.T) {
	d := SystemDialog()
	require.NotNil(t, d)
	// rejected before any window is shown
	require.Error(t, d.Show("bad\x00title", "text", false))
	require.Error(t, d.Show(Title, "bad\x00text", true))
}
