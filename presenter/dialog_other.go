//go:build !windows

package presenter

// SystemDialog is nil outside windows, the result line is the only output.
func SystemDialog() Dialog {
	return nil
}
