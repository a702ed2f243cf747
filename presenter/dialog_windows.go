//go:build windows

package presenter

import "golang.org/x/sys/windows"

type messageBox struct{}

// SystemDialog is a MessageBox on windows.
func SystemDialog() Dialog {
	return messageBox{}
}

func (messageBox) Show(title, text string, failure bool) error {
	t, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return err
	}
	m, err := windows.UTF16PtrFromString(text)
	if err != nil {
		return err
	}
	var icon uint32 = windows.MB_ICONINFORMATION
	if failure {
		icon = windows.MB_ICONERROR
	}
	_, err = windows.MessageBox(0, m, t, windows.MB_OK|icon)
	return err
}
