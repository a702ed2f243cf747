// Package presenter renders registration outcomes for humans.
package presenter

import (
	"fmt"
	"io"

	"github.com/ZenLiuCN/regsvr"
)

// Title of the result dialog.
const Title = "regsvr"

// Dialog shows a result interactively.
type Dialog interface {
	Show(title, text string, failure bool) error
}

// Describe the outcome, the mode only changes the success text.
func Describe(o regsvr.Outcome, mode regsvr.Mode) string {
	switch o {
	case regsvr.Success:
		if mode == regsvr.Unregister {
			return "Module was successfully unregistered."
		}
		return "Module was successfully registered."
	case regsvr.LoadFailed:
		return "Failed to load the module, please check the path and ensure the module is a valid COM server."
	case regsvr.EntryPointNotFoundRegister:
		return "Failed to find the DllRegisterServer entry point, please ensure the module is a valid COM server."
	case regsvr.EntryPointNotFoundUnregister:
		return "Failed to find the DllUnregisterServer entry point, please ensure the module is a valid COM server."
	case regsvr.InvocationFailedRegister:
		return "DllRegisterServer was found but the call to it failed."
	case regsvr.InvocationFailedUnregister:
		return "DllUnregisterServer was found but the call to it failed."
	case regsvr.InvalidArguments:
		return "One or more invalid arguments supplied, please check the arguments."
	case regsvr.SubsystemError:
		return "OLE initialization failed, the system may be low on memory."
	case regsvr.ArchitectureMismatch:
		return "The module does not match the architecture of regsvr, use the 32-bit or 64-bit build accordingly."
	default:
		return fmt.Sprintf("Unknown outcome %d.", int(o))
	}
}

// Presenter writes one line per outcome and shows the dialog unless silent.
type Presenter struct {
	Out    io.Writer
	Dialog Dialog // nil disables dialogs
	Silent bool
}

func (p *Presenter) Present(o regsvr.Outcome, mode regsvr.Mode) error {
	return p.present(o, mode, p.Silent)
}

// Report presents the outcome of a processed module, a silent request never shows the dialog.
func (p *Presenter) Report(r regsvr.Report) error {
	return p.present(r.Outcome, r.Request.Mode, p.Silent || r.Request.Silent)
}

func (p *Presenter) present(o regsvr.Outcome, mode regsvr.Mode, silent bool) error {
	msg := Describe(o, mode)
	if _, err := fmt.Fprintln(p.Out, msg); err != nil {
		return err
	}
	if silent || p.Dialog == nil {
		return nil
	}
	return p.Dialog.Show(Title, msg, o != regsvr.Success)
}

// Banner writes the two line usage of the command.
func Banner(w io.Writer, name, version string) {
	_, _ = fmt.Fprintf(w, "%s v%s\n", name, version)
	_, _ = fmt.Fprintf(w, "Usage: %s [-?] [-s] [-u] [-d] [-c config] ModulePath...\n", name)
}
