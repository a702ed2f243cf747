//go:build !windows && !darwin && !linux

package regsvr

func openNative(path string) (Library, error) {
	return nil, &LoadError{Path: path, Err: ErrUnsupported}
}
