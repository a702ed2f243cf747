package regsvr

import (
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ZenLiuCN/fn"
)

// SDK directories used by goloader: it imports the compiler internals from cmd/objfile.
const (
	sdkInternal = "src/cmd/internal"
	sdkObjfile  = "src/cmd/objfile"
)

// PrepareSDK copy $GOROOT/src/cmd/internal to $GOROOT/src/cmd/objfile, it does nothing when the copy exists.
// Returns whether a copy was made.
func PrepareSDK(goroot string, log *slog.Logger) (bool, error) {
	src := filepath.Join(goroot, sdkInternal)
	dst := filepath.Join(goroot, sdkObjfile)
	if _, err := os.Stat(dst); err == nil {
		log.Debug("sdk already prepared", "dir", dst)
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, err
	}
	log.Debug("prepare sdk", "from", src, "to", dst)
	if err := CopyDir(src, dst, nil); err != nil {
		return false, err
	}
	return true, nil
}

// CleanSDK remove the copy made by [PrepareSDK]. Returns whether something was removed.
func CleanSDK(goroot string, log *slog.Logger) (bool, error) {
	dst := filepath.Join(goroot, sdkObjfile)
	if _, err := os.Stat(dst); err != nil {
		if os.IsNotExist(err) {
			log.Debug("sdk not prepared", "dir", dst)
			return false, nil
		}
		return false, err
	}
	log.Debug("clean sdk", "dir", dst)
	return true, os.RemoveAll(dst)
}

// CopyFile from src to dest with optional src file info
func CopyFile(src string, dest string, si fs.FileInfo) (err error) {
	sf, err := os.Open(src)
	if err != nil {
		return err
	}
	defer fn.IgnoreClose(sf)
	df, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer fn.IgnoreClose(df)
	if _, err = io.Copy(df, sf); err != nil {
		return
	}
	if si == nil {
		if si, err = os.Stat(src); err != nil {
			return
		}
	}
	return os.Chmod(dest, si.Mode())
}

// CopyDir from src to dest with optional src file info
func CopyDir(src string, dest string, si fs.FileInfo) (err error) {
	if si == nil {
		if si, err = os.Stat(src); err != nil {
			return err
		}
	}
	if err = os.MkdirAll(dest, si.Mode()); err != nil {
		return err
	}
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil || path == src {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		dp := filepath.Join(dest, rel)
		if d.IsDir() {
			return os.MkdirAll(dp, info.Mode())
		}
		return CopyFile(path, dp, info)
	})
}
