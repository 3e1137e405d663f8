package delivery

import (
	"os"
	"path/filepath"

	"github.com/zeebo/errs"
)

var Error = errs.Class("delivery")

// SaveFile 原子写入dir/name，返回文件路径
func SaveFile(dir, name string, data []byte) (string, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", Error.Wrap(err)
	}
	outfile := filepath.Join(dir, filepath.Base(name))
	if err := atomicWriteFile(outfile, data, 0o644); err != nil {
		return "", err
	}
	return outfile, nil
}

// atomicWriteFile is a helper to atomically write the data to the outfile.
func atomicWriteFile(outfile string, data []byte, mode os.FileMode) (err error) {
	fh, err := os.CreateTemp(filepath.Dir(outfile), "."+filepath.Base(outfile)+".*")
	if err != nil {
		return Error.Wrap(err)
	}
	needsClose, needsRemove := true, true

	defer func() {
		if needsClose {
			err = errs.Combine(err, Error.Wrap(fh.Close()))
		}
		if needsRemove {
			err = errs.Combine(err, Error.Wrap(os.Remove(fh.Name())))
		}
	}()

	if _, err := fh.Write(data); err != nil {
		return Error.Wrap(err)
	}
	if err := fh.Chmod(mode); err != nil {
		return Error.Wrap(err)
	}

	needsClose = false
	if err := fh.Close(); err != nil {
		return Error.Wrap(err)
	}

	if err := os.Rename(fh.Name(), outfile); err != nil {
		return Error.Wrap(err)
	}
	needsRemove = false

	return nil
}
