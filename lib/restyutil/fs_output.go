package restyutil

import (
	"log/slog"
	"os"
	"path/filepath"
)

// FilesystemOutput dumps raw response bodies to a directory so selector
// breakage can be debugged against the exact markup that was fetched.
type FilesystemOutput struct {
	directory string
}

func NewFilesystemOutput(dir string) (FilesystemOutput, error) {
	os.RemoveAll(dir)
	err := os.MkdirAll(dir, 0777)
	if err != nil {
		return FilesystemOutput{}, err
	}
	return FilesystemOutput{directory: dir}, nil
}

func (o FilesystemOutput) Write(id string, contents []byte) {
	if o.directory == "" {
		return
	}
	err := os.WriteFile(filepath.Join(o.directory, id), contents, 0600)
	if err != nil {
		slog.Warn("failed to write page snapshot", "id", id, "err", err)
	}
}
