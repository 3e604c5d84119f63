package kvstore

import (
	"io"
	"log"
	"os"
	"path/filepath"
)

// File persists each key as its own file under a state directory, keeping
// the cart and auth domains on separate files so their writers never race.
type File struct {
	dir    string
	logger *log.Logger
}

// NewFile returns a file-backed store rooted at dir. The directory is
// created lazily on first write.
func NewFile(dir string, logger *log.Logger) *File {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &File{dir: dir, logger: logger}
}

func (f *File) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

func (f *File) Get(key string) ([]byte, bool) {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if !os.IsNotExist(err) {
			f.logger.Printf("kvstore: read key=%s error=%v", key, err)
		}
		return nil, false
	}
	return data, true
}

func (f *File) Set(key string, value []byte) {
	if err := os.MkdirAll(f.dir, 0o700); err != nil {
		f.logger.Printf("kvstore: mkdir %s error=%v", f.dir, err)
		return
	}
	if err := os.WriteFile(f.path(key), value, 0o600); err != nil {
		f.logger.Printf("kvstore: write key=%s error=%v", key, err)
	}
}

func (f *File) Clear(key string) {
	if err := os.Remove(f.path(key)); err != nil && !os.IsNotExist(err) {
		f.logger.Printf("kvstore: clear key=%s error=%v", key, err)
	}
}
