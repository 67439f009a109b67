package classfile

import (
	"os"
	"path/filepath"
	"strings"
)

// LoadDir parses every .class file found under root (recursively),
// mirroring the behavior of a bare-filesystem classpath entry the same
// way LoadZip walks a zip classpath entry.
func LoadDir(root string) ([]*ClassFile, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		cf, err := ParseFile(root)
		if err != nil {
			return nil, err
		}
		return []*ClassFile{cf}, nil
	}

	var classes []*ClassFile
	err = filepath.Walk(root, func(path string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() || !strings.HasSuffix(path, ".class") {
			return nil
		}
		cf, err := ParseFile(path)
		if err != nil {
			return err
		}
		classes = append(classes, cf)
		return nil
	})
	return classes, err
}
