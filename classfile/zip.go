package classfile

import (
	"archive/zip"
	"fmt"
	"io"
	"strings"

	"go.uber.org/multierr"
)

// LoadZip walks every *.class entry of a zip classpath archive and parses
// each one. One bad entry does not abort the rest of the archive: parse
// failures are collected with multierr and returned alongside whatever
// classes did parse successfully, mirroring the original ZipFiles
// iterator's "load everything you can" behavior.
func LoadZip(path string) ([]*ClassFile, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open classpath zip %s: %w", path, err)
	}
	defer r.Close()

	var classes []*ClassFile
	var errs error
	for _, f := range r.File {
		if f.FileInfo().IsDir() || !strings.HasSuffix(f.Name, ".class") {
			continue
		}
		cf, err := parseZipEntry(f)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", f.Name, err))
			continue
		}
		classes = append(classes, cf)
	}
	return classes, errs
}

func parseZipEntry(f *zip.File) (*ClassFile, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}
