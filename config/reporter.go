package config

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/maruel/natural"
	"go.uber.org/multierr"

	"altodoc/misc"
)

type ReporterConfig struct {
	Destination string `yaml:"destination" sanitize:"path_clean,assure_dir_exists_for_file" validate:"required,filepath"`
}

// Prepare creates empty debug report. When destination cannot be created
// report goes into temporary file, see Report.Name.
func (conf *ReporterConfig) Prepare() (*Report, error) {
	f, err := os.Create(conf.Destination)
	if err != nil {
		if f, err = os.CreateTemp("", misc.GetAppName()+"-report.*.zip"); err != nil {
			return nil, fmt.Errorf("unable to create report: %w", err)
		}
	}
	return &Report{entries: make(map[string]entry), file: f}, nil
}

type entry struct {
	original string
	actual   string
	stamp    time.Time
	data     []byte
	temp     string // private copy made by StoreCopy, removed on Close
}

// Report collects material for debug archive: configuration, logs, source
// ALTO files and dumps of reconstructed documents. All methods are no-op on
// nil Report, so callers do not have to check whether report was requested.
// Report is not safe for concurrent use.
type Report struct {
	entries map[string]entry // archive name to stored item
	file    *os.File
}

// Close writes archive and removes temporary work directories stored in it.
func (r *Report) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	defer r.file.Close()

	if err := r.finalize(); err != nil {
		return err
	}
	return r.removeDirs()
}

// removeDirs deletes StoreCopy copies and stored directories. Directories are
// conversion work locations, they are only kept to be archived.
func (r *Report) removeDirs() (err error) {
	for _, e := range r.entries {
		switch {
		case len(e.temp) > 0:
			err = multierr.Append(err, os.RemoveAll(e.temp))
		case len(e.data) > 0 || len(e.actual) == 0:
		default:
			if info, er := os.Stat(e.actual); er == nil && info.IsDir() {
				err = multierr.Append(err, os.RemoveAll(e.actual))
			}
		}
	}
	return err
}

// Name returns absolute path of the archive.
func (r *Report) Name() string {
	if r == nil || r.file == nil {
		return ""
	}
	if n, err := filepath.Abs(r.file.Name()); err == nil {
		return n
	}
	return r.file.Name()
}

// Store registers file or directory to be archived under name on Close.
// Registering different path under the same name is a programming error.
func (r *Report) Store(name, path string) {
	if r == nil {
		return
	}
	if old, exists := r.entries[name]; exists && old.original != path {
		panic(fmt.Sprintf("report entry [%s] already holds %s, refusing %s", name, old.original, path))
	}

	e := entry{original: path, actual: path}
	if p, err := filepath.Abs(path); err == nil {
		e.actual = p
	}
	r.entries[name] = e
}

// StoreData registers in-memory content, e.g. YAML dump of a document, to be
// archived as a file under name.
func (r *Report) StoreData(name string, data []byte) {
	if r == nil {
		return
	}
	if _, exists := r.entries[name]; exists {
		panic(fmt.Sprintf("report entry [%s] already holds data", name))
	}
	r.entries[name] = entry{data: data, stamp: time.Now()}
}

// StoreCopy snapshots file or directory into temporary location, so later
// changes to the original do not affect report. Repeated names get nanosecond
// stamp suffix.
func (r *Report) StoreCopy(name, path string) error {
	if r == nil {
		return nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return err
	}

	e := entry{stamp: time.Now(), original: path}
	if _, exists := r.entries[name]; exists {
		name = fmt.Sprintf("%s-%d", name, e.stamp.UnixNano())
	}

	if e.temp, err = os.MkdirTemp("", misc.GetAppName()+"-r-"); err != nil {
		return err
	}
	e.actual = e.temp

	switch {
	case info.Mode().IsRegular():
		e.actual, err = copyFile(e.temp, abs, info.ModTime())
	case info.IsDir():
		err = walkFiles(abs, func(rel, src string, fi fs.FileInfo) error {
			_, err := copyFile(filepath.Join(e.temp, filepath.Dir(rel)), src, fi.ModTime())
			return err
		})
	}
	if err != nil {
		return multierr.Append(err, os.RemoveAll(e.temp))
	}

	r.entries[name] = e
	return nil
}

// walkFiles calls fn for every regular file under root with path relative to
// root. Links and special files are skipped.
func walkFiles(root string, fn func(rel, path string, info fs.FileInfo) error) error {
	return filepath.Walk(root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		return fn(rel, path, info)
	})
}

func copyFile(dir, src string, modTime time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	dst := filepath.Join(dir, filepath.Base(src))

	in, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(out, in); err != nil {
		return "", multierr.Append(err, out.Close())
	}
	if err := multierr.Append(out.Sync(), out.Close()); err != nil {
		return "", err
	}
	return dst, os.Chtimes(dst, modTime, modTime)
}

// finalize writes MANIFEST followed by stored items in manifest order.
// Items which disappeared since they were stored are skipped.
func (r *Report) finalize() error {
	arc := zip.NewWriter(r.file)
	defer arc.Close()

	names, manifest := prepareManifest(r.entries)
	if err := saveFile(arc, "MANIFEST", time.Now(), manifest); err != nil {
		return err
	}

	for _, name := range names {
		e := r.entries[name]
		if len(e.data) > 0 {
			if err := saveFile(arc, name, e.stamp, bytes.NewReader(e.data)); err != nil {
				return err
			}
			continue
		}

		info, err := os.Stat(e.actual)
		if err != nil {
			continue
		}
		switch {
		case info.Mode().IsRegular():
			err = savePath(arc, name, e.actual, info)
		case info.IsDir():
			err = walkFiles(e.actual, func(rel, path string, fi fs.FileInfo) error {
				return savePath(arc, filepath.ToSlash(filepath.Join(name, rel)), path, fi)
			})
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// prepareManifest lists entries in natural name order, one line per entry:
// stamp, archive name, path as given and path actually archived.
func prepareManifest(entries map[string]entry) ([]string, *bytes.Buffer) {
	buf := new(bytes.Buffer)
	if len(entries) == 0 {
		return nil, buf
	}

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Sort(natural.StringSlice(keys))

	now := time.Now()
	for _, k := range keys {
		e := entries[k]
		stamp := e.stamp
		if stamp.IsZero() {
			stamp = now
		}
		fmt.Fprintf(buf, "%s\t%s\t%s : %s\n", stamp.UTC().Format(time.UnixDate), k, e.original, e.actual)
	}
	return keys, buf
}

func savePath(dst *zip.Writer, name, path string, info fs.FileInfo) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return saveFile(dst, name, info.ModTime(), f)
}

func saveFile(dst *zip.Writer, name string, t time.Time, src io.Reader) error {
	w, err := dst.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate, Modified: t})
	if err != nil {
		return err
	}
	_, err = io.Copy(w, src)
	return err
}
