// Package seed reads contacts from YAML files and preloads them into a directory.
// Seed files are read-only input; the directory is never written back.
package seed

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/smileynet/phonebook/internal/contact"
	"github.com/smileynet/phonebook/internal/directory"
)

// ErrInvalid indicates a seed file is malformed.
var ErrInvalid = errors.New("seed: invalid seed file")

// Entry is one contact as written in a seed file.
type Entry struct {
	Name     string `yaml:"name"`
	Surnames string `yaml:"surnames"`
	Phone    string `yaml:"phone"`
}

type file struct {
	Contacts []Entry `yaml:"contacts"`
}

// Result reports what Apply did with each entry.
type Result struct {
	Added      []string // Codes stored, in file order.
	Duplicates []string // Codes skipped because they were already taken.
}

// Load reads entries from the seed file at path.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed: reading %s: %w", path, err)
	}
	entries, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// LoadFS reads entries from name within fsys.
func LoadFS(fsys fs.FS, name string) ([]Entry, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("seed: reading %s: %w", name, err)
	}
	entries, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return entries, nil
}

// Parse decodes a seed document. Unknown fields and entries with neither a
// name nor surnames are rejected. An empty document yields no entries.
func Parse(r io.Reader) ([]Entry, error) {
	var f file
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	for i, e := range f.Contacts {
		if strings.TrimSpace(e.Name) == "" && strings.TrimSpace(e.Surnames) == "" {
			return nil, fmt.Errorf("%w: contact %d has no name or surnames", ErrInvalid, i+1)
		}
	}
	return f.Contacts, nil
}

// Apply adds every entry to dir. Entries whose code is already taken are
// skipped and reported in Result.Duplicates.
func Apply(dir *directory.Directory, entries []Entry) Result {
	var res Result
	for _, e := range entries {
		c := contact.New(strings.TrimSpace(e.Name), strings.TrimSpace(e.Surnames), strings.TrimSpace(e.Phone))
		if err := dir.Add(c); err != nil {
			res.Duplicates = append(res.Duplicates, c.Code())
			continue
		}
		res.Added = append(res.Added, c.Code())
	}
	return res
}
