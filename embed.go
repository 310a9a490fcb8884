// Package phonebook bundles the demo seed contacts into the binary and lets a
// local seed directory shadow them file by file.
package phonebook

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed seeds/*.yaml
var rawSeeds embed.FS

// Seeds is the embedded seeds filesystem with the "seeds/" prefix stripped.
var Seeds = mustSub(rawSeeds, "seeds")

// DemoSeed is the name of the demo contacts file within Seeds.
const DemoSeed = "demo.yaml"

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// OverlayFS serves a seed file from localDir when it exists there and from
// embedded otherwise. Names must satisfy fs.ValidPath.
func OverlayFS(localDir string, embedded fs.FS) fs.FS {
	return overlayFS{localDir: localDir, embedded: embedded}
}

type overlayFS struct {
	localDir string
	embedded fs.FS
}

func (o overlayFS) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	f, err := os.Open(filepath.Join(o.localDir, filepath.FromSlash(name)))
	if err == nil {
		return f, nil
	}
	return o.embedded.Open(name)
}
