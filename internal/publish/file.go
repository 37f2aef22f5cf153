package publish

import (
	"context"
	"os"
	"path/filepath"
)

// Dir：本地目录；先写临时文件再 rename，读者不会看到半截文件
type Dir struct {
	Path string
}

func (d Dir) Name() string { return "file" }

func (d Dir) Put(ctx context.Context, a Artifact) error {
	return d.PutAll(ctx, []Artifact{a})
}

// PutAll：全部临时文件写好后才开始 rename
// 约束：任一文件暂存失败时不替换任何已有文件，临时文件全部清理
func (d Dir) PutAll(_ context.Context, as []Artifact) error {
	if err := os.MkdirAll(d.Path, 0o755); err != nil {
		return err
	}
	tmps := make([]string, 0, len(as))
	cleanup := func() {
		for _, t := range tmps {
			os.Remove(t)
		}
	}
	for _, a := range as {
		tmp, err := d.stage(a)
		if err != nil {
			cleanup()
			return err
		}
		tmps = append(tmps, tmp)
	}
	for i, a := range as {
		if err := os.Rename(tmps[i], filepath.Join(d.Path, a.Name)); err != nil {
			tmps = tmps[i:]
			cleanup()
			return err
		}
	}
	return nil
}

func (d Dir) stage(a Artifact) (string, error) {
	f, err := os.CreateTemp(d.Path, "."+a.Name+".*")
	if err != nil {
		return "", err
	}
	tmp := f.Name()
	if _, err := f.Write(a.Body); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", err
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		os.Remove(tmp)
		return "", err
	}
	return tmp, nil
}
