package materialize

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tacogips/kickstart/internal/catalog"
	"github.com/tacogips/kickstart/internal/resolver"
	"github.com/tidwall/gjson"
)

const templateManifest = `{
  "name": "lib-rollup-starter",
  "version": "0.0.0",
  "type": "module",
  "scripts": {
    "build": "rollup -c"
  }
}
`

func writeTemplate(t *testing.T, fs afero.Fs, dir string) {
	t.Helper()
	files := map[string]string{
		"package.json":            templateManifest,
		"README.md":               "# starter\n",
		"src/index.ts":            "export const x = 1\n",
		"src/util/strings.ts":     "export const s = ''\n",
		".gitignore":              "node_modules\n",
		"config/rollup/base.js":   "module.exports = {}\n",
		"src/nested/package.json": `{"name":"inner"}`,
	}
	for rel, content := range files {
		path := filepath.Join(dir, rel)
		require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
	}
	require.NoError(t, fs.MkdirAll(filepath.Join(dir, "public", "empty"), 0755))
}

func selection(templateDir, targetDir string, overwrite bool) *resolver.Selection {
	return &resolver.Selection{
		TargetDir:   targetDir,
		Target:      filepath.Base(targetDir),
		PackageName: "demo",
		Version:     "2024.0101.0000",
		Template:    catalog.Leaf{Name: "rollup", Dir: "lib-rollup-starter"},
		TemplateDir: templateDir,
		Overwrite:   overwrite,
	}
}

func TestMaterialize(t *testing.T) {
	src := afero.NewMemMapFs()
	dst := afero.NewMemMapFs()
	writeTemplate(t, src, "/tpl/template-lib-rollup-starter")

	m := New(src, dst)
	result, err := m.Materialize(context.Background(), selection("/tpl/template-lib-rollup-starter", "/work/demo", false))
	require.NoError(t, err)

	files := append([]string(nil), result.Files...)
	sort.Strings(files)
	assert.Equal(t, []string{
		".gitignore",
		"README.md",
		"config/rollup/base.js",
		"package.json",
		"src/index.ts",
		"src/nested/package.json",
		"src/util/strings.ts",
	}, files)
	assert.Equal(t, 6, result.FilesCopied)
	assert.Equal(t, ManifestFile, result.Files[len(result.Files)-1])
	assert.False(t, result.Purged)

	// nested manifests are ordinary files
	inner, err := afero.ReadFile(dst, "/work/demo/src/nested/package.json")
	require.NoError(t, err)
	assert.Equal(t, `{"name":"inner"}`, string(inner))

	ok, err := afero.IsDir(dst, "/work/demo/public/empty")
	require.NoError(t, err)
	assert.True(t, ok, "empty directories are reproduced")

	manifest, err := afero.ReadFile(dst, "/work/demo/package.json")
	require.NoError(t, err)
	assert.Equal(t, "demo", gjson.GetBytes(manifest, "name").String())
	assert.Equal(t, "2024.0101.0000", gjson.GetBytes(manifest, "version").String())
	assert.Equal(t, "module", gjson.GetBytes(manifest, "type").String())
	assert.Equal(t, "rollup -c", gjson.GetBytes(manifest, "scripts.build").String())

	// the source manifest is untouched
	orig, err := afero.ReadFile(src, "/tpl/template-lib-rollup-starter/package.json")
	require.NoError(t, err)
	assert.Equal(t, templateManifest, string(orig))

	entries, err := afero.ReadDir(dst, "/work/demo")
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name(), ".package.json-"), "temporary manifest %s left behind", e.Name())
	}
}

func TestMaterializeKeepsManifestLookalikes(t *testing.T) {
	src := afero.NewMemMapFs()
	dst := afero.NewMemMapFs()
	writeTemplate(t, src, "/tpl/t")
	require.NoError(t, afero.WriteFile(src, "/tpl/t/package.json.tmp", []byte("KEEP"), 0644))

	result, err := New(src, dst).Materialize(context.Background(), selection("/tpl/t", "/work/demo", false))
	require.NoError(t, err)
	assert.Contains(t, result.Files, "package.json.tmp")

	data, err := afero.ReadFile(dst, "/work/demo/package.json.tmp")
	require.NoError(t, err)
	assert.Equal(t, "KEEP", string(data))

	manifest, err := afero.ReadFile(dst, "/work/demo/package.json")
	require.NoError(t, err)
	assert.Equal(t, "demo", gjson.GetBytes(manifest, "name").String())
}

func TestMaterializeRejectsOverlappingDirs(t *testing.T) {
	tests := []struct {
		name        string
		templateDir string
		targetDir   string
	}{
		{name: "template inside target", templateDir: "/work/templates/template-x", targetDir: "/work"},
		{name: "target inside template", templateDir: "/work/templates/template-x", targetDir: "/work/templates/template-x/out"},
		{name: "same directory", templateDir: "/work/templates/template-x", targetDir: "/work/templates/template-x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			writeTemplate(t, fs, tt.templateDir)

			_, err := New(fs, fs).Materialize(context.Background(), selection(tt.templateDir, tt.targetDir, true))
			require.Error(t, err)

			var me *MaterializeError
			require.True(t, errors.As(err, &me))
			assert.Equal(t, MaterializeOverlap, me.Type)

			ok, err := afero.Exists(fs, filepath.Join(tt.templateDir, "package.json"))
			require.NoError(t, err)
			assert.True(t, ok, "template must survive")
		})
	}
}

func TestMaterializeOverwrite(t *testing.T) {
	src := afero.NewMemMapFs()
	dst := afero.NewMemMapFs()
	writeTemplate(t, src, "/tpl/t")
	require.NoError(t, afero.WriteFile(dst, "/work/demo/stale.txt", []byte("old"), 0644))
	require.NoError(t, afero.WriteFile(dst, "/work/demo/.git/HEAD", []byte("ref"), 0644))
	require.NoError(t, afero.WriteFile(dst, "/work/demo/README.md", []byte("old readme"), 0644))

	result, err := New(src, dst).Materialize(context.Background(), selection("/tpl/t", "/work/demo", true))
	require.NoError(t, err)
	assert.True(t, result.Purged)

	for _, gone := range []string{"/work/demo/stale.txt", "/work/demo/.git"} {
		exists, err := afero.Exists(dst, gone)
		require.NoError(t, err)
		assert.False(t, exists, "%s should have been purged", gone)
	}
	readme, err := afero.ReadFile(dst, "/work/demo/README.md")
	require.NoError(t, err)
	assert.Equal(t, "# starter\n", string(readme))
}

func TestMaterializeSourceMissing(t *testing.T) {
	dst := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(dst, "/work/demo/keep.txt", []byte("keep"), 0644))

	_, err := New(afero.NewMemMapFs(), dst).Materialize(context.Background(), selection("/tpl/missing", "/work/demo", true))
	var me *MaterializeError
	require.True(t, errors.As(err, &me))
	assert.Equal(t, MaterializeSourceMissing, me.Type)

	// nothing is purged when the template is missing
	data, err := afero.ReadFile(dst, "/work/demo/keep.txt")
	require.NoError(t, err)
	assert.Equal(t, "keep", string(data))
}

func TestMaterializeMalformedManifest(t *testing.T) {
	src := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(src, "/tpl/t/package.json", []byte(`{"name":`), 0644))
	require.NoError(t, afero.WriteFile(src, "/tpl/t/index.js", []byte("1"), 0644))
	dst := afero.NewMemMapFs()

	result, err := New(src, dst).Materialize(context.Background(), selection("/tpl/t", "/work/demo", false))
	var me *MaterializeError
	require.True(t, errors.As(err, &me))
	assert.Equal(t, MaterializeManifestInvalid, me.Type)
	assert.Equal(t, "/tpl/t/package.json", me.File)

	// fail fast, no rollback
	require.NotNil(t, result)
	exists, _ := afero.Exists(dst, "/work/demo/index.js")
	assert.True(t, exists)
}

func TestMaterializeCancelledBeforeWrites(t *testing.T) {
	src := afero.NewMemMapFs()
	writeTemplate(t, src, "/tpl/t")
	dst := afero.NewMemMapFs()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(src, dst).Materialize(ctx, selection("/tpl/t", "/work/demo", false))
	assert.ErrorIs(t, err, context.Canceled)
	exists, _ := afero.Exists(dst, "/work/demo")
	assert.False(t, exists)
}

func TestMaterializeOnDisk(t *testing.T) {
	root := t.TempDir()
	tplDir := filepath.Join(root, "templates", "template-x")
	fs := afero.NewOsFs()
	writeTemplate(t, fs, tplDir)

	binary := []byte{0x00, 0xff, 0x10, 0x80, '\n', '\r'}
	require.NoError(t, os.WriteFile(filepath.Join(tplDir, "src", "logo.bin"), binary, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tplDir, "run.sh"), []byte("#!/bin/sh\n"), 0755))

	target := filepath.Join(root, "out", "deep", "demo")
	_, err := New(fs, fs).Materialize(context.Background(), selection(tplDir, target, false))
	require.NoError(t, err)

	// every template file except the manifest is byte-identical
	err = filepath.Walk(tplDir, func(path string, info os.FileInfo, err error) error {
		require.NoError(t, err)
		rel, _ := filepath.Rel(tplDir, path)
		if info.IsDir() {
			got, statErr := os.Stat(filepath.Join(target, rel))
			require.NoError(t, statErr, rel)
			assert.True(t, got.IsDir(), rel)
			return nil
		}
		if rel == ManifestFile {
			return nil
		}
		want, _ := os.ReadFile(path)
		got, readErr := os.ReadFile(filepath.Join(target, rel))
		require.NoError(t, readErr, rel)
		assert.True(t, bytes.Equal(want, got), "content of %s differs", rel)
		return nil
	})
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(target, "run.sh"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
}

func TestMaterializeRejectsSymlinks(t *testing.T) {
	root := t.TempDir()
	tplDir := filepath.Join(root, "template-x")
	fs := afero.NewOsFs()
	writeTemplate(t, fs, tplDir)
	if err := os.Symlink(filepath.Join(tplDir, "README.md"), filepath.Join(tplDir, "LINK.md")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	_, err := New(fs, fs).Materialize(context.Background(), selection(tplDir, filepath.Join(root, "demo"), false))
	var me *MaterializeError
	require.True(t, errors.As(err, &me))
	assert.Equal(t, MaterializeUnsupported, me.Type)
}
