package arch_test

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	modulePath  = "github.com/papapumpkin/graphstat"
	internalPfx = modulePath + "/internal/"
)

var (
	repoRootOnce sync.Once
	repoRootPath string
)

// repoRoot walks up from this file until it finds go.mod.
func repoRoot(t *testing.T) string {
	t.Helper()
	repoRootOnce.Do(func() {
		_, thisFile, _, ok := runtime.Caller(0)
		if !ok {
			return
		}
		dir := filepath.Dir(thisFile)
		for {
			if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
				repoRootPath = dir
				return
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				return
			}
			dir = parent
		}
	})
	require.NotEmpty(t, repoRootPath, "could not find go.mod in any parent directory")
	return repoRootPath
}

func internalDirPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(repoRoot(t), "internal")
}

// internalPackages returns the package directories under internal/ that
// hold Go source, excluding arch_test itself.
func internalPackages(t *testing.T) []string {
	t.Helper()

	dir := internalDirPath(t)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var pkgs []string
	for _, e := range entries {
		if !e.IsDir() || e.Name() == "arch_test" {
			continue
		}
		if len(goFilesIn(t, filepath.Join(dir, e.Name()))) > 0 {
			pkgs = append(pkgs, e.Name())
		}
	}
	slices.Sort(pkgs)
	return pkgs
}

// goFilesIn returns the non-test .go files in dir.
func goFilesIn(t *testing.T, dir string) []string {
	t.Helper()
	return filesIn(t, dir, func(name string) bool {
		return strings.HasSuffix(name, ".go") && !strings.HasSuffix(name, "_test.go")
	})
}

// allGoFilesIn returns every .go file in dir, tests included.
func allGoFilesIn(t *testing.T, dir string) []string {
	t.Helper()
	return filesIn(t, dir, func(name string) bool {
		return strings.HasSuffix(name, ".go")
	})
}

func filesIn(t *testing.T, dir string, keep func(name string) bool) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var files []string
	for _, e := range entries {
		if !e.IsDir() && keep(e.Name()) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	slices.Sort(files)
	return files
}

// importsOf returns the internal packages imported by the non-test files
// in pkgDir, by first path component after internal/.
func importsOf(t *testing.T, pkgDir string) []string {
	t.Helper()

	seen := make(map[string]bool)
	fset := token.NewFileSet()
	for _, f := range goFilesIn(t, pkgDir) {
		node, err := parser.ParseFile(fset, f, nil, parser.ImportsOnly)
		require.NoError(t, err, "parsing imports in %s", f)
		for _, imp := range node.Imports {
			path := strings.Trim(imp.Path.Value, `"`)
			rel, ok := strings.CutPrefix(path, internalPfx)
			if !ok {
				continue
			}
			if idx := strings.Index(rel, "/"); idx != -1 {
				rel = rel[:idx]
			}
			seen[rel] = true
		}
	}

	var result []string
	for pkg := range seen {
		result = append(result, pkg)
	}
	slices.Sort(result)
	return result
}

// lineCount returns the number of lines in filePath. A missing trailing
// newline still counts the last line.
func lineCount(t *testing.T, filePath string) int {
	t.Helper()

	data, err := os.ReadFile(filePath)
	require.NoError(t, err)
	if len(data) == 0 {
		return 0
	}
	count := strings.Count(string(data), "\n")
	if data[len(data)-1] != '\n' {
		count++
	}
	return count
}

// forEachVar calls fn for every package-level var name declared in node
// along with its type expression and initializer, either of which may be
// nil.
func forEachVar(node *ast.File, fn func(name string, typ, val ast.Expr)) {
	for _, decl := range node.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.VAR {
			continue
		}
		for _, spec := range gd.Specs {
			vs, ok := spec.(*ast.ValueSpec)
			if !ok {
				continue
			}
			for i, name := range vs.Names {
				var val ast.Expr
				if i < len(vs.Values) {
					val = vs.Values[i]
				}
				fn(name.Name, vs.Type, val)
			}
		}
	}
}

// docText returns the text of the first non-nil comment group.
func docText(groups ...*ast.CommentGroup) string {
	for _, g := range groups {
		if g != nil {
			return g.Text()
		}
	}
	return ""
}

func TestInternalPackages(t *testing.T) {
	t.Parallel()

	pkgs := internalPackages(t)
	assert.NotContains(t, pkgs, "arch_test")
	for _, want := range []string{"graph", "paths", "centrality", "analysis", "config"} {
		assert.Contains(t, pkgs, want)
	}
}

func TestGoFilesIn(t *testing.T) {
	t.Parallel()

	files := goFilesIn(t, filepath.Join(internalDirPath(t), "graph"))
	require.NotEmpty(t, files)
	for _, f := range files {
		assert.False(t, strings.HasSuffix(f, "_test.go"), "unexpected test file %s", f)
	}
}

func TestImportsOf(t *testing.T) {
	t.Parallel()

	imports := importsOf(t, filepath.Join(internalDirPath(t), "centrality"))
	assert.Contains(t, imports, "graph")
}

func TestLineCount(t *testing.T) {
	t.Parallel()

	count := lineCount(t, filepath.Join(internalDirPath(t), "arch_test", "helpers_test.go"))
	assert.Greater(t, count, 50)
}
