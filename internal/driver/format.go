// Package driver orchestrates formatting and tokenizing across files. It
// owns all I/O around the pure lexer/formatter core: collecting inputs,
// fanning work out across CPUs, consulting the change cache, and writing
// results back.
package driver

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/dcott7/stormatter/internal/format"
	"github.com/dcott7/stormatter/internal/fscache"
	"github.com/dcott7/stormatter/internal/source"
)

// SourceExt is the file extension collected when walking directories.
const SourceExt = ".storm"

// FormatOptions configures a multi-file formatting run.
type FormatOptions struct {
	// Options is the core formatting configuration.
	Options format.Options
	// Check reports whether files would change without writing anything.
	Check bool
	// Write rewrites changed files in place.
	Write bool
	// Stdout returns formatted content in the results instead of writing.
	Stdout bool
	// Cache, when non-nil, skips files whose recorded state still matches
	// disk and records files after successful writes. The caller saves it.
	Cache *fscache.Cache
}

// FormatResult captures the outcome for a single file.
type FormatResult struct {
	Path      string
	Changed   bool
	Skipped   bool // unchanged per the cache; file was not read
	Formatted []byte
	Err       error
}

// FormatPaths formats the given files and directories (recursively
// collecting *.storm files). Results come back in sorted path order. Each file is
// independent, so the work fans out across CPUs; a pass is a pure function
// of (content, options) and needs no coordination.
func FormatPaths(ctx context.Context, inputs []string, opts FormatOptions) ([]FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	files, err := collectSourceFiles(ctx, inputs)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("format: no source files found")
	}

	results := make([]FormatResult, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = formatOne(path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if opts.Cache != nil {
		for _, res := range results {
			if res.Err == nil && !res.Skipped && (!res.Changed || opts.Write) {
				opts.Cache.Update(res.Path)
			}
		}
	}
	return results, nil
}

func formatOne(path string, opts FormatOptions) FormatResult {
	res := FormatResult{Path: path}

	// Cache skipping only applies when no output payload is expected.
	if opts.Cache != nil && (opts.Write || opts.Check) {
		changed, err := opts.Cache.Changed(path)
		if err == nil && !changed {
			res.Skipped = true
			return res
		}
	}

	fileSet := source.NewFileSet()
	id, err := fileSet.Load(path)
	if err != nil {
		res.Err = err
		return res
	}
	file := fileSet.Get(id)

	formatted := []byte(format.Source(file, opts.Options))
	res.Changed = !equalContent(file.Content, formatted)

	switch {
	case opts.Check:
		// report only
	case opts.Stdout:
		res.Formatted = formatted
	case opts.Write:
		if res.Changed {
			if err := writePreservingMode(path, formatted); err != nil {
				res.Err = err
			}
		}
	default:
		res.Formatted = formatted
	}
	return res
}

func writePreservingMode(path string, content []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	return os.WriteFile(path, content, mode)
}

// collectSourceFiles expands the inputs into a sorted, deduplicated file
// list. Explicit file arguments are taken as-is regardless of extension;
// directories contribute their *.storm files recursively.
func collectSourceFiles(ctx context.Context, inputs []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	addFile := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, p := range inputs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			addFile(p)
			continue
		}

		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
				addFile(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}

func equalContent(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
