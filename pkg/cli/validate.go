package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sourcegraph/conc/pool"

	"github.com/bengentil/netplan/pkg/console"
	"github.com/bengentil/netplan/pkg/constants"
	"github.com/bengentil/netplan/pkg/netdef"
	"github.com/bengentil/netplan/pkg/parser"
)

// MaxConcurrentValidations bounds the worker pool used when validating a
// configuration directory.
const MaxConcurrentValidations = 8

// ValidateFile validates a single network definition and prints its
// diagnostic on failure.
func ValidateFile(path string, verbose bool) error {
	if err := validateOne(path); err != nil {
		fmt.Fprintln(os.Stderr, console.FormatDiagnostic(err.Error()))
		return fmt.Errorf("invalid network definition: %s", console.ToRelativePath(path))
	}
	if verbose {
		fmt.Println(console.FormatSuccessMessage(fmt.Sprintf("%s is valid", console.ToRelativePath(path))))
	}
	return nil
}

func validateOne(path string) error {
	doc, err := parser.LoadFile(path)
	if err != nil {
		return err
	}
	return netdef.Validate(doc)
}

// fileResult is the outcome of validating one file.
type fileResult struct {
	path string
	err  error
}

// ValidateAll validates every YAML file in dir in lexicographic order, the
// same order the configuration would be merged in. Files are checked
// concurrently; results are reported in file order with a summary table.
func ValidateAll(dir string, verbose bool) error {
	files, err := configFiles(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Println(console.FormatInfoMessage(fmt.Sprintf("no YAML files found in %s", dir)))
		return nil
	}

	spin := console.NewSpinner(fmt.Sprintf("Validating %d network definitions...", len(files)))
	spin.Start()

	p := pool.NewWithResults[fileResult]().WithMaxGoroutines(MaxConcurrentValidations)
	for _, path := range files {
		p.Go(func() fileResult {
			return fileResult{path: path, err: validateOne(path)}
		})
	}
	results := p.Wait()
	spin.Stop()

	// pool results arrive in completion order; report in file order
	byPath := make(map[string]error, len(results))
	for _, res := range results {
		byPath[res.path] = res.err
	}

	var rows [][]string
	failed := 0
	for _, path := range files {
		if err := byPath[path]; err != nil {
			failed++
			rows = append(rows, []string{console.ToRelativePath(path), "invalid"})
			fmt.Fprintln(os.Stderr, console.FormatDiagnostic(err.Error()))
		} else {
			rows = append(rows, []string{console.ToRelativePath(path), "ok"})
		}
	}

	if verbose || failed > 0 {
		fmt.Println(console.RenderTable(console.TableConfig{
			Title:   fmt.Sprintf("Validated %d network definitions", len(files)),
			Headers: []string{"File", "Status"},
			Rows:    rows,
		}))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d network definitions are invalid", failed, len(files))
	}
	if verbose {
		fmt.Println(console.FormatSuccessMessage(fmt.Sprintf("all %d network definitions are valid", len(files))))
	}
	return nil
}

// configFiles lists the YAML files of a configuration directory in
// lexicographic order.
func configFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if filepath.Ext(entry.Name()) == constants.YAMLExtension {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// WatchAndValidate watches a configuration directory and revalidates
// network definitions as they change.
func WatchAndValidate(dir string, verbose bool) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}

	fmt.Printf("Watching for file changes in %s...\n", dir)
	if verbose {
		fmt.Println("Press Ctrl+C to stop watching.")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Debouncing setup
	const debounceDelay = 300 * time.Millisecond
	var debounceTimer *time.Timer
	modified := make(map[string]struct{})

	if err := ValidateAll(dir, verbose); err != nil {
		fmt.Println(console.FormatWarningMessage(fmt.Sprintf("Initial validation failed: %v", err)))
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher channel closed")
			}
			if !strings.HasSuffix(event.Name, constants.YAMLExtension) {
				continue
			}
			if verbose {
				fmt.Println(console.FormatVerboseMessage(fmt.Sprintf("Detected change: %s (%s)", event.Name, event.Op.String())))
			}

			switch {
			case event.Has(fsnotify.Remove):
				if verbose {
					fmt.Println(console.FormatVerboseMessage(fmt.Sprintf("Removed: %s", event.Name)))
				}
			case event.Has(fsnotify.Write) || event.Has(fsnotify.Create):
				modified[event.Name] = struct{}{}

				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(debounceDelay, func() {
					files := make([]string, 0, len(modified))
					for file := range modified {
						files = append(files, file)
					}
					modified = make(map[string]struct{})
					sort.Strings(files)

					for _, file := range files {
						// the diagnostic is printed by ValidateFile
						_ = ValidateFile(file, verbose)
					}
				})
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			if verbose {
				fmt.Println(console.FormatWarningMessage(fmt.Sprintf("Watcher error: %v", err)))
			}

		case <-sigChan:
			fmt.Println("\nStopping watch mode...")
			return nil
		}
	}
}
