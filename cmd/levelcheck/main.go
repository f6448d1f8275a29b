// Command levelcheck parses level files against the legend and reports
// problems. It exits 1 when any file fails to parse.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/milk9111/athora/obj"
	"github.com/milk9111/athora/prefabs"
	"gopkg.in/yaml.v3"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("levelcheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	legendPath := fs.String("legend", "", "legend YAML file (defaults to the game's legend)")
	configDir := fs.String("config", "prefabs", "directory of prefab overrides")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: levelcheck [-legend FILE] [-config DIR] FILE...")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	prefabs.SetDir(*configDir)
	legend, err := loadLegend(*legendPath)
	if err != nil {
		fmt.Fprintf(stderr, "levelcheck: %v\n", err)
		return 1
	}

	failed := false
	for _, path := range fs.Args() {
		if !check(path, legend, stdout) {
			failed = true
		}
	}
	if failed {
		return 1
	}
	return 0
}

func loadLegend(path string) (*obj.Legend, error) {
	b, err := prefabs.LoadBundle()
	if err != nil {
		return nil, err
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		var spec prefabs.LegendSpec
		if err := yaml.Unmarshal(data, &spec); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		b.Legend = spec
	}
	return obj.NewLegend(b, obj.NewCatalog(b.Items, b.Bullet))
}

// check reports on one file and returns false when it does not parse.
// Unknown characters are warnings since the game treats them as empty.
func check(path string, legend *obj.Legend, w io.Writer) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(w, "%s: %v\n", path, err)
		return false
	}
	text := string(data)

	for row, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		for col, ch := range []rune(line) {
			if ch != ' ' && !legend.Known(ch) {
				fmt.Fprintf(w, "%s:%d:%d: warning: unknown character %q\n", path, row+1, col+1, ch)
			}
		}
	}

	lvl, err := obj.Parse(filepath.Base(path), text, legend)
	if err != nil {
		fmt.Fprintf(w, "%s: %v\n", path, err)
		return false
	}
	fmt.Fprintf(w, "%s: ok (%d objects, %d npcs)\n", path, len(lvl.Objects), len(lvl.NPCs))
	return true
}
