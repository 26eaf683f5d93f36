// Command analyze prints the level progression of every ruleset in a
// directory: lines needed per level, gravity interval and best clear score.
//
// Usage:
//
//	go run ./cmd/analyze [dir] [max-level]
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cast"

	"github.com/wricardo/blockfall/validate"
)

const defaultMaxLevel = 30

func main() {
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(w io.Writer, args []string) error {
	dir := "configs"
	maxLevel := defaultMaxLevel
	if len(args) > 0 {
		dir = args[0]
	}
	if len(args) > 1 {
		n, err := cast.ToIntE(args[1])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid max level %q", args[1])
		}
		maxLevel = n
	}

	results, err := validate.Dir(dir)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "=== RULESET PROGRESSION ===")
	for _, result := range results {
		fmt.Fprintln(w)
		if !result.Valid {
			fmt.Fprintf(w, "%s: skipped (%s)\n", result.File, result.Messages[0])
			continue
		}
		validate.WriteProgression(w, result.Ruleset, maxLevel)
	}
	return nil
}
