package main

import (
	"context"
	"flag"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"PDFNarrator/internal/config"
	"PDFNarrator/internal/service/merge"
)

// partSuffix matches the numeric part suffix in filenames like
// doc_part0002.mp3, used to restore index order from a shell glob.
var partSuffix = regexp.MustCompile(`_part(\d{1,6})$`)

// Small utility: merges already-synthesized part files into one audio file.
//
// Usage: mergeparts [flags] <out.mp3|out.wav> <part...>
func main() {
	cfg := config.NewConfig()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	sugar := logger.Sugar()
	defer func() {
		_ = logger.Sync()
	}()

	if flag.NArg() < 2 {
		sugar.Fatal("usage: mergeparts [flags] <out.mp3|out.wav> <part...>")
	}
	out := flag.Arg(0)
	parts := sortByPartSuffix(flag.Args()[1:])

	merger, err := merge.ForOutput(out, time.Duration(cfg.GapMs)*time.Millisecond, sugar)
	if err != nil {
		sugar.Fatalw("cannot merge", "error", err)
	}
	if err := merger.Merge(context.Background(), parts, out); err != nil {
		sugar.Fatalw("merge failed", "error", err)
	}

	if d, derr := merge.Duration(out); derr == nil {
		sugar.Infow("merged audio written", "path", out, "parts", len(parts), "duration", d.String())
	} else {
		sugar.Infow("merged audio written", "path", out, "parts", len(parts))
	}
}

// sortByPartSuffix orders paths by their numeric _part suffix when present;
// paths without a suffix keep their original order after the numbered ones.
func sortByPartSuffix(paths []string) []string {
	type entry struct {
		path  string
		num   int
		plain bool
		pos   int
	}
	entries := make([]entry, len(paths))
	for i, p := range paths {
		stem := strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
		e := entry{path: p, plain: true, pos: i}
		if m := partSuffix.FindStringSubmatch(stem); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				e.num, e.plain = n, false
			}
		}
		entries[i] = e
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].plain != entries[j].plain {
			return !entries[i].plain
		}
		if entries[i].num != entries[j].num {
			return entries[i].num < entries[j].num
		}
		return entries[i].pos < entries[j].pos
	})
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.path
	}
	return out
}
