package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/klauspost/compress/zstd"

	"timehelm.world/internal/sim/world"
)

// Replays the event log on stdout: every join, leave, move and activity
// change in tick order, with optional tick/player/kind filters.
func main() {
	var (
		eventsDir = flag.String("events", "", "events dir containing events-*.jsonl.zst (required)")
		fromTick  = flag.Uint64("from_tick", 0, "start from tick (inclusive, optional)")
		toTick    = flag.Uint64("to_tick", 0, "stop at tick (inclusive, optional)")
		playerID  = flag.String("player", "", "filter by player id (optional)")
		kind      = flag.String("kind", "", "filter by event kind (optional)")
	)
	flag.Parse()

	if *eventsDir == "" {
		fmt.Fprintln(os.Stderr, "missing -events")
		os.Exit(2)
	}

	files, err := filepath.Glob(filepath.Join(*eventsDir, "events-*.jsonl.zst"))
	if err != nil || len(files) == 0 {
		fmt.Fprintln(os.Stderr, "no event files found in", *eventsDir)
		os.Exit(1)
	}
	// Hour-rotated file names sort chronologically.
	sort.Strings(files)

	var total int
	for _, path := range files {
		n, err := replayFile(path, *fromTick, *toTick, *playerID, *kind)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", filepath.Base(path), err)
			os.Exit(1)
		}
		total += n
	}
	fmt.Fprintf(os.Stderr, "%d events\n", total)
}

func replayFile(path string, fromTick, toTick uint64, playerID, kind string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return 0, err
	}
	defer dec.Close()

	n := 0
	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	for sc.Scan() {
		var e world.EventEntry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			return n, fmt.Errorf("bad line: %w", err)
		}
		if fromTick > 0 && e.Tick < fromTick {
			continue
		}
		if toTick > 0 && e.Tick > toTick {
			continue
		}
		if playerID != "" && e.PlayerID != playerID {
			continue
		}
		if kind != "" && e.Kind != kind {
			continue
		}
		printEvent(e)
		n++
	}
	return n, sc.Err()
}

func printEvent(e world.EventEntry) {
	switch e.Kind {
	case "move", "join":
		fmt.Printf("tick=%-10d %-8s %-24s pos=(%.0f,%.0f,%.0f)\n", e.Tick, e.Kind, e.PlayerID, e.X, e.Y, e.Z)
	case "activity":
		fmt.Printf("tick=%-10d %-8s %-24s activity=%s\n", e.Tick, e.Kind, e.PlayerID, e.Activity)
	default:
		fmt.Printf("tick=%-10d %-8s %-24s\n", e.Tick, e.Kind, e.PlayerID)
	}
}
