package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"timehelm.world/internal/persistence/snapshot"
	"timehelm.world/internal/sim/catalogs"
	"timehelm.world/internal/sim/structure"
)

// Offline inspection of runtime data: list worlds, query the sqlite world
// database, print snapshot summaries, preview the structure catalog.
// Read-only; safe against a live server.
func main() {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "db":
			dbCmd(os.Args[2:])
			return
		case "snapshot":
			snapshotCmd(os.Args[2:])
			return
		case "structures":
			structuresCmd(os.Args[2:])
			return
		}
	}
	listCmd(os.Args[1:])
}

func listCmd(args []string) {
	fs := flag.NewFlagSet("admin", flag.ExitOnError)
	dataDir := fs.String("data", "./data", "runtime data directory")
	worldID := fs.String("world", "", "world id (optional)")
	_ = fs.Parse(args)

	base := filepath.Join(*dataDir, "worlds")
	if *worldID != "" {
		base = filepath.Join(base, *worldID)
	}

	entries, err := os.ReadDir(base)
	if err != nil {
		fmt.Fprintln(os.Stderr, "read:", err)
		os.Exit(1)
	}
	for _, e := range entries {
		fmt.Println(e.Name())
	}
}

func dbCmd(args []string) {
	fs := flag.NewFlagSet("db", flag.ExitOnError)
	dataDir := fs.String("data", "./data", "runtime data directory")
	worldID := fs.String("world", "", "world id (required unless -db)")
	dbPath := fs.String("db", "", "sqlite db path (optional)")
	limit := fs.Int("limit", 50, "result limit")
	_ = fs.Parse(args)

	q := "state"
	if fs.NArg() > 0 {
		q = strings.TrimSpace(fs.Arg(0))
	}

	path := strings.TrimSpace(*dbPath)
	if path == "" {
		if strings.TrimSpace(*worldID) == "" {
			fmt.Fprintln(os.Stderr, "missing -world or -db")
			os.Exit(2)
		}
		path = filepath.Join(*dataDir, "worlds", *worldID, "world.db")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "open:", err)
		os.Exit(1)
	}
	defer db.Close()

	switch q {
	case "state":
		var minutes, tick int64
		var updated string
		err := db.QueryRow(`SELECT game_time_minutes, tick, updated_at FROM game_state WHERE id = 1`).Scan(&minutes, &tick, &updated)
		if err == sql.ErrNoRows {
			fmt.Println("no state row")
			return
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, "query:", err)
			os.Exit(1)
		}
		fmt.Printf("game_time_minutes=%d tick=%d updated_at=%s\n", minutes, tick, updated)

	case "entities":
		rows, err := db.Query(`SELECT world_id, entity_type, x, y, z, rotation, activity, updated_at FROM entities ORDER BY world_id LIMIT ?`, *limit)
		if err != nil {
			fmt.Fprintln(os.Stderr, "query:", err)
			os.Exit(1)
		}
		defer rows.Close()
		for rows.Next() {
			var id, typ, activity, updated string
			var x, y, z int64
			var rot float64
			if err := rows.Scan(&id, &typ, &x, &y, &z, &rot, &activity, &updated); err != nil {
				fmt.Fprintln(os.Stderr, "scan:", err)
				os.Exit(1)
			}
			fmt.Printf("%-24s %-6s pos=(%d,%d,%d) rot=%.2f activity=%s updated=%s\n", id, typ, x, y, z, rot, activity, updated)
		}

	case "players":
		rows, err := db.Query(`SELECT id, username, first_seen, last_seen FROM players_seen ORDER BY last_seen DESC LIMIT ?`, *limit)
		if err != nil {
			fmt.Fprintln(os.Stderr, "query:", err)
			os.Exit(1)
		}
		defer rows.Close()
		for rows.Next() {
			var id, username, first, last string
			if err := rows.Scan(&id, &username, &first, &last); err != nil {
				fmt.Fprintln(os.Stderr, "scan:", err)
				os.Exit(1)
			}
			fmt.Printf("%s %-16s first=%s last=%s\n", id, username, first, last)
		}

	default:
		fmt.Fprintf(os.Stderr, "unknown query %q (want state, entities or players)\n", q)
		os.Exit(2)
	}
}

// structuresCmd builds every placement from the plan catalog and reports
// element counts, optionally under the numeric-key visibility scheme. Useful
// for checking a plans.yaml edit before the server picks it up.
func structuresCmd(args []string) {
	fs := flag.NewFlagSet("structures", flag.ExitOnError)
	configDir := fs.String("configs", "./configs", "config directory")
	key := fs.String("key", "", "visibility key '0'-'9' (optional)")
	_ = fs.Parse(args)

	cats, err := catalogs.Load(*configDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load catalogs:", err)
		os.Exit(1)
	}

	var threshold *int
	if k := strings.TrimSpace(*key); k != "" {
		t, ok := structure.ThresholdForKey(rune(k[0]))
		if !ok || len(k) != 1 {
			fmt.Fprintf(os.Stderr, "bad -key %q (want a single digit)\n", k)
			os.Exit(2)
		}
		threshold = t
	}

	fmt.Printf("plans_digest=%s\n", cats.Plans.Digest)
	for _, pl := range cats.Plans.Placements {
		st := structure.Build(cats.Plans.ByID[pl.Plan], structure.Vec2{X: pl.X, Z: pl.Z})
		st.ApplyVisibility(threshold)

		hidden := 0
		for _, el := range st.Elements {
			if el.Opacity != structure.VisibleOpacity {
				hidden++
			}
		}
		fmt.Printf("%s at (%.0f,%.0f): elements=%d hidden=%d\n",
			pl.Plan, pl.X, pl.Z, len(st.Elements), hidden)
	}
}

func snapshotCmd(args []string) {
	fs := flag.NewFlagSet("snapshot", flag.ExitOnError)
	snapPath := fs.String("snapshot", "", "path to .snap.zst (required)")
	_ = fs.Parse(args)

	if strings.TrimSpace(*snapPath) == "" {
		fmt.Fprintln(os.Stderr, "missing -snapshot")
		os.Exit(2)
	}
	snap, err := snapshot.ReadSnapshot(*snapPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "read snapshot:", err)
		os.Exit(1)
	}
	fmt.Printf("snapshot v%d world=%s tick=%d seed=%d game_time_minutes=%d players=%d walkers=%d\n",
		snap.Header.Version, snap.Header.WorldID, snap.Header.Tick, snap.Seed,
		snap.GameTimeMinutes, len(snap.Players), len(snap.Walkers))
	if snap.Ball != nil {
		fmt.Printf("ball id=%s pos=(%.0f,%.0f,%.0f) vy=%.1f\n", snap.Ball.ID, snap.Ball.X, snap.Ball.Y, snap.Ball.Z, snap.Ball.VY)
	}
	if snap.PlansDig != "" {
		fmt.Printf("plans_digest=%s\n", snap.PlansDig)
	}
}
