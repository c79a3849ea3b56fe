package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	persistlog "timehelm.world/internal/persistence/log"
	"timehelm.world/internal/persistence/snapshot"
	"timehelm.world/internal/persistence/worlddb"
	"timehelm.world/internal/sim/catalogs"
	"timehelm.world/internal/sim/tuning"
	"timehelm.world/internal/sim/world"
	"timehelm.world/internal/transport/ws"
)

func main() {
	var (
		addr       = flag.String("addr", ":8080", "http listen address")
		worldID    = flag.String("world", "world_1", "world id")
		seed       = flag.Int64("seed", 1337, "world seed (used only when starting a fresh world)")
		configDir  = flag.String("configs", "./configs", "config directory")
		dataDir    = flag.String("data", "./data", "runtime data directory")
		tuningPath = flag.String("tuning", "", "path to tuning.yaml (default: <configs>/tuning.yaml)")
		disableDB  = flag.Bool("disable_db", false, "disable the sqlite world database")

		snapPath   = flag.String("snapshot", "", "path to snapshot to load (optional)")
		loadLatest = flag.Bool("load_latest_snapshot", true, "load latest snapshot from data dir if present (when -snapshot is empty)")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lmicroseconds)

	cats, err := catalogs.Load(*configDir)
	if err != nil {
		logger.Fatalf("load catalogs: %v", err)
	}

	worldDir := filepath.Join(*dataDir, "worlds", *worldID)
	_ = os.MkdirAll(worldDir, 0o755)

	tp := strings.TrimSpace(*tuningPath)
	if tp == "" {
		tp = filepath.Join(*configDir, "tuning.yaml")
	}
	tune, err := tuning.Load(tp)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Printf("tuning not found (%s); using defaults", tp)
			tune = tuning.Defaults()
		} else {
			logger.Fatalf("load tuning: %v", err)
		}
	}

	var db *worlddb.SQLiteStore
	if !*disableDB {
		db, err = worlddb.OpenSQLite(filepath.Join(worldDir, "world.db"))
		if err != nil {
			logger.Fatalf("open world db: %v", err)
		}
		defer db.Close()
	}

	w, err := world.New(world.Config{
		ID:          *worldID,
		TickRateHz:  tune.TickRateHz,
		BroadcastHz: tune.BroadcastHz,
		BoundaryCm:  tune.BoundaryCm,
		Seed:        *seed,

		BallSpawnX:              tune.Ball.SpawnX,
		BallSpawnY:              tune.Ball.SpawnY,
		BallSpawnZ:              tune.Ball.SpawnZ,
		BallGravityCmS2:         tune.Ball.GravityCmS2,
		BallRestitutionPermille: tune.Ball.RestitutionPermille,

		WalkerCount:            tune.Walkers.Count,
		WalkerDecideEveryTicks: tune.Walkers.DecideEveryTicks,
		WalkerStepCmPerTick:    tune.Walkers.StepCmPerTick,
		WalkerIdlePermille:     tune.Walkers.IdlePermille,
		WalkerTurnPermille:     tune.Walkers.TurnPermille,
	}, cats)
	if err != nil {
		logger.Fatalf("world: %v", err)
	}

	// Resume: snapshot wins over the database row; the database only carries
	// the last persisted game time as a fallback.
	snapshotToLoad := strings.TrimSpace(*snapPath)
	if snapshotToLoad == "" && *loadLatest {
		snapshotToLoad = latestSnapshot(worldDir)
	}
	if snapshotToLoad != "" {
		snap, err := snapshot.ReadSnapshot(snapshotToLoad)
		if err != nil {
			logger.Fatalf("read snapshot: %v", err)
		}
		if snap.Header.WorldID != "" && snap.Header.WorldID != *worldID {
			logger.Fatalf("snapshot world id mismatch: flag=%s snap=%s", *worldID, snap.Header.WorldID)
		}
		if err := w.Restore(snap); err != nil {
			logger.Fatalf("restore snapshot: %v", err)
		}
		logger.Printf("resumed from snapshot=%s tick=%d", filepath.Base(snapshotToLoad), w.CurrentTick())
	} else if db != nil {
		if minutes, ok, err := db.LoadGameTime(context.Background()); err != nil {
			logger.Printf("world db: load game time: %v", err)
		} else if ok {
			w.SyncClock(minutes, time.Now())
			logger.Printf("resumed game time from world db: %d minutes", minutes)
		}
	}

	ctx, cancel := signalContext()
	defer cancel()

	eventLog := persistlog.NewEventLogger(worldDir)
	defer eventLog.Close()
	w.SetEventLogger(eventLog)

	go func() {
		if err := w.Run(ctx); err != nil && err != context.Canceled {
			logger.Printf("world stopped: %v", err)
		}
	}()

	// Periodic persistence off the sim thread.
	go persistLoop(ctx, w, db, worldDir, cats.Plans.Digest, tune, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(200)
		_, _ = rw.Write([]byte("ok"))
	})
	// Static geometry for client scene setup. Structures are generated at
	// world creation and never mutated, so this is safe off the sim thread.
	mux.HandleFunc("/structures", func(rw http.ResponseWriter, r *http.Request) {
		rw.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(rw).Encode(w.Structures())
	})
	mux.HandleFunc("/ws", ws.NewServer(w, logger).Handler())

	srv := &http.Server{
		Addr:              *addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel2()
		_ = srv.Shutdown(ctx2)
	}()

	logger.Printf("listening on %s", *addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("ListenAndServe: %v", err)
	}
}

// persistLoop periodically asks the world loop for an export and writes it to
// the database, plus a full snapshot on a longer cadence.
func persistLoop(ctx context.Context, w *world.World, db *worlddb.SQLiteStore, worldDir, plansDigest string, tune tuning.Tuning, logger *log.Logger) {
	persistEvery := time.Duration(tune.PersistEverySec) * time.Second
	snapshotEvery := time.Duration(tune.SnapshotEverySec) * time.Second

	persistTicker := time.NewTicker(persistEvery)
	defer persistTicker.Stop()
	snapTicker := time.NewTicker(snapshotEvery)
	defer snapTicker.Stop()

	export := func() (world.Export, bool) {
		respCh := make(chan world.Export, 1)
		select {
		case w.Export() <- world.ExportRequest{Resp: respCh}:
		case <-ctx.Done():
			return world.Export{}, false
		}
		select {
		case ex := <-respCh:
			return ex, true
		case <-ctx.Done():
			return world.Export{}, false
		}
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-persistTicker.C:
			ex, ok := export()
			if !ok {
				return
			}
			if db != nil {
				db.RecordExport(ex)
			}
		case <-snapTicker.C:
			ex, ok := export()
			if !ok {
				return
			}
			snap := w.BuildSnapshot(ex, plansDigest)
			path := filepath.Join(worldDir, "snapshots", fmt.Sprintf("%d.snap.zst", snap.Header.Tick))
			if err := snapshot.WriteSnapshot(path, snap); err != nil {
				logger.Printf("snapshot write: %v", err)
				continue
			}
			logger.Printf("snapshot written: %s", filepath.Base(path))
		}
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 2)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-ch
		cancel()
	}()
	return ctx, cancel
}

func latestSnapshot(worldDir string) string {
	dir := filepath.Join(worldDir, "snapshots")
	ents, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	var best string
	var bestTick uint64
	for _, e := range ents {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".snap.zst") {
			continue
		}
		base := strings.TrimSuffix(name, ".snap.zst")
		tick, err := strconv.ParseUint(base, 10, 64)
		if err != nil {
			continue
		}
		if best == "" || tick > bestTick {
			bestTick = tick
			best = filepath.Join(dir, name)
		}
	}
	return best
}
