package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"swarmisle/internal/persistence/indexdb"
	persistlog "swarmisle/internal/persistence/log"
	"swarmisle/internal/persistence/snapshot"
	"swarmisle/internal/protocol"
	"swarmisle/internal/sim/tuning"
	"swarmisle/internal/sim/world"
	"swarmisle/internal/transport/observer"
)

func main() {
	var (
		worldPath  = flag.String("world", "", "world record to start from (.json or .snap.zst); default: latest snapshot in -data, else ./configs/world.example.json")
		tuningPath = flag.String("tuning", "./configs/tuning.yaml", "path to tuning.yaml")
		dataDir    = flag.String("data", "./data", "run output directory")
		weeks      = flag.Int("weeks", 1, "narrative weeks to simulate")
		observe    = flag.String("observe", "", "serve the read-only observer feed on this address (empty to disable)")
		tickDelay  = flag.Duration("tick_delay", 0, "pause after each tick, for watching the observer feed")
		disableDB  = flag.Bool("disable_db", false, "disable the sqlite run index")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[sim] ", log.LstdFlags|log.Lmicroseconds)

	tune, err := tuning.Load(*tuningPath)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Fatalf("load tuning: %v", err)
		}
		logger.Printf("tuning not found (%s); using defaults", *tuningPath)
		tune = tuning.Defaults()
	}

	snapDir := filepath.Join(*dataDir, "snapshots")
	src := resolveWorldPath(*worldPath, snapDir)
	rec, err := loadWorld(src)
	if err != nil {
		logger.Fatalf("load world %s: %v", src, err)
	}

	idx, err := openIndex(*dataDir, *disableDB)
	if err != nil {
		logger.Fatalf("open index: %v", err)
	}
	if idx != nil {
		defer idx.Close()
	}

	tickLog := persistlog.NewTickLogger(*dataDir)
	defer tickLog.Close()
	weekLog := persistlog.NewWeekLogger(*dataDir)
	defer weekLog.Close()

	var hub *observer.Hub
	if *observe != "" {
		hub = observer.NewHub(logger)
	}
	frames := &framePublisher{hub: hub, delay: *tickDelay}

	e, err := world.Initialize(rec, tune,
		world.WithLogger(logger),
		world.WithTickLogger(multiTickLogger{tickLog, indexTickLogger(idx), frames}),
	)
	if err != nil {
		logger.Fatalf("initialize: %v", protocol.Reject(err))
	}
	frames.e = e
	logger.Printf("loaded %s tick=%d week=%d agents=%d food=%d", filepath.Base(src), e.CurrentTick(), e.Week(), len(e.Agents()), len(e.Food()))

	if idx != nil {
		if err := idx.SetRunMeta(rec.Meta.Seed, e.TerrainSeed(), e.TicksPerWeek()); err != nil {
			logger.Printf("index: run meta: %v", err)
		}
	}

	ctx, cancel := signalContext()
	defer cancel()

	if hub != nil {
		if err := hub.SetBootstrap(observer.BootstrapFromEngine(e)); err != nil {
			logger.Fatalf("observer bootstrap: %v", err)
		}
		srv := startObserver(*observe, hub, logger)
		defer func() {
			shutdownCtx, c := context.WithTimeout(context.Background(), 2*time.Second)
			defer c()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	for i := 0; i < *weeks; i++ {
		if ctx.Err() != nil {
			logger.Printf("interrupted at tick=%d", e.CurrentTick())
			break
		}
		sum, err := e.RunWeek()
		if err != nil {
			logger.Printf("run week: %v", err)
			break
		}
		if err := weekLog.WriteWeek(sum); err != nil {
			logger.Printf("week log: %v", err)
		}
		idx.RecordWeek(sum)
		if err := tickLog.Flush(); err != nil {
			logger.Printf("tick log flush: %v", err)
		}
		writeSnapshot(snapDir, e.Record(), idx, logger)
	}
}

func resolveWorldPath(flagPath, snapDir string) string {
	if p := strings.TrimSpace(flagPath); p != "" {
		return p
	}
	if p := snapshot.Latest(snapDir); p != "" {
		return p
	}
	return filepath.Join("configs", "world.example.json")
}

// loadWorld validates the raw document against the world schema before it
// is decoded into a record.
func loadWorld(path string) (world.Record, error) {
	var rec world.Record
	raw, err := snapshot.ReadRaw(path)
	if err != nil {
		return rec, err
	}
	if err := protocol.ValidateWorldJSON(raw); err != nil {
		return rec, err
	}
	if err := json.Unmarshal(raw, &rec); err != nil {
		return rec, err
	}
	return rec, nil
}

func writeSnapshot(dir string, rec world.Record, idx *indexdb.SQLiteIndex, logger *log.Logger) {
	path := snapshot.PathFor(dir, rec.Meta.Tick)
	if err := snapshot.WriteSnapshot(path, rec); err != nil {
		logger.Printf("snapshot write: %v", err)
		return
	}
	idx.RecordSnapshot(path, rec)
	logger.Printf("snapshot tick=%d week=%d -> %s", rec.Meta.Tick, rec.Meta.Week, path)
}

func startObserver(addr string, hub *observer.Hub, logger *log.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(200)
		_, _ = rw.Write([]byte("ok"))
	})
	mux.HandleFunc("/v1/bootstrap", hub.BootstrapHandler())
	mux.HandleFunc("/v1/observe", hub.WSHandler())

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		logger.Printf("observer listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Printf("observer: %v", err)
		}
	}()
	return srv
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
