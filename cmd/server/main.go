package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"vrppd-solver-core/internal/adapters/cache"
	"vrppd-solver-core/internal/adapters/persistence"
	"vrppd-solver-core/internal/adapters/scripting"
	"vrppd-solver-core/internal/api"
	"vrppd-solver-core/internal/config"
	"vrppd-solver-core/internal/platform/db"
	"vrppd-solver-core/internal/ports"
	"vrppd-solver-core/internal/solver/psa"
)

// main is the application composition root: it wires concrete adapters
// (SQLite, optionally Redis, optionally Lua) behind ports and starts the
// HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	port := config.Get("PORT", "8080")

	conn, err := db.OpenSQLite(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	if err := persistence.InitSchema(conn); err != nil {
		log.Fatal(err)
	}

	repo := persistence.NewSQLiteRunRepository(conn)

	router := api.NewRouter(api.Deps{
		Memo:      buildMemoCache(),
		Scorer:    buildScorer(),
		Repo:      repo,
		DistCache: cache.NewSQLiteMatrixCache(conn),
		PSACfg:    psa.DefaultConfig(),
		PSASeed:   int64(config.GetInt("PSA_SEED", 1)),
	})

	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// buildMemoCache returns a Redis-backed, rendezvous-sharded MemoCache when
// REDIS_ADDRS is set (comma-separated host:port list), so several solver
// processes can share TSP subresults. Otherwise exact.Solve falls back to
// its own in-process map (a nil MemoCache is valid).
func buildMemoCache() ports.MemoCache {
	raw := os.Getenv("REDIS_ADDRS")
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	addrs := strings.Split(raw, ",")
	shards := make([]*redis.Client, 0, len(addrs))
	for _, addr := range addrs {
		addr = strings.TrimSpace(addr)
		if addr == "" {
			continue
		}
		shards = append(shards, redis.NewClient(&redis.Options{Addr: addr}))
	}
	if len(shards) == 0 {
		return nil
	}

	memo, err := cache.NewRedisMemoCache(shards, config.Get("REDIS_KEYSPACE", "vrppd"))
	if err != nil {
		log.Printf("redis memo cache disabled: %v", err)
		return nil
	}
	return memo
}

// buildScorer returns a Lua-scripted ObjectiveScorer when OBJECTIVE_SCRIPT
// points at a readable file, otherwise nil (callers default to the
// identity scorer).
func buildScorer() ports.ObjectiveScorer {
	path := os.Getenv("OBJECTIVE_SCRIPT")
	if strings.TrimSpace(path) == "" {
		return nil
	}

	src, err := os.ReadFile(path)
	if err != nil {
		log.Printf("objective script disabled: read %q: %v", path, err)
		return nil
	}

	scorer, err := scripting.NewLuaObjectiveScorer(string(src))
	if err != nil {
		log.Printf("objective script disabled: %v", err)
		return nil
	}
	return scorer
}
