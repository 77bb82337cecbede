// Package main runs the levelup MCP server over stdio. The backend mounts
// the same server at /mcp over HTTP.
package main

import (
	"context"
	"flag"
	"log"
	"net"
	"os"

	"github.com/2beens/levelup/internal/config"
	"github.com/2beens/levelup/internal/db"
	levelupmcp "github.com/2beens/levelup/internal/mcp"
	"github.com/2beens/levelup/internal/missions"
	"github.com/2beens/levelup/internal/records"
	"github.com/2beens/levelup/internal/training"
	"github.com/2beens/levelup/internal/users"

	"github.com/go-redis/redis/v8"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("location: %v", err)
	}

	ctx := context.Background()
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		TracingEnabled: false,
	})
	if err != nil {
		log.Fatalf("db pool: %v", err)
	}
	defer dbPool.Close()

	// mission flags are read from the store the backend writes to
	var flagStore missions.FlagStore = missions.NewMemoryFlagStore()
	if cfg.RedisHost != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
			Password: os.Getenv("LEVELUP_REDIS_PASS"),
		})
		defer func() { _ = rdb.Close() }()
		flagStore = missions.NewRedisFlagStore(rdb, missions.DefaultFlagsKey)
	}
	missionsEngine, err := missions.NewEngine(ctx, missions.EngineParams{
		Catalog: missions.DefaultCatalog(),
		Store:   flagStore,
	})
	if err != nil {
		log.Fatalf("missions engine: %v", err)
	}

	usersRepo := users.NewRepo(dbPool)
	defaultUser, err := usersRepo.EnsureDefault(ctx, cfg.DefaultUserName)
	if err != nil {
		log.Fatalf("default user: %v", err)
	}

	server := levelupmcp.NewServer(levelupmcp.ServerParams{
		Schema:        levelupmcp.NewPoolSchemaRepo(dbPool),
		Users:         usersRepo,
		Missions:      missionsEngine,
		Series:        records.NewSeries(records.NewRepo(dbPool), training.NewRepo(dbPool), loc),
		DefaultUserID: defaultUser.ID,
	})

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatal(err)
	}
}
