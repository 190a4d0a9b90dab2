package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/arawak/agora/internal/config"
	"github.com/arawak/agora/internal/store"
	"github.com/arawak/agora/migrations"
)

var version = "dev"

func main() {
	fmt.Printf("agora-migrate version %s\n", version)

	cfg, err := config.Load()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	dsn := cfg.DBDSN
	if cfg.DBDriver == "sqlite" {
		dsn = store.SQLiteDSN(dsn)
	}
	dir := flag.String("dir", "up", "migration direction: up or down")
	flag.Parse()

	switch *dir {
	case "up":
		err = migrations.Up(cfg.DBDriver, dsn)
	case "down":
		err = migrations.Down(cfg.DBDriver, dsn)
	default:
		err = fmt.Errorf("unknown direction: %s", *dir)
	}
	if err != nil {
		fmt.Println("migration error:", err)
		os.Exit(1)
	}
}
