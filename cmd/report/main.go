package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/claimsight/claimsight/internal/config"
	"github.com/claimsight/claimsight/internal/infrastructure/report/excel"
	"github.com/claimsight/claimsight/internal/infrastructure/repository/postgres"
	"github.com/claimsight/claimsight/internal/observability/logging"
)

func main() {
	out := flag.String("out", "claims_report.xlsx", "output XLSX path")
	limit := flag.Int("limit", 500, "maximum number of claims to include")
	flag.Parse()

	cfg := config.Load()
	slog.SetDefault(logging.NewJSONLogger("report", cfg.LogLevel))

	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	defer db.Close()

	repo := postgres.NewClaimRepository(db)
	claims, err := repo.ListRecent(context.Background(), *limit)
	if err != nil {
		log.Fatalf("list claims: %v", err)
	}
	if len(claims) == 0 {
		fmt.Println("no claims to report")
		os.Exit(0)
	}

	if err := excel.WriteClaimsReport(*out, claims); err != nil {
		log.Fatalf("write report: %v", err)
	}
	fmt.Printf("wrote %d claims to %s\n", len(claims), *out)
}
