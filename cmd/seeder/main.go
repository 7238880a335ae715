package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"

	"payhold/internal/config"
)

var (
	totalAccounts  int
	openingBalance int64
)

func init() {
	flag.IntVar(&totalAccounts, "accounts", 1000, "Number of wallet accounts to seed")
	flag.Int64Var(&openingBalance, "balance", 1_000_000, "Opening balance in minor units")
}

func main() {
	flag.Parse()

	cfg, err := config.NewLedger()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, cfg.DSN())
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer conn.Close(ctx)

	var count int
	_ = conn.QueryRow(ctx, "SELECT COUNT(*) FROM wallet_accounts").Scan(&count)
	if count >= totalAccounts {
		log.Printf("Database already has %d accounts. Skipping.", count)
		return
	}

	log.Printf("Generating %d accounts with balance %d...", totalAccounts, openingBalance)
	now := time.Now()
	rows := make([][]interface{}, 0, totalAccounts)
	for i := 0; i < totalAccounts; i++ {
		accountID := fmt.Sprintf("acct-%06d", i+1)
		rows = append(rows, []interface{}{accountID, openingBalance, now, now})
	}

	copyCount, err := conn.CopyFrom(
		ctx,
		pgx.Identifier{"wallet_accounts"},
		[]string{"account_id", "balance", "created_at", "updated_at"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		log.Fatalf("Bulk insert failed: %v", err)
	}

	log.Printf("Successfully seeded %d accounts.", copyCount)
}
