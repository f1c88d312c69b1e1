package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mmdatafocus/props_backend/config"
	"github.com/mmdatafocus/props_backend/docstore"
)

// Creates (or upgrades) the documents table backing the document store.
// Run once per environment before starting the service.
func main() {
	check := flag.Bool("check", false, "After migrating, write and delete a probe document to verify the store round-trips")
	flag.Parse()

	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized")
		os.Exit(1)
	}

	store := docstore.NewSQLStore(db)
	if err := store.MigrateTable(); err != nil {
		fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("documents table migrated")

	if *check {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		id, err := store.AddDocument(ctx, "migration_probe", map[string]any{
			"ran_at": time.Now().UTC().Format(time.RFC3339),
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "probe write: %v\n", err)
			os.Exit(1)
		}
		if _, err := store.GetDocument(ctx, "migration_probe", id); err != nil {
			fmt.Fprintf(os.Stderr, "probe read: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("probe document round-tripped")
	}
}
