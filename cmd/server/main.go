// path: cmd/server/main.go
package main

import (
	"flag"
	"log"
	"os"

	"github.com/PracplayLLC/chess-app/internal/httpx"
	"github.com/PracplayLLC/chess-app/internal/store"
)

func main() {
	// Flags (env fallbacks).
	addr := flag.String("addr", getenv("CHESSAPP_ADDR", ":8080"), "listen address")
	dataDir := flag.String("data", getenv("CHESSAPP_DATA", ""), "saved-game data directory (empty disables persistence)")
	flag.Parse()

	var st *store.Store
	if *dataDir != "" {
		var err error
		st, err = store.Open(*dataDir)
		if err != nil {
			log.Fatalf("open store: %v", err)
		}
		defer st.Close()
		log.Printf("Saved games stored in %s", *dataDir)
	} else {
		log.Printf("No data directory. Saved-game endpoints disabled.")
	}

	srv := httpx.NewServer(st)
	if err := srv.Listen(*addr); err != nil {
		log.Fatal(err)
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
