package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"

	"github.com/halfcourt/dodgebrawl/config"
	"github.com/halfcourt/dodgebrawl/relay"
)

const version = "1.0.0"

func main() {
	wsPort := flag.Uint("port", 7777, "WebSocket listen port")
	httpPort := flag.Int("http-port", 7778, "HTTP status listen port")
	flag.Parse()

	r := relay.New(version, config.TickRate)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /status", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(r.CurrentStatus()); err != nil {
			log.Printf("[relay] status encode: %v", err)
		}
	})
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})

	go func() {
		addr := fmt.Sprintf(":%d", *httpPort)
		log.Printf("[relay] status endpoint on %s", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Fatalf("[relay] status server fatal: %v", err)
		}
	}()

	if err := r.Start(*wsPort); err != nil {
		log.Fatalf("[relay] fatal: %v", err)
	}
}
