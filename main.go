package main

import (
	"log"
	"net/http"

	"github.com/suaib92/tempmailr/tempmail"
)

func main() {
	cfg, addr := mustParseConfig()

	s, err := tempmail.New(cfg)
	if err != nil {
		log.Fatalf("Failed to setup tempmail server: %v", err)
	}

	log.Printf("Listening on %v", addr)
	log.Fatal(http.ListenAndServe(addr, s.Router))
}
