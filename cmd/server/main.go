package main

import (
	"log"

	"CampusConnect-backend/internal/server"
)

func main() {
	srv := server.NewServer()

	log.Printf("Server listening on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("Server failed to start: %s", err)
	}
}
