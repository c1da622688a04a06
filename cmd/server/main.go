package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"casino-platform/internal/app"
)

func main() {
	server, err := app.NewServer()
	if err != nil {
		log.Fatal(err)
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		if err := server.Shutdown(); err != nil {
			log.Println("shutdown:", err)
		}
	}()

	if err := server.Start(); err != nil {
		log.Fatal(err)
	}
}
