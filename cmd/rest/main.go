package main

import (
	"context"
	"log"

	"mindwell-be/internal/bootstrap"
	"mindwell-be/internal/config"
	"mindwell-be/internal/server"
	"mindwell-be/internal/tracer"
	"mindwell-be/pkg/database"
)

func main() {
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)

	// Content safety scanner drains the post queue in the background
	go func() {
		log.Println("Background: starting safety scan consumer...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background consumer error: %v", err)
		}
	}()

	srv := server.New(cfg, container)

	log.Fatal(srv.Run())
}
