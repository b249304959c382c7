package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"infinite-experiment/logbook/internal/auth"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

type tokenConfig struct {
	Secret string `env:"API_SECRET,required"`
}

func main() {
	subject := flag.String("subject", "", "who the token is issued to")
	ttl := flag.Duration("ttl", 30*24*time.Hour, "token lifetime")
	envFile := flag.String("env", ".env", "optional .env file")
	flag.Parse()

	if *subject == "" {
		log.Fatal("-subject is required")
	}

	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("load %s: %v", *envFile, err)
	}

	var cfg tokenConfig
	if err := envdecode.Decode(&cfg); err != nil {
		log.Fatalf("read API_SECRET: %v", err)
	}

	token, err := auth.NewTokenService([]byte(cfg.Secret)).Issue(*subject, *ttl)
	if err != nil {
		log.Fatalf("issue token: %v", err)
	}

	fmt.Println("New API Token:", token)
}
