package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/mechtronglobal/backend/config"
	"github.com/mechtronglobal/backend/server"
	"github.com/mechtronglobal/backend/server/state"
	"github.com/mechtronglobal/backend/storage/content"
	"github.com/mechtronglobal/backend/storage/media/factory"
)

func main() {
	log.SetPrefix("mechtron: ")
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile | log.Lmsgprefix)

	configFile := flag.String("config", "config.yml", "Path to the configuration file (i.e., /etc/mechtron.yaml)")
	flag.Parse()

	if len(strings.Trim(*configFile, " ")) == 0 {
		flag.Usage()
		os.Exit(1)
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("skipping .env file: %v", err)
	}

	log.Println("loading configuration...")
	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	mediaStore, err := factory.Create(&cfg.Media)
	if err != nil {
		log.Fatalf("failed to initialize %q media store: %v", cfg.Media.Strategy, err)
	}
	log.Printf("media store ready (strategy %q)", mediaStore.Kind())

	contentStore, err := content.NewSQLStore(&cfg.Content)
	if err != nil {
		log.Fatalf("failed to initialize content store: %v", err)
	}
	defer contentStore.Close()

	log.Println("starting http server...")
	server.StartServer(&state.ServerState{
		Cfg:          cfg,
		MediaStore:   mediaStore,
		ContentStore: contentStore,
	})
}
