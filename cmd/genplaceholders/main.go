package main

import (
	"flag"
	"os"

	"github.com/sirupsen/logrus"

	"chosenoffset.com/soulsworn/internal/placeholders"
	"chosenoffset.com/soulsworn/internal/simulation"
)

func main() {
	dataDir := flag.String("data", "data", "data directory to write images/ into")
	configPath := flag.String("config", "data/rules.yaml", "rules file the sprite sizes come from")
	flag.Parse()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log := logrus.WithField("component", "genplaceholders")

	cfg, err := simulation.LoadConfig(*configPath)
	if err != nil {
		log.WithError(err).Error("failed to load rules")
		os.Exit(1)
	}

	if err := placeholders.Generate(*dataDir, cfg); err != nil {
		log.WithError(err).Error("failed to generate placeholders")
		os.Exit(1)
	}
	log.Info("placeholder graphics are ready, run the game to see them")
}
