package main

import (
	"os"

	"interview-coach-go/internal/logger"
)

func main() {
	log := logger.NewWithOutput(os.Stderr)
	if err := newApp(log).Run(os.Args); err != nil {
		log.WithError(err).Fatal("coach failed")
	}
}
