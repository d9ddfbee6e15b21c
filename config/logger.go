package config

import (
	"log"
	"os"

	"go.uber.org/zap"
)

// Logger defaults to a nop so packages can log before InitLogger runs
// (and so tests stay quiet).
var Logger = zap.NewNop().Sugar()

func InitLogger() {
	var (
		l   *zap.Logger
		err error
	)
	if os.Getenv("GIN_MODE") == "release" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	Logger = l.Sugar()
}
