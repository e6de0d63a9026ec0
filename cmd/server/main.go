package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/knowledge-engine/textgap/internal/api"
	"github.com/knowledge-engine/textgap/internal/config"
	"github.com/knowledge-engine/textgap/internal/engine"
)

func main() {
	// Setup Logging
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if level, err := logrus.ParseLevel(config.GetStringEnv("TEXTGAP_LOG_LEVEL", "info")); err == nil {
		logger.SetLevel(level)
	}
	entry := logger.WithField("service", "textgap-api")

	entry.Info("Starting textgap API Service")

	// 1. Config
	cfg, err := config.LoadFile(os.Getenv("TEXTGAP_CONFIG"))
	if err != nil {
		entry.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Engine
	eng, err := engine.NewEngine(cfg, entry)
	if err != nil {
		entry.Fatalf("Failed to initialize engine: %v", err)
	}

	// 3. API Server
	server := api.NewServer(eng, entry)

	entry.WithFields(logrus.Fields{
		"addr":          cfg.Server.Addr,
		"max_documents": cfg.Analysis.MaxDocuments,
		"robots":        cfg.Fetch.RespectRobots,
	}).Info("textgap API ready")
	if err := server.Start(cfg.Server.Addr); err != nil {
		entry.Fatal(err)
	}
}
