package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/aclements/quickfilter/api"
	"github.com/aclements/quickfilter/config"
	"github.com/aclements/quickfilter/internal/logger"
	"github.com/aclements/quickfilter/internal/session"
)

const version = "1.0.0"

func main() {
	var (
		help       = flag.Bool("help", false, "Show help message")
		showVer    = flag.Bool("version", false, "Show version information")
		configPath = flag.String("config", "", "Path to a TOML config file")
		port       = flag.String("port", "", "Port to run the server on (overrides config)")
		dataDir    = flag.String("data-dir", "", "Directory for session snapshots (overrides config)")
		logLevel   = flag.String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
	)

	flag.Parse()

	if *help {
		fmt.Printf("quickfilter - a faceted filtering engine with viable-value narrowing\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nExamples:\n")
		fmt.Printf("  %s                            # Start server on default port 8080\n", os.Args[0])
		fmt.Printf("  %s --port 9000                # Start server on port 9000\n", os.Args[0])
		fmt.Printf("  %s --config ./quickfilter.toml\n", os.Args[0])
		return
	}

	if *showVer {
		fmt.Printf("quickfilter v%s\n", version)
		return
	}

	cfg, err := config.LoadServerConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "quickfilter: %v\n", err)
		os.Exit(1)
	}
	if *port != "" {
		cfg.Port = *port
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	logger.SetLevel(cfg.LogLevel)
	log := logger.New("quickfilter")
	log.Info("starting", "version", version, "data_dir", cfg.DataDir)

	sessions := session.NewManager(cfg.DataDir)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(api.CORSMiddleware())
	router.Use(api.RequestSizeLimitMiddleware(cfg.MaxBodyBytes))
	api.SetupRoutes(router, sessions)

	log.Info("listening", "port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("server failed", "err", err)
	}
}
