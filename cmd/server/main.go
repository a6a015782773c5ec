package main

import (
	"flag"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethyca/fides-consent-service/internal/system/config"
	"github.com/ethyca/fides-consent-service/internal/system/constants"
	syscontext "github.com/ethyca/fides-consent-service/internal/system/context"
	"github.com/ethyca/fides-consent-service/internal/system/database/mongo"
	"github.com/ethyca/fides-consent-service/internal/system/log"
	"github.com/ethyca/fides-consent-service/internal/system/managers"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	fcsHome := getFCSHome()
	const configFile = "repository/conf/deployment.yaml"

	envFiles, err := filepath.Glob("config/*.env")
	if err == nil && len(envFiles) > 0 {
		_ = godotenv.Load(envFiles...)
	}

	// Load the configuration file
	fcsConfig, err := config.LoadConfig(fcsHome, configFile)
	if err != nil {
		stdlog.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize runtime configurations.
	if err := config.InitializeFCSRuntime(fcsHome, fcsConfig); err != nil {
		stdlog.Fatalf("Failed to initialize runtime: %v", err)
	}

	// Initialize logger
	if err := log.Init(fcsConfig.Log.LogLevel); err != nil {
		stdlog.Fatalf("Failed to initialize logger: %v", err)
	}
	logger := log.GetLogger()

	// Initialize databases
	validateDatabaseConfig(fcsConfig)
	if _, err := mongo.Connect(fcsConfig.Mongo.URI, fcsConfig.Mongo.Database); err != nil {
		logger.Fatal("Failed to connect to MongoDB", log.Error(err))
	}

	serverAddr := fmt.Sprintf("%s:%d", fcsConfig.Addr.Host, fcsConfig.Addr.Port)
	handler := withTraceID(enableCORS(initMultiplexer(), fcsConfig.Auth.CORSAllowedOrigins))
	logger.Info("Fides consent service starting", log.String("addr", serverAddr))
	ln, err := net.Listen("tcp", serverAddr)
	if err != nil {
		logger.Fatal("Failed to start listener", log.Error(err))
	}

	server := &http.Server{Handler: handler}
	if err := server.Serve(ln); err != nil {
		logger.Error("Failed to serve requests", log.Error(err))
	}
}

func validateDatabaseConfig(fcsConfig *config.Config) {
	ds := fcsConfig.DataSource
	if ds.Hostname == "" || ds.Port == 0 || ds.Username == "" || ds.Name == "" {
		stdlog.Fatal("One or more PostgreSQL configuration values are missing")
	}
}

// initMultiplexer initializes the HTTP multiplexer and registers the services.
func initMultiplexer() *http.ServeMux {

	mux := http.NewServeMux()
	serviceManager := managers.NewServiceManager(mux)

	// Register the services.
	if err := serviceManager.RegisterServices(constants.ApiBasePath); err != nil {
		log.GetLogger().Error("Failed to register the services", log.Error(err))
	}

	return mux
}

// withTraceID assigns a trace ID to every request, honoring one supplied
// by an upstream proxy, and echoes it back to the caller.
func withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(constants.HeaderTraceID)
		if traceID == "" {
			traceID = syscontext.GenerateTraceID()
		}
		w.Header().Set(constants.HeaderTraceID, traceID)
		next.ServeHTTP(w, r.WithContext(syscontext.WithTraceID(r.Context(), traceID)))
	})
}

func enableCORS(next http.Handler, allowedOrigins []string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowOrigin(origin, allowedOrigins) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
			w.Header().Set("Access-Control-Allow-Headers", "*")
			w.Header().Set("Access-Control-Expose-Headers", "Content-Length")
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func allowOrigin(origin string, allowedOrigins []string) bool {
	if origin == "" {
		return false
	}
	for _, allowed := range allowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}

func getFCSHome() string {

	// Parse project directory from command line arguments.
	projectHome := ""
	projectHomeFlag := flag.String("fcsHome", "", "Path to the consent service home directory")
	flag.Parse()

	if *projectHomeFlag != "" {
		projectHome = *projectHomeFlag
	} else {
		// If no command line argument is provided, use the current working directory.
		dir, dirErr := os.Getwd()
		if dirErr != nil {
			stdlog.Fatalf("Failed to get current working directory: %v", dirErr)
		}
		projectHome = dir
	}

	return projectHome
}
