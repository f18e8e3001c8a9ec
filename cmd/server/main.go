package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/appforms/backend/internal/api"
	"github.com/appforms/backend/internal/auth"
	"github.com/appforms/backend/internal/config"
	"github.com/appforms/backend/internal/forms"
	"github.com/appforms/backend/internal/partners"
	"github.com/appforms/backend/internal/storage"
)

// Version info (set during build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// .env is optional; real env vars win either way
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		exePath, err := os.Executable()
		if err != nil {
			fmt.Printf("Failed to get executable path: %v\n", err)
			os.Exit(1)
		}
		configPath = filepath.Join(filepath.Dir(exePath), "appforms.yaml")
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		fmt.Printf("Failed to create directories: %v\n", err)
		os.Exit(1)
	}

	store, localStore, err := buildStore(cfg)
	if err != nil {
		fmt.Printf("Failed to initialize storage: %v\n", err)
		os.Exit(1)
	}

	provider, err := buildAuthProvider(cfg)
	if err != nil {
		fmt.Printf("Failed to initialize auth: %v\n", err)
		os.Exit(1)
	}

	catalog, err := partners.Load(cfg.Partners.CatalogPath)
	if err != nil {
		fmt.Printf("Warning: failed to load partner catalog: %v\n", err)
		catalog = &partners.Catalog{}
	}

	manager := forms.NewManager(store)

	handlers := api.NewHandlers(&api.Dependencies{
		Manager:    manager,
		Partners:   catalog,
		Auth:       provider,
		LocalStore: localStore,
		Version:    Version,
	})

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/api/health"
		},
	}))

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 1024 * 4,
	}))

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))

	e.Use(middleware.Gzip())
	e.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	if cfg.Server.EnableCORS {
		origins := strings.Split(cfg.Server.AllowOrigins, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		if len(origins) == 0 || (len(origins) == 1 && origins[0] == "") {
			origins = []string{"*"}
		}
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: origins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		}))
	}

	api.RegisterRoutes(e, handlers, provider)

	s := &http.Server{
		Addr:         cfg.GetServerAddr(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	fmt.Printf("Application Forms Service %s (built %s)\n", Version, BuildTime)
	fmt.Printf("  Config:  %s\n", configPath)
	fmt.Printf("  Backend: %s (bucket %s)\n", cfg.Storage.Backend, cfg.Storage.Bucket)
	fmt.Printf("  Listen:  http://%s\n\n", cfg.GetServerAddr())

	e.Logger.Fatal(e.StartServer(s))
}

// buildStore creates the configured storage backend. The second return is
// non-nil only for the local backend, which needs the raw route.
func buildStore(cfg *config.AppConfig) (storage.Store, *storage.LocalStore, error) {
	switch cfg.Storage.Backend {
	case "supabase":
		s, err := storage.NewSupabaseStore(storage.SupabaseConfig{
			URL:    cfg.Storage.SupabaseURL,
			APIKey: cfg.Storage.SupabaseKey,
			Bucket: cfg.Storage.Bucket,
		})
		return s, nil, err
	case "local":
		secret := cfg.Storage.SigningSecret
		if secret == "" {
			// Ephemeral secret: issued URLs die with the process.
			secret = uuid.NewString()
		}
		s, err := storage.NewLocalStore(cfg.Storage.DataDirectory, secret, cfg.Server.BaseURL)
		return s, s, err
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

func buildAuthProvider(cfg *config.AppConfig) (auth.Provider, error) {
	switch cfg.Auth.Provider {
	case "supabase":
		return auth.NewSupabaseProvider(cfg.Storage.SupabaseURL, cfg.Storage.SupabaseKey, nil)
	case "static":
		if cfg.Auth.Token == "" {
			return nil, fmt.Errorf("static auth requires a token (set AUTH_TOKEN)")
		}
		return auth.NewStaticProvider(cfg.Auth.Token), nil
	default:
		return nil, fmt.Errorf("unknown auth provider %q", cfg.Auth.Provider)
	}
}
