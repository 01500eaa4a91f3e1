package cmd

import (
	"context"
	"fmt"
	"os"

	httpserver "github.com/OliveiraNt/ltu-generator/internal/adapters/http"
	"github.com/OliveiraNt/ltu-generator/internal/adapters/http/ui/content"
	"github.com/OliveiraNt/ltu-generator/internal/application"
	"github.com/OliveiraNt/ltu-generator/internal/config"
	"github.com/OliveiraNt/ltu-generator/internal/domain"
	"github.com/OliveiraNt/ltu-generator/internal/generator"
	"github.com/OliveiraNt/ltu-generator/internal/infrastructure/repository"
	"github.com/OliveiraNt/ltu-generator/internal/infrastructure/storage"
	"github.com/OliveiraNt/ltu-generator/internal/utils"
	"github.com/spf13/cobra"
)

var port string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web UI",
	Long:  `Starts the coursework site and the tabs generator editor. The site section of the config file is reloaded when the file changes.`,
	RunE:  runServe,
}

func init() {
	addServeFlags(serveCmd)
	rootCmd.AddCommand(serveCmd)
}

func addServeFlags(c *cobra.Command) {
	c.Flags().StringVar(&port, "port", "", "HTTP port (default: $LTUGEN_HTTP_PORT or 8080)")
}

func resolvePort() string {
	if port != "" {
		return port
	}
	if p := os.Getenv("LTUGEN_HTTP_PORT"); p != "" {
		return p
	}
	return "8080"
}

// openStorage opens the configured backend with its path resolved next to
// the config file.
func openStorage(ctx context.Context, cfg config.FileConfig, configPath string) (domain.Storage, error) {
	sc := cfg.Storage
	sc.Path = cfg.StoragePath(configPath)
	store, err := storage.Open(ctx, sc)
	if err != nil {
		return nil, fmt.Errorf("opening %s storage: %w", sc.Backend, err)
	}
	utils.Logger.Info("storage opened", "backend", sc.Backend, "path", sc.Path)
	return store, nil
}

// followGeneratorConfig applies generator.escape_content from every config
// reload to renderer.
func followGeneratorConfig(site *repository.SiteRepository, renderer *generator.Renderer) {
	site.OnReload(func(cfg config.FileConfig) {
		escape := cfg.Generator.EscapeContent
		if renderer.EscapeContent() != escape {
			utils.Logger.Info("generator escaping changed", "escape_content", escape)
		}
		renderer.SetEscapeContent(escape)
	})
}

// StartWeb wires storage, services and the HTTP server and blocks serving.
func StartWeb(ctx context.Context, configPath string) error {
	site := repository.NewSiteRepository(configPath)
	defer site.Close()

	if err := site.LoadFromFile(); err != nil {
		utils.Logger.Warn("failed to load config file, using defaults", "path", configPath, "err", err)
	} else {
		utils.Logger.Info("configuration loaded", "path", configPath)
	}
	if err := site.Watch(); err != nil {
		utils.Logger.Error("failed to start config watcher", "err", err)
	}

	cfg := site.Config()
	store, err := openStorage(ctx, cfg, configPath)
	if err != nil {
		return err
	}
	defer store.Close()

	renderer := generator.New(generator.Options{EscapeContent: cfg.Generator.EscapeContent})
	svc := application.NewGeneratorService(repository.NewTabRepository(store), renderer)
	svc.Load(ctx)
	followGeneratorConfig(site, renderer)
	utils.Logger.Info("application layer initialized", "escape_content", cfg.Generator.EscapeContent)

	features, err := content.HTML("features.md")
	if err != nil {
		utils.Logger.Warn("features section unavailable", "err", err)
	}

	server := httpserver.New(svc, site, features)
	p := resolvePort()
	utils.Logger.Info("HTTP UI starting", "port", p)
	return server.Run(":" + p)
}

func runServe(cmd *cobra.Command, _ []string) error {
	path, err := resolveConfigPath()
	if err != nil {
		return err
	}
	return StartWeb(cmd.Context(), path)
}
