package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/OliveiraNt/ltu-generator/internal/application"
	"github.com/OliveiraNt/ltu-generator/internal/config"
	"github.com/OliveiraNt/ltu-generator/internal/domain"
	"github.com/OliveiraNt/ltu-generator/internal/generator"
	"github.com/OliveiraNt/ltu-generator/internal/infrastructure/repository"
	"github.com/OliveiraNt/ltu-generator/internal/utils"
	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var genOpts generateOptions

type generateOptions struct {
	variant   string
	theme     string
	animation string
	escape    bool
	out       string
}

var generateCmd = &cobra.Command{
	Use:   "generate [tabs-file]",
	Short: "Render tabs to a standalone HTML document",
	Long: `Renders a tab collection to HTML. The collection is read from a YAML or
JSON file holding a list of {id, heading, content} entries, or, without a
file, from the collection saved by the web UI for the chosen variant.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		utils.Logger.SetOutput(cmd.ErrOrStderr())

		v, ok := domain.ParseVariant(genOpts.variant)
		if !ok {
			return fmt.Errorf("%w: %q", application.ErrUnknownVariant, genOpts.variant)
		}

		var tabs []domain.Tab
		var escape bool
		if len(args) == 1 {
			t, err := loadTabsFile(args[0])
			if err != nil {
				return err
			}
			tabs = t
		} else {
			path, err := resolveConfigPath()
			if err != nil {
				return err
			}
			cfg, err := config.ReadConfig(path)
			if err != nil {
				utils.Logger.Warn("failed to read config, using defaults", "path", path, "err", err)
			}
			escape = cfg.Generator.EscapeContent
			t, err := storedTabs(cmd, cfg, path, v)
			if err != nil {
				return err
			}
			tabs = t
		}

		doc, err := renderTabs(v, tabs, genOpts.theme, genOpts.animation, escape || genOpts.escape)
		if err != nil {
			return err
		}
		if genOpts.out == "" {
			_, err := fmt.Fprint(cmd.OutOrStdout(), doc)
			return err
		}
		if err := atomic.WriteFile(genOpts.out, strings.NewReader(doc)); err != nil {
			return fmt.Errorf("writing %s: %w", genOpts.out, err)
		}
		utils.Logger.Info("html written", "file", genOpts.out, "variant", v, "tabs", len(tabs))
		return nil
	},
}

func init() {
	f := generateCmd.Flags()
	f.StringVar(&genOpts.variant, "variant", string(domain.VariantBasic), "generator variant: basic or advanced")
	f.StringVar(&genOpts.theme, "theme", "", "advanced color theme, by name or index (default Classic Blue)")
	f.StringVar(&genOpts.animation, "animation", "", "advanced animation, by name or index (default None)")
	f.BoolVar(&genOpts.escape, "escape", false, "HTML-escape tab ids, headings and content")
	f.StringVarP(&genOpts.out, "out", "o", "", "write to this file instead of stdout")
	rootCmd.AddCommand(generateCmd)
}

func storedTabs(cmd *cobra.Command, cfg config.FileConfig, configPath string, v domain.Variant) ([]domain.Tab, error) {
	store, err := openStorage(cmd.Context(), cfg, configPath)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	tabs, err := repository.NewTabRepository(store).Load(cmd.Context(), v)
	switch {
	case errors.Is(err, repository.ErrNoSavedTabs):
		utils.Logger.Info("no saved tabs, using defaults", "variant", v)
		return domain.DefaultTabs(), nil
	case err != nil:
		utils.Logger.Warn("saved tabs unusable, using defaults", "variant", v, "err", err)
		return domain.DefaultTabs(), nil
	}
	return tabs, nil
}

// loadTabsFile reads a list of tabs from YAML or JSON. Missing ids are
// numbered from 1; empty headings and bodies get the default text.
func loadTabsFile(path string) ([]domain.Tab, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tabs file: %w", err)
	}
	var tabs []domain.Tab
	if strings.EqualFold(filepath.Ext(path), ".json") {
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.DisallowUnknownFields()
		err = dec.Decode(&tabs)
	} else {
		err = yaml.Unmarshal(b, &tabs)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	for i := range tabs {
		n := i + 1
		if tabs[i].ID == "" {
			tabs[i].ID = strconv.Itoa(n)
		}
		if tabs[i].Heading == "" {
			tabs[i].Heading = domain.DefaultHeading(n)
		}
		if tabs[i].Content == "" {
			tabs[i].Content = domain.DefaultContent(n)
		}
	}
	if !domain.ValidCollection(tabs) {
		return nil, fmt.Errorf("%s: need between %d and %d tabs with unique ids", path, domain.MinTabs, domain.MaxTabs)
	}
	return tabs, nil
}

// renderTabs renders tabs for v. theme and animation accept a display name
// or a table index and are ignored by the basic variant.
func renderTabs(v domain.Variant, tabs []domain.Tab, theme, animation string, escape bool) (string, error) {
	themeIdx, err := styleIndex(theme, domain.LookupTheme, application.ErrUnknownTheme)
	if err != nil {
		return "", err
	}
	animIdx, err := styleIndex(animation, domain.LookupAnimation, application.ErrUnknownAnimation)
	if err != nil {
		return "", err
	}
	t, ok := domain.ThemeAt(themeIdx)
	if !ok {
		return "", fmt.Errorf("%w: %q", application.ErrUnknownTheme, theme)
	}
	a, ok := domain.AnimationAt(animIdx)
	if !ok {
		return "", fmt.Errorf("%w: %q", application.ErrUnknownAnimation, animation)
	}
	r := generator.New(generator.Options{EscapeContent: escape})
	return r.Render(v, tabs, t, a), nil
}

func styleIndex(raw string, lookup func(string) (int, bool), unknown error) (int, error) {
	if raw == "" {
		return 0, nil
	}
	if i, err := strconv.Atoi(raw); err == nil {
		return i, nil
	}
	if i, ok := lookup(raw); ok {
		return i, nil
	}
	return 0, fmt.Errorf("%w: %q", unknown, raw)
}
