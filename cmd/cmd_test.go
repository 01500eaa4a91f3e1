package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/OliveiraNt/ltu-generator/internal/application"
	"github.com/OliveiraNt/ltu-generator/internal/config"
	"github.com/OliveiraNt/ltu-generator/internal/domain"
	"github.com/OliveiraNt/ltu-generator/internal/generator"
	"github.com/OliveiraNt/ltu-generator/internal/infrastructure/repository"
	"github.com/OliveiraNt/ltu-generator/internal/utils"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	utils.SetLogLevel("error")
	os.Exit(m.Run())
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0644))
	return p
}

func TestLoadTabsFile_YAML(t *testing.T) {
	p := writeFile(t, "tabs.yml", `
- heading: Week 1
  content: Intro
- id: extra
  heading: Week 2
- {}
`)
	tabs, err := loadTabsFile(p)
	require.NoError(t, err)
	require.Equal(t, []domain.Tab{
		{ID: "1", Heading: "Week 1", Content: "Intro"},
		{ID: "extra", Heading: "Week 2", Content: domain.DefaultContent(2)},
		{ID: "3", Heading: domain.DefaultHeading(3), Content: domain.DefaultContent(3)},
	}, tabs)
}

func TestLoadTabsFile_JSON(t *testing.T) {
	p := writeFile(t, "tabs.json", `[{"id":"a","heading":"A","content":"<p>x</p>"}]`)
	tabs, err := loadTabsFile(p)
	require.NoError(t, err)
	require.Equal(t, "<p>x</p>", tabs[0].Content)

	p = writeFile(t, "bad.json", `[{"id":"a","title":"A"}]`)
	_, err = loadTabsFile(p)
	require.Error(t, err)
}

func TestLoadTabsFile_Bounds(t *testing.T) {
	_, err := loadTabsFile(writeFile(t, "empty.yml", "[]"))
	require.Error(t, err)

	_, err = loadTabsFile(writeFile(t, "dup.yml", "- id: a\n- id: a\n"))
	require.Error(t, err)

	var b strings.Builder
	for i := 0; i < 16; i++ {
		b.WriteString("- {}\n")
	}
	_, err = loadTabsFile(writeFile(t, "many.yml", b.String()))
	require.Error(t, err)

	_, err = loadTabsFile(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
}

func TestRenderTabs(t *testing.T) {
	tabs := domain.DefaultTabs()

	doc, err := renderTabs(domain.VariantAdvanced, tabs, "royal purple", "Fade", false)
	require.NoError(t, err)
	require.Contains(t, doc, "#6a1b9a")
	require.Contains(t, doc, "tabFade")

	doc, err = renderTabs(domain.VariantAdvanced, tabs, "1", "", false)
	require.NoError(t, err)
	require.Contains(t, doc, "#2e7d32")

	_, err = renderTabs(domain.VariantAdvanced, tabs, "Neon", "", false)
	require.ErrorIs(t, err, application.ErrUnknownTheme)
	_, err = renderTabs(domain.VariantAdvanced, tabs, "", "7", false)
	require.ErrorIs(t, err, application.ErrUnknownAnimation)

	tabs[0].Heading = "<b>x</b>"
	doc, err = renderTabs(domain.VariantBasic, tabs, "", "", true)
	require.NoError(t, err)
	require.Contains(t, doc, "&lt;b&gt;x&lt;/b&gt;")
}

func TestResolvePort(t *testing.T) {
	t.Setenv("LTUGEN_HTTP_PORT", "")
	port = ""
	require.Equal(t, "8080", resolvePort())

	t.Setenv("LTUGEN_HTTP_PORT", "9000")
	require.Equal(t, "9000", resolvePort())

	port = "7000"
	defer func() { port = "" }()
	require.Equal(t, "7000", resolvePort())
}

func TestResolveConfigPath_CreatesFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "conf", "config.yml")
	cfgFile = p
	defer func() { cfgFile = "" }()

	got, err := resolveConfigPath()
	require.NoError(t, err)
	require.Equal(t, p, got)

	cfg, err := config.ReadConfig(p)
	require.NoError(t, err)
	require.Equal(t, config.Default().Site.StudentNumber, cfg.Site.StudentNumber)
}

func TestGenerateCommand_FromStoredCollection(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yml")
	cfg := config.Default()
	cfg.Storage = config.StorageConfig{Backend: "file", Path: "state/tabs.json"}
	require.NoError(t, config.WriteConfig(cfgPath, cfg))
	out := filepath.Join(dir, "out.html")

	var stderr bytes.Buffer
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs([]string{"generate", "--config", cfgPath, "--variant", "advanced", "--theme", "Sunset Orange", "--out", out})
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetErr(nil)
		genOpts = generateOptions{variant: string(domain.VariantBasic)}
		cfgFile = ""
		utils.Logger.SetOutput(os.Stdout)
	}()
	require.NoError(t, Execute())

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	doc := string(b)
	require.True(t, strings.HasPrefix(doc, "<!DOCTYPE html>"))
	require.Contains(t, doc, "#e65100")
	require.Equal(t, 3, strings.Count(doc, `role="tab"`))
}

func TestGenerateCommand_CorruptStateUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yml")
	cfg := config.Default()
	cfg.Storage = config.StorageConfig{Backend: "file", Path: "state/tabs.json"}
	require.NoError(t, config.WriteConfig(cfgPath, cfg))
	state := filepath.Join(dir, "state", "tabs.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(state), 0o755))
	require.NoError(t, os.WriteFile(state, []byte(`{"htmlGeneratorTabs": "[{\"id\":\"1\"`), 0644))

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetArgs([]string{"generate", "--config", cfgPath})
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		genOpts = generateOptions{variant: string(domain.VariantBasic)}
		cfgFile = ""
		utils.Logger.SetOutput(os.Stdout)
	}()
	require.NoError(t, Execute())

	doc := stdout.String()
	for _, tab := range domain.DefaultTabs() {
		require.Contains(t, doc, tab.Heading)
	}
	require.FileExists(t, state+".corrupt")
}

func TestFollowGeneratorConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, config.WriteConfig(path, config.Default()))

	site := repository.NewSiteRepository(path)
	require.NoError(t, site.LoadFromFile())
	renderer := generator.New(generator.Options{EscapeContent: site.Config().Generator.EscapeContent})
	followGeneratorConfig(site, renderer)
	require.False(t, renderer.EscapeContent())

	cfg := config.Default()
	cfg.Generator.EscapeContent = true
	require.NoError(t, config.WriteConfig(path, cfg))
	require.NoError(t, site.LoadFromFile())
	require.True(t, renderer.EscapeContent())
	require.Contains(t, renderer.Basic([]domain.Tab{{ID: "1", Heading: "<b>", Content: "x"}}), "&lt;b&gt;")
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	}()
	require.NoError(t, Execute())
	require.Equal(t, "ltugen dev\n", out.String())
}
