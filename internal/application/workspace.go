package application

import (
	"context"
	"sync"

	"github.com/OliveiraNt/ltu-generator/internal/domain"
	"github.com/OliveiraNt/ltu-generator/internal/generator"
	"github.com/OliveiraNt/ltu-generator/internal/utils"
)

// Workspace is the editing session of one generator variant: its tab store,
// the selected color theme and animation, and the output panel state.
type Workspace struct {
	store    *TabStore
	renderer *generator.Renderer
	history  *OutputHistory

	mu            sync.RWMutex
	themeIndex    int
	animIndex     int
	outputVisible bool
	listeners     []func()
}

// WorkspaceState is a read-only snapshot used by pages and the JSON API.
type WorkspaceState struct {
	Variant        domain.Variant `json:"variant"`
	Tabs           []domain.Tab   `json:"tabs"`
	ActiveID       string         `json:"active_id"`
	MaxTabs        int            `json:"max_tabs"`
	ThemeIndex     int            `json:"theme_index"`
	AnimationIndex int            `json:"animation_index"`
	Output         string         `json:"output,omitempty"`
	HasOutput      bool           `json:"has_output"`
	OutputVisible  bool           `json:"output_visible"`
	CanUndo        bool           `json:"can_undo"`
	CanRedo        bool           `json:"can_redo"`
}

// NewWorkspace wires a store to a renderer with the first theme and no
// animation selected.
func NewWorkspace(store *TabStore, renderer *generator.Renderer) *Workspace {
	return &Workspace{
		store:    store,
		renderer: renderer,
		history:  NewOutputHistory(DefaultHistoryLimit),
	}
}

// Variant returns the workspace's generator variant.
func (w *Workspace) Variant() domain.Variant {
	return w.store.Variant()
}

// Store exposes the underlying tab store.
func (w *Workspace) Store() *TabStore {
	return w.store
}

// OnChange registers fn to run after every change that affects the preview.
func (w *Workspace) OnChange(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.listeners = append(w.listeners, fn)
}

func (w *Workspace) changed() {
	w.mu.RLock()
	fns := append([]func(){}, w.listeners...)
	w.mu.RUnlock()
	for _, fn := range fns {
		fn()
	}
}

// AddTab adds a tab; see TabStore.AddTab.
func (w *Workspace) AddTab(ctx context.Context) (domain.Tab, error) {
	tab, err := w.store.AddTab(ctx)
	if err != nil {
		return tab, err
	}
	utils.Logger.Info("tab added", "variant", w.Variant(), "id", tab.ID, "count", w.store.Count())
	w.changed()
	return tab, nil
}

// RemoveTab removes a tab; see TabStore.RemoveTab.
func (w *Workspace) RemoveTab(ctx context.Context, id string) error {
	if err := w.store.RemoveTab(ctx, id); err != nil {
		return err
	}
	utils.Logger.Info("tab removed", "variant", w.Variant(), "id", id, "count", w.store.Count())
	w.changed()
	return nil
}

// UpdateTab replaces the heading and/or content of a tab. Nil fields are
// left as they are.
func (w *Workspace) UpdateTab(ctx context.Context, id string, heading, content *string) error {
	if heading != nil {
		if err := w.store.UpdateHeading(ctx, id, *heading); err != nil {
			return err
		}
	}
	if content != nil {
		if err := w.store.UpdateContent(ctx, id, *content); err != nil {
			return err
		}
	}
	if heading == nil && content == nil && domain.IndexOf(w.store.Tabs(), id) < 0 {
		return ErrTabNotFound
	}
	utils.Logger.Debug("tab updated", "variant", w.Variant(), "id", id)
	w.changed()
	return nil
}

// Select makes a tab the one being edited and previewed.
func (w *Workspace) Select(id string) error {
	if err := w.store.SetActive(id); err != nil {
		return err
	}
	w.changed()
	return nil
}

// SetStyle selects the color theme and animation by index. The selection
// lives only as long as the process.
func (w *Workspace) SetStyle(themeIndex, animIndex int) error {
	if _, ok := domain.ThemeAt(themeIndex); !ok {
		return ErrUnknownTheme
	}
	if _, ok := domain.AnimationAt(animIndex); !ok {
		return ErrUnknownAnimation
	}
	w.mu.Lock()
	w.themeIndex = themeIndex
	w.animIndex = animIndex
	w.mu.Unlock()
	utils.Logger.Debug("style selected", "variant", w.Variant(), "theme", themeIndex, "animation", animIndex)
	w.changed()
	return nil
}

// Style returns the selected color theme and animation.
func (w *Workspace) Style() (domain.ColorTheme, domain.Animation) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return domain.ColorThemes[w.themeIndex], domain.Animations[w.animIndex]
}

// Preview renders the current tabs with the current style without touching
// the output history.
func (w *Workspace) Preview() string {
	theme, anim := w.Style()
	return w.renderer.Render(w.Variant(), w.store.Tabs(), theme, anim)
}

// Generate renders the current tabs, appends the document to the history
// and shows the output panel.
func (w *Workspace) Generate() string {
	doc := w.Preview()
	w.history.Push(doc)
	w.mu.Lock()
	w.outputVisible = true
	w.mu.Unlock()
	utils.Logger.Info("html generated", "variant", w.Variant(), "bytes", len(doc), "history", w.history.Len())
	return doc
}

// Output returns the document currently shown in the output panel.
func (w *Workspace) Output() (string, error) {
	doc, ok := w.history.Current()
	if !ok {
		return "", ErrNothingGenerated
	}
	return doc, nil
}

// Undo steps back to the previously generated document.
func (w *Workspace) Undo() (string, bool) {
	return w.history.Undo()
}

// Redo steps forward to a document that was undone.
func (w *Workspace) Redo() (string, bool) {
	return w.history.Redo()
}

// ToggleOutput hides or shows the output panel and returns the new state.
func (w *Workspace) ToggleOutput() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.outputVisible = !w.outputVisible
	return w.outputVisible
}

// DownloadName is the file name offered for the current output.
func (w *Workspace) DownloadName() string {
	theme, _ := w.Style()
	return generator.DownloadName(theme)
}

// State returns a snapshot of the workspace.
func (w *Workspace) State() WorkspaceState {
	out, hasOut := w.history.Current()
	w.mu.RLock()
	defer w.mu.RUnlock()
	return WorkspaceState{
		Variant:        w.Variant(),
		Tabs:           w.store.Tabs(),
		ActiveID:       w.store.Active().ID,
		MaxTabs:        domain.MaxTabs,
		ThemeIndex:     w.themeIndex,
		AnimationIndex: w.animIndex,
		Output:         out,
		HasOutput:      hasOut,
		OutputVisible:  hasOut && w.outputVisible,
		CanUndo:        w.history.CanUndo(),
		CanRedo:        w.history.CanRedo(),
	}
}
