package application

import (
	"context"

	"github.com/OliveiraNt/ltu-generator/internal/domain"
	"github.com/OliveiraNt/ltu-generator/internal/generator"
)

// GeneratorService owns one Workspace per variant.
type GeneratorService struct {
	workspaces map[domain.Variant]*Workspace
}

// NewGeneratorService builds a workspace for every variant, each with its
// own store over repo.
func NewGeneratorService(repo domain.TabRepository, renderer *generator.Renderer) *GeneratorService {
	s := &GeneratorService{
		workspaces: make(map[domain.Variant]*Workspace, len(domain.Variants)),
	}
	for _, v := range domain.Variants {
		s.workspaces[v] = NewWorkspace(NewTabStore(v, repo), renderer)
	}
	return s
}

// Load restores every variant's saved tabs.
func (s *GeneratorService) Load(ctx context.Context) {
	for _, v := range domain.Variants {
		s.workspaces[v].Store().Load(ctx)
	}
}

// Workspace returns the workspace of v.
func (s *GeneratorService) Workspace(v domain.Variant) (*Workspace, error) {
	w, ok := s.workspaces[v]
	if !ok {
		return nil, ErrUnknownVariant
	}
	return w, nil
}

// Lookup parses a variant name and returns its workspace.
func (s *GeneratorService) Lookup(name string) (*Workspace, error) {
	v, ok := domain.ParseVariant(name)
	if !ok {
		return nil, ErrUnknownVariant
	}
	return s.Workspace(v)
}
