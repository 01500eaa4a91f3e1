// Package domain defines the core entities of the LTU HTML generator: the
// editable tabs, the generator variants, the color themes and animations that
// style a generated document, and the site display theme of the authoring tool.
package domain

import "strconv"

const (
	// MaxTabs is the upper bound of a tab collection.
	MaxTabs = 15
	// MinTabs is the lower bound of a tab collection.
	MinTabs = 1
)

// Tab is a named unit of the generated document.
type Tab struct {
	ID      string `json:"id" yaml:"id"`
	Heading string `json:"heading" yaml:"heading"`
	Content string `json:"content" yaml:"content"`
}

// DefaultHeading returns the heading given to the n-th tab (1-based).
func DefaultHeading(n int) string {
	return "Tab " + strconv.Itoa(n)
}

// DefaultContent returns the body given to the n-th tab (1-based).
func DefaultContent(n int) string {
	return "Content for tab " + strconv.Itoa(n)
}

// DefaultTabs returns the collection a workspace starts with.
func DefaultTabs() []Tab {
	tabs := make([]Tab, 0, 3)
	for i := 1; i <= 3; i++ {
		tabs = append(tabs, Tab{
			ID:      strconv.Itoa(i),
			Heading: DefaultHeading(i),
			Content: DefaultContent(i),
		})
	}
	return tabs
}

// ValidCollection reports whether tabs satisfy the collection bounds and
// carry unique ids.
func ValidCollection(tabs []Tab) bool {
	if len(tabs) < MinTabs || len(tabs) > MaxTabs {
		return false
	}
	seen := make(map[string]struct{}, len(tabs))
	for _, t := range tabs {
		if _, dup := seen[t.ID]; dup {
			return false
		}
		seen[t.ID] = struct{}{}
	}
	return true
}

// IndexOf returns the position of the tab with the given id, or -1.
func IndexOf(tabs []Tab, id string) int {
	for i := range tabs {
		if tabs[i].ID == id {
			return i
		}
	}
	return -1
}
