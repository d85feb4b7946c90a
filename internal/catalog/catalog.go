package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"strings"

	"gopkg.in/yaml.v3"
)

// MenuItem represents one dish on the menu. Name and Description are message keys.
type MenuItem struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Category    string   `yaml:"category" json:"category"`
	Tags        []string `yaml:"tags" json:"tags"`
	Price       float64  `yaml:"price" json:"price"`
	Image       string   `yaml:"image" json:"image"`
}

// Tag is a filterable attribute attached to menu items by name.
type Tag struct {
	ID       int    `yaml:"id" json:"id"`
	Name     string `yaml:"name" json:"name"`
	Category string `yaml:"category" json:"category"`
}

// ErrEmptySource indicates a catalog file that decoded to nothing.
var ErrEmptySource = errors.New("catalog: source is empty")

// ValidationError lists malformed catalog records found at load time.
type ValidationError struct {
	Source   string
	problems []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("catalog validation failed for %s: [%s]", e.Source, strings.Join(e.problems, "; "))
}

// Problems returns a copy of the individual validation failures.
func (e *ValidationError) Problems() []string {
	out := make([]string, len(e.problems))
	copy(out, e.problems)
	return out
}

// Store holds the immutable item and tag collections loaded at startup.
type Store struct {
	items  []MenuItem
	tags   []Tag
	byName map[string]Tag
	index  Index
}

// New validates the provided collections and builds a Store around copies of them.
func New(items []MenuItem, tags []Tag) (*Store, error) {
	if err := validateItems(items); err != nil {
		return nil, err
	}
	if err := validateTags(tags); err != nil {
		return nil, err
	}

	s := &Store{
		items:  cloneItems(items),
		tags:   append([]Tag(nil), tags...),
		byName: make(map[string]Tag, len(tags)),
	}
	for _, tag := range s.tags {
		// first definition wins, like a linear find over the list
		if _, exists := s.byName[tag.Name]; !exists {
			s.byName[tag.Name] = tag
		}
	}
	s.index = ComputeIndex(s.items, s.tags)
	return s, nil
}

// Load reads the item and tag catalogs from fsys. Both YAML and JSON documents are accepted.
func Load(fsys fs.FS, itemsPath, tagsPath string) (*Store, error) {
	var items []MenuItem
	if err := decodeFile(fsys, itemsPath, &items); err != nil {
		return nil, err
	}
	var tags []Tag
	if err := decodeFile(fsys, tagsPath, &tags); err != nil {
		return nil, err
	}
	return New(items, tags)
}

func decodeFile(fsys fs.FS, path string, out any) error {
	raw, err := fs.ReadFile(fsys, path)
	if err != nil {
		return fmt.Errorf("read catalog %s: %w", path, err)
	}
	if strings.TrimSpace(string(raw)) == "" {
		return fmt.Errorf("read catalog %s: %w", path, ErrEmptySource)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode catalog %s: %w", path, err)
	}
	return nil
}

// Items returns a snapshot of all menu items in catalog order.
func (s *Store) Items() []MenuItem {
	if s == nil {
		return nil
	}
	return cloneItems(s.items)
}

// Tags returns a snapshot of all tag definitions in catalog order.
func (s *Store) Tags() []Tag {
	if s == nil {
		return nil
	}
	return append([]Tag(nil), s.tags...)
}

// ResolveTag looks a tag up by exact name against the full tag list.
func (s *Store) ResolveTag(name string) (Tag, bool) {
	if s == nil {
		return Tag{}, false
	}
	tag, ok := s.byName[name]
	return tag, ok
}

// Index returns the derived tag index computed at construction.
func (s *Store) Index() Index {
	if s == nil {
		return Index{}
	}
	return s.index.clone()
}

// UnknownTagRefs reports item tag names that do not resolve to a tag definition.
// The result maps item name to the unresolved references in item order.
func (s *Store) UnknownTagRefs() map[string][]string {
	out := map[string][]string{}
	if s == nil {
		return out
	}
	for _, item := range s.items {
		for _, name := range item.Tags {
			if _, ok := s.byName[name]; !ok {
				out[item.Name] = append(out[item.Name], name)
			}
		}
	}
	return out
}

func validateItems(items []MenuItem) error {
	verr := &ValidationError{Source: "items"}
	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			verr.problems = append(verr.problems, fmt.Sprintf("item[%d]: name is required", i))
			continue
		}
		if _, dup := seen[item.Name]; dup {
			verr.problems = append(verr.problems, fmt.Sprintf("item[%d]: duplicate name %q", i, item.Name))
		}
		seen[item.Name] = struct{}{}
		if item.Price < 0 || math.IsNaN(item.Price) || math.IsInf(item.Price, 0) {
			verr.problems = append(verr.problems, fmt.Sprintf("item[%d] %s: price must be a non-negative amount", i, item.Name))
		}
	}
	if len(verr.problems) > 0 {
		return verr
	}
	return nil
}

func validateTags(tags []Tag) error {
	verr := &ValidationError{Source: "tags"}
	seen := make(map[int]string, len(tags))
	for i, tag := range tags {
		if strings.TrimSpace(tag.Name) == "" {
			verr.problems = append(verr.problems, fmt.Sprintf("tag[%d]: name is required", i))
		}
		if prev, dup := seen[tag.ID]; dup {
			verr.problems = append(verr.problems, fmt.Sprintf("tag[%d]: id %d already used by %q", i, tag.ID, prev))
			continue
		}
		seen[tag.ID] = tag.Name
	}
	if len(verr.problems) > 0 {
		return verr
	}
	return nil
}

func cloneItems(items []MenuItem) []MenuItem {
	if items == nil {
		return nil
	}
	out := make([]MenuItem, len(items))
	for i, item := range items {
		item.Tags = append([]string(nil), item.Tags...)
		out[i] = item
	}
	return out
}
