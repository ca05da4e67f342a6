package categories

import (
	"sort"
	"strings"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/goliatone/go-blog/internal/identity"
	"github.com/goliatone/go-blog/internal/slugs"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Synthesized categories use these display values.
const (
	FallbackIcon  = "📁"
	FallbackColor = "#8c8c8c"
	FallbackOrder = 999
)

// Entry is the static configuration of one category. Key is the content
// sub-directory name the entry applies to.
type Entry struct {
	Key         string
	Name        string
	Slug        string
	Description string
	Icon        string
	Color       string
	Order       int
	ShowInNav   bool
}

// Validate checks the fields every entry must carry.
func (e Entry) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Key, validation.Required),
		validation.Field(&e.Name, validation.Required),
		validation.Field(&e.Slug, validation.Required, validation.By(validSlug)),
		validation.Field(&e.Color, validation.Match(hexColor)),
	)
}

// Category converts the entry into the public category shape with a zero count.
func (e Entry) Category() interfaces.Category {
	return interfaces.Category{
		ID:          identity.CategoryID(e.Slug),
		Name:        e.Name,
		Slug:        e.Slug,
		Description: e.Description,
		Icon:        e.Icon,
		Color:       e.Color,
		Order:       e.Order,
		ShowInNav:   e.ShowInNav,
	}
}

// Registry maps content directories onto categories. Lookups are
// case-sensitive. Several keys may share one slug; listings collapse them.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
	title   cases.Caser
}

// NewRegistry builds a registry from entries. Invalid entries are rejected.
func NewRegistry(entries ...Entry) (*Registry, error) {
	r := &Registry{
		entries: make(map[string]Entry, len(entries)),
		title:   cases.Title(language.Und),
	}
	for _, entry := range entries {
		if err := r.Register(entry); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Default returns a registry holding DefaultEntries.
func Default() *Registry {
	r, err := NewRegistry(DefaultEntries()...)
	if err != nil {
		panic(err)
	}
	return r
}

// Register adds or replaces the entry for entry.Key.
func (r *Registry) Register(entry Entry) error {
	if err := entry.Validate(); err != nil {
		return goerrors.FromOzzoValidation(err, "invalid category entry "+entry.Key).
			WithTextCode("CATEGORY_INVALID")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[entry.Key] = entry
	return nil
}

// Lookup returns the entry registered for dir.
func (r *Registry) Lookup(dir string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.entries[dir]
	return entry, ok
}

// Resolve returns the registered entry for dir or synthesizes one from the
// directory name. The bool reports whether dir was registered.
func (r *Registry) Resolve(dir string) (Entry, bool) {
	if entry, ok := r.Lookup(dir); ok {
		return entry, true
	}
	return r.synthesize(dir), false
}

func (r *Registry) synthesize(dir string) Entry {
	name := strings.NewReplacer("-", " ", "_", " ").Replace(strings.TrimSpace(dir))
	return Entry{
		Key:   dir,
		Name:  r.title.String(name),
		Slug:  slugs.CategorySlug(dir),
		Icon:  FallbackIcon,
		Color: FallbackColor,
		Order: FallbackOrder,
	}
}

// All lists one entry per slug, ordered by Order then slug. When two keys
// share a slug the one with the lower Order wins, then the lexically first key.
func (r *Registry) All() []Entry {
	r.mu.RLock()
	keys := make([]string, 0, len(r.entries))
	for key := range r.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	bySlug := make(map[string]Entry, len(keys))
	order := make([]string, 0, len(keys))
	for _, key := range keys {
		entry := r.entries[key]
		current, seen := bySlug[entry.Slug]
		if !seen {
			order = append(order, entry.Slug)
		}
		if !seen || entry.Order < current.Order {
			bySlug[entry.Slug] = entry
		}
	}
	r.mu.RUnlock()

	out := make([]Entry, 0, len(order))
	for _, s := range order {
		out = append(out, bySlug[s])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].Slug < out[j].Slug
	})
	return out
}

// BySlug returns the entry listed under slug.
func (r *Registry) BySlug(slug string) (Entry, bool) {
	for _, entry := range r.All() {
		if entry.Slug == slug {
			return entry, true
		}
	}
	return Entry{}, false
}

// Nav lists the entries flagged for navigation, in All order.
func (r *Registry) Nav() []Entry {
	all := r.All()
	out := all[:0]
	for _, entry := range all {
		if entry.ShowInNav {
			out = append(out, entry)
		}
	}
	return out
}
