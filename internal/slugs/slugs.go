// Package slugs derives URL slugs for tags and categories.
//
// Tag slugs resolve through three tiers, first match wins: a table of known
// tag names, a hyphenated form of plain ASCII names, and finally a short hash
// of the name. Every tier is a pure function of the name so slugs survive
// restarts and rebuilds.
package slugs

import (
	"hash/fnv"
	"strconv"
	"strings"
	"unicode"

	"github.com/goliatone/go-slug"
)

// HashPrefix marks slugs produced by the hash tier.
const HashPrefix = "tag-"

// knownTags maps tag names that would otherwise hash, or that have an
// established URL, onto their slugs.
var knownTags = map[string]string{
	"博客":      "blog",
	"复盘":      "review",
	"思考":      "thinking",
	"学习":      "learning",
	"总结":      "summary",
	"随笔":      "essay",
	"项目管理":    "project-management",
	"项目复盘":    "project-review",
	"技术分享":    "tech-sharing",
	"生活感悟":    "life-insights",
	"个人成长":    "personal-growth",
	"工作经验":    "work-experience",
	"Next.js": "nextjs",
	"React":   "react",
}

// Tier resolves a slug for name, or returns "" to defer to the next tier.
type Tier func(name string) string

// Resolver applies tiers in order.
type Resolver struct {
	tiers []Tier
}

// NewResolver builds a resolver over the given tiers. With no tiers it uses
// DefaultTiers.
func NewResolver(tiers ...Tier) *Resolver {
	if len(tiers) == 0 {
		tiers = DefaultTiers()
	}
	return &Resolver{tiers: tiers}
}

// DefaultTiers is known table, then ASCII, then hash.
func DefaultTiers() []Tier {
	return []Tier{KnownTier(knownTags), ASCIITier, HashTier}
}

// Resolve returns the slug for name. Blank names yield "".
func (r *Resolver) Resolve(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	for _, tier := range r.tiers {
		if s := tier(name); s != "" {
			return s
		}
	}
	return HashTier(name)
}

var defaultResolver = NewResolver()

// TagSlug resolves name with the default tiers.
func TagSlug(name string) string {
	return defaultResolver.Resolve(name)
}

// KnownTier looks name up in table. Matching is exact.
func KnownTier(table map[string]string) Tier {
	return func(name string) string {
		return table[name]
	}
}

// ASCIITier handles names made only of ASCII letters, digits, whitespace,
// '-', '_' and '.'. The name is lowercased and each other character becomes
// its own '-'. Runs are not collapsed and edges are not trimmed, so
// published tag URLs such as "a--b" and "v1-" keep resolving.
func ASCIITier(name string) string {
	for _, r := range name {
		if r > unicode.MaxASCII {
			return ""
		}
		if !isASCIIAlnum(r) && !unicode.IsSpace(r) && r != '-' && r != '_' && r != '.' {
			return ""
		}
	}
	return strings.Map(func(r rune) rune {
		if isASCIIAlnum(r) {
			return r
		}
		return '-'
	}, strings.ToLower(name))
}

// HashTier returns HashPrefix followed by the base36 FNV-1a 32 hash of name.
// Changing this function changes published tag URLs.
func HashTier(name string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return HashPrefix + strconv.FormatUint(uint64(h.Sum32()), 36)
}

// CategorySlug is the fallback slug for a directory with no registry entry:
// lowercased, with runs of non-alphanumeric characters collapsed to '-'.
// Directory names without any letter or digit are hashed instead.
func CategorySlug(dir string) string {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return ""
	}
	if s := hyphenate(strings.ToLower(dir)); s != "" {
		return s
	}
	return HashTier(dir)
}

// Valid reports whether s follows the default go-slug rules.
func Valid(s string) bool {
	return slug.IsValid(s)
}

func hyphenate(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pending := false
	for _, r := range s {
		if isASCIIAlnum(r) || (r > unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r))) {
			if pending && b.Len() > 0 {
				b.WriteByte('-')
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}
	return b.String()
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
