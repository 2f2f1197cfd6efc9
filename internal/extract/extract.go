// Package extract parses rendered listing-page markup into deduplicated
// candidate records. Pure text-in, records-out: no network, no browser.
package extract

import (
	"fmt"
	"net/url"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/net/html"

	"github.com/gamedex-project/gamedex/internal/catalog"
)

// nameCacheSize bounds the normalization cache. The listing page repeats the
// same anchor text across its grid and list sections, so most lookups hit.
const nameCacheSize = 1024

// Extractor scans markup for anchors whose href contains the discovery
// marker, normalizes their targets against the source origin, and derives
// display names through CleanName.
type Extractor struct {
	origin *url.URL
	marker string
	names  *lru.Cache[string, string]
}

// New creates an Extractor. origin is the source site's origin used to
// rebase relative links; marker is the href substring (matched
// case-insensitively) that identifies item detail links.
func New(origin, marker string) (*Extractor, error) {
	parsed, err := url.Parse(origin)
	if err != nil {
		return nil, fmt.Errorf("parse origin: %w", err)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("origin must include a host")
	}
	if marker == "" {
		return nil, fmt.Errorf("discovery marker cannot be empty")
	}

	names, err := lru.New[string, string](nameCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create name cache: %w", err)
	}

	return &Extractor{
		origin: parsed,
		marker: strings.ToLower(marker),
		names:  names,
	}, nil
}

// Extract returns the candidate records found in rawMarkup, deduplicated by
// normalized URL with the first occurrence in document order winning.
// Candidates with an empty name or URL after normalization are dropped.
// Deterministic given identical markup.
func (e *Extractor) Extract(rawMarkup string) ([]catalog.Entry, error) {
	doc, err := html.Parse(strings.NewReader(rawMarkup))
	if err != nil {
		return nil, fmt.Errorf("parse markup: %w", err)
	}

	seen := make(map[string]struct{})
	var out []catalog.Entry

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			if entry, ok := e.candidate(n); ok {
				if _, dup := seen[entry.URL]; !dup {
					seen[entry.URL] = struct{}{}
					out = append(out, entry)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return out, nil
}

// candidate turns one anchor node into an Entry, reporting ok=false when the
// anchor is not a detail link or normalization leaves nothing usable.
func (e *Extractor) candidate(n *html.Node) (catalog.Entry, bool) {
	var href string
	for _, attr := range n.Attr {
		if strings.EqualFold(attr.Key, "href") {
			href = strings.TrimSpace(attr.Val)
			break
		}
	}
	if href == "" || !strings.Contains(strings.ToLower(href), e.marker) {
		return catalog.Entry{}, false
	}

	target := e.normalizeURL(href)
	if target == "" {
		return catalog.Entry{}, false
	}

	name := e.cleanNameCached(anchorText(n))
	if name == "" {
		name = e.nameFromSlug(target)
	}
	if name == "" {
		return catalog.Entry{}, false
	}

	return catalog.Entry{Name: name, URL: target}, true
}

// normalizeURL rebases relative links against the origin and strips any
// trailing slash, yielding the canonical identity key.
func (e *Extractor) normalizeURL(href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := e.origin.ResolveReference(ref)
	return strings.TrimRight(resolved.String(), "/")
}

// nameFromSlug derives a display name from the URL's final path segment:
// the marker suffix is stripped and hyphens become spaces.
func (e *Extractor) nameFromSlug(target string) string {
	trimmed := strings.TrimRight(target, "/")
	slug := trimmed[strings.LastIndex(trimmed, "/")+1:]
	if strings.HasSuffix(strings.ToLower(slug), e.marker) {
		slug = slug[:len(slug)-len(e.marker)]
	}
	return strings.TrimSpace(strings.ReplaceAll(slug, "-", " "))
}

func (e *Extractor) cleanNameCached(raw string) string {
	if cached, ok := e.names.Get(raw); ok {
		return cached
	}
	name := CleanName(raw)
	e.names.Add(raw, name)
	return name
}

// anchorText concatenates the visible text nodes beneath an anchor.
func anchorText(n *html.Node) string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return sb.String()
}
