// Package catalog serves read-mostly catalog queries over fixed in-memory
// collections: multi-field search, foreign-key joins and per-entity default
// orderings, richer than the generic query builder offers. The provider is
// read-only; the seed layer copies its collections into the store once at
// startup.
package catalog

import (
	"sort"
	"strings"

	"github.com/lowtide/localbase/internal/compare"
	"github.com/lowtide/localbase/internal/model"
)

// Catalog holds the fixed entity collections served by a Provider.
type Catalog struct {
	Artists  []model.Artist
	Releases []model.Release
	Tracks   []model.Track
	Posts    []model.Post
	Authors  []model.Author
	Genres   []model.Genre
	Services []model.StudioService
}

// Provider answers list/lookup/join queries against one Catalog. All
// methods are side-effect free; lookups return nil on no match and list
// operations always return a (possibly empty) slice.
type Provider struct {
	c Catalog
}

// NewProvider serves the given catalog.
func NewProvider(c Catalog) *Provider {
	return &Provider{c: c}
}

// ListOptions narrows, searches, orders and truncates a listing. Every
// field is optional. When OrderBy is empty the entity's default ordering
// applies; Limit is applied last and only when positive.
type ListOptions struct {
	// Equality filters; nil/empty values are ignored.
	Genre     string
	Category  string
	Tag       string
	ArtistID  string
	ReleaseID string
	Featured  *bool
	Published *bool

	// Search is a case-insensitive substring match over the entity's text
	// fields (e.g. artist name and bio).
	Search string

	OrderBy   string
	Ascending bool

	Limit int
}

// ListArtists returns artists matching the options, ordered by name unless
// overridden.
func (p *Provider) ListArtists(opts ListOptions) []model.Artist {
	out := make([]model.Artist, 0, len(p.c.Artists))
	for _, a := range p.c.Artists {
		if opts.Genre != "" && a.Genre != opts.Genre {
			continue
		}
		if opts.Featured != nil && a.Featured != *opts.Featured {
			continue
		}
		if !matchSearch(opts.Search, a.Name, a.Bio) {
			continue
		}
		out = append(out, a)
	}
	orderBy(out, opts, "name", true, artistField)
	return truncate(out, opts.Limit)
}

// ListReleases returns releases matching the options, newest first unless
// overridden.
func (p *Provider) ListReleases(opts ListOptions) []model.Release {
	out := make([]model.Release, 0, len(p.c.Releases))
	for _, r := range p.c.Releases {
		if opts.Genre != "" && r.Genre != opts.Genre {
			continue
		}
		if opts.ArtistID != "" && r.ArtistID != opts.ArtistID {
			continue
		}
		if opts.Featured != nil && r.Featured != *opts.Featured {
			continue
		}
		if !matchSearch(opts.Search, r.Title) {
			continue
		}
		out = append(out, r)
	}
	orderBy(out, opts, "release_date", false, releaseField)
	return truncate(out, opts.Limit)
}

// ListTracks returns tracks matching the options in release position order
// unless overridden.
func (p *Provider) ListTracks(opts ListOptions) []model.Track {
	out := make([]model.Track, 0, len(p.c.Tracks))
	for _, t := range p.c.Tracks {
		if opts.ReleaseID != "" && t.ReleaseID != opts.ReleaseID {
			continue
		}
		if !matchSearch(opts.Search, t.Title) {
			continue
		}
		out = append(out, t)
	}
	orderBy(out, opts, "position", true, trackField)
	return truncate(out, opts.Limit)
}

// ListPosts returns blog posts matching the options, newest first unless
// overridden.
func (p *Provider) ListPosts(opts ListOptions) []model.Post {
	out := make([]model.Post, 0, len(p.c.Posts))
	for _, post := range p.c.Posts {
		if opts.Category != "" && post.Category != opts.Category {
			continue
		}
		if opts.Published != nil && post.Published != *opts.Published {
			continue
		}
		if opts.Tag != "" && !containsString(post.Tags, opts.Tag) {
			continue
		}
		if !matchSearch(opts.Search, post.Title, post.Excerpt, post.Body) {
			continue
		}
		out = append(out, post)
	}
	orderBy(out, opts, "published_at", false, postField)
	return truncate(out, opts.Limit)
}

// ListGenres returns genres matching the options, alphabetical unless
// overridden.
func (p *Provider) ListGenres(opts ListOptions) []model.Genre {
	out := make([]model.Genre, 0, len(p.c.Genres))
	for _, g := range p.c.Genres {
		if !matchSearch(opts.Search, g.Name) {
			continue
		}
		out = append(out, g)
	}
	orderBy(out, opts, "name", true, genreField)
	return truncate(out, opts.Limit)
}

// ListServices returns studio services matching the options, alphabetical
// unless overridden.
func (p *Provider) ListServices(opts ListOptions) []model.StudioService {
	out := make([]model.StudioService, 0, len(p.c.Services))
	for _, s := range p.c.Services {
		if !matchSearch(opts.Search, s.Name, s.Description) {
			continue
		}
		out = append(out, s)
	}
	orderBy(out, opts, "name", true, serviceField)
	return truncate(out, opts.Limit)
}

// ArtistBySlug returns the artist with the given slug, or nil.
func (p *Provider) ArtistBySlug(slug string) *model.Artist {
	for i := range p.c.Artists {
		if p.c.Artists[i].Slug == slug {
			a := p.c.Artists[i]
			return &a
		}
	}
	return nil
}

// ArtistByID returns the artist with the given id, or nil.
func (p *Provider) ArtistByID(id string) *model.Artist {
	for i := range p.c.Artists {
		if p.c.Artists[i].ID == id {
			a := p.c.Artists[i]
			return &a
		}
	}
	return nil
}

// ReleaseBySlug returns the release with the given slug, or nil.
func (p *Provider) ReleaseBySlug(slug string) *model.Release {
	for i := range p.c.Releases {
		if p.c.Releases[i].Slug == slug {
			r := p.c.Releases[i]
			return &r
		}
	}
	return nil
}

// ReleaseByID returns the release with the given id, or nil.
func (p *Provider) ReleaseByID(id string) *model.Release {
	for i := range p.c.Releases {
		if p.c.Releases[i].ID == id {
			r := p.c.Releases[i]
			return &r
		}
	}
	return nil
}

// PostBySlug returns the post with the given slug, or nil.
func (p *Provider) PostBySlug(slug string) *model.Post {
	for i := range p.c.Posts {
		if p.c.Posts[i].Slug == slug {
			post := p.c.Posts[i]
			return &post
		}
	}
	return nil
}

// TrackByID returns the track with the given id, or nil.
func (p *Provider) TrackByID(id string) *model.Track {
	for i := range p.c.Tracks {
		if p.c.Tracks[i].ID == id {
			t := p.c.Tracks[i]
			return &t
		}
	}
	return nil
}

// AuthorByID returns the author with the given id, or nil.
func (p *Provider) AuthorByID(id string) *model.Author {
	for i := range p.c.Authors {
		if p.c.Authors[i].ID == id {
			a := p.c.Authors[i]
			return &a
		}
	}
	return nil
}

// ReleaseWithTracks returns the release with its tracks attached in
// position order, or nil if the release does not exist. The join is
// resolved on every call, never cached.
func (p *Provider) ReleaseWithTracks(id string) *model.Release {
	r := p.ReleaseByID(id)
	if r == nil {
		return nil
	}
	r.Tracks = p.ListTracks(ListOptions{ReleaseID: r.ID})
	return r
}

// ArtistWithReleases returns the artist with their releases attached newest
// first, or nil if the artist does not exist.
func (p *Provider) ArtistWithReleases(id string) *model.Artist {
	a := p.ArtistByID(id)
	if a == nil {
		return nil
	}
	a.Releases = p.ListReleases(ListOptions{ArtistID: a.ID})
	return a
}

// PostWithAuthor returns the post with its author attached, or nil if the
// post does not exist. A dangling author id leaves Author nil.
func (p *Provider) PostWithAuthor(slug string) *model.Post {
	post := p.PostBySlug(slug)
	if post == nil {
		return nil
	}
	post.Author = p.AuthorByID(post.AuthorID)
	return post
}

// matchSearch reports whether the needle appears, case-insensitively, in
// any of the fields. An empty needle matches everything.
func matchSearch(needle string, fields ...string) bool {
	if needle == "" {
		return true
	}
	needle = strings.ToLower(needle)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

func containsString(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

// orderBy stable-sorts by the requested column, falling back to the
// entity's default column and direction when none is given. Unknown
// columns compare as nil on every row, leaving input order intact.
func orderBy[T any](items []T, opts ListOptions, defaultCol string, defaultAsc bool, field func(T, string) any) {
	col, asc := opts.OrderBy, opts.Ascending
	if col == "" {
		col, asc = defaultCol, defaultAsc
	}
	sort.SliceStable(items, func(i, j int) bool {
		return compare.Compare(field(items[i], col), field(items[j], col), asc) < 0
	})
}

// truncate applies a positive limit after filtering and ordering.
func truncate[T any](items []T, limit int) []T {
	if limit > 0 && limit < len(items) {
		return items[:limit]
	}
	return items
}

func artistField(a model.Artist, col string) any {
	switch col {
	case "name":
		return a.Name
	case "genre":
		return a.Genre
	case "slug":
		return a.Slug
	case "featured":
		return a.Featured
	default:
		return nil
	}
}

func releaseField(r model.Release, col string) any {
	switch col {
	case "title":
		return r.Title
	case "release_date":
		return r.ReleaseDate
	case "genre":
		return r.Genre
	case "kind":
		return r.Kind
	default:
		return nil
	}
}

func trackField(t model.Track, col string) any {
	switch col {
	case "title":
		return t.Title
	case "position":
		return t.Position
	case "duration":
		return t.Duration
	default:
		return nil
	}
}

func postField(p model.Post, col string) any {
	switch col {
	case "title":
		return p.Title
	case "published_at":
		return p.PublishedAt
	case "category":
		return p.Category
	default:
		return nil
	}
}

func genreField(g model.Genre, col string) any {
	switch col {
	case "name":
		return g.Name
	case "slug":
		return g.Slug
	default:
		return nil
	}
}

func serviceField(s model.StudioService, col string) any {
	switch col {
	case "name":
		return s.Name
	case "price_per_hr":
		return s.PricePerHr
	case "available":
		return s.Available
	default:
		return nil
	}
}
