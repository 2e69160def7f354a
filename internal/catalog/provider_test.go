package catalog

import (
	"testing"

	"github.com/lowtide/localbase/internal/model"
)

func boolPtr(b bool) *bool { return &b }

func TestListArtists_Search(t *testing.T) {
	t.Parallel()
	p := NewProvider(DefaultCatalog())

	// Case-insensitive substring over name and bio.
	got := p.ListArtists(ListOptions{Search: "grey"})
	if len(got) != 1 || got[0].Name != "Alex Grey" {
		t.Fatalf("search grey: %+v", got)
	}

	got = p.ListArtists(ListOptions{Search: "TECHNO"})
	if len(got) != 1 || got[0].Slug != "alex-grey" {
		t.Fatalf("bio search: %+v", got)
	}

	if got := p.ListArtists(ListOptions{Search: "xyz-no-match"}); len(got) != 0 {
		t.Fatalf("no-match search returned %d artists", len(got))
	}
}

func TestListArtists_FiltersAndDefaultOrder(t *testing.T) {
	t.Parallel()
	p := NewProvider(DefaultCatalog())

	all := p.ListArtists(ListOptions{})
	for i := 1; i < len(all); i++ {
		if all[i-1].Name > all[i].Name {
			t.Fatalf("default order not by name: %q before %q", all[i-1].Name, all[i].Name)
		}
	}

	featured := p.ListArtists(ListOptions{Featured: boolPtr(true)})
	for _, a := range featured {
		if !a.Featured {
			t.Fatalf("non-featured artist in featured listing: %+v", a)
		}
	}
	if len(featured) == len(all) {
		t.Fatalf("featured filter had no effect")
	}

	byGenre := p.ListArtists(ListOptions{Genre: "ambient"})
	if len(byGenre) != 1 || byGenre[0].Slug != "mara-voss" {
		t.Fatalf("genre filter: %+v", byGenre)
	}
}

func TestListReleases_DefaultNewestFirst(t *testing.T) {
	t.Parallel()
	p := NewProvider(DefaultCatalog())

	rels := p.ListReleases(ListOptions{})
	for i := 1; i < len(rels); i++ {
		if rels[i-1].ReleaseDate.Before(rels[i].ReleaseDate) {
			t.Fatalf("releases not newest first: %s before %s", rels[i-1].Title, rels[i].Title)
		}
	}

	// Explicit ordering overrides the default.
	byTitle := p.ListReleases(ListOptions{OrderBy: "title", Ascending: true})
	for i := 1; i < len(byTitle); i++ {
		if byTitle[i-1].Title > byTitle[i].Title {
			t.Fatalf("title order violated: %q before %q", byTitle[i-1].Title, byTitle[i].Title)
		}
	}

	limited := p.ListReleases(ListOptions{Limit: 2})
	if len(limited) != 2 {
		t.Fatalf("limit: got %d", len(limited))
	}
	if limited[0].Title != rels[0].Title {
		t.Fatalf("limit must truncate the ordered result")
	}
}

func TestListPosts(t *testing.T) {
	t.Parallel()
	p := NewProvider(DefaultCatalog())

	published := p.ListPosts(ListOptions{Published: boolPtr(true)})
	for _, post := range published {
		if !post.Published {
			t.Fatalf("draft leaked into published listing: %+v", post)
		}
	}

	tagged := p.ListPosts(ListOptions{Tag: "studio"})
	if len(tagged) != 1 || tagged[0].Slug != "studio-b-refit" {
		t.Fatalf("tag filter: %+v", tagged)
	}

	byCategory := p.ListPosts(ListOptions{Category: "sessions"})
	if len(byCategory) != 1 {
		t.Fatalf("category filter: %+v", byCategory)
	}

	search := p.ListPosts(ListOptions{Search: "modular"})
	if len(search) != 1 || search[0].Slug != "mara-voss-live-session" {
		t.Fatalf("body search: %+v", search)
	}
}

func TestLookups(t *testing.T) {
	t.Parallel()
	p := NewProvider(DefaultCatalog())

	if a := p.ArtistBySlug("alex-grey"); a == nil || a.ID != "art-001" {
		t.Fatalf("ArtistBySlug: %+v", a)
	}
	if a := p.ArtistBySlug("nobody"); a != nil {
		t.Fatalf("missing slug should be nil, got %+v", a)
	}
	if r := p.ReleaseBySlug("glasshouse"); r == nil || r.ArtistID != "art-002" {
		t.Fatalf("ReleaseBySlug: %+v", r)
	}
	if tr := p.TrackByID("trk-004"); tr == nil || tr.ReleaseID != "rel-002" {
		t.Fatalf("TrackByID: %+v", tr)
	}
	if p.ReleaseByID("rel-999") != nil || p.TrackByID("x") != nil || p.PostBySlug("x") != nil {
		t.Fatalf("missing ids should be nil")
	}
}

func TestReleaseWithTracks(t *testing.T) {
	t.Parallel()
	p := NewProvider(DefaultCatalog())

	r := p.ReleaseWithTracks("rel-001")
	if r == nil {
		t.Fatalf("release not found")
	}
	if len(r.Tracks) != 3 {
		t.Fatalf("want exactly 3 tracks, got %d", len(r.Tracks))
	}
	for i, tr := range r.Tracks {
		if tr.ReleaseID != "rel-001" {
			t.Fatalf("foreign track attached: %+v", tr)
		}
		if tr.Position != i+1 {
			t.Fatalf("tracks not in position order: %+v", r.Tracks)
		}
	}

	if p.ReleaseWithTracks("rel-999") != nil {
		t.Fatalf("missing release should be nil")
	}

	// The join never mutates the underlying catalog.
	if plain := p.ReleaseByID("rel-001"); len(plain.Tracks) != 0 {
		t.Fatalf("join leaked into catalog: %+v", plain.Tracks)
	}
}

func TestArtistWithReleases(t *testing.T) {
	t.Parallel()
	p := NewProvider(DefaultCatalog())

	a := p.ArtistWithReleases("art-001")
	if a == nil || len(a.Releases) != 1 || a.Releases[0].ID != "rel-001" {
		t.Fatalf("ArtistWithReleases: %+v", a)
	}
}

func TestPostWithAuthor(t *testing.T) {
	t.Parallel()
	p := NewProvider(DefaultCatalog())

	post := p.PostWithAuthor("night-circuit-out-now")
	if post == nil || post.Author == nil || post.Author.Name != "Dana Reyes" {
		t.Fatalf("PostWithAuthor: %+v", post)
	}

	// A dangling author id leaves Author nil rather than failing.
	c := DefaultCatalog()
	c.Posts = append(c.Posts, model.Post{ID: "post-x", Slug: "orphan", AuthorID: "missing"})
	orphan := NewProvider(c).PostWithAuthor("orphan")
	if orphan == nil || orphan.Author != nil {
		t.Fatalf("dangling author: %+v", orphan)
	}
}

func TestListServicesAndGenres(t *testing.T) {
	t.Parallel()
	p := NewProvider(DefaultCatalog())

	svcs := p.ListServices(ListOptions{Search: "vinyl"})
	if len(svcs) != 1 || svcs[0].Slug != "mastering" {
		t.Fatalf("service search: %+v", svcs)
	}

	genres := p.ListGenres(ListOptions{})
	for i := 1; i < len(genres); i++ {
		if genres[i-1].Name > genres[i].Name {
			t.Fatalf("genres not alphabetical")
		}
	}

	cheapFirst := p.ListServices(ListOptions{OrderBy: "price_per_hr", Ascending: true})
	if cheapFirst[0].Slug != "rehearsal" {
		t.Fatalf("price order: %+v", cheapFirst[0])
	}
}
