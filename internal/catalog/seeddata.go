package catalog

import (
	"time"

	"github.com/lowtide/localbase/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DefaultCatalog returns the fixed label/studio catalog used for the
// one-time store seed and as the in-memory provider dataset. IDs are stable
// strings so foreign keys survive reseeding.
func DefaultCatalog() Catalog {
	return Catalog{
		Artists: []model.Artist{
			{
				ID: "art-001", Slug: "alex-grey", Name: "Alex Grey",
				Bio:   "Berlin-based producer pushing hypnotic techno and broken-beat experiments.",
				Genre: "techno", ImageURL: "/images/artists/alex-grey.jpg", Featured: true,
				Links: []string{"https://soundcloud.com/alexgrey"},
			},
			{
				ID: "art-002", Slug: "mara-voss", Name: "Mara Voss",
				Bio:   "Vocalist and modular synth composer exploring ambient textures.",
				Genre: "ambient", ImageURL: "/images/artists/mara-voss.jpg", Featured: true,
			},
			{
				ID: "art-003", Slug: "the-low-enders", Name: "The Low Enders",
				Bio:   "Four-piece outfit blending dub basslines with live drum workouts.",
				Genre: "dub", ImageURL: "/images/artists/low-enders.jpg",
			},
			{
				ID: "art-004", Slug: "kaito-mori", Name: "Kaito Mori",
				Bio:   "Tokyo DJ and producer known for razor-sharp electro sets.",
				Genre: "electro", ImageURL: "/images/artists/kaito-mori.jpg",
			},
			{
				ID: "art-005", Slug: "iris-novak", Name: "Iris Novak",
				Bio:   "Cellist turned producer writing slow-burning electronica.",
				Genre: "electronica", ImageURL: "/images/artists/iris-novak.jpg",
			},
		},
		Releases: []model.Release{
			{
				ID: "rel-001", Slug: "night-circuit", ArtistID: "art-001",
				Title: "Night Circuit", Kind: "album", Genre: "techno",
				CoverURL:    "/images/releases/night-circuit.jpg",
				ReleaseDate: date(2025, time.March, 14), Featured: true,
			},
			{
				ID: "rel-002", Slug: "glasshouse", ArtistID: "art-002",
				Title: "Glasshouse", Kind: "ep", Genre: "ambient",
				CoverURL:    "/images/releases/glasshouse.jpg",
				ReleaseDate: date(2024, time.November, 8), Featured: true,
			},
			{
				ID: "rel-003", Slug: "pressure-drop", ArtistID: "art-003",
				Title: "Pressure Drop", Kind: "album", Genre: "dub",
				CoverURL:    "/images/releases/pressure-drop.jpg",
				ReleaseDate: date(2024, time.June, 21),
			},
			{
				ID: "rel-004", Slug: "voltage-lane", ArtistID: "art-004",
				Title: "Voltage Lane", Kind: "single", Genre: "electro",
				CoverURL:    "/images/releases/voltage-lane.jpg",
				ReleaseDate: date(2025, time.January, 31),
			},
			{
				ID: "rel-005", Slug: "undertow", ArtistID: "art-005",
				Title: "Undertow", Kind: "ep", Genre: "electronica",
				CoverURL:    "/images/releases/undertow.jpg",
				ReleaseDate: date(2025, time.May, 2),
			},
		},
		Tracks: []model.Track{
			{ID: "trk-001", ReleaseID: "rel-001", Title: "Ignition", Position: 1, Duration: 372, AudioURL: "/audio/night-circuit/01.mp3"},
			{ID: "trk-002", ReleaseID: "rel-001", Title: "Mainline", Position: 2, Duration: 415, AudioURL: "/audio/night-circuit/02.mp3"},
			{ID: "trk-003", ReleaseID: "rel-001", Title: "Afterglow", Position: 3, Duration: 298, AudioURL: "/audio/night-circuit/03.mp3"},
			{ID: "trk-004", ReleaseID: "rel-002", Title: "Pane", Position: 1, Duration: 441, AudioURL: "/audio/glasshouse/01.mp3"},
			{ID: "trk-005", ReleaseID: "rel-002", Title: "Condensation", Position: 2, Duration: 389, AudioURL: "/audio/glasshouse/02.mp3"},
			{ID: "trk-006", ReleaseID: "rel-003", Title: "Pressure Drop", Position: 1, Duration: 324, AudioURL: "/audio/pressure-drop/01.mp3"},
			{ID: "trk-007", ReleaseID: "rel-003", Title: "Echo Chamber", Position: 2, Duration: 356, AudioURL: "/audio/pressure-drop/02.mp3"},
			{ID: "trk-008", ReleaseID: "rel-003", Title: "Dread at the Controls", Position: 3, Duration: 402, AudioURL: "/audio/pressure-drop/03.mp3"},
			{ID: "trk-009", ReleaseID: "rel-004", Title: "Voltage Lane", Position: 1, Duration: 351, AudioURL: "/audio/voltage-lane/01.mp3"},
			{ID: "trk-010", ReleaseID: "rel-005", Title: "Undertow", Position: 1, Duration: 367, AudioURL: "/audio/undertow/01.mp3"},
			{ID: "trk-011", ReleaseID: "rel-005", Title: "Ebb", Position: 2, Duration: 295, AudioURL: "/audio/undertow/02.mp3"},
		},
		Posts: []model.Post{
			{
				ID: "post-001", Slug: "night-circuit-out-now", AuthorID: "auth-001",
				Title:    "Night Circuit is out now",
				Excerpt:  "Alex Grey's debut album lands on all platforms today.",
				Body:     "After two years in the making, Night Circuit is finally here...",
				Category: "releases", Tags: []string{"release", "techno"},
				Published: true, PublishedAt: date(2025, time.March, 14),
			},
			{
				ID: "post-002", Slug: "studio-b-refit", AuthorID: "auth-002",
				Title:    "Studio B refit complete",
				Excerpt:  "New console, new monitors, same room sound.",
				Body:     "We spent the winter rebuilding Studio B from the floor up...",
				Category: "studio", Tags: []string{"studio", "gear"},
				Published: true, PublishedAt: date(2025, time.February, 3),
			},
			{
				ID: "post-003", Slug: "mara-voss-live-session", AuthorID: "auth-001",
				Title:    "Mara Voss live session",
				Excerpt:  "A full modular set recorded in one take.",
				Body:     "Mara brought her full modular rig into the live room...",
				Category: "sessions", Tags: []string{"live", "ambient"},
				Published: true, PublishedAt: date(2024, time.December, 12),
			},
			{
				ID: "post-004", Slug: "spring-signings", AuthorID: "auth-003",
				Title:    "Spring signings preview",
				Excerpt:  "A first look at who is joining the roster.",
				Body:     "Draft announcement, do not publish yet.",
				Category: "label", Tags: []string{"roster"},
				Published: false, PublishedAt: date(2025, time.June, 1),
			},
		},
		Authors: []model.Author{
			{ID: "auth-001", Name: "Dana Reyes", Role: "Label Manager", AvatarURL: "/images/authors/dana.jpg"},
			{ID: "auth-002", Name: "Tom Okafor", Role: "Head Engineer", AvatarURL: "/images/authors/tom.jpg"},
			{ID: "auth-003", Name: "Lena Hart", Role: "A&R", AvatarURL: "/images/authors/lena.jpg"},
		},
		Genres: []model.Genre{
			{ID: "gen-001", Slug: "techno", Name: "Techno"},
			{ID: "gen-002", Slug: "ambient", Name: "Ambient"},
			{ID: "gen-003", Slug: "dub", Name: "Dub"},
			{ID: "gen-004", Slug: "electro", Name: "Electro"},
			{ID: "gen-005", Slug: "electronica", Name: "Electronica"},
		},
		Services: []model.StudioService{
			{ID: "svc-001", Slug: "recording", Name: "Recording", Description: "Full-band tracking in the live room with an engineer.", PricePerHr: 85, Available: true},
			{ID: "svc-002", Slug: "mixing", Name: "Mixing", Description: "Hybrid analog/digital mixdown on the SSL console.", PricePerHr: 70, Available: true},
			{ID: "svc-003", Slug: "mastering", Name: "Mastering", Description: "Stereo mastering for digital and vinyl.", PricePerHr: 60, Available: true},
			{ID: "svc-004", Slug: "rehearsal", Name: "Rehearsal", Description: "Backline-equipped rehearsal space, evenings only.", PricePerHr: 25, Available: false},
		},
	}
}
