package sources

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/echo-relay/echo/internal/infrastructure/tmdb"
	"github.com/echo-relay/echo/internal/services/extract"
)

// MovieResultLimit is the number of matches included in an answer
const MovieResultLimit = 3

// MovieSearchClient is the title search endpoint used by the movie fetcher
type MovieSearchClient interface {
	SearchMovies(ctx context.Context, title string) (*tmdb.SearchResponse, error)
}

type MovieFetcher struct {
	client MovieSearchClient
	now    Clock
}

func NewMovieFetcher(client MovieSearchClient, now Clock) *MovieFetcher {
	if now == nil {
		now = time.Now
	}
	return &MovieFetcher{client: client, now: now}
}

func (f *MovieFetcher) Category() extract.Category {
	return extract.CategoryMovie
}

// Fetch searches by title. A search with zero results is still Data: telling
// the user nothing matched is a complete answer.
func (f *MovieFetcher) Fetch(ctx context.Context, entity extract.Entity) (out Outcome) {
	defer recoverOutcome(&out)

	if entity.Title == "" {
		return Empty()
	}

	resp, err := f.client.SearchMovies(ctx, entity.Title)
	if err != nil {
		return Failed(err)
	}
	if resp == nil {
		return Empty()
	}

	now := f.now()

	if len(resp.Results) == 0 {
		text := fmt.Sprintf("I couldn't find any movie matching %q. Check the title and try again.", entity.Title)
		return Data(text + footer("TMDB", now))
	}

	results := resp.Results
	if len(results) > MovieResultLimit {
		results = results[:MovieResultLimit]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Movie results for %q", entity.Title)
	for i, m := range results {
		b.WriteString("\n\n")
		b.WriteString(formatMovie(i+1, m, now))
	}
	b.WriteString(footer("TMDB", now))

	return Data(b.String())
}

func formatMovie(n int, m tmdb.Movie, now time.Time) string {
	var b strings.Builder

	release, err := time.Parse("2006-01-02", m.ReleaseDate)
	switch {
	case err != nil:
		fmt.Fprintf(&b, "%d. **%s** (Release date unannounced)", n, m.Title)
		b.WriteString("\n   - Release date: TBA")
	case release.After(now):
		fmt.Fprintf(&b, "%d. **%s** (Upcoming)", n, m.Title)
		fmt.Fprintf(&b, "\n   - Release date: %s", release.Format("January 2, 2006"))
	default:
		fmt.Fprintf(&b, "%d. **%s** (Released)", n, m.Title)
		fmt.Fprintf(&b, "\n   - Release date: %s", release.Format("January 2, 2006"))
	}

	if m.VoteCount > 0 {
		fmt.Fprintf(&b, "\n   - Rating: %.1f/10 (%s votes)", m.VoteAverage, printer.Sprintf("%d", m.VoteCount))
	} else {
		b.WriteString("\n   - Rating: not yet rated")
	}

	synopsis := strings.TrimSpace(m.Overview)
	if synopsis == "" {
		synopsis = "No synopsis available."
	}
	fmt.Fprintf(&b, "\n   - Synopsis: %s", synopsis)

	return b.String()
}
