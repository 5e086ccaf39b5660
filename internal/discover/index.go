package discover

import (
	"bytes"
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/pitchside/transfer-cli/internal/fetch"
)

// Fetcher retrieves a page body. Satisfied by fetch.Client.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Finder scrapes the alphabetical player index.
type Finder struct {
	fetcher         Fetcher
	baseURL         string
	indexURL        string
	checkpointFile  string
	checkpointEvery int
}

// NewFinder creates a Finder. indexURL is the index root, e.g.
// "https://example.com/en/players/"; prefix pages live directly under it.
func NewFinder(fetcher Fetcher, baseURL, indexURL, checkpointFile string, checkpointEvery int) *Finder {
	if checkpointEvery <= 0 {
		checkpointEvery = 50
	}
	return &Finder{
		fetcher:         fetcher,
		baseURL:         strings.TrimRight(baseURL, "/"),
		indexURL:        indexURL,
		checkpointFile:  checkpointFile,
		checkpointEvery: checkpointEvery,
	}
}

// ScrapeIndex visits the given index prefixes and returns the accumulated
// name -> stats URL map. Progress is checkpointed so a rerun skips prefixes
// already processed. A 404 on a prefix page just means no players with that
// prefix exist.
func (f *Finder) ScrapeIndex(ctx context.Context, prefixes []string) (map[string]string, error) {
	cp, err := LoadCheckpoint(f.checkpointFile)
	if err != nil {
		return nil, err
	}

	var remaining []string
	for _, p := range prefixes {
		if !cp.Processed(p) {
			remaining = append(remaining, p)
		}
	}
	if len(remaining) < len(prefixes) {
		zap.S().Infow("resuming from checkpoint",
			"players", len(cp.Players), "done", len(prefixes)-len(remaining))
	}

	for i, prefix := range remaining {
		url := f.indexURL + prefix + "/"
		zap.S().Infow("scraping index page",
			"prefix", prefix, "progress", i+1, "total", len(remaining), "players_so_far", len(cp.Players))

		body, err := f.fetcher.Get(ctx, url)
		switch {
		case eris.Is(err, fetch.ErrNotFound):
			zap.S().Debugw("index page absent", "prefix", prefix)
		case err != nil:
			// Persist progress before bailing so the rerun is cheap.
			if saveErr := cp.Save(f.checkpointFile); saveErr != nil {
				zap.S().Warnw("checkpoint save failed", "error", saveErr)
			}
			return nil, eris.Wrapf(err, "discover: index page %s", prefix)
		default:
			players, err := f.extractPlayers(body)
			if err != nil {
				return nil, eris.Wrapf(err, "discover: index page %s", prefix)
			}
			for name, statsURL := range players {
				if _, ok := cp.Players[name]; !ok {
					cp.Players[name] = statsURL
				}
			}
		}

		cp.MarkProcessed(prefix)
		if (i+1)%f.checkpointEvery == 0 {
			if err := cp.Save(f.checkpointFile); err != nil {
				return nil, err
			}
		}
	}

	if err := cp.Save(f.checkpointFile); err != nil {
		return nil, err
	}
	return cp.Players, nil
}

// extractPlayers pulls player links out of an index page. Player hrefs look
// like /en/players/{id}/{Name}; the stats page is that URL plus "-Stats".
func (f *Finder) extractPlayers(body []byte) (map[string]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "discover: parse index page")
	}

	players := make(map[string]string)
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if !strings.Contains(href, "/players/") || strings.Count(href, "/") < 4 {
			return
		}
		if strings.Contains(href, "-Stats") || strings.Contains(href, "matchlogs") {
			return
		}

		name := strings.TrimSpace(a.Text())
		if len(name) < 3 {
			return
		}

		if !strings.HasPrefix(href, "/") {
			href = "/" + href
		}
		if _, ok := players[name]; !ok {
			players[name] = f.baseURL + href + "-Stats"
		}
	})
	return players, nil
}
