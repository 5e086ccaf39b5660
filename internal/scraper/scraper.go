// Package scraper extracts per-player statistics tables from player pages.
// Tables are located by HTML id and parsed cell-by-cell using the site's
// data-stat column keys.
package scraper

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/pitchside/transfer-cli/internal/model"
)

// Fetcher retrieves a page body. Satisfied by fetch.Client.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// PlayerPage is the result of scraping one player page.
type PlayerPage struct {
	Name   string
	URL    string
	Tables map[model.TableKind]*model.StatTable
}

// Scraper fetches player pages and extracts the configured tables.
type Scraper struct {
	fetcher  Fetcher
	tableIDs map[model.TableKind]string
}

// New creates a Scraper extracting the given table ids per kind.
func New(fetcher Fetcher, standardID, defensiveID string) *Scraper {
	return &Scraper{
		fetcher: fetcher,
		tableIDs: map[model.TableKind]string{
			model.TableStandard:  standardID,
			model.TableDefensive: defensiveID,
		},
	}
}

// ScrapePlayer fetches a player page and extracts all configured tables.
// A missing table is logged and skipped, not an error; pages for keepers
// or youth players often lack the defensive table.
func (s *Scraper) ScrapePlayer(ctx context.Context, url string) (*PlayerPage, error) {
	body, err := s.fetcher.Get(ctx, url)
	if err != nil {
		return nil, eris.Wrapf(err, "scraper: fetch %s", url)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrapf(err, "scraper: parse %s", url)
	}

	page := &PlayerPage{
		Name:   strings.TrimSpace(doc.Find("h1").First().Text()),
		URL:    url,
		Tables: make(map[model.TableKind]*model.StatTable, len(s.tableIDs)),
	}

	scrapedAt := time.Now().UTC()
	for kind, id := range s.tableIDs {
		table := extractTable(doc, id)
		if table == nil {
			zap.S().Warnw("table not found on page", "table_id", id, "url", url)
			continue
		}
		table.Player = page.Name
		table.Kind = kind
		table.ScrapedAt = scrapedAt
		page.Tables[kind] = table
	}

	if len(page.Tables) == 0 {
		return nil, eris.Errorf("scraper: no stat tables found at %s", url)
	}
	return page, nil
}

// extractTable parses one table by id into rows keyed by the data-stat
// attribute of each cell. Returns nil when the table is absent.
func extractTable(doc *goquery.Document, id string) *model.StatTable {
	sel := doc.Find("table#" + id)
	if sel.Length() == 0 {
		return nil
	}

	table := &model.StatTable{}
	seen := make(map[string]bool)

	sel.First().Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		// Spacer and repeated-header rows carry a class; data rows don't.
		if class, ok := tr.Attr("class"); ok && class != "" {
			return
		}

		row := model.StatRow{Cells: make(map[string]string)}
		tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			key, ok := cell.Attr("data-stat")
			if !ok || key == "" {
				return
			}
			// Older pages label the season column year_id.
			if key == "year_id" {
				key = "season"
			}
			if !seen[key] {
				seen[key] = true
				table.Columns = append(table.Columns, key)
			}
			row.Cells[key] = strings.TrimSpace(cell.Text())
		})

		row.Season = row.Cells["season"]
		row.Squad = row.Cells["squad"]
		if row.Season == "" {
			return
		}
		table.Rows = append(table.Rows, row)
	})

	return table
}
