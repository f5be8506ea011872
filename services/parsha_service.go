// Package services: services/parsha_service.go
package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sort"
	"time"

	"kiddushware/logger"
	"kiddushware/models"
)

// ErrorParsha is the sentinel title returned when the lookup service failed.
// Callers must treat results with an empty ShabbatDate as unusable.
const ErrorParsha = "Error fetching Parsha"

// ErrorWeekend is the companion sentinel for the formatted weekend range.
const ErrorWeekend = "Error fetching date"

const defaultHebcalURL = "https://www.hebcal.com"

// overridable clock, so tests can pin "today"
var timeNow = time.Now

// ShabbatLookupService is the interface consumed by the resolver and the
// controllers; MockShabbatLookup implements it for tests.
type ShabbatLookupService interface {
	ShabbatInfoForDate(target time.Time) models.ShabbatInfo
	UpcomingShabbosim(numberOfWeeks int) []models.ShabbatInfo
	ShabbosimForYear() []models.ShabbatInfo
}

// ParshaService queries the Hebrew-calendar lookup service (hebcal.com) and
// normalizes its responses into ShabbatInfo triples.
type ParshaService struct {
	BaseURL string
	Client  *http.Client
}

// NewParshaService builds a client against HEBCAL_URL, defaulting to the
// public hebcal.com endpoint.
func NewParshaService() *ParshaService {
	base := os.Getenv("HEBCAL_URL")
	if base == "" {
		base = defaultHebcalURL
	}
	return &ParshaService{
		BaseURL: base,
		Client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// hebcalItem is one entry of a hebcal JSON response. Only the fields the
// app reads are decoded.
type hebcalItem struct {
	Title    string `json:"title"`
	Date     string `json:"date"`
	Category string `json:"category"`
}

type hebcalResponse struct {
	Items []hebcalItem `json:"items"`
}

// ShabbatInfoForDate returns the Parsha and Shabbat date for the week
// containing target. On service failure or missing data it returns the
// sentinel result rather than an error; these lookups are best-effort
// enrichments and must never take a view down with them.
func (p *ParshaService) ShabbatInfoForDate(target time.Time) models.ShabbatInfo {
	url := fmt.Sprintf("%s/shabbat?cfg=json&gy=%d&gm=%d&gd=%d&a=on&leyning=off",
		p.BaseURL, target.Year(), int(target.Month()), target.Day())

	data, err := p.fetch(url)
	if err != nil {
		logger.Error.Printf("ShabbatInfoForDate: %v", err)
		return models.ShabbatInfo{Parsha: ErrorParsha, WeekendOf: ErrorWeekend}
	}

	for _, item := range data.Items {
		if item.Category != "parashat" {
			continue
		}
		shabbatDate := normalizeDate(item.Date)
		weekendOf, err := formatWeekend(shabbatDate)
		if err != nil {
			logger.Error.Printf("ShabbatInfoForDate: bad date %q from service: %v", item.Date, err)
			return models.ShabbatInfo{Parsha: ErrorParsha, WeekendOf: ErrorWeekend}
		}
		return models.ShabbatInfo{Parsha: item.Title, WeekendOf: weekendOf, ShabbatDate: shabbatDate}
	}

	logger.Warn.Printf("ShabbatInfoForDate: no parashat item for week of %s", target.Format("2006-01-02"))
	return models.ShabbatInfo{Parsha: ErrorParsha, WeekendOf: ErrorWeekend}
}

// UpcomingShabbosim issues numberOfWeeks weekly-spaced queries starting
// today, silently skips failed weeks, deduplicates by Shabbat date (two
// nearby queries can resolve to the same Shabbat) and returns the results
// sorted ascending.
func (p *ParshaService) UpcomingShabbosim(numberOfWeeks int) []models.ShabbatInfo {
	today := timeNow()
	seen := make(map[string]bool)
	upcoming := make([]models.ShabbatInfo, 0, numberOfWeeks)

	for i := 0; i < numberOfWeeks; i++ {
		target := today.AddDate(0, 0, i*7)
		info := p.ShabbatInfoForDate(target)
		if info.ShabbatDate == "" || seen[info.ShabbatDate] {
			continue
		}
		seen[info.ShabbatDate] = true
		upcoming = append(upcoming, info)
	}

	sortByDate(upcoming)
	return upcoming
}

// ShabbosimForYear lists every remaining Torah-reading Shabbat. The lookup
// service has no single query spanning a Hebrew-year boundary, so two
// Gregorian-year bulk queries are merged. Returns an empty list on failure.
func (p *ParshaService) ShabbosimForYear() []models.ShabbatInfo {
	today := timeNow()
	year := today.Year()
	todayStr := today.UTC().Format("2006-01-02")

	var all []models.ShabbatInfo
	for _, y := range []int{year, year + 1} {
		url := fmt.Sprintf("%s/hebcal?v=1&cfg=json&maj=on&min=off&mod=off&nx=off&year=%d&month=x&ss=off&mf=off&c=off&leyning=off&i=off&s=on",
			p.BaseURL, y)
		data, err := p.fetch(url)
		if err != nil {
			logger.Error.Printf("ShabbosimForYear: %v", err)
			return []models.ShabbatInfo{}
		}
		for _, item := range data.Items {
			if item.Category != "parashat" || item.Date == "" || item.Title == "" {
				continue
			}
			date := normalizeDate(item.Date)
			all = append(all, models.ShabbatInfo{
				Parsha:      item.Title,
				ShabbatDate: date,
				WeekendOf:   "Weekend of " + displayDate(date),
			})
		}
	}

	// drop past dates, sort, then deduplicate keeping the first occurrence
	filtered := make([]models.ShabbatInfo, 0, len(all))
	for _, s := range all {
		if s.ShabbatDate >= todayStr {
			filtered = append(filtered, s)
		}
	}
	sortByDate(filtered)

	seen := make(map[string]bool)
	deduped := filtered[:0]
	for _, s := range filtered {
		if seen[s.ShabbatDate] {
			continue
		}
		seen[s.ShabbatDate] = true
		deduped = append(deduped, s)
	}
	return deduped
}

// fetch runs one GET and decodes the standard hebcal item envelope.
func (p *ParshaService) fetch(url string) (*hebcalResponse, error) {
	resp, err := p.Client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("hebcal request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("hebcal API error: %s", resp.Status)
	}
	var data hebcalResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("hebcal response decode failed: %w", err)
	}
	return &data, nil
}

// normalizeDate trims a possible time suffix off a service date string.
func normalizeDate(d string) string {
	if len(d) > 10 {
		return d[:10]
	}
	return d
}

// formatWeekend renders the "Friday - Saturday" range for a Shabbat date.
// All arithmetic is in UTC: the service returns bare date strings and a
// local-zone parse would shift the Friday off by one around midnight.
func formatWeekend(shabbatDate string) (string, error) {
	sat, err := time.ParseInLocation("2006-01-02", shabbatDate, time.UTC)
	if err != nil {
		return "", err
	}
	fri := sat.AddDate(0, 0, -1)
	return fri.Format("Jan 2") + " - " + sat.Format("Jan 2, 2006"), nil
}

// displayDate renders a YYYY-MM-DD string for humans; falls through to the
// raw string if the service sent something unparseable.
func displayDate(d string) string {
	t, err := time.ParseInLocation("2006-01-02", d, time.UTC)
	if err != nil {
		return d
	}
	return t.Format("Jan 2, 2006")
}

func sortByDate(infos []models.ShabbatInfo) {
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].ShabbatDate < infos[j].ShabbatDate
	})
}
