package jobs

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"linkledger/internal/db"
	"linkledger/internal/models"
	"linkledger/internal/validation"
)

// LinkChecker performs background reachability checks on published URLs.
type LinkChecker struct {
	db          *db.DB
	interval    time.Duration
	maxAgeHours int
	client      *http.Client
}

// NewLinkChecker creates a new link checker.
func NewLinkChecker(database *db.DB, interval time.Duration, maxAgeHours int) *LinkChecker {
	return &LinkChecker{
		db:          database,
		interval:    interval,
		maxAgeHours: maxAgeHours,
		client: &http.Client{
			Timeout: 10 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return errors.New("too many redirects")
				}
				return nil
			},
		},
	}
}

// Start begins the background check loop.
func (l *LinkChecker) Start(ctx context.Context) {
	log.Printf("Link checker started (interval: %v, maxAge: %dh)", l.interval, l.maxAgeHours)

	// Run immediately on start
	l.checkAll(ctx)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Link checker stopped")
			return
		case <-ticker.C:
			l.checkAll(ctx)
		}
	}
}

// checkAll checks all backlinks with a stale or missing health status.
func (l *LinkChecker) checkAll(ctx context.Context) {
	links, err := l.db.GetBacklinksNeedingHealthCheck(ctx, l.maxAgeHours, 50)
	if err != nil {
		log.Printf("Link checker: failed to get backlinks: %v", err)
		return
	}

	if len(links) == 0 {
		return
	}

	log.Printf("Link checker: checking %d backlinks", len(links))

	for _, link := range links {
		select {
		case <-ctx.Done():
			return
		default:
		}

		status, errorMsg := l.checkURL(ctx, link.PublishedURL)
		if err := l.db.UpdateBacklinkHealthStatus(ctx, link.ID, status, errorMsg); err != nil {
			log.Printf("Link checker: failed to update backlink %s: %v", link.Website, err)
			continue
		}

		// Delay between checks to avoid overwhelming external servers
		time.Sleep(1 * time.Second)
	}
}

// checkURL probes a published URL with a HEAD request, falling back to GET
// for servers that reject HEAD.
func (l *LinkChecker) checkURL(ctx context.Context, url string) (string, *string) {
	if valid, msg := validation.ValidateURL(url); !valid {
		return models.HealthUnhealthy, &msg
	}

	resp, err := l.probe(ctx, http.MethodHead, url)
	if err != nil {
		errMsg := "connection failed: " + err.Error()
		return models.HealthUnknown, &errMsg
	}
	resp.Body.Close()

	if resp.StatusCode == http.StatusMethodNotAllowed || resp.StatusCode == http.StatusNotImplemented {
		resp, err = l.probe(ctx, http.MethodGet, url)
		if err != nil {
			errMsg := "connection failed: " + err.Error()
			return models.HealthUnknown, &errMsg
		}
		resp.Body.Close()
	}

	if resp.StatusCode >= 400 {
		errMsg := "unexpected status: " + resp.Status
		return models.HealthUnhealthy, &errMsg
	}

	return models.HealthHealthy, nil
}

func (l *LinkChecker) probe(ctx context.Context, method, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "LinkLedger-LinkChecker/1.0")
	return l.client.Do(req)
}
