package scrape

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"golang.org/x/net/html"

	"wishloop/internal/metrics"
	"wishloop/models"
)

const (
	maxBodySize  = 2 * 1024 * 1024 // product pages beyond 2MB are truncated
	fetchTimeout = 15 * time.Second
	userAgent    = "Mozilla/5.0 (compatible; Wishloop/1.0; +https://wishloop.app)"
)

// Service fetches a pasted product URL and extracts best-effort metadata
// from its Open Graph tags. Deep site-specific extraction is out of scope;
// every field is optional.
type Service struct {
	httpClient *http.Client
}

// NewService returns a scrape service with a default HTTP client when one is
// not provided.
func NewService(client *http.Client) *Service {
	if client == nil {
		client = &http.Client{Timeout: fetchTimeout}
	}
	return &Service{httpClient: client}
}

// Fetch downloads the page and extracts product metadata. Transient upstream
// failures are retried with backoff; client errors are not.
func (s *Service) Fetch(ctx context.Context, rawURL string) (*models.ProductMeta, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		metrics.ScrapeRequests.WithLabelValues("invalid_url").Inc()
		return nil, fmt.Errorf("%w: not a fetchable product URL", models.ErrInvalidState)
	}

	var body []byte
	err = retry.Do(
		func() error {
			data, ferr := s.fetchOnce(ctx, rawURL)
			if ferr != nil {
				return ferr
			}
			body = data
			return nil
		},
		retry.Attempts(3),
		retry.Delay(500*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		metrics.ScrapeRequests.WithLabelValues("fetch_error").Inc()
		return nil, fmt.Errorf("fetch product page: %w", err)
	}

	meta := extractMeta(rawURL, body)
	metrics.ScrapeRequests.WithLabelValues("ok").Inc()
	log.Printf("[scrape] fetched url=%q title=%q price=%q", rawURL, meta.Title, meta.Price)
	return meta, nil
}

func (s *Service) fetchOnce(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, retry.Unrecoverable(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %q: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("upstream returned %s", resp.Status)
	}
	if resp.StatusCode >= 400 {
		return nil, retry.Unrecoverable(fmt.Errorf("upstream returned %s", resp.Status))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return data, nil
}

// currencySymbols renders a scraped ISO code back into the symbol-prefixed
// free-text price format items use.
var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"INR": "₹",
}

func extractMeta(rawURL string, body []byte) *models.ProductMeta {
	meta := &models.ProductMeta{URL: rawURL}

	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return meta
	}

	var priceAmount, priceCurrency string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if meta.Title == "" && n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
					meta.Title = strings.TrimSpace(n.FirstChild.Data)
				}
			case "meta":
				var key, content string
				for _, attr := range n.Attr {
					switch attr.Key {
					case "property", "name", "itemprop":
						if key == "" {
							key = attr.Val
						}
					case "content":
						content = attr.Val
					}
				}
				if content == "" {
					break
				}
				switch key {
				case "og:title":
					meta.Title = strings.TrimSpace(content)
				case "og:description", "description":
					if meta.Description == "" {
						meta.Description = strings.TrimSpace(content)
					}
				case "og:image":
					if meta.ImageURL == "" {
						meta.ImageURL = strings.TrimSpace(content)
					}
				case "og:site_name":
					meta.SiteName = strings.TrimSpace(content)
				case "og:price:amount", "product:price:amount", "price":
					if priceAmount == "" {
						priceAmount = strings.TrimSpace(content)
					}
				case "og:price:currency", "product:price:currency", "priceCurrency":
					if priceCurrency == "" {
						priceCurrency = strings.TrimSpace(content)
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if priceAmount != "" {
		if sym, ok := currencySymbols[strings.ToUpper(priceCurrency)]; ok {
			meta.Price = sym + priceAmount
		} else if priceCurrency != "" {
			meta.Price = strings.ToUpper(priceCurrency) + " " + priceAmount
		} else {
			meta.Price = priceAmount
		}
	}

	return meta
}
