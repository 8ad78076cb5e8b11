package directory

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"trailblazer-service/internal/config"
	"trailblazer-service/internal/domain"
	"trailblazer-service/internal/platform/logging"
	"trailblazer-service/internal/ports"

	"github.com/goccy/go-json"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"
)

// NPSClient implements ParkDirectory against the National Park Service
// parks endpoint.
//
// Pages are requested with start/limit and the client stops once the
// running offset reaches the reported total or a page comes back empty.
// Outbound calls are rate limited and guarded by a circuit breaker.
//
// The client is safe for concurrent use.
type NPSClient struct {
	session        *http.Client
	apiKey         string
	baseURL        string
	pageSize       int
	maxRetries     int
	initialBackoff time.Duration
	limiter        *rate.Limiter
	breaker        *gobreaker.CircuitBreaker[[]byte]
}

func NewNPSClient(cfg config.DirectoryConfig) (*NPSClient, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("directory base url is empty")
	}
	if cfg.PageSize <= 0 {
		return nil, fmt.Errorf("directory page size must be positive, got %d", cfg.PageSize)
	}
	if cfg.MaxRetries < 0 {
		return nil, fmt.Errorf("directory max retries must not be negative, got %d", cfg.MaxRetries)
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.RateBurst
	if burst < 1 {
		burst = 1
	}

	threshold := cfg.BreakerThreshold
	if threshold == 0 {
		threshold = 5
	}

	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:    "nps-directory",
		Timeout: cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		// Client errors say nothing about upstream health.
		IsSuccessful: func(err error) bool {
			var he *httpStatusError
			if errors.As(err, &he) {
				return !he.retryable()
			}
			return err == nil
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.L().Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("directory circuit breaker state changed")
		},
	})

	return &NPSClient{
		session:        &http.Client{Timeout: cfg.RequestTimeout},
		apiKey:         cfg.APIKey,
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		pageSize:       cfg.PageSize,
		maxRetries:     cfg.MaxRetries,
		initialBackoff: cfg.InitialBackoff,
		limiter:        rate.NewLimiter(limit, burst),
		breaker:        breaker,
	}, nil
}

type parksPage struct {
	Total flexInt   `json:"total"`
	Data  []npsPark `json:"data"`
}

type npsPark struct {
	ParkCode    *string     `json:"parkCode"`
	FullName    *string     `json:"fullName"`
	Name        *string     `json:"name"`
	States      *string     `json:"states"`
	Latitude    *flexString `json:"latitude"`
	Longitude   *flexString `json:"longitude"`
	Description *string     `json:"description"`
	URL         *string     `json:"url"`
	Designation *string     `json:"designation"`
}

func (p npsPark) record() ports.DirectoryRecord {
	return ports.DirectoryRecord{
		ParkCode:    p.ParkCode,
		FullName:    p.FullName,
		Name:        p.Name,
		States:      p.States,
		Latitude:    p.Latitude.ptr(),
		Longitude:   p.Longitude.ptr(),
		Description: p.Description,
		URL:         p.URL,
		Designation: p.Designation,
	}
}

// flexInt accepts both 32 and "32".
type flexInt int

func (n *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("total %q: %w", s, err)
	}
	*n = flexInt(v)
	return nil
}

// flexString keeps the raw text of a string or number. Interpretation is
// left to the normalizer.
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	*s = flexString(b)
	return nil
}

func (s *flexString) ptr() *string {
	if s == nil {
		return nil
	}
	v := string(*s)
	return &v
}

func (c *NPSClient) pageURL(regionCode string, start int) string {
	q := url.Values{}
	q.Set("stateCode", regionCode)
	q.Set("start", strconv.Itoa(start))
	q.Set("limit", strconv.Itoa(c.pageSize))
	return c.baseURL + "/parks?" + q.Encode()
}

func (c *NPSClient) fetchPage(ctx context.Context, regionCode string, start int) (parksPage, error) {
	body, attempts, err := c.doWithRetry(ctx, c.pageURL(regionCode, start))
	if err != nil {
		fe := &domain.FetchError{
			Region:    regionCode,
			Attempts:  attempts,
			Transient: isTransient(err),
			Err:       err,
		}
		var he *httpStatusError
		if errors.As(err, &he) {
			fe.StatusCode = he.Code
		}
		return parksPage{}, fe
	}

	var page parksPage
	if err := json.Unmarshal(body, &page); err != nil {
		return parksPage{}, &domain.FetchError{
			Region:   regionCode,
			Attempts: attempts,
			Err:      fmt.Errorf("decode page at start=%d: %w", start, err),
		}
	}
	return page, nil
}

// FetchByRegion lazily pages through the directory for one region. Each page
// is requested only after the consumer has taken every record of the
// previous one; stopping early stops fetching.
func (c *NPSClient) FetchByRegion(ctx context.Context, regionCode string) iter.Seq2[ports.DirectoryRecord, error] {
	return func(yield func(ports.DirectoryRecord, error) bool) {
		start := 0
		for {
			page, err := c.fetchPage(ctx, regionCode, start)
			if err != nil {
				yield(ports.DirectoryRecord{}, err)
				return
			}

			logging.L().Debug().
				Str("region", regionCode).
				Int("start", start).
				Int("items", len(page.Data)).
				Int("total", int(page.Total)).
				Msg("directory page fetched")

			for _, p := range page.Data {
				if !yield(p.record(), nil) {
					return
				}
			}

			start += len(page.Data)
			if len(page.Data) == 0 || !c.morePages(page, start) {
				return
			}
		}
	}
}

// morePages trusts the reported total when there is one and otherwise
// treats a short page as the last.
func (c *NPSClient) morePages(page parksPage, next int) bool {
	if page.Total > 0 {
		return next < int(page.Total)
	}
	return len(page.Data) >= c.pageSize
}
