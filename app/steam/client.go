package steam

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	DefaultAPIURL = "https://store.steampowered.com/events/ajaxgetpartnereventspageable/"
	DefaultAppID  = 730
	DefaultOrigin = "https://www.counter-strike.net"
	DefaultCount  = 100

	maxResponseSize = 32 << 20
)

type Options struct {
	APIURL    string
	AppID     int
	Origin    string
	Count     int
	Timeout   time.Duration
	UserAgent string
}

type Client struct {
	httpClient *http.Client
	opts       Options
}

func NewClient(httpClient *http.Client, opts Options) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if opts.APIURL == "" {
		opts.APIURL = DefaultAPIURL
	}
	if opts.AppID == 0 {
		opts.AppID = DefaultAppID
	}
	if opts.Origin == "" {
		opts.Origin = DefaultOrigin
	}
	if opts.Count == 0 {
		opts.Count = DefaultCount
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}

	return &Client{httpClient: httpClient, opts: opts}
}

// FetchEvents returns the latest partner events in the given Steam language
// (e.g. "english").
func (c *Client) FetchEvents(ctx context.Context, language string) (*EventsResponse, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	reqURL, err := c.eventsURL(language)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.opts.UserAgent != "" {
		req.Header.Set("User-Agent", c.opts.UserAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var events EventsResponse
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("failed to decode events: %w", err)
	}

	return &events, nil
}

func (c *Client) eventsURL(language string) (string, error) {
	u, err := url.Parse(c.opts.APIURL)
	if err != nil {
		return "", fmt.Errorf("invalid api url: %w", err)
	}

	q := u.Query()
	q.Set("clan_accountid", "0")
	q.Set("appid", strconv.Itoa(c.opts.AppID))
	q.Set("offset", "0")
	q.Set("count", strconv.Itoa(c.opts.Count))
	q.Set("l", language)
	q.Set("origin", c.opts.Origin)
	u.RawQuery = q.Encode()

	return u.String(), nil
}
