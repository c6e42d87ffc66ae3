// Package leaderboard is a client for the Arcane leveling service's guild leaderboard.
package leaderboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"emperror.dev/errors"
	"go.uber.org/zap"
)

// Fetch result labels passed to a Recorder.
const (
	ResultOK              = "ok"
	ResultStatus          = "status"
	ResultError           = "error"
	ResultUnauthenticated = "unauthenticated"
)

// ID is an opaque leaderboard user identifier.
// The API has sent it both as a string and as a number.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return errors.Wrap(err, "leaderboard id is neither a string nor a number")
	}
	*id = ID(n.String())
	return nil
}

// Entry is a single leaderboard row.
// Level is nil if the API omitted it.
type Entry struct {
	ID    ID   `json:"id"`
	Level *int `json:"level"`
}

const errStatus = errors.Sentinel("unexpected response status")

// rows are decoded one by one, so a malformed row only drops itself
type response struct {
	Levels []json.RawMessage `json:"levels"`
}

// Recorder is notified of the result of every fetch.
type Recorder interface {
	IncFetch(result string)
}

// Config configures a Client.
type Config struct {
	BaseURL     string
	CommunityID string
	Token       string
	Referer     string
	UserAgent   string
	Timeout     time.Duration
}

// Client fetches leaderboards. It holds no state besides its credential.
type Client struct {
	conf   Config
	client *http.Client
	log    *zap.SugaredLogger

	Recorder Recorder
}

// New returns a new Client.
func New(conf Config, log *zap.SugaredLogger) *Client {
	if conf.Timeout == 0 {
		conf.Timeout = 30 * time.Second
	}

	return &Client{
		conf:   conf,
		client: &http.Client{Timeout: conf.Timeout},
		log:    log,
	}
}

// URL returns the leaderboard endpoint.
func (c *Client) URL() string {
	return fmt.Sprintf("%s/guilds/%s/levels/leaderboard", c.conf.BaseURL, c.conf.CommunityID)
}

// Fetch returns the leaderboard.
// It never returns an error: any failure is logged and results in an empty slice.
func (c *Client) Fetch(ctx context.Context) []Entry {
	if c.conf.Token == "" {
		c.log.Error("Arcane authorization token is not set, cannot fetch leaderboard")
		c.record(ResultUnauthenticated)
		return nil
	}

	entries, err := c.fetch(ctx)
	if err != nil {
		// non-200 responses are already logged with their body
		if !errors.Is(err, errStatus) {
			c.log.Errorf("Error fetching leaderboard: %+v", err)
		}
		return nil
	}

	c.log.Debugf("Leaderboard data received. Total users: %v", len(entries))
	c.record(ResultOK)
	return entries
}

func (c *Client) fetch(ctx context.Context) ([]Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(), nil)
	if err != nil {
		c.record(ResultError)
		return nil, errors.Wrap(err, "creating request")
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Authorization", c.conf.Token)
	if c.conf.UserAgent != "" {
		req.Header.Set("User-Agent", c.conf.UserAgent)
		req.Header.Set("x-user-agent", c.conf.UserAgent)
	}
	if c.conf.Referer != "" {
		req.Header.Set("Referer", c.conf.Referer)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.record(ResultError)
		return nil, errors.Wrap(err, "executing request")
	}
	defer resp.Body.Close()

	c.log.Infof("Leaderboard API response status: %v", resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.log.Errorf("Leaderboard fetch failed. Status: %v. Response: %s", resp.StatusCode, body)
		c.record(ResultStatus)
		return nil, errors.WithMessagef(errStatus, "status %v", resp.StatusCode)
	}

	var data response
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		c.record(ResultError)
		return nil, errors.Wrap(err, "decoding response")
	}

	entries := make([]Entry, 0, len(data.Levels))
	for i, raw := range data.Levels {
		var e Entry
		if err := json.Unmarshal(raw, &e); err != nil {
			c.log.Warnf("Skipping malformed leaderboard row %v: %v (%s)", i, err, raw)
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (c *Client) record(result string) {
	if c.Recorder != nil {
		c.Recorder.IncFetch(result)
	}
}
