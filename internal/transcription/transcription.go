// Package transcription downloads transcripts referenced by URL.
package transcription

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
)

// maxBody caps the transcript size accepted from a remote source.
const maxBody = 4 << 20

// ErrEmpty is returned when the source responds with no transcript text.
var ErrEmpty = errors.New("transcription: empty transcript")

// Client fetches transcripts over HTTP, retrying network and 5xx failures
// with exponential backoff.
type Client struct {
	HTTP           *http.Client
	InitialBackoff time.Duration
	MaxElapsed     time.Duration
	MaxRetries     uint64
	Log            *logrus.Entry
}

// NewClient returns a Client with production defaults.
func NewClient(log *logrus.Entry) *Client {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Client{
		HTTP:           &http.Client{Timeout: 12 * time.Second},
		InitialBackoff: 500 * time.Millisecond,
		MaxElapsed:     12 * time.Second,
		MaxRetries:     4,
		Log:            log,
	}
}

// payload is the JSON shape accepted in place of plain text.
type payload struct {
	Transcript string  `json:"transcript"`
	Text       string  `json:"text"`
	Duration   float64 `json:"duration"`
}

// Result is a downloaded transcript. Duration is zero unless the source
// reported one.
type Result struct {
	Transcript string
	Duration   float64
}

// Fetch downloads the transcript at rawURL. Plain-text bodies are used as-is;
// JSON bodies may carry "transcript" (or "text") and "duration". 4xx
// responses are not retried.
func (c *Client) Fetch(ctx context.Context, rawURL string) (Result, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.InitialBackoff
	bo.MaxElapsedTime = c.MaxElapsed
	var b backoff.BackOff = bo
	if c.MaxRetries > 0 {
		b = backoff.WithMaxRetries(b, c.MaxRetries)
	}

	var res Result
	attempt := 0
	op := func() error {
		attempt++
		r, err := c.download(ctx, rawURL)
		if err != nil {
			c.Log.WithFields(logrus.Fields{
				"url":     rawURL,
				"attempt": attempt,
				"error":   err.Error(),
			}).Debug("transcript download failed")
			return err
		}
		res = r
		return nil
	}
	if err := backoff.Retry(op, backoff.WithContext(b, ctx)); err != nil {
		return Result{}, err
	}
	return res, nil
}

func (c *Client) download(ctx context.Context, rawURL string) (Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Result{}, backoff.Permanent(fmt.Errorf("transcript request: %w", err))
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return Result{}, err
	}
	if resp.StatusCode >= 500 {
		return Result{}, fmt.Errorf("transcript source error: %s", resp.Status)
	}
	if resp.StatusCode >= 300 {
		return Result{}, backoff.Permanent(fmt.Errorf("transcript download failed: %s", resp.Status))
	}

	r, err := decode(resp.Header.Get("Content-Type"), body)
	if err != nil {
		return Result{}, backoff.Permanent(err)
	}
	return r, nil
}

func decode(contentType string, body []byte) (Result, error) {
	mt, _, _ := mime.ParseMediaType(contentType)
	if mt == "application/json" {
		var p payload
		if err := json.Unmarshal(body, &p); err != nil {
			return Result{}, fmt.Errorf("transcript json decode: %w", err)
		}
		text := p.Transcript
		if text == "" {
			text = p.Text
		}
		if strings.TrimSpace(text) == "" {
			return Result{}, ErrEmpty
		}
		return Result{Transcript: text, Duration: p.Duration}, nil
	}
	if strings.TrimSpace(string(body)) == "" {
		return Result{}, ErrEmpty
	}
	return Result{Transcript: string(body)}, nil
}
