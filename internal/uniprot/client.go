// Package uniprot retrieves protein sequences from the UniProt REST API.
package uniprot

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrNotFound is returned when UniProt has no entry for an accession.
var ErrNotFound = errors.New("uniprot: accession not found")

// Client fetches single entries from the UniProt REST API. It implements
// SequenceSource.
type Client struct {
	base string
	rest *resty.Client
}

// NewClient creates a client for the UniProt REST API rooted at base
// (e.g. https://rest.uniprot.org). Requests answered with 429 or a 5xx status
// are retried up to retries times.
func NewClient(base string, timeout time.Duration, retries int) *Client {
	r := resty.New()
	if timeout > 0 {
		r.SetTimeout(timeout)
	} else {
		r.SetTimeout(30 * time.Second) // default fallback
	}
	r.SetHeader("Accept", "application/json").
		SetRetryCount(retries).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(10 * time.Second).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			if resp == nil {
				return false // transport errors are retried by default
			}
			code := resp.StatusCode()
			return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
		})
	return &Client{base: strings.TrimRight(base, "/"), rest: r}
}

type entryResp struct {
	PrimaryAccession string `json:"primaryAccession"`
	Sequence         struct {
		Value  string `json:"value"`
		Length int    `json:"length"`
	} `json:"sequence"`
}

// Sequence fetches the amino acid sequence of one UniProtKB accession.
func (c *Client) Sequence(ctx context.Context, accession string) (string, error) {
	entry := &entryResp{}
	resp, err := c.rest.R().
		SetContext(ctx).
		SetPathParam("accession", accession).
		SetQueryParam("fields", "accession,sequence").
		SetResult(entry).
		Get(c.base + "/uniprotkb/{accession}")
	if err != nil {
		return "", fmt.Errorf("request %s failed: %w", accession, err)
	}

	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return "", fmt.Errorf("%s: %w", accession, ErrNotFound)
	case resp.StatusCode() != http.StatusOK:
		return "", fmt.Errorf("uniprot: status %d for %s", resp.StatusCode(), accession)
	case entry.Sequence.Value == "":
		return "", fmt.Errorf("uniprot: entry %s has no sequence", accession)
	}

	return entry.Sequence.Value, nil
}
