// Package source opens the published workbook from a local path or a URL.
package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrFileNotFound indicates the workbook does not exist at the given location.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the workbook is not a valid xlsx file.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// IsRemote reports whether location is an http(s) URL.
func IsRemote(location string) bool {
	l := strings.ToLower(location)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}

// Open returns the workbook at location. Remote workbooks are fetched with
// client, or http.DefaultClient when client is nil.
func Open(ctx context.Context, location string, client *http.Client) (*excelize.File, error) {
	if IsRemote(location) {
		return fetch(ctx, location, client)
	}

	if _, err := os.Stat(location); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, location)
	}
	f, err := excelize.OpenFile(location)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFormat, location, err)
	}
	return f, nil
}

func fetch(ctx context.Context, url string, client *http.Client) (*excelize.File, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, url)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("failed to download %s: unexpected status %s", url, resp.Status)
	}

	f, err := excelize.OpenReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFormat, url, err)
	}
	return f, nil
}
