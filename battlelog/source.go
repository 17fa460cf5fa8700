/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package battlelog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/mikeb26/showdown-leaguebot/internal"
)

// replay pages are a few hundred KB at most
const maxLogSize = 16 << 20

// ObjectGetter is the subset of the S3 client used to read s3:// sources.
type ObjectGetter interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput,
		optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Loader reads raw battle logs from a local path, an http(s) replay URL or
// an s3://bucket/key location.
type Loader struct {
	httpClient *http.Client
	s3Client   ObjectGetter
}

// NewLoader returns a Loader. Either client may be nil, in which case
// sources needing it are rejected.
func NewLoader(httpClient *http.Client, s3Client ObjectGetter) *Loader {
	return &Loader{
		httpClient: httpClient,
		s3Client:   s3Client,
	}
}

func (l *Loader) Load(ctx context.Context, src string) ([]byte, error) {
	switch {
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		return l.loadURL(ctx, src)
	case strings.HasPrefix(src, "s3://"):
		return l.loadS3(ctx, src)
	}

	f, err := os.Open(src)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readLimited(f, src)
}

func (l *Loader) loadURL(ctx context.Context, src string) ([]byte, error) {
	if l.httpClient == nil {
		return nil, fmt.Errorf("cannot fetch %v: no http client configured", src)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch replay (new): %w", err)
	}
	req.Header.Set("User-Agent", internal.UserAgent)

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch replay (do): %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d fetching %s", resp.StatusCode, src)
	}

	return readLimited(resp.Body, src)
}

func (l *Loader) loadS3(ctx context.Context, src string) ([]byte, error) {
	if l.s3Client == nil {
		return nil, fmt.Errorf("cannot fetch %v: no s3 client configured", src)
	}
	u, err := url.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("invalid s3 location %v: %w", src, err)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return nil, fmt.Errorf("invalid s3 location %v: want s3://bucket/key", src)
	}

	resp, err := l.s3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(u.Host),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("unable to get %v: %w", src, err)
	}
	defer resp.Body.Close()

	return readLimited(resp.Body, src)
}

func readLimited(r io.Reader, src string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxLogSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading %v: %w", src, err)
	}
	if len(data) > maxLogSize {
		return nil, fmt.Errorf("%v exceeds %d bytes", src, maxLogSize)
	}

	return data, nil
}
