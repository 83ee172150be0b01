// Package frontify implements the pattern-library registry client. It
// uploads built pattern descriptors and raw assets over the registry's HTTP
// API using bearer-token authentication.
package frontify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/merkle-open/nitro-frontify-deployer/internal/config"
	"github.com/merkle-open/nitro-frontify-deployer/internal/errors"
)

// SyncedPattern describes one pattern accepted by the registry.
type SyncedPattern struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Path string `json:"-"`
}

// SyncedAsset describes one asset accepted by the registry.
type SyncedAsset struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Path string `json:"-"`
}

// Registry is the sync surface consumed by the deployment orchestrator.
type Registry interface {
	SyncPatterns(ctx context.Context, dir string, globs []string) ([]SyncedPattern, error)
	SyncAssets(ctx context.Context, folder string, filters []string) ([]SyncedAsset, error)
}

// Client talks to a Frontify-compatible registry endpoint.
type Client struct {
	baseURL string
	project string
	token   string
	httpc   *http.Client
}

// ClientOption customizes a client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpc = httpc
	}
}

// NewClient creates a registry client from sync options. The access token is
// resolved exactly once here: an explicit option wins, otherwise the
// well-known environment variable is read.
func NewClient(opts config.SyncOptions, clientOpts ...ClientOption) *Client {
	token := opts.AccessToken
	if token == "" {
		token = os.Getenv(config.TokenEnvVar)
	}

	c := &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		project: opts.ProjectID,
		token:   token,
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range clientOpts {
		opt(c)
	}

	return c
}

// checkConfig verifies the client can authenticate. A missing token or
// endpoint is a fatal sync configuration error, never a silent skip.
func (c *Client) checkConfig() error {
	if c.baseURL == "" {
		return errors.NewSyncConfigError("registry base URL is not configured")
	}
	if c.token == "" {
		return errors.NewSyncConfigError(
			"registry access token is not configured (set sync.access_token or " + config.TokenEnvVar + ")")
	}

	return nil
}

// SyncPatterns uploads every pattern descriptor beneath dir whose relative
// path matches one of the glob patterns. Files are submitted in lexical
// order; the first upload failure aborts the sync.
func (c *Client) SyncPatterns(ctx context.Context, dir string, globs []string) ([]SyncedPattern, error) {
	if err := c.checkConfig(); err != nil {
		return nil, err
	}

	files, err := matchFiles(dir, globs)
	if err != nil {
		return nil, err
	}

	synced := make([]SyncedPattern, 0, len(files))
	for _, file := range files {
		pattern, err := c.uploadPattern(ctx, file)
		if err != nil {
			return nil, err
		}
		synced = append(synced, pattern)
	}

	return synced, nil
}

func (c *Client) uploadPattern(ctx context.Context, file string) (SyncedPattern, error) {
	raw, err := os.ReadFile(file)
	if err != nil {
		return SyncedPattern{}, fmt.Errorf("reading pattern descriptor %s: %w", file, err)
	}

	endpoint := fmt.Sprintf("%s/v1/projects/%s/patterns", c.baseURL, c.project)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(raw))
	if err != nil {
		return SyncedPattern{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	var pattern SyncedPattern
	if err := c.do(req, &pattern); err != nil {
		return SyncedPattern{}, fmt.Errorf("syncing pattern %s: %w", file, err)
	}
	pattern.Path = file

	return pattern, nil
}

// SyncAssets uploads every file beneath folder whose relative path matches
// one of the filter patterns.
func (c *Client) SyncAssets(ctx context.Context, folder string, filters []string) ([]SyncedAsset, error) {
	if err := c.checkConfig(); err != nil {
		return nil, err
	}

	files, err := matchFiles(folder, filters)
	if err != nil {
		return nil, err
	}

	synced := make([]SyncedAsset, 0, len(files))
	for _, file := range files {
		asset, err := c.uploadAsset(ctx, folder, file)
		if err != nil {
			return nil, err
		}
		synced = append(synced, asset)
	}

	return synced, nil
}

func (c *Client) uploadAsset(ctx context.Context, folder, file string) (SyncedAsset, error) {
	rel, err := filepath.Rel(folder, file)
	if err != nil {
		return SyncedAsset{}, err
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("asset", filepath.ToSlash(rel))
	if err != nil {
		return SyncedAsset{}, err
	}
	in, err := os.Open(file)
	if err != nil {
		return SyncedAsset{}, fmt.Errorf("opening asset %s: %w", file, err)
	}
	if _, err := io.Copy(part, in); err != nil {
		in.Close()
		return SyncedAsset{}, fmt.Errorf("reading asset %s: %w", file, err)
	}
	in.Close()
	if err := writer.Close(); err != nil {
		return SyncedAsset{}, err
	}

	endpoint := fmt.Sprintf("%s/v1/projects/%s/assets", c.baseURL, c.project)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return SyncedAsset{}, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.token)

	var asset SyncedAsset
	if err := c.do(req, &asset); err != nil {
		return SyncedAsset{}, fmt.Errorf("syncing asset %s: %w", file, err)
	}
	asset.Path = file

	return asset, nil
}

func (c *Client) do(req *http.Request, result any) error {
	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("registry returned %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}
	if result == nil || len(payload) == 0 {
		return nil
	}

	return json.Unmarshal(payload, result)
}

// matchFiles returns the files beneath root whose slash-separated relative
// path matches any of the glob patterns, in lexical order.
func matchFiles(root string, patterns []string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		for _, pattern := range patterns {
			ok, err := filepath.Match(pattern, rel)
			if err != nil {
				return fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
			}
			if ok || matchBase(pattern, rel) {
				files = append(files, path)
				break
			}
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("matching files in %s: %w", root, err)
	}
	sort.Strings(files)

	return files, nil
}

// matchBase lets a bare file pattern like "*.css" match at any depth.
func matchBase(pattern, rel string) bool {
	if strings.Contains(pattern, "/") {
		return false
	}
	ok, err := filepath.Match(pattern, filepath.ToSlash(filepath.Base(rel)))

	return err == nil && ok
}
