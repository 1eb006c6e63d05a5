package repository

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"
	log "github.com/sirupsen/logrus"

	"github.com/conn-castle/distup/internal/fsutil"
	"github.com/conn-castle/distup/internal/gav"
	"github.com/conn-castle/distup/internal/messages"
)

const (
	metadataFileName = "maven-metadata.xml"
	userAgent        = "distup"

	defaultRemoteTimeout  = 30 * time.Second
	defaultRetryInterval  = 500 * time.Millisecond
	defaultRetryMaxWindow = 10 * time.Second
)

var errStatusNotFound = errors.New("not found")

// RemoteOptions configures a Remote repository.
type RemoteOptions struct {
	// CacheDir receives downloaded content. Required.
	CacheDir string
	// Client overrides the HTTP client; Timeout is ignored when set.
	Client  *http.Client
	Timeout time.Duration
	// MaxRetries bounds retries of transient failures (network errors, 5xx).
	MaxRetries int
	// RetryInterval is the initial backoff delay.
	RetryInterval time.Duration
}

// Remote is a repository served over HTTP using the standard layout plus a
// maven-metadata.xml version listing per identity.
type Remote struct {
	id            string
	baseURL       string
	cacheDir      string
	client        *http.Client
	maxRetries    int
	retryInterval time.Duration
}

// NewRemote returns a repository for baseURL.
func NewRemote(id string, baseURL string, opts RemoteOptions) (*Remote, error) {
	if baseURL == "" {
		return nil, errors.New(messages.RepositoryRootRequired)
	}
	if opts.CacheDir == "" {
		return nil, errors.New(messages.RepositoryCacheDirRequired)
	}
	client := opts.Client
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultRemoteTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	interval := opts.RetryInterval
	if interval <= 0 {
		interval = defaultRetryInterval
	}
	maxRetries := opts.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &Remote{
		id:            id,
		baseURL:       baseURL,
		cacheDir:      opts.CacheDir,
		client:        client,
		maxRetries:    maxRetries,
		retryInterval: interval,
	}, nil
}

// ID names the channel.
func (r *Remote) ID() string {
	return r.id
}

type metadata struct {
	XMLName    xml.Name `xml:"metadata"`
	Versioning struct {
		Latest   string   `xml:"latest"`
		Release  string   `xml:"release"`
		Versions []string `xml:"versions>version"`
	} `xml:"versioning"`
}

func (r *Remote) artifactURL(key gav.Key, parts ...string) string {
	elems := append([]string{gav.GroupPath(key.GroupID), key.ArtifactID}, parts...)
	return r.baseURL + "/" + path.Join(elems...)
}

// FindLatestVersionOf reads the identity's maven-metadata.xml and returns the
// highest listed version.
func (r *Remote) FindLatestVersionOf(ctx context.Context, g gav.Gav) (gav.Gav, error) {
	target := r.artifactURL(g.Key(), metadataFileName)
	data, err := r.fetch(ctx, target)
	if err != nil {
		if errors.Is(err, errStatusNotFound) {
			return gav.Gav{}, noVersions(g.Key())
		}
		return gav.Gav{}, err
	}
	var meta metadata
	if err := xml.Unmarshal(data, &meta); err != nil {
		return gav.Gav{}, fmt.Errorf(messages.RepositoryDecodeMetadataFmt, target, err)
	}
	versions := append([]string{meta.Versioning.Release}, meta.Versioning.Versions...)
	return latestOf(g.Key(), versions)
}

// ResolveDescriptor fetches dependencies.toml for g; a 404 means no descriptor.
func (r *Remote) ResolveDescriptor(ctx context.Context, g gav.Gav) (*gav.Dependencies, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	target := r.artifactURL(g.Key(), g.Version, DescriptorFileName)
	data, err := r.fetch(ctx, target)
	if err != nil {
		if errors.Is(err, errStatusNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return ParseDescriptor(data, target, g)
}

// Resolve downloads a's content into the cache directory unless it is already there.
func (r *Remote) Resolve(ctx context.Context, a gav.Artifact) (string, error) {
	if err := a.Validate(); err != nil {
		return "", err
	}
	dest := filepath.Join(r.cacheDir, filepath.FromSlash(gav.GroupPath(a.GroupID)), a.ArtifactID, a.Version, a.FileName())
	if info, err := os.Stat(dest); err == nil && !info.IsDir() {
		log.Debugf("using cached %s", dest)
		return dest, nil
	}
	target := r.artifactURL(a.Key(), a.Version, a.FileName())
	data, err := r.fetch(ctx, target)
	if err != nil {
		if errors.Is(err, errStatusNotFound) {
			return "", notFound(a)
		}
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", fmt.Errorf(messages.RepositoryCreateCacheDirFmt, filepath.Dir(dest), err)
	}
	if err := fsutil.WriteFileAtomic(dest, data, 0o644); err != nil {
		return "", err
	}
	log.Debugf("downloaded %s to %s", target, dest)
	return dest, nil
}

// fetch GETs target, retrying network errors and 5xx responses with
// exponential backoff. 404 is reported as errStatusNotFound without retrying.
func (r *Remote) fetch(ctx context.Context, target string) ([]byte, error) {
	var body []byte
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf(messages.RepositoryCreateRequestFmt, target, err))
		}
		req.Header.Set("User-Agent", userAgent)

		resp, err := r.client.Do(req)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return backoff.Permanent(fmt.Errorf(messages.RepositoryFetchFmt, target, err))
			}
			return fmt.Errorf(messages.RepositoryFetchFmt, target, err)
		}
		defer func() {
			if cerr := resp.Body.Close(); cerr != nil {
				log.Warnf("error closing response body: %v", cerr)
			}
		}()

		switch {
		case resp.StatusCode == http.StatusOK:
			data, err := io.ReadAll(resp.Body)
			if err != nil {
				return fmt.Errorf(messages.RepositoryFetchFmt, target, err)
			}
			body = data
			return nil
		case resp.StatusCode == http.StatusNotFound:
			return backoff.Permanent(errStatusNotFound)
		case resp.StatusCode >= 500 && resp.StatusCode <= 599:
			return fmt.Errorf(messages.RepositoryUnexpectedStatusFmt, target, resp.Status)
		default:
			return backoff.Permanent(fmt.Errorf(messages.RepositoryUnexpectedStatusFmt, target, resp.Status))
		}
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = r.retryInterval
	policy.MaxElapsedTime = defaultRetryMaxWindow
	notify := func(err error, wait time.Duration) {
		log.Debugf("request to %s failed, retrying in %s: %v", target, wait, err)
	}
	retry := backoff.WithContext(backoff.WithMaxRetries(policy, uint64(r.maxRetries)), ctx)
	if err := backoff.RetryNotify(operation, retry, notify); err != nil {
		return nil, err
	}
	return body, nil
}
