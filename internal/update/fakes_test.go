package update

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/conn-castle/distup/internal/featurepack"
	"github.com/conn-castle/distup/internal/gav"
	"github.com/conn-castle/distup/internal/repository"
)

func coord(t *testing.T, raw string) gav.Gav {
	t.Helper()
	g, err := gav.ParseGav(raw)
	require.NoError(t, err)
	return g
}

func art(t *testing.T, raw string) gav.Artifact {
	t.Helper()
	return gav.NewArtifact(coord(t, raw))
}

// fakeRepo serves versions and descriptors from memory.
type fakeRepo struct {
	versions    map[gav.Key][]string
	descriptors map[string][]gav.Gav
	missing     map[string]bool
	latestErr   error

	descriptorRequests []string
	resolved           []string
	flushes            int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		versions:    map[gav.Key][]string{},
		descriptors: map[string][]gav.Gav{},
		missing:     map[string]bool{},
	}
}

// offer publishes coordinate ("g:a:v") with the given minimum requirements.
func (f *fakeRepo) offer(t *testing.T, coordinate string, requires ...string) {
	t.Helper()
	g := coord(t, coordinate)
	f.versions[g.Key()] = append(f.versions[g.Key()], g.Version)
	if len(requires) > 0 {
		deps := make([]gav.Gav, 0, len(requires))
		for _, r := range requires {
			deps = append(deps, coord(t, r))
		}
		f.descriptors[g.String()] = deps
	}
}

func (f *fakeRepo) FindLatestVersionOf(_ context.Context, g gav.Gav) (gav.Gav, error) {
	if f.latestErr != nil {
		return gav.Gav{}, f.latestErr
	}
	versions := f.versions[g.Key()]
	if len(versions) == 0 {
		return gav.Gav{}, fmt.Errorf("%s: %w", g.Key(), repository.ErrNoVersions)
	}
	sorted := append([]string(nil), versions...)
	sort.Slice(sorted, func(i, j int) bool { return gav.CompareVersions(sorted[i], sorted[j]) < 0 })
	latest := g
	latest.Version = sorted[len(sorted)-1]
	return latest, nil
}

func (f *fakeRepo) ResolveDescriptor(_ context.Context, g gav.Gav) (*gav.Dependencies, error) {
	f.descriptorRequests = append(f.descriptorRequests, g.String())
	deps, ok := f.descriptors[g.String()]
	if !ok {
		return nil, nil
	}
	return &gav.Dependencies{Artifact: g, Requires: deps}, nil
}

func (f *fakeRepo) Flush() {
	f.flushes++
}

func (f *fakeRepo) Resolve(_ context.Context, a gav.Artifact) (string, error) {
	if f.missing[a.Gav.String()] {
		return "", fmt.Errorf("%s: %w", a.Gav, repository.ErrNotFound)
	}
	f.resolved = append(f.resolved, a.Gav.String())
	return "/content/" + a.FileName(), nil
}

// fakeStore is an in-memory installation that records persisted snapshots.
type fakeStore struct {
	entries    map[gav.Key]gav.Artifact
	persisted  map[gav.Key]gav.Artifact
	installed  []string
	failOn     string
	persistErr error
	persists   int
}

func newFakeStore(t *testing.T, coordinates ...string) *fakeStore {
	t.Helper()
	s := &fakeStore{entries: map[gav.Key]gav.Artifact{}}
	for _, c := range coordinates {
		a := art(t, c)
		s.entries[a.Key()] = a
	}
	s.persisted = s.snapshot()
	return s
}

func (s *fakeStore) snapshot() map[gav.Key]gav.Artifact {
	out := make(map[gav.Key]gav.Artifact, len(s.entries))
	for k, v := range s.entries {
		out[k] = v
	}
	return out
}

func (s *fakeStore) Find(key gav.Key) (gav.Artifact, bool) {
	a, ok := s.entries[key]
	return a, ok
}

func (s *fakeStore) Artifacts() []gav.Artifact {
	out := make([]gav.Artifact, 0, len(s.entries))
	for _, a := range s.entries {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key().String() < out[j].Key().String() })
	return out
}

func (s *fakeStore) UpdateArtifact(oldVersion gav.Artifact, newVersion gav.Artifact, contentPath string) error {
	if newVersion.Gav.String() == s.failOn {
		return errors.New("disk full")
	}
	current, ok := s.entries[oldVersion.Key()]
	if !ok || current.Version != oldVersion.Version {
		return fmt.Errorf("stale update of %s", oldVersion.Gav)
	}
	s.entries[newVersion.Key()] = newVersion
	s.installed = append(s.installed, newVersion.Gav.String()+"<-"+contentPath)
	return nil
}

func (s *fakeStore) RegisterUpdates(artifacts []gav.Artifact) {
	for _, a := range artifacts {
		s.entries[a.Key()] = a
	}
}

func (s *fakeStore) Persist() error {
	if s.persistErr != nil {
		return s.persistErr
	}
	s.persists++
	s.persisted = s.snapshot()
	return nil
}

func (s *fakeStore) ManifestPath() string {
	return "/inst/.distup/manifest.toml"
}

func (s *fakeStore) persistedVersion(t *testing.T, key string) string {
	t.Helper()
	g := coord(t, key)
	return s.persisted[g.Key()].Version
}

// fakePlanner returns a canned plan and touched set.
type fakePlanner struct {
	plan     featurepack.Plan
	touched  []gav.Artifact
	planErr  error
	applyErr error
	applied  int
}

func (p *fakePlanner) PlanUpdates(context.Context) (featurepack.Plan, error) {
	return p.plan, p.planErr
}

func (p *fakePlanner) Apply(context.Context, featurepack.Plan) ([]gav.Artifact, error) {
	if p.applyErr != nil {
		return nil, p.applyErr
	}
	p.applied++
	return p.touched, nil
}

// fakeLayout treats the listed identities as installed.
type fakeLayout struct {
	installed map[gav.Key]bool
}

func (l fakeLayout) Find(a gav.Artifact) ([]string, error) {
	if l.installed[a.Key()] {
		return []string{"/inst/modules/" + a.ArtifactID}, nil
	}
	return nil, nil
}

// recordingConfirmer answers with accept and remembers what it was shown.
type recordingConfirmer struct {
	accept bool
	err    error
	seen   []Summary
}

func (c *recordingConfirmer) Confirm(summary Summary) (bool, error) {
	c.seen = append(c.seen, summary)
	return c.accept, c.err
}
