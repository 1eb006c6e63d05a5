package repository

import (
	"context"

	"github.com/conn-castle/distup/internal/gav"
)

// fakeChannel answers from in-memory maps and counts calls.
type fakeChannel struct {
	id          string
	latest      map[gav.Key]string
	descriptors map[gav.Gav]*gav.Dependencies
	content     map[string]string
	err         error

	latestCalls     int
	descriptorCalls int
}

func (f *fakeChannel) ID() string { return f.id }

func (f *fakeChannel) FindLatestVersionOf(_ context.Context, g gav.Gav) (gav.Gav, error) {
	f.latestCalls++
	if f.err != nil {
		return gav.Gav{}, f.err
	}
	v, ok := f.latest[g.Key()]
	if !ok {
		return gav.Gav{}, noVersions(g.Key())
	}
	return gav.Gav{GroupID: g.GroupID, ArtifactID: g.ArtifactID, Version: v}, nil
}

func (f *fakeChannel) ResolveDescriptor(_ context.Context, g gav.Gav) (*gav.Dependencies, error) {
	f.descriptorCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.descriptors[g], nil
}

func (f *fakeChannel) Resolve(_ context.Context, a gav.Artifact) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	path, ok := f.content[a.Gav.String()]
	if !ok {
		return "", notFound(a)
	}
	return path, nil
}
