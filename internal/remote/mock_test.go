package remote

import "context"

type (
	FetchReleasesMock struct {
		InContext   context.Context
		OutReleases Releases
		OutError    error
	}

	CreateReleaseMock struct {
		InContext  context.Context
		InInput    ReleaseInput
		OutRelease Release
		OutError   error
	}

	UpdateReleaseMock struct {
		InContext  context.Context
		InID       int64
		InInput    ReleaseInput
		OutRelease Release
		OutError   error
	}

	MockRemoteRepo struct {
		FetchReleasesIndex int
		FetchReleasesMocks []FetchReleasesMock

		CreateReleaseIndex int
		CreateReleaseMocks []CreateReleaseMock

		UpdateReleaseIndex int
		UpdateReleaseMocks []UpdateReleaseMock
	}
)

func (m *MockRemoteRepo) FetchReleases(ctx context.Context) (Releases, error) {
	i := m.FetchReleasesIndex
	m.FetchReleasesIndex++
	m.FetchReleasesMocks[i].InContext = ctx
	return m.FetchReleasesMocks[i].OutReleases, m.FetchReleasesMocks[i].OutError
}

func (m *MockRemoteRepo) CreateRelease(ctx context.Context, in ReleaseInput) (Release, error) {
	i := m.CreateReleaseIndex
	m.CreateReleaseIndex++
	m.CreateReleaseMocks[i].InContext = ctx
	m.CreateReleaseMocks[i].InInput = in
	return m.CreateReleaseMocks[i].OutRelease, m.CreateReleaseMocks[i].OutError
}

func (m *MockRemoteRepo) UpdateRelease(ctx context.Context, id int64, in ReleaseInput) (Release, error) {
	i := m.UpdateReleaseIndex
	m.UpdateReleaseIndex++
	m.UpdateReleaseMocks[i].InContext = ctx
	m.UpdateReleaseMocks[i].InID = id
	m.UpdateReleaseMocks[i].InInput = in
	return m.UpdateReleaseMocks[i].OutRelease, m.UpdateReleaseMocks[i].OutError
}
