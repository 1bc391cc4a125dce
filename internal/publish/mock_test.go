package publish

import (
	"context"

	"github.com/moorara/gitch/internal/changelog"
	"github.com/moorara/gitch/internal/git"
	"github.com/moorara/gitch/internal/remote"
)

type (
	RootMock struct {
		OutRoot  string
		OutError error
	}

	RemoteInfoMock struct {
		OutInfo  git.RemoteInfo
		OutError error
	}

	BranchMock struct {
		OutBranch string
		OutError  error
	}

	RemoteTagExistsMock struct {
		InContext context.Context
		InTag     string
		OutExists bool
		OutError  error
	}

	MockGitRepo struct {
		RootIndex int
		RootMocks []RootMock

		RemoteInfoIndex int
		RemoteInfoMocks []RemoteInfoMock

		BranchIndex int
		BranchMocks []BranchMock

		RemoteTagExistsIndex int
		RemoteTagExistsMocks []RemoteTagExistsMock
	}
)

func (m *MockGitRepo) Root() (string, error) {
	i := m.RootIndex
	m.RootIndex++
	return m.RootMocks[i].OutRoot, m.RootMocks[i].OutError
}

func (m *MockGitRepo) RemoteInfo() (git.RemoteInfo, error) {
	i := m.RemoteInfoIndex
	m.RemoteInfoIndex++
	return m.RemoteInfoMocks[i].OutInfo, m.RemoteInfoMocks[i].OutError
}

func (m *MockGitRepo) Branch() (string, error) {
	i := m.BranchIndex
	m.BranchIndex++
	return m.BranchMocks[i].OutBranch, m.BranchMocks[i].OutError
}

func (m *MockGitRepo) RemoteTagExists(ctx context.Context, tag string) (bool, error) {
	i := m.RemoteTagExistsIndex
	m.RemoteTagExistsIndex++
	m.RemoteTagExistsMocks[i].InContext = ctx
	m.RemoteTagExistsMocks[i].InTag = tag
	return m.RemoteTagExistsMocks[i].OutExists, m.RemoteTagExistsMocks[i].OutError
}

type (
	SectionsMock struct {
		OutSections changelog.Sections
		OutError    error
	}

	// MockChangelog returns the last mock once the mocks are used up, like a cached changelog.
	MockChangelog struct {
		SectionsIndex int
		SectionsMocks []SectionsMock
	}
)

func (m *MockChangelog) Sections() (changelog.Sections, error) {
	i := m.SectionsIndex
	if i >= len(m.SectionsMocks) {
		i = len(m.SectionsMocks) - 1
	}
	m.SectionsIndex++
	return m.SectionsMocks[i].OutSections, m.SectionsMocks[i].OutError
}

type (
	FindByTagMock struct {
		InContext  context.Context
		InTag      string
		OutRelease remote.Release
		OutOK      bool
		OutError   error
	}

	CreateMock struct {
		InContext  context.Context
		InInput    remote.ReleaseInput
		OutRelease remote.Release
		OutError   error
	}

	UpdateMock struct {
		InContext  context.Context
		InID       int64
		InInput    remote.ReleaseInput
		OutRelease remote.Release
		OutError   error
	}

	MockReleaseDirectory struct {
		FindByTagIndex int
		FindByTagMocks []FindByTagMock

		CreateIndex int
		CreateMocks []CreateMock

		UpdateIndex int
		UpdateMocks []UpdateMock
	}
)

func (m *MockReleaseDirectory) FindByTag(ctx context.Context, tag string) (remote.Release, bool, error) {
	i := m.FindByTagIndex
	m.FindByTagIndex++
	m.FindByTagMocks[i].InContext = ctx
	m.FindByTagMocks[i].InTag = tag
	return m.FindByTagMocks[i].OutRelease, m.FindByTagMocks[i].OutOK, m.FindByTagMocks[i].OutError
}

func (m *MockReleaseDirectory) Create(ctx context.Context, in remote.ReleaseInput) (remote.Release, error) {
	i := m.CreateIndex
	m.CreateIndex++
	m.CreateMocks[i].InContext = ctx
	m.CreateMocks[i].InInput = in
	return m.CreateMocks[i].OutRelease, m.CreateMocks[i].OutError
}

func (m *MockReleaseDirectory) Update(ctx context.Context, id int64, in remote.ReleaseInput) (remote.Release, error) {
	i := m.UpdateIndex
	m.UpdateIndex++
	m.UpdateMocks[i].InContext = ctx
	m.UpdateMocks[i].InID = id
	m.UpdateMocks[i].InInput = in
	return m.UpdateMocks[i].OutRelease, m.UpdateMocks[i].OutError
}
