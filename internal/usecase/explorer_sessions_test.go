package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionsCreateAndGet(t *testing.T) {
	src := &fakeMarketData{equities: equityFixture(3)}
	cat := NewCatalog(src, nil, 0, nil)
	m := NewExplorerSessions(cat, time.Minute, 10, nil)

	e := m.Create()
	require.NotEmpty(t, e.ID())

	got, err := m.Get(e.ID())
	require.NoError(t, err)
	assert.Same(t, e, got)
}

func TestSessionsGetUnknownID(t *testing.T) {
	src := &fakeMarketData{}
	cat := NewCatalog(src, nil, 0, nil)
	m := NewExplorerSessions(cat, time.Minute, 10, nil)

	_, err := m.Get("no-such-session")
	assert.Error(t, err)
}

func TestSessionsAreIndependent(t *testing.T) {
	src := &fakeMarketData{equities: equityFixture(3)}
	cat := NewCatalog(src, nil, 0, nil)
	m := NewExplorerSessions(cat, time.Minute, 10, nil)

	a := m.Create()
	b := m.Create()
	require.NotEqual(t, a.ID(), b.ID())

	a.Select("600500")
	assert.Empty(t, b.Selected())
}
