package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/qsc-search/internal/core/domain"
)

func TestNewServer_RequiresSearch(t *testing.T) {
	for name, ports := range map[string]*Ports{
		"nil ports":  nil,
		"no search":  {History: &mockHistoryService{}},
		"empty port": {},
	} {
		t.Run(name, func(t *testing.T) {
			server, err := NewServer(ports, domain.DefaultSettings())

			assert.ErrorIs(t, err, ErrMissingSearchService)
			assert.Nil(t, server)
		})
	}
}

func TestNewServer_HistoryOptional(t *testing.T) {
	server, err := NewServer(&Ports{Search: &mockSearchService{}}, domain.DefaultSettings())

	require.NoError(t, err)
	assert.NotNil(t, server)
}

func TestServer_SetSettings(t *testing.T) {
	server, err := NewServer(&Ports{Search: &mockSearchService{}}, domain.DefaultSettings())
	require.NoError(t, err)

	updated := domain.DefaultSettings()
	updated.Widget.MinQueryLength = 5
	server.SetSettings(updated)

	assert.Equal(t, 5, server.currentSettings().Widget.MinQueryLength)
}
