package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewType_String(t *testing.T) {
	tests := []struct {
		view ViewType
		want string
	}{
		{ViewWidget, "widget"},
		{ViewResults, "results"},
		{ViewHelp, "help"},
		{ViewType(99), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.view.String())
	}
}

func TestViewForPath(t *testing.T) {
	assert.Equal(t, ViewResults, ViewForPath("/search"))
	assert.Equal(t, ViewWidget, ViewForPath("/"))
	assert.Equal(t, ViewWidget, ViewForPath(""))
	assert.Equal(t, ViewWidget, ViewForPath("/unknown"))
}
