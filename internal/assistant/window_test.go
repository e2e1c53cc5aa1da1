package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePosition(t *testing.T) {
	tests := []struct {
		name    string
		loc     Location
		x, y    int
		wantErr bool
	}{
		{name: "absolute", loc: *At(120, 80), x: 120, y: 80},
		{name: "top left", loc: *Anchored(AnchorTopLeft)},
		{name: "center", loc: *Anchored(AnchorCenter), wantErr: true},
		{name: "unknown", loc: *Anchored("nowhere"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, err := ResolvePosition(tt.loc)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.x, x)
			assert.Equal(t, tt.y, y)
		})
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "opening", StateOpening.String())
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "closing", StateClosing.String())
	assert.Equal(t, "Container", KindBox.String())
}
