// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStep(t *testing.T) {
	const n = 3
	tests := []struct {
		name    string
		from    View
		action  Action
		arg     int
		want    View
		wantErr bool
	}{
		{"open first", Home, ActionOpen, 0, SetView(0), false},
		{"open last", Home, ActionOpen, 2, SetView(2), false},
		{"open negative", Home, ActionOpen, -1, Home, true},
		{"open past end", Home, ActionOpen, 3, Home, true},
		{"back from home", Home, ActionBack, 0, Home, true},
		{"next from home", Home, ActionNext, 0, Home, true},
		{"home from home", Home, ActionHome, 0, Home, true},
		{"back from first", SetView(0), ActionBack, 0, SetView(0), true},
		{"back from middle", SetView(1), ActionBack, 0, SetView(0), false},
		{"next from middle", SetView(1), ActionNext, 0, SetView(2), false},
		{"next from last", SetView(2), ActionNext, 0, SetView(2), true},
		{"home from set", SetView(2), ActionHome, 0, Home, false},
		{"open from set", SetView(1), ActionOpen, 0, SetView(1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Step(tt.from, tt.action, tt.arg, n)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrTransitionNotAllowed)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEnabled_BackNextGuards(t *testing.T) {
	for _, n := range []int{1, 2, 5, 20} {
		for i := 0; i < n; i++ {
			v := SetView(i)
			assert.Equal(t, i > 0, Enabled(v, ActionBack, n), "back n=%d i=%d", n, i)
			assert.Equal(t, i < n-1, Enabled(v, ActionNext, n), "next n=%d i=%d", n, i)
			assert.True(t, Enabled(v, ActionHome, n))
		}
	}
}

func TestViewString(t *testing.T) {
	assert.Equal(t, "home", Home.String())
	assert.Equal(t, "set(4)", SetView(4).String())
	assert.Equal(t, "next", ActionNext.String())
}
