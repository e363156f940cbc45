package plan

import (
	"encoding/json"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlan_PointsForPlay(t *testing.T) {
	tests := []struct {
		name         string
		plan         Plan
		current      int
		alreadyHeard bool
		expected     int
	}{
		{name: "free first play", plan: Free, current: 0, expected: 5},
		{name: "free repeat play", plan: Free, current: 40, alreadyHeard: true, expected: 5},
		{name: "base first play", plan: PremiumBase, current: 0, expected: 10},
		{name: "base repeat play", plan: PremiumBase, current: 10, alreadyHeard: true, expected: 10},
		{name: "top new track at 100", plan: PremiumTop, current: 100, expected: 2},
		{name: "top new track at 102", plan: PremiumTop, current: 102, expected: 2},
		{name: "top new track at 120", plan: PremiumTop, current: 120, expected: 3},
		{name: "top new track at 39 floors to zero", plan: PremiumTop, current: 39, expected: 0},
		{name: "top new track at 40", plan: PremiumTop, current: 40, expected: 1},
		{name: "top already heard", plan: PremiumTop, current: 1000, alreadyHeard: true, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.plan.PointsForPlay(tt.current, tt.alreadyHeard))
		})
	}
}

func TestPlan_Capabilities(t *testing.T) {
	tests := []struct {
		plan      Plan
		create    bool
		favorites bool
		name      string
	}{
		{plan: Free, create: false, favorites: false, name: "Free"},
		{plan: PremiumBase, create: true, favorites: false, name: "PremiumBase"},
		{plan: PremiumTop, create: true, favorites: true, name: "PremiumTop"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.create, tt.plan.CanCreatePlaylists())
			assert.Equal(t, tt.create, tt.plan.IsPremium())
			assert.Equal(t, tt.favorites, tt.plan.CanAccessFavorites())
			assert.Equal(t, tt.name, tt.plan.Name())
		})
	}
}

func TestPlan_Next(t *testing.T) {
	assert.Equal(t, PremiumBase, Free.Next())
	assert.Equal(t, PremiumTop, PremiumBase.Next())
	assert.Equal(t, PremiumTop, PremiumTop.Next())
}

func TestParse(t *testing.T) {
	tests := []struct {
		input    string
		expected Plan
		wantErr  bool
	}{
		{input: "free", expected: Free},
		{input: "Free", expected: Free},
		{input: "PremiumBase", expected: PremiumBase},
		{input: "premium_base", expected: PremiumBase},
		{input: "premium-top", expected: PremiumTop},
		{input: "PREMIUMTOP", expected: PremiumTop},
		{input: "gold", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, err := Parse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrUnknownPlan))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, p)
		})
	}
}

func TestPlan_JSON(t *testing.T) {
	type holder struct {
		Plan Plan `json:"plan"`
	}

	data, err := json.Marshal(holder{Plan: PremiumTop})
	require.NoError(t, err)
	assert.JSONEq(t, `{"plan":"PremiumTop"}`, string(data))

	var h holder
	require.NoError(t, json.Unmarshal([]byte(`{"plan":"premiumbase"}`), &h))
	assert.Equal(t, PremiumBase, h.Plan)

	require.Error(t, json.Unmarshal([]byte(`{"plan":"gold"}`), &h))

	_, err = json.Marshal(holder{Plan: Plan(7)})
	require.Error(t, err)
}
