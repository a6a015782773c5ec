package gpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProcessConditionals(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		hasGPC bool
		want   string
	}{
		{
			name:   "empty input",
			text:   "",
			hasGPC: true,
			want:   "",
		},
		{
			name:   "no markers is exact passthrough",
			text:   "Your data is  shared\twith partners.",
			hasGPC: true,
			want:   "Your data is  shared\twith partners.",
		},
		{
			name:   "gpc block kept when signal present",
			text:   "We honor __GPC_START__your GPC signal__GPC_END__ here.",
			hasGPC: true,
			want:   "We honor your GPC signal here.",
		},
		{
			name:   "gpc block removed when signal absent",
			text:   "We honor __GPC_START__your GPC signal__GPC_END__ here.",
			hasGPC: false,
			want:   "We honor here.",
		},
		{
			name:   "no_gpc block inverts polarity",
			text:   "__NO_GPC_START__Opt out below.__NO_GPC_END__Thanks.",
			hasGPC: false,
			want:   "Opt out below. Thanks.",
		},
		{
			name:   "adjacent blocks separate into spaced spans",
			text:   "A__GPC_START__B__GPC_END____NO_GPC_START__C__NO_GPC_END__D",
			hasGPC: true,
			want:   "A B D",
		},
		{
			name:   "adjacent blocks with signal absent",
			text:   "A__GPC_START__B__GPC_END____NO_GPC_START__C__NO_GPC_END__D",
			hasGPC: false,
			want:   "A C D",
		},
		{
			name:   "kept content preserves inline markup",
			text:   "__GPC_START__<b>GPC signal active</b>__GPC_END__",
			hasGPC: true,
			want:   "<b>GPC signal active</b>",
		},
		{
			name:   "unmatched open marker passes through literally",
			text:   "Begins __GPC_START__ never closes",
			hasGPC: true,
			want:   "Begins __GPC_START__ never closes",
		},
		{
			name:   "stray close marker passes through literally",
			text:   "No open here __GPC_END__ at all",
			hasGPC: false,
			want:   "No open here __GPC_END__ at all",
		},
		{
			name:   "unmatched trailing open after a complete block",
			text:   "__GPC_START__kept__GPC_END__ tail __NO_GPC_START__ dangling",
			hasGPC: true,
			want:   "kept tail __NO_GPC_START__ dangling",
		},
		{
			name:   "multiple blocks of the same kind",
			text:   "__GPC_START__one__GPC_END__ and __GPC_START__two__GPC_END__",
			hasGPC: true,
			want:   "one and two",
		},
		{
			name:   "whole text removed collapses to empty",
			text:   "__NO_GPC_START__only without signal__NO_GPC_END__",
			hasGPC: true,
			want:   "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ProcessConditionals(tc.text, tc.hasGPC))
		})
	}
}

func TestProcessConditionalsIsDeterministic(t *testing.T) {
	text := "A__GPC_START__B__GPC_END__ C __NO_GPC_START__D__NO_GPC_END__"

	first := ProcessConditionals(text, true)
	second := ProcessConditionals(text, true)
	assert.Equal(t, first, second)
}
