package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/socialgrid/socialgrid/internal/errors"
)

func TestParseFeedFilter(t *testing.T) {
	tests := []struct {
		in     string
		want   FeedFilter
		wantOK bool
	}{
		{"time", FeedFilterTime, true},
		{"popularity", FeedFilterPopularity, true},
		{"POPULARITY", FeedFilterPopularity, true},
		{"  time  ", FeedFilterTime, true},
		{"", FeedFilterTime, true},
		{"likes", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseFeedFilter(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCreatePostRequest_Validate(t *testing.T) {
	assert.NoError(t, (&CreatePostRequest{Content: "hello"}).Validate())

	err := (&CreatePostRequest{Content: "   "}).Validate()
	require.Error(t, err)
	assert.Equal(t, "content", apperrors.GetField(err))

	err = (&CreatePostRequest{Content: strings.Repeat("x", maxPostContentLen+1)}).Validate()
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestAddCommentRequest_Validate(t *testing.T) {
	assert.NoError(t, (&AddCommentRequest{Content: "nice post"}).Validate())

	err := (&AddCommentRequest{Content: ""}).Validate()
	require.Error(t, err)
	assert.Equal(t, "content", apperrors.GetField(err))

	err = (&AddCommentRequest{Content: strings.Repeat("y", maxCommentContentLen+1)}).Validate()
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}
