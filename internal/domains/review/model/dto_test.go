package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReviewRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     ReviewRequest
		wantErr bool
	}{
		{"valid", ReviewRequest{Rating: 5, Content: "Great read"}, false},
		{"lowest rating", ReviewRequest{Rating: 1, Content: "Meh"}, false},
		{"rating zero", ReviewRequest{Rating: 0, Content: "Meh"}, true},
		{"rating six", ReviewRequest{Rating: 6, Content: "Meh"}, true},
		{"negative rating", ReviewRequest{Rating: -1, Content: "Meh"}, true},
		{"missing content", ReviewRequest{Rating: 3}, true},
		{"content at limit", ReviewRequest{Rating: 3, Content: strings.Repeat("a", MaxContentLength)}, false},
		{"content over limit", ReviewRequest{Rating: 3, Content: strings.Repeat("a", MaxContentLength+1)}, true},
		{"multibyte content at limit", ReviewRequest{Rating: 3, Content: strings.Repeat("ệ", MaxContentLength)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
