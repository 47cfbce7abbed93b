package github

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRef(t *testing.T) {
	tests := []struct {
		ref     string
		owner   string
		repo    string
		path    string
		wantErr bool
	}{
		{ref: "golang/go/src/fmt/print.go", owner: "golang", repo: "go", path: "src/fmt/print.go"},
		{ref: "a/b/c", owner: "a", repo: "b", path: "c"},
		{ref: "a/b", wantErr: true},
		{ref: "a//c", wantErr: true},
		{ref: "", wantErr: true},
	}

	for _, tt := range tests {
		owner, repo, path, err := ParseRef(tt.ref)
		if tt.wantErr {
			assert.Error(t, err, "ref %q", tt.ref)
			continue
		}
		require.NoError(t, err, "ref %q", tt.ref)
		assert.Equal(t, tt.owner, owner)
		assert.Equal(t, tt.repo, repo)
		assert.Equal(t, tt.path, path)
	}
}
