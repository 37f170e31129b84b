package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_Fetch(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		return path
	}

	tests := []struct {
		name string
		path string
		raw  bool
		want any
	}{
		{name: "json", path: write("order.json", `{"status": "paid", "items": 2}`), want: map[string]any{"status": "paid", "items": 2}},
		{name: "yaml", path: write("order.yaml", "status: paid\ntags: [a, b]\n"), want: map[string]any{"status": "paid", "tags": []any{"a", "b"}}},
		{name: "scalar", path: write("count", "5\n"), want: 5},
		{name: "text", path: write("notes.txt", "status: [unbalanced\n"), want: "status: [unbalanced"},
		{name: "raw", path: write("raw.txt", " 5 \n"), raw: true, want: "5"},
		{name: "missing", path: filepath.Join(dir, "nope.json"), want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := New(tt.path)
			src.Raw = tt.raw
			got, err := src.Fetch(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSource_FetchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New("whatever").Fetch(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSource_FetchDirectory(t *testing.T) {
	_, err := New(t.TempDir()).Fetch(context.Background())
	assert.Error(t, err)
}
