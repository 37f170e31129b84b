package specfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/chainspec/internal/dto"
	"github.com/aretw0/chainspec/internal/runtime"
	"github.com/aretw0/chainspec/internal/testutils"
	"github.com/aretw0/chainspec/pkg/config"
	"github.com/aretw0/chainspec/pkg/domain"
	"github.com/aretw0/chainspec/pkg/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const counterSpec = `
name: counter
subject:
  value:
    count: 5
    tags: [a, b]
config:
  max_retries: 2
chains:
  - - count
    - should
    - call: equal
      args: [5]
  - - get: tags
    - shouldEventually: true
    - not
    - call: include
      args: [c]
`

func run(t *testing.T, spec *Spec) *runner.Report {
	t.Helper()
	suite := runner.NewSuite()
	cfg := spec.Config.Apply(config.Default(), nil)
	retrier := runtime.NewRetrier(cfg, runtime.WithDelay(runtime.ImmediateDelay))
	require.NoError(t, runtime.NewRealizer(suite, retrier).Realize(context.Background(), spec.Root))
	return suite.Run(context.Background())
}

func TestParseAndCompile(t *testing.T) {
	doc, err := Parse([]byte(counterSpec))
	require.NoError(t, err)
	assert.Equal(t, "counter", doc.Name)
	require.NotNil(t, doc.Config.MaxRetries)
	assert.Equal(t, 2, *doc.Config.MaxRetries)

	spec, err := Compile(context.Background(), doc)
	require.NoError(t, err)
	defer spec.Close()

	assert.Equal(t, "counter", spec.Root.Description())
	require.Len(t, spec.Root.Children(), 2)
	assert.Equal(t, domain.KindGroup, spec.Root.Children()[0].Kind())

	report := run(t, spec)
	require.Len(t, report.Cases, 2)
	assert.Equal(t, "should equal 5", report.Cases[0].Name)
	assert.Equal(t, `shouldEventually not include "c"`, report.Cases[1].Name)
	assert.True(t, report.OK(), "%+v", report.Cases)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "not yaml", doc: "chains: [unbalanced"},
		{name: "no chains", doc: "name: empty\n"},
		{name: "two sources", doc: "subject: {file: x.json, value: 1}\nchains: [[should]]\n"},
		{name: "redis without key", doc: "subject: {redis: {addr: localhost}}\nchains: [[should]]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.ErrorIs(t, err, ErrInvalidDocument)
		})
	}
}

func TestDecodeEntry(t *testing.T) {
	tests := []struct {
		name    string
		raw     any
		want    dto.Entry
		wantErr bool
	}{
		{name: "bare property", raw: "count", want: dto.Entry{Get: "count"}},
		{name: "bare should", raw: "should", want: dto.Entry{Should: true}},
		{name: "bare eventually", raw: "shouldEventually", want: dto.Entry{ShouldEventually: true}},
		{name: "call", raw: map[string]any{"call": "equal", "args": []any{5}}, want: dto.Entry{Call: "equal", Args: []any{5}}},
		{name: "eventually map", raw: map[string]any{"shouldEventually": true}, want: dto.Entry{ShouldEventually: true}},
		{name: "unknown key", raw: map[string]any{"gett": "count"}, wantErr: true},
		{name: "two actions", raw: map[string]any{"get": "a", "call": "b"}, wantErr: true},
		{name: "nothing", raw: map[string]any{}, wantErr: true},
		{name: "args without call", raw: map[string]any{"get": "a", "args": []any{1}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeEntry(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidEntry)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompile_ReportsEntryPosition(t *testing.T) {
	doc, err := Parse([]byte("chains:\n  - - count\n    - {get: a, call: b}\n"))
	require.NoError(t, err)

	_, err = Compile(context.Background(), doc)
	assert.ErrorIs(t, err, ErrInvalidEntry)
	assert.Contains(t, err.Error(), "chain 1, entry 2")
}

func TestCompile_ReservedMember(t *testing.T) {
	doc, err := Parse([]byte("chains:\n  - - inspect\n"))
	require.NoError(t, err)

	_, err = Compile(context.Background(), doc)
	assert.ErrorIs(t, err, domain.ErrReservedMember)
}

func TestLoad_FileSubject(t *testing.T) {
	dir := t.TempDir()
	subject := filepath.Join(dir, "order.json")
	require.NoError(t, os.WriteFile(subject, []byte(`{"status": "paid"}`), 0644))

	path := filepath.Join(dir, "spec.yaml")
	content := "subject:\n  file: " + subject + "\nchains:\n  - [status, should, {call: equal, args: [paid]}]\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	doc, err := Load(path)
	require.NoError(t, err)
	spec, err := Compile(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, "reading "+subject, spec.Root.Description())
	report := run(t, spec)
	require.Len(t, report.Cases, 1)
	assert.True(t, report.OK(), report.Cases[0].Error)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCompile_RedisSubject(t *testing.T) {
	mr, _ := testutils.StartRedis(t)
	require.NoError(t, mr.Set("app:counter", "4"))

	doc, err := Parse([]byte(`
subject:
  redis: {addr: "` + mr.Addr() + `", key: counter, prefix: "app:"}
config:
  max_retries: 1
chains:
  - [shouldEventually, {call: equal, args: [5]}]
`))
	require.NoError(t, err)

	spec, err := Compile(context.Background(), doc)
	require.NoError(t, err)
	defer spec.Close()
	assert.Equal(t, "reading redis key app:counter", spec.Root.Description())

	report := run(t, spec)
	require.Len(t, report.Cases, 1)
	assert.Equal(t, "expected: 5   actual: 4", report.Cases[0].Error)

	require.NoError(t, mr.Set("app:counter", "5"))
	suite := runner.NewSuite()
	retrier := runtime.NewRetrier(config.Default(), runtime.WithDelay(runtime.ImmediateDelay))
	require.NoError(t, runtime.NewRealizer(suite, retrier).Realize(context.Background(), spec.Root))
	assert.True(t, suite.Run(context.Background()).OK())
}
