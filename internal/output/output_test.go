package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUI() (*UI, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &UI{Out: out, ErrOut: errOut}, out, errOut
}

func TestInfo(t *testing.T) {
	u, out, _ := newTestUI()
	u.Info("searching %s", "rust")
	assert.Contains(t, out.String(), "searching rust")
}

func TestSuccess(t *testing.T) {
	u, out, _ := newTestUI()
	u.Success("saved %d repositories", 42)
	assert.Contains(t, out.String(), "saved 42 repositories")
}

func TestWarning(t *testing.T) {
	u, _, errOut := newTestUI()
	u.Warning("partial %s", "results")
	assert.Contains(t, errOut.String(), "partial results")
}

func TestError(t *testing.T) {
	u, _, errOut := newTestUI()
	u.Error("failed %s", "badly")
	assert.Contains(t, errOut.String(), "failed badly")
}

func TestVerboseLog_Enabled(t *testing.T) {
	u, out, _ := newTestUI()
	u.Verbose = true
	u.VerboseLog("detail %d", 1)
	assert.Contains(t, out.String(), "detail 1")
}

func TestVerboseLog_Disabled(t *testing.T) {
	u, out, _ := newTestUI()
	u.Verbose = false
	u.VerboseLog("detail %d", 1)
	assert.Empty(t, out.String())
}

func TestProgressf_PadsShorterUpdates(t *testing.T) {
	u, out, _ := newTestUI()
	u.Progressf("[1/2] some/extremely-long-name")
	u.Progressf("[2/2] tiny")

	lines := strings.Split(out.String(), "\r")
	require.Len(t, lines, 3) // leading empty segment plus two redraws
	assert.Equal(t, len(lines[1]), len(lines[2]), "second line must cover the first completely")
	assert.Contains(t, lines[2], "[2/2] tiny")
}

func TestProgressDone(t *testing.T) {
	u, out, _ := newTestUI()

	// Without a progress line there is nothing to terminate.
	u.ProgressDone()
	assert.Empty(t, out.String())

	u.Progressf("[1/1] acme/alpha")
	u.ProgressDone()
	assert.True(t, strings.HasSuffix(out.String(), "\n"))
}

func TestColorHelpers(t *testing.T) {
	// Color helpers should return non-empty strings
	assert.NotEmpty(t, Cyan("test"))
	assert.NotEmpty(t, Green("test"))
	assert.NotEmpty(t, Yellow("test"))
	assert.NotEmpty(t, Red("test"))
}

func TestTable(t *testing.T) {
	u, out, _ := newTestUI()
	table := u.Table([]string{"Repository", "Stars"})
	require.NotNil(t, table)

	table.Append([]string{"tokio-rs/tokio", "4900"})
	table.Append([]string{"sharkdp/bat", "1100"})
	err := table.Render()
	require.NoError(t, err)

	result := out.String()
	assert.Contains(t, result, "tokio-rs/tokio")
	assert.Contains(t, result, "1100")
}
