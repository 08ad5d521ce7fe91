package review_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	officeqc "github.com/johnChow-tech/office-files-quality-check"
	"github.com/johnChow-tech/office-files-quality-check/mock"
	"github.com/johnChow-tech/office-files-quality-check/review"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// tableReader serves canned tables keyed by path.
func tableReader(tables map[string]*officeqc.LinkTable) *mock.LinkTableReader {
	return &mock.LinkTableReader{
		ReadFn: func(path string) (*officeqc.LinkTable, error) {
			t, ok := tables[path]
			if !ok {
				return nil, officeqc.Errorf(officeqc.ENOTFOUND, "open link table %s: no such file", path)
			}
			return t, nil
		},
	}
}

// recordingSink captures every open in order.
type recordingSink struct {
	targets []string
}

func (s *recordingSink) mock() *mock.LinkSink {
	return &mock.LinkSink{
		OpenFn: func(ctx context.Context, target string) error {
			s.targets = append(s.targets, target)
			return nil
		},
	}
}

func fastSession(t *testing.T, reader officeqc.LinkTableReader, sink officeqc.LinkSink) *review.Session {
	t.Helper()
	return &review.Session{
		Reader:      reader,
		Sink:        sink,
		OutputDir:   t.TempDir(),
		Pacing:      time.Millisecond,
		PromptDelay: time.Millisecond,
		Logger:      testLogger(),
	}
}

func TestSessionGlobalDedup(t *testing.T) {
	t.Parallel()

	tables := map[string]*officeqc.LinkTable{
		"t1.dat": {SourceFile: "one.docx", URLs: []string{"https://a.test", "https://b.test"}},
		"t2.dat": {SourceFile: "two.xlsx", URLs: []string{"https://b.test", "https://c.test"}},
		"t3.dat": {SourceFile: "three.pptx", URLs: []string{"https://a.test", "https://c.test"}},
	}

	sink := &recordingSink{}
	s := fastSession(t, tableReader(tables), sink.mock())

	groups, err := s.Run(context.Background(), []string{"t1.dat", "t2.dat", "t3.dat"})
	require.NoError(t, err)

	// t3 contributes no group: both of its URLs were seen earlier in
	// the pass.
	assert.Equal(t, 2, groups)

	require.Len(t, sink.targets, 5)
	assert.True(t, strings.HasPrefix(sink.targets[0], "file://"), "group opens start with the confirmation page")
	assert.Contains(t, sink.targets[0], "QC_Prompt_one_docx.html")
	assert.Equal(t, "https://a.test", sink.targets[1])
	assert.Equal(t, "https://b.test", sink.targets[2])
	assert.Contains(t, sink.targets[3], "QC_Prompt_two_xlsx.html")
	assert.Equal(t, "https://c.test", sink.targets[4])
}

func TestSessionsDoNotShareState(t *testing.T) {
	t.Parallel()

	tables := map[string]*officeqc.LinkTable{
		"t.dat": {SourceFile: "a.docx", URLs: []string{"https://a.test", "https://b.test"}},
	}

	for i := 0; i < 2; i++ {
		sink := &recordingSink{}
		s := fastSession(t, tableReader(tables), sink.mock())

		groups, err := s.Run(context.Background(), []string{"t.dat"})
		require.NoError(t, err)
		assert.Equal(t, 1, groups)
		assert.Len(t, sink.targets, 3, "each session opens the full set")
	}
}

func TestSessionNoNewLinks(t *testing.T) {
	t.Parallel()

	tables := map[string]*officeqc.LinkTable{
		"empty.dat": {SourceFile: "a.docx"},
	}

	sink := &recordingSink{}
	s := fastSession(t, tableReader(tables), sink.mock())

	groups, err := s.Run(context.Background(), []string{"empty.dat"})
	require.NoError(t, err)
	assert.Equal(t, 0, groups)
	assert.Empty(t, sink.targets)

	// No confirmation directory is created for an empty session.
	entries, err := os.ReadDir(s.OutputDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSessionUnreadableTableSkipped(t *testing.T) {
	t.Parallel()

	tables := map[string]*officeqc.LinkTable{
		"good.dat": {SourceFile: "a.docx", URLs: []string{"https://a.test"}},
	}

	sink := &recordingSink{}
	s := fastSession(t, tableReader(tables), sink.mock())

	groups, err := s.Run(context.Background(), []string{"missing.dat", "good.dat"})
	require.NoError(t, err)
	assert.Equal(t, 1, groups)
	require.Len(t, sink.targets, 2)
	assert.Equal(t, "https://a.test", sink.targets[1])
}

func TestSessionConfirmationArtifact(t *testing.T) {
	t.Parallel()

	tables := map[string]*officeqc.LinkTable{
		"t.dat": {SourceFile: "Quarterly Report.docx", URLs: []string{"https://a.test", "https://b.test"}},
	}

	sink := &recordingSink{}
	s := fastSession(t, tableReader(tables), sink.mock())

	_, err := s.Run(context.Background(), []string{"t.dat"})
	require.NoError(t, err)

	sessions, err := os.ReadDir(s.OutputDir)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.True(t, strings.HasPrefix(sessions[0].Name(), "temp_html_"))

	promptPath := filepath.Join(s.OutputDir, sessions[0].Name(), "QC_Prompt_Quarterly Report_docx.html")
	f, err := os.Open(promptPath)
	require.NoError(t, err)
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	require.NoError(t, err)

	assert.Equal(t, "Quarterly Report.docx", doc.Find(".highlight").Text())
	assert.Equal(t, "2", doc.Find(".count").Text())
	assert.Contains(t, doc.Find("h1").Text(), "quality check")
}

func TestSessionInvalid(t *testing.T) {
	t.Parallel()

	s := &review.Session{Logger: testLogger()}
	_, err := s.Run(context.Background(), []string{"t.dat"})
	require.Error(t, err)
	assert.Equal(t, officeqc.EINVALID, officeqc.ErrorCode(err))
}

func TestPromptFileName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		source string
		want   string
	}{
		{"report.docx", "QC_Prompt_report_docx.html"},
		{`a/b\c?d%e*f:g|h"i<j>k.pptx`, "QC_Prompt_a_b_c_d_e_f_g_h_i_j_k_pptx.html"},
		{"【report】.xlsx", "QC_Prompt__report__xlsx.html"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.source, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, review.PromptFileName(tt.source))
		})
	}
}
