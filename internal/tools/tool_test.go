package tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/pdfaconvert/internal/domain"
	"github.com/backmassage/pdfaconvert/internal/locate"
	"github.com/backmassage/pdfaconvert/internal/process"
)

// fakeConverter writes "%PDF" to the path given by -o, --outputfile= or,
// for ebook-convert, the second positional argument.
const fakeConverter = `#!/bin/sh
echo "fake $(basename "$0") $*"
out=""
pos=0
while [ $# -gt 0 ]; do
  case "$1" in
    -o) shift; out="$1" ;;
    --outputfile=*) out="${1#--outputfile=}" ;;
    -*) ;;
    *) pos=$((pos+1)); [ "$pos" -eq 2 ] && [ -z "$out" ] && out="$1" ;;
  esac
  shift
done
%s
`

type recordLog struct {
	mu    sync.Mutex
	lines []string
}

func (r *recordLog) add(level, format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, level+" "+fmt.Sprintf(format, args...))
}

func (r *recordLog) Info(format string, args ...interface{})  { r.add("INFO", format, args...) }
func (r *recordLog) Warn(format string, args ...interface{})  { r.add("WARN", format, args...) }
func (r *recordLog) Debug(format string, args ...interface{}) { r.add("DEBUG", format, args...) }

func (r *recordLog) joined() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return strings.Join(r.lines, "\n")
}

// writeTool creates an executable script named name in a new tool home.
// tail runs after the output path has been parsed into $out.
func writeTool(t *testing.T, name, tail string) string {
	t.Helper()
	home := t.TempDir()
	script := fmt.Sprintf(fakeConverter, tail)
	require.NoError(t, os.WriteFile(filepath.Join(home, name), []byte(script), 0o755))
	return home
}

const writesPDF = `printf '%%PDF-1.4 fake\n' > "$out"`

func newEnv(t *testing.T) (Env, *recordLog) {
	t.Helper()
	log := &recordLog{}
	return Env{
		Runner:    &process.Exec{},
		Locator:   &locate.Locator{},
		OutputDir: t.TempDir(),
		Log:       log,
	}, log
}

func writeInput(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("input"), 0o644))
	return path
}

func TestUnoconv_Convert(t *testing.T) {
	env, _ := newEnv(t)
	conv := NewUnoconv(env, writeTool(t, "unoconv", writesPDF))
	in := writeInput(t, "report.docx")

	res, err := conv.Convert(context.Background(), domain.Request{InputPath: in})
	require.NoError(t, err)
	assert.Equal(t, NameUnoconv, res.Tool)
	assert.Equal(t, filepath.Join(env.OutputDir, "report.pdf"), res.OutputPath)
	assert.Positive(t, res.Size)
	assert.False(t, res.Deleted)
	assert.FileExists(t, res.OutputPath)

	log, err := os.ReadFile(filepath.Join(env.OutputDir, LogUnoconv))
	require.NoError(t, err)
	assert.Contains(t, string(log), "-vv -f pdf -eSelectPdfVersion=1 -o "+res.OutputPath+" "+in)
}

func TestCalibre_Convert(t *testing.T) {
	env, _ := newEnv(t)
	conv := NewCalibre(env, writeTool(t, "ebook-convert", writesPDF))
	in := writeInput(t, "book.epub")

	res, err := conv.Convert(context.Background(), domain.Request{InputPath: in})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(env.OutputDir, "book.pdf"), res.OutputPath)

	log, err := os.ReadFile(filepath.Join(env.OutputDir, LogCalibre))
	require.NoError(t, err)
	assert.Contains(t, string(log), in+" "+res.OutputPath+" -v")
}

func TestPdfaPilot_Convert(t *testing.T) {
	env, _ := newEnv(t)
	conv := NewPdfaPilot(env, writeTool(t, "pdfaPilot", writesPDF), "2b")
	in := writeInput(t, "scan.pdf")

	res, err := conv.Convert(context.Background(), domain.Request{InputPath: in})
	require.NoError(t, err)
	assert.Equal(t, NamePdfaPilot, res.Tool)

	log, err := os.ReadFile(filepath.Join(env.OutputDir, LogPdfaPilot))
	require.NoError(t, err)
	assert.Contains(t, string(log), "--level=2b --outputfile="+res.OutputPath+" "+in)
	assert.NotContains(t, string(log), "--dist")
}

func TestPdfaPilotRemote_Convert(t *testing.T) {
	env, _ := newEnv(t)
	home := writeTool(t, "pdfaPilot", writesPDF)
	in := writeInput(t, "scan.pdf")

	res, err := NewPdfaPilotRemote(env, home, "", "1b").Convert(context.Background(), domain.Request{InputPath: in})
	require.NoError(t, err)
	assert.Equal(t, NamePdfaPilotRemote, res.Tool)
	log, err := os.ReadFile(filepath.Join(env.OutputDir, LogPdfaPilotRemote))
	require.NoError(t, err)
	assert.Contains(t, string(log), "--dist --level=1b --outputfile=")
	assert.NotContains(t, string(log), "--endpoint")

	_, err = NewPdfaPilotRemote(env, home, "disp.example:1200", "1b").Convert(context.Background(), domain.Request{InputPath: in})
	require.NoError(t, err)
	log, err = os.ReadFile(filepath.Join(env.OutputDir, LogPdfaPilotRemote))
	require.NoError(t, err)
	assert.Contains(t, string(log), "--dist --endpoint=disp.example:1200 --level=1b")
}

func TestConvert_NonZeroExitWithOutputSucceeds(t *testing.T) {
	env, log := newEnv(t)
	conv := NewUnoconv(env, writeTool(t, "unoconv", writesPDF+"\nexit 2"))

	res, err := conv.Convert(context.Background(), domain.Request{InputPath: writeInput(t, "a.doc")})
	require.NoError(t, err)
	assert.Equal(t, 2, res.ExitCode)
	assert.Contains(t, log.joined(), "exited with status 2")
}

func TestConvert_NoOutputFile(t *testing.T) {
	env, log := newEnv(t)
	conv := NewUnoconv(env, writeTool(t, "unoconv", `echo "Error: Unable to connect or start own listener"`))

	_, err := conv.Convert(context.Background(), domain.Request{InputPath: writeInput(t, "a.odt")})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrGeneratedFileUnavailable)
	assert.Contains(t, err.Error(), filepath.Join(env.OutputDir, "a.pdf"))
	assert.Contains(t, log.joined(), "WARN unoconv: Error: Unable to connect")
	assert.Contains(t, log.joined(), "output (last 20 lines)")
}

func TestConvert_MissingExecutable(t *testing.T) {
	env, _ := newEnv(t)
	conv := NewCalibre(env, t.TempDir())

	_, err := conv.Convert(context.Background(), domain.Request{InputPath: writeInput(t, "b.epub")})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExternalTool)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.NoFileExists(t, filepath.Join(env.OutputDir, LogCalibre))
}

func TestConvert_DeleteAfter(t *testing.T) {
	env, _ := newEnv(t)
	conv := NewUnoconv(env, writeTool(t, "unoconv", writesPDF))

	res, err := conv.Convert(context.Background(), domain.Request{InputPath: writeInput(t, "c.rtf"), DeleteAfter: true})
	require.NoError(t, err)
	assert.True(t, res.Deleted)
	assert.NoFileExists(t, res.OutputPath)
}

func TestConvert_LogFileIsOverwritten(t *testing.T) {
	env, _ := newEnv(t)
	conv := NewUnoconv(env, writeTool(t, "unoconv", writesPDF))

	_, err := conv.Convert(context.Background(), domain.Request{InputPath: writeInput(t, "first.doc")})
	require.NoError(t, err)
	_, err = conv.Convert(context.Background(), domain.Request{InputPath: writeInput(t, "second.doc")})
	require.NoError(t, err)

	log, err := os.ReadFile(filepath.Join(env.OutputDir, LogUnoconv))
	require.NoError(t, err)
	assert.NotContains(t, string(log), "first.doc")
	assert.Contains(t, string(log), "second.doc")
}

func TestConvert_EmptyInput(t *testing.T) {
	env, _ := newEnv(t)
	_, err := NewUnoconv(env, t.TempDir()).Convert(context.Background(), domain.Request{})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestDiagnosticsScan(t *testing.T) {
	out := []byte("Traceback (most recent call last):\n  File x\nValueError: bad epub\nok line\n")
	assert.Equal(t, []string{"Traceback (most recent call last):", "ValueError: bad epub"}, calibreDiagnostics.scan(out))
	assert.Empty(t, unoconvDiagnostics.scan([]byte("Input file: a.doc\nOutput file: a.pdf\n")))
	assert.Equal(t, []string{"Error\tFont not embedded"}, pdfaPilotDiagnostics.scan([]byte("Error\tFont not embedded\nSummary\tdone\n")))
}

func TestLastLines(t *testing.T) {
	assert.Equal(t, "", lastLines(nil, 3))
	assert.Equal(t, "b\nc", lastLines([]byte("a\nb\nc\n"), 2))
	assert.Equal(t, "a\nb", lastLines([]byte("a\nb"), 5))
}
