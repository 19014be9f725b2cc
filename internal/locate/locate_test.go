package locate

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/pdfaconvert/internal/domain"
)

// minimalPDF builds a one-page PDF with a correct cross-reference table.
func minimalPDF() []byte {
	objs := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << >> >>",
	}
	var b bytes.Buffer
	b.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, o := range objs {
		offsets[i] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n%s\nendobj\n", i+1, o)
	}
	xref := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n0000000000 65535 f \n", len(objs)+1)
	for _, off := range offsets {
		fmt.Fprintf(&b, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)
	return b.Bytes()
}

func TestLocate_Present(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "report.pdf"), []byte("data"), 0o644))

	f, err := (&Locator{}).Locate(context.Background(), dir, "report.pdf")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "report.pdf"), f.Path)
	assert.Equal(t, int64(4), f.Size)
	assert.Empty(t, f.Metadata)
}

func TestLocate_Missing(t *testing.T) {
	dir := t.TempDir()
	_, err := (&Locator{}).Locate(context.Background(), dir, "report.pdf")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrGeneratedFileUnavailable)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), filepath.Join(dir, "report.pdf"))
}

func TestLocate_Empty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "report.pdf"), nil, 0o644))

	_, err := (&Locator{}).Locate(context.Background(), dir, "report.pdf")
	assert.ErrorIs(t, err, domain.ErrGeneratedFileUnavailable)
}

func TestLocate_Directory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "report.pdf"), 0o755))

	_, err := (&Locator{}).Locate(context.Background(), dir, "report.pdf")
	assert.ErrorIs(t, err, domain.ErrGeneratedFileUnavailable)
}

func TestLocate_WaitsForLateFile(t *testing.T) {
	dir := t.TempDir()
	go func() {
		time.Sleep(100 * time.Millisecond)
		_ = os.WriteFile(filepath.Join(dir, "late.pdf"), []byte("data"), 0o644)
	}()

	l := &Locator{Wait: 5 * time.Second}
	f, err := l.Locate(context.Background(), dir, "late.pdf")
	require.NoError(t, err)
	assert.Equal(t, int64(4), f.Size)
}

func TestLocate_WaitExpires(t *testing.T) {
	dir := t.TempDir()
	l := &Locator{Wait: 50 * time.Millisecond}

	start := time.Now()
	_, err := l.Locate(context.Background(), dir, "never.pdf")
	assert.ErrorIs(t, err, domain.ErrGeneratedFileUnavailable)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestLocate_WaitCancelled(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := (&Locator{Wait: time.Minute}).Locate(ctx, dir, "never.pdf")
	assert.ErrorIs(t, err, domain.ErrGeneratedFileUnavailable)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLocate_InspectPDF(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "doc.pdf"), minimalPDF(), 0o644))

	f, err := (&Locator{Inspect: true}).Locate(context.Background(), dir, "doc.pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", f.Metadata[MetaMIME])
	assert.Equal(t, "1", f.Metadata[MetaPages])
}

func TestLocate_InspectNonPDFIsNotFatal(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "doc.pdf"), []byte("plain text\n"), 0o644))

	f, err := (&Locator{Inspect: true}).Locate(context.Background(), dir, "doc.pdf")
	require.NoError(t, err)
	assert.Contains(t, f.Metadata[MetaMIME], "text/plain")
	assert.Contains(t, f.Metadata[MetaInspectError], "not a PDF")
	assert.NotContains(t, f.Metadata, MetaPages)
}
