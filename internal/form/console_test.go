package form

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"tradecli/internal/services"
)

func TestRun_Console(t *testing.T) {
	dir := t.TempDir()
	exportPath := filepath.Join(dir, "export.csv")
	importPath := filepath.Join(dir, "import.csv")
	require.NoError(t, os.WriteFile(exportPath,
		[]byte("year,month,Code,weight,rial,dollar\n2020,1,A,5,50,10\n2020,2,A,5,100,20\n"), 0644))
	require.NoError(t, os.WriteFile(importPath,
		[]byte("year,month,Code,weight,rial,dollar\n2020,1,B,1,1,1\n"), 0644))
	out := filepath.Join(dir, "results")

	// run too early, select both files (the second quoted), an unknown
	// choice, run and save, exit
	input := strings.Join([]string{
		"3",
		"1", exportPath,
		"2", `"` + importPath + `"`,
		"9",
		"3", out,
		"4",
	}, "\n") + "\n"

	var screen bytes.Buffer
	console := NewConsole(strings.NewReader(input), &screen)
	svc := services.NewAnalysisService(services.AnalysisOptions{}, nil, nil, nil)
	session := NewSession(svc, console.Picker(), console.Notifier(), nil)

	require.NoError(t, Run(context.Background(), session, console))
	assert.True(t, session.Done())

	text := screen.String()
	assert.Contains(t, text, "[Error] Please load both Export and Import data files.")
	assert.Contains(t, text, StatusNoExport)
	assert.Contains(t, text, StatusExport)
	assert.Contains(t, text, StatusImport)
	assert.Contains(t, text, "unknown action 9")
	assert.Contains(t, text, "[Success] Results saved to "+out+".xlsx")

	f, err := excelize.OpenFile(out + ".xlsx")
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Export Data", "Export Volatility", "Import Data", "Import Volatility"}, f.GetSheetList())
}

func TestRun_EndOfInput(t *testing.T) {
	console := NewConsole(strings.NewReader("1\n"), &bytes.Buffer{})
	session := NewSession(&fakeAnalyzer{}, console.Picker(), console.Notifier(), nil)

	// The picker hits end of input and cancels; the loop then ends
	require.NoError(t, Run(context.Background(), session, console))
	assert.Empty(t, session.ExportPath())
	assert.False(t, session.Done())
}

func TestRun_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	console := NewConsole(strings.NewReader("4\n"), &bytes.Buffer{})
	session := NewSession(&fakeAnalyzer{}, console.Picker(), console.Notifier(), nil)

	assert.ErrorIs(t, Run(ctx, session, console), context.Canceled)
}

func TestRun_CancelledWhileWaitingForInput(t *testing.T) {
	// Nothing is ever typed, so the prompt blocks until cancellation
	in, w := io.Pipe()
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	console := NewConsole(in, &bytes.Buffer{})
	session := NewSession(&fakeAnalyzer{}, console.Picker(), console.Notifier(), nil)

	done := make(chan error, 1)
	go func() { done <- Run(ctx, session, console) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

func TestConsolePicker_CancelledWhileWaiting(t *testing.T) {
	in, w := io.Pipe()
	defer w.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	console := NewConsole(in, &bytes.Buffer{})
	_, ok, err := console.Picker().OpenFile(ctx, "Select Export Data", InputFilter)
	assert.False(t, ok)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestConsolePicker_OpenFileMissing(t *testing.T) {
	var screen bytes.Buffer
	missing := filepath.Join(t.TempDir(), "absent.csv")
	console := NewConsole(strings.NewReader(missing+"\n"), &screen)

	path, ok, err := console.Picker().OpenFile(context.Background(), "Select Export Data", InputFilter)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, path)
	assert.Contains(t, screen.String(), "File not found")
}

func TestConsolePicker_Cancel(t *testing.T) {
	console := NewConsole(strings.NewReader("\n"), &bytes.Buffer{})

	_, ok, err := console.Picker().SaveFile(context.Background(), "Save Results", WorkbookFilter)
	require.NoError(t, err)
	assert.False(t, ok)
}
