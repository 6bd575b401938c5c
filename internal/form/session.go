package form

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"tradecli/internal/dataprocessing"
	apperrors "tradecli/internal/errors"
	"tradecli/internal/services"
)

// Status labels shown next to the selection buttons
const (
	StatusNoExport = "No Export Data Loaded"
	StatusExport   = "Export Data Loaded"
	StatusNoImport = "No Import Data Loaded"
	StatusImport   = "Import Data Loaded"
)

// Dialog titles and messages
const (
	TitleError      = "Error"
	TitleSuccess    = "Success"
	MsgMissingInput = "Please load both Export and Import data files."

	defaultSaveExt = ".xlsx"
)

// FileFilter restricts a file dialog to a set of extensions
type FileFilter struct {
	Description string
	Extensions  []string
}

// String renders the filter as shown in a dialog, e.g. "Excel workbook (*.xlsx)"
func (f FileFilter) String() string {
	patterns := make([]string, len(f.Extensions))
	for i, ext := range f.Extensions {
		patterns[i] = "*" + ext
	}
	return fmt.Sprintf("%s (%s)", f.Description, strings.Join(patterns, ", "))
}

var (
	// InputFilter admits the trade file formats LoadTable reads
	InputFilter = FileFilter{Description: "Trade data", Extensions: dataprocessing.SupportedExtensions}
	// WorkbookFilter admits the results workbook
	WorkbookFilter = FileFilter{Description: "Excel workbook", Extensions: []string{defaultSaveExt}}
)

// FilePicker asks the user for a file. ok is false when the user cancels.
type FilePicker interface {
	OpenFile(ctx context.Context, title string, filter FileFilter) (path string, ok bool, err error)
	SaveFile(ctx context.Context, title string, filter FileFilter) (path string, ok bool, err error)
}

// Notifier shows a blocking message to the user
type Notifier interface {
	Error(title, message string)
	Info(title, message string)
}

// Analyzer runs and saves an analysis; services.AnalysisService implements it
type Analyzer interface {
	Run(ctx context.Context, exportPath, importPath string) (*services.Results, error)
	Save(ctx context.Context, results *services.Results, path string) ([]string, error)
}

// Session is the state behind the analysis window: the two selected files
// and their status labels. It is not safe for concurrent use.
type Session struct {
	exportPath string
	importPath string
	done       bool

	analyzer Analyzer
	picker   FilePicker
	notifier Notifier
	logger   *slog.Logger
}

// NewSession creates a session with nothing selected
func NewSession(analyzer Analyzer, picker FilePicker, notifier Notifier, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		analyzer: analyzer,
		picker:   picker,
		notifier: notifier,
		logger:   logger.With("component", "form"),
	}
}

// ExportPath returns the selected export file, or ""
func (s *Session) ExportPath() string { return s.exportPath }

// ImportPath returns the selected import file, or ""
func (s *Session) ImportPath() string { return s.importPath }

// ExportStatus returns the export status label
func (s *Session) ExportStatus() string {
	if s.exportPath == "" {
		return StatusNoExport
	}
	return StatusExport
}

// ImportStatus returns the import status label
func (s *Session) ImportStatus() string {
	if s.importPath == "" {
		return StatusNoImport
	}
	return StatusImport
}

// Done reports whether ActionExit was dispatched
func (s *Session) Done() bool { return s.done }

// Dispatch performs one action. Errors are shown through the Notifier before
// being returned; a cancelled dialog is not an error.
func (s *Session) Dispatch(ctx context.Context, action Action) error {
	s.logger.DebugContext(ctx, "Dispatching action", slog.String("action", action.String()))

	switch action {
	case ActionSelectExport:
		return s.selectFile(ctx, "Select Export Data", &s.exportPath)
	case ActionSelectImport:
		return s.selectFile(ctx, "Select Import Data", &s.importPath)
	case ActionRunAnalysis:
		return s.runAnalysis(ctx)
	case ActionExit:
		s.done = true
		return nil
	default:
		return fmt.Errorf("unknown action %d", int(action))
	}
}

// selectFile replaces *target only when the user picks a file
func (s *Session) selectFile(ctx context.Context, title string, target *string) error {
	path, ok, err := s.picker.OpenFile(ctx, title, InputFilter)
	if err != nil {
		s.notifier.Error(TitleError, err.Error())
		return err
	}
	if !ok {
		s.logger.DebugContext(ctx, "File selection cancelled", slog.String("title", title))
		return nil
	}

	*target = path
	s.logger.InfoContext(ctx, "Input file selected",
		slog.String("title", title),
		slog.String("path", path))
	return nil
}

func (s *Session) runAnalysis(ctx context.Context) error {
	if s.exportPath == "" || s.importPath == "" {
		s.notifier.Error(TitleError, MsgMissingInput)
		var missing []string
		if s.exportPath == "" {
			missing = append(missing, "export")
		}
		if s.importPath == "" {
			missing = append(missing, "import")
		}
		return apperrors.NewMissingInputError(missing...)
	}

	results, err := s.analyzer.Run(ctx, s.exportPath, s.importPath)
	if err != nil {
		s.notifier.Error(TitleError, err.Error())
		return err
	}

	path, ok, err := s.picker.SaveFile(ctx, "Save Results", WorkbookFilter)
	if err != nil {
		s.notifier.Error(TitleError, err.Error())
		return err
	}
	if !ok {
		s.logger.InfoContext(ctx, "Save cancelled, results discarded")
		return nil
	}
	if filepath.Ext(path) == "" {
		path += defaultSaveExt
	}

	if _, err := s.analyzer.Save(ctx, results, path); err != nil {
		s.notifier.Error(TitleError, err.Error())
		return err
	}

	s.notifier.Info(TitleSuccess, fmt.Sprintf("Results saved to %s", path))
	return nil
}
