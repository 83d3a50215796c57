package formatter

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"github.com/siyuan-infoblox/pretty-import/pkg/config"
	"github.com/siyuan-infoblox/pretty-import/pkg/errors"
	"github.com/siyuan-infoblox/pretty-import/pkg/lint"
	"github.com/siyuan-infoblox/pretty-import/pkg/parser"
	"github.com/siyuan-infoblox/pretty-import/pkg/utils"
)

// Output formats of the violation report
const (
	FormatText = "text"
	FormatJSON = "json"
)

var log = commonlog.GetLogger("pim.formatter")

type FormatterConfig struct {
	FilePath   string           // path to the source file
	ConfigFile string           // explicit config file, disables discovery
	Overrides  config.Overrides // options given on the command line
	InPlace    bool             // whether to modify the file in place
	Diff       bool             // print a unified diff instead of the fixed text
	Check      bool             // report violations instead of the fixed text
	Format     string           // report format, text or json
	Jobs       int              // files processed in parallel, NumCPU when 0
	Out        io.Writer        // destination of all output, stdout when nil
}

// formatter handles the per-file processing
type formatter struct {
	config FormatterConfig
}

// New creates a new formatter
func New(config FormatterConfig) *formatter {
	return &formatter{config: config}
}

func (g *formatter) getFilePath() string {
	return g.config.FilePath
}

func (g *formatter) getInPlace() bool {
	return g.config.InPlace
}

func (g *formatter) getFormat() string {
	if g.config.Format == "" {
		return FormatText
	}
	return g.config.Format
}

func (g *formatter) getJobs() int {
	if g.config.Jobs <= 0 {
		return runtime.NumCPU()
	}
	return g.config.Jobs
}

func (g *formatter) out() io.Writer {
	if g.config.Out == nil {
		return os.Stdout
	}
	return g.config.Out
}

// reporting tells whether violations are printed rather than the fixed text
func (g *formatter) reporting() bool {
	return g.config.Check || g.getFormat() == FormatJSON
}

// analyze runs the rules and the fixer over one file without producing output
func (g *formatter) analyze(path string) *FileResult {
	result := &FileResult{Path: path}

	src, err := os.ReadFile(path)
	if err != nil {
		result.setError(fmt.Errorf("%s: %w", errors.ErrMsgFailedToReadFile, err))
		return result
	}
	result.original = string(src)

	cfg, err := config.ForFile(path, g.config.ConfigFile, g.config.Overrides)
	if err != nil {
		result.setError(fmt.Errorf("%s: %w", errors.ErrMsgFailedToLoadConfig, err))
		return result
	}

	log.Debugf("analyzing %s", path)
	violations, err := lint.Analyze(result.original, cfg)
	if err != nil {
		result.setError(fmt.Errorf("%s: %w", errors.ErrMsgFailedToParseFile, err))
		return result
	}
	result.addViolations(result.original, violations)

	result.fixed, err = lint.Fix(result.original, cfg)
	if err != nil {
		result.setError(fmt.Errorf("%s: %w", errors.ErrMsgFailedToFormatFile, err))
		return result
	}
	result.Changed = result.fixed != result.original
	return result
}

// emit writes the outcome of one analyzed file according to the mode
func (g *formatter) emit(result *FileResult, single bool) error {
	if result.Err != nil {
		return result.Err
	}

	switch {
	case g.getInPlace():
		if !result.Changed {
			return nil
		}
		info, err := os.Stat(result.Path)
		if err != nil {
			return fmt.Errorf("%s: %w", errors.ErrMsgFailedToWriteFile, err)
		}
		if err := os.WriteFile(result.Path, []byte(result.fixed), info.Mode().Perm()); err != nil {
			return fmt.Errorf("%s: %w", errors.ErrMsgFailedToWriteFile, err)
		}
		log.Infof("rewrote %s", result.Path)
		return nil

	case g.config.Diff:
		if !result.Changed {
			return nil
		}
		diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(result.original),
			B:        difflib.SplitLines(result.fixed),
			FromFile: result.Path,
			ToFile:   result.Path,
			Context:  3,
		})
		if err != nil {
			return fmt.Errorf("%s: %w", errors.ErrMsgFailedToFormatFile, err)
		}
		fmt.Fprint(g.out(), diff)
		return nil

	case single && !g.reporting():
		// For stdout output, show only the import block
		fmt.Fprint(g.out(), importBlock(result.fixed))
		return nil
	}

	if g.getFormat() == FormatText {
		g.printViolations(result)
	}
	return nil
}

// importBlock returns the leading import block of text, or the whole text
// when it has no imports
func importBlock(text string) string {
	block, err := parser.Parse(text)
	if err != nil || len(block.Records) == 0 {
		return text
	}
	return text[block.Start:block.End] + "\n"
}

// ProcessFileWithOutput processes the configured source file and writes its output
func (g *formatter) ProcessFileWithOutput(verbose bool) error {
	if verbose {
		if root := utils.GetProjectRoot(g.getFilePath()); root != "" {
			log.Infof(errors.InfoMsgProjectRoot, root)
		}
	}

	result := g.analyze(g.getFilePath())
	if err := g.emit(result, true); err != nil {
		return err
	}
	if g.getFormat() == FormatJSON {
		if err := g.printJSON([]*FileResult{result}); err != nil {
			return err
		}
	}
	return g.checkResults([]*FileResult{result})
}

// ProcessFile processes a single source file
func (g *formatter) ProcessFile() error {
	return g.ProcessFileWithOutput(true)
}

// ProcessFiles processes multiple source files in parallel and prints their
// outcome in input order
func (g *formatter) ProcessFiles(filePaths []string) error {
	results := make([]*FileResult, len(filePaths))

	var eg errgroup.Group
	eg.SetLimit(g.getJobs())
	for i, filePath := range filePaths {
		eg.Go(func() error {
			results[i] = g.analyze(filePath)
			return nil
		})
	}
	_ = eg.Wait()

	text := g.getFormat() == FormatText
	processedCount, errorCount, violationCount := 0, 0, 0
	for _, result := range results {
		if err := g.emit(result, false); err != nil {
			if text {
				fmt.Fprintf(g.out(), errors.InfoMsgErrorProcessing+"\n", result.Path, err)
			}
			result.setError(err)
			errorCount++
			continue
		}
		processedCount++
		violationCount += len(result.Violations)
		if g.getInPlace() && result.Changed && text {
			fmt.Fprintf(g.out(), errors.InfoMsgProcessedFiles+"\n", result.Path)
		}
	}

	if text {
		fmt.Fprintf(g.out(), errors.InfoMsgProcessedCount, processedCount)
		if errorCount > 0 {
			fmt.Fprintf(g.out(), errors.InfoMsgErrorCount, errorCount)
		}
		if !g.getInPlace() && violationCount > 0 {
			fmt.Fprintf(g.out(), errors.InfoMsgViolationCount, violationCount)
		}
		fmt.Fprintln(g.out())
	} else if err := g.printJSON(results); err != nil {
		return err
	}

	if errorCount > 0 {
		return fmt.Errorf(errors.ErrMsgFilesFailedToProcess, errorCount)
	}
	return g.checkResults(results)
}

// checkResults fails in check mode when error-severity violations remain
func (g *formatter) checkResults(results []*FileResult) error {
	if !g.config.Check {
		return nil
	}
	failed := 0
	for _, result := range results {
		if result.HasErrors() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf(errors.ErrMsgFilesWithErrorViolations, failed)
	}
	return nil
}

// ProcessPath processes a file or directory path
func (g *formatter) ProcessPath(path string) error {
	if format := g.getFormat(); format != FormatText && format != FormatJSON {
		return fmt.Errorf(errors.ErrMsgUnknownFormat, format)
	}

	isDir, err := utils.IsDirectory(path)
	if err != nil {
		return fmt.Errorf("%s: %w", errors.ErrMsgFailedToCheckPath, err)
	}

	if !isDir {
		g.config.FilePath = path
		return g.ProcessFile()
	}

	text := g.getFormat() == FormatText
	// When processing directories, in-place mode is recommended
	if !g.getInPlace() && !g.config.Diff && !g.config.Check && text {
		fmt.Fprintln(g.out(), errors.WarnMsgProcessingDirWithoutInPlace)
		fmt.Fprintln(g.out(), errors.InfoMsgUseInPlaceFlag)
		fmt.Fprintln(g.out())
	}

	sourceFiles, err := utils.FindSourceFiles(path)
	if err != nil {
		return fmt.Errorf("%s: %w", errors.ErrMsgFailedToFindSourceFiles, err)
	}

	if len(sourceFiles) == 0 {
		if text {
			fmt.Fprintf(g.out(), errors.InfoMsgNoSourceFilesFound+"\n", path)
		}
		return nil
	}

	if text {
		fmt.Fprintf(g.out(), errors.InfoMsgFoundSourceFiles+"\n", len(sourceFiles), path)
		fmt.Fprintln(g.out())
	}
	if root := utils.GetProjectRoot(path); root != "" {
		log.Infof(errors.InfoMsgProjectRoot, root)
	}

	return g.ProcessFiles(sourceFiles)
}
