package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/siyuan-infoblox/pretty-import/pkg/config"
	"github.com/siyuan-infoblox/pretty-import/pkg/formatter"
	"github.com/siyuan-infoblox/pretty-import/pkg/lsp"
	"github.com/siyuan-infoblox/pretty-import/pkg/version"
)

const (
	UseDescription   = "pim [flags] PATH"
	ShortDescription = "Pretty imports - A tool to group and sort JavaScript/TypeScript imports"
	LongDescription  = `pim is a command-line tool that groups and sorts JavaScript and TypeScript imports.

It organizes the leading import block of a file into groups, separated by
blank lines. Named imports come before default imports within each kind:
1. Builtin modules (node:, bun:, ...), then builtin namespace imports
2. External packages
3. Local pattern modules (configurable prefixes such as @/)
4. Relative and absolute paths
5. Namespace imports of non-builtin modules
6. Type-only imports: external, local pattern, relative, other
7. Style imports (.css, .scss, ...)

Side-effect imports stay where they are and split the block around them.

PATH can be either a single source file or a directory. When a directory is
specified, all .js .jsx .mjs .cjs .ts .tsx .mts .cts files in the directory and
subdirectories are processed recursively, skipping node_modules, vendor and
hidden directories.

Options are read from the nearest .pimrc.yaml, .pimrc.yml or pim.toml above
each file. Flags given on the command line take precedence.`
)

// options holds the parsed command line flags
type options struct {
	inPlace     bool
	diff        bool
	check       bool
	format      string
	configFile  string
	jobs        int
	verbose     int
	logFile     string
	showVersion bool

	preset            string
	localPatterns     []string
	builtinPrefixes   []string
	styleExtensions   []string
	groupStyleImports bool
	caseInsensitive   bool
	bareBuiltins      bool
	rules             map[string]string
}

// NewRootCmd builds the pim command tree
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:          UseDescription,
		Short:        ShortDescription,
		Long:         LongDescription,
		Args:         opts.validateArgs,
		RunE:         opts.run,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts.configureLogging()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "Config file to use instead of searching for .pimrc.yaml/pim.toml")
	flags.StringVar(&opts.preset, "preset", "", "Preset to start from ("+strings.Join(config.Presets(), ", ")+")")
	flags.StringSliceVar(&opts.localPatterns, "local-patterns", []string{}, "Comma-separated list of local module prefixes (e.g., @/,~/)")
	flags.StringSliceVar(&opts.builtinPrefixes, "builtin-prefixes", []string{}, "Comma-separated list of builtin module prefixes (e.g., node:,bun:)")
	flags.StringSliceVar(&opts.styleExtensions, "style-extensions", []string{}, "Comma-separated list of style file extensions (e.g., .css,.scss)")
	flags.BoolVar(&opts.groupStyleImports, "group-style-imports", true, "Move style imports into their own section at the end")
	flags.BoolVar(&opts.caseInsensitive, "case-insensitive", false, "Compare import names ignoring case")
	flags.BoolVar(&opts.bareBuiltins, "bare-builtins", false, "Treat bare Node.js core modules (fs, path, ...) as builtin")
	flags.StringToStringVar(&opts.rules, "rule", map[string]string{}, "Rule severities (e.g., sort-import-names=off,separate-type-imports=warn)")
	flags.CountVar(&opts.verbose, "verbose", "Increase log verbosity (repeat for more)")
	flags.StringVar(&opts.logFile, "log-file", "", "Write logs to this file instead of stderr")

	rootCmd.Flags().BoolVar(&opts.inPlace, "in-place", false, "Modify the file in place instead of printing to stdout")
	rootCmd.Flags().BoolVar(&opts.diff, "diff", false, "Print a unified diff of the changes instead of the fixed imports")
	rootCmd.Flags().BoolVar(&opts.check, "check", false, "Report violations and fail when an error severity rule is violated")
	rootCmd.Flags().StringVar(&opts.format, "format", formatter.FormatText, "Report format (text or json)")
	rootCmd.Flags().IntVar(&opts.jobs, "jobs", 0, "Number of files processed in parallel (default: number of CPUs)")
	rootCmd.Flags().BoolVarP(&opts.showVersion, "version", "v", false, "Show version information")

	rootCmd.AddCommand(newLspCmd(opts), newVersionCmd())
	return rootCmd
}

func newLspCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:          "lsp",
		Short:        "Run the language server on stdio",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides, err := opts.overrides(cmd)
			if err != nil {
				return err
			}
			return lsp.New(lsp.Options{
				ConfigFile: opts.configFile,
				Overrides:  overrides,
				Version:    version.Get().Short(),
			}).Run()
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print detailed version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Get().String())
		},
	}
}

func (o *options) validateArgs(cmd *cobra.Command, args []string) error {
	// If version flag is set, we don't need file arguments
	if o.showVersion {
		return nil
	}
	return cobra.ExactArgs(1)(cmd, args)
}

func (o *options) configureLogging() {
	var path *string
	if o.logFile != "" {
		path = &o.logFile
	}
	commonlog.Configure(o.verbose, path)
}

// overrides collects the options set explicitly on the command line, so that
// flag defaults never mask values from config files
func (o *options) overrides(cmd *cobra.Command) (config.Overrides, error) {
	var ov config.Overrides
	flags := cmd.Flags()

	if flags.Changed("preset") {
		ov.Preset = o.preset
	}
	if flags.Changed("local-patterns") {
		ov.LocalPatterns = o.localPatterns
	}
	if flags.Changed("builtin-prefixes") {
		ov.BuiltinModulePrefixes = o.builtinPrefixes
	}
	if flags.Changed("style-extensions") {
		ov.StyleExtensions = o.styleExtensions
	}
	if flags.Changed("group-style-imports") {
		ov.GroupStyleImports = &o.groupStyleImports
	}
	if flags.Changed("case-insensitive") {
		ov.CaseInsensitive = &o.caseInsensitive
	}
	if flags.Changed("bare-builtins") {
		ov.BareBuiltins = &o.bareBuiltins
	}
	if flags.Changed("rule") {
		ov.Rules = make(map[string]config.Severity, len(o.rules))
		for rule, severity := range o.rules {
			ov.Rules[rule] = config.Severity(severity)
		}
	}

	// surface invalid values before any file is touched
	if _, err := config.Resolve(ov); err != nil {
		return config.Overrides{}, err
	}
	return ov, nil
}

func (o *options) run(cmd *cobra.Command, args []string) error {
	// Handle version flag
	if o.showVersion {
		fmt.Fprintf(cmd.OutOrStdout(), "Pretty Imports (PIM) version %s\n", version.Get().Short())
		return nil
	}

	overrides, err := o.overrides(cmd)
	if err != nil {
		return err
	}

	path := args[0]

	g := formatter.New(formatter.FormatterConfig{
		FilePath:   path, // This will be updated for each file when processing directories
		ConfigFile: o.configFile,
		Overrides:  overrides,
		InPlace:    o.inPlace,
		Diff:       o.diff,
		Check:      o.check,
		Format:     o.format,
		Jobs:       o.jobs,
		Out:        cmd.OutOrStdout(),
	})
	return g.ProcessPath(path)
}

// Execute runs the root command. v is the module version from the build
// info, used unless a version was set at build time.
func Execute(v string) error {
	if version.Version == "dev" && v != "" && v != "(devel)" {
		version.Version = v
	}
	return NewRootCmd().Execute()
}
