package main

import (
	"github.com/spf13/cobra"

	"github.com/backmassage/pdfaconvert/internal/config"
)

// cliOptions holds the flags that are not stored directly in config.Config.
type cliOptions struct {
	showVersion bool
	color       bool
	noColor     bool
}

// newRootCmd builds the command and binds its flags to cfg and opts.
// The command body is empty: parsing is all cobra does here, run() drives
// the phases after Execute returns.
func newRootCmd(cfg *config.Config, opts *cliOptions, parsed *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pdfaconvert -i <file|directory> [-o <subdir>]",
		Short: "Convert documents to PDF/A with external converters",
		Long: `pdfaconvert converts word-processing documents (doc, docm, docx, odt, rtf,
wp, wpd) with unoconv, EPUB books with calibre and PDF files with pdfaPilot
into PDF/A. Generated files are written to the output directory configured in
the properties file named by $` + config.EnvPropertiesFile + ` (bundled defaults otherwise).

A directory input converts its immediate files; sub-directories are skipped.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			*parsed = true
			return nil
		},
	}

	f := cmd.Flags()
	f.SortFlags = false
	f.StringVarP(&cfg.Input, "input", "i", "", "file or directory to convert (required)")
	f.StringVarP(&cfg.SubDir, "output", "o", "", "sub-directory of the output directory for this run")
	f.BoolVarP(&opts.showVersion, "version", "v", false, "print the version and exit")
	f.BoolVarP(&cfg.CheckOnly, "check", "c", false, "check the converter installations and exit")
	f.BoolVarP(&cfg.DeleteConverted, "delete", "d", false, "delete each generated PDF after it has been inspected")
	f.StringVarP(&cfg.ReportFile, "report", "r", "", "write a YAML run report to this file")
	f.StringVarP(&cfg.LogFile, "log", "l", "", "also append log lines to this file")
	f.BoolVar(&cfg.Verbose, "verbose", false, "debug logging and live converter output")
	f.BoolVar(&opts.color, "color", false, "force colored output")
	f.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	cmd.MarkFlagsMutuallyExclusive("color", "no-color")

	return cmd
}

// colorMode maps the color flags onto a config mode.
func (o *cliOptions) colorMode() config.ColorMode {
	switch {
	case o.color:
		return config.ColorAlways
	case o.noColor:
		return config.ColorNever
	default:
		return config.ColorAuto
	}
}
