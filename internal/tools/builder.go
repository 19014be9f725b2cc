package tools

import "path/filepath"

// Tool names, as reported in results and logs.
const (
	NameUnoconv         = "unoconv"
	NameCalibre         = "calibre"
	NamePdfaPilot       = "pdfaPilot"
	NamePdfaPilotRemote = "pdfaPilot-remote"
)

// Per-tool log files, rewritten in the output directory on every run.
const (
	LogUnoconv         = "unoconv-output.txt"
	LogCalibre         = "calibre-output.txt"
	LogPdfaPilot       = "pdfapilot-output.txt"
	LogPdfaPilotRemote = "pdfapilot-remote-output.txt"
)

// NewUnoconv returns the LibreOffice adapter. home is the directory holding
// the unoconv executable.
func NewUnoconv(env Env, home string) Converter {
	exe := filepath.Join(home, "unoconv")
	return &tool{
		name:    NameUnoconv,
		logFile: LogUnoconv,
		diag:    unoconvDiagnostics,
		env:     env,
		build: func(in, out string) []string {
			// SelectPdfVersion=1 is LibreOffice's PDF/A-1 export filter option.
			return []string{exe, "-vv", "-f", "pdf", "-eSelectPdfVersion=1", "-o", out, in}
		},
	}
}

// NewCalibre returns the EPUB adapter built on calibre's ebook-convert.
func NewCalibre(env Env, home string) Converter {
	exe := filepath.Join(home, "ebook-convert")
	return &tool{
		name:    NameCalibre,
		logFile: LogCalibre,
		diag:    calibreDiagnostics,
		env:     env,
		build: func(in, out string) []string {
			// ebook-convert takes input first; the output extension picks the format.
			return []string{exe, in, out, "-v"}
		},
	}
}

// NewPdfaPilot returns the adapter for a local pdfaPilot installation.
func NewPdfaPilot(env Env, home, level string) Converter {
	exe := filepath.Join(home, "pdfaPilot")
	return &tool{
		name:    NamePdfaPilot,
		logFile: LogPdfaPilot,
		diag:    pdfaPilotDiagnostics,
		env:     env,
		build: func(in, out string) []string {
			return []string{exe, "--level=" + level, "--outputfile=" + out, in}
		},
	}
}

// NewPdfaPilotRemote returns the adapter that hands work to a pdfaPilot
// dispatcher with --dist. An empty endpoint leaves the choice of server
// to pdfaPilot's own configuration.
func NewPdfaPilotRemote(env Env, home, endpoint, level string) Converter {
	exe := filepath.Join(home, "pdfaPilot")
	return &tool{
		name:    NamePdfaPilotRemote,
		logFile: LogPdfaPilotRemote,
		diag:    pdfaPilotDiagnostics,
		env:     env,
		build: func(in, out string) []string {
			args := []string{exe, "--dist"}
			if endpoint != "" {
				args = append(args, "--endpoint="+endpoint)
			}
			return append(args, "--level="+level, "--outputfile="+out, in)
		},
	}
}
