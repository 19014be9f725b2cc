package tools

import (
	"bufio"
	"bytes"
	"regexp"
	"strings"
)

// maxDiagnostics caps how many matched lines are kept per conversion.
const maxDiagnostics = 10

// diagnostics is a tool's set of patterns for problem lines in its
// console output. Any match is reported; none of them decide success.
type diagnostics []*regexp.Regexp

var (
	unoconvDiagnostics = diagnostics{
		regexp.MustCompile(`(?i)^Error:`),
		regexp.MustCompile(`(?i)unable to connect|failed to connect`),
		regexp.MustCompile(`(?i)\bexception\b`),
		regexp.MustCompile(`(?i)no such file`),
	}

	calibreDiagnostics = diagnostics{
		regexp.MustCompile(`^Traceback \(most recent call last\)`),
		regexp.MustCompile(`(?i)conversion error`),
		regexp.MustCompile(`^\w*Error: `),
	}

	pdfaPilotDiagnostics = diagnostics{
		regexp.MustCompile(`^(Error|Fail)\t`),
		regexp.MustCompile(`(?i)license|not activated`),
		regexp.MustCompile(`(?i)cannot connect|dispatcher`),
	}
)

// scan returns the trimmed output lines that match any pattern, in order.
func (d diagnostics) scan(out []byte) []string {
	var hits []string
	sc := bufio.NewScanner(bytes.NewReader(out))
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		for _, re := range d {
			if re.MatchString(line) {
				hits = append(hits, strings.TrimSpace(line))
				break
			}
		}
		if len(hits) == maxDiagnostics {
			break
		}
	}
	return hits
}
