package display

import (
	"fmt"
	"os"

	"github.com/backmassage/pdfaconvert/internal/term"
)

const banner = ` ____  ____  _____ __    _
|  _ \|  _ \|  ___/ /   / \
| |_) | | | | |_ / /   / _ \
|  __/| |_| |  _/ /   / ___ \
|_|   |____/|_|/_/   /_/   \_\
`

// PrintBanner prints the ASCII art banner; magenta if colors are enabled.
func PrintBanner() {
	fmt.Fprint(os.Stdout, term.Magenta.Sprint(banner))
}
