package display

import (
	"fmt"
	"os"

	"github.com/backmassage/apngpress/internal/term"
)

// PrintBanner prints the ASCII art banner; magenta when colors are enabled.
func PrintBanner() {
	fmt.Fprint(os.Stdout, term.Magenta.Sprint(`  __ _ _ __  _ __   __ _ _ __  _ __ ___  ___ ___ 
 / _`+"`"+` | '_ \| '_ \ / _`+"`"+` | '_ \| '__/ _ \/ __/ __|
| (_| | |_) | | | | (_| | |_) | | |  __/\__ \__ \
 \__,_| .__/|_| |_|\__, | .__/|_|  \___||___/___/
      |_|          |___/|_|
`))
	fmt.Fprintln(os.Stdout)
}
