package cli

import (
	"fmt"
	"io"

	"github.com/dmitrijs2005/gophjournal/internal/client/engine"
	"github.com/fatih/color"
)

func printOK(w io.Writer, format string, a ...any) {
	fmt.Fprintln(w, color.GreenString("✓")+" "+fmt.Sprintf(format, a...))
}

func printWarn(w io.Writer, format string, a ...any) {
	fmt.Fprintln(w, color.YellowString("!")+" "+fmt.Sprintf(format, a...))
}

func printHint(w io.Writer, format string, a ...any) {
	fmt.Fprintln(w, color.CyanString("→")+" "+fmt.Sprintf(format, a...))
}

// reportStatus explains a non-OK engine result on w.
func reportStatus(w io.Writer, st engine.Status) {
	switch st {
	case engine.StatusDegraded:
		printWarn(w, "encryption is unavailable in this environment")
	case engine.StatusFailed:
		printWarn(w, "cryptographic operation failed")
	case engine.StatusMalformed:
		printWarn(w, "input looks like an envelope but is malformed; shown unchanged")
	case engine.StatusUnsupported:
		printWarn(w, "legacy envelope cannot be decrypted; shown unchanged")
		printHint(w, "%s content was written by an older client and cannot be read or migrated by this one", color.YellowString("enc:"))
	}
}
