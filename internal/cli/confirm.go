package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/crypdick/obsidian-tools/internal/ui"
)

// yesFlag skips the confirmation prompt (for scripts and non-TTY runs).
var yesFlag bool

func shouldPromptForConfirm() bool {
	if isJSONOutput() {
		return false
	}
	return ui.IsInteractive()
}

func promptForConfirm(message string) bool {
	if message == "" {
		message = "Apply changes?"
	}
	fmt.Printf("%s %s ", message, ui.Hint("[y/N]"))
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// confirmApply gates an apply run. --yes always confirms; otherwise a TTY
// prompt is required, and non-interactive runs must pass --yes explicitly.
func confirmApply(message string) (bool, error) {
	if yesFlag {
		return true, nil
	}
	if !shouldPromptForConfirm() {
		return false, fmt.Errorf("refusing to apply without confirmation; pass --yes to apply non-interactively")
	}
	return promptForConfirm(message), nil
}
