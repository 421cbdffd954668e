package main

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
)

func runClipboardCommand(name string, args []string, data string, stdout io.Writer) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(data)
	if stdout != nil {
		cmd.Stdout = stdout
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return fmt.Errorf("%s failed: %s", name, msg)
		}
		return fmt.Errorf("%s failed: %w", name, err)
	}
	return nil
}

// clipboardCommand returns the first clipboard utility available on this
// platform, or an empty name.
func clipboardCommand() (string, []string) {
	var candidates [][]string
	switch runtime.GOOS {
	case "darwin":
		candidates = [][]string{{"pbcopy"}}
	case "windows":
		candidates = [][]string{{"clip"}}
	default:
		candidates = [][]string{
			{"wl-copy"},
			{"xclip", "-selection", "clipboard"},
			{"xsel", "--clipboard", "--input"},
			{"clip.exe"},
		}
	}
	for _, c := range candidates {
		if path, err := exec.LookPath(c[0]); err == nil {
			return path, c[1:]
		}
	}
	return "", nil
}

// copyToClipboard pipes data into the platform clipboard utility and falls
// back to github.com/atotto/clipboard when none is installed.
func copyToClipboard(data string) error {
	if name, args := clipboardCommand(); name != "" {
		return runClipboardCommand(name, args, data, io.Discard)
	}
	if clipboard.Unsupported {
		return fmt.Errorf("no clipboard utility found (tried pbcopy, clip, wl-copy, xclip, xsel, clip.exe)")
	}
	if err := clipboard.WriteAll(data); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}

func osc52Sequence(data string) string {
	encoded := base64.StdEncoding.EncodeToString([]byte(data))
	seq := fmt.Sprintf("\x1b]52;c;%s\x07", encoded)
	if os.Getenv("TMUX") != "" {
		return "\x1bPtmux;" + seq + "\x1b\\"
	}
	if strings.HasPrefix(os.Getenv("TERM"), "screen") {
		return "\x1bP" + seq + "\x1b\\"
	}
	return seq
}

// copyToOSC52 asks the terminal behind w to set the clipboard.
func copyToOSC52(w io.Writer, data string) error {
	if _, err := io.WriteString(w, osc52Sequence(data)); err != nil {
		return fmt.Errorf("failed to write OSC 52 sequence: %w", err)
	}
	return nil
}
