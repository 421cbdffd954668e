package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestOSC52Sequence(t *testing.T) {
	data := "hello"
	encoded := "aGVsbG8="

	t.Setenv("TMUX", "")
	t.Setenv("TERM", "xterm-256color")
	seq := osc52Sequence(data)
	if !strings.HasPrefix(seq, "\x1b]52;c;"+encoded) || !strings.HasSuffix(seq, "\x07") {
		t.Fatalf("unexpected OSC52 sequence for xterm: %q", seq)
	}

	t.Setenv("TMUX", "1")
	seq = osc52Sequence(data)
	wantTmux := "\x1bPtmux;\x1b]52;c;" + encoded + "\x07\x1b\\"
	if seq != wantTmux {
		t.Fatalf("unexpected OSC52 sequence for tmux: %q", seq)
	}

	t.Setenv("TMUX", "")
	t.Setenv("TERM", "screen")
	seq = osc52Sequence(data)
	wantScreen := "\x1bP\x1b]52;c;" + encoded + "\x07\x1b\\"
	if seq != wantScreen {
		t.Fatalf("unexpected OSC52 sequence for screen: %q", seq)
	}
}

func TestCopyToOSC52(t *testing.T) {
	t.Setenv("TMUX", "")
	t.Setenv("TERM", "xterm")

	var buf bytes.Buffer
	if err := copyToOSC52(&buf, "report"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != osc52Sequence("report") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
