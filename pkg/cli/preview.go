package cli

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Terminal preview helper for Kitty and iTerm2 inline-image protocols. The
// rendered canvas is shown inline after a render when the terminal supports
// it; otherwise preview is silently unavailable.
//
// Debugging helper controlled by PREVIEW_DEBUG=1
var previewDebug bool

func init() {
	// .env is optional; ignore a missing file.
	_ = godotenv.Load()

	debug := os.Getenv("PREVIEW_DEBUG")
	if debug == "1" || debug == "true" {
		previewDebug = true
	}
}

func debugf(format string, args ...interface{}) {
	if previewDebug {
		fmt.Fprintf(os.Stderr, "timemark-preview: "+format+"\n", args...)
	}
}

func isKitty() bool {
	if os.Getenv("KITTY_WINDOW_ID") != "" {
		return true
	}
	term := strings.ToLower(os.Getenv("TERM"))
	return strings.Contains(term, "kitty") || strings.Contains(term, "ghostty")
}

func isITerm() bool {
	if os.Getenv("TERM_PROGRAM") == "iTerm.app" || os.Getenv("ITERM_SESSION_ID") != "" {
		return true
	}
	// WezTerm and friends speak the same OSC 1337 sequence.
	return os.Getenv("TERM_PROGRAM") == "WezTerm"
}

// PreviewImage renders img inline in the terminal when a supported protocol
// is detected. Returns an error when no protocol is available; callers may
// ignore it since preview is optional.
func PreviewImage(img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode preview png: %w", err)
	}
	data := buf.Bytes()

	switch {
	case isKitty():
		debugf("using kitty graphics protocol (%d bytes)", len(data))
		return previewKitty(data)
	case isITerm():
		debugf("using iTerm2 OSC 1337 (%d bytes)", len(data))
		return previewITerm(data)
	}
	debugf("no supported terminal detected (TERM=%s)", os.Getenv("TERM"))
	return fmt.Errorf("no terminal with inline image support detected")
}

// previewKitty sends the PNG using the kitty graphics protocol: chunked
// base64 inside ESC _G ... ESC \ with m=1 on all chunks but the last.
func previewKitty(data []byte) error {
	enc := base64.StdEncoding.EncodeToString(data)
	const chunkSize = 4096
	first := true
	for len(enc) > 0 {
		n := chunkSize
		if n > len(enc) {
			n = len(enc)
		}
		chunk := enc[:n]
		enc = enc[n:]
		more := 0
		if len(enc) > 0 {
			more = 1
		}
		if first {
			fmt.Printf("\x1b_Gf=100,a=T,m=%d;%s\x1b\\", more, chunk)
			first = false
		} else {
			fmt.Printf("\x1b_Gm=%d;%s\x1b\\", more, chunk)
		}
	}
	fmt.Println()
	return nil
}

// previewITerm sends the PNG as a single iTerm2 OSC 1337 inline file.
func previewITerm(data []byte) error {
	enc := base64.StdEncoding.EncodeToString(data)
	fmt.Printf("\x1b]1337;File=inline=1;size=%d:%s\a\n", len(data), enc)
	return nil
}
