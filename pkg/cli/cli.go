// Package cli is the interactive terminal front-end of the editor: open a
// photo, set the overlay fields, paint out old text, render and export,
// all on-device.
package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Fepozopo/timemark/pkg/overlay"
	"github.com/Fepozopo/timemark/pkg/session"
)

const (
	defaultBrush = 55
	minBrush     = 10
	maxBrush     = 140
)

func usage() {
	fmt.Println("Commands available:")
	fmt.Println("  o  - open an image")
	fmt.Println("  t  - set time (HH:MM)")
	fmt.Println("  d  - set date (YYYY-MM-DD)")
	fmt.Println("  w  - set weekday")
	fmt.Println("  b  - set brush size")
	fmt.Println("  p  - paint an erase stroke: p <x> <y>")
	fmt.Println("  m  - clear all strokes")
	fmt.Println("  r  - render overlay")
	fmt.Println("  s  - save PNG")
	fmt.Println("  x  - reset to original image")
	fmt.Println("  u  - check for updates")
	fmt.Println("  h  - show this help message")
	fmt.Println("  q  - quit")
}

// Run drives the interactive editing loop. An optional image path may be
// passed as the first CLI argument.
func Run(version string) {
	fonts, err := overlay.NewFontManager()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load fonts: %v\n", err)
		os.Exit(1)
	}
	sess := session.New(fonts)
	sess.Fields.DateISO = time.Now().Format("2006-01-02")
	brush := float64(defaultBrush)

	if len(os.Args) >= 2 && os.Args[1] != "" {
		openImage(sess, os.Args[1])
	}

	fmt.Println("TimeMark Editor", version)
	usage()

	for {
		line, err := PromptLine("> ")
		if err != nil {
			return
		}
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "o":
			path := strings.TrimSpace(strings.TrimPrefix(line, "o"))
			if path == "" {
				path, err = PromptLine("image path: ")
				if err != nil {
					return
				}
			}
			openImage(sess, path)

		case "t":
			sess.Fields.Time = argOrPrompt(args, line, "t", "time (HH:MM): ")

		case "d":
			sess.Fields.DateISO = argOrPrompt(args, line, "d", "date (YYYY-MM-DD): ")

		case "w":
			for i, d := range overlay.Weekdays {
				fmt.Printf("  %d) %s\n", i+1, d)
			}
			choice := argOrPrompt(args, line, "w", "weekday [1-7]: ")
			if n, err := strconv.Atoi(choice); err == nil && n >= 1 && n <= len(overlay.Weekdays) {
				sess.Fields.Weekday = overlay.Weekdays[n-1]
			} else {
				fmt.Println("invalid weekday")
			}

		case "b":
			val := argOrPrompt(args, line, "b", fmt.Sprintf("brush size [%d-%d]: ", minBrush, maxBrush))
			if n, err := strconv.Atoi(val); err == nil && n >= minBrush && n <= maxBrush {
				brush = float64(n)
				fmt.Printf("brush size: %d\n", n)
			} else {
				fmt.Println("invalid brush size")
			}

		case "p":
			if len(args) != 3 {
				fmt.Println("usage: p <x> <y>")
				continue
			}
			x, errX := strconv.ParseFloat(args[1], 64)
			y, errY := strconv.ParseFloat(args[2], 64)
			if errX != nil || errY != nil {
				fmt.Println("usage: p <x> <y>")
				continue
			}
			report(sess.PaintStroke(x, y, brush), "stroke painted")

		case "m":
			report(sess.ClearMask(), "strokes cleared")

		case "r":
			if err := sess.Render(); err != nil {
				reportErr(err)
				continue
			}
			b := sess.Canvas().Bounds()
			fmt.Printf("overlay rendered (%dx%d)\n", b.Dx(), b.Dy())
			// Preview is best effort; not every terminal supports it.
			_ = PreviewImage(sess.Canvas())

		case "s":
			path := strings.TrimSpace(strings.TrimPrefix(line, "s"))
			if path == "" {
				path = session.ExportFilename
			}
			if err := saveSession(sess, path); err != nil {
				reportErr(err)
				continue
			}
			fmt.Printf("saved %s\n", path)

		case "x":
			report(sess.Reset(), "reset to original image")

		case "u":
			if err := CheckForUpdates(version); err != nil {
				fmt.Fprintf(os.Stderr, "update check failed: %v\n", err)
			}

		case "h":
			usage()

		case "q":
			return

		default:
			fmt.Println("unknown command; h for help")
		}
	}
}

func openImage(sess *session.Session, path string) {
	img, err := LoadImage(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read image %s: %v\n", path, err)
		return
	}
	if err := sess.ImportImage(img); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load image %s: %v\n", path, err)
		return
	}
	b := sess.Canvas().Bounds()
	fmt.Printf("image loaded: %dx%d\n", b.Dx(), b.Dy())
}

func saveSession(sess *session.Session, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return sess.ExportPNG(f)
}

// argOrPrompt returns the rest of the command line after the verb, prompting
// when the verb was given alone.
func argOrPrompt(args []string, line, verb, prompt string) string {
	if len(args) > 1 {
		return strings.TrimSpace(strings.TrimPrefix(line, verb))
	}
	v, err := PromptLine(prompt)
	if err != nil {
		return ""
	}
	return v
}

func report(err error, ok string) {
	if err != nil {
		reportErr(err)
		return
	}
	fmt.Println(ok)
}

func reportErr(err error) {
	if errors.Is(err, session.ErrNoImage) {
		fmt.Println("Bạn chưa chọn ảnh.")
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
}
