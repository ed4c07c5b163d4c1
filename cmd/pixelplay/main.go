/*
pixelplay is an interactive shell for pixelscript: type a program,
inspect its parsed AST, and render it to a pixel buffer previewed as a
terminal swatch or dumped to a PNG file. It plays the role go-mix's
repl.Repl + main/main.go combination does — a colored, readline-backed
REPL — generalized from "evaluate a statement and print its result" to
"hold a shader program and preview what it renders".
*/
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	fatih "github.com/fatih/color"

	"github.com/pixelscript/pixelscript/parser"
	"github.com/pixelscript/pixelscript/render"
)

var (
	blueColor   = fatih.New(fatih.FgBlue)
	yellowColor = fatih.New(fatih.FgYellow)
	redColor    = fatih.New(fatih.FgRed)
	greenColor  = fatih.New(fatih.FgGreen)
	cyanColor   = fatih.New(fatih.FgCyan)
)

const banner = `
  ____  _          _  _____           _       _
 |  _ \(_)_  _____| |/ ____|         (_)     | |
 | |_) | \ \/ / _ \ | (___   ___ _ __ _ _ __ | |_
 |  __/| |>  <  __/ |\___ \ / __| '__| | '_ \| __|
 | |   | /  \ \___|_|____) | (__| |  | | |_) | |_
 |_|   |_/_/\_\            \___/|_|  |_| .__/ \__|
                                        | |
                                        |_|
`

const line = "--------------------------------------------------------------"

// Shell holds the interactive session's state: the renderer, plus the
// last source line that parsed successfully so .dump and .format have
// something to show without re-reading it.
type Shell struct {
	renderer *render.Renderer
	lastSrc  string
}

func newShell() *Shell {
	return &Shell{renderer: render.New()}
}

func printBanner(w io.Writer) {
	blueColor.Fprintf(w, "%s\n", line)
	greenColor.Fprintf(w, "%s\n", banner)
	blueColor.Fprintf(w, "%s\n", line)
	yellowColor.Fprintln(w, "pixelplay — interactive pixelscript shell")
	blueColor.Fprintf(w, "%s\n", line)
	cyanColor.Fprintln(w, "Enter a program on one line, or use a dot command:")
	cyanColor.Fprintln(w, "  .dump                  print the AST of the last program")
	cyanColor.Fprintln(w, "  .format                print the canonical re-formatting")
	cyanColor.Fprintln(w, "  .render W H T R        render to a WxH swatch (time T, random R)")
	cyanColor.Fprintln(w, "  .png W H T R FILE      render to a WxH PNG file")
	cyanColor.Fprintln(w, "  .exit                  quit")
	blueColor.Fprintf(w, "%s\n", line)
}

func main() {
	sh := newShell()
	printBanner(os.Stdout)

	rl, err := readline.New("pixel> ")
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	for {
		l, err := rl.Readline()
		if err != nil {
			fmt.Fprintln(os.Stdout, "Good Bye!")
			break
		}
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		if l == ".exit" {
			fmt.Fprintln(os.Stdout, "Good Bye!")
			break
		}
		rl.SaveHistory(l)
		sh.dispatch(os.Stdout, l)
	}
}

func (sh *Shell) dispatch(w io.Writer, line string) {
	switch {
	case line == ".dump":
		sh.cmdDump(w)
	case line == ".format":
		sh.cmdFormat(w)
	case strings.HasPrefix(line, ".render"):
		sh.cmdRender(w, line)
	case strings.HasPrefix(line, ".png"):
		sh.cmdPNG(w, line)
	default:
		sh.cmdParse(w, line)
	}
}

func (sh *Shell) cmdParse(w io.Writer, src string) {
	if err := sh.renderer.Parse(src); err != nil {
		redColor.Fprintf(w, "[%s] %s\n", err.Type, err.Message)
		return
	}
	sh.lastSrc = src
	greenColor.Fprintln(w, "parsed ok")
}

func (sh *Shell) cmdDump(w io.Writer) {
	if sh.lastSrc == "" {
		redColor.Fprintln(w, "no program parsed yet")
		return
	}
	prog, err := parser.Parse(sh.lastSrc)
	if err != nil {
		redColor.Fprintf(w, "[%s] %s\n", err.Type, err.Message)
		return
	}
	yellowColor.Fprint(w, parser.Dump(prog))
}

func (sh *Shell) cmdFormat(w io.Writer) {
	if sh.lastSrc == "" {
		redColor.Fprintln(w, "no program parsed yet")
		return
	}
	prog, err := parser.Parse(sh.lastSrc)
	if err != nil {
		redColor.Fprintf(w, "[%s] %s\n", err.Type, err.Message)
		return
	}
	yellowColor.Fprint(w, parser.Format(prog))
}

func parseRenderArgs(line string) (width, height int, time, random float64, rest []string, err error) {
	fields := strings.Fields(line)[1:]
	if len(fields) < 4 {
		return 0, 0, 0, 0, nil, fmt.Errorf("usage: .render W H TIME RANDOM")
	}
	width, err = strconv.Atoi(fields[0])
	if err != nil {
		return
	}
	height, err = strconv.Atoi(fields[1])
	if err != nil {
		return
	}
	time, err = strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return
	}
	random, err = strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return
	}
	return width, height, time, random, fields[4:], nil
}

func (sh *Shell) cmdRender(w io.Writer, line string) {
	if !sh.renderer.Ready() {
		redColor.Fprintln(w, "no program parsed yet")
		return
	}
	width, height, t, r, _, err := parseRenderArgs(line)
	if err != nil {
		redColor.Fprintln(w, err.Error())
		return
	}
	buf := make([]byte, 4*width*height)
	if rerr := sh.renderer.Execute(buf, width, height, t, r); rerr != nil {
		redColor.Fprintf(w, "[%s] %s\n", rerr.Type, rerr.Message)
		return
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			off := 4 * (y*width + x)
			swatch := fatih.RGB(int(buf[off]), int(buf[off+1]), int(buf[off+2]))
			swatch.Fprint(w, "██")
		}
		fmt.Fprintln(w)
	}
}

func (sh *Shell) cmdPNG(w io.Writer, line string) {
	if !sh.renderer.Ready() {
		redColor.Fprintln(w, "no program parsed yet")
		return
	}
	width, height, t, r, rest, err := parseRenderArgs(line)
	if err != nil || len(rest) == 0 {
		redColor.Fprintln(w, "usage: .png W H TIME RANDOM FILE")
		return
	}
	buf := make([]byte, 4*width*height)
	if rerr := sh.renderer.Execute(buf, width, height, t, r); rerr != nil {
		redColor.Fprintf(w, "[%s] %s\n", rerr.Type, rerr.Message)
		return
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			off := 4 * (y*width + x)
			img.Set(x, y, color.RGBA{R: buf[off], G: buf[off+1], B: buf[off+2], A: buf[off+3]})
		}
	}

	f, err := os.Create(rest[0])
	if err != nil {
		redColor.Fprintln(w, err.Error())
		return
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		redColor.Fprintln(w, err.Error())
		return
	}
	greenColor.Fprintf(w, "wrote %s\n", rest[0])
}
