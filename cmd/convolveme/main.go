package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/esimov/convolveme"
	"github.com/esimov/convolveme/utils"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
	"golang.org/x/term"
)

var (
	// Flags
	source      = flag.String("in", "", "Source image")
	destination = flag.String("out", "", "Destination image")
	kernelNames = flag.String("kernel", "", "Kernel name, or a comma separated chain of kernels (built-in: "+strings.Join(convolveme.Kernels(), ", ")+")")
	confFile    = flag.String("conf", "", "Kernel definition file (.toml, .yaml)")
	width       = flag.Int("width", 0, "Displayed width (defaults to the image width)")
	height      = flag.Int("height", 0, "Displayed height (defaults to the image height)")
	toggle      = flag.Bool("toggle", false, "Toggle mode: show the original until the pointer enters")
	hover       = flag.Bool("hover", false, "In toggle mode, simulate the pointer entering the image")
	verbose     = flag.Bool("v", false, "Verbose output")
)

func main() {
	flag.Parse()

	if len(*source) == 0 || len(*destination) == 0 {
		log.Fatal("Usage: convolveme -in input.jpg -out out.png [-kernel sharpen]")
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	convolveme.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg := convolveme.DefaultConfig()
	if *confFile != "" {
		var err error
		if cfg, err = convolveme.LoadConfig(*confFile); err != nil {
			log.Fatalf("Unable to load kernel file: %v", err)
		}
	}
	opts, err := cfg.Options()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if *toggle {
		opts.Permanent = false
	}

	// The last kernel of a chain is bound, the previous ones pre-filter the source.
	var pre []*convolveme.Kernel
	if *kernelNames != "" {
		names := strings.Split(*kernelNames, ",")
		for i, name := range names {
			k, err := cfg.Resolve(strings.TrimSpace(name))
			if err != nil {
				log.Fatalf("Invalid kernel: %v", err)
			}
			if i == len(names)-1 {
				opts.Kernel = k
			} else {
				pre = append(pre, k)
			}
		}
	}

	src, err := imaging.Open(*source, imaging.AutoOrientation(true))
	if err != nil {
		log.Fatalf("Unable to open source file: %v", err)
	}

	var s *utils.Spinner
	if term.IsTerminal(int(os.Stderr.Fd())) {
		s = utils.NewSpinner(os.Stderr)
		s.Start("Convolving image...")
	}
	start := time.Now()
	out, sess, err := run(src, pre, opts)
	if s != nil {
		s.Stop()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%sError converting image %s: %v%s\n", utils.ErrorColor, *source, err, utils.DefaultColor)
		os.Exit(1)
	}

	if err := save(out, *destination); err != nil {
		log.Fatalf("Unable to save the output image: %v", err)
	}
	fmt.Printf("Convolved in: %s%s%s\n", utils.SuccessColor, utils.FormatTime(time.Since(start)), utils.DefaultColor)
	fmt.Printf("Showing the %s image, kernel:\n%s\n", sess.State(), sess.Kernel())
	fmt.Printf("Saved as: %s %s✓%s\n", path.Base(*destination), utils.SuccessColor, utils.DefaultColor)
}

// save writes the rendered canvas. PNG files are encoded by the drawing context itself.
func save(c *convolveme.Canvas, dst string) error {
	if strings.EqualFold(filepath.Ext(dst), ".png") {
		return c.SavePNG(dst)
	}
	return imaging.Save(c.Image(), dst)
}

// run binds the image and returns the canvas displayed in its place.
func run(src image.Image, pre []*convolveme.Kernel, opts convolveme.Options) (*convolveme.Canvas, *convolveme.Session, error) {
	if len(pre) > 0 {
		filtered, err := convolveme.KernelChain(pre...).Apply(src)
		if err != nil {
			return nil, nil, err
		}
		src = filtered
	}

	el := convolveme.NewImageElement(src, *width, *height)
	sess, err := convolveme.Bind(el, opts)
	if err != nil {
		return nil, nil, err
	}
	if !opts.Permanent && *hover {
		el.PointerEnter()
	}
	canvas, ok := el.Surface().(*convolveme.Canvas)
	if !ok {
		return nil, nil, fmt.Errorf("unexpected surface %T", el.Surface())
	}
	return canvas, sess, nil
}
