package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ashapiro/memeframe/internal/config"
	"github.com/ashapiro/memeframe/internal/document"
	"github.com/ashapiro/memeframe/internal/gif"
	"github.com/ashapiro/memeframe/internal/overlay"
	"github.com/ashapiro/memeframe/internal/source"
	"github.com/ashapiro/memeframe/internal/system"
	"github.com/ashapiro/memeframe/internal/template"
)

// stringList collects repeated -text flags in order.
type stringList []string

func (l *stringList) String() string {
	return strings.Join(*l, ", ")
}

func (l *stringList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

// buildVersion is stamped via -ldflags at release time.
var buildVersion = "dev"

func main() {
	system.InitResourceLimits()

	for _, d := range []string{"input", "output"} {
		os.MkdirAll(d, 0755)
	}

	inputPtr := flag.String("input", "", "Path to a template GIF with a sidecar document (default: latest GIF in input/)")
	pdfPtr := flag.String("pdf", "", "Build the template sequence from the pages of this PDF instead of a GIF")
	imagesPtr := flag.String("images", "", "Build the template sequence from the images in this directory instead of a GIF")
	dpiPtr := flag.Int("dpi", 150, "Render DPI for -pdf pages")
	frameMsPtr := flag.Int("frame-ms", 800, "Frame duration in ms for -pdf and -images input")
	outputPtr := flag.String("output", "", "Path to the output GIF (default: generated in output/)")
	loopPtr := flag.Bool("loop", true, "Loop the output forever")
	qrURLPtr := flag.String("qr-url", "", "Stamp a QR code of this URL onto every frame")
	qrSizePtr := flag.Int("qr-size", 64, "QR stamp edge length in pixels")
	qrCornerPtr := flag.String("qr-corner", "bottom-right", "QR stamp corner: top-left, top-right, bottom-left, bottom-right")

	var texts stringList
	flag.Var(&texts, "text", "Caption for one layer, repeat per layer, in layer order")

	flag.Parse()

	inputPath := *inputPtr
	if inputPath == "" && *pdfPtr == "" && *imagesPtr == "" {
		latest, err := system.FindLatestGIF("input")
		if err != nil {
			log.Fatalf("[-] Error: %v. Put a template GIF in input/", err)
		}
		inputPath = latest
		fmt.Printf("[*] Using template: %s\n", inputPath)
	}

	outputPath := *outputPtr
	if outputPath == "" {
		srcPath := inputPath
		switch {
		case *pdfPtr != "":
			srcPath = *pdfPtr
		case *imagesPtr != "":
			srcPath = *imagesPtr
		}
		base := strings.TrimSuffix(filepath.Base(srcPath), filepath.Ext(srcPath))
		timestamp := time.Now().Format("2006-01-02_15-04-05")
		outputPath = filepath.Join("output", fmt.Sprintf("%s_%s.gif", base, timestamp))
	}

	cfg := &config.Config{
		InputPath:     inputPath,
		PDFPath:       *pdfPtr,
		ImagesPath:    *imagesPtr,
		PDFDPI:        *dpiPtr,
		FrameDuration: *frameMsPtr,
		OutputPath:    outputPath,
		Texts:         texts,
		LoopForever:   *loopPtr,
		QRURL:         *qrURLPtr,
		QRSize:        *qrSizePtr,
		QRCorner:      *qrCornerPtr,
		QRMargin:      8,
		BuildVersion:  buildVersion,
	}

	if err := run(cfg); err != nil {
		log.Fatalf("[-] Error: %v", err)
	}

	fmt.Printf("[+++] Done! Output: %s\n", cfg.OutputPath)
}

// loadInput resolves the template sequence and layer set. GIF input carries
// its layer set in the sidecar document; PDF and stills input builds the
// sequence from the source pages and starts a fresh layer set with one
// auto-named layer per -text flag.
func loadInput(cfg *config.Config) (*gif.Sequence, *template.MemeTemplate, error) {
	if cfg.PDFPath != "" && cfg.ImagesPath != "" {
		return nil, nil, fmt.Errorf("-pdf and -images are mutually exclusive")
	}

	var src source.Source
	var err error
	switch {
	case cfg.PDFPath != "":
		src, err = source.NewFitzPDFSource(cfg.PDFPath, cfg.PDFDPI, cfg.FrameDuration)
	case cfg.ImagesPath != "":
		src, err = source.NewImageSource(cfg.ImagesPath, cfg.FrameDuration)
	default:
		seq, meme, err := document.Load(cfg.InputPath)
		if err != nil {
			return nil, nil, err
		}
		if meme == nil {
			return nil, nil, fmt.Errorf("no sidecar document found for %s (expected %s)",
				cfg.InputPath, document.SidecarPath(cfg.InputPath))
		}
		return seq, meme, nil
	}
	if err != nil {
		return nil, nil, err
	}
	defer src.Close()

	if len(cfg.Texts) == 0 {
		return nil, nil, fmt.Errorf("at least one -text is required with -pdf or -images")
	}

	seq, err := source.BuildSequence(src, cfg.LoopForever)
	if err != nil {
		return nil, nil, err
	}

	meme := template.NewMemeTemplate()
	for range cfg.Texts {
		meme.AddNew()
	}
	return seq, meme, nil
}

func run(cfg *config.Config) error {
	seq, meme, err := loadInput(cfg)
	if err != nil {
		return err
	}

	layers := meme.List()
	if len(cfg.Texts) != len(layers) {
		return fmt.Errorf("template has %d layers but %d -text flags were given",
			len(layers), len(cfg.Texts))
	}

	content := make(map[string]string, len(layers))
	for i, layer := range layers {
		content[layer.ID] = cfg.Texts[i]
	}

	fmt.Printf("[*] memeframe %s | Frames: %d | Layers: %d\n",
		cfg.BuildVersion, seq.Len(), len(layers))

	if err := meme.Render(seq, content); err != nil {
		return err
	}

	if cfg.QRURL != "" {
		stamp := overlay.QRWatermark{
			URL:    cfg.QRURL,
			Size:   cfg.QRSize,
			Corner: overlay.Corner(cfg.QRCorner),
			Margin: cfg.QRMargin,
		}
		if err := stamp.Apply(seq); err != nil {
			return err
		}
	}

	seq.LoopForever = cfg.LoopForever
	return seq.Save(cfg.OutputPath)
}
