package config

// Config carries the batch renderer's settings.
type Config struct {
	InputPath   string // template GIF; its sidecar document must exist
	OutputPath  string
	Texts       []string // one caption per layer, in layer order
	LoopForever bool

	// Alternative template sources. When set, the sequence is built from
	// the source pages instead of a GIF and the layer set starts fresh.
	PDFPath       string
	ImagesPath    string
	PDFDPI        int
	FrameDuration int // ms per frame for PDF and stills input

	// Optional QR watermark on the exported GIF.
	QRURL    string
	QRSize   int
	QRCorner string
	QRMargin int

	BuildVersion string
}
