package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/yyyoichi/kcolor"
	"github.com/yyyoichi/kcolor/internal/imgio"
	"github.com/yyyoichi/kcolor/internal/report"
	"github.com/yyyoichi/kcolor/kmeans"
	"go.uber.org/zap"
)

const usage = `kcolor [flags] <image input path> <No. colors> [output image path/directory]

Reduces the palette of an image to k colors with k-means clustering.
`

func main() {
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	configPath := flag.String("config", "", "YAML file with clustering options; flags override it")
	initName := flag.String("init", "RandomPoint", "initialization: RandomPoint, RandomCoordinate or KMeansPlusPlus")
	maxIter := flag.Int("max-iter", kmeans.DefaultMaxIterations, "maximum number of iterations")
	progressEvery := flag.Int("progress-every", 0, "write an intermediate image every N iterations (0 disables)")
	verbose := flag.Bool("v", false, "log every iteration")
	seed := flag.Uint64("seed", 0, "random seed (0 picks one)")
	workers := flag.Int("workers", 0, "goroutines used to assign pixels (0 uses all CPUs)")
	space := flag.String("space", "rgb", "color space to cluster in: rgb or yuv")
	flag.Parse()

	if flag.NArg() < 2 || flag.NArg() > 3 {
		flag.Usage()
		os.Exit(2)
	}
	input := flag.Arg(0)
	k, err := strconv.Atoi(flag.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid number of colors %q: %v\n", flag.Arg(1), err)
		os.Exit(2)
	}

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if set["init"] || *configPath == "" {
		if cfg.Initialization, err = kmeans.ParseMethod(*initName); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}
	if set["max-iter"] {
		cfg.MaxIterations = *maxIter
	}
	if set["progress-every"] {
		cfg.ProgressEvery = *progressEvery
	}
	if set["v"] {
		cfg.Verbose = *verbose
	}
	if set["workers"] {
		cfg.Workers = *workers
	}
	if set["seed"] && *seed != 0 {
		cfg.Seed = seed
	}

	log, err := report.NewLogger(cfg.Verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	var output string
	if flag.NArg() == 3 {
		output = flag.Arg(2)
	}
	if err := run(log, cfg, *space, input, output, k); err != nil {
		log.Error("failed", zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
}

func loadConfig(path string) (kmeans.Config, error) {
	if path == "" {
		return kmeans.Config{}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return kmeans.Config{}, err
	}
	defer f.Close()
	return kmeans.LoadConfig(f)
}

func run(log *zap.Logger, cfg kmeans.Config, space, input, output string, k int) error {
	outPath, err := imgio.OutputPath(output, input, k)
	if err != nil {
		return err
	}
	outPath = imgio.EnsureExt(outPath)
	if format := imgio.Format(outPath); !imgio.Supported(format) {
		return fmt.Errorf("%w: %q", imgio.ErrUnsupportedFormat, format)
	}
	log.Info("quantizing",
		zap.String("input", input),
		zap.Int("k", k),
		zap.String("output", outPath),
		zap.Stringer("initialization", cfg.Initialization),
	)

	src, _, err := imgio.Load(input)
	if err != nil {
		return err
	}

	opts := []kcolor.Option{
		kcolor.WithConfig(cfg),
		kcolor.WithObserver(report.Observer(log, func(iteration int, img image.Image) error {
			path := imgio.IntermediatePath(outPath, iteration)
			log.Debug("writing intermediate image", zap.String("path", path))
			return imgio.Save(path, img)
		})),
	}
	switch space {
	case "rgb":
	case "yuv":
		opts = append(opts, kcolor.WithColorSpace(kcolor.YUV))
	default:
		return fmt.Errorf("%w: unknown color space %q", kmeans.ErrInvalidConfiguration, space)
	}
	q, err := kcolor.New(opts...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	out, err := q.Quantize(ctx, src, k)
	if err != nil {
		return err
	}
	report.Summary(log, out.Result)
	if psnr, err := report.PSNR(src, out.Image); err == nil {
		log.Info("quality", zap.Float64("psnr_db", psnr))
	}

	img := out.Image
	if imgio.Format(outPath) == "gif" {
		if img, err = out.Paletted(); err != nil {
			return err
		}
	}
	if err := imgio.Save(outPath, img); err != nil {
		return err
	}
	log.Info("saved", zap.String("output", outPath))
	return nil
}
