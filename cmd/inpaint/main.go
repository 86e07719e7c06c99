package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/esimov/inpaint"
	"github.com/esimov/inpaint/utils"
)

const helpBanner = `
┌─┐┌┐┌┌─┐┌─┐┬┌┐┌┌┬┐
│─┼┘│││├─┘├─┤││││ │
└─┘└─┘┴ ┴ ┴ ┴┴┘└┘ ┴

Exemplar-based image inpainting.
    Version: %s

`

// pipeName is the default value of -in and -out. Execute does not read
// stdin or write stdout, so "-" is looked up as an ordinary path.
const pipeName = "-"

var (
	source       = flag.String("in", pipeName, "Source image")
	destination  = flag.String("out", pipeName, "Destination image")
	maskPath     = flag.String("mask", "", "Hole mask file path (required)")
	radius       = flag.Int("radius", 5, "Patch radius")
	k            = flag.Int("k", 200, "Number of KNN candidates per target")
	refinerFlag  = flag.String("refiner", "identity", "Refiner: identity, energy, reuse")
	reuseFrac    = flag.Float64("reuse-frac", 0.5, "Max fraction of hole pixels a single source may cover (reuse refiner only)")
	useSAD       = flag.Bool("sad", false, "Use sum-of-absolute-differences instead of sum-of-squared-differences")
	blurVariance = flag.Float64("blur", 2, "Auxiliary comparison layer blur strength")
	debugOut     = flag.String("debug-out", "", "Write per-iteration debug PNG frames to this path")
	debugThumb   = flag.Int("debug-thumb-width", 0, "Downsample debug frames to this width in pixels (0 disables downsampling)")
	envPath      = flag.String("env", ".env", "Path to a .env file with INPAINT_* default overrides")
	workers      = flag.Int("conc", runtime.NumCPU(), "Number of files to process concurrently in directory mode")
	checkUpdate  = flag.Bool("check-update", false, "Check GitHub for a newer release and exit")
	updateRepo   = flag.String("update-repo", "esimov/inpaint", "owner/repo to check for updates against")
)

func main() {
	log.SetFlags(0)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, helpBanner, inpaint.Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *checkUpdate {
		runUpdateCheck()
		return
	}

	if err := inpaint.LoadEnvDefaults(*envPath); err != nil {
		log.Fatal(utils.DecorateText(fmt.Sprintf("failed to load %s: %v", *envPath, err), utils.ErrorMessage))
	}

	var refinerKind inpaint.RefinerKind
	switch *refinerFlag {
	case "identity":
		refinerKind = inpaint.RefinerIdentity
	case "energy":
		refinerKind = inpaint.RefinerIntroducedEnergy
	case "reuse":
		refinerKind = inpaint.RefinerReuseLimited
	default:
		flag.Usage()
		log.Fatal(utils.DecorateText(fmt.Sprintf("unknown refiner: %s", *refinerFlag), utils.ErrorMessage))
	}

	proc := &inpaint.Processor{
		PatchRadius:   *radius,
		K:             *k,
		Workers:       *workers,
		RefinerKind:   refinerKind,
		ReuseFraction: *reuseFrac,
		UseSAD:        *useSAD,
		BlurVariance:  *blurVariance,
		MaskPath:      *maskPath,
	}
	inpaint.ApplyEnvDefaults(proc)

	if proc.MaskPath == "" {
		flag.Usage()
		log.Fatal(utils.DecorateText("\nPlease provide a -mask file marking the hole region!", utils.ErrorMessage))
	}

	if *debugOut != "" {
		f, err := os.Create(*debugOut)
		if err != nil {
			log.Fatal(utils.DecorateText(fmt.Sprintf("cannot create debug output: %v", err), utils.ErrorMessage))
		}
		defer f.Close()
		proc.DebugSink = f
		proc.DebugThumbnailWidth = *debugThumb
	}

	ctx, cancel := context.WithCancel(context.Background())
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		cancel()
	}()

	job := &inpaint.Job{Src: *source, Dst: *destination, Workers: *workers}
	if err := proc.Execute(ctx, job); err != nil {
		log.Fatal(utils.DecorateText(fmt.Sprintf("\n%v", err), utils.ErrorMessage))
	}
}

func runUpdateCheck() {
	info, err := inpaint.CheckForUpdate(*updateRepo)
	if err != nil {
		log.Fatal(utils.DecorateText(fmt.Sprintf("update check failed: %v", err), utils.ErrorMessage))
	}
	if info == nil {
		fmt.Printf("You are already running the latest version: %s\n", inpaint.Version)
		return
	}
	if err := inpaint.ApplyUpdate(info, os.Stdin); err != nil {
		log.Fatal(utils.DecorateText(fmt.Sprintf("update failed: %v", err), utils.ErrorMessage))
	}
}
