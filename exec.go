package inpaint

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"sync"
	"syscall"
	"time"

	"github.com/esimov/inpaint/utils"
	"golang.org/x/term"
)

// Job describes one inpainting invocation's source/destination paths,
// mirroring caire's exec.go Image struct.
type Job struct {
	Src, Dst string
	Workers  int
}

// result holds the outcome of processing a single file, used to fan batch
// results back through a channel.
type result struct {
	path string
	err  error
}

// Execute runs p against job. If job.Src names a directory, every
// supported image file under it is processed concurrently (bounded by
// job.Workers, default runtime.NumCPU()); otherwise job.Src is treated as a
// single file or URL. Mirrors caire's Processor.Execute batch-mode
// structure.
func (p *Processor) Execute(ctx context.Context, job *Job) error {
	var validExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".gif"}

	fs, err := os.Stat(job.Src)
	if err != nil && !utils.IsValidUrl(job.Src) {
		return fmt.Errorf("failed to stat source: %w", err)
	}

	spinner := p.Spinner
	if spinner == nil {
		// A redirected stderr (e.g. a log file, a CI runner) can't render an
		// animated spinner's carriage-return overwrites or hide its cursor;
		// detect the non-interactive case and fall back to a static one.
		interactive := term.IsTerminal(int(os.Stderr.Fd()))
		spinner = utils.NewSpinner(fmt.Sprintf("%s %s",
			utils.DecorateText("⚡ INPAINT", utils.StatusMessage),
			utils.DecorateText("⇢ filling the hole region (be patient, it may take a while)...", utils.DefaultMessage),
		), time.Millisecond*80, interactive)
		p.Spinner = spinner
	}

	now := time.Now()

	switch {
	case fs != nil && fs.IsDir():
		if _, err := os.Stat(job.Dst); err != nil {
			if err := os.Mkdir(job.Dst, 0755); err != nil {
				return fmt.Errorf("unable to create destination dir: %w", err)
			}
		}

		workers := job.Workers
		if workers <= 0 || workers > runtime.NumCPU() {
			workers = runtime.NumCPU()
		}

		ch := make(chan result)
		done := make(chan struct{})
		defer close(done)

		paths, errc := walkDir(done, job.Src, validExtensions)

		var wg sync.WaitGroup
		wg.Add(workers)
		for i := 0; i < workers; i++ {
			go func() {
				defer wg.Done()
				consumer(ctx, p, job.Dst, ch, done, paths)
			}()
		}
		go func() {
			defer close(ch)
			wg.Wait()
		}()

		var lastErr error
		for res := range ch {
			if res.err != nil {
				lastErr = res.err
			}
			printOpStatus(res.path, res.err)
		}
		if werr := <-errc; werr != nil {
			lastErr = werr
		}
		if lastErr != nil {
			return lastErr
		}

	default:
		ext := filepath.Ext(job.Dst)
		if !utils.Contains(validExtensions, ext) {
			return fmt.Errorf("%s file type not supported", ext)
		}
		err := processOne(ctx, p, job.Src, job.Dst)
		printOpStatus(job.Dst, err)
		if err != nil {
			return err
		}
	}

	fmt.Fprintf(os.Stderr, "\nExecution time: %s\n",
		utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
	return nil
}

func consumer(ctx context.Context, p *Processor, dest string, res chan<- result, done <-chan struct{}, paths <-chan string) {
	for src := range paths {
		dst := filepath.Join(dest, filepath.Base(src))
		err := processOne(ctx, p, src, dst)
		select {
		case <-done:
			return
		case res <- result{path: src, err: err}:
		}
	}
}

func processOne(ctx context.Context, p *Processor, in, out string) error {
	var src *os.File
	var err error

	if utils.IsValidUrl(in) {
		src, err = utils.DownloadImage(in)
		if err != nil {
			return fmt.Errorf("failed to download source image: %w", err)
		}
		defer os.Remove(src.Name())
	} else {
		src, err = os.Open(in)
		if err != nil {
			return fmt.Errorf("unable to open source file: %w", err)
		}
	}
	defer src.Close()

	dst, err := os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0755)
	if err != nil {
		return fmt.Errorf("unable to create destination file: %w", err)
	}
	defer dst.Close()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	cancelCtx, cancel := context.WithCancel(ctx)
	defer signal.Stop(signalChan)
	go func() {
		select {
		case <-signalChan:
			cancel()
		case <-cancelCtx.Done():
		}
	}()

	p.Spinner.Start()
	err = p.Process(cancelCtx, src, dst)
	if err != nil && !errors.Is(err, ErrCancelled) {
		os.Remove(out)
		p.Spinner.StopMsg = fmt.Sprintf("%s %s %s",
			utils.DecorateText("⚡ INPAINT", utils.StatusMessage),
			utils.DecorateText("filling the hole region failed...", utils.DefaultMessage),
			utils.DecorateText("✘", utils.ErrorMessage))
		p.Spinner.Stop()
		return err
	}
	p.Spinner.StopMsg = fmt.Sprintf("%s %s %s",
		utils.DecorateText("⚡ INPAINT", utils.StatusMessage),
		utils.DecorateText("⇢", utils.DefaultMessage),
		utils.DecorateText("the hole region has been filled successfully ✔", utils.SuccessMessage))
	p.Spinner.Stop()
	return err
}

func printOpStatus(fname string, err error) {
	if err != nil {
		log.Printf("%s\n\tReason: %v\n",
			utils.DecorateText("Error inpainting the image:", utils.ErrorMessage), err)
		return
	}
	fmt.Fprintf(os.Stderr, "\nThe image has been saved as: %s%s\n\n",
		utils.DecorateText(filepath.Base(fname), utils.SuccessMessage), utils.DefaultColor)
}

// walkDir walks src recursively, sending each regular file whose extension
// is in srcExts to the returned channel; it stops early if done is closed.
func walkDir(done <-chan struct{}, src string, srcExts []string) (<-chan string, <-chan error) {
	pathChan := make(chan string)
	errChan := make(chan error, 1)

	go func() {
		defer close(pathChan)
		errChan <- filepath.Walk(src, func(path string, f os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !f.Mode().IsRegular() {
				return nil
			}
			if !utils.Contains(srcExts, filepath.Ext(f.Name())) {
				return nil
			}
			select {
			case <-done:
				return errors.New("directory walk cancelled")
			case pathChan <- path:
			}
			return nil
		})
	}()
	return pathChan, errChan
}
