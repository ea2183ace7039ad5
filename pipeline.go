package dunjunz

import (
	"context"
	"runtime"
	"sync"

	"github.com/bodgit/dunjunz/level"
)

type decodedLevel struct {
	number int
	level  *level.Level
}

func (d *Dunjunz) findLevels(ctx context.Context) (<-chan int, <-chan error, error) {
	out := make(chan int)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		for n := 1; n <= NumLevels; n++ {
			select {
			case out <- n:
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
	}()
	return out, errc, nil
}

func (d *Dunjunz) levelWorker(ctx context.Context, in <-chan int, out chan<- decodedLevel) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for n := range in {
			l, err := d.Level(n)
			if err != nil {
				errc <- err
				return
			}

			select {
			case out <- decodedLevel{n, l}:
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Levels decodes every level concurrently. The result is indexed by level
// number. The first error stops the remaining work.
func (d *Dunjunz) Levels(ctx context.Context) (map[int]*level.Level, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	var errcList []<-chan error

	numbers, errc, err := d.findLevels(ctx)
	if err != nil {
		return nil, err
	}
	errcList = append(errcList, errc)

	out := make(chan decodedLevel, NumLevels)

	for i := 0; i < runtime.NumCPU(); i++ {
		errc, err := d.levelWorker(ctx, numbers, out)
		if err != nil {
			return nil, err
		}
		errcList = append(errcList, errc)
	}

	if err := waitForPipeline(errcList...); err != nil {
		return nil, err
	}
	close(out)

	levels := make(map[int]*level.Level, NumLevels)
	for dl := range out {
		levels[dl.number] = dl.level
	}

	return levels, nil
}
