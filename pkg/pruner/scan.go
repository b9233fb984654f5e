package pruner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/cheggaaa/pb"
	"github.com/nspcc-dev/chunkprune/pkg/region"
	"go.uber.org/zap"
)

type regionTask struct {
	path  string
	coord region.Coord
}

// Scan processes region files of every configured root of the world
// directory concurrently and returns after all of them are handled.
//
// Failures of particular region files are logged and don't interrupt the
// scan. Error is returned only if a root directory can not be listed, in
// this case the remaining roots are not processed.
//
// Once ctx is done, no more region files are submitted: Scan waits for
// the already submitted ones and returns ctx.Err().
func (p *Pruner) Scan(ctx context.Context, world string) error {
	pool, err := p.poolInit(p.workers)
	if err != nil {
		return fmt.Errorf("init worker pool: %w", err)
	}
	defer pool.Release()

	for _, root := range p.roots {
		tasks, err := p.listRoot(world, root)
		if err != nil {
			return err
		}

		p.log.Debug("processing region directory",
			zap.String("root", root),
			zap.Int("regions", len(tasks)),
		)

		bar := p.newProgressBar(root, len(tasks))

		var wg sync.WaitGroup
		for i := range tasks {
			if ctx.Err() != nil {
				break
			}

			t := tasks[i]
			wg.Add(1)

			run := func() {
				defer wg.Done()
				p.handle(root, t)
				if bar != nil {
					bar.Increment()
				}
			}

			if err := pool.Submit(run); err != nil {
				p.log.Warn("worker pool rejected region, processing in place",
					zap.String("path", t.path),
					zap.Error(err),
				)
				run()
			}
		}

		wg.Wait()

		if bar != nil {
			bar.Finish()
		}

		if err := ctx.Err(); err != nil {
			p.log.Info("scan interrupted", zap.String("root", root))
			return err
		}
	}

	return nil
}

func (p *Pruner) listRoot(world, root string) ([]regionTask, error) {
	dir := filepath.Join(world, filepath.FromSlash(root))

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list region directory %q: %w", dir, err)
	}

	tasks := make([]regionTask, 0, len(entries))
	for _, e := range entries {
		c, ok := region.ParseName(e.Name())
		if !ok || e.IsDir() {
			p.log.Debug("skip non-region entry",
				zap.String("root", root),
				zap.String("name", e.Name()),
			)
			p.metrics.IncRegions(root, string(ResultSkipped))
			continue
		}

		tasks = append(tasks, regionTask{
			path:  filepath.Join(dir, e.Name()),
			coord: c,
		})
	}

	return tasks, nil
}

func (p *Pruner) handle(root string, t regionTask) {
	o, err := p.process(t.path, t.coord)
	if err != nil {
		if errors.As(err, new(*DecodeError)) {
			p.log.Warn("skip undecodable chunk",
				zap.Int32("x", t.coord.X),
				zap.Int32("z", t.coord.Z),
				zap.String("path", t.path),
				zap.Error(err),
			)
		} else {
			p.log.Error("failed to decode region",
				zap.Int32("x", t.coord.X),
				zap.Int32("z", t.coord.Z),
				zap.String("path", t.path),
				zap.Error(err),
			)
		}
	}

	p.metrics.IncRegions(root, string(o.res))
	if o.size > 0 {
		p.metrics.AddReclaimedBytes(root, o.size)
	}
}

func (p *Pruner) newProgressBar(root string, total int) *pb.ProgressBar {
	if p.progress == nil || total == 0 {
		return nil
	}

	bar := pb.New(total).Prefix(root + " ")
	bar.Output = p.progress
	bar.ShowSpeed = true

	return bar.Start()
}
