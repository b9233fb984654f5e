package pruner

import (
	"errors"
	"fmt"
	"os"

	"github.com/nspcc-dev/chunkprune/pkg/nbt"
	"github.com/nspcc-dev/chunkprune/pkg/region"
	"go.uber.org/zap"
)

// Result describes what happened to the region file.
type Result string

const (
	// ResultDeleted means the region file was removed.
	ResultDeleted Result = "deleted"
	// ResultCandidate means the region file would be removed but dry run
	// is enabled.
	ResultCandidate Result = "candidate"
	// ResultKept means the inspected chunk is inhabited long enough or
	// has no inhabited time at all.
	ResultKept Result = "kept"
	// ResultEmpty means the inspected cell has no record.
	ResultEmpty Result = "empty"
	// ResultUndecodable means the record could not be decompressed or
	// decoded. See DecodeError.
	ResultUndecodable Result = "undecodable"
	// ResultFailed means the region file could not be read or removed.
	ResultFailed Result = "failed"
	// ResultSkipped means the directory entry is not a region file.
	ResultSkipped Result = "skipped"
)

// DecodeError is returned when chunk record is read but its payload can not
// be decompressed or decoded. Region files with such records are never
// removed.
type DecodeError struct {
	cause error
}

func (e *DecodeError) Error() string {
	return "decode chunk: " + e.cause.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.cause
}

type outcome struct {
	res  Result
	size int64
}

// Process inspects the chunk of the cell selected by c in the region file
// located at path and removes the file if the chunk's inhabited time is less
// than the configured threshold.
//
// Cells without record are not an error. Decompression and decoding
// failures are returned as *DecodeError.
func (p *Pruner) Process(path string, c region.Coord) (Result, error) {
	o, err := p.process(path, c)
	return o.res, err
}

func (p *Pruner) process(path string, c region.Coord) (outcome, error) {
	f, err := region.Open(path)
	if err != nil {
		return outcome{res: ResultFailed}, err
	}

	t, ok, err := inhabitedTime(f, c)
	size := f.Size()
	_ = f.Close()

	switch {
	case errors.Is(err, region.ErrNoRecord):
		return outcome{res: ResultEmpty}, nil
	case errors.As(err, new(*DecodeError)):
		return outcome{res: ResultUndecodable}, err
	case err != nil:
		return outcome{res: ResultFailed}, err
	case !ok || t >= p.threshold:
		return outcome{res: ResultKept}, nil
	}

	if p.dryRun {
		p.log.Info("region would be removed",
			zap.Int32("x", c.X),
			zap.Int32("z", c.Z),
			zap.Int64("inhabited_time", t),
			zap.String("path", path),
		)
		return outcome{res: ResultCandidate, size: size}, nil
	}

	if err := os.Remove(path); err != nil {
		return outcome{res: ResultFailed}, fmt.Errorf("remove region file: %w", err)
	}

	p.log.Info("removed region",
		zap.Int32("x", c.X),
		zap.Int32("z", c.Z),
		zap.Int64("inhabited_time", t),
		zap.String("path", path),
	)

	return outcome{res: ResultDeleted, size: size}, nil
}

func inhabitedTime(f *region.File, c region.Coord) (int64, bool, error) {
	rec, err := f.Chunk(c)
	if err != nil {
		return 0, false, err
	}

	data, err := rec.Decompress()
	if err != nil {
		return 0, false, &DecodeError{cause: fmt.Errorf("%s record: %w", rec.Method, err)}
	}

	t, ok, err := nbt.InhabitedTime(data)
	if err != nil {
		return 0, false, &DecodeError{cause: err}
	}

	return t, ok, nil
}
