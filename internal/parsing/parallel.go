package parsing

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/moolen/logtriage/internal/logging"
	"github.com/moolen/logtriage/internal/models"
)

// minParallelLines is the input size below which chunking is not worth
// the coordination overhead.
const minParallelLines = 10000

// ParseParallel parses the input in chunks across workers goroutines.
// The result is identical to Parse: chunk boundaries are shifted forward
// so that they never fall between an ERROR/CRITICAL line and its
// continuation lines, and the out-of-order pass runs over the merged
// result in file order.
func (p *Parser) ParseParallel(ctx context.Context, lines []string, workers int) ([]*models.LogEntry, error) {
	if workers <= 1 || len(lines) < minParallelLines {
		return p.Parse(lines), nil
	}

	bounds := chunkBounds(lines, workers)
	results := make([][]*models.LogEntry, len(bounds))

	g, _ := errgroup.WithContext(ctx)
	for i, b := range bounds {
		g.Go(func() error {
			results[i] = p.parseChunk(lines[b.start:b.end], b.start)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := make([]*models.LogEntry, 0, len(lines))
	for _, chunk := range results {
		merged = append(merged, chunk...)
	}
	markOutOfOrder(merged)

	p.logger.DebugWithFields("parallel parse complete",
		logging.Field("lines", len(lines)),
		logging.Field("chunks", len(bounds)),
		logging.Field("entries", len(merged)),
	)
	return merged, nil
}

type bound struct {
	start, end int
}

// chunkBounds splits the line range into up to n chunks. A chunk may
// only begin on a line that is blank or matches a grammar; boundaries
// landing on a potential continuation line are advanced so that the
// continuation rule is applied within a single chunk.
func chunkBounds(lines []string, n int) []bound {
	size := (len(lines) + n - 1) / n
	bounds := make([]bound, 0, n)

	start := 0
	for start < len(lines) {
		end := start + size
		if end >= len(lines) {
			bounds = append(bounds, bound{start: start, end: len(lines)})
			break
		}
		for end < len(lines) && !safeBoundary(lines[end]) {
			end++
		}
		bounds = append(bounds, bound{start: start, end: end})
		start = end
	}
	return bounds
}

// safeBoundary reports whether a chunk may begin at the given line.
// Blank lines are skipped by the parser and marker-full lines start
// fresh entries; only marker-less lines can be continuations.
func safeBoundary(line string) bool {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return true
	}
	_, ok := matchLine(line)
	return ok
}
