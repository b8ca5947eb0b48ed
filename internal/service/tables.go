package service

import (
	"sync"

	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/dls"
	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/model"
)

// tableCache builds resource tables lazily and reuses them; the fitting is
// cheap but there is no reason to redo it on every ball.
type tableCache struct {
	mu      sync.Mutex
	byOvers map[int]dls.Table
}

func newTableCache() *tableCache {
	return &tableCache{byOvers: make(map[int]dls.Table)}
}

// forMatch returns the table for the match's scheduled format, or nil when no
// table applies. The engine treats nil as "rain rule unavailable".
func (c *tableCache) forMatch(m *model.Match) (dls.Table, error) {
	if m.Format != model.FormatLimitedOvers {
		return nil, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if t, ok := c.byOvers[m.OversLimit]; ok {
		return t, nil
	}
	t, err := dls.TableForFormat(m.Format, m.OversLimit)
	if err != nil {
		return nil, err
	}
	c.byOvers[m.OversLimit] = t
	return t, nil
}
