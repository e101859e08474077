package main

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Progress is fed from the generator workers.
type Progress struct {
	out     io.Writer
	total   int
	current int
	failed  int
	mu      sync.Mutex
}

func NewProgress(out io.Writer, total int) *Progress {
	return &Progress{out: out, total: total}
}

func (p *Progress) Add(ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current++
	if !ok {
		p.failed++
	}
	p.draw()
}

func (p *Progress) draw() {
	width := 30
	percent := 1.0
	if p.total > 0 {
		percent = float64(p.current) / float64(p.total)
	}
	filled := int(float64(width) * percent)

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	fmt.Fprintf(p.out, "\r [RENDER] [%s] %d%% (%d/%d keys, %d failed)", bar, int(percent*100), p.current, p.total, p.failed)

	if p.current == p.total {
		fmt.Fprintln(p.out)
	}
}
