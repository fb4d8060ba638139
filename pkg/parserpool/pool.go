// Package parserpool provides a pool of botanical gnparser instances for
// concurrent name parsing. Parsing is computation, not I/O.
package parserpool

import (
	"runtime"
	"strings"

	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/gnames/gnparser"
	"github.com/gnames/gnparser/ent/parsed"
)

// Pool provides a pool of gnparser instances for concurrent parsing.
type Pool interface {
	// Parse parses a scientific name string with the botanical code.
	// It is safe for concurrent use.
	Parse(nameString string) parsed.Parsed

	// Canonical returns the simple canonical form of a name (the name
	// without authorship and ranks). If the name cannot be parsed, the
	// trimmed input is returned and the boolean is false.
	Canonical(nameString string) (string, bool)

	// Authorship returns the authorship of a name, if any.
	Authorship(nameString string) string

	// Close shuts down the parser pool. After calling Close, the pool
	// should not be used.
	Close()
}

type poolImpl struct {
	ch       chan gnparser.GNparser
	poolSize int
}

// NewPool creates a new parser pool with the specified number of workers.
// If jobsNum is 0, it defaults to runtime.NumCPU().
func NewPool(jobsNum int) Pool {
	poolSize := jobsNum
	if poolSize == 0 {
		poolSize = runtime.NumCPU()
	}

	cfg := gnparser.NewConfig(
		gnparser.OptCode(nomcode.Botanical),
		gnparser.OptWithDetails(true),
	)

	return &poolImpl{
		ch:       gnparser.NewPool(cfg, poolSize),
		poolSize: poolSize,
	}
}

// Parse takes a parser from the pool (blocking if all parsers are busy),
// parses the name and returns the parser to the pool.
func (p *poolImpl) Parse(nameString string) parsed.Parsed {
	parser := <-p.ch
	res := parser.ParseName(nameString)
	p.ch <- parser
	return res
}

func (p *poolImpl) Canonical(nameString string) (string, bool) {
	nameString = strings.TrimSpace(nameString)
	res := p.Parse(nameString)
	if !res.Parsed || res.Canonical == nil || res.Canonical.Simple == "" {
		return nameString, false
	}
	return res.Canonical.Simple, true
}

func (p *poolImpl) Authorship(nameString string) string {
	res := p.Parse(nameString)
	if !res.Parsed || res.Authorship == nil {
		return ""
	}
	return res.Authorship.Normalized
}

// Close closes the channel and drains remaining parsers.
func (p *poolImpl) Close() {
	if p.ch == nil {
		return
	}
	close(p.ch)
	for range p.ch {
	}
	p.ch = nil
}
