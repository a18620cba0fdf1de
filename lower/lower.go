// Package lower converts grammar declarations into the resolved type model.
//
// Lowering runs a fixed sequence of passes over a single model.LangData:
// key registration, token classification, rule building, resolution
// (struct merging, sum types, simple enums, parent graph), left recursion check,
// boxing, naming, and ownership analysis. The first failing pass aborts lowering, no partial
// model is returned.
package lower

import (
	"log/slog"

	"github.com/ava12/shapegen/grammar"
	"github.com/ava12/shapegen/model"
)

type lowerContext struct {
	src  *grammar.Source
	data *model.LangData
	log  *slog.Logger
}

// Lower builds resolved model of src. Returns *shapegen.Error on failure.
func Lower(src *grammar.Source) (*model.LangData, error) {
	return LowerWithLogger(src, slog.Default())
}

// LowerWithLogger is Lower reporting pass details to logger.
func LowerWithLogger(src *grammar.Source, logger *slog.Logger) (*model.LangData, error) {
	c := &lowerContext{
		src:  src,
		data: model.New(),
		log:  logger.With("grammar", src.Name),
	}

	e := c.register(nil)
	e = c.classify(e)
	e = c.buildRules(e)
	e = c.resolve(e)
	e = c.checkRecursion(e)
	e = c.box(e)
	e = c.name(e)
	e = c.analyzeOwnership(e)
	if e != nil {
		return nil, e
	}

	c.log.Debug("lowered",
		"keys", c.data.Entries.Len(),
		"structs", c.data.Structs.Len(),
		"enums", c.data.Enums.Len(),
		"lists", c.data.Lists.Len(),
		"start", c.data.Start)
	return c.data, nil
}
