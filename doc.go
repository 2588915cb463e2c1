/*
Package twotruths generates mixed sets of true and false statements for quiz
games such as "two truths and a lie".

Statements come from generators. Each generator fills a template with one of
its argument sets: the truth renders the set as is, a lie perturbs a field
first (a solve time shifted by up to a second, a count off by a few). A batch
draws generators in proportion to how many argument sets they have and never
contains the same text twice. With EnsureNotTrue, no lie may coincide with
anything its generator could render as a truth.

# Usage

	eng, err := twotruths.New([]string{"generators/"})
	if err != nil {
		log.Fatal(err)
	}
	req := domain.DefaultRequest()
	req.Truths, req.Lies = 2, 1
	batch, err := eng.Generate(ctx, req)

Configs are YAML or JSON files:

	kind: CubingStatementGenerator
	template: "On {date}, I solved the 3x3x3 Rubik's Cube in exactly {time}."
	arguments:
	  - {date: "2021-01-02", time: 12.345}

# Surfaces

  - cmd/twotruths: CLI (generate, serve, mcp, validate).
  - internal/adapters/http: JSON API with batch reveal.
  - pkg/adapters/mcp: Model Context Protocol tools.
*/
package twotruths
