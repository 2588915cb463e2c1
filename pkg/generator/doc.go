/*
Package generator defines the statement generator capability and its variants.

A generator owns a template and an ordered list of argument sets. Truth renders
one set deterministically; Lie renders a perturbed copy of it using the random
source it is given. The number of argument sets is the generator's weight when
a batch samples across several generators.

Variants are looked up by kind through a Registry:

	reg := generator.DefaultRegistry()
	g, err := reg.Create(domain.GeneratorConfig{Kind: "CubingStatementGenerator", ...})
*/
package generator
