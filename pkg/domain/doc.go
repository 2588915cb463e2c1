/*
Package domain contains the core types of the truths and lies generator.

It is kept free of I/O so that loaders, stores and transports can depend on it
without pulling each other in.

# Key Entities

  - Value / ValueMap: typed template arguments (absent, integer, float, string).
  - GeneratorConfig: a generator kind, its template and its ordered argument sets.
  - Statement: rendered text plus its truth flag. Identity is the text alone.
  - Batch: an ordered, identified set of statements handed to a player.
  - Request: how many truths and lies to produce and under which retry policy.
*/
package domain
