/*
Package ports defines the driven ports (interfaces) of the truths and lies engine.

These interfaces decouple the engine from where generator definitions come from
and where generated batches are kept.

# Key Interfaces

  - ConfigLoader: Responsible for providing GeneratorConfig values (files, memory).
  - BatchStore: Responsible for persisting batches so they can be revealed later.
*/
package ports
