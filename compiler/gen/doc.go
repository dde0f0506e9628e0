// Package gen is the code-generation engine of typegrow.
//
// Given an in-memory schema model (enumerations, immutable records,
// and sealed hierarchies of records called protocols), the engine
// walks the model and produces a mapping from unit name to complete,
// deterministically formatted target-language source text.
//
// # Architecture
//
// The generation pipeline follows this flow:
//
//	Schema document (YAML, compiler/load)
//	        ↓
//	   Schema model (gen.NewSchema)
//	        ↓
//	   Generator (recursive descent, inherited-field context)
//	        ↓
//	   Target (language-specific rendering: gen/java, gen/golang)
//	        ↓
//	   map[unit name]source text
//
// # Key Types
//
//   - Schema, Definition, Field, TypeRef, Version: the data-only model
//   - Generator: traversal, collision detection, namespace context
//   - Target: per-language rendering of one definition into one unit
//   - IndentWriter: the indentation-aware line emitter targets write to
//   - ConstructorPlan: the per-era partition of fields into
//     caller-supplied and defaulted
//
// # Versioned constructors
//
// Fields carry a Since version and, when introduced after the type's
// origin era, a literal default expression. For every distinct era the
// engine emits one constructor accepting exactly the fields already
// present at that era and back-filling the rest from their defaults,
// so code written against any historical shape of the schema keeps
// compiling against the current generated class.
//
// # Error Handling
//
// Generation fails only on schema authoring defects, reported through
// structured error types:
//
//   - MissingDefaultError: a defaulted field with no default expression
//   - UnitCollisionError: two definitions generating the same unit name
//   - SchemaError: malformed documents rejected during model building
//
// Both generation errors are fatal for the whole schema; the engine
// performs no partial output and no logging.
//
// # Concurrency
//
// A Generate call is a synchronous, purely functional transformation.
// Emitters are created per unit and never shared, so independent
// callers may generate concurrently without coordination.
package gen
