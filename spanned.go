//
// Copyright 2026 The yamlcore Project Contributors
// SPDX-License-Identifier: Apache-2.0
//

package yaml

import "go.yaml.in/yamlcore/internal/core"

// Spanned re-exports the Deserializer Core's location-tagged value
// wrapper. Decoding into a struct field of type Spanned[T] populates
// Value as usual, plus Referenced (where the request was made: the
// node's own site, or an alias's, if the value came through one) and
// Defined (where the value was authored: the same site, unless it came
// through an alias, in which case the anchor's own site).
//
//	type Config struct {
//		Name yaml.Spanned[string] `yaml:"name"`
//	}
//
// Referenced and Defined differ only across an alias: decoding
// `&a` then later `<<: *a` or `b: *a` reports Defined at the anchor's
// own node and Referenced at each place the alias appears.
type Spanned[T any] = core.Spanned[T]
