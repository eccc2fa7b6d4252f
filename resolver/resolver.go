/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package resolver

import (
	"fmt"
	"reflect"
	"sync"

	"dirpx.dev/refl/apis"
	"dirpx.dev/refl/internal/logger"
	"dirpx.dev/refl/mirror"
	uref "dirpx.dev/refl/utils/reflect"
)

// New constructs an apis.Resolver that tries the given strategies in order.
// Nil strategies are ignored. The returned resolver is safe for concurrent use
// provided strategies themselves are safe for concurrent TryReflect calls.
func New(strategies ...apis.Strategy) apis.Resolver {
	out := make([]apis.Strategy, 0, len(strategies))
	for _, s := range strategies {
		if s != nil {
			out = append(out, s)
		}
	}
	return &chain{strats: out}
}

// chain is an order-preserving resolver over a set of strategies that
// memoizes every outcome, failures included.
type chain struct {
	strats []apis.Strategy
	cache  sync.Map // key: cacheKey, val: *result
}

// cacheKey ensures memoization respects all config knobs that affect the
// reflection.
type cacheKey struct {
	t   reflect.Type
	cfg apis.Config
}

type result struct {
	typ *mirror.Type
	err error
}

// Resolve normalizes t, runs strategies in order until one handles the base
// type, and builds the reflection. Concurrent first calls for the same type
// may each build; the first stored result wins and is returned to all.
func (r *chain) Resolve(t reflect.Type, cfg apis.Config) (*mirror.Type, error) {
	base, err := uref.Normalize(t, cfg.MaxUnwrap)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", mirror.ErrNotReflectable, err)
	}

	key := cacheKey{t: base, cfg: cfg}
	if v, ok := r.cache.Load(key); ok {
		res := v.(*result)
		return res.typ, res.err
	}

	v, _ := r.cache.LoadOrStore(key, r.build(base, cfg))
	res := v.(*result)
	return res.typ, res.err
}

func (r *chain) build(base reflect.Type, cfg apis.Config) *result {
	log := logger.ForComponent("resolver")
	m := mirror.New(base, cfg.MirrorOptions())
	for i, s := range r.strats {
		info, ok := s.TryReflect(m, cfg)
		if !ok {
			continue
		}
		typ, err := mirror.Build(info)
		if err != nil {
			log.Debug("build failed", "type", base.String(), "strategy", i, "error", err)
			return &result{err: fmt.Errorf("reflect %s: %w", base, err)}
		}
		log.Debug("built", "type", base.String(), "name", typ.Name(), "kind", typ.Kind().String(), "members", typ.Len())
		return &result{typ: typ}
	}
	return &result{err: fmt.Errorf("%w: %s", mirror.ErrNotReflectable, base)}
}
