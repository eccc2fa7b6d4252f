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

package apis

// Builder assembles the Registry and Resolver of a snapshot for a Config.
//
// Rebuilding happens whenever the Config, the Builder or the extension
// payload changes. A Builder may carry registrations over from the
// previous Registry; it should not carry over a previous Resolver's cache,
// because cached reflections depend on the Config they were built with.
type Builder interface {
	// BuildRegistry returns the Registry for cfg, optionally seeded from prev.
	// ext is the opaque extension payload of the snapshot.
	BuildRegistry(cfg Config, prev Registry, ext any) Registry
	// BuildResolver returns the Resolver for cfg over reg.
	// prev is the Resolver being replaced, if any.
	BuildResolver(cfg Config, reg Registry, prev Resolver, ext any) Resolver
}
