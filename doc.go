/**
 * Copyright 2016 l0vest0rm.hll authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License"): you may
 * not use this file except in compliance with the License. You may obtain
 * a copy of the License at
 *
 *     http: *www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
 * WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
 * License for the specific language governing permissions and limitations
 * under the License.
 */

// Package hll implements a HyperLogLog cardinality estimator with a hybrid
// hash-list/dense representation and empirically calibrated bias
// correction, plus a hyper-spheres sketch for pairwise overlap/difference
// cardinality matrices over nested sketch chains.
//
// A Sketch starts in the HashList regime, storing distinct hashes exactly
// (near-exact cardinality for small inputs), and promotes itself once to
// the Dense, bit-packed register representation when the hash-list would
// otherwise outgrow the dense array's own footprint.
package hll
