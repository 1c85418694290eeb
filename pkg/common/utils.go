/*
Copyright 2026 The grasp-dataset-tool Authors.

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

package common

import (
	"math/rand"
	"sync"

	"github.com/google/uuid"
)

// Random wraps an explicitly seeded generator instance. All randomness in the
// tool flows through a single Random so that a fixed seed reproduces a run
// byte for byte. There is no process-wide random state.
type Random struct {
	randomGenerator *rand.Rand
	randMutex       sync.Mutex
}

func NewRandom(seed int64) *Random {
	src := rand.NewSource(seed)
	randomGenerator := rand.New(src)
	uuid.SetRand(rand.New(rand.NewSource(seed)))
	return &Random{randomGenerator: randomGenerator}
}

// Returns an integer between min and max (included)
func (r *Random) RandomInt(min int, max int) int {
	r.randMutex.Lock()
	defer r.randMutex.Unlock()

	return r.randomGenerator.Intn(max-min+1) + min
}

// Choice returns a uniformly chosen index in [0, n).
// n must be positive.
func (r *Random) Choice(n int) int {
	r.randMutex.Lock()
	defer r.randMutex.Unlock()

	return r.randomGenerator.Intn(n)
}

// Shuffle applies an unbiased Fisher-Yates permutation of n elements through
// the given swap function.
func (r *Random) Shuffle(n int, swap func(i, j int)) {
	r.randMutex.Lock()
	defer r.randMutex.Unlock()

	r.randomGenerator.Shuffle(n, swap)
}

// Returns a random float64 in the range [min, max)
func (r *Random) RandomFloat(min float64, max float64) float64 {
	r.randMutex.Lock()
	defer r.randMutex.Unlock()

	return r.randomGenerator.Float64()*(max-min) + min
}

// GenerateUUIDString generates a UUID string under a lock
func (r *Random) GenerateUUIDString() string {
	r.randMutex.Lock()
	defer r.randMutex.Unlock()
	return uuid.NewString()
}
