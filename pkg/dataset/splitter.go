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

package dataset

import (
	"math"

	"github.com/go-logr/logr"

	"github.com/grasp-vlm/grasp-dataset-tool/pkg/common"
	"github.com/grasp-vlm/grasp-dataset-tool/pkg/common/logging"
)

// sequenceGroup holds all examples derived from one frame sequence, in the
// order they were produced. A group may collect examples from several source
// records when those records share an image list.
type sequenceGroup struct {
	key      string
	examples []taggedExample
}

// splitBySequence partitions examples into train and eval at trainRatio,
// at the granularity of whole frame-sequence groups so that no sequence
// contributes examples to both partitions.
//
// Groups are built in first-seen order, shuffled with the seeded generator
// (Fisher-Yates, so the permutation is uniform and reproducible for a fixed
// seed and input order), and cut at floor(numGroups * trainRatio). Each
// partition is then flattened in partition order, keeping every group's
// internal example order.
func splitBySequence(examples []taggedExample, trainRatio float64,
	random *common.Random, logger logr.Logger) (train, eval []taggedExample) {
	groupIndex := make(map[string]int)
	groups := []sequenceGroup{}

	for _, ex := range examples {
		i, seen := groupIndex[ex.key]
		if !seen {
			i = len(groups)
			groupIndex[ex.key] = i
			groups = append(groups, sequenceGroup{key: ex.key})
		}
		groups[i].examples = append(groups[i].examples, ex)
	}

	random.Shuffle(len(groups), func(i, j int) {
		groups[i], groups[j] = groups[j], groups[i]
	})

	splitIndex := int(math.Floor(float64(len(groups)) * trainRatio))
	logger.V(logging.INFO).Info("Splitting frame-sequence groups",
		"groups", len(groups), "trainGroups", splitIndex, "evalGroups", len(groups)-splitIndex)

	train = flattenGroups(groups[:splitIndex])
	eval = flattenGroups(groups[splitIndex:])
	return train, eval
}

func flattenGroups(groups []sequenceGroup) []taggedExample {
	flat := []taggedExample{}
	for _, g := range groups {
		flat = append(flat, g.examples...)
	}
	return flat
}
