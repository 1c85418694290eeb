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
	"strings"
)

// Question variations for diversity: the phase/step set pairs with an answer
// picked from the record's conversation variants, the general set pairs with
// the record's free-form response.
var phaseStepQuestions = []string{
	"What surgical phase and step are shown in these images?",
	"Identify the surgical phase and step being performed.",
	"What surgical phase and step can you identify in these images?",
	"Describe the surgical phase and step visible in this sequence.",
	"Analyze these frames and specify the surgical phase and step being performed.",
}

var generalQuestions = []string{
	"Describe what you see in this surgical video.",
	"Provide a detailed description of this surgical procedure.",
	"What is visible in these surgical images?",
	"Give a comprehensive description of the surgical scene.",
	"What details can you observe in these surgical frames?",
}

// Selector picks an index in [0, n) from n candidates. Production wiring
// backs it with a seeded common.Random; tests substitute fixed choices.
type Selector func(n int) int

// normalizer converts raw GraSP records into chat-style examples.
type normalizer struct {
	selector               Selector
	includeGeneralResponse bool
	pathPrefix             string
	pathRoot               string
}

func newNormalizer(selector Selector, includeGeneralResponse bool, pathPrefix, pathRoot string) *normalizer {
	return &normalizer{
		selector:               selector,
		includeGeneralResponse: includeGeneralResponse,
		pathPrefix:             pathPrefix,
		pathRoot:               pathRoot,
	}
}

// normalizeRecord emits zero, one or two examples for one record, the
// phase/step example first, plus the record's frame-sequence group key.
// Selection draws are independent: one for the answer variant, one per
// emitted example for its question template.
func (n *normalizer) normalizeRecord(rec rawRecord) ([]ChatExample, string) {
	images := rewriteImagePaths(*rec.Images, n.pathPrefix, n.pathRoot)
	key := groupKey(images)
	examples := []ChatExample{}

	if len(rec.Conversations) > 0 {
		answer := rec.Conversations[n.selector(len(rec.Conversations))]
		question := phaseStepQuestions[n.selector(len(phaseStepQuestions))]
		examples = append(examples, n.buildExample(images, question, answer))
	}

	if n.includeGeneralResponse && rec.Response != "" {
		question := generalQuestions[n.selector(len(generalQuestions))]
		examples = append(examples, n.buildExample(images, question, rec.Response))
	}

	return examples, key
}

// buildExample assembles one user/assistant pair. The user content carries
// one image placeholder per image, then the question on a new line.
func (n *normalizer) buildExample(images []string, question, answer string) ChatExample {
	userContent := strings.Repeat(ImagePlaceholder, len(images)) + "\n" + question

	return ChatExample{
		Messages: []Message{
			{Role: RoleUser, Content: userContent},
			{Role: RoleAssistant, Content: answer},
		},
		Images: images,
	}
}
