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

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// firstChoice pins every selection to the first candidate
func firstChoice(_ int) int { return 0 }

func imagesPtr(images ...string) *[]string {
	return &images
}

var _ = Describe("Normalizer", func() {

	newTestNormalizer := func(includeGeneral bool) *normalizer {
		return newNormalizer(firstChoice, includeGeneral, DefaultPathPrefix, DefaultPathRoot)
	}

	It("should emit a phase/step and a general example for a full record", func() {
		rec := rawRecord{
			ID:            0,
			Images:        imagesPtr("GraSP/train/frames/a.jpg", "GraSP/train/frames/b.jpg"),
			Conversations: []string{"phase X, step Y"},
			Response:      "a surgical view of X",
		}

		examples, _ := newTestNormalizer(true).normalizeRecord(rec)
		Expect(examples).To(HaveLen(2))

		rewritten := []string{
			"/scratch/e0957602/BN4101/grasp_frames/a.jpg",
			"/scratch/e0957602/BN4101/grasp_frames/b.jpg",
		}
		for _, ex := range examples {
			Expect(ex.Images).To(Equal(rewritten))
			Expect(ex.Messages).To(HaveLen(2))
			Expect(ex.Messages[0].Role).To(Equal(RoleUser))
			Expect(ex.Messages[1].Role).To(Equal(RoleAssistant))
		}

		Expect(examples[0].Messages[1].Content).To(Equal("phase X, step Y"))
		Expect(examples[0].Messages[0].Content).To(Equal("<image><image>\n" + phaseStepQuestions[0]))
		Expect(examples[1].Messages[1].Content).To(Equal("a surgical view of X"))
		Expect(examples[1].Messages[0].Content).To(Equal("<image><image>\n" + generalQuestions[0]))
	})

	It("should emit one placeholder token per image", func() {
		rec := rawRecord{
			Images:        imagesPtr("GraSP/train/frames/a.jpg", "GraSP/train/frames/b.jpg", "GraSP/train/frames/c.jpg"),
			Conversations: []string{"phase X, step Y"},
		}

		examples, _ := newTestNormalizer(false).normalizeRecord(rec)
		Expect(examples).To(HaveLen(1))
		count := strings.Count(examples[0].Messages[0].Content, ImagePlaceholder)
		Expect(count).To(Equal(len(examples[0].Images)))
	})

	It("should emit nothing for an empty record", func() {
		rec := rawRecord{
			Images:        imagesPtr("GraSP/train/frames/a.jpg"),
			Conversations: []string{},
			Response:      "",
		}

		examples, key := newTestNormalizer(true).normalizeRecord(rec)
		Expect(examples).To(BeEmpty())
		Expect(key).NotTo(BeEmpty())
	})

	It("should skip the general example when the flag is off", func() {
		rec := rawRecord{
			Images:        imagesPtr("GraSP/train/frames/a.jpg"),
			Conversations: []string{"phase X, step Y"},
			Response:      "a surgical view of X",
		}

		examples, _ := newTestNormalizer(false).normalizeRecord(rec)
		Expect(examples).To(HaveLen(1))
		Expect(examples[0].Messages[1].Content).To(Equal("phase X, step Y"))
	})

	It("should emit only the general example when conversations are absent", func() {
		rec := rawRecord{
			Images:   imagesPtr("GraSP/train/frames/a.jpg"),
			Response: "a surgical view of X",
		}

		examples, _ := newTestNormalizer(true).normalizeRecord(rec)
		Expect(examples).To(HaveLen(1))
		Expect(examples[0].Messages[1].Content).To(Equal("a surgical view of X"))
	})

	It("should honor the injected selection strategy", func() {
		rec := rawRecord{
			Images:        imagesPtr("GraSP/train/frames/a.jpg"),
			Conversations: []string{"variant 0", "variant 1", "variant 2"},
		}

		lastChoice := func(n int) int { return n - 1 }
		n := newNormalizer(lastChoice, false, DefaultPathPrefix, DefaultPathRoot)
		examples, _ := n.normalizeRecord(rec)
		Expect(examples).To(HaveLen(1))
		Expect(examples[0].Messages[1].Content).To(Equal("variant 2"))
		Expect(examples[0].Messages[0].Content).To(HaveSuffix(phaseStepQuestions[len(phaseStepQuestions)-1]))
	})

	It("should derive the same group key for records sharing an image list", func() {
		recA := rawRecord{
			ID:            1,
			Images:        imagesPtr("GraSP/train/frames/a.jpg", "GraSP/train/frames/b.jpg"),
			Conversations: []string{"phase X, step Y"},
		}
		recB := rawRecord{
			ID:            2,
			Images:        imagesPtr("GraSP/train/frames/b.jpg", "GraSP/train/frames/a.jpg"),
			Conversations: []string{"phase Z, step W"},
		}

		n := newTestNormalizer(false)
		_, keyA := n.normalizeRecord(recA)
		_, keyB := n.normalizeRecord(recB)
		Expect(keyA).To(Equal(keyB))
	})

	It("should handle a record without images gracefully once parsed", func() {
		rec := rawRecord{
			Images:        imagesPtr(),
			Conversations: []string{"phase X, step Y"},
		}

		examples, _ := newTestNormalizer(false).normalizeRecord(rec)
		Expect(examples).To(HaveLen(1))
		Expect(examples[0].Images).To(BeEmpty())
		Expect(examples[0].Messages[0].Content).To(Equal("\n" + phaseStepQuestions[0]))
	})
})
