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
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Path rewriting", func() {

	DescribeTable("rewriteImagePath",
		func(input, expected string) {
			Expect(rewriteImagePath(input, DefaultPathPrefix, DefaultPathRoot)).To(Equal(expected))
		},
		Entry("matching prefix",
			"GraSP/train/frames/CASE021/00014.jpg",
			"/scratch/e0957602/BN4101/grasp_frames/CASE021/00014.jpg"),
		Entry("prefix only",
			"GraSP/train/frames/",
			"/scratch/e0957602/BN4101/grasp_frames/"),
		Entry("non-matching path passes through",
			"somewhere/else/frame.jpg",
			"somewhere/else/frame.jpg"),
		Entry("already rewritten path passes through",
			"/scratch/e0957602/BN4101/grasp_frames/CASE021/00014.jpg",
			"/scratch/e0957602/BN4101/grasp_frames/CASE021/00014.jpg"),
		Entry("empty string passes through", "", ""),
	)

	It("should be idempotent", func() {
		once := rewriteImagePath("GraSP/train/frames/CASE001/1.jpg", DefaultPathPrefix, DefaultPathRoot)
		twice := rewriteImagePath(once, DefaultPathPrefix, DefaultPathRoot)
		Expect(twice).To(Equal(once))
	})

	It("should preserve list order", func() {
		images := []string{
			"GraSP/train/frames/CASE001/2.jpg",
			"GraSP/train/frames/CASE001/1.jpg",
			"elsewhere/3.jpg",
		}
		Expect(rewriteImagePaths(images, DefaultPathPrefix, DefaultPathRoot)).To(Equal([]string{
			"/scratch/e0957602/BN4101/grasp_frames/CASE001/2.jpg",
			"/scratch/e0957602/BN4101/grasp_frames/CASE001/1.jpg",
			"elsewhere/3.jpg",
		}))
	})
})

var _ = Describe("Group keys", func() {

	It("should not depend on image order", func() {
		a := groupKey([]string{"x/1.jpg", "x/2.jpg", "x/3.jpg"})
		b := groupKey([]string{"x/3.jpg", "x/1.jpg", "x/2.jpg"})
		Expect(a).To(Equal(b))
	})

	It("should differ for different image sets", func() {
		a := groupKey([]string{"x/1.jpg", "x/2.jpg"})
		b := groupKey([]string{"x/1.jpg", "x/3.jpg"})
		Expect(a).NotTo(Equal(b))
	})

	It("should not mutate its input", func() {
		images := []string{"x/2.jpg", "x/1.jpg"}
		_ = groupKey(images)
		Expect(images).To(Equal([]string{"x/2.jpg", "x/1.jpg"}))
	})

	It("should handle an empty image list", func() {
		Expect(groupKey(nil)).To(Equal(groupKey([]string{})))
	})
})
