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

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ImagePlaceholder is inserted once per image into the user message, marking
// where the downstream pipeline injects visual content.
const ImagePlaceholder = "<image>"

// rawRecord is one source GraSP record.
// Images is a pointer so that an absent or null "images" key can be told
// apart from an empty list: grouping is undefined without the key, while an
// empty list is a valid record. Absent "conversations" or "response" simply
// unmarshal to their zero values and yield no output examples.
type rawRecord struct {
	ID            int64     `json:"id"`
	Images        *[]string `json:"images"`
	Conversations []string  `json:"conversations"`
	Response      string    `json:"response"`
}

// Message is a single chat turn in the output format.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatExample is one output training record: a user/assistant message pair
// plus the images the user turn refers to, in source order.
type ChatExample struct {
	Messages []Message `json:"messages"`
	Images   []string  `json:"images"`
}

// taggedExample carries a ChatExample together with the frame-sequence key of
// the record it was derived from. The key is what the splitter groups by.
type taggedExample struct {
	example ChatExample
	key     string
}
