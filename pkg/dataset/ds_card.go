package dataset

import (
	"os"
	"strconv"
	"strings"
)

const (
	runIDPlaceholder         = "<RUN_ID>"
	hfDSRepoPlaceholder      = "<HF_DS_REPO>"
	hfDSUrlPlaceholder       = "<HF_DS_URL>"
	fileNamePlaceholder      = "<FILE_NAME>"
	sourceCountPlaceholder   = "<SOURCE_RECORDS_COUNT>"
	exampleCountPlaceholder  = "<EXAMPLE_COUNT>"
	groupCountPlaceholder    = "<GROUP_COUNT>"
	trainCountPlaceholder    = "<TRAIN_COUNT>"
	evalCountPlaceholder     = "<EVAL_COUNT>"
	trainRatioPlaceholder    = "<TRAIN_RATIO>"
	seedPlaceholder          = "<SEED>"
	splitSectionPlaceholder  = "<SPLIT_SECTION>"
	sourceSectionPlaceholder = "<SOURCE_SECTION>"
)

const hfSourceTemplate = "[" + hfDSRepoPlaceholder + "](" + hfDSUrlPlaceholder + "), file " + fileNamePlaceholder + "\n"
const localSourceTemplate = "local file " + fileNamePlaceholder + "\n"

const splitSectionTemplate = `
## Split

Examples are partitioned at the granularity of frame-sequence groups, so no
image sequence contributes examples to both partitions. The group order is
shuffled with a seeded generator before the cut; rerunning with the same seed
and input reproduces the partitions exactly.

- **Train ratio**: ` + trainRatioPlaceholder + `
- **Seed**: ` + seedPlaceholder + `
- **Train examples**: ` + trainCountPlaceholder + `
- **Eval examples**: ` + evalCountPlaceholder + `
`

const cardTemplate = `
# Conversion Card

## Overview

Chat-style training data converted from the GraSP surgical-video dataset.
Each source record yields up to two user/assistant pairs: a surgical
phase/step identification example built from one of the record's answer
variants, and optionally a general description example built from the
record's free-form response. Image paths are rewritten to the training
environment's storage root.

Run ID: ` + runIDPlaceholder + `

## Source Dataset

Dataset: ` + sourceSectionPlaceholder + `

### Data Fields

| Field | Type | Description |
| :--- | :--- | :--- |
| ` + "`" + `messages` + "`" + ` | array | One user message (image placeholders + question) and one assistant message (answer) |
| ` + "`" + `images` + "`" + ` | array | Rewritten image paths, source order preserved |

### Data Example

` + "```" + `json
{
  "messages": [
    {"role": "user", "content": "<image><image>\nWhat surgical phase and step are shown in these images?"},
    {"role": "assistant", "content": "phase X, step Y"}
  ],
  "images": ["/scratch/e0957602/BN4101/grasp_frames/CASE001/00001.jpg",
             "/scratch/e0957602/BN4101/grasp_frames/CASE001/00002.jpg"]
}
` + "```" + `
` + splitSectionPlaceholder + `
## Statistics

- **Source Dataset Record Count**: ` + sourceCountPlaceholder + `
- **Generated Example Count**: ` + exampleCountPlaceholder + `
- **Distinct Frame-Sequence Groups**: ` + groupCountPlaceholder + `
`

type cardData struct {
	runID        string
	hfRepo       string
	fileName     string
	sourceCount  int
	exampleCount int
	groupCount   int
	trainCount   int
	evalCount    int
	trainRatio   string
	seed         int64
	split        bool
}

func generateCardFile(cardFilePath string, data cardData) error {
	hfDSUrl := "https://huggingface.co/datasets/" + data.hfRepo
	source := ""
	// create input dataset section text
	if data.hfRepo == "" {
		// local file
		source = strings.ReplaceAll(localSourceTemplate, fileNamePlaceholder, data.fileName)
	} else {
		// hugging face file
		sourceReplacer := strings.NewReplacer(
			hfDSRepoPlaceholder, data.hfRepo,
			hfDSUrlPlaceholder, hfDSUrl,
			fileNamePlaceholder, data.fileName,
		)
		source = sourceReplacer.Replace(hfSourceTemplate)
	}

	splitSection := ""
	if data.split {
		splitReplacer := strings.NewReplacer(
			trainRatioPlaceholder, data.trainRatio,
			seedPlaceholder, strconv.FormatInt(data.seed, 10),
			trainCountPlaceholder, strconv.Itoa(data.trainCount),
			evalCountPlaceholder, strconv.Itoa(data.evalCount),
		)
		splitSection = splitReplacer.Replace(splitSectionTemplate)
	}

	replacer := strings.NewReplacer(
		runIDPlaceholder, data.runID,
		sourceSectionPlaceholder, source,
		splitSectionPlaceholder, splitSection,
		sourceCountPlaceholder, strconv.Itoa(data.sourceCount),
		exampleCountPlaceholder, strconv.Itoa(data.exampleCount),
		groupCountPlaceholder, strconv.Itoa(data.groupCount),
	)

	result := replacer.Replace(cardTemplate)
	err := os.WriteFile(cardFilePath, []byte(result), 0644)

	return err
}
