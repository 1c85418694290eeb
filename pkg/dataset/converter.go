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
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-logr/logr"
	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/sync/errgroup"

	"github.com/grasp-vlm/grasp-dataset-tool/pkg/common"
)

// ConverterTool the GraSP conversion tool
type ConverterTool struct {
	config     *Configuration
	random     *common.Random
	normalizer *normalizer
	sqlHelper  *sqliteHelper
	logger     logr.Logger
}

// NewConverterTool creates a ConverterTool instance based on the given
// parameters. All randomness (answer/question selection, split shuffle) is
// drawn from one generator seeded from the configuration.
func NewConverterTool(config *Configuration, logger logr.Logger) *ConverterTool {
	random := common.NewRandom(config.seed)
	selector := func(n int) int { return random.Choice(n) }
	return &ConverterTool{
		config:     config,
		random:     random,
		normalizer: newNormalizer(selector, config.includeGeneralResponse, config.pathPrefix, config.pathRoot),
		sqlHelper:  newSqliteHelper(config.tableName, logger),
		logger:     logger,
	}
}

// Run runs the conversion tool.
// It reads the source GraSP dataset, either from a local folder or downloaded
// from the HF site. Each source record carries an ordered image list, a set of
// candidate phase/step answers, and an optional free-form response.
// Example:
// Source record:
//
//	{"id": 0,
//	 "images": ["GraSP/train/frames/CASE001/00001.jpg"],
//	 "conversations": ["phase X, step Y", "phase X step Y is performed"],
//	 "response": "a surgical view of X"}
//
// Output records:
//
//	[{"messages": [
//	    {"role": "user", "content": "<image>\nWhat surgical phase and step are shown in these images?"},
//	    {"role": "assistant", "content": "phase X, step Y"}],
//	  "images": ["/scratch/e0957602/BN4101/grasp_frames/CASE001/00001.jpg"]},
//	 {"messages": [
//	    {"role": "user", "content": "<image>\nDescribe what you see in this surgical video."},
//	    {"role": "assistant", "content": "a surgical view of X"}],
//	  "images": ["/scratch/e0957602/BN4101/grasp_frames/CASE001/00001.jpg"]}]
//
// With a train ratio below 1 the examples are partitioned into train and eval
// files, whole frame-sequence groups at a time.
func (ct *ConverterTool) Run(ctx context.Context) error {
	sourceRecs, err := ct.loadData(ctx)
	if err != nil {
		ct.logger.Error(err, "failed to load the source dataset")
		return err
	}
	ct.logger.Info("Loaded source dataset records", "count", len(sourceRecs))

	tagged, numGroups := ct.normalizeRecords(sourceRecs)
	ct.logger.Info("Created output examples", "count", len(tagged), "groups", numGroups)

	if err := ensureOutputDir(ct.config.outputPath); err != nil {
		return err
	}

	var partitions []labeledPartition
	if ct.config.splitEnabled() {
		train, eval := splitBySequence(tagged, ct.config.trainRatio, ct.random, ct.logger)
		partitions = []labeledPartition{{name: "train", examples: train}, {name: "eval", examples: eval}}

		// the two partition files are independent, write them in parallel;
		// a failure of either fails the run
		g, _ := errgroup.WithContext(ctx)
		g.Go(func() error {
			return ct.storeToJson(ct.config.getTrainJSONFullFileName(), train)
		})
		g.Go(func() error {
			return ct.storeToJson(ct.config.getEvalJSONFullFileName(), eval)
		})
		if err := g.Wait(); err != nil {
			ct.logger.Error(err, "failed to store split dataset to json")
			return err
		}
		ct.logger.Info("Stored split dataset",
			"train", len(train), "eval", len(eval),
			"trainFile", ct.config.getTrainJSONFullFileName(),
			"evalFile", ct.config.getEvalJSONFullFileName())
	} else {
		partitions = []labeledPartition{{name: "all", examples: tagged}}
		if err := ct.storeToJson(ct.config.getTrainJSONFullFileName(), tagged); err != nil {
			ct.logger.Error(err, "failed to store dataset to json")
			return err
		}
		ct.logger.Info("Stored dataset", "count", len(tagged), "file", ct.config.getTrainJSONFullFileName())
	}

	if ct.config.storeSqlite {
		if err := ct.sqlHelper.storeExamples(ctx, ct.config.getOutputDBFullFileName(), partitions); err != nil {
			ct.logger.Error(err, "failed to store dataset to sqlite db")
			return err
		}
	}

	if err := ct.storeCard(sourceRecs, tagged, numGroups, partitions); err != nil {
		ct.logger.Error(err, "failed to store conversion card file")
		return err
	}

	return nil
}

// loads source dataset data, both local or from HF
func (ct *ConverterTool) loadData(ctx context.Context) ([]rawRecord, error) {
	var sourceData []byte
	var err error
	fullPath := ""

	if ct.config.hfRepo != "" {
		// HuggingFace mode
		fullPath = ct.config.hfRepo + "/" + ct.config.inputFile
		ct.logger.Info("Loading HF dataset", "path", fullPath)
		client := newHFClient(ct.config.token)
		sourceData, err = client.downloadFile(ctx, ct.config.hfRepo, ct.config.inputFile)
	} else {
		// Local file mode
		fullPath = filepath.Join(ct.config.localPath, ct.config.inputFile)
		ct.logger.Info("Loading local file", "path", fullPath)
		sourceData, err = loadLocalFile(fullPath)
	}

	if err != nil {
		ct.logger.Error(err, "failed to load source dataset", "path", fullPath)
		return nil, err
	}

	records, err := parseSourceRecords(sourceData)
	if err != nil {
		ct.logger.Error(err, "failed to parse", "file", fullPath)
		return nil, err
	}

	ct.logger.Info("Loaded source records", "count", len(records), "path", fullPath)
	if len(records) >= ct.config.maxRecords {
		records = records[:ct.config.maxRecords]
	}

	return records, nil
}

// normalizeRecords converts source records to tagged chat examples in source
// order and counts the distinct frame-sequence groups
func (ct *ConverterTool) normalizeRecords(sourceRecs []rawRecord) ([]taggedExample, int) {
	tagged := []taggedExample{}
	seenKeys := map[string]struct{}{}

	for _, rec := range sourceRecs {
		examples, key := ct.normalizer.normalizeRecord(rec)
		if len(examples) == 0 {
			continue
		}
		seenKeys[key] = struct{}{}
		for _, ex := range examples {
			tagged = append(tagged, taggedExample{example: ex, key: key})
		}
	}

	return tagged, len(seenKeys)
}

func (ct *ConverterTool) storeToJson(filePath string, examples []taggedExample) error {
	records := make([]ChatExample, len(examples))
	for i, ex := range examples {
		records[i] = ex.example
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	ct.logger.Info("Storing examples to JSON", "file", filePath)
	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ") // Pretty print
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(records); err != nil {
		return fmt.Errorf("failed to encode examples to JSON: %w", err)
	}

	return nil
}

func (ct *ConverterTool) storeCard(sourceRecs []rawRecord, tagged []taggedExample,
	numGroups int, partitions []labeledPartition) error {
	data := cardData{
		runID:        ct.random.GenerateUUIDString(),
		hfRepo:       ct.config.hfRepo,
		fileName:     ct.config.inputFile,
		sourceCount:  len(sourceRecs),
		exampleCount: len(tagged),
		groupCount:   numGroups,
		trainRatio:   strconv.FormatFloat(ct.config.trainRatio, 'g', -1, 64),
		seed:         ct.config.seed,
		split:        ct.config.splitEnabled(),
	}
	if data.split {
		data.trainCount = len(partitions[0].examples)
		data.evalCount = len(partitions[1].examples)
	}
	return generateCardFile(ct.config.getOutputCardFullFileName(), data)
}
