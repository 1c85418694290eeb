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
	"errors"
	"os"
	"path"

	"github.com/spf13/pflag"
)

const defaultTableName = "grasp"

type Configuration struct {
	hfRepo                 string
	localPath              string
	inputFile              string
	token                  string
	maxRecords             int
	outputPath             string
	outputFile             string
	evalOutputFile         string
	includeGeneralResponse bool
	trainRatio             float64
	seed                   int64
	pathPrefix             string
	pathRoot               string
	storeSqlite            bool
	tableName              string
}

func NewDefaultConfiguration() *Configuration {
	return &Configuration{
		hfRepo:                 "",
		localPath:              "",
		inputFile:              "",
		token:                  "",
		maxRecords:             100000,
		outputPath:             "",
		outputFile:             "grasp-train",
		evalOutputFile:         "grasp-eval",
		includeGeneralResponse: true,
		trainRatio:             1.0,
		seed:                   42,
		pathPrefix:             DefaultPathPrefix,
		pathRoot:               DefaultPathRoot,
		storeSqlite:            false,
		tableName:              defaultTableName,
	}
}

func (c *Configuration) LoadConfig() error {
	f := pflag.NewFlagSet("grasp-convert flags", pflag.ContinueOnError)

	f.StringVar(&c.hfRepo, "hf-repo", "", "HuggingFace dataset repository to download the input file from")
	f.StringVar(&c.localPath, "local-path", "", "Local directory containing the input file")
	f.StringVar(&c.inputFile, "input-file", "", "Input file name, relevant both for HF and local")
	f.StringVar(&c.outputPath, "output-path", "", "Output directory, created if absent")
	f.StringVar(&c.outputFile, "output-file", "grasp-train",
		"Output file name without extension; in split mode this is the train partition")
	f.StringVar(&c.evalOutputFile, "eval-output-file", "grasp-eval",
		"Eval partition file name without extension, used only in split mode")
	f.BoolVar(&c.includeGeneralResponse, "include-general-response", true,
		"Also emit a general-description example for records carrying a free-form response")
	f.Float64Var(&c.trainRatio, "train-ratio", 1.0,
		"Fraction of frame-sequence groups placed in the train partition; 1 disables splitting")
	f.Int64Var(&c.seed, "seed", 42, "Seed for answer/question selection and the split shuffle")
	f.StringVar(&c.pathPrefix, "path-prefix", DefaultPathPrefix, "Image path prefix to strip")
	f.StringVar(&c.pathRoot, "path-root", DefaultPathRoot, "Replacement root for stripped image paths")
	f.IntVar(&c.maxRecords, "max-records", 100000,
		"Maximum number of source dataset records to process; if the dataset contains more, the rest are discarded")
	f.BoolVar(&c.storeSqlite, "sqlite", false, "Additionally store output examples in a sqlite database for inspection")
	f.StringVar(&c.tableName, "table-name", defaultTableName, "Table name for the sqlite database")

	if err := f.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			// --help - exit without printing an error message
			os.Exit(0)
		}
		return err
	}

	c.token = os.Getenv("HF_TOKEN")

	return c.validate()
}

func (c *Configuration) validate() error {
	if c.hfRepo == "" && c.localPath == "" {
		return errors.New("either --hf-repo or --local-path must be specified")
	}
	if c.hfRepo != "" && c.localPath != "" {
		return errors.New("specify only one of --hf-repo or --local-path")
	}
	if c.inputFile == "" {
		return errors.New("--input-file is not defined")
	}
	if c.trainRatio <= 0 || c.trainRatio > 1 {
		return errors.New("--train-ratio must be in (0, 1]")
	}
	if c.splitEnabled() && c.evalOutputFile == "" {
		return errors.New("--eval-output-file cannot be empty in split mode")
	}
	if c.outputFile == "" {
		return errors.New("--output-file cannot be empty")
	}
	if c.splitEnabled() && c.evalOutputFile == c.outputFile {
		return errors.New("--eval-output-file must differ from --output-file")
	}

	if err := validateFileNotExist(c.getTrainJSONFullFileName()); err != nil {
		return err
	}
	if c.splitEnabled() {
		if err := validateFileNotExist(c.getEvalJSONFullFileName()); err != nil {
			return err
		}
	}
	if c.storeSqlite {
		if err := validateFileNotExist(c.getOutputDBFullFileName()); err != nil {
			return err
		}
	}
	return validateFileNotExist(c.getOutputCardFullFileName())
}

// splitEnabled reports whether the run partitions the output; a ratio of
// exactly 1 writes a single file.
func (c *Configuration) splitEnabled() bool {
	return c.trainRatio < 1
}

func (c *Configuration) getTrainJSONFullFileName() string {
	return path.Join(c.outputPath, c.outputFile+".json")
}

func (c *Configuration) getEvalJSONFullFileName() string {
	return path.Join(c.outputPath, c.evalOutputFile+".json")
}

func (c *Configuration) getOutputDBFullFileName() string {
	return path.Join(c.outputPath, c.outputFile+".sqlite3")
}

func (c *Configuration) getOutputCardFullFileName() string {
	return path.Join(c.outputPath, c.outputFile+".md")
}
