// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package serializer renders browser output in several formats.
//
// # Supported Formats
//
// Text (default):
//   - "field: value" lines in record field order
//   - Multi-line values (rendered crafting requirements) indented below the field
//   - Lists of names printed one per line
//
// JSON:
//   - Machine-parseable, indented
//   - Records keep their field order
//
// YAML:
//   - gopkg.in/yaml.v3, records keep their field order
//
// Table:
//   - FIELD/VALUE columns via text/tabwriter
//   - Records in field order; other values flattened and sorted by key
//
// # Usage
//
//	writer := serializer.NewFileWriterOrStdout(serializer.FormatText, outputPath)
//	defer writer.Close()
//
//	if err := writer.Serialize(ctx, record); err != nil {
//	    return err
//	}
//
// An empty output path writes to stdout. A path that cannot be created is
// logged and stdout is used instead.
//
// # Format Detection
//
// FormatFromPath maps file extensions to formats:
//   - .json → JSON
//   - .yaml, .yml → YAML
//   - .table → Table
//   - .txt → Text
//
// # Integration
//
//   - pkg/cli - command output for search, show, craft, categories and stats
package serializer
