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

// Package crafting makes recipe records readable.
//
// Recipes share bundles of components, tools and qualities through
// requirement records referenced from their "using" field:
//
//	{"type": "recipe", "result": "wood_door", "using": [["req_a", 2]]}
//	{"type": "requirement", "id": "req_a", "components": [[["wood", 5]]]}
//
// Expander.Unpack merges those bundles into the recipe, multiplying
// component quantities (the door above needs 10 wood). A component or tool
// written as [id, qty, "LIST"] is replaced by the alternatives of the
// requirement it names. Requirements may refer to each other; a loop is
// reported as a CYCLE error.
//
// Expander.Expand additionally renders ids as names:
//
//	components:      "10 of plank or 2 of log"
//	tools:           "hammer (-1 charges)"
//	qualities:       "1 tool with cutting quality of 1"
//	book_learn:      "carpentry manual (level 4)"
//	skills_required: "survival (level 2)"
//	skill_used:      "fabrication (level 3)"
//
// Ids missing from the store are printed as is. Store records, presets
// included, are never modified.
package crafting
