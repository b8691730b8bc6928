// Copyright 2025 Poiesic Systems
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


// Package segment turns the raw text of an academic paper into
// retrieval-sized chunks. Segmentation runs in two steps: a section
// detector splits the document on recognizable headers, then a
// recursive character splitter cuts each section into overlapping
// chunks carrying section context and semantic flags.
package segment
