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


package storage

import (
	"github.com/poiesic/papyrus/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	var id core.ID
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalPaper serializes a Paper to bytes.
func MarshalPaper(paper *core.Paper) []byte {
	buf := make([]byte, core.PaperMUS.Size(*paper))
	core.PaperMUS.Marshal(*paper, buf)
	return buf
}

// UnmarshalPaper deserializes a Paper from bytes.
func UnmarshalPaper(data []byte) (*core.Paper, error) {
	paper, _, err := core.PaperMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &paper, nil
}

// MarshalVectorRecord serializes a VectorRecord to bytes.
func MarshalVectorRecord(record *core.VectorRecord) []byte {
	buf := make([]byte, core.VectorRecordMUS.Size(*record))
	core.VectorRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalVectorRecord deserializes a VectorRecord from bytes.
func UnmarshalVectorRecord(data []byte) (*core.VectorRecord, error) {
	record, _, err := core.VectorRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// MarshalIndexDescriptor serializes an IndexDescriptor to bytes.
func MarshalIndexDescriptor(desc core.IndexDescriptor) []byte {
	buf := make([]byte, core.IndexDescriptorMUS.Size(desc))
	core.IndexDescriptorMUS.Marshal(desc, buf)
	return buf
}

// UnmarshalIndexDescriptor deserializes an IndexDescriptor from bytes.
func UnmarshalIndexDescriptor(data []byte) (core.IndexDescriptor, error) {
	desc, _, err := core.IndexDescriptorMUS.Unmarshal(data)
	return desc, err
}
