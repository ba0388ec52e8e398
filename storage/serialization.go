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
	"fmt"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/realsearch/core"
)

var (
	vectorMUS   = ord.NewSliceSer[float32](raw.Float32)
	metadataMUS = ord.NewMapSer[string, string](ord.String, ord.String)
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, varint.Uint64.Size(uint64(id)))
	varint.Uint64.Marshal(uint64(id), buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
// Failures wrap ErrSerializationFailed.
func UnmarshalID(data []byte) (core.ID, error) {
	v, _, err := varint.Uint64.Unmarshal(data)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return core.ID(v), nil
}

// MarshalDocumentChunk serializes a DocumentChunk to bytes.
func MarshalDocumentChunk(chunk *core.DocumentChunk) []byte {
	size := varint.Uint64.Size(uint64(chunk.Id)) +
		ord.String.Size(chunk.Content) +
		ord.String.Size(string(chunk.ChunkType)) +
		ord.String.Size(chunk.Region) +
		vectorMUS.Size(chunk.Vector) +
		metadataMUS.Size(chunk.Metadata) +
		varint.Int64.Size(chunk.InsertedAt.UnixMicro())

	buf := make([]byte, size)
	n := varint.Uint64.Marshal(uint64(chunk.Id), buf)
	n += ord.String.Marshal(chunk.Content, buf[n:])
	n += ord.String.Marshal(string(chunk.ChunkType), buf[n:])
	n += ord.String.Marshal(chunk.Region, buf[n:])
	n += vectorMUS.Marshal(chunk.Vector, buf[n:])
	n += metadataMUS.Marshal(chunk.Metadata, buf[n:])
	varint.Int64.Marshal(chunk.InsertedAt.UnixMicro(), buf[n:])
	return buf
}

// UnmarshalDocumentChunk deserializes a DocumentChunk from bytes.
// Failures wrap ErrSerializationFailed.
func UnmarshalDocumentChunk(data []byte) (*core.DocumentChunk, error) {
	chunk, err := unmarshalDocumentChunk(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return chunk, nil
}

func unmarshalDocumentChunk(data []byte) (*core.DocumentChunk, error) {
	var chunk core.DocumentChunk

	id, n, err := varint.Uint64.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	chunk.Id = core.ID(id)

	content, m, err := ord.String.Unmarshal(data[n:])
	if err != nil {
		return nil, err
	}
	n += m
	chunk.Content = content

	chunkType, m, err := ord.String.Unmarshal(data[n:])
	if err != nil {
		return nil, err
	}
	n += m
	chunk.ChunkType = core.ChunkType(chunkType)

	region, m, err := ord.String.Unmarshal(data[n:])
	if err != nil {
		return nil, err
	}
	n += m
	chunk.Region = region

	vector, m, err := vectorMUS.Unmarshal(data[n:])
	if err != nil {
		return nil, err
	}
	n += m
	chunk.Vector = vector

	metadata, m, err := metadataMUS.Unmarshal(data[n:])
	if err != nil {
		return nil, err
	}
	n += m
	chunk.Metadata = metadata

	micros, _, err := varint.Int64.Unmarshal(data[n:])
	if err != nil {
		return nil, err
	}
	chunk.InsertedAt = time.UnixMicro(micros).UTC()

	return &chunk, nil
}
